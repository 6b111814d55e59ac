package checkpoint

import (
	"context"
	"errors"
	"time"

	"github.com/mkarren/ballot/pkg/config"

	"github.com/fxamacker/cbor/v2"
	"github.com/go-redis/redis/v9"
)

const redisKey = "ballot:checkpoint"

// The slice of the redis client the store uses.
type redisCommands interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	GetDel(ctx context.Context, key string) *redis.StringCmd
}

// RedisStore persists the checkpoint outside the host process for
// deployments where the restart boundary is a real process restart. GETDEL
// gives the read-once contract.
type RedisStore struct {
	client redisCommands
}

func NewRedisStore(settings config.RedisSettings) *RedisStore {
	return &RedisStore{
		client: redis.NewClient(&redis.Options{
			Addr:     settings.Address,
			Password: settings.Password,
			DB:       settings.DB,
		}),
	}
}

// StoreFromConfig selects the backend the configuration asks for: redis
// when enabled, otherwise process-wide memory.
func StoreFromConfig(settings config.CheckpointSettings) Store {
	if settings.Redis.Enabled {
		return NewRedisStore(settings.Redis)
	}
	return NewMemoryStore()
}

func (s *RedisStore) Save(ctx context.Context, cp Checkpoint) error {
	encoded, err := cbor.Marshal(cp)
	if err != nil {
		return err
	}

	return s.client.Set(ctx, redisKey, encoded, 0).Err()
}

func (s *RedisStore) Take(ctx context.Context) (Checkpoint, bool, error) {
	encoded, err := s.client.GetDel(ctx, redisKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return Checkpoint{}, false, nil
	}
	if err != nil {
		return Checkpoint{}, false, err
	}

	var cp Checkpoint
	if err := cbor.Unmarshal(encoded, &cp); err != nil {
		return Checkpoint{}, false, err
	}

	return cp, true, nil
}
