// Package checkpoint carries the voting outcome across the host's
// map-to-map restart boundary, where every instance reference is invalid.
// A checkpoint is written exactly once before the old session is torn down
// and consumed exactly once by the new one.
package checkpoint

import (
	"context"

	"github.com/sasha-s/go-deadlock"
)

// Checkpoint is the state that must survive a restart. TargetMode and
// StoredDifficulty are only meaningful while Traveling is true; after the
// post-restart read they are consumed.
type Checkpoint struct {
	// True exactly between "restart initiated" and "post-restart setup ran".
	Traveling bool
	// Name of the game mode selected before the restart.
	TargetMode string
	// The host's default difficulty as it was before being overridden.
	StoredDifficulty float64
}

// Store persists a checkpoint across the restart boundary.
type Store interface {
	Save(ctx context.Context, cp Checkpoint) error
	// Take returns the stored checkpoint and consumes it. The second return
	// is false when nothing was stored.
	Take(ctx context.Context) (Checkpoint, bool, error)
}

// MemoryStore keeps the checkpoint in process-wide memory. This is valid
// only because the host keeps the hosting process alive across the restart;
// use RedisStore when the process itself goes down.
type MemoryStore struct {
	mutex      deadlock.Mutex
	checkpoint Checkpoint
	stored     bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Save(ctx context.Context, cp Checkpoint) error {
	s.mutex.Lock()
	s.checkpoint = cp
	s.stored = true
	s.mutex.Unlock()
	return nil
}

func (s *MemoryStore) Take(ctx context.Context) (Checkpoint, bool, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if !s.stored {
		return Checkpoint{}, false, nil
	}

	cp := s.checkpoint
	s.checkpoint = Checkpoint{}
	s.stored = false
	return cp, true, nil
}
