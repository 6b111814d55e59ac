package checkpoint

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	// Nothing stored yet.
	_, ok, err := store.Take(ctx)
	require.NoError(t, err)
	require.False(t, ok)

	cp := Checkpoint{
		Traveling:        true,
		TargetMode:       "suicidal",
		StoredDifficulty: 2,
	}
	require.NoError(t, store.Save(ctx, cp))

	restored, ok, err := store.Take(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, cp, restored)

	// Take consumes: a second read finds nothing.
	_, ok, err = store.Take(ctx)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestMemoryStoreOverwrite(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.Save(ctx, Checkpoint{TargetMode: "first"}))
	require.NoError(t, store.Save(ctx, Checkpoint{TargetMode: "second"}))

	cp, ok, err := store.Take(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "second", cp.TargetMode)
}
