package state

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestModeSwitchHistory(t *testing.T) {
	ctx := context.Background()

	db, err := InitDB(filepath.Join(t.TempDir(), "ballot.db"))
	require.NoError(t, err)

	require.NoError(t, RecordSwitch(ctx, db, "alpha", 2))
	require.NoError(t, RecordSwitch(ctx, db, "beta", 4))
	require.NoError(t, RecordSwitch(ctx, db, "gamma", 7))

	switches, err := RecentSwitches(ctx, db, 2)
	require.NoError(t, err)
	require.Len(t, switches, 2)

	// Newest first.
	require.Equal(t, "gamma", switches[0].Mode)
	require.Equal(t, 7.0, switches[0].Difficulty)
	require.Equal(t, "beta", switches[1].Mode)
}
