package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestProcessDefault(t *testing.T) {
	cfg, err := Process([]string{})
	require.NoError(t, err)

	// The embedded defaults ship with voting enabled and a usable mode set.
	require.True(t, cfg.Server.Voting.Enabled)
	require.NotEmpty(t, cfg.Server.Modes)
	require.False(t, cfg.Server.Checkpoint.Redis.Enabled)
}

func TestProcessFiles(t *testing.T) {
	dir := t.TempDir()

	// yaml config
	{
		yaml := filepath.Join(dir, "config.yaml")
		err := os.WriteFile(yaml, []byte(`
server:
  dbPath: "/var/lib/ballot/history.db"
  modes:
    - name: scrake-party
      title: Scrake Party
      difficulty: suicidal
      acronym: SP
      options:
        - key: MaxPlayers
          value: "8"
`), 0644)
		require.NoError(t, err)

		cfg, err := Process([]string{yaml})
		require.NoError(t, err)
		require.Equal(t, "/var/lib/ballot/history.db", cfg.Server.DBPath)
		require.Len(t, cfg.Server.Modes, 1)

		mode := cfg.Server.Modes[0]
		require.Equal(t, "scrake-party", mode.Name)
		require.Equal(t, "KFGameType", mode.GameType)
		require.Equal(t, []ModeOption{{Key: "MaxPlayers", Value: "8"}}, mode.Options)
	}

	// json config
	{
		json := filepath.Join(dir, "config.json")
		err := os.WriteFile(json, []byte(`{
  "server": {
    "voting": {
      "enabled": false
    }
  }
}`), 0644)
		require.NoError(t, err)

		cfg, err := Process([]string{json})
		require.NoError(t, err)
		require.False(t, cfg.Server.Voting.Enabled)
	}

	// multiple files unify
	{
		yaml1 := filepath.Join(dir, "config1.yaml")
		err := os.WriteFile(yaml1, []byte(`
server:
  modes:
    - name: vanilla
`), 0644)
		require.NoError(t, err)

		yaml2 := filepath.Join(dir, "config2.yaml")
		err = os.WriteFile(yaml2, []byte(`
server:
  dbPath: "history.db"
`), 0644)
		require.NoError(t, err)

		cfg, err := Process([]string{yaml1, yaml2})
		require.NoError(t, err)
		require.Equal(t, "history.db", cfg.Server.DBPath)
		require.Len(t, cfg.Server.Modes, 1)
	}
}

func TestProcessRejectsBadConfig(t *testing.T) {
	dir := t.TempDir()

	// A mode without a name violates the schema.
	yaml := filepath.Join(dir, "bad.yaml")
	err := os.WriteFile(yaml, []byte(`
server:
  modes:
    - title: Nameless
`), 0644)
	require.NoError(t, err)

	_, err = Process([]string{yaml})
	require.Error(t, err)

	// Unsupported extension.
	toml := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(toml, []byte("x = 1"), 0644))
	_, err = Process([]string{toml})
	require.Error(t, err)
}
