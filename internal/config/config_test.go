package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/require"
)

func tempROM(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "game.nes")
	require.NoError(t, os.WriteFile(path, []byte("NES\x1a"), 0644))
	return path
}

func parse(t *testing.T, args ...string) Config {
	t.Helper()
	var cfg Config
	k, err := kong.New(&cfg)
	require.NoError(t, err)
	_, err = k.Parse(args)
	require.NoError(t, err)
	return cfg
}

func TestDefaults(t *testing.T) {
	rom := tempROM(t)
	cfg := parse(t, rom)
	require.Equal(t, rom, cfg.ROM)
	require.Equal(t, "ebiten", cfg.Backend)
	require.Equal(t, 3, cfg.Scale)
	require.Equal(t, 0, cfg.Frames)
	require.False(t, cfg.Debug)
}

func TestHeadlessFramesFlag(t *testing.T) {
	rom := tempROM(t)
	cfg := parse(t, rom, "--backend=headless", "--frames=120", "--debug")
	require.Equal(t, "headless", cfg.Backend)
	require.Equal(t, 120, cfg.Frames)
	require.True(t, cfg.Debug)
}

func TestRejectsUnknownBackend(t *testing.T) {
	rom := tempROM(t)
	var cfg Config
	k, err := kong.New(&cfg)
	require.NoError(t, err)
	_, err = k.Parse([]string{rom, "--backend=sdl2"})
	require.Error(t, err)
}
