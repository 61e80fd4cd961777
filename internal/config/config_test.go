package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USER", "ann")
	t.Setenv("PUZBOARD_CONFIG", "")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, filepath.Join(home, ".local", "share", "puzboard", "puzboard.db"), cfg.Database.Path)
	require.Equal(t, "ann", cfg.Play.Responder)
	require.Equal(t, "axis", cfg.Play.Movement)
	require.True(t, cfg.Play.PreserveCorrect)
	require.Equal(t, ShowErrorsOff, cfg.Play.ShowErrors)
	require.Equal(t, "info", cfg.Log.Level)
}

func TestLoadFileAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[play]
movement = "clue"
skip_completed = true
show_errors = "grid"

[log]
level = "debug"
`), 0o644))
	t.Setenv("HOME", dir)
	t.Setenv("PUZBOARD_CONFIG", path)
	t.Setenv("PUZBOARD_PLAY_RESPONDER", "bo")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "clue", cfg.Play.Movement)
	require.True(t, cfg.Play.SkipCompleted)
	require.Equal(t, ShowErrorsGrid, cfg.Play.ShowErrors)
	require.Equal(t, "debug", cfg.Log.Level)
	require.Equal(t, "bo", cfg.Play.Responder)
}

func TestLoadRejectsUnknownMovement(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("PUZBOARD_CONFIG", "")
	t.Setenv("PUZBOARD_PLAY_MOVEMENT", "diagonal")

	_, err := Load()
	require.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.toml")
	t.Setenv("HOME", dir)
	t.Setenv("PUZBOARD_CONFIG", path)

	in := Config{
		Database: DatabaseConfig{Path: filepath.Join(dir, "p.db")},
		Play:     PlayConfig{Responder: "cy", Movement: "clue", DontDeleteCrossing: true, ShowErrors: ShowErrorsCursor},
		Log:      LogConfig{Level: "warn", File: filepath.Join(dir, "p.log")},
	}
	written, err := Save(in)
	require.NoError(t, err)
	require.Equal(t, path, written)

	out, err := Load()
	require.NoError(t, err)
	require.Equal(t, in, out)
}
