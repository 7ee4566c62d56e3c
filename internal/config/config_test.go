package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points the user config dir and cwd at empty temp dirs.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", dir)
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)
	c, err := Load(&cobra.Command{}, "")
	require.NoError(t, err)
	assert.Equal(t, "info", c.Log.Level)
	assert.Equal(t, "focusnav", c.Otel.Service)
	assert.True(t, c.Otel.Insecure)
	assert.False(t, c.Wrap)
	assert.Empty(t, c.Scene)
}

func TestLoad_FileInWorkingDir(t *testing.T) {
	dir := isolate(t)
	yml := "scene: ui.yaml\nwrap: true\nlog:\n  level: debug\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "focusnav.yaml"), []byte(yml), 0o644))

	c, err := Load(nil, "")
	require.NoError(t, err)
	assert.Equal(t, "ui.yaml", c.Scene)
	assert.True(t, c.Wrap)
	assert.Equal(t, "debug", c.Log.Level)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "focusnav.yaml"), []byte("log:\n  level: debug\n"), 0o644))
	t.Setenv("FOCUSNAV_LOG_LEVEL", "warn")
	t.Setenv("FOCUSNAV_OTEL_ENDPOINT", "collector:4318")

	c, err := Load(nil, "")
	require.NoError(t, err)
	assert.Equal(t, "warn", c.Log.Level)
	assert.Equal(t, "collector:4318", c.Otel.Endpoint)
}

func TestLoad_FlagOverridesEnv(t *testing.T) {
	isolate(t)
	t.Setenv("FOCUSNAV_SCENE", "env.yaml")

	cmd := &cobra.Command{}
	cmd.Flags().String("scene", "", "scene file")
	require.NoError(t, cmd.Flags().Set("scene", "flag.yaml"))

	c, err := Load(cmd, "")
	require.NoError(t, err)
	assert.Equal(t, "flag.yaml", c.Scene)
}

func TestLoad_ExplicitPath(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("wrap: true\n"), 0o644))

	c, err := Load(nil, path)
	require.NoError(t, err)
	assert.True(t, c.Wrap)

	_, err = Load(nil, filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestSlogLevel(t *testing.T) {
	lvl, err := Config{Log: LogConfig{Level: "debug"}}.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, lvl)

	_, err = Config{Log: LogConfig{Level: "loud"}}.SlogLevel()
	assert.Error(t, err)
}
