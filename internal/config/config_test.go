package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func loadFrom(t *testing.T, workingDir string) *Config {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)

	cfg, err := Load(workingDir)
	require.NoError(t, err)
	return cfg
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := loadFrom(t, t.TempDir())
	require.Equal(t, 10, cfg.BackupRetention)
	require.Equal(t, 0, cfg.MaxHandlerFailures)
	require.NotEmpty(t, cfg.BackupDir)
	require.NotEmpty(t, cfg.ThemeDir)

	require.True(t, cfg.Handler("gtk").Enabled)
	require.True(t, cfg.Handler("qt").Enabled)
	require.False(t, cfg.Handler("tokens").Enabled)
	require.False(t, cfg.Handler("unknown").Enabled)
}

func TestLoadFromFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	dir := t.TempDir()

	content := `backupRetention: 5
maxHandlerFailures: 1
handlers:
  gtk:
    enabled: false
  tokens:
    enabled: true
    root: /tmp/tokens
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "shade.yaml"), []byte(content), 0o644))

	cfg := loadFrom(t, dir)
	require.Equal(t, 5, cfg.BackupRetention)
	require.Equal(t, 1, cfg.MaxHandlerFailures)
	require.False(t, cfg.Handler("gtk").Enabled)
	require.True(t, cfg.Handler("tokens").Enabled)
	require.Equal(t, "/tmp/tokens", cfg.Handler("tokens").Root)
}

func TestEnvOverridesFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("SHADE_BACKUPRETENTION", "3")
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "shade.yaml"), []byte("backupRetention: 5\n"), 0o644))

	cfg := loadFrom(t, dir)
	require.Equal(t, 3, cfg.BackupRetention)
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "shade.yaml"), []byte("backupRetention: [\n"), 0o644))

	viper.Reset()
	t.Cleanup(viper.Reset)
	_, err := Load(dir)
	require.Error(t, err)
}
