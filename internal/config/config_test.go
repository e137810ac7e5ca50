package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("AGENCYOS_DB", "")
	t.Setenv("AGENCYOS_LOG_LEVEL", "")
	t.Setenv("AGENCYOS_LOG_USECASES", "")
	t.Setenv("AGENCYOS_AUTOREPLY_DELAY", "")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".agencyos", "agencyos.db"), cfg.DBPath)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.False(t, cfg.LogUseCases)
	assert.Equal(t, time.Second, cfg.AutoReplyDelay)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("AGENCYOS_DB", ":memory:")
	t.Setenv("AGENCYOS_LOG_LEVEL", "debug")
	t.Setenv("AGENCYOS_LOG_USECASES", "true")
	t.Setenv("AGENCYOS_AUTOREPLY_DELAY", "250ms")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, ":memory:", cfg.DBPath)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.LogUseCases)
	assert.Equal(t, 250*time.Millisecond, cfg.AutoReplyDelay)
}

func TestLoad_InvalidValuesIgnored(t *testing.T) {
	t.Setenv("AGENCYOS_DB", ":memory:")
	t.Setenv("AGENCYOS_LOG_USECASES", "sometimes")
	t.Setenv("AGENCYOS_AUTOREPLY_DELAY", "-1s")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.False(t, cfg.LogUseCases)
	assert.Equal(t, time.Second, cfg.AutoReplyDelay)

	t.Setenv("AGENCYOS_AUTOREPLY_DELAY", "soon")
	cfg, err = Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, time.Second, cfg.AutoReplyDelay)
}

func TestLoad_EnvFile(t *testing.T) {
	// keep the file's values from leaking into other tests
	t.Cleanup(func() {
		os.Unsetenv("AGENCYOS_AUTOREPLY_DELAY")
		os.Unsetenv("AGENCYOS_LOG_USECASES")
	})
	os.Unsetenv("AGENCYOS_AUTOREPLY_DELAY")
	os.Unsetenv("AGENCYOS_LOG_USECASES")
	t.Setenv("AGENCYOS_DB", ":memory:")
	t.Setenv("AGENCYOS_LOG_LEVEL", "error")

	path := filepath.Join(t.TempDir(), ".env")
	content := "AGENCYOS_AUTOREPLY_DELAY=2s\nAGENCYOS_LOG_USECASES=1\nAGENCYOS_LOG_LEVEL=debug\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2*time.Second, cfg.AutoReplyDelay)
	assert.True(t, cfg.LogUseCases)
	assert.Equal(t, "error", cfg.LogLevel, "process environment wins over the file")
}

func TestLoad_MalformedEnvFile(t *testing.T) {
	t.Setenv("AGENCYOS_DB", ":memory:")

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("AGENCYOS-AUTOREPLY-DELAY=2s\n"), 0o600))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading env file")
}

func TestLoad_UnreadableEnvPath(t *testing.T) {
	t.Setenv("AGENCYOS_DB", ":memory:")

	_, err := Load(t.TempDir())
	assert.Error(t, err, "a directory is not a readable env file")
}
