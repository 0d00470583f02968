package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaults() *Config {
	c := &Config{}
	c.LoadDefaults()
	return c
}

// noDotenv points the .env lookup at a file that does not exist.
func noDotenv(t *testing.T) {
	t.Helper()
	orig := dotenvFiles
	dotenvFiles = []string{filepath.Join(t.TempDir(), "missing.env")}
	t.Cleanup(func() { dotenvFiles = orig })
}

func TestLoadDefaults(t *testing.T) {
	c := defaults()

	assert.Equal(t, "sqlite", c.StoreDriver)
	assert.Equal(t, "recycle.db", c.StoreDSN)
	assert.Equal(t, 5*time.Second, c.StoreTimeout)
	assert.Equal(t, "warn", c.LogLevel)
	assert.Equal(t, "text", c.LogFormat)
	assert.Equal(t, "slog", c.LogBackend)
}

func TestLoad_NoSourcesKeepsDefaults(t *testing.T) {
	noDotenv(t)

	c, err := Load(nil)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(defaults(), c))
}

func TestLoad_Precedence(t *testing.T) {
	noDotenv(t)
	t.Setenv("RECYCLE_STORE_DRIVER", "memory")
	t.Setenv("RECYCLE_LOG_LEVEL", "debug")
	t.Setenv("RECYCLE_STORE_TIMEOUT", "7s")

	path := filepath.Join(t.TempDir(), "cfg.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"log_level":"error","log_format":"json"}`), 0o600))

	c, err := Load([]string{"-c", path, "-f", "text", "-b", "zap"})
	require.NoError(t, err)

	want := &Config{
		StoreDriver:  "memory",
		StoreDSN:     "recycle.db",
		StoreTimeout: 7 * time.Second,
		LogLevel:     "error",
		LogFormat:    "text",
		LogBackend:   "zap",
	}
	assert.Empty(t, cmp.Diff(want, c))
}

func TestParseEnv_DotenvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("RECYCLE_STORE_DSN=from-dotenv.db\n"), 0o600))

	orig := dotenvFiles
	dotenvFiles = []string{path}
	t.Cleanup(func() {
		dotenvFiles = orig
		_ = os.Unsetenv("RECYCLE_STORE_DSN")
	})

	c := defaults()
	require.NoError(t, parseEnv(c))
	assert.Equal(t, "from-dotenv.db", c.StoreDSN)
}

func TestParseEnv_InvalidDuration(t *testing.T) {
	noDotenv(t)
	t.Setenv("RECYCLE_STORE_TIMEOUT", "soon")

	_, err := Load(nil)
	require.Error(t, err)
}

func TestLoadConfig_PanicsOnBadFlag(t *testing.T) {
	noDotenv(t)
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	os.Args = []string{"recycle", "-t", "abc"}
	require.Panics(t, func() { LoadConfig() })

	os.Args = []string{"recycle", "-d", "memory"}
	require.NotPanics(t, func() {
		c := LoadConfig()
		assert.Equal(t, "memory", c.StoreDriver)
	})
}
