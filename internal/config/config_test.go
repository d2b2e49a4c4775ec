package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/whitemech/lydia-sub000/logger"
)

func writeTemp(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lydia.toml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func Test_Load_AppliesDefaults(t *testing.T) {
	path := writeTemp(t, `jwt_secret = "shh"`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "shh", cfg.JWTSecret)
	assert.Equal(t, defaultListenAddr, cfg.ListenAddr)
	assert.Equal(t, defaultCacheDBPath, cfg.CacheDBPath)
	assert.Equal(t, defaultLogLevel, cfg.LogLevel)
}

func Test_Load_OverridesDefaults(t *testing.T) {
	path := writeTemp(t, `
listen_addr = ":9090"
jwt_secret = "shh"
cache_db_path = "/tmp/cache.sqlite"
log_level = "debug"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.ListenAddr)
	assert.Equal(t, "/tmp/cache.sqlite", cfg.CacheDBPath)
	assert.Equal(t, logger.LevelDebug, cfg.ParsedLogLevel())
}

func Test_Load_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	require.Error(t, err)
}

func Test_Load_MissingSecret(t *testing.T) {
	path := writeTemp(t, `listen_addr = ":9090"`)

	_, err := Load(path)
	require.Error(t, err)
}

func Test_Load_MalformedFile(t *testing.T) {
	path := writeTemp(t, `this is not valid toml === [[[`)

	_, err := Load(path)
	require.Error(t, err)
}
