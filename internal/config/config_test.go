package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func write(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default().HTTP, cfg.HTTP)
}

func TestLoad_YAML(t *testing.T) {
	path := write(t, "regula.yaml", `
log_level: debug
simplifier:
  max_passes: 3
http:
  port: 9000
  rate_limit:
    requests: 10
    window: 30s
redis:
  addr: localhost:6379
catalog: ./catalog
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 3, cfg.Simplifier.MaxPasses)
	assert.Equal(t, 9000, cfg.HTTP.Port)
	assert.Equal(t, int64(1<<20), cfg.HTTP.MaxBodySize, "unset fields keep their defaults")
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, "regula:ratelimit:", cfg.Redis.Prefix)
	assert.Equal(t, "./catalog", cfg.Catalog)

	window, err := cfg.HTTP.RateLimit.WindowDuration()
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, window)
}

func TestLoad_JSON(t *testing.T) {
	path := write(t, "regula.json", `{"http": {"port": 7000}, "log_level": "warn"}`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7000, cfg.HTTP.Port)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoad_Malformed(t *testing.T) {
	_, err := Load(write(t, "bad.json", `{"http": `))
	assert.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"REGULA_LOG_LEVEL":      "error",
		"REGULA_HTTP_PORT":      "8181",
		"REGULA_REDIS_ADDR":     "redis:6379",
		"REGULA_REDIS_DB":       "2",
		"REGULA_RATE_LIMIT":     "5",
		"REGULA_MAX_INPUT_SIZE": "2048",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	cfg := Default()
	require.NoError(t, cfg.ApplyEnv(lookup))
	assert.Equal(t, "error", cfg.LogLevel)
	assert.Equal(t, 8181, cfg.HTTP.Port)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, 5, cfg.HTTP.RateLimit.Requests)
	assert.Equal(t, int64(2048), cfg.HTTP.MaxBodySize)

	env["REGULA_HTTP_PORT"] = "eighty"
	assert.ErrorContains(t, cfg.ApplyEnv(lookup), "REGULA_HTTP_PORT")
}

func TestWindowDuration_Invalid(t *testing.T) {
	_, err := RateLimitConfig{Window: "soon"}.WindowDuration()
	assert.Error(t, err)
	_, err = RateLimitConfig{Window: "-1s"}.WindowDuration()
	assert.Error(t, err)
}
