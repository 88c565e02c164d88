package main

import (
	"os"
	"testing"
	"time"

	"github.com/mcdev12/lotterydash/go/internal/cache"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

var configKeys = []string{
	"PORT", "LOG_LEVEL", "RESULTS_BASE_URL", "REQUEST_TIMEOUT", "POLL_INTERVAL",
	"MANUAL_REFRESH_MIN", "CATALOG_PATH", "SCHEDULE_FROM_API", "CACHE_BACKEND",
	"CACHE_DIR", "SQLITE_PATH", "POSTGRES_DSN", "MONGO_URI", "MONGO_DATABASE",
	"NATS_BUCKET", "NATS_URL", "NATS_SUBJECT",
	"DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "DB_SSLMODE",
}

func TestLoadConfigDefaults(t *testing.T) {
	clearEnv(t, configKeys...)

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "http://localhost:5000", cfg.ResultsBaseURL)
	assert.Equal(t, 60*time.Second, cfg.PollInterval)
	assert.Equal(t, 2*time.Second, cfg.ManualRefresh)
	assert.Equal(t, cache.BackendFile, cfg.CacheBackend)
	assert.Equal(t, "lottery.results.updated", cfg.NATSSubject)
	assert.Empty(t, cfg.NATSURL)
	assert.Equal(t, zerolog.InfoLevel, cfg.logLevel())
}

func TestLoadConfigValidation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "interval too short", env: map[string]string{"POLL_INTERVAL": "30s"}},
		{name: "interval too long", env: map[string]string{"POLL_INTERVAL": "5m"}},
		{name: "negative manual floor", env: map[string]string{"MANUAL_REFRESH_MIN": "-1s"}},
		{name: "zero timeout", env: map[string]string{"REQUEST_TIMEOUT": "0s"}},
		{name: "nats backend without url", env: map[string]string{"CACHE_BACKEND": "nats"}},
		{name: "unparseable interval", env: map[string]string{"POLL_INTERVAL": "soon"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t, configKeys...)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := loadConfig()
			assert.Error(t, err)
		})
	}
}

func TestCacheConfigPostgresFallsBackToDBEnv(t *testing.T) {
	clearEnv(t, configKeys...)
	t.Setenv("CACHE_BACKEND", "postgres")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_NAME", "results")

	cfg, err := loadConfig()
	require.NoError(t, err)

	cacheCfg, err := cfg.cacheConfig()
	require.NoError(t, err)
	assert.Equal(t, "postgres://postgres:postgres@db:5432/results?sslmode=disable", cacheCfg.PostgresDSN)
}

func TestCacheConfigPrefersExplicitDSN(t *testing.T) {
	clearEnv(t, configKeys...)
	t.Setenv("CACHE_BACKEND", "postgres")
	t.Setenv("POSTGRES_DSN", "postgres://u:p@h:1/d")

	cfg, err := loadConfig()
	require.NoError(t, err)

	cacheCfg, err := cfg.cacheConfig()
	require.NoError(t, err)
	assert.Equal(t, "postgres://u:p@h:1/d", cacheCfg.PostgresDSN)
}

func TestLogLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, Config{LogLevel: "debug"}.logLevel())
	assert.Equal(t, zerolog.InfoLevel, Config{LogLevel: "loud"}.logLevel())
	assert.Equal(t, zerolog.InfoLevel, Config{}.logLevel())
}
