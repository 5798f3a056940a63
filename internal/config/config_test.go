package config_test

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/unabs/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func write(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)

	cfg, err = config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoad_YAMLOverridesDefaults(t *testing.T) {
	key := base64.StdEncoding.EncodeToString([]byte(strings.Repeat("k", 32)))
	path := write(t, "unabs.yaml", `
max_steps: 5000
log:
  level: debug
store:
  backend: redis
  encryption_key: `+key+`
  redis:
    addr: redis:6379
    db: 2
    ttl: 24h
server:
  port: 9090
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, uint64(5000), cfg.MaxSteps)
	assert.Equal(t, uint64(100_000), cfg.CheckpointEvery, "unset keys keep defaults")
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, config.BackendRedis, cfg.Store.Backend)
	assert.Equal(t, "redis:6379", cfg.Store.Redis.Addr)
	assert.Equal(t, 2, cfg.Store.Redis.DB)
	assert.Equal(t, "unabs:session:", cfg.Store.Redis.Prefix)
	assert.Equal(t, 9090, cfg.Server.Port)

	ttl, err := cfg.Store.Redis.TTLDuration()
	require.NoError(t, err)
	assert.Equal(t, 24*time.Hour, ttl)

	active, fallback, err := cfg.Store.Keys()
	require.NoError(t, err)
	assert.Len(t, active, 32)
	assert.Empty(t, fallback)
}

func TestLoad_JSON(t *testing.T) {
	path := write(t, "unabs.json", `{"max_steps": 7, "store": {"backend": "memory"}}`)
	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), cfg.MaxSteps)
	assert.Equal(t, config.BackendMemory, cfg.Store.Backend)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"syntax", "max_steps: [", "failed to parse"},
		{"backend", "store: {backend: s3}", "store.backend"},
		{"port", "server: {port: 70000}", "server.port"},
		{"ttl", "store: {redis: {ttl: soon}}", "store.redis.ttl"},
		{"short key", "store: {encryption_key: c2hvcnQ=}", "want 32 bytes"},
		{"orphan fallback", "store: {fallback_keys: [abc]}", "without store.encryption_key"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.Load(write(t, "unabs.yaml", tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
