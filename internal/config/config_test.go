package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_File(t *testing.T) {
	t.Setenv("FESTIVAL_DIR", "/srv/lunar")

	path := writeConfig(t, `
log:
  level: debug
  file: /var/log/lunar.log
calendar:
  festivals_file: ${FESTIVAL_DIR}/festivals.txt
  language: en
server:
  address: 127.0.0.1:9000
  metrics: false
  rate_limit: 10
  rate_window: 30s
export:
  name: Lunar
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "/var/log/lunar.log", cfg.Log.File)
	assert.Equal(t, "/srv/lunar/festivals.txt", cfg.Calendar.FestivalsFile)
	assert.Equal(t, "en", cfg.Calendar.Language)
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Address)
	assert.False(t, cfg.Server.Metrics)
	assert.Equal(t, 10, cfg.Server.RateLimit)
	assert.Equal(t, 30*time.Second, cfg.Server.GetRateWindow())
	assert.Equal(t, "Lunar", cfg.Export.Name)

	// Defaults fill what the file leaves out
	assert.Equal(t, 10*time.Second, cfg.Server.GetShutdownTimeout())
	assert.Equal(t, time.Minute, cfg.Daemon.GetRolloverCheck())
	assert.Equal(t, 24*time.Hour, cfg.Cache.GetTTL())
}

func TestLoad_Defaults(t *testing.T) {
	// No config.yaml in any search path
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "zh", cfg.Calendar.Language)
	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.True(t, cfg.Server.Metrics)
	assert.Equal(t, 60, cfg.Server.RateLimit)
	assert.Empty(t, cfg.Cache.RedisURL)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("LUNAR_SERVER_ADDRESS", ":9999")
	t.Setenv("LUNAR_CALENDAR_LANGUAGE", "en")

	cfg, err := Load(writeConfig(t, "log:\n  level: warn\n"))
	require.NoError(t, err)

	assert.Equal(t, ":9999", cfg.Server.Address)
	assert.Equal(t, "en", cfg.Calendar.Language)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"Unknown level", "log:\n  level: verbose\n"},
		{"Unknown language", "calendar:\n  language: ru\n"},
		{"Negative rate limit", "server:\n  rate_limit: -1\n"},
		{"Bad duration", "server:\n  rate_window: soon\n"},
		{"Zero duration", "daemon:\n  rollover_check: 0s\n"},
		{"Bad redis url", "cache:\n  redis_url: localhost:6379\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestGetters_Fallback(t *testing.T) {
	server := ServerConfig{RateWindow: "garbage", ShutdownTimeout: ""}
	assert.Equal(t, time.Minute, server.GetRateWindow())
	assert.Equal(t, 10*time.Second, server.GetShutdownTimeout())

	daemon := DaemonConfig{RolloverCheck: "-5s"}
	assert.Equal(t, time.Minute, daemon.GetRolloverCheck())

	cache := CacheConfig{TTL: "2h"}
	assert.Equal(t, 2*time.Hour, cache.GetTTL())
}
