package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envOf(vars map[string]string) func(string) string {
	return func(key string) string { return vars[key] }
}

func TestFromEnvDefaults(t *testing.T) {
	cfg, err := FromEnv(envOf(nil))
	require.NoError(t, err)

	assert.Equal(t, "tasks.db", cfg.DatabaseURL)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "/api", cfg.BasePath)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.AllowedOrigins)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.HealthProbeInterval)
	assert.Equal(t, 15*time.Second, cfg.ShutdownTimeout)
}

func TestFromEnvOverrides(t *testing.T) {
	cfg, err := FromEnv(envOf(map[string]string{
		"DATABASE_URL":          " postgres://u:p@db:5432/tasks ",
		"HTTP_ADDR":             "127.0.0.1:9000",
		"API_BASE_PATH":         "v1/",
		"CORS_ALLOWED_ORIGINS":  "https://a.example, ,https://b.example",
		"LOG_FORMAT":            "json",
		"HEALTH_PROBE_INTERVAL": "0",
		"SHUTDOWN_TIMEOUT":      "2s",
	}))
	require.NoError(t, err)

	assert.Equal(t, "postgres://u:p@db:5432/tasks", cfg.DatabaseURL)
	assert.Equal(t, "127.0.0.1:9000", cfg.HTTPAddr)
	assert.Equal(t, "/v1", cfg.BasePath)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Zero(t, cfg.HealthProbeInterval)
	assert.Equal(t, 2*time.Second, cfg.ShutdownTimeout)
}

func TestFromEnvRootBasePath(t *testing.T) {
	cfg, err := FromEnv(envOf(map[string]string{"API_BASE_PATH": "/"}))
	require.NoError(t, err)
	assert.Equal(t, "/", cfg.BasePath)
}

func TestFromEnvErrors(t *testing.T) {
	tests := map[string]map[string]string{
		"bad interval":  {"HEALTH_PROBE_INTERVAL": "soon"},
		"negative":      {"HEALTH_PROBE_INTERVAL": "-5s"},
		"zero shutdown": {"SHUTDOWN_TIMEOUT": "0s"},
		"log format":    {"LOG_FORMAT": "xml"},
	}
	for name, vars := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := FromEnv(envOf(vars))
			assert.Error(t, err)
		})
	}
}
