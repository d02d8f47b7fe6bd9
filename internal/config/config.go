package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config keeps runtime settings for the API server.
type Config struct {
	DatabaseURL         string
	HTTPAddr            string
	BasePath            string
	AllowedOrigins      []string
	LogLevel            string
	LogFormat           string
	HealthProbeInterval time.Duration
	ShutdownTimeout     time.Duration
}

// Load reads configuration from environment variables with sane defaults.
// A .env file in the working directory is loaded first when present; variables
// already set in the environment win.
func Load() (Config, error) {
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from the given lookup function.
func FromEnv(getenv func(string) string) (Config, error) {
	get := func(key string) string { return strings.TrimSpace(getenv(key)) }

	cfg := Config{
		DatabaseURL:    get("DATABASE_URL"),
		HTTPAddr:       get("HTTP_ADDR"),
		BasePath:       get("API_BASE_PATH"),
		AllowedOrigins: splitList(get("CORS_ALLOWED_ORIGINS")),
		LogLevel:       get("LOG_LEVEL"),
		LogFormat:      get("LOG_FORMAT"),
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = "tasks.db"
	}
	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = ":8080"
	}
	if cfg.BasePath == "" {
		cfg.BasePath = "/api"
	}
	cfg.BasePath = "/" + strings.Trim(cfg.BasePath, "/")
	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = []string{"http://localhost:3000"}
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}
	if f := strings.ToLower(cfg.LogFormat); f != "text" && f != "json" {
		return cfg, fmt.Errorf("LOG_FORMAT must be text or json, got %q", cfg.LogFormat)
	}

	var err error
	if cfg.HealthProbeInterval, err = parseDuration(get("HEALTH_PROBE_INTERVAL"), 30*time.Second); err != nil {
		return cfg, fmt.Errorf("HEALTH_PROBE_INTERVAL: %w", err)
	}
	if cfg.ShutdownTimeout, err = parseDuration(get("SHUTDOWN_TIMEOUT"), 15*time.Second); err != nil {
		return cfg, fmt.Errorf("SHUTDOWN_TIMEOUT: %w", err)
	}
	if cfg.ShutdownTimeout == 0 {
		return cfg, fmt.Errorf("SHUTDOWN_TIMEOUT must be positive")
	}

	return cfg, nil
}

func parseDuration(raw string, def time.Duration) (time.Duration, error) {
	if raw == "" {
		return def, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("negative duration %s", raw)
	}
	return d, nil
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
