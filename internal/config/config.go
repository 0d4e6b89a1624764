package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Store backend names accepted in STORE_BACKEND.
const (
	BackendMemory   = "memory"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

// Config holds runtime configuration sourced from env vars.
type Config struct {
	Port          string
	SessionSecret string
	SessionTTL    time.Duration
	TokenTTL      time.Duration
	StoreBackend  string
	DatabaseURL   string
	SQLitePath    string
	StaticDir     string
	CORSOrigins   []string
}

// Load reads configuration from the environment and performs minimal
// validation.
func Load() (Config, error) {
	cfg := Config{
		Port:          fallback(os.Getenv("PORT"), "8080"),
		SessionSecret: strings.TrimSpace(os.Getenv("SESSION_SECRET")),
		SessionTTL:    minutes(os.Getenv("SESSION_TTL_MINUTES"), 60),
		TokenTTL:      minutes(os.Getenv("TOKEN_TTL_MINUTES"), 60),
		StoreBackend:  fallback(os.Getenv("STORE_BACKEND"), BackendMemory),
		DatabaseURL:   strings.TrimSpace(os.Getenv("DATABASE_URL")),
		SQLitePath:    fallback(os.Getenv("SQLITE_PATH"), "./data/choreboard.db"),
		StaticDir:     fallback(os.Getenv("STATIC_DIR"), "./web"),
		CORSOrigins:   parseCSV(fallback(os.Getenv("CORS_ALLOWED_ORIGINS"), "*")),
	}

	if cfg.SessionSecret == "" {
		return Config{}, errors.New("SESSION_SECRET is required")
	}

	switch cfg.StoreBackend {
	case BackendMemory, BackendSQLite:
	case BackendPostgres:
		if cfg.DatabaseURL == "" {
			return Config{}, errors.New("DATABASE_URL is required for the postgres backend")
		}
	default:
		return Config{}, fmt.Errorf("unknown STORE_BACKEND %q", cfg.StoreBackend)
	}

	return cfg, nil
}

// HTTPAddress returns the host:port pair for the HTTP server to bind to.
func (c Config) HTTPAddress() string {
	return fmt.Sprintf(":%s", c.Port)
}

func fallback(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return strings.TrimSpace(value)
}

func minutes(value string, def int) time.Duration {
	if parsed, err := strconv.Atoi(strings.TrimSpace(value)); err == nil && parsed > 0 {
		return time.Duration(parsed) * time.Minute
	}
	return time.Duration(def) * time.Minute
}

func parseCSV(input string) []string {
	parts := strings.Split(input, ",")
	var out []string
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}
