package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"autosuggest/internal/validation"
)

// Store backends.
const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// Environment
	Env string // "development", "production", etc.

	// Server
	ServerAddr string

	// Term store
	StoreBackend string // "postgres" or "memory"
	DatabaseURL  string
	SeedFile     string // YAML seed data, optional

	// Re-read SeedFile on this interval and insert new terms. Zero disables.
	SeedReloadInterval time.Duration

	// Image hosting collaborator. Suggestion image refs are resolved against this.
	ImageBaseURL string

	// Rate limiting. Uses Redis for counters when RedisURL is set, memory otherwise.
	RedisURL     string
	RateLimitMax int // requests per minute per IP

	// TLS
	TLSEnabled  bool
	TLSCertFile string
	TLSKeyFile  string

	// CORS
	CORSOrigins string // Comma-separated allowed origins

	// Logging
	LogLevel  string // debug, info, warn, error
	LogFormat string // text, json, logfmt

	// Site Branding
	SiteTitle string // env: SITE_TITLE, default: "Fast Autocomplete Search"
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		Env:          getEnv("ENV", "development"),
		ServerAddr:   getEnv("SERVER_ADDR", ":3000"),
		StoreBackend: getEnv("STORE_BACKEND", StorePostgres),
		DatabaseURL:  getEnv("DATABASE_URL", "postgres://localhost:5432/autosuggest?sslmode=disable"),
		SeedFile:     getEnv("SEED_FILE", "seed/terms.yaml"),
		ImageBaseURL: getEnv("IMAGE_BASE_URL", ""),
		RedisURL:     getEnv("REDIS_URL", ""),
		RateLimitMax: getEnvInt("RATE_LIMIT_MAX", 300),
		TLSEnabled:   getEnv("TLS_ENABLED", "") != "",
		TLSCertFile:  getEnv("TLS_CERT_FILE", ""),
		TLSKeyFile:   getEnv("TLS_KEY_FILE", ""),
		CORSOrigins:  getEnv("CORS_ORIGINS", ""),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		LogFormat:    getEnv("LOG_FORMAT", "text"),

		SeedReloadInterval: getEnvDuration("SEED_RELOAD_INTERVAL", 0),

		SiteTitle: getEnv("SITE_TITLE", "Fast Autocomplete Search"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil || d < 0 {
		return fallback
	}
	return d
}

// Validate checks settings that would otherwise fail at first use.
func (c *Config) Validate() error {
	if c.StoreBackend != StorePostgres && c.StoreBackend != StoreMemory {
		return fmt.Errorf("STORE_BACKEND must be %q or %q, got %q", StorePostgres, StoreMemory, c.StoreBackend)
	}
	if c.ImageBaseURL != "" {
		if ok, msg := validation.ValidateURL(c.ImageBaseURL); !ok {
			return fmt.Errorf("IMAGE_BASE_URL: %s", msg)
		}
	}
	if c.TLSEnabled && (c.TLSCertFile == "" || c.TLSKeyFile == "") {
		return errors.New("TLS_ENABLED requires TLS_CERT_FILE and TLS_KEY_FILE")
	}
	return nil
}

// IsDev returns true if the environment is set to development.
func (c *Config) IsDev() bool {
	return c.Env == "development" || c.Env == "dev"
}

// UseMemoryStore reports whether terms are served from the in-memory store.
func (c *Config) UseMemoryStore() bool {
	return c.StoreBackend == StoreMemory
}
