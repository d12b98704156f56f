// Package config provides environment-driven configuration for the
// lurebox gateway.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all gateway settings. Values come from LUREBOX_* environment
// variables with sensible defaults for local development.
type Config struct {
	// Server
	Port        string
	APIKey      string
	Environment string // development | production

	// Engagement
	ScamThreshold float64
	MaxTurns      int
	HardMaxTurns  int
	VocabPath     string

	// Session storage
	RedisAddr  string
	SessionTTL time.Duration

	// Report delivery
	ReportURL   string
	PostgresURL string

	// Remote reply generation
	GeneratorEnabled  bool
	GeneratorProvider string
	GeneratorAPIKey   string
	GeneratorModel    string
	GeneratorBaseURL  string
	GeneratorTimeout  time.Duration
}

// New loads configuration from the environment.
func New() *Config {
	cfg := &Config{
		Port:          GetEnv("LUREBOX_PORT", "8080"),
		APIKey:        GetEnv("LUREBOX_API_KEY", ""),
		Environment:   GetEnv("LUREBOX_ENV", "development"),
		ScamThreshold: GetEnvFloat("LUREBOX_SCAM_THRESHOLD", 0.4),
		MaxTurns:      GetEnvInt("LUREBOX_MAX_TURNS", 15),
		HardMaxTurns:  GetEnvInt("LUREBOX_HARD_MAX_TURNS", 20),
		VocabPath:     GetEnv("LUREBOX_VOCAB_PATH", ""),
		RedisAddr:     GetEnv("LUREBOX_REDIS_ADDR", ""),
		SessionTTL:    GetEnvDuration("LUREBOX_SESSION_TTL", 30*time.Minute),
		ReportURL:     GetEnv("LUREBOX_REPORT_URL", ""),
		PostgresURL:   GetEnv("LUREBOX_POSTGRES_URL", ""),

		GeneratorProvider: GetEnv("LUREBOX_GENERATOR_PROVIDER", "ollama"),
		GeneratorAPIKey:   GetEnv("LUREBOX_GENERATOR_API_KEY", ""),
		GeneratorModel:    GetEnv("LUREBOX_GENERATOR_MODEL", ""),
		GeneratorBaseURL:  GetEnv("LUREBOX_GENERATOR_BASE_URL", ""),
		GeneratorTimeout:  GetEnvDuration("LUREBOX_GENERATOR_TIMEOUT", 30*time.Second),
	}

	// Remote generation is opt-in. Auto-enable when a provider is
	// explicitly configured with credentials, or for local ollama when a
	// base URL is given.
	cfg.GeneratorEnabled = GetEnvBool("LUREBOX_GENERATOR_ENABLED",
		cfg.GeneratorAPIKey != "" || (cfg.GeneratorProvider == "ollama" && cfg.GeneratorBaseURL != ""))

	return cfg
}

// Validate checks for misconfiguration that should stop startup.
func (c *Config) Validate() error {
	if c.Environment == "production" && c.APIKey == "" {
		return fmt.Errorf("LUREBOX_API_KEY is required in production")
	}
	if c.ScamThreshold < 0 || c.ScamThreshold > 1 {
		return fmt.Errorf("LUREBOX_SCAM_THRESHOLD must be in [0,1], got %v", c.ScamThreshold)
	}
	if c.MaxTurns <= 0 {
		return fmt.Errorf("LUREBOX_MAX_TURNS must be positive, got %d", c.MaxTurns)
	}
	if c.HardMaxTurns < c.MaxTurns {
		return fmt.Errorf("LUREBOX_HARD_MAX_TURNS (%d) must be >= LUREBOX_MAX_TURNS (%d)",
			c.HardMaxTurns, c.MaxTurns)
	}
	return nil
}

// GetEnv returns the value of an environment variable or a default.
func GetEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// GetEnvBool parses a boolean environment variable ("true", "1", "yes").
func GetEnvBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	switch strings.ToLower(v) {
	case "true", "1", "yes", "on":
		return true
	case "false", "0", "no", "off":
		return false
	}
	return def
}

// GetEnvInt parses an integer environment variable.
func GetEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

// GetEnvFloat parses a float environment variable.
func GetEnvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

// GetEnvDuration parses a duration environment variable ("30s", "5m").
func GetEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
