package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// Config holds the process settings of the server and CLI
type Config struct {
	// Server
	Port        string
	CORSOrigins []string
	Env         string

	// Storage; an empty URL selects the in-memory store
	DatabaseURL string

	// Reference data override file (see TableLoader)
	TablesFile string

	// Logging
	LogLevel zerolog.Level

	// Per-client rate limit, requests per second and burst
	RateLimit float64
	RateBurst int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	level, err := zerolog.ParseLevel(strings.ToLower(getEnv("LOG_LEVEL", "info")))
	if err != nil {
		return nil, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	rateLimit, err := strconv.ParseFloat(getEnv("RATE_LIMIT", "10"), 64)
	if err != nil {
		return nil, fmt.Errorf("RATE_LIMIT must be a number: %w", err)
	}
	rateBurst, err := strconv.Atoi(getEnv("RATE_BURST", "20"))
	if err != nil {
		return nil, fmt.Errorf("RATE_BURST must be an integer: %w", err)
	}

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		CORSOrigins: strings.Split(getEnv("CORS_ORIGINS", "http://localhost:3000"), ","),
		Env:         getEnv("ENV", "development"),
		DatabaseURL: getEnv("DATABASE_URL", ""),
		TablesFile:  getEnv("TABLES_FILE", ""),
		LogLevel:    level,
		RateLimit:   rateLimit,
		RateBurst:   rateBurst,
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// IsProduction reports whether the process runs with ENV=production.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func (c *Config) validate() error {
	if port, err := strconv.Atoi(c.Port); err != nil || port <= 0 || port > 65535 {
		return fmt.Errorf("PORT must be a TCP port, got %q", c.Port)
	}
	if c.RateLimit <= 0 {
		return fmt.Errorf("RATE_LIMIT must be positive")
	}
	if c.RateBurst <= 0 {
		return fmt.Errorf("RATE_BURST must be positive")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
