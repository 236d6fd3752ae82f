// Package config loads server settings from the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const devJWTSecret = "meetsplit-dev-secret"

// Config holds the server settings.
type Config struct {
	Env         string // "dev" or anything else for production-like runs
	Port        int
	DBDriver    string
	DBDSN       string
	JWTSecret   string
	TokenTTL    time.Duration
	LogLevel    string
	CORSOrigins []string
	PublicURL   string
}

// Load reads .env from the working directory, if present, and then the
// process environment. Real environment variables win over .env entries.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}
	return FromEnv()
}

// FromEnv builds a Config from the process environment only.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Env:         getEnv("APP_ENV", "dev"),
		DBDriver:    getEnv("DB_DRIVER", "sqlite"),
		DBDSN:       getEnv("DB_DSN", "./data/meetsplit.db"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		CORSOrigins: splitCSV(getEnv("CORS_ORIGINS", "http://localhost:3000")),
	}

	port, err := strconv.Atoi(getEnv("PORT", "8080"))
	if err != nil || port <= 0 || port > 65535 {
		return nil, fmt.Errorf("invalid PORT %q", os.Getenv("PORT"))
	}
	cfg.Port = port

	ttl, err := time.ParseDuration(getEnv("TOKEN_TTL", "30m"))
	if err != nil || ttl <= 0 {
		return nil, fmt.Errorf("invalid TOKEN_TTL %q", os.Getenv("TOKEN_TTL"))
	}
	cfg.TokenTTL = ttl

	cfg.PublicURL = strings.TrimRight(getEnv("PUBLIC_URL", fmt.Sprintf("http://localhost:%d", port)), "/")

	if cfg.JWTSecret == "" {
		if cfg.Env != "dev" {
			return nil, errors.New("JWT_SECRET is required")
		}
		slog.Warn("JWT_SECRET not set, using the development secret")
		cfg.JWTSecret = devJWTSecret
	}

	return cfg, nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
