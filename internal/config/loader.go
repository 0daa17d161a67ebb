// Package config loads service configuration from the process environment,
// optionally seeded from a .env file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config captures environment driven configuration values for the service.
type Config struct {
	HTTPPort    int
	SQLiteDSN   string
	JWTSecret   string
	TokenTTL    time.Duration
	FrontendURL string
	Environment string
}

// Load parses configuration from the current process environment. A .env
// file in the working directory is read first when present; real environment
// variables win over file entries.
func Load() (Config, error) {
	// Missing .env is the normal case outside local development.
	_ = godotenv.Load()

	cfg := Config{
		HTTPPort:    8080,
		SQLiteDSN:   "file:scheduler.db?_pragma=foreign_keys(1)",
		TokenTTL:    time.Hour,
		FrontendURL: "http://localhost:3000",
		Environment: "production",
	}

	missing := make([]string, 0, 1)
	invalid := make([]string, 0, 2)

	if portValue := strings.TrimSpace(os.Getenv("PORT")); portValue != "" {
		port, err := strconv.Atoi(portValue)
		if err != nil || port <= 0 {
			invalid = append(invalid, "PORT")
		} else {
			cfg.HTTPPort = port
		}
	}

	if dsn := strings.TrimSpace(os.Getenv("SQLITE_DSN")); dsn != "" {
		cfg.SQLiteDSN = dsn
	}

	if secret := strings.TrimSpace(os.Getenv("JWT_SECRET")); secret == "" {
		missing = append(missing, "JWT_SECRET")
	} else {
		cfg.JWTSecret = secret
	}

	if ttlValue := strings.TrimSpace(os.Getenv("TOKEN_TTL")); ttlValue != "" {
		ttl, err := time.ParseDuration(ttlValue)
		if err != nil || ttl <= 0 {
			invalid = append(invalid, "TOKEN_TTL")
		} else {
			cfg.TokenTTL = ttl
		}
	}

	if frontend := strings.TrimSpace(os.Getenv("FRONTEND_URL")); frontend != "" {
		cfg.FrontendURL = strings.TrimRight(frontend, "/")
	}

	if environment := strings.TrimSpace(os.Getenv("ENVIRONMENT")); environment != "" {
		cfg.Environment = environment
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("invalid environment variable values: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}
