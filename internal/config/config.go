package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
	"golang.org/x/crypto/bcrypt"
)

// Storage drivers accepted by STORAGE_DRIVER.
const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Config holds runtime configuration sourced from env vars.
type Config struct {
	Port          string   `env:"PORT" envDefault:"8080"`
	StorageDriver string   `env:"STORAGE_DRIVER" envDefault:"postgres"`
	DatabaseURL   string   `env:"DATABASE_URL"`
	JWTSecret     string   `env:"JWT_SECRET"`
	JWTIssuer     string   `env:"JWT_ISSUER" envDefault:"task-tracker"`
	AdminKey      string   `env:"ADMIN_SIGNUP_KEY" envDefault:"2134"`
	BcryptCost    int      `env:"BCRYPT_COST" envDefault:"10"`
	CORSOrigins   []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
}

// Load reads configuration from the environment and performs minimal validation.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	cfg.Port = strings.TrimSpace(cfg.Port)
	cfg.DatabaseURL = strings.TrimSpace(cfg.DatabaseURL)
	cfg.JWTSecret = strings.TrimSpace(cfg.JWTSecret)
	cfg.StorageDriver = strings.ToLower(strings.TrimSpace(cfg.StorageDriver))
	cfg.CORSOrigins = normalizeOrigins(cfg.CORSOrigins)

	if cfg.BcryptCost < bcrypt.MinCost || cfg.BcryptCost > bcrypt.MaxCost {
		cfg.BcryptCost = bcrypt.DefaultCost
	}

	switch cfg.StorageDriver {
	case DriverPostgres:
		if cfg.DatabaseURL == "" {
			return Config{}, errors.New("DATABASE_URL is required")
		}
	case DriverMemory:
	default:
		return Config{}, fmt.Errorf("unsupported STORAGE_DRIVER %q", cfg.StorageDriver)
	}
	if cfg.JWTSecret == "" {
		return Config{}, errors.New("JWT_SECRET is required")
	}

	return cfg, nil
}

// HTTPAddress returns the host:port pair for the HTTP server to bind to.
func (c Config) HTTPAddress() string {
	return fmt.Sprintf(":%s", c.Port)
}

func normalizeOrigins(in []string) []string {
	var out []string
	for _, part := range in {
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
