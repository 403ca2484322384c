package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

const devSecret = "dev-secret-change-in-production"

// Config holds process-wide settings, loaded once at startup and read-only
// afterwards.
type Config struct {
	Port         string        `env:"PORT" envDefault:"8000"`
	Env          string        `env:"ENV" envDefault:"development"`
	DatabaseDSN  string        `env:"DATABASE_DSN" envDefault:"root:password@tcp(127.0.0.1:3306)/taskforge?parseTime=true"`
	JWTSecret    string        `env:"JWT_SECRET" envDefault:"dev-secret-change-in-production"`
	JWTAlgorithm string        `env:"JWT_ALGORITHM" envDefault:"HS256"`
	TokenTTL     time.Duration `env:"TOKEN_TTL" envDefault:"30m"`
}

// Load parses configuration from environment variables.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.Env == "production" && cfg.JWTSecret == devSecret {
		return Config{}, fmt.Errorf("JWT_SECRET must be set in production environment")
	}

	return cfg, nil
}
