// Package config loads server configuration from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds all runtime configuration, populated from environment
// variables via struct tags.
type Config struct {
	Port     int    `env:"PORT" envDefault:"8080"`
	DBPath   string `env:"DB_PATH" envDefault:"data/studyguide.db"`
	LogLevel int    `env:"LOG_LEVEL" envDefault:"0"` // slog levels: -4 debug, 0 info, 4 warn, 8 error
}

// Load reads a .env file if one is present (development convenience; real
// environment variables win) and parses the environment into a Config.
func Load() (Config, error) {
	_ = godotenv.Load() // missing .env is fine

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config from environment: %w", err)
	}

	return cfg, nil
}
