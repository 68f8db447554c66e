// Package config loads process configuration from environment variables.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"

	"missionlog/internal/storage"
)

// Config is the process-level configuration. Everything has a sensible
// default so a bare `ml` invocation works out of the box.
type Config struct {
	// DBPath overrides the database location.
	DBPath string `env:"ML_DB"`
	// User selects the profile to operate on.
	User string `env:"ML_USER" envDefault:"main"`
	// Debug switches the logger to development output.
	Debug bool `env:"ML_DEBUG"`
}

// Load parses the environment and fills in defaults.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.DBPath == "" {
		p, err := storage.DefaultDBPath()
		if err != nil {
			return Config{}, err
		}
		cfg.DBPath = p
	}
	return cfg, nil
}
