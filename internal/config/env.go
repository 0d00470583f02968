package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const envPrefix = "RECYCLE_"

// dotenvFiles are loaded before the environment is parsed.
var dotenvFiles = []string{".env"}

// parseEnv overlays cfg with RECYCLE_* variables. Unset variables leave the
// field untouched.
func parseEnv(cfg *Config) error {
	// A missing .env is the normal case.
	_ = godotenv.Load(dotenvFiles...)

	if err := env.ParseWithOptions(cfg, env.Options{Prefix: envPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
