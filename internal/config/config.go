package config

import (
	"os"
	"time"
)

// Config holds runtime settings for the recycle CLI.
type Config struct {
	StoreDriver  string        `env:"STORE_DRIVER"`
	StoreDSN     string        `env:"STORE_DSN"`
	StoreTimeout time.Duration `env:"STORE_TIMEOUT"`
	LogLevel     string        `env:"LOG_LEVEL"`
	LogFormat    string        `env:"LOG_FORMAT"`
	LogBackend   string        `env:"LOG_BACKEND"`
}

// LoadDefaults populates c with defaults suitable for a local run.
func (c *Config) LoadDefaults() {
	c.StoreDriver = "sqlite"
	c.StoreDSN = "recycle.db"
	c.StoreTimeout = 5 * time.Second
	c.LogLevel = "warn"
	c.LogFormat = "text"
	c.LogBackend = "slog"
}

// Load builds a Config from defaults, environment, the optional JSON file
// and flags found in args, in that order.
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfig is Load over os.Args. It panics on invalid configuration.
func LoadConfig() *Config {
	cfg, err := Load(os.Args[1:])
	if err != nil {
		panic(err)
	}
	return cfg
}
