package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/pashaarshad/smart-recycle-nexus-99/internal/flagx"
	"github.com/pashaarshad/smart-recycle-nexus-99/internal/timex"
)

// JsonConfig is the on-disk shape of the config file. Pointer fields tell
// "absent" apart from "empty".
type JsonConfig struct {
	StoreDriver  *string         `json:"store_driver"`
	StoreDSN     *string         `json:"store_dsn"`
	StoreTimeout *timex.Duration `json:"store_timeout"`
	LogLevel     *string         `json:"log_level"`
	LogFormat    *string         `json:"log_format"`
	LogBackend   *string         `json:"log_backend"`
}

// parseJson overlays cfg with the file named by -c/-config, if any.
func parseJson(cfg *Config, args []string) error {
	path := flagx.ConfigFile(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("decode config %s: %w", path, err)
	}

	setString(&cfg.StoreDriver, jc.StoreDriver)
	setString(&cfg.StoreDSN, jc.StoreDSN)
	setString(&cfg.LogLevel, jc.LogLevel)
	setString(&cfg.LogFormat, jc.LogFormat)
	setString(&cfg.LogBackend, jc.LogBackend)
	if jc.StoreTimeout != nil {
		cfg.StoreTimeout = jc.StoreTimeout.Duration
	}
	return nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
