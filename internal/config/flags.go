package config

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/pashaarshad/smart-recycle-nexus-99/internal/flagx"
)

var ownFlags = []string{"-d", "-s", "-t", "-l", "-f", "-b"}

// parseFlags overlays cfg with the flags it owns; other arguments in args
// are ignored.
func parseFlags(cfg *Config, args []string) error {
	fs := flag.NewFlagSet("recycle", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.StoreDriver, "d", cfg.StoreDriver, "store driver (sqlite, postgres, memory)")
	fs.StringVar(&cfg.StoreDSN, "s", cfg.StoreDSN, "store DSN")
	timeout := fs.Int("t", int(cfg.StoreTimeout.Seconds()), "store operation timeout (in seconds)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.LogFormat, "f", cfg.LogFormat, "log format (text, json)")
	fs.StringVar(&cfg.LogBackend, "b", cfg.LogBackend, "log backend (slog, zap)")

	if err := fs.Parse(flagx.FilterArgs(args, ownFlags)); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			cfg.StoreTimeout = time.Duration(*timeout) * time.Second
		}
	})
	return nil
}
