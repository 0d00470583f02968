// Package logging defines the structured-logging interface used by the
// recycle components, with slog and zap backed implementations.
package logging

import (
	"context"
	"fmt"
	"io"
	"strings"
)

// Logger is a context-aware, structured logger.
//
// The variadic args are interpreted as key–value pairs, e.g.:
//
//	log.Info(ctx, "pickup completed", "request_id", id, "user_id", userID)
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always includes the given key–value pairs.
	With(args ...any) Logger
}

// Options selects the backend and its output settings.
//
//	Backend: "slog" (default) or "zap"
//	Level:   "debug", "info" (default), "warn", "error"
//	Format:  "text" (default) or "json"
type Options struct {
	Backend string
	Level   string
	Format  string
	Output  io.Writer
}

// New builds a Logger for the given options.
func New(opts Options) (Logger, error) {
	switch strings.ToLower(opts.Backend) {
	case "", "slog":
		return newSlogFromOptions(opts)
	case "zap":
		return NewZapLogger(opts)
	default:
		return nil, fmt.Errorf("unknown log backend %q", opts.Backend)
	}
}

// Nop returns a logger that discards everything.
func Nop() Logger {
	return NewSlogLogger(discardSlog())
}
