package logging

import (
	"context"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapLogger adapts a zap.SugaredLogger to Logger. The context is accepted
// for interface compatibility; zap does not read it.
type ZapLogger struct {
	l *zap.SugaredLogger
}

// NewZapLogger builds a zap core that writes to opts.Output (stderr by default).
func NewZapLogger(opts Options) (*ZapLogger, error) {
	level, err := zapcore.ParseLevel(normalizeZapLevel(opts.Level))
	if err != nil {
		return nil, fmt.Errorf("unknown log level %q", opts.Level)
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "timestamp"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encCfg.MessageKey = "message"
	encCfg.LevelKey = "level"

	var enc zapcore.Encoder
	switch strings.ToLower(opts.Format) {
	case "", "text":
		encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		enc = zapcore.NewConsoleEncoder(encCfg)
	case "json":
		enc = zapcore.NewJSONEncoder(encCfg)
	default:
		return nil, fmt.Errorf("unknown log format %q", opts.Format)
	}

	var ws zapcore.WriteSyncer = zapcore.Lock(os.Stderr)
	if opts.Output != nil {
		ws = zapcore.AddSync(opts.Output)
	}

	core := zapcore.NewCore(enc, ws, level)
	return NewZapFromCore(core), nil
}

// NewZapFromCore wraps an existing core; tests use it with zaptest/observer.
func NewZapFromCore(core zapcore.Core) *ZapLogger {
	return &ZapLogger{l: zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1)).Sugar()}
}

func normalizeZapLevel(level string) string {
	switch strings.ToLower(level) {
	case "":
		return "info"
	case "warning":
		return "warn"
	}
	return strings.ToLower(level)
}

func (z *ZapLogger) Debug(_ context.Context, msg string, args ...any) {
	z.l.Debugw(msg, args...)
}

func (z *ZapLogger) Info(_ context.Context, msg string, args ...any) {
	z.l.Infow(msg, args...)
}

func (z *ZapLogger) Warn(_ context.Context, msg string, args ...any) {
	z.l.Warnw(msg, args...)
}

func (z *ZapLogger) Error(_ context.Context, msg string, args ...any) {
	z.l.Errorw(msg, args...)
}

func (z *ZapLogger) With(args ...any) Logger {
	return &ZapLogger{l: z.l.With(args...)}
}

// Sync flushes buffered entries.
func (z *ZapLogger) Sync() error {
	return z.l.Sync()
}
