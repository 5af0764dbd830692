package logger

import (
	"context"
	"io"
	"os"
	"time"

	"lolstats/pkg/config"

	"github.com/rs/zerolog"
)

// New creates the application logger.
// Console output is used for the "console" format, JSON otherwise.
// Extra writers receive the same JSON lines (used for the log archive).
func New(cfg config.LogConfiguration, extra ...io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}

	var out io.Writer = os.Stdout
	if cfg.Format == "console" {
		out = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.DateTime}
	}

	if len(extra) > 0 {
		out = zerolog.MultiLevelWriter(append([]io.Writer{out}, extra...)...)
	}

	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

// Nop returns a disabled logger, mostly for tests.
func Nop() zerolog.Logger {
	return zerolog.Nop()
}

// WithContext stores the logger in the context.
func WithContext(ctx context.Context, l zerolog.Logger) context.Context {
	return l.WithContext(ctx)
}

// Ctx returns the logger stored in the context, or the fallback when there is none.
func Ctx(ctx context.Context, fallback zerolog.Logger) *zerolog.Logger {
	if l := zerolog.Ctx(ctx); l != disabled {
		return l
	}
	return &fallback
}

// zerolog returns this pointer when no logger was stored.
var disabled = zerolog.Ctx(context.Background())
