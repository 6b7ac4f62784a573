// Package logging provides structured logging for homeroute built on zerolog.
//
// All components obtain loggers through ComponentLogger or FromContext so log
// lines carry a consistent "component" field, and every service invocation is
// tagged with a trace ID for correlating the geocode/directions/cache sequence
// of a single request.
package logging

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Config controls logger construction.
type Config struct {
	// Level is a zerolog level name ("debug", "info", "warn", "error").
	Level string

	// Format is "console" for human-readable output or "json" for raw JSON.
	Format string

	// File is an optional path; when set, logs are appended there in addition
	// to stderr.
	File string

	// Caller enables caller annotation on every event.
	Caller bool
}

// NewLogger builds a zerolog.Logger from cfg. An unparseable level falls back
// to info. A file that cannot be opened falls back to stderr-only output; the
// caller is not notified beyond the returned logger working normally.
func NewLogger(cfg Config) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil || cfg.Level == "" {
		lvl = zerolog.InfoLevel
	}

	var out io.Writer = os.Stderr
	if cfg.Format != "json" {
		out = zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		}
	}

	if cfg.File != "" {
		f, fileErr := os.OpenFile(cfg.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
		if fileErr == nil {
			out = zerolog.MultiLevelWriter(out, f)
		}
	}

	logCtx := zerolog.New(out).Level(lvl).With().Timestamp()
	if cfg.Caller {
		logCtx = logCtx.Caller()
	}
	return logCtx.Logger()
}

// ComponentLogger returns a child logger tagged with a component name.
func ComponentLogger(logger zerolog.Logger, component string) zerolog.Logger {
	return logger.With().Str("component", component).Logger()
}

// FromContext returns the logger attached to ctx, or a disabled logger when
// none was attached. Components that receive a context should prefer this over
// package-level loggers.
func FromContext(ctx context.Context) *zerolog.Logger {
	return zerolog.Ctx(ctx)
}
