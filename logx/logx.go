// Package logx provides the standard logger construction for mcpchat.
// Everything logs to stderr: stdout is reserved for the interactive
// conversation output.
package logx

import (
	"io"
	"log/slog"
	"os"
)

// New creates the process logger writing text records to stderr.
func New(level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NewDefault creates a logger at info level.
func NewDefault() *slog.Logger {
	return New(slog.LevelInfo)
}

// Component derives a child logger tagged with a component name so
// transport, host, and chat records are distinguishable.
func Component(base *slog.Logger, name string) *slog.Logger {
	if base == nil {
		base = NewDefault()
	}
	return base.With(slog.String("component", name))
}

// Discard returns a logger that drops everything. Used by tests and as
// the fallback when a component is constructed without a logger.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
