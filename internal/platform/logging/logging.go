// Package logging builds the process logger.
package logging

import (
	"io"
	"log/slog"
)

// New returns a JSON logger writing to w at level and installs it as the
// slog default.
func New(w io.Writer, level slog.Level) *slog.Logger {
	logger := slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger
}
