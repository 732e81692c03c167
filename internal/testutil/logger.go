package testutil

import (
	"io"
	"log/slog"
)

// NopLogger returns a logger that discards everything
func NopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
