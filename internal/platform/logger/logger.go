package logger

import (
	"log/slog"
	"os"
)

// New returns the process logger: JSON in production so log shippers stay
// happy, text for local development.
func New(production bool) *slog.Logger {
	if production {
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}
