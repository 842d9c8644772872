package logger

import (
	"log/slog"
	"os"
)

// NewLogger builds the application logger. The returned LevelVar lets the CLI
// raise the level to Debug once flags are parsed.
func NewLogger() (*slog.Logger, *slog.LevelVar) {
	level := new(slog.LevelVar)
	level.Set(slog.LevelInfo)

	opts := &slog.HandlerOptions{
		Level: level,
	}

	handler := slog.NewTextHandler(os.Stderr, opts)

	logger := slog.New(handler)

	slog.SetDefault(logger)
	return logger, level
}
