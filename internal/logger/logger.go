package logger

import (
	"log/slog"
	"os"
)

// NewLogger builds the application logger. The returned LevelVar allows the
// level to be raised later, e.g. by a --debug flag.
func NewLogger(level slog.Level) (*slog.Logger, *slog.LevelVar) {
	levelVar := new(slog.LevelVar)
	levelVar.Set(level)

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: levelVar,
	})

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger, levelVar
}
