package app

import (
	"io"
	"log/slog"
)

// newLogger creates an isolated slog.Logger writing to outW. It does not set
// the global logger. Unknown levels fall back to info; any format other than
// "json" is text.
func newLogger(levelStr, formatStr string, outW io.Writer) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(levelStr)); err != nil {
		level = slog.LevelInfo
	}

	handlerOpts := &slog.HandlerOptions{Level: level}
	if formatStr == "json" {
		return slog.New(slog.NewJSONHandler(outW, handlerOpts)).With("app", "conduit")
	}
	return slog.New(slog.NewTextHandler(outW, handlerOpts)).With("app", "conduit")
}
