package logging

import (
	"io"
	"log/slog"
)

// Level maps a config level name to a slog level. Unknown names are info.
func Level(name string) slog.Level {
	switch name {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Setup installs a JSON logger writing to w as the slog default.
func Setup(w io.Writer, level string) *slog.Logger {
	log := slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: Level(level)}))
	slog.SetDefault(log)
	return log
}
