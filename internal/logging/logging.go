// Package logging configures the process-wide structured logger.
package logging

import (
	"io"
	"log"
	"log/slog"
	"os"
	"strings"
)

// ParseLevel maps a level name to a slog level. Unknown names fall back to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewLogger returns a JSON logger that tags every record with the service name.
func NewLogger(w io.Writer, service, level string) *slog.Logger {
	lvl := ParseLevel(level)
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:     lvl,
		AddSource: lvl == slog.LevelDebug,
	})
	return slog.New(handler).With("service", service)
}

// Setup installs a JSON logger on stderr as the slog default and routes the
// standard log package through it.
func Setup(service, level string) *slog.Logger {
	if env := os.Getenv("LOG_LEVEL"); env != "" {
		level = env
	}
	logger := NewLogger(os.Stderr, service, level)
	slog.SetDefault(logger)
	log.SetFlags(0)
	return logger
}
