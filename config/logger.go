package config

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// NewLogger returns a slog.Logger for the given environment and level.
// Production uses a JSON handler on stdout; otherwise a colored tint handler on stderr.
// level may be: debug, info, warn, error (default: info).
func NewLogger(environment, level string) *slog.Logger {
	if environment == EnvProduction {
		return newLogger(os.Stdout, environment, level)
	}
	return newLogger(os.Stderr, environment, level)
}

func newLogger(w io.Writer, environment, level string) *slog.Logger {
	lvl := ParseLevel(level)
	if environment == EnvProduction {
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl}))
	}
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      lvl,
		TimeFormat: time.Kitchen,
	}))
}

func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
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
