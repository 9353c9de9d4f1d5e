// Package logger configures the process-wide structured logger and exposes
// component-scoped slog loggers used across the bot.
package logger

import (
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"
)

var (
	initOnce sync.Once
	levelVar slog.LevelVar

	// L is the base logger. It is valid after Init and falls back to the
	// slog default before that, so early call sites never hit a nil logger.
	L = slog.Default()

	// TG logs Telegram transport events.
	TG = L.With("component", "tg")
	// DB logs database events.
	DB = L.With("component", "db")
	// MIG logs database migration events.
	MIG = L.With("component", "db.migrate")
	// BOT logs conversation engine events.
	BOT = L.With("component", "bot")
)

// Init configures the global structured logger. It may be called only once;
// subsequent calls are no-ops.
func Init(level, format string) {
	initOnce.Do(func() {
		levelVar.Set(parseLevel(level))

		opts := &slog.HandlerOptions{Level: &levelVar}
		var handler slog.Handler
		switch strings.ToLower(strings.TrimSpace(format)) {
		case "text", "kv", "pretty":
			handler = slog.NewTextHandler(os.Stdout, opts)
		default:
			handler = slog.NewJSONHandler(os.Stdout, opts)
		}

		L = slog.New(handler)
		slog.SetDefault(L)
		wireComponents()
	})
}

func wireComponents() {
	TG = L.With("component", "tg")
	DB = L.With("component", "db")
	MIG = L.With("component", "db.migrate")
	BOT = L.With("component", "bot")
}

// Component constructs a logger scoped to the provided component attribute.
func Component(name string) *slog.Logger {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return L
	}
	return L.With("component", trimmed)
}

func parseLevel(raw string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
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

// Status maps error to a unified status string for logs.
func Status(err error) string {
	if err != nil {
		return "fail"
	}
	return "ok"
}

// Took returns rounded duration since start for compact logging.
func Took(start time.Time) time.Duration {
	return RoundMS(time.Since(start))
}

// RoundMS rounds duration to the nearest millisecond for consistent logging.
func RoundMS(d time.Duration) time.Duration {
	if d <= 0 {
		return 0
	}
	return d.Round(time.Millisecond)
}
