// internal/logging/logger.go
package logging

import (
	"log/slog"
	"os"
	"strings"

	"nutribot/internal/config"
)

// New builds the process-wide logger from LogConfig and installs it with
// slog.SetDefault so library code logging through the default logger uses
// the same handler. Format "json" is intended for deployed instances; any
// other value falls back to the text handler. Unknown levels become info.
func New(cfg config.LogConfig) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: parseLevel(cfg.Level),
	}

	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)

	return logger
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
