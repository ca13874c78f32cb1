package slogx

import (
	"log/slog"
	"os"
	"strings"
)

// Config carries the logger settings the application loads from env.
type Config struct {
	Service string // logical service name, e.g. "helios-auth"
	Version string
	Env     string // "dev" gets source locations and a text handler by default
	Level   string // "debug", "info", "warn", "error"
	Format  string // "json" or "text"; empty picks by Env
}

// New builds the process logger and installs it as the slog default.
// Every record carries the service identity so aggregated logs from the
// whole backend can be filtered per service.
func New(cfg Config) *slog.Logger {
	dev := cfg.Env == "dev"

	opts := &slog.HandlerOptions{
		AddSource: dev,
		Level:     parseLevel(cfg.Level),
	}

	format := strings.ToLower(cfg.Format)
	if format == "" && dev {
		format = "text"
	}

	var handler slog.Handler
	if format == "text" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	logger := slog.New(handler)
	if cfg.Service != "" {
		logger = logger.With(
			"service", cfg.Service,
			"version", cfg.Version,
			"env", cfg.Env,
		)
	}

	slog.SetDefault(logger)
	return logger
}

func parseLevel(lvl string) slog.Level {
	switch strings.ToLower(lvl) {
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
