package app

import (
	"log/slog"
	"os"
)

// NewLogger returns a configured slog.Logger. Production always logs
// JSON regardless of LOG_FORMAT; source locations are only attached
// outside production.
func NewLogger(cfg *Config) *slog.Logger {
	if cfg != nil && cfg.IsProduction() {
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{}))
	}
	opts := &slog.HandlerOptions{AddSource: true}
	if cfg != nil && cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
