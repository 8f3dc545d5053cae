// Package telemetry wires the ambient observability stack: structured
// logging, Prometheus scoring metrics and OpenTelemetry tracers.
package telemetry

import (
	"io"
	"log/slog"
	"strings"

	"github.com/opensource-finance/kestrel/internal/domain"
)

// NewLogger builds a slog logger from cfg. Unknown or empty levels fall back to info.
func NewLogger(cfg domain.LoggingConfig, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}

	if strings.EqualFold(cfg.Format, "text") {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

// ParseLevel maps debug, info, warn and error to their slog levels.
func ParseLevel(level string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return slog.LevelInfo
	}
	return l
}
