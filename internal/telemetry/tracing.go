package telemetry

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/opensource-finance/kestrel/internal/domain"
)

// Tracer returns a tracer from the global provider, or a no-op tracer when
// tracing is disabled. Exporter setup belongs to the embedding process.
func Tracer(cfg domain.TracingConfig) trace.Tracer {
	if !cfg.Enabled {
		return noop.NewTracerProvider().Tracer(cfg.ServiceName)
	}
	name := cfg.ServiceName
	if name == "" {
		name = "kestrel"
	}
	return otel.Tracer(name)
}
