package oteltrace

import (
	"context"

	"github.com/Zhima-Mochi/customer-events/internal/observability"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const defaultName = "customer-events"

type tracer struct{ t trace.Tracer }

// New returns a tracer resolved from the global provider. Until a
// sdktrace.TracerProvider is installed with otel.SetTracerProvider, spans are no-ops
// that still propagate context.
func New(name string) observability.Tracer {
	if name == "" {
		name = defaultName
	}
	return &tracer{t: otel.Tracer(name)}
}

// FromProvider binds the tracer to an explicit provider instead of the global one.
func FromProvider(tp trace.TracerProvider, name string) observability.Tracer {
	if tp == nil {
		return New(name)
	}
	if name == "" {
		name = defaultName
	}
	return &tracer{t: tp.Tracer(name)}
}

func (t *tracer) Start(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return t.t.Start(ctx, name, trace.WithAttributes(attrs...))
}
