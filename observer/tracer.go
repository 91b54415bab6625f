package observer

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/nevindra/tgbot"
)

// otelTracer implements tgbot.Tracer using OpenTelemetry.
type otelTracer struct {
	inner trace.Tracer
}

// NewTracer returns a tgbot.Tracer backed by the global OTEL TracerProvider.
// Call Init first; otherwise spans go to a no-op backend.
func NewTracer() tgbot.Tracer {
	return &otelTracer{inner: otel.Tracer(scopeName)}
}

// TracerFrom returns a tgbot.Tracer using the tracer of inst.
func TracerFrom(inst *Instruments) tgbot.Tracer {
	return &otelTracer{inner: inst.Tracer}
}

func (t *otelTracer) Start(ctx context.Context, name string, attrs ...tgbot.SpanAttr) (context.Context, tgbot.Span) {
	ctx, span := t.inner.Start(ctx, name, trace.WithAttributes(toOTELAttrs(attrs)...))
	return ctx, &otelSpan{inner: span}
}

// otelSpan implements tgbot.Span using an OTEL trace.Span.
type otelSpan struct {
	inner trace.Span
}

func (s *otelSpan) SetAttr(attrs ...tgbot.SpanAttr) {
	s.inner.SetAttributes(toOTELAttrs(attrs)...)
}

func (s *otelSpan) Event(name string, attrs ...tgbot.SpanAttr) {
	s.inner.AddEvent(name, trace.WithAttributes(toOTELAttrs(attrs)...))
}

func (s *otelSpan) Error(err error) {
	s.inner.RecordError(err)
	s.inner.SetStatus(codes.Error, err.Error())
}

func (s *otelSpan) End() { s.inner.End() }

func toOTELAttrs(attrs []tgbot.SpanAttr) []attribute.KeyValue {
	out := make([]attribute.KeyValue, len(attrs))
	for i, a := range attrs {
		out[i] = toOTELAttr(a)
	}
	return out
}

func toOTELAttr(a tgbot.SpanAttr) attribute.KeyValue {
	switch v := a.Value.(type) {
	case string:
		return attribute.String(a.Key, v)
	case int:
		return attribute.Int(a.Key, v)
	case int64:
		return attribute.Int64(a.Key, v)
	case float64:
		return attribute.Float64(a.Key, v)
	case bool:
		return attribute.Bool(a.Key, v)
	default:
		return attribute.String(a.Key, fmt.Sprintf("%v", v))
	}
}

var (
	_ tgbot.Tracer = (*otelTracer)(nil)
	_ tgbot.Span   = (*otelSpan)(nil)
)
