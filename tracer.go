package tgbot

import (
	"context"
	"encoding/json"

	"github.com/nevindra/tgbot/request"
)

// Tracer creates spans around Bot API calls and update handling.
// The observer package provides an OTEL-backed implementation via NewTracer().
type Tracer interface {
	// Start creates a new span with the given name and optional attributes.
	// Callers must call Span.End() when the operation completes.
	Start(ctx context.Context, name string, attrs ...SpanAttr) (context.Context, Span)
}

// Span represents a traced operation.
type Span interface {
	SetAttr(attrs ...SpanAttr)
	// Event records a named event on the span timeline.
	Event(name string, attrs ...SpanAttr)
	// Error records an error on the span and marks it as failed.
	Error(err error)
	// End completes the span. Must be called exactly once.
	End()
}

// SpanAttr is a key-value attribute attached to a span or event.
type SpanAttr struct {
	Key   string
	Value any
}

func StringAttr(k, v string) SpanAttr { return SpanAttr{Key: k, Value: v} }

func IntAttr(k string, v int) SpanAttr { return SpanAttr{Key: k, Value: v} }

func BoolAttr(k string, v bool) SpanAttr { return SpanAttr{Key: k, Value: v} }

func Float64Attr(k string, v float64) SpanAttr { return SpanAttr{Key: k, Value: v} }

type tracingTransport struct {
	inner  Transport
	tracer Tracer
}

// WithTracing wraps t so that every call runs inside a "tgbot.<method>" span.
// A nil tracer returns t unchanged.
func WithTracing(t Transport, tracer Tracer) Transport {
	if tracer == nil {
		return t
	}
	return &tracingTransport{inner: t, tracer: tracer}
}

func (t *tracingTransport) Do(ctx context.Context, req request.Request) (json.RawMessage, error) {
	ctx, span := t.tracer.Start(ctx, "tgbot."+req.Name(),
		StringAttr("tgbot.method", req.Name()),
		StringAttr("http.method", req.Verb()),
		StringAttr("tgbot.body", bodyKind(req.Body())))
	defer span.End()

	raw, err := t.inner.Do(ctx, req)
	if err != nil {
		span.SetAttr(IntAttr("tgbot.status", statusOf(err)))
		span.Error(err)
		return nil, err
	}
	span.SetAttr(IntAttr("tgbot.result_bytes", len(raw)))
	return raw, nil
}

func bodyKind(b request.Body) string {
	switch b.(type) {
	case request.JSONBody:
		return "json"
	case request.FormBody:
		return "form"
	}
	return "empty"
}
