package observer

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/nevindra/tgbot"
	"github.com/nevindra/tgbot/types"
)

// ObservedHandler wraps a tgbot.Handler with a span and metrics per update.
type ObservedHandler struct {
	inner tgbot.Handler
	inst  *Instruments
}

func WrapHandler(inner tgbot.Handler, inst *Instruments) *ObservedHandler {
	return &ObservedHandler{inner: inner, inst: inst}
}

// Middleware returns WrapHandler as a tgbot.Middleware for Router.Use.
func Middleware(inst *Instruments) tgbot.Middleware {
	return func(next tgbot.Handler) tgbot.Handler { return WrapHandler(next, inst) }
}

func (o *ObservedHandler) HandleUpdate(ctx context.Context, u types.Update) error {
	ctx, span := o.inst.Tracer.Start(ctx, "tgbot.handle_update",
		trace.WithSpanKind(trace.SpanKindConsumer),
		trace.WithAttributes(
			AttrUpdateID.Int64(u.ID),
			AttrUpdateKind.String(string(u.Kind)),
		))
	defer span.End()
	start := time.Now()

	err := o.inner.HandleUpdate(ctx, u)

	status := "ok"
	if err != nil {
		status = "error"
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	o.inst.Updates.Add(ctx, 1, metric.WithAttributes(
		AttrUpdateKind.String(string(u.Kind)),
		AttrStatus.String(status),
	))
	o.inst.UpdateDuration.Record(ctx, float64(time.Since(start).Milliseconds()),
		metric.WithAttributes(AttrUpdateKind.String(string(u.Kind))))
	return err
}

var _ tgbot.Handler = (*ObservedHandler)(nil)
