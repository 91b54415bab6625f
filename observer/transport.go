package observer

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.opentelemetry.io/otel/codes"
	otellog "go.opentelemetry.io/otel/log"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/nevindra/tgbot"
	"github.com/nevindra/tgbot/request"
)

// ObservedTransport wraps a tgbot.Transport with OTEL instrumentation.
type ObservedTransport struct {
	inner tgbot.Transport
	inst  *Instruments
}

// WrapTransport returns an instrumented transport that emits a span, metrics
// and a log record per Bot API call.
func WrapTransport(inner tgbot.Transport, inst *Instruments) *ObservedTransport {
	return &ObservedTransport{inner: inner, inst: inst}
}

func (o *ObservedTransport) Do(ctx context.Context, req request.Request) (json.RawMessage, error) {
	ctx, span := o.inst.Tracer.Start(ctx, "tgbot."+req.Name(),
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			AttrMethod.String(req.Name()),
			AttrHTTPMethod.String(req.Verb()),
			AttrBodyKind.String(bodyKind(req.Body())),
		))
	defer span.End()
	start := time.Now()

	raw, err := o.inner.Do(ctx, req)

	durationMs := float64(time.Since(start).Milliseconds())
	status := "ok"
	code := 0
	if err != nil {
		status = "error"
		code = errorCode(err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		span.SetAttributes(AttrErrorCode.Int(code))
		var apiErr *tgbot.ErrAPI
		if errors.As(err, &apiErr) && apiErr.RetryAfter() > 0 {
			span.SetAttributes(AttrRetryAfter.Int(int(apiErr.RetryAfter() / time.Second)))
		}
	} else {
		span.SetAttributes(AttrResultSize.Int(len(raw)))
		o.inst.ResultBytes.Add(ctx, int64(len(raw)), metric.WithAttributes(AttrMethod.String(req.Name())))
	}

	o.inst.APIRequests.Add(ctx, 1, metric.WithAttributes(
		AttrMethod.String(req.Name()),
		AttrStatus.String(status),
		AttrErrorCode.Int(code),
	))
	o.inst.APIDuration.Record(ctx, durationMs, metric.WithAttributes(AttrMethod.String(req.Name())))

	var rec otellog.Record
	rec.SetSeverity(otellog.SeverityInfo)
	if err != nil {
		rec.SetSeverity(otellog.SeverityWarn)
	}
	rec.SetBody(otellog.StringValue("bot api call completed"))
	rec.AddAttributes(
		otellog.String("tgbot.method", req.Name()),
		otellog.String("status", status),
		otellog.Int("tgbot.error_code", code),
		otellog.Float64("tgbot.duration_ms", durationMs),
	)
	o.inst.Logger.Emit(ctx, rec)

	return raw, err
}

// errorCode returns the API error code or HTTP status carried by err, or -1
// for transport failures.
func errorCode(err error) int {
	var apiErr *tgbot.ErrAPI
	if errors.As(err, &apiErr) {
		return apiErr.Code
	}
	var httpErr *tgbot.ErrHTTP
	if errors.As(err, &httpErr) {
		return httpErr.Status
	}
	return -1
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

var _ tgbot.Transport = (*ObservedTransport)(nil)
