package observer

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"go.opentelemetry.io/otel/codes"
	lognoop "go.opentelemetry.io/otel/log/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/nevindra/tgbot"
	"github.com/nevindra/tgbot/request"
	"github.com/nevindra/tgbot/types"
)

type harness struct {
	inst   *Instruments
	spans  *tracetest.SpanRecorder
	reader *sdkmetric.ManualReader
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	inst, err := NewInstruments(tp, mp, lognoop.NewLoggerProvider())
	if err != nil {
		t.Fatalf("NewInstruments: %v", err)
	}
	return &harness{inst: inst, spans: rec, reader: reader}
}

// sum returns the total of the int64 counter named name.
func (h *harness) sum(t *testing.T, name string) int64 {
	t.Helper()
	var rm metricdata.ResourceMetrics
	if err := h.reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("Collect: %v", err)
	}
	var total int64
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != name {
				continue
			}
			if s, ok := m.Data.(metricdata.Sum[int64]); ok {
				for _, dp := range s.DataPoints {
					total += dp.Value
				}
			}
		}
	}
	return total
}

func TestObservedTransportSuccess(t *testing.T) {
	h := newHarness(t)
	inner := tgbot.TransportFunc(func(context.Context, request.Request) (json.RawMessage, error) {
		return json.RawMessage(`true`), nil
	})
	tr := WrapTransport(inner, h.inst)

	raw, err := tr.Do(context.Background(), request.NewEmpty("logOut"))
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	if string(raw) != "true" {
		t.Errorf("raw = %s", raw)
	}

	ended := h.spans.Ended()
	if len(ended) != 1 {
		t.Fatalf("got %d spans, want 1", len(ended))
	}
	if ended[0].Name() != "tgbot.logOut" {
		t.Errorf("span name = %q", ended[0].Name())
	}
	if got := h.sum(t, "tgbot.api.requests"); got != 1 {
		t.Errorf("api.requests = %d, want 1", got)
	}
	if got := h.sum(t, "tgbot.api.result_bytes"); got != 4 {
		t.Errorf("result_bytes = %d, want 4", got)
	}
}

func TestObservedTransportError(t *testing.T) {
	h := newHarness(t)
	want := &tgbot.ErrAPI{Method: "sendMessage", Code: 429, Parameters: &types.ResponseParameters{RetryAfter: 2}}
	inner := tgbot.TransportFunc(func(context.Context, request.Request) (json.RawMessage, error) {
		return nil, want
	})

	_, err := WrapTransport(inner, h.inst).Do(context.Background(), request.NewJSON("sendMessage", map[string]int{"chat_id": 1}))
	if !errors.Is(err, want) {
		t.Fatalf("got %v, want %v", err, want)
	}
	span := h.spans.Ended()[0]
	if span.Status().Code != codes.Error {
		t.Errorf("status = %v, want error", span.Status().Code)
	}
	var found bool
	for _, a := range span.Attributes() {
		if a.Key == AttrRetryAfter && a.Value.AsInt64() == 2 {
			found = true
		}
	}
	if !found {
		t.Errorf("retry_after attribute missing: %v", span.Attributes())
	}
}

func TestErrorCode(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{&tgbot.ErrAPI{Code: 400}, 400},
		{&tgbot.ErrHTTP{Status: 502}, 502},
		{errors.New("dial tcp: refused"), -1},
	}
	for _, tt := range tests {
		if got := errorCode(tt.err); got != tt.want {
			t.Errorf("errorCode(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestObservedHandler(t *testing.T) {
	h := newHarness(t)
	fail := errors.New("boom")
	calls := 0
	inner := tgbot.HandlerFunc(func(context.Context, types.Update) error {
		calls++
		if calls == 2 {
			return fail
		}
		return nil
	})
	r := tgbot.NewRouter().Use(Middleware(h.inst)).Fallback(inner)

	u := types.Update{ID: 1, Kind: types.UpdatePoll}
	if err := r.HandleUpdate(context.Background(), u); err != nil {
		t.Fatalf("first: %v", err)
	}
	if err := r.HandleUpdate(context.Background(), u); !errors.Is(err, fail) {
		t.Fatalf("second: got %v", err)
	}
	if got := h.sum(t, "tgbot.updates"); got != 2 {
		t.Errorf("updates = %d, want 2", got)
	}
	ended := h.spans.Ended()
	if len(ended) != 2 || ended[1].Status().Code != codes.Error {
		t.Errorf("unexpected spans: %d", len(ended))
	}
}

func TestTracerAdapter(t *testing.T) {
	h := newHarness(t)
	tracer := TracerFrom(h.inst)
	ctx, span := tracer.Start(context.Background(), "op", tgbot.StringAttr("k", "v"), tgbot.IntAttr("n", 3))
	span.SetAttr(tgbot.BoolAttr("b", true), tgbot.SpanAttr{Key: "x", Value: []int{1}})
	span.Event("step", tgbot.Float64Attr("f", 1.5))
	span.Error(errors.New("bad"))
	span.End()
	_ = ctx

	ended := h.spans.Ended()
	if len(ended) != 1 {
		t.Fatalf("got %d spans", len(ended))
	}
	s := ended[0]
	if len(s.Attributes()) != 4 {
		t.Errorf("attributes = %v", s.Attributes())
	}
	if len(s.Events()) != 2 { // "step" plus the recorded error
		t.Errorf("events = %v", s.Events())
	}
	if s.Status().Code != codes.Error {
		t.Errorf("status = %v", s.Status())
	}
}
