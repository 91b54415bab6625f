package tgbot

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/nevindra/tgbot/request"
)

type recordedSpan struct {
	name  string
	attrs map[string]any
	err   error
	ended bool
}

type recordingTracer struct {
	mu    sync.Mutex
	spans []*recordedSpan
}

func (r *recordingTracer) Start(ctx context.Context, name string, attrs ...SpanAttr) (context.Context, Span) {
	s := &recordedSpan{name: name, attrs: map[string]any{}}
	for _, a := range attrs {
		s.attrs[a.Key] = a.Value
	}
	r.mu.Lock()
	r.spans = append(r.spans, s)
	r.mu.Unlock()
	return ctx, s
}

func (s *recordedSpan) SetAttr(attrs ...SpanAttr) {
	for _, a := range attrs {
		s.attrs[a.Key] = a.Value
	}
}
func (s *recordedSpan) Event(string, ...SpanAttr) {}
func (s *recordedSpan) Error(err error)           { s.err = err }
func (s *recordedSpan) End()                      { s.ended = true }

func TestWithTracing_RecordsSpan(t *testing.T) {
	tracer := &recordingTracer{}
	tr := WithTracing(&stubTransport{results: []stubResult{{raw: "true"}}}, tracer)

	if _, err := tr.Do(context.Background(), request.NewEmpty("getMe")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tracer.spans) != 1 {
		t.Fatalf("got %d spans, want 1", len(tracer.spans))
	}
	s := tracer.spans[0]
	if s.name != "tgbot.getMe" {
		t.Errorf("span name = %q", s.name)
	}
	if s.attrs["http.method"] != "GET" || s.attrs["tgbot.body"] != "empty" {
		t.Errorf("attrs = %v", s.attrs)
	}
	if s.attrs["tgbot.result_bytes"] != 4 {
		t.Errorf("result_bytes = %v, want 4", s.attrs["tgbot.result_bytes"])
	}
	if !s.ended {
		t.Error("span not ended")
	}
}

func TestWithTracing_RecordsError(t *testing.T) {
	tracer := &recordingTracer{}
	want := &ErrAPI{Method: "getMe", Code: 401, Description: "Unauthorized"}
	tr := WithTracing(&stubTransport{results: []stubResult{{err: want}}}, tracer)

	_, err := tr.Do(context.Background(), request.NewEmpty("getMe"))
	if !errors.Is(err, want) {
		t.Fatalf("got %v, want %v", err, want)
	}
	s := tracer.spans[0]
	if s.err != want || s.attrs["tgbot.status"] != 401 {
		t.Errorf("span err=%v status=%v", s.err, s.attrs["tgbot.status"])
	}
}

func TestWithTracing_NilTracer(t *testing.T) {
	stub := &stubTransport{}
	if got := WithTracing(stub, nil); got != Transport(stub) {
		t.Error("nil tracer should return the transport unchanged")
	}
}
