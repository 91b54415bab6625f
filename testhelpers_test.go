package tgbot

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/nevindra/tgbot/request"
)

// stubTransport returns pre-configured results in order and records the
// requests it saw.
type stubTransport struct {
	mu       sync.Mutex
	calls    int
	results  []stubResult
	requests []request.Request
}

type stubResult struct {
	raw string
	err error
}

func (s *stubTransport) Do(_ context.Context, req request.Request) (json.RawMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.calls
	s.calls++
	s.requests = append(s.requests, req)
	if i < len(s.results) {
		r := s.results[i]
		if r.err != nil {
			return nil, r.err
		}
		return json.RawMessage(r.raw), nil
	}
	return json.RawMessage("true"), nil
}

func (s *stubTransport) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

var _ Transport = (*stubTransport)(nil)
