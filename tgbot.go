package tgbot

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/nevindra/tgbot/methods"
	"github.com/nevindra/tgbot/request"
)

// Transport sends a request to the Bot API and returns the raw "result"
// value of a successful envelope. Failures are reported as *ErrAPI,
// *ErrHTTP or a transport error.
type Transport interface {
	Do(ctx context.Context, req request.Request) (json.RawMessage, error)
}

// TransportFunc adapts a function to Transport.
type TransportFunc func(ctx context.Context, req request.Request) (json.RawMessage, error)

func (f TransportFunc) Do(ctx context.Context, req request.Request) (json.RawMessage, error) {
	return f(ctx, req)
}

// ErrDecode is returned by Execute when the result does not match the
// method's declared response type.
type ErrDecode struct {
	Method string
	Err    error
}

func (e *ErrDecode) Error() string {
	return fmt.Sprintf("%s: decode result: %v", e.Method, e.Err)
}

func (e *ErrDecode) Unwrap() error { return e.Err }

// Execute sends m through t and decodes the result into the method's
// response type.
func Execute[R any](ctx context.Context, t Transport, m methods.Method[R]) (R, error) {
	var zero R
	req := m.IntoRequest()
	raw, err := t.Do(ctx, req)
	if err != nil {
		return zero, err
	}
	out := m.NewResult()
	if err := json.Unmarshal(raw, out); err != nil {
		return zero, &ErrDecode{Method: req.Name(), Err: err}
	}
	return *out, nil
}

// nopLogger discards everything. Used when no logger option is set.
var nopLogger = slog.New(slog.DiscardHandler)
