package tgbot

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"math/rand"
	"time"

	"github.com/nevindra/tgbot/request"
)

// retryTransport wraps a Transport and retries flood-control and transient
// server errors with exponential backoff.
type retryTransport struct {
	inner       Transport
	maxAttempts int
	baseDelay   time.Duration
	timeout     time.Duration // across all attempts; 0 = no limit
	logger      *slog.Logger
}

// RetryOption configures WithRetry.
type RetryOption func(*retryTransport)

// RetryMaxAttempts sets the maximum number of attempts (default: 3).
func RetryMaxAttempts(n int) RetryOption {
	return func(r *retryTransport) { r.maxAttempts = n }
}

// RetryBaseDelay sets the delay before the second attempt (default: 1s).
// Each subsequent delay doubles.
func RetryBaseDelay(d time.Duration) RetryOption {
	return func(r *retryTransport) { r.baseDelay = d }
}

// RetryTimeout bounds the whole retry sequence. Zero disables the bound.
func RetryTimeout(d time.Duration) RetryOption {
	return func(r *retryTransport) { r.timeout = d }
}

// RetryLogger sets the logger for retry events. Retries log at WARN and
// exhausted sequences at ERROR.
func RetryLogger(l *slog.Logger) RetryOption {
	return func(r *retryTransport) { r.logger = l }
}

// WithRetry wraps t with automatic retry on flood control (api error 429)
// and transient HTTP statuses (429, 500, 502, 503, 504). The delay before a
// retry is at least the retry_after the server reported. Requests that
// upload readers are sent once, since the reader cannot be replayed.
//
//	t = tgbot.WithRetry(client.New(token))
//	t = tgbot.WithRetry(client.New(token), tgbot.RetryMaxAttempts(5))
func WithRetry(t Transport, opts ...RetryOption) Transport {
	r := &retryTransport{
		inner:       t,
		maxAttempts: 3,
		baseDelay:   time.Second,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.maxAttempts < 1 {
		r.maxAttempts = 1
	}
	if r.logger == nil {
		r.logger = nopLogger
	}
	return r
}

func (r *retryTransport) Do(ctx context.Context, req request.Request) (json.RawMessage, error) {
	if !req.Replayable() {
		return r.inner.Do(ctx, req)
	}
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var last error
	for i := 0; i < r.maxAttempts; i++ {
		result, err := r.inner.Do(ctx, req)
		if err == nil || !isTransient(err) {
			return result, err
		}
		last = err
		r.logger.Warn("retrying transient error",
			"method", req.Name(),
			"status", statusOf(err),
			"attempt", i+1,
			"max_attempts", r.maxAttempts)
		if i < r.maxAttempts-1 {
			timer := time.NewTimer(retryDelay(r.baseDelay, i, err))
			select {
			case <-ctx.Done():
				timer.Stop()
				return nil, ctx.Err()
			case <-timer.C:
			}
		}
	}
	r.logger.Error("all retry attempts exhausted",
		"method", req.Name(),
		"attempts", r.maxAttempts,
		"error", last)
	return nil, last
}

// withTimeout returns a child context with a deadline if r.timeout is set
// and ctx has no earlier deadline.
func (r *retryTransport) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.timeout <= 0 {
		return ctx, func() {}
	}
	deadline := time.Now().Add(r.timeout)
	if existing, ok := ctx.Deadline(); ok && existing.Before(deadline) {
		return ctx, func() {}
	}
	return context.WithDeadline(ctx, deadline)
}

// isTransient reports whether err is worth another attempt.
func isTransient(err error) bool {
	var apiErr *ErrAPI
	if errors.As(err, &apiErr) {
		return apiErr.Code == 429
	}
	var httpErr *ErrHTTP
	if errors.As(err, &httpErr) {
		switch httpErr.Status {
		case 429, 500, 502, 503, 504:
			return true
		}
	}
	return false
}

// statusOf extracts the API error code or HTTP status from err, or 0.
func statusOf(err error) int {
	var apiErr *ErrAPI
	if errors.As(err, &apiErr) {
		return apiErr.Code
	}
	var httpErr *ErrHTTP
	if errors.As(err, &httpErr) {
		return httpErr.Status
	}
	return 0
}

// retryAfterOf extracts the server-requested delay from err, or 0.
func retryAfterOf(err error) time.Duration {
	var apiErr *ErrAPI
	if errors.As(err, &apiErr) {
		return apiErr.RetryAfter()
	}
	var httpErr *ErrHTTP
	if errors.As(err, &httpErr) {
		return httpErr.RetryAfter
	}
	return 0
}

// retryDelay is max(backoff, retryAfter).
func retryDelay(base time.Duration, i int, err error) time.Duration {
	backoff := retryBackoff(base, i)
	if ra := retryAfterOf(err); ra > backoff {
		return ra
	}
	return backoff
}

// retryBackoff returns base * 2^i plus up to 50% random jitter.
func retryBackoff(base time.Duration, i int) time.Duration {
	exp := base * (1 << i)
	jitter := time.Duration(rand.Int63n(int64(exp)/2 + 1))
	return exp + jitter
}
