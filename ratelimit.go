package tgbot

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/tidwall/gjson"
	"golang.org/x/time/rate"

	"github.com/nevindra/tgbot/request"
)

// rateLimitTransport blocks requests until the global and per-chat budgets
// allow them to proceed.
type rateLimitTransport struct {
	inner  Transport
	global *rate.Limiter

	chatEvery time.Duration
	chatBurst int
	idle      time.Duration

	mu    sync.Mutex
	chats map[string]*chatLimiter
}

type chatLimiter struct {
	lim  *rate.Limiter
	seen time.Time
}

// RateLimitOption configures WithRateLimit.
type RateLimitOption func(*rateLimitTransport)

// GlobalRate caps requests per second across all chats.
func GlobalRate(perSecond float64) RateLimitOption {
	return func(r *rateLimitTransport) {
		burst := int(perSecond)
		if burst < 1 {
			burst = 1
		}
		r.global = rate.NewLimiter(rate.Limit(perSecond), burst)
	}
}

// ChatRate allows burst requests to a single chat, refilling one every
// interval. Requests without a chat_id are only subject to GlobalRate.
func ChatRate(every time.Duration, burst int) RateLimitOption {
	return func(r *rateLimitTransport) {
		r.chatEvery = every
		r.chatBurst = max(burst, 1)
	}
}

// WithRateLimit wraps t with proactive rate limiting. Compose with other
// wrappers; inside WithRetry every retried attempt is limited as well:
//
//	t = tgbot.WithRateLimit(bot, tgbot.GlobalRate(30), tgbot.ChatRate(time.Second, 1))
//	t = tgbot.WithRetry(tgbot.WithRateLimit(bot, tgbot.GlobalRate(30)))
func WithRateLimit(t Transport, opts ...RateLimitOption) Transport {
	r := &rateLimitTransport{
		inner: t,
		idle:  10 * time.Minute,
		chats: make(map[string]*chatLimiter),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *rateLimitTransport) Do(ctx context.Context, req request.Request) (json.RawMessage, error) {
	if r.global != nil {
		if err := r.global.Wait(ctx); err != nil {
			return nil, err
		}
	}
	if lim := r.chatLimiter(chatOf(req)); lim != nil {
		if err := lim.Wait(ctx); err != nil {
			return nil, err
		}
	}
	return r.inner.Do(ctx, req)
}

// chatLimiter returns the limiter for chat, pruning limiters idle for
// longer than r.idle. Returns nil when per-chat limiting is off.
func (r *rateLimitTransport) chatLimiter(chat string) *rate.Limiter {
	if r.chatEvery <= 0 || chat == "" {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	for k, c := range r.chats {
		if now.Sub(c.seen) > r.idle {
			delete(r.chats, k)
		}
	}
	c, ok := r.chats[chat]
	if !ok {
		c = &chatLimiter{lim: rate.NewLimiter(rate.Every(r.chatEvery), r.chatBurst)}
		r.chats[chat] = c
	}
	c.seen = now
	return c.lim
}

// chatOf extracts the chat_id parameter of req, or "".
func chatOf(req request.Request) string {
	switch b := req.Body().(type) {
	case request.JSONBody:
		if b.Err != nil {
			return ""
		}
		return gjson.GetBytes(b.Data, "chat_id").String()
	case request.FormBody:
		if v, ok := b.Form.Get("chat_id"); ok {
			s, _ := v.Text()
			return s
		}
	}
	return ""
}
