package tgbot

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/tidwall/gjson"

	"github.com/nevindra/tgbot/methods"
	"github.com/nevindra/tgbot/types"
)

// Poller receives updates with getUpdates long polling and passes them to
// a Handler one at a time, in update_id order.
type Poller struct {
	transport  Transport
	handler    Handler
	store      OffsetStore
	bot        string
	timeout    time.Duration
	limit      int
	allowed    []types.AllowedUpdate
	errorDelay time.Duration
	logger     *slog.Logger
	tracer     Tracer
}

// PollerOption configures a Poller.
type PollerOption func(*Poller)

// PollTimeout sets the long polling timeout sent to the server (default: 30s).
func PollTimeout(d time.Duration) PollerOption {
	return func(p *Poller) { p.timeout = d }
}

// PollLimit caps the number of updates per batch (1-100, server default 100).
func PollLimit(n int) PollerOption {
	return func(p *Poller) { p.limit = n }
}

// PollAllowedUpdates restricts the update kinds the server delivers.
func PollAllowedUpdates(kinds ...types.AllowedUpdate) PollerOption {
	return func(p *Poller) { p.allowed = kinds }
}

// PollOffsetStore persists the offset of bot in store. Without it the
// offset lives only in memory.
func PollOffsetStore(store OffsetStore, bot string) PollerOption {
	return func(p *Poller) { p.store, p.bot = store, bot }
}

// PollErrorDelay sets the pause after a failed getUpdates call (default: 5s).
func PollErrorDelay(d time.Duration) PollerOption {
	return func(p *Poller) { p.errorDelay = d }
}

func PollLogger(l *slog.Logger) PollerOption {
	return func(p *Poller) { p.logger = l }
}

// PollTracer wraps every handled update in a "tgbot.update" span.
func PollTracer(t Tracer) PollerOption {
	return func(p *Poller) { p.tracer = t }
}

func NewPoller(t Transport, h Handler, opts ...PollerOption) *Poller {
	p := &Poller{
		transport:  t,
		handler:    h,
		timeout:    30 * time.Second,
		errorDelay: 5 * time.Second,
		bot:        "default",
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.store == nil {
		p.store = NewMemoryOffsetStore()
	}
	if p.logger == nil {
		p.logger = nopLogger
	}
	return p
}

// Run polls until ctx is cancelled, in which case it returns nil. It returns
// an error when the offset cannot be loaded or the server rejects the bot
// for good: an invalid token (401) or a conflicting webhook or poller (409).
// Handler errors are logged and do not stop the loop.
func (p *Poller) Run(ctx context.Context) error {
	offset, err := p.store.LoadOffset(ctx, p.bot)
	if err != nil {
		return err
	}
	p.logger.Info("poller started", "component", "poller", "bot", p.bot, "offset", offset)

	for {
		raw, err := p.transport.Do(ctx, p.request(offset).IntoRequest())
		var batch []polledUpdate
		if err == nil {
			batch, err = p.decodeBatch(raw)
		}
		if err != nil {
			if ctx.Err() != nil {
				p.logger.Info("poller stopped", "component", "poller", "bot", p.bot)
				return nil
			}
			if isFatal(err) {
				p.logger.Error("poller aborted", "component", "poller", "error", err)
				return err
			}
			p.logger.Warn("getUpdates failed", "component", "poller", "error", err)
			if !sleep(ctx, p.errorDelay) {
				p.logger.Info("poller stopped", "component", "poller", "bot", p.bot)
				return nil
			}
			continue
		}

		next := offset
		for _, item := range batch {
			if item.id < offset {
				continue
			}
			if item.ok {
				p.handle(ctx, item.update)
			}
			next = item.id + 1
		}
		if next != offset {
			offset = next
			if err := p.store.SaveOffset(ctx, p.bot, offset); err != nil {
				p.logger.Error("save offset failed", "component", "poller", "offset", offset, "error", err)
			}
		}
		if ctx.Err() != nil {
			p.logger.Info("poller stopped", "component", "poller", "bot", p.bot)
			return nil
		}
	}
}

var errNotArray = errors.New("result is not an array")

// polledUpdate is one entry of a getUpdates result. ok is false when the
// entry could not be decoded; its id still moves the offset past it.
type polledUpdate struct {
	id     int64
	update types.Update
	ok     bool
}

// decodeBatch decodes each update on its own so that one undecodable update
// is dropped instead of failing the whole batch.
func (p *Poller) decodeBatch(raw json.RawMessage) ([]polledUpdate, error) {
	res := gjson.ParseBytes(raw)
	if !res.IsArray() {
		return nil, &ErrDecode{Method: "getUpdates", Err: errNotArray}
	}
	items := res.Array()
	batch := make([]polledUpdate, 0, len(items))
	for _, item := range items {
		pu := polledUpdate{id: item.Get("update_id").Int()}
		if err := json.Unmarshal([]byte(item.Raw), &pu.update); err != nil {
			p.logger.Error("dropping undecodable update", "component", "poller",
				"update_id", pu.id, "error", err)
		} else {
			pu.ok = true
		}
		batch = append(batch, pu)
	}
	return batch, nil
}

func (p *Poller) request(offset int64) methods.GetUpdates {
	m := methods.NewGetUpdates().Timeout(p.timeout)
	if offset != 0 {
		m = m.Offset(offset)
	}
	if p.limit > 0 {
		m = m.Limit(p.limit)
	}
	if p.allowed != nil {
		m = m.AllowedUpdates(p.allowed...)
	}
	return m
}

func (p *Poller) handle(ctx context.Context, u types.Update) {
	if p.tracer != nil {
		var span Span
		ctx, span = p.tracer.Start(ctx, "tgbot.update",
			IntAttr("tgbot.update_id", int(u.ID)),
			StringAttr("tgbot.update_kind", string(u.Kind)))
		defer span.End()
		if err := p.handler.HandleUpdate(ctx, u); err != nil {
			span.Error(err)
			p.logHandlerError(u, err)
		}
		return
	}
	if err := p.handler.HandleUpdate(ctx, u); err != nil {
		p.logHandlerError(u, err)
	}
}

func (p *Poller) logHandlerError(u types.Update, err error) {
	p.logger.Error("handler failed", "component", "poller",
		"update_id", u.ID, "kind", string(u.Kind), "error", err)
}

// isFatal reports whether err means polling can never succeed as configured.
func isFatal(err error) bool {
	var apiErr *ErrAPI
	if errors.As(err, &apiErr) {
		return apiErr.Code == 401 || apiErr.Code == 404 || apiErr.Code == 409
	}
	return false
}

// sleep waits for d or until ctx is done, reporting whether d elapsed.
func sleep(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
