package tgbot

import (
	"context"
	"slices"
	"strings"

	"github.com/nevindra/tgbot/types"
)

// Handler reacts to a single update.
type Handler interface {
	HandleUpdate(ctx context.Context, u types.Update) error
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(ctx context.Context, u types.Update) error

func (f HandlerFunc) HandleUpdate(ctx context.Context, u types.Update) error { return f(ctx, u) }

// Middleware decorates a Handler.
type Middleware func(Handler) Handler

// OnlyUsers drops updates whose sender is not one of ids. Updates without
// a sender are dropped too.
func OnlyUsers(ids ...int64) Middleware {
	allowed := make(map[int64]bool, len(ids))
	for _, id := range ids {
		allowed[id] = true
	}
	return func(next Handler) Handler {
		return HandlerFunc(func(ctx context.Context, u types.Update) error {
			if s := u.Sender(); s == nil || !allowed[s.ID] {
				return nil
			}
			return next.HandleUpdate(ctx, u)
		})
	}
}

type callbackRoute struct {
	prefix  string
	handler Handler
}

// Router dispatches updates to handlers. Matching order: bot command of a
// message, callback data prefix (longest first), update kind, fallback.
// Unmatched updates are ignored.
//
// Routes must be registered before the router starts serving updates.
type Router struct {
	commands  map[string]Handler
	callbacks []callbackRoute
	kinds     map[types.AllowedUpdate]Handler
	fallback  Handler
	mw        []Middleware
}

func NewRouter() *Router {
	return &Router{
		commands: make(map[string]Handler),
		kinds:    make(map[types.AllowedUpdate]Handler),
	}
}

// Command routes messages starting with /name (with or without @botname).
func (r *Router) Command(name string, h Handler) *Router {
	r.commands[strings.TrimPrefix(name, "/")] = h
	return r
}

// Callback routes callback queries whose data starts with prefix.
func (r *Router) Callback(prefix string, h Handler) *Router {
	r.callbacks = append(r.callbacks, callbackRoute{prefix: prefix, handler: h})
	slices.SortStableFunc(r.callbacks, func(a, b callbackRoute) int {
		return len(b.prefix) - len(a.prefix)
	})
	return r
}

// On routes updates of the given kind.
func (r *Router) On(kind types.AllowedUpdate, h Handler) *Router {
	r.kinds[kind] = h
	return r
}

// Fallback handles updates no other route matched.
func (r *Router) Fallback(h Handler) *Router {
	r.fallback = h
	return r
}

// Use appends middleware applied to every matched handler. The first
// middleware added is the outermost.
func (r *Router) Use(mw ...Middleware) *Router {
	r.mw = append(r.mw, mw...)
	return r
}

func (r *Router) HandleUpdate(ctx context.Context, u types.Update) error {
	h := r.match(u)
	if h == nil {
		return nil
	}
	for i := len(r.mw) - 1; i >= 0; i-- {
		h = r.mw[i](h)
	}
	return h.HandleUpdate(ctx, u)
}

func (r *Router) match(u types.Update) Handler {
	if m := u.Message; m != nil && m.IsCommand() {
		if cmds := m.Text.Commands(); len(cmds) > 0 {
			if h, ok := r.commands[cmds[0]]; ok {
				return h
			}
		}
	}
	if q := u.CallbackQuery; q != nil {
		for _, c := range r.callbacks {
			if strings.HasPrefix(q.Data, c.prefix) {
				return c.handler
			}
		}
	}
	if h, ok := r.kinds[u.Kind]; ok {
		return h
	}
	return r.fallback
}
