package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/nevindra/tgbot"
	"github.com/nevindra/tgbot/methods"
	"github.com/nevindra/tgbot/observer"
	"github.com/nevindra/tgbot/types"
)

// handler builds the echo router with the configured middleware.
func (a *app) handler() tgbot.Handler {
	r := newEchoRouter(a.bot, a.log)
	if a.inst != nil {
		r.Use(observer.Middleware(a.inst))
	}
	if len(a.cfg.Bot.AllowedUsers) > 0 {
		r.Use(tgbot.OnlyUsers(a.cfg.Bot.AllowedUsers...))
	}
	return r
}

func (a *app) allowedUpdates() []types.AllowedUpdate {
	kinds := make([]types.AllowedUpdate, 0, len(a.cfg.Poll.AllowedUpdates))
	for _, k := range a.cfg.Poll.AllowedUpdates {
		kinds = append(kinds, types.AllowedUpdate(k))
	}
	return kinds
}

func runPoll(ctx context.Context, a *app, _ []string) error {
	store, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	// getUpdates fails with 409 while a webhook is set.
	if _, err := tgbot.Execute(ctx, a.bot, methods.NewDeleteWebhook()); err != nil {
		return err
	}
	p := tgbot.NewPoller(a.bot, a.handler(),
		tgbot.PollTimeout(a.cfg.Poll.Timeout),
		tgbot.PollLimit(a.cfg.Poll.Limit),
		tgbot.PollAllowedUpdates(a.allowedUpdates()...),
		tgbot.PollErrorDelay(a.cfg.Poll.ErrorDelay),
		tgbot.PollOffsetStore(store, a.cfg.Store.Key),
		tgbot.PollLogger(a.log),
		tgbot.PollTracer(a.tracer()))
	a.log.Info("polling for updates", "store", a.cfg.Store.Driver)
	return p.Run(ctx)
}

func runServe(ctx context.Context, a *app, _ []string) error {
	wh := a.cfg.Webhook
	if wh.URL != "" {
		set := methods.NewSetWebhook(wh.URL).
			SecretToken(wh.SecretToken).
			AllowedUpdates(a.allowedUpdates()...)
		if _, err := tgbot.Execute(ctx, a.bot, set); err != nil {
			return err
		}
	}

	path := wh.Path
	if path == "" {
		path = "/"
	}
	mux := http.NewServeMux()
	mux.Handle(path, tgbot.NewWebhookHandler(a.handler(),
		tgbot.WebhookSecret(wh.SecretToken),
		tgbot.WebhookLogger(a.log),
		tgbot.WebhookTracer(a.tracer())))
	srv := &http.Server{Addr: wh.Listen, Handler: mux, ReadHeaderTimeout: 10 * time.Second}

	errc := make(chan error, 1)
	go func() {
		a.log.Info("webhook server listening", "addr", wh.Listen, "path", path)
		errc <- srv.ListenAndServe()
	}()
	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
