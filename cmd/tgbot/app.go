package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/nevindra/tgbot"
	"github.com/nevindra/tgbot/client"
	"github.com/nevindra/tgbot/internal/config"
	"github.com/nevindra/tgbot/internal/logging"
	"github.com/nevindra/tgbot/observer"
	"github.com/nevindra/tgbot/store/postgres"
	"github.com/nevindra/tgbot/store/sqlite"
)

// app holds what every command needs: config, loggers, the raw client and
// the decorated transport.
type app struct {
	cfg    config.Config
	zap    *zap.Logger
	log    *slog.Logger
	client *client.Client
	bot    tgbot.Transport
	inst   *observer.Instruments

	closers []func()
}

func newApp(ctx context.Context, cfg config.Config) (*app, error) {
	zl, sl := logging.Setup(cfg.Log)
	a := &app{cfg: cfg, zap: zl, log: sl}

	opts := []client.Option{client.WithLogger(sl), client.WithHTTPClient(newHTTPClient(cfg.Bot.Timeout))}
	if cfg.Bot.BaseURL != "" {
		opts = append(opts, client.WithBaseURL(cfg.Bot.BaseURL))
	}
	a.client = client.New(cfg.Bot.Token, opts...)

	var t tgbot.Transport = a.client
	if cfg.Observer.Enabled {
		inst, shutdown, err := observer.Init(ctx, cfg.Observer.ServiceName)
		if err != nil {
			return nil, fmt.Errorf("observer: %w", err)
		}
		a.inst = inst
		a.closers = append(a.closers, func() {
			sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdown(sctx); err != nil {
				sl.Warn("observer shutdown failed", "error", err)
			}
		})
		t = observer.WrapTransport(t, inst)
	}
	a.bot = decorate(t, cfg, sl)
	return a, nil
}

// decorate adds rate limiting and retries to t. The limiter sits inside the
// retry loop so every attempt waits for its turn.
func decorate(t tgbot.Transport, cfg config.Config, log *slog.Logger) tgbot.Transport {
	var limits []tgbot.RateLimitOption
	if cfg.RateLimit.GlobalPerSecond > 0 {
		limits = append(limits, tgbot.GlobalRate(cfg.RateLimit.GlobalPerSecond))
	}
	if cfg.RateLimit.ChatInterval > 0 {
		limits = append(limits, tgbot.ChatRate(cfg.RateLimit.ChatInterval, cfg.RateLimit.ChatBurst))
	}
	t = tgbot.WithRateLimit(t, limits...)
	return tgbot.WithRetry(t,
		tgbot.RetryMaxAttempts(cfg.Retry.MaxAttempts),
		tgbot.RetryBaseDelay(cfg.Retry.BaseDelay),
		tgbot.RetryLogger(log))
}

// openStore returns the configured offset store, initialised and ready.
func (a *app) openStore(ctx context.Context) (tgbot.OffsetStore, error) {
	switch a.cfg.Store.Driver {
	case "memory":
		return tgbot.NewMemoryOffsetStore(), nil
	case "postgres":
		pool, err := pgxpool.New(ctx, a.cfg.Store.DSN)
		if err != nil {
			return nil, fmt.Errorf("postgres: %w", err)
		}
		a.closers = append(a.closers, pool.Close)
		s := postgres.New(pool)
		if err := s.Init(ctx); err != nil {
			return nil, err
		}
		return s, nil
	default:
		s := sqlite.New(a.cfg.Store.DSN, sqlite.WithLogger(a.log))
		a.closers = append(a.closers, func() { _ = s.Close() })
		if err := s.Init(ctx); err != nil {
			return nil, err
		}
		return s, nil
	}
}

// tracer returns the OTEL tracer when the observer is enabled, or nil.
func (a *app) tracer() tgbot.Tracer {
	if a.inst == nil {
		return nil
	}
	return observer.TracerFrom(a.inst)
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	_ = a.zap.Sync()
}
