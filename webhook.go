package tgbot

import (
	"crypto/subtle"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/tidwall/gjson"

	"github.com/nevindra/tgbot/types"
)

// SecretTokenHeader carries the secret_token given to setWebhook.
const SecretTokenHeader = "X-Telegram-Bot-Api-Secret-Token"

// WebhookHandler is an http.Handler that decodes webhook deliveries and
// passes them to a Handler.
type WebhookHandler struct {
	handler Handler
	secret  string
	maxBody int64
	logger  *slog.Logger
	tracer  Tracer
}

// WebhookOption configures a WebhookHandler.
type WebhookOption func(*WebhookHandler)

// WebhookSecret rejects deliveries whose secret header differs from token.
func WebhookSecret(token string) WebhookOption {
	return func(w *WebhookHandler) { w.secret = token }
}

// WebhookMaxBody limits the accepted body size (default: 1 MiB).
func WebhookMaxBody(n int64) WebhookOption {
	return func(w *WebhookHandler) { w.maxBody = n }
}

func WebhookLogger(l *slog.Logger) WebhookOption {
	return func(w *WebhookHandler) { w.logger = l }
}

func WebhookTracer(t Tracer) WebhookOption {
	return func(w *WebhookHandler) { w.tracer = t }
}

func NewWebhookHandler(h Handler, opts ...WebhookOption) *WebhookHandler {
	w := &WebhookHandler{handler: h, maxBody: 1 << 20}
	for _, opt := range opts {
		opt(w)
	}
	if w.logger == nil {
		w.logger = nopLogger
	}
	return w
}

// ServeHTTP answers 200 once the update is handled, even when the handler
// fails: a non-2xx answer makes the server redeliver the same update.
func (w *WebhookHandler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		rw.Header().Set("Allow", http.MethodPost)
		http.Error(rw, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if w.secret != "" {
		got := r.Header.Get(SecretTokenHeader)
		if subtle.ConstantTimeCompare([]byte(got), []byte(w.secret)) != 1 {
			w.logger.Warn("rejected webhook delivery", "component", "webhook", "remote", r.RemoteAddr)
			http.Error(rw, "unauthorized", http.StatusUnauthorized)
			return
		}
	}

	data, err := io.ReadAll(http.MaxBytesReader(rw, r.Body, w.maxBody))
	if err != nil {
		http.Error(rw, "request too large", http.StatusRequestEntityTooLarge)
		return
	}
	var u types.Update
	if err := json.Unmarshal(data, &u); err != nil {
		// Acknowledge updates that carry an id so they are not redelivered.
		if id := gjson.GetBytes(data, "update_id"); id.Exists() {
			w.logger.Error("dropping undecodable update", "component", "webhook",
				"update_id", id.Int(), "error", err)
			rw.WriteHeader(http.StatusOK)
			return
		}
		w.logger.Warn("malformed update", "component", "webhook", "error", err)
		http.Error(rw, "bad request", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	if w.tracer != nil {
		var span Span
		ctx, span = w.tracer.Start(ctx, "tgbot.update",
			IntAttr("tgbot.update_id", int(u.ID)),
			StringAttr("tgbot.update_kind", string(u.Kind)))
		defer span.End()
		if err := w.handler.HandleUpdate(ctx, u); err != nil {
			span.Error(err)
			w.logHandlerError(u, err)
		}
	} else if err := w.handler.HandleUpdate(ctx, u); err != nil {
		w.logHandlerError(u, err)
	}
	rw.WriteHeader(http.StatusOK)
}

func (w *WebhookHandler) logHandlerError(u types.Update, err error) {
	w.logger.Error("handler failed", "component", "webhook",
		"update_id", u.ID, "kind", string(u.Kind), "error", err)
}
