package methods

import (
	"slices"
	"time"

	"github.com/nevindra/tgbot/request"
	"github.com/nevindra/tgbot/types"
)

// GetUpdates receives incoming updates using long polling.
type GetUpdates struct {
	Returns[[]types.Update]
	p getUpdatesParams
}

type getUpdatesParams struct {
	Offset         int64                  `json:"offset,omitempty"`
	Limit          int                    `json:"limit,omitempty"`
	Timeout        int64                  `json:"timeout,omitempty"`
	AllowedUpdates *[]types.AllowedUpdate `json:"allowed_updates,omitempty"`
}

func NewGetUpdates() GetUpdates { return GetUpdates{} }

// Offset is the identifier of the first update to return. Updates with a
// lower id are confirmed and dropped by the server.
func (m GetUpdates) Offset(offset int64) GetUpdates { m.p.Offset = offset; return m }

// Limit caps the number of updates, 1 to 100.
func (m GetUpdates) Limit(n int) GetUpdates { m.p.Limit = n; return m }

// Timeout is the long polling timeout, sent with second precision.
func (m GetUpdates) Timeout(d time.Duration) GetUpdates {
	m.p.Timeout = int64(d / time.Second)
	return m
}

// AllowedUpdates replaces the set of update kinds to receive. An empty set
// asks for every kind except chat_member.
func (m GetUpdates) AllowedUpdates(kinds ...types.AllowedUpdate) GetUpdates {
	set := make([]types.AllowedUpdate, 0, len(kinds))
	for _, k := range kinds {
		if !slices.Contains(set, k) {
			set = append(set, k)
		}
	}
	m.p.AllowedUpdates = &set
	return m
}

// AddAllowedUpdate adds one kind to the set of update kinds to receive.
func (m GetUpdates) AddAllowedUpdate(kind types.AllowedUpdate) GetUpdates {
	var cur []types.AllowedUpdate
	if m.p.AllowedUpdates != nil {
		cur = *m.p.AllowedUpdates
	}
	return m.AllowedUpdates(append(slices.Clone(cur), kind)...)
}

// CurrentOffset returns the offset set on the builder.
func (m GetUpdates) CurrentOffset() int64 { return m.p.Offset }

// PollTimeout returns the long polling timeout.
func (m GetUpdates) PollTimeout() time.Duration { return time.Duration(m.p.Timeout) * time.Second }

func (m GetUpdates) IntoRequest() request.Request { return request.NewJSON("getUpdates", m.p) }

// SetWebhook registers an HTTPS URL that receives updates.
type SetWebhook struct {
	Returns[bool]
	p           setWebhookParams
	certificate types.InputFile
}

type setWebhookParams struct {
	URL                string                 `json:"url"`
	IPAddress          string                 `json:"ip_address,omitempty"`
	MaxConnections     int                    `json:"max_connections,omitempty"`
	AllowedUpdates     *[]types.AllowedUpdate `json:"allowed_updates,omitempty"`
	DropPendingUpdates *bool                  `json:"drop_pending_updates,omitempty"`
	SecretToken        string                 `json:"secret_token,omitempty"`
}

func NewSetWebhook(url string) SetWebhook { return SetWebhook{p: setWebhookParams{URL: url}} }

// Certificate uploads a self-signed public key certificate. The request is
// then sent as a multipart form.
func (m SetWebhook) Certificate(cert types.InputFile) SetWebhook { m.certificate = cert; return m }

func (m SetWebhook) IPAddress(ip string) SetWebhook { m.p.IPAddress = ip; return m }

// MaxConnections is the number of simultaneous HTTPS connections, 1 to 100.
func (m SetWebhook) MaxConnections(n int) SetWebhook { m.p.MaxConnections = n; return m }

func (m SetWebhook) AllowedUpdates(kinds ...types.AllowedUpdate) SetWebhook {
	m.p.AllowedUpdates = NewGetUpdates().AllowedUpdates(kinds...).p.AllowedUpdates
	return m
}

// DropPendingUpdates is sent as set, including an explicit false.
func (m SetWebhook) DropPendingUpdates(v bool) SetWebhook {
	m.p.DropPendingUpdates = &v
	return m
}

// SecretToken is sent back in the X-Telegram-Bot-Api-Secret-Token header of
// every webhook request.
func (m SetWebhook) SecretToken(token string) SetWebhook { m.p.SecretToken = token; return m }

func (m SetWebhook) IntoRequest() request.Request {
	if m.certificate.IsZero() {
		return request.NewJSON("setWebhook", m.p)
	}
	f := request.Form{}.SetText("url", m.p.URL).SetFile("certificate", m.certificate)
	if m.p.IPAddress != "" {
		f = f.SetText("ip_address", m.p.IPAddress)
	}
	if m.p.MaxConnections != 0 {
		f = f.SetInt("max_connections", int64(m.p.MaxConnections))
	}
	if m.p.AllowedUpdates != nil {
		// A slice of strings always encodes.
		f, _ = f.SetJSON("allowed_updates", *m.p.AllowedUpdates)
	}
	if m.p.DropPendingUpdates != nil {
		f = f.SetBool("drop_pending_updates", *m.p.DropPendingUpdates)
	}
	if m.p.SecretToken != "" {
		f = f.SetText("secret_token", m.p.SecretToken)
	}
	return request.NewForm("setWebhook", f)
}

// DeleteWebhook removes the webhook integration. Without parameters it is a
// GET; once DropPendingUpdates is called it is a POST with a JSON body,
// whatever the flag value.
type DeleteWebhook struct {
	Returns[bool]
	dropPendingUpdates *bool
}

func NewDeleteWebhook() DeleteWebhook { return DeleteWebhook{} }

func (m DeleteWebhook) DropPendingUpdates(v bool) DeleteWebhook {
	m.dropPendingUpdates = &v
	return m
}

func (m DeleteWebhook) IntoRequest() request.Request {
	if m.dropPendingUpdates == nil {
		return request.NewEmpty("deleteWebhook")
	}
	return request.NewJSON("deleteWebhook", struct {
		DropPendingUpdates bool `json:"drop_pending_updates"`
	}{*m.dropPendingUpdates})
}

// GetWebhookInfo returns the current webhook status.
type GetWebhookInfo struct {
	Returns[types.WebhookInfo]
}

func NewGetWebhookInfo() GetWebhookInfo { return GetWebhookInfo{} }

func (GetWebhookInfo) IntoRequest() request.Request { return request.NewEmpty("getWebhookInfo") }
