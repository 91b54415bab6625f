package client

import (
	"log/slog"
	"net/http"
)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client (e.g. for proxies). Its timeout
// must exceed the long polling timeout used with getUpdates.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) { cl.http = c }
}

// WithBaseURL points the client at a different Bot API server, such as a
// self-hosted one (default "https://api.telegram.org").
func WithBaseURL(url string) Option {
	return func(cl *Client) { cl.baseURL = url }
}

// WithLogger sets the logger for request and download events.
func WithLogger(l *slog.Logger) Option {
	return func(cl *Client) { cl.logger = l }
}
