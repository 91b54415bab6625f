// Package client implements tgbot.Transport over HTTP.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"

	"github.com/nevindra/tgbot"
	"github.com/nevindra/tgbot/request"
	"github.com/nevindra/tgbot/types"
)

// DefaultBaseURL is the public Bot API server.
const DefaultBaseURL = "https://api.telegram.org"

// Client sends Bot API requests for one bot token. Safe for concurrent use.
type Client struct {
	token   string
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

func New(token string, opts ...Option) *Client {
	c := &Client{
		token:   token,
		baseURL: DefaultBaseURL,
		http:    &http.Client{Timeout: 90 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.New(slog.DiscardHandler)
	}
	return c
}

type envelope struct {
	OK          bool                      `json:"ok"`
	Result      json.RawMessage           `json:"result"`
	Description string                    `json:"description"`
	ErrorCode   int                       `json:"error_code"`
	Parameters  *types.ResponseParameters `json:"parameters"`
}

// Do implements tgbot.Transport.
func (c *Client) Do(ctx context.Context, req request.Request) (json.RawMessage, error) {
	httpReq, err := c.newRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, errors.Wrapf(err, "%s: send request", req.Name())
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "%s: read response", req.Name())
	}
	c.logger.Debug("bot api call",
		"component", "client",
		"method", req.Name(),
		"status", resp.StatusCode,
		"bytes", len(data),
		"duration", time.Since(start))

	return decodeEnvelope(req.Name(), resp, data)
}

// decodeEnvelope turns a response into the envelope's result or an error.
// Bodies without an "ok" field are not envelopes and become *tgbot.ErrHTTP.
func decodeEnvelope(method string, resp *http.Response, data []byte) (json.RawMessage, error) {
	if !gjson.ValidBytes(data) || !gjson.GetBytes(data, "ok").Exists() {
		return nil, &tgbot.ErrHTTP{
			Status:     resp.StatusCode,
			Body:       string(data),
			RetryAfter: tgbot.ParseRetryAfter(resp.Header.Get("Retry-After")),
		}
	}
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, errors.Wrapf(err, "%s: decode envelope", method)
	}
	if !env.OK {
		code := env.ErrorCode
		if code == 0 {
			code = resp.StatusCode
		}
		return nil, &tgbot.ErrAPI{
			Method:      method,
			Code:        code,
			Description: env.Description,
			Parameters:  env.Parameters,
		}
	}
	return env.Result, nil
}

func (c *Client) newRequest(ctx context.Context, req request.Request) (*http.Request, error) {
	url := req.URL(c.baseURL, c.token)
	switch b := req.Body().(type) {
	case request.JSONBody:
		if b.Err != nil {
			return nil, errors.Wrapf(b.Err, "%s: encode body", req.Name())
		}
		httpReq, err := http.NewRequestWithContext(ctx, req.Verb(), url, bytes.NewReader(b.Data))
		if err != nil {
			return nil, errors.Wrapf(err, "%s: create request", req.Name())
		}
		httpReq.Header.Set("Content-Type", "application/json")
		return httpReq, nil
	case request.FormBody:
		body, contentType := multipartBody(b.Form)
		httpReq, err := http.NewRequestWithContext(ctx, req.Verb(), url, body)
		if err != nil {
			body.Close()
			return nil, errors.Wrapf(err, "%s: create request", req.Name())
		}
		httpReq.Header.Set("Content-Type", contentType)
		return httpReq, nil
	default:
		httpReq, err := http.NewRequestWithContext(ctx, req.Verb(), url, nil)
		if err != nil {
			return nil, errors.Wrapf(err, "%s: create request", req.Name())
		}
		return httpReq, nil
	}
}

// Download streams the file at filePath, as returned by getFile, into w and
// returns the number of bytes written.
func (c *Client) Download(ctx context.Context, filePath string, w io.Writer) (int64, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet,
		request.FileURL(c.baseURL, c.token, filePath), nil)
	if err != nil {
		return 0, errors.Wrap(err, "download: create request")
	}
	resp, err := c.http.Do(httpReq)
	if err != nil {
		return 0, errors.Wrap(err, "download")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return 0, &tgbot.ErrHTTP{
			Status:     resp.StatusCode,
			Body:       string(body),
			RetryAfter: tgbot.ParseRetryAfter(resp.Header.Get("Retry-After")),
		}
	}
	n, err := io.Copy(w, resp.Body)
	if err != nil {
		return n, errors.Wrapf(err, "download %s", filePath)
	}
	c.logger.Debug("file downloaded", "component", "client", "path", filePath, "size", humanize.Bytes(uint64(n)))
	return n, nil
}

var _ tgbot.Transport = (*Client)(nil)
