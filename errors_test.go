package tgbot

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/nevindra/tgbot/types"
)

func TestErrAPIError(t *testing.T) {
	e := &ErrAPI{Method: "sendMessage", Code: 400, Description: "Bad Request: chat not found"}
	want := "sendMessage: api error 400: Bad Request: chat not found"
	if got := e.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestErrAPIParameters(t *testing.T) {
	e := &ErrAPI{Code: 429, Parameters: &types.ResponseParameters{RetryAfter: 7, MigrateToChatID: -100123}}
	if got := e.RetryAfter(); got != 7*time.Second {
		t.Errorf("RetryAfter() = %v, want 7s", got)
	}
	if got := e.MigrateTo(); got != -100123 {
		t.Errorf("MigrateTo() = %d, want -100123", got)
	}

	bare := &ErrAPI{Code: 400}
	if bare.RetryAfter() != 0 || bare.MigrateTo() != 0 {
		t.Error("expected zero values without parameters")
	}
}

func TestErrHTTPError(t *testing.T) {
	tests := []struct {
		status int
		body   string
		want   string
	}{
		{429, "too many requests", "http 429: too many requests"},
		{502, "bad gateway", "http 502: bad gateway"},
	}
	for _, tt := range tests {
		e := &ErrHTTP{Status: tt.status, Body: tt.body}
		if got := e.Error(); got != tt.want {
			t.Errorf("ErrHTTP{%d, %q}.Error() = %q, want %q", tt.status, tt.body, got, tt.want)
		}
	}
}

func TestErrorsAs(t *testing.T) {
	wrapped := fmt.Errorf("execute: %w", &ErrAPI{Method: "getMe", Code: 401})
	var apiErr *ErrAPI
	if !errors.As(wrapped, &apiErr) {
		t.Fatal("errors.As failed for *ErrAPI")
	}
	if apiErr.Code != 401 {
		t.Errorf("Code = %d, want 401", apiErr.Code)
	}
}

func TestParseRetryAfter(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
	}{
		{"", 0},
		{"3", 3 * time.Second},
		{" 10 ", 10 * time.Second},
		{"0", 0},
		{"-2", 0},
		{"soon", 0},
		{"Mon, 02 Jan 2006 15:04:05 GMT", 0},
	}
	for _, tt := range tests {
		if got := ParseRetryAfter(tt.in); got != tt.want {
			t.Errorf("ParseRetryAfter(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseRetryAfterHTTPDate(t *testing.T) {
	at := time.Now().Add(time.Hour).UTC().Format(http.TimeFormat)
	got := ParseRetryAfter(at)
	if got <= 58*time.Minute || got > time.Hour {
		t.Errorf("ParseRetryAfter(%q) = %v, want about 1h", at, got)
	}
}
