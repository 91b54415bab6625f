package main

import (
	"net/http"
	"time"
)

// newHTTPClient returns a client whose timeout leaves room for long polling.
func newHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = 90 * time.Second
	}
	return &http.Client{Timeout: timeout}
}
