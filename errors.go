package tgbot

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/nevindra/tgbot/types"
)

// ErrAPI is a request the Bot API answered with ok=false.
type ErrAPI struct {
	Method      string
	Code        int
	Description string
	Parameters  *types.ResponseParameters
}

func (e *ErrAPI) Error() string {
	return fmt.Sprintf("%s: api error %d: %s", e.Method, e.Code, e.Description)
}

// RetryAfter is the flood-control delay the server asked for, or 0.
func (e *ErrAPI) RetryAfter() time.Duration {
	if e.Parameters == nil {
		return 0
	}
	return time.Duration(e.Parameters.RetryAfter) * time.Second
}

// MigrateTo is the supergroup id a migrated group moved to, or 0.
func (e *ErrAPI) MigrateTo() int64 {
	if e.Parameters == nil {
		return 0
	}
	return e.Parameters.MigrateToChatID
}

// ErrHTTP is a response that did not carry a Bot API envelope.
type ErrHTTP struct {
	Status     int
	Body       string
	RetryAfter time.Duration
}

func (e *ErrHTTP) Error() string {
	return fmt.Sprintf("http %d: %s", e.Status, e.Body)
}

// ParseRetryAfter parses a Retry-After header given in seconds or as an
// HTTP date. Unparseable or past values yield 0.
func ParseRetryAfter(v string) time.Duration {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0
	}
	if secs, err := strconv.Atoi(v); err == nil {
		if secs <= 0 {
			return 0
		}
		return time.Duration(secs) * time.Second
	}
	if at, err := http.ParseTime(v); err == nil {
		if d := time.Until(at); d > 0 {
			return d
		}
	}
	return 0
}
