// Package request describes an outbound Bot API call independently of the
// HTTP client that performs it.
package request

import (
	"encoding/json"
	"net/http"
	"strings"
)

// Body is one of EmptyBody, JSONBody or FormBody.
type Body interface {
	isBody()
}

// EmptyBody is the body of a parameterless GET call.
type EmptyBody struct{}

// JSONBody carries a JSON-encoded payload. Err is set when the payload could
// not be encoded; transports report it instead of sending the request.
type JSONBody struct {
	Data []byte
	Err  error
}

// FormBody carries a multipart form.
type FormBody struct {
	Form Form
}

func (EmptyBody) isBody() {}
func (JSONBody) isBody()  {}
func (FormBody) isBody()  {}

// Request is an immutable Bot API call: the method name, the HTTP verb and
// exactly one body.
type Request struct {
	name string
	verb string
	body Body
}

// NewEmpty returns a GET request without parameters.
func NewEmpty(name string) Request {
	return Request{name: name, verb: http.MethodGet, body: EmptyBody{}}
}

// NewJSON returns a POST request with payload encoded as JSON.
func NewJSON(name string, payload any) Request {
	data, err := json.Marshal(payload)
	return Request{name: name, verb: http.MethodPost, body: JSONBody{Data: data, Err: err}}
}

// NewForm returns a POST request with a multipart body.
func NewForm(name string, form Form) Request {
	return Request{name: name, verb: http.MethodPost, body: FormBody{Form: form}}
}

// Name returns the API method name, e.g. "sendMessage".
func (r Request) Name() string { return r.name }

// Verb returns http.MethodGet or http.MethodPost.
func (r Request) Verb() string { return r.verb }

func (r Request) Body() Body {
	if r.body == nil {
		return EmptyBody{}
	}
	return r.body
}

// URL returns <base>/bot<token>/<name>.
func (r Request) URL(base, token string) string {
	return strings.TrimRight(base, "/") + "/bot" + token + "/" + r.name
}

// Replayable reports whether the request can be sent more than once. Forms
// uploading from an io.Reader consume it on the first attempt.
func (r Request) Replayable() bool {
	if fb, ok := r.body.(FormBody); ok {
		return fb.Form.Replayable()
	}
	return true
}

// FileURL returns the download URL of a file path obtained from getFile.
func FileURL(base, token, filePath string) string {
	return strings.TrimRight(base, "/") + "/file/bot" + token + "/" + strings.TrimLeft(filePath, "/")
}
