package shuttle

import (
	"fmt"
	"io"
	"net/http"
)

// Response is an immutable HTTP response value. As with [Request], every
// With* mutator returns a new Response.
//
// A 4xx/5xx response is a successful transport exchange: it is returned
// as a normal value, never as an error. Use [Response.IsSuccessful] to
// classify the outcome.
type Response struct {
	statusCode int
	reason     string
	headers    Headers
	body       io.Reader
}

// NewResponse builds a Response with the given status code. The reason
// phrase is resolved from the status registry; unknown codes get an empty
// phrase.
func NewResponse(statusCode int) *Response {
	return &Response{
		statusCode: statusCode,
		reason:     http.StatusText(statusCode),
	}
}

// StatusCode returns the numeric status code.
func (r *Response) StatusCode() int { return r.statusCode }

// ReasonPhrase returns the status text accompanying the code.
func (r *Response) ReasonPhrase() string { return r.reason }

// Headers returns the response's header multimap.
func (r *Response) Headers() Headers { return r.headers }

// Body returns the response body stream, or nil when the response
// carries none.
func (r *Response) Body() io.Reader { return r.body }

// IsSuccessful reports whether the status code is in [100,399].
func (r *Response) IsSuccessful() bool {
	return r.statusCode >= 100 && r.statusCode < 400
}

// WithStatus returns a copy with the status code and reason phrase set
// together. When no explicit phrase is supplied it is resolved from the
// status registry, so the pair can never drift apart.
func (r *Response) WithStatus(statusCode int, reasonPhrase ...string) *Response {
	out := r.clone()
	out.statusCode = statusCode
	if len(reasonPhrase) > 0 {
		out.reason = reasonPhrase[0]
	} else {
		out.reason = http.StatusText(statusCode)
	}
	return out
}

// WithHeader returns a copy with all values for name replaced by value.
func (r *Response) WithHeader(name, value string) *Response {
	out := r.clone()
	out.headers = r.headers.With(name, value)
	return out
}

// WithAddedHeader returns a copy with value appended to the values
// for name.
func (r *Response) WithAddedHeader(name, value string) *Response {
	out := r.clone()
	out.headers = r.headers.WithAdded(name, value)
	return out
}

// WithoutHeader returns a copy with the named header removed.
func (r *Response) WithoutHeader(name string) *Response {
	out := r.clone()
	out.headers = r.headers.Without(name)
	return out
}

// WithBody returns a copy carrying the given body stream.
func (r *Response) WithBody(body io.Reader) *Response {
	out := r.clone()
	out.body = body
	return out
}

// ReadBody drains the body stream and returns its bytes. The body is
// read-once; a second call returns empty unless the stream seeks.
func (r *Response) ReadBody() ([]byte, error) {
	if r.body == nil {
		return nil, nil
	}
	b, err := io.ReadAll(r.body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	return b, nil
}

func (r *Response) clone() *Response {
	cp := *r
	return &cp
}
