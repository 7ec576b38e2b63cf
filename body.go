package shuttle

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strings"
)

// Body is an opaque byte source attached to a request. The client never
// inspects its bytes; the only metadata it reads is the declared content
// type, which becomes the request's Content-Type header unless a per-call
// header overrides it.
//
// A Body is read-once unless the underlying reader seeks. Bodies built by
// [BodyString], [BodyBytes], [BodyJSON] and [BodyForm] are seekable, so
// the network transport can replay them when following a redirect.
type Body struct {
	r           io.Reader
	contentType string
}

// NewBody wraps an arbitrary reader. contentType may be empty, in which
// case no Content-Type header is derived from the body.
func NewBody(r io.Reader, contentType string) *Body {
	return &Body{r: r, contentType: contentType}
}

// BodyString builds a plain-text body.
func BodyString(s string) *Body {
	return &Body{r: strings.NewReader(s), contentType: "text/plain; charset=utf-8"}
}

// BodyBytes builds a body from a byte slice with the given content type.
func BodyBytes(b []byte, contentType string) *Body {
	return &Body{r: bytes.NewReader(b), contentType: contentType}
}

// BodyJSON marshals v and declares an application/json content type.
func BodyJSON(v any) (*Body, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encoding json body: %w", err)
	}
	return &Body{r: bytes.NewReader(b), contentType: "application/json; charset=utf-8"}, nil
}

// BodyForm url-encodes form and declares a form content type.
func BodyForm(form url.Values) *Body {
	return &Body{
		r:           strings.NewReader(form.Encode()),
		contentType: "application/x-www-form-urlencoded",
	}
}

// ContentType returns the declared content type, or "" when none was set.
func (b *Body) ContentType() string {
	return b.contentType
}

// Read implements io.Reader.
func (b *Body) Read(p []byte) (int, error) {
	return b.r.Read(p)
}

// Rewind seeks the body back to its start. It returns false when the
// underlying reader does not support seeking.
func (b *Body) Rewind() (bool, error) {
	s, ok := b.r.(io.Seeker)
	if !ok {
		return false, nil
	}
	if _, err := s.Seek(0, io.SeekStart); err != nil {
		return false, fmt.Errorf("rewinding body: %w", err)
	}
	return true, nil
}

// seekable reports whether the body can be replayed.
func (b *Body) seekable() bool {
	_, ok := b.r.(io.Seeker)
	return ok
}
