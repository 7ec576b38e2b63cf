package shuttle

import "strings"

// Supported protocol versions. The transport maps these to the engine's
// version constants; anything else fails with [UnknownVersionError].
const (
	ProtoHTTP10 = "1.0"
	ProtoHTTP11 = "1.1"
	ProtoHTTP2  = "2"
)

// Request is an immutable HTTP request value. Every With* mutator returns
// a new Request; a Request held by a caller is never modified underneath
// it, so values can flow through middleware without defensive copying.
type Request struct {
	method  string
	target  string
	proto   string
	headers Headers
	body    *Body
}

// NewRequest builds a Request for the given method and target URI. The
// method is uppercased and the protocol version defaults to HTTP/1.1.
func NewRequest(method, target string) *Request {
	return &Request{
		method: strings.ToUpper(method),
		target: target,
		proto:  ProtoHTTP11,
	}
}

// Method returns the uppercased request method.
func (r *Request) Method() string { return r.method }

// Target returns the request target URI.
func (r *Request) Target() string { return r.target }

// Proto returns the protocol version ("1.0", "1.1" or "2").
func (r *Request) Proto() string { return r.proto }

// Headers returns the request's header multimap.
func (r *Request) Headers() Headers { return r.headers }

// Body returns the attached body, or nil when the request carries none.
func (r *Request) Body() *Body { return r.body }

// WithMethod returns a copy using the given method, uppercased.
func (r *Request) WithMethod(method string) *Request {
	out := r.clone()
	out.method = strings.ToUpper(method)
	return out
}

// WithTarget returns a copy using the given target URI.
func (r *Request) WithTarget(target string) *Request {
	out := r.clone()
	out.target = target
	return out
}

// WithProto returns a copy using the given protocol version. The value is
// not validated here; the transport rejects unknown versions.
func (r *Request) WithProto(proto string) *Request {
	out := r.clone()
	out.proto = proto
	return out
}

// WithHeader returns a copy with all values for name replaced by value.
func (r *Request) WithHeader(name, value string) *Request {
	out := r.clone()
	out.headers = r.headers.With(name, value)
	return out
}

// WithAddedHeader returns a copy with value appended to the values
// for name.
func (r *Request) WithAddedHeader(name, value string) *Request {
	out := r.clone()
	out.headers = r.headers.WithAdded(name, value)
	return out
}

// WithoutHeader returns a copy with the named header removed.
func (r *Request) WithoutHeader(name string) *Request {
	out := r.clone()
	out.headers = r.headers.Without(name)
	return out
}

// WithBody returns a copy carrying the given body.
func (r *Request) WithBody(body *Body) *Request {
	out := r.clone()
	out.body = body
	return out
}

func (r *Request) clone() *Request {
	cp := *r
	return &cp
}
