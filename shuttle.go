package shuttle

import (
	"log/slog"
	"net/http"
	"runtime"
	"sort"
	"strings"
)

// defaultUserAgent is injected when no User-Agent header is present after
// the client's default headers are applied. Computed once at process
// start; never mutated afterwards.
var defaultUserAgent = "Shuttle/1.0 go/" + strings.TrimPrefix(runtime.Version(), "go")

// Client turns high-level call intent into a fully-formed [Request], runs
// it through the compiled middleware pipeline, and returns the
// [Response].
//
// Configuration is read-only after [New] returns, and the pipeline is
// compiled exactly once, so a single Client may be shared across call
// sites.
type Client struct {
	handler  Handler
	pipeline Endpoint
	proto    string
	baseURL  string
	headers  Headers
	logger   *slog.Logger
}

// New builds a Client. All options are optional; the zero configuration
// uses an [HTTPHandler], protocol version "1.1", no base URL, no default
// headers and an empty pipeline.
//
// Configuration problems fail here with a [ConfigurationError], never on
// the first call.
func New(optFns ...Option) (*Client, error) {
	opts := options{
		httpVersion: ProtoHTTP11,
		logger:      slog.Default(),
	}
	for _, fn := range optFns {
		if err := fn(&opts); err != nil {
			return nil, &ConfigurationError{Err: err}
		}
	}

	if err := validateConfig(config{
		HTTPVersion: opts.httpVersion,
		BaseURL:     opts.baseURL,
	}); err != nil {
		return nil, &ConfigurationError{Err: err}
	}

	handler := opts.handler
	if handler == nil {
		handler = NewHTTPHandler().SetLogger(opts.logger)
	}
	if opts.debug {
		handler.SetDebug(true)
	}

	var headers Headers
	for _, p := range opts.headers {
		headers = headers.With(p.name, p.value)
	}

	return &Client{
		handler:  handler,
		pipeline: compile(opts.middleware, handler.Execute),
		proto:    opts.httpVersion,
		baseURL:  opts.baseURL,
		headers:  headers,
		logger:   opts.logger,
	}, nil
}

// compile folds the middleware list, last to first, into a single
// endpoint terminating in kernel. Middleware therefore execute in
// declared order on the way in and observe responses in reverse order on
// the way out. A middleware that never calls its continuation
// short-circuits the chain, and kernel is never reached.
func compile(mw []Middleware, kernel Endpoint) Endpoint {
	chain := kernel
	for i := len(mw) - 1; i >= 0; i-- {
		m, next := mw[i], chain
		chain = func(req *Request) (*Response, error) {
			return m.Process(req, next)
		}
	}
	return chain
}

// CallOption is a per-call option for [Client.Request] and the verb
// helpers.
type CallOption func(*callOptions)

type callOptions struct {
	headers []headerPair
}

// WithCallHeader sets a header on this call only, overriding any client
// default of the same name.
func WithCallHeader(name, value string) CallOption {
	return func(o *callOptions) {
		o.headers = append(o.headers, headerPair{name: name, value: value})
	}
}

// WithCallHeaders sets headers on this call only, applied in sorted key
// order for determinism.
func WithCallHeaders(headers map[string]string) CallOption {
	return func(o *callOptions) {
		keys := make([]string, 0, len(headers))
		for k := range headers {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			o.headers = append(o.headers, headerPair{name: k, value: headers[k]})
		}
	}
}

// Request builds a [Request] from shorthand arguments and dispatches it
// through [Client.SendRequest].
//
// When a base URL is configured, the effective target is the literal
// concatenation baseURL+target. Headers apply in order: client defaults,
// then an implicit User-Agent (only if none is set yet), then the body's
// declared Content-Type, then per-call headers — so a per-call header
// wins over all of them. The protocol version always comes from the
// client configuration.
func (c *Client) Request(method, target string, body *Body, optFns ...CallOption) (*Response, error) {
	var opts callOptions
	for _, fn := range optFns {
		fn(&opts)
	}

	if c.baseURL != "" {
		target = c.baseURL + target
	}

	req := NewRequest(method, target).WithProto(c.proto)

	for _, name := range c.headers.Names() {
		for i, v := range c.headers.Values(name) {
			if i == 0 {
				req = req.WithHeader(name, v)
			} else {
				req = req.WithAddedHeader(name, v)
			}
		}
	}

	if !req.Headers().Has("User-Agent") {
		req = req.WithHeader("User-Agent", defaultUserAgent)
	}

	if body != nil {
		req = req.WithBody(body)
		if ct := body.ContentType(); ct != "" {
			req = req.WithHeader("Content-Type", ct)
		}
	}

	for _, p := range opts.headers {
		req = req.WithHeader(p.name, p.value)
	}

	return c.SendRequest(req)
}

// SendRequest invokes the compiled pipeline with req and returns its
// result unchanged. Every request reaches the transport through this
// method; the verb helpers and [Client.Request] always funnel here.
//
// Errors raised by a middleware or the transport propagate unchanged
// through every enclosing middleware frame to the caller.
func (c *Client) SendRequest(req *Request) (*Response, error) {
	return c.pipeline(req)
}

// Handler returns the configured transport, primarily so callers can
// toggle debug mode or inspect transport-specific state.
func (c *Client) Handler() Handler {
	return c.handler
}

// Get issues a GET request against target.
func (c *Client) Get(target string, opts ...CallOption) (*Response, error) {
	return c.Request(http.MethodGet, target, nil, opts...)
}

// Head issues a HEAD request against target.
func (c *Client) Head(target string, opts ...CallOption) (*Response, error) {
	return c.Request(http.MethodHead, target, nil, opts...)
}

// Options issues an OPTIONS request against target.
func (c *Client) Options(target string, opts ...CallOption) (*Response, error) {
	return c.Request(http.MethodOptions, target, nil, opts...)
}

// Delete issues a DELETE request against target.
func (c *Client) Delete(target string, opts ...CallOption) (*Response, error) {
	return c.Request(http.MethodDelete, target, nil, opts...)
}

// Post issues a POST request carrying body against target.
func (c *Client) Post(target string, body *Body, opts ...CallOption) (*Response, error) {
	return c.Request(http.MethodPost, target, body, opts...)
}

// Put issues a PUT request carrying body against target.
func (c *Client) Put(target string, body *Body, opts ...CallOption) (*Response, error) {
	return c.Request(http.MethodPut, target, body, opts...)
}

// Patch issues a PATCH request carrying body against target.
func (c *Client) Patch(target string, body *Body, opts ...CallOption) (*Response, error) {
	return c.Request(http.MethodPatch, target, body, opts...)
}
