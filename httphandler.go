package shuttle

import (
	"crypto/tls"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/shuttlehttp/shuttle/spool"
)

// Defaults for the tunable HTTPHandler knobs.
const (
	DefaultBufferThreshold = spool.DefaultThreshold
	DefaultMaxRedirects    = 10
	DefaultConnectTimeout  = 120 * time.Second
)

// HTTPHandler is the network transport: it realizes a [Request] as an
// actual exchange over [net/http] and adapts the engine's result back
// into a [Response].
//
// Configuration is fixed after the Set* mutators run; Execute builds all
// per-call state freshly, so a single HTTPHandler is safe for concurrent
// use once configured.
type HTTPHandler struct {
	bufferThreshold int64
	maxRedirects    int
	connectTimeout  time.Duration
	verifyTLS       bool
	debug           bool
	logger          *slog.Logger
}

// NewHTTPHandler returns a handler with the documented defaults: a 2 MiB
// body buffer threshold, at most 10 followed redirects, a 120s connect
// timeout and TLS peer verification enabled.
func NewHTTPHandler() *HTTPHandler {
	return &HTTPHandler{
		bufferThreshold: DefaultBufferThreshold,
		maxRedirects:    DefaultMaxRedirects,
		connectTimeout:  DefaultConnectTimeout,
		verifyTLS:       true,
		logger:          slog.Default(),
	}
}

// SetDebug toggles verbose engine diagnostics, written through the
// handler's logger rather than into any Response.
func (h *HTTPHandler) SetDebug(enabled bool) Handler {
	h.debug = enabled
	return h
}

// SetBufferThreshold sets the byte count above which response bodies
// spill from memory to a temporary file.
func (h *HTTPHandler) SetBufferThreshold(n int64) *HTTPHandler {
	h.bufferThreshold = n
	return h
}

// SetMaxRedirects bounds how many redirects a single call may follow.
func (h *HTTPHandler) SetMaxRedirects(n int) *HTTPHandler {
	h.maxRedirects = n
	return h
}

// SetConnectTimeout bounds how long a single call may spend establishing
// a connection.
func (h *HTTPHandler) SetConnectTimeout(d time.Duration) *HTTPHandler {
	h.connectTimeout = d
	return h
}

// SetVerifyTLS toggles TLS peer verification. Disabling it is intended
// for test environments only.
func (h *HTTPHandler) SetVerifyTLS(verify bool) *HTTPHandler {
	h.verifyTLS = verify
	return h
}

// SetLogger replaces the logger used for debug diagnostics.
func (h *HTTPHandler) SetLogger(logger *slog.Logger) *HTTPHandler {
	if logger != nil {
		h.logger = logger
	}
	return h
}

// engineOptions is the per-call option buffer handed to the engine. It is
// computed freshly for every Execute, never shared between calls.
type engineOptions struct {
	method         string
	url            *url.URL
	protoMajor     int
	protoMinor     int
	forceHTTP2     bool
	wireHeaders    []string
	body           *Body
	maxRedirects   int
	connectTimeout time.Duration
	verifyTLS      bool
}

// buildEngineOptions maps a Request onto engine options. It is a pure
// function of the request and the handler's configuration, which keeps
// the adaptation independently testable without touching the network.
func (h *HTTPHandler) buildEngineOptions(req *Request) (*engineOptions, error) {
	opts := &engineOptions{
		method:         req.Method(),
		wireHeaders:    req.Headers().Wire(),
		body:           req.Body(),
		maxRedirects:   h.maxRedirects,
		connectTimeout: h.connectTimeout,
		verifyTLS:      h.verifyTLS,
	}

	switch req.Proto() {
	case ProtoHTTP10:
		opts.protoMajor, opts.protoMinor = 1, 0
	case ProtoHTTP11:
		opts.protoMajor, opts.protoMinor = 1, 1
	case ProtoHTTP2:
		opts.protoMajor, opts.protoMinor = 2, 0
		opts.forceHTTP2 = true
	default:
		return nil, &UnknownVersionError{Version: req.Proto()}
	}

	u, err := url.Parse(req.Target())
	if err != nil {
		return nil, &TransportError{Err: fmt.Errorf("parsing target %q: %w", req.Target(), err)}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, &TransportError{Err: fmt.Errorf("unsupported scheme %q in target %q", u.Scheme, req.Target())}
	}
	opts.url = u

	return opts, nil
}

// Execute performs one blocking round trip. Engine failures surface as
// [TransportError]; a Response is never partially returned on error.
func (h *HTTPHandler) Execute(req *Request) (*Response, error) {
	opts, err := h.buildEngineOptions(req)
	if err != nil {
		return nil, err
	}

	hreq, err := h.newEngineRequest(req, opts)
	if err != nil {
		return nil, err
	}

	cli := h.newEngineClient(opts)
	defer cli.Transport.(*http.Transport).CloseIdleConnections()

	if h.debug {
		h.logger.Debug("dispatching request",
			"method", opts.method,
			"url", opts.url.String(),
			"proto", req.Proto(),
			"headers", opts.wireHeaders,
		)
	}

	hres, err := cli.Do(hreq)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer hres.Body.Close()

	buf := spool.NewBuffer(h.bufferThreshold)
	if _, err := io.Copy(buf, hres.Body); err != nil {
		buf.Close()
		return nil, &TransportError{Err: fmt.Errorf("reading response body: %w", err)}
	}

	res := adaptEngineResponse(hres).WithBody(buf)

	if h.debug {
		h.logger.Debug("received response",
			"status", res.StatusCode(),
			"reason", res.ReasonPhrase(),
			"bytes", buf.Len(),
			"spilled", buf.Spilled(),
		)
	}

	return res, nil
}

// newEngineRequest translates the option buffer into an engine request,
// preserving the declared header order and casing, choosing the method
// verb explicitly, and attaching the body only when one is present.
func (h *HTTPHandler) newEngineRequest(req *Request, opts *engineOptions) (*http.Request, error) {
	var body io.Reader
	if opts.body != nil {
		body = opts.body
	}

	hreq, err := http.NewRequest(opts.method, opts.url.String(), body)
	if err != nil {
		return nil, &TransportError{Err: fmt.Errorf("building engine request: %w", err)}
	}

	hreq.Proto = fmt.Sprintf("HTTP/%d.%d", opts.protoMajor, opts.protoMinor)
	hreq.ProtoMajor = opts.protoMajor
	hreq.ProtoMinor = opts.protoMinor

	// Assign map keys directly so the declared casing survives on the
	// wire for HTTP/1.x; Header.Set would canonicalize them.
	headers := req.Headers()
	for _, name := range headers.Names() {
		hreq.Header[name] = headers.Values(name)
	}

	// Redirect replay needs a rewindable body. Non-seekable bodies are
	// not replayed: the engine then returns the redirect response as-is.
	if opts.body != nil && opts.body.seekable() {
		b := opts.body
		hreq.GetBody = func() (io.ReadCloser, error) {
			if _, err := b.Rewind(); err != nil {
				return nil, err
			}
			return io.NopCloser(b), nil
		}
	}

	return hreq, nil
}

// newEngineClient assembles a fresh engine and redirect policy for one
// call. Nothing here is shared between calls.
func (h *HTTPHandler) newEngineClient(opts *engineOptions) *http.Client {
	engine := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout: opts.connectTimeout,
		}).DialContext,
		TLSClientConfig:   &tls.Config{InsecureSkipVerify: !opts.verifyTLS},
		ForceAttemptHTTP2: opts.forceHTTP2,
		DisableKeepAlives: opts.protoMajor == 1 && opts.protoMinor == 0,
	}

	return &http.Client{
		Transport: engine,
		CheckRedirect: func(r *http.Request, via []*http.Request) error {
			if len(via) >= opts.maxRedirects {
				return fmt.Errorf("stopped after %d redirects", opts.maxRedirects)
			}
			return nil
		},
	}
}

// adaptEngineResponse converts the engine's parsed response into a
// Response value, carrying over the status line and headers. Header names
// arrive canonicalized from the engine; they are emitted in sorted order
// for determinism.
func adaptEngineResponse(hres *http.Response) *Response {
	res := NewResponse(hres.StatusCode)
	if phrase := reasonFromStatusLine(hres.Status, hres.StatusCode); phrase != "" {
		res = res.WithStatus(hres.StatusCode, phrase)
	}

	names := make([]string, 0, len(hres.Header))
	for name := range hres.Header {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		for _, v := range hres.Header[name] {
			res = res.WithAddedHeader(name, v)
		}
	}

	return res
}

// reasonFromStatusLine extracts the phrase from an engine status like
// "200 OK".
func reasonFromStatusLine(status string, code int) string {
	prefix := fmt.Sprintf("%d ", code)
	if len(status) > len(prefix) && status[:len(prefix)] == prefix {
		return status[len(prefix):]
	}
	return ""
}
