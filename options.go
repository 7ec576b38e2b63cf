package shuttle

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
)

// Option is a functional option for configuring a [Client] via [New].
type Option func(*options) error

type options struct {
	handler     Handler
	httpVersion string
	baseURL     string
	headers     []headerPair
	middleware  []Middleware
	debug       bool
	logger      *slog.Logger
}

type headerPair struct {
	name  string
	value string
}

// WithHandler replaces the default network transport. The handler must
// satisfy the [Handler] contract; a nil handler fails construction
// immediately.
func WithHandler(h Handler) Option {
	return func(o *options) error {
		if h == nil {
			return ErrInvalidHandler
		}
		o.handler = h
		return nil
	}
}

// WithHTTPVersion sets the protocol version applied to every request.
// Accepted values are "1.0", "1.1" and "2"; the default is "1.1".
func WithHTTPVersion(version string) Option {
	return func(o *options) error {
		o.httpVersion = version
		return nil
	}
}

// WithBaseURL sets a literal string prefix prepended to every call
// target. No URI joining or path normalization is performed.
func WithBaseURL(baseURL string) Option {
	return func(o *options) error {
		o.baseURL = baseURL
		return nil
	}
}

// WithHeader adds a default header applied to every request. Later
// options override earlier ones for the same name, and per-call headers
// override both.
func WithHeader(name, value string) Option {
	return func(o *options) error {
		if name == "" {
			return errors.New("header name must not be empty")
		}
		o.headers = append(o.headers, headerPair{name: name, value: value})
		return nil
	}
}

// WithHeaders adds default headers from a map, applied in sorted key
// order for determinism.
func WithHeaders(headers map[string]string) Option {
	return func(o *options) error {
		keys := make([]string, 0, len(headers))
		for k := range headers {
			if k == "" {
				return errors.New("header name must not be empty")
			}
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			o.headers = append(o.headers, headerPair{name: k, value: headers[k]})
		}
		return nil
	}
}

// WithMiddleware appends middleware to the pipeline. Order is
// significant: middleware run in the order given here.
func WithMiddleware(mw ...Middleware) Option {
	return func(o *options) error {
		for i, m := range mw {
			if m == nil {
				return fmt.Errorf("middleware at index %d is nil", i)
			}
			o.middleware = append(o.middleware, m)
		}
		return nil
	}
}

// WithDebug enables verbose transport diagnostics.
func WithDebug() Option {
	return func(o *options) error {
		o.debug = true
		return nil
	}
}

// WithLogger injects a custom [slog.Logger], used for transport
// diagnostics when debug mode is on.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) error {
		if logger == nil {
			return errors.New("logger must not be nil")
		}
		o.logger = logger
		return nil
	}
}
