package shuttle

// Endpoint is the continuation signature used throughout the pipeline:
// the remainder of the chain, terminating in the transport, collapsed
// into a single callable.
type Endpoint func(*Request) (*Response, error)

// Handler is the transport capability: it turns a Request into a Response
// via real or simulated I/O.
//
// Execute must build any per-call state freshly so that sequential calls
// never leak state into one another; implementations that also construct
// per-call state without sharing mutable buffers are safe for concurrent
// use.
type Handler interface {
	// Execute performs a single blocking round trip. It fails with a
	// transport-level error when no response is obtainable; an HTTP error
	// status is a normal Response, not an error.
	Execute(req *Request) (*Response, error)

	// SetDebug toggles verbose diagnostics and returns the handler for
	// chaining. Diagnostics go to a side channel, never into a Response.
	SetDebug(enabled bool) Handler
}

// Middleware intercepts a request on its way to the transport. It fully
// controls the continuation: it may rewrite the request before calling
// next, call next any number of times (or not at all, short-circuiting
// the chain with a response of its own), and replace the response on the
// way back out.
type Middleware interface {
	Process(req *Request, next Endpoint) (*Response, error)
}

// MiddlewareFunc adapts an ordinary function to the [Middleware]
// interface.
type MiddlewareFunc func(req *Request, next Endpoint) (*Response, error)

// Process calls f(req, next).
func (f MiddlewareFunc) Process(req *Request, next Endpoint) (*Response, error) {
	return f(req, next)
}
