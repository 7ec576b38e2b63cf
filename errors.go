package shuttle

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidHandler is wrapped by [ConfigurationError] when the
	// configured handler does not satisfy the [Handler] contract.
	ErrInvalidHandler = errors.New("handler does not satisfy the Handler contract")
	// ErrQueueExhausted is returned by [MockHandler.Execute] when its
	// response queue is empty. It signals a test-setup mistake.
	ErrQueueExhausted = errors.New("mock handler response queue exhausted")
)

// ConfigurationError reports an invalid client configuration. It is
// raised synchronously by [New], never deferred to the first call.
type ConfigurationError struct {
	Err error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("shuttle configuration: %v", e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// TransportError reports a failed network exchange: connection refused,
// timeout, TLS failure, or any other engine error. The core never retries
// it; retry, if desired, belongs in a middleware.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// UnknownVersionError reports a protocol version outside the recognized
// set ("1.0", "1.1", "2").
type UnknownVersionError struct {
	Version string
}

func (e *UnknownVersionError) Error() string {
	return fmt.Sprintf("unknown protocol version %q", e.Version)
}
