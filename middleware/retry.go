package middleware

import (
	"errors"
	"time"

	"github.com/shuttlehttp/shuttle"
)

// RetryConfig tunes the [Retry] middleware.
type RetryConfig struct {
	// Max is the number of re-attempts after the first try. Zero or
	// negative disables retrying.
	Max int
	// WaitMin is the backoff before the first retry. Defaults to 100ms.
	WaitMin time.Duration
	// WaitMax caps the exponential backoff. Defaults to 2s.
	WaitMax time.Duration
	// ShouldRetry decides whether an outcome warrants another attempt.
	// The default retries transport errors only: an HTTP error status is
	// a completed exchange and passes through.
	ShouldRetry func(res *shuttle.Response, err error) bool
}

// Retry re-invokes the remainder of the pipeline when a call fails. The
// core never retries on its own; this middleware is the sanctioned place
// for that policy. Note that re-sending a request with a non-seekable
// body re-reads an already-drained stream, so retried requests should
// carry seekable bodies.
func Retry(cfg RetryConfig) shuttle.Middleware {
	if cfg.WaitMin <= 0 {
		cfg.WaitMin = 100 * time.Millisecond
	}
	if cfg.WaitMax <= 0 {
		cfg.WaitMax = 2 * time.Second
	}
	if cfg.ShouldRetry == nil {
		cfg.ShouldRetry = func(_ *shuttle.Response, err error) bool {
			var terr *shuttle.TransportError
			return errors.As(err, &terr)
		}
	}

	return shuttle.MiddlewareFunc(func(req *shuttle.Request, next shuttle.Endpoint) (*shuttle.Response, error) {
		res, err := next(req)

		wait := cfg.WaitMin
		for attempt := 0; attempt < cfg.Max && cfg.ShouldRetry(res, err); attempt++ {
			time.Sleep(wait)
			if wait *= 2; wait > cfg.WaitMax {
				wait = cfg.WaitMax
			}

			if body := req.Body(); body != nil {
				if _, rerr := body.Rewind(); rerr != nil {
					return res, err
				}
			}

			res, err = next(req)
		}

		return res, err
	})
}
