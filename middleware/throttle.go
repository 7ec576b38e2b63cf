package middleware

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/shuttlehttp/shuttle"
)

var (
	// ErrMustNotBeZero rejects non-positive throttle parameters.
	ErrMustNotBeZero = errors.New("must be greater than zero")
	// ErrWaitingFailed wraps a failed wait on the token bucket.
	ErrWaitingFailed = errors.New("limiter waiting failed")
)

// Throttle rate-limits the pipeline with a token bucket of rps tokens
// per second and the given burst capacity. A request that arrives with
// the bucket empty blocks until a token becomes available; the client's
// call model is synchronous, so there is no cancellation at this layer.
func Throttle(rps, burst int) (shuttle.Middleware, error) {
	if rps <= 0 || burst <= 0 {
		return nil, fmt.Errorf("rps[%d] and burst[%d] %w", rps, burst, ErrMustNotBeZero)
	}

	limiter := rate.NewLimiter(rate.Limit(rps), burst)

	return shuttle.MiddlewareFunc(func(req *shuttle.Request, next shuttle.Endpoint) (*shuttle.Response, error) {
		if err := limiter.Wait(context.Background()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrWaitingFailed, err)
		}
		return next(req)
	}), nil
}
