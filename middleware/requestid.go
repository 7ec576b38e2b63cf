package middleware

import (
	"github.com/google/uuid"

	"github.com/shuttlehttp/shuttle"
)

// RequestIDHeader is the header set by [RequestID].
const RequestIDHeader = "X-Request-Id"

// RequestID stamps each outgoing request with a fresh UUID under
// [RequestIDHeader]. A request that already carries the header passes
// through untouched, so callers can supply their own correlation IDs.
func RequestID() shuttle.Middleware {
	return shuttle.MiddlewareFunc(func(req *shuttle.Request, next shuttle.Endpoint) (*shuttle.Response, error) {
		if !req.Headers().Has(RequestIDHeader) {
			req = req.WithHeader(RequestIDHeader, uuid.NewString())
		}
		return next(req)
	})
}
