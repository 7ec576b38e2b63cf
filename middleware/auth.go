package middleware

import (
	"encoding/base64"

	"github.com/shuttlehttp/shuttle"
)

// BasicAuth sets an Authorization header with the Basic scheme on every
// request that does not already carry one.
func BasicAuth(username, password string) shuttle.Middleware {
	credentials := base64.StdEncoding.EncodeToString([]byte(username + ":" + password))

	return shuttle.MiddlewareFunc(func(req *shuttle.Request, next shuttle.Endpoint) (*shuttle.Response, error) {
		if !req.Headers().Has("Authorization") {
			req = req.WithHeader("Authorization", "Basic "+credentials)
		}
		return next(req)
	})
}

// BearerAuth sets an Authorization header with the Bearer scheme on
// every request that does not already carry one.
func BearerAuth(token string) shuttle.Middleware {
	return shuttle.MiddlewareFunc(func(req *shuttle.Request, next shuttle.Endpoint) (*shuttle.Response, error) {
		if !req.Headers().Has("Authorization") {
			req = req.WithHeader("Authorization", "Bearer "+token)
		}
		return next(req)
	})
}
