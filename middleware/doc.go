// Package middleware provides ready-made interceptors for the shuttle
// pipeline: request/response logging, request-ID injection, token-bucket
// rate limiting, OpenTelemetry tracing, retries and auth headers.
//
// Middleware run in the order they are handed to shuttle.WithMiddleware:
//
//	c, err := shuttle.New(
//		shuttle.WithMiddleware(
//			middleware.RequestID(),
//			middleware.Logger(slog.Default()),
//			middleware.Retry(middleware.RetryConfig{Max: 3}),
//		),
//	)
//
// Each middleware receives the continuation for the remainder of the
// pipeline and fully controls whether, how often, and with what request
// it is invoked.
package middleware
