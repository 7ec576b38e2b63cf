// Package shuttle provides a synchronous HTTP client that routes every
// request through an ordered middleware pipeline before handing it to a
// replaceable transport.
//
// # Building a Client
//
// Use [New] to create a [Client] with functional options:
//
//	c, err := shuttle.New(
//		shuttle.WithBaseURL("https://api.example.com"),
//		shuttle.WithHeader("Accept", "application/json"),
//		shuttle.WithMiddleware(middleware.Logger(slog.Default())),
//	)
//
// # Making Requests
//
// The verb helpers build a [Request] from shorthand arguments and funnel
// it through [Client.SendRequest]:
//
//	res, err := c.Get("/v1/widgets")
//	res, err := c.Post("/v1/widgets", shuttle.BodyString(`{"name":"bolt"}`))
//
// Responses with 4xx/5xx status codes are returned as normal values, never
// as errors; classify with [Response.IsSuccessful].
//
// # Middleware
//
// A [Middleware] wraps the remainder of the pipeline as an [Endpoint]
// continuation. Middleware run in declared order on the way in and observe
// responses in reverse order on the way out. A middleware that never calls
// its continuation short-circuits the chain and the transport is never
// reached. See the middleware subpackage for ready-made interceptors
// (logging, retries, rate limiting, request IDs, tracing, auth).
//
// # Testing
//
// Swap the transport for a [MockHandler] to replay scripted responses
// without touching the network:
//
//	c, err := shuttle.New(shuttle.WithHandler(
//		shuttle.NewMockHandler(shuttle.NewResponse(200)),
//	))
package shuttle
