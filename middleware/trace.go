package middleware

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/shuttlehttp/shuttle"
)

// Trace opens a span around the remainder of the pipeline, recording the
// method, target and resulting status code. Pass a nil tracer to use the
// globally registered provider, which is a no-op unless one is
// installed.
func Trace(tracer trace.Tracer) shuttle.Middleware {
	if tracer == nil {
		tracer = otel.Tracer("github.com/shuttlehttp/shuttle")
	}

	return shuttle.MiddlewareFunc(func(req *shuttle.Request, next shuttle.Endpoint) (*shuttle.Response, error) {
		_, span := tracer.Start(context.Background(), "shuttle.request",
			trace.WithSpanKind(trace.SpanKindClient),
			trace.WithAttributes(
				attribute.String("http.request.method", req.Method()),
				attribute.String("url.full", req.Target()),
			),
		)
		defer span.End()

		res, err := next(req)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}

		span.SetAttributes(attribute.Int("http.response.status_code", res.StatusCode()))
		if !res.IsSuccessful() {
			span.SetStatus(codes.Error, res.ReasonPhrase())
		}

		return res, nil
	})
}
