package middleware

import (
	"log/slog"
	"time"

	"github.com/shuttlehttp/shuttle"
)

// Logger logs every request before it enters the rest of the pipeline
// and the outcome on the way back out. The response itself is returned
// unchanged.
func Logger(logger *slog.Logger) shuttle.Middleware {
	if logger == nil {
		logger = slog.Default()
	}

	return shuttle.MiddlewareFunc(func(req *shuttle.Request, next shuttle.Endpoint) (*shuttle.Response, error) {
		logger.Info("request dispatched",
			"method", req.Method(),
			"target", req.Target(),
		)

		start := time.Now()
		res, err := next(req)
		elapsed := time.Since(start)

		if err != nil {
			logger.Error("request failed",
				"method", req.Method(),
				"target", req.Target(),
				"elapsed", elapsed.String(),
				"error", err,
			)
			return nil, err
		}

		logger.Info("response received",
			"method", req.Method(),
			"target", req.Target(),
			"status", res.StatusCode(),
			"elapsed", elapsed.String(),
		)

		return res, nil
	})
}
