package middleware

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Shresth-k/THGNN-model-for-stock-market/pkg/logger"
)

// RequestLogging logs one line per request with method, route, status and
// latency. Errors returned by the handler chain are logged here but still
// propagated so the error handler can shape the response.
func RequestLogging(l *logger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			req := c.Request()
			fields := []logger.Field{
				logger.String("method", req.Method),
				logger.String("uri", req.RequestURI),
				logger.String("remote", c.RealIP()),
				logger.Int("status", c.Response().Status),
				logger.Duration("latency", time.Since(start)),
			}
			if err != nil {
				l.Error("http request", append(fields, logger.Error(err))...)
			} else {
				l.Info("http request", fields...)
			}

			return err
		}
	}
}
