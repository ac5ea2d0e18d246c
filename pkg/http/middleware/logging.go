package middleware

import (
	"time"

	applogger "RetailPrice/pkg/logger"

	"github.com/labstack/echo/v4"
)

// RequestLogging logs HTTP requests. 5xx responses are logged as errors and
// requests slower than slowThreshold (when > 0) as warnings.
func RequestLogging(l *applogger.Logger, slowThreshold time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			res := c.Response()
			start := time.Now()

			err := commitError(c, next(c))

			latency := time.Since(start)
			fields := []applogger.Field{
				applogger.String("request_id", GetRequestID(c)),
				applogger.String("method", req.Method),
				applogger.String("uri", req.RequestURI),
				applogger.String("remote_ip", c.RealIP()),
				applogger.Int("status", res.Status),
				applogger.Duration("duration_ms", latency),
				applogger.Int64("bytes", res.Size),
			}

			switch {
			case res.Status >= 500:
				l.Error("http request failed", fields...)
			case slowThreshold > 0 && latency >= slowThreshold:
				l.Warn("http request slow", fields...)
			default:
				l.Info("http request", fields...)
			}

			return err
		}
	}
}

// commitError renders a handler error through the echo error handler so that the
// final status is visible to outer middleware.
func commitError(c echo.Context, err error) error {
	if err != nil {
		c.Error(err)
	}
	return nil
}
