package middleware

import (
	"strings"
	"time"

	applogger "FinScore/pkg/logger"

	"github.com/labstack/echo/v4"
)

// RequestLogging logs each request once it completes. Probe and scrape
// paths listed in skip are not logged. Server errors log at warn.
func RequestLogging(l *applogger.Logger, skip ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			for _, p := range skip {
				if p != "" && strings.HasPrefix(req.URL.Path, p) {
					return next(c)
				}
			}
			start := time.Now()

			// Resolve the error here so the logged status is final.
			if err := next(c); err != nil {
				c.Error(err)
			}

			res := c.Response()
			fields := []applogger.Field{
				applogger.String("method", req.Method),
				applogger.String("route", c.Path()),
				applogger.String("uri", req.RequestURI),
				applogger.String("remote", c.RealIP()),
				applogger.Int("status", res.Status),
				applogger.Int64("bytes", res.Size),
				applogger.Duration("duration_ms", time.Since(start)),
			}
			if id := res.Header().Get(echo.HeaderXRequestID); id != "" {
				fields = append(fields, applogger.String("request_id", id))
			}
			if res.Status >= 500 {
				l.Warn("http request failed", fields...)
			} else {
				l.Debug("http request", fields...)
			}
			return nil
		}
	}
}
