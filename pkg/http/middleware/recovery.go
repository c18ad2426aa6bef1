package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	applogger "FinScore/pkg/logger"

	"github.com/labstack/echo/v4"
)

// Recover turns a handler panic into a 500 envelope, counts it per route and
// logs the stack.
func Recover(l *applogger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}
				if r == http.ErrAbortHandler {
					panic(r)
				}
				perr, ok := r.(error)
				if !ok {
					perr = fmt.Errorf("%v", r)
				}
				route := routeLabel(c)
				httpPanics.WithLabelValues(route).Inc()
				l.Error("panic in handler",
					applogger.String("route", route),
					applogger.String("method", c.Request().Method),
					applogger.String("stack", string(debug.Stack())),
					applogger.Error(perr),
				)
				if c.Response().Committed {
					return
				}
				err = c.JSON(http.StatusInternalServerError, map[string]interface{}{
					"status":  http.StatusInternalServerError,
					"message": http.StatusText(http.StatusInternalServerError),
				})
			}()
			return next(c)
		}
	}
}
