package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/JohanLiebertTheRealOne/InsightsAPI/pkg/logger"

	"github.com/labstack/echo/v4"
)

// Recover returns middleware that converts handler panics into 500 responses.
func Recover(l *logger.Logger) echo.MiddlewareFunc {
	if l == nil {
		l = logger.Nop()
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			defer func() {
				if r := recover(); r != nil {
					err, ok := r.(error)
					if !ok {
						err = fmt.Errorf("%v", r)
					}
					l.Error("handler panic",
						logger.String("method", c.Request().Method),
						logger.String("path", c.Request().URL.Path),
						logger.Error(err),
						logger.String("stack", string(debug.Stack())),
					)
					_ = c.JSON(http.StatusInternalServerError, map[string]interface{}{
						"status":  http.StatusInternalServerError,
						"message": "Internal Server Error",
					})
				}
			}()
			return next(c)
		}
	}
}
