package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime"

	"github.com/labstack/echo/v4"
)

// Recovery returns Echo middleware that recovers from panics, logs the stack
// trace, and answers with a problem document in the same shape as API
// errors.
func Recovery(log *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			defer func() {
				if r := recover(); r != nil {
					buf := make([]byte, 4096)
					n := runtime.Stack(buf, false)

					reqID, _ := c.Get("request_id").(string)
					log.Error("panic recovered",
						"error", fmt.Sprint(r),
						"method", c.Request().Method,
						"path", c.Request().URL.Path,
						"request_id", reqID,
						"stack", string(buf[:n]),
					)

					c.Response().Header().Set(echo.HeaderContentType, "application/problem+json")
					err = c.JSON(http.StatusInternalServerError, map[string]any{
						"title":  http.StatusText(http.StatusInternalServerError),
						"status": http.StatusInternalServerError,
						"detail": "internal server error",
					})
				}
			}()
			return next(c)
		}
	}
}
