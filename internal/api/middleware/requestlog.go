package middleware

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const requestIDHeader = "X-Request-ID"

// probePaths are logged on their first success and on every failure only.
var probePaths = map[string]struct{}{
	"/healthz": {},
	"/readyz":  {},
}

// RequestLog returns Echo middleware that logs requests with structured fields.
// It generates a request ID if none is provided and propagates it through
// the response header and echo context. Repeated successful probe requests
// are not logged; a probe failure is logged at WARN and re-arms logging of
// the next success.
func RequestLog(log *slog.Logger) echo.MiddlewareFunc {
	var (
		mu      sync.Mutex
		probeOK = make(map[string]bool)
	)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			reqID := c.Request().Header.Get(requestIDHeader)
			if reqID == "" {
				reqID = uuid.NewString()
			}

			c.Set("request_id", reqID)
			c.Response().Header().Set(requestIDHeader, reqID)

			err := next(c)

			path := c.Request().URL.Path
			status := c.Response().Status
			failed := status >= http.StatusInternalServerError

			if _, probe := probePaths[path]; probe {
				mu.Lock()
				seen := probeOK[path]
				probeOK[path] = !failed
				mu.Unlock()
				if seen && !failed {
					return err
				}
			}

			level := slog.LevelInfo
			if failed {
				level = slog.LevelWarn
			}
			log.Log(c.Request().Context(), level, "request",
				"method", c.Request().Method,
				"path", path,
				"status", status,
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", reqID,
			)

			return err
		}
	}
}
