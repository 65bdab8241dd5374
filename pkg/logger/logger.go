// Package logger builds the process slog.Logger. Output is text or JSON and
// credential-bearing attributes are redacted before they reach the handler.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

const redacted = "[REDACTED]"

// sensitiveKeys are attribute keys whose values never reach the log output.
var sensitiveKeys = map[string]struct{}{
	"access_token":  {},
	"refresh_token": {},
	"token":         {},
	"code":          {},
	"cert_id":       {},
	"authorization": {},
}

// New creates a logger writing to stderr.
// Level: "debug", "info", "warn", "error" (default "info").
// Format: "json" or "text" (default "text").
func New(level, format string) *slog.Logger {
	return NewWithWriter(os.Stderr, level, format)
}

// NewWithWriter creates a logger writing to w.
func NewWithWriter(w io.Writer, level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:       ParseLevel(level),
		ReplaceAttr: redact,
	}

	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler)
}

// Discard returns a logger that drops everything. Used by tests and by
// components constructed without a logger.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ParseLevel converts a level string to slog.Level. Unknown values map to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func redact(_ []string, a slog.Attr) slog.Attr {
	if _, ok := sensitiveKeys[strings.ToLower(a.Key)]; ok && a.Value.String() != "" {
		return slog.String(a.Key, redacted)
	}
	return a
}
