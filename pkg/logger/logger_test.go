package logger_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/ebay-lister/pkg/logger"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  slog.Level
	}{
		{name: "debug", input: "debug", want: slog.LevelDebug},
		{name: "info", input: "info", want: slog.LevelInfo},
		{name: "warn", input: "warn", want: slog.LevelWarn},
		{name: "warning alias", input: "WARNING", want: slog.LevelWarn},
		{name: "error", input: "error", want: slog.LevelError},
		{name: "empty defaults to info", input: "", want: slog.LevelInfo},
		{name: "unknown defaults to info", input: "trace", want: slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, logger.ParseLevel(tt.input))
		})
	}
}

func TestNewWithWriter_TextFormat(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := logger.NewWithWriter(&buf, "info", "text")
	l.Info("publish started", "sku", "card-1")

	out := buf.String()
	assert.Contains(t, out, "level=INFO")
	assert.Contains(t, out, "sku=card-1")
}

func TestNewWithWriter_JSONFormat(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := logger.NewWithWriter(&buf, "debug", "json")
	l.Debug("refresh", "account", "u1:sandbox")

	var m map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &m))
	assert.Equal(t, "refresh", m["msg"])
	assert.Equal(t, "u1:sandbox", m["account"])
}

func TestNewWithWriter_LevelFilter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := logger.NewWithWriter(&buf, "warn", "text")
	l.Info("hidden")
	assert.Empty(t, buf.String())
}

func TestNewWithWriter_RedactsTokens(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := logger.NewWithWriter(&buf, "info", "json")
	l.Info("token refreshed", "access_token", "v^1.1#secret", "refresh_token", "r-secret", "account", "u1:production")

	out := buf.String()
	assert.NotContains(t, out, "v^1.1#secret")
	assert.NotContains(t, out, "r-secret")
	assert.Contains(t, out, "[REDACTED]")
	assert.Contains(t, out, "u1:production")
}

func TestDiscard(t *testing.T) {
	t.Parallel()

	l := logger.Discard()
	require.NotNil(t, l)
	l.Error("nothing happens")
}
