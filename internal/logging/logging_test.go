package logging

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("json format", func(t *testing.T) {
		var buf bytes.Buffer
		logger := New(&buf, slog.LevelInfo, "json")
		logger.Info("loaded", slog.String("dataset", "gni"), slog.Int("rows", 15))

		out := buf.String()
		assert.Contains(t, out, `"level":"INFO"`)
		assert.Contains(t, out, `"msg":"loaded"`)
		assert.Contains(t, out, `"dataset":"gni"`)
		assert.Contains(t, out, `"rows":15`)
	})

	t.Run("text format", func(t *testing.T) {
		var buf bytes.Buffer
		logger := New(&buf, slog.LevelInfo, "text")
		logger.Info("loaded", slog.String("dataset", "gni"))
		assert.Contains(t, buf.String(), "msg=loaded dataset=gni")
	})

	t.Run("respects level", func(t *testing.T) {
		var buf bytes.Buffer
		logger := New(&buf, slog.LevelWarn, "json")
		logger.Debug("debug message")
		logger.Info("info message")
		logger.Warn("warning message")

		out := buf.String()
		assert.NotContains(t, out, "debug message")
		assert.NotContains(t, out, "info message")
		assert.Contains(t, out, "warning message")
	})
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"":      slog.LevelInfo,
		"debug": slog.LevelDebug,
		"INFO":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, "text", f)
	f, err = ParseFormat("JSON")
	require.NoError(t, err)
	assert.Equal(t, "json", f)
	_, err = ParseFormat("xml")
	assert.Error(t, err)
}

func TestLogError(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, slog.LevelInfo, "json")
	LogError(logger, "pipeline failed", assert.AnError, slog.String("command", "run"))

	out := buf.String()
	assert.Contains(t, out, `"level":"ERROR"`)
	assert.Contains(t, out, `"msg":"pipeline failed"`)
	assert.Contains(t, out, `"error":"assert.AnError general error for testing"`)
	assert.Contains(t, out, `"command":"run"`)

	// nil logger and nil error are no-ops
	LogError(nil, "ignored", assert.AnError)
	buf.Reset()
	LogError(logger, "ignored", nil)
	assert.Empty(t, buf.String())
}

func TestLogOperation(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, slog.LevelInfo, "json")
	LogOperation(logger, "chart written",
		slog.String("path", "1.png"),
		slog.Duration("duration", 0))

	out := buf.String()
	assert.Contains(t, out, `"msg":"chart written"`)
	assert.Contains(t, out, `"path":"1.png"`)
	assert.NotContains(t, out, "duration")

	buf.Reset()
	LogOperation(logger, "timed", slog.Duration("duration", time.Second))
	assert.Contains(t, buf.String(), `"duration":1000000000`)
}

func TestContextLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, slog.LevelInfo, "json")
	ctx := WithLogger(context.Background(), logger)
	assert.Same(t, logger, FromContext(ctx))
	assert.Same(t, slog.Default(), FromContext(context.Background()))
}

type failingCloser struct{}

func (failingCloser) Close() error { return errors.New("disk gone") }

func TestSafeClose(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, slog.LevelInfo, "json")
	SafeClose(failingCloser{}, logger, "close workbook")
	assert.Contains(t, buf.String(), `"error":"disk gone"`)
	assert.Contains(t, buf.String(), `"operation":"close workbook"`)
	SafeClose(nil, logger, "noop")
}
