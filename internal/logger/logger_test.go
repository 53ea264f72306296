package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newConsole(buf *bytes.Buffer, level slog.Level) *slog.Logger {
	return slog.New(NewConsoleHandler(buf, &slog.HandlerOptions{Level: level}, false))
}

func TestNew_FormatFromEnvironment(t *testing.T) {
	tests := []struct {
		environment string
		wantJSON    bool
	}{
		{"production", true},
		{"staging", false},
		{"development", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.environment, func(t *testing.T) {
			var buf bytes.Buffer
			l := New(Config{Writer: &buf, Environment: tt.environment, NoColor: true})

			l.Info("hello", "k", "v")

			var decoded map[string]any
			isJSON := json.Unmarshal(buf.Bytes(), &decoded) == nil
			assert.Equal(t, tt.wantJSON, isJSON, buf.String())
		})
	}
}

func TestNew_ExplicitFormatWins(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Writer: &buf, Environment: "production", Format: "console", NoColor: true})

	l.Info("hello")

	assert.Contains(t, buf.String(), "INF hello")
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"DEBUG":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"bogus":   slog.LevelInfo,
		"":        slog.LevelInfo,
	}

	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), "ParseLevel(%q)", in)
	}
}

func TestConsoleHandler_Line(t *testing.T) {
	var buf bytes.Buffer
	l := newConsole(&buf, slog.LevelDebug)

	l.Info("user created", "user_id", 1, "name", "John Doe", "empty", "")

	line := buf.String()
	assert.True(t, strings.HasSuffix(line, "\n"))
	assert.Contains(t, line, "INF user created")
	assert.Contains(t, line, "user_id=1")
	assert.Contains(t, line, `name="John Doe"`)
	assert.Contains(t, line, `empty=""`)
	assert.NotContains(t, line, "\033[")
}

func TestConsoleHandler_Color(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(NewConsoleHandler(&buf, nil, true))

	l.Warn("careful")

	assert.Contains(t, buf.String(), colorYellow+"WRN"+colorReset)
}

func TestConsoleHandler_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := newConsole(&buf, slog.LevelWarn)

	l.Debug("d")
	l.Info("i")
	l.Warn("w")
	l.Error("e")

	out := buf.String()
	assert.NotContains(t, out, "DBG")
	assert.NotContains(t, out, "INF")
	assert.Contains(t, out, "WRN w")
	assert.Contains(t, out, "ERR e")
}

func TestConsoleHandler_NilOptionsDefaultToInfo(t *testing.T) {
	h := NewConsoleHandler(&bytes.Buffer{}, nil, false)

	assert.False(t, h.Enabled(context.Background(), slog.LevelDebug))
	assert.True(t, h.Enabled(context.Background(), slog.LevelInfo))
}

func TestConsoleHandler_Groups(t *testing.T) {
	var buf bytes.Buffer
	l := newConsole(&buf, slog.LevelInfo).
		With("component", "store").
		WithGroup("db").
		With("driver", "sqlite")

	l.Info("opened", "path", "/tmp/x.db", slog.Group("pool", "max_open", 4))

	line := buf.String()
	assert.Contains(t, line, "component=store")
	assert.Contains(t, line, "db.driver=sqlite")
	assert.Contains(t, line, "db.path=/tmp/x.db")
	assert.Contains(t, line, "db.pool.max_open=4")
}

func TestConsoleHandler_WithAttrsDoesNotLeak(t *testing.T) {
	var buf bytes.Buffer
	base := newConsole(&buf, slog.LevelInfo)

	base.With("request_id", "abc").Info("first")
	base.Info("second")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "request_id=abc")
	assert.NotContains(t, lines[1], "request_id")
}

func TestConsoleHandler_ConcurrentWrites(t *testing.T) {
	var buf bytes.Buffer
	l := newConsole(&buf, slog.LevelInfo)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.With("n", i).Info("tick")
		}()
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 20)
	for _, line := range lines {
		assert.Contains(t, line, "INF tick")
	}
}

func TestFormatValue(t *testing.T) {
	ts := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)

	assert.Equal(t, "2026-03-04T05:06:07Z", formatValue(slog.TimeValue(ts)))
	assert.Equal(t, "1.5s", formatValue(slog.DurationValue(1500*time.Millisecond)))
	assert.Equal(t, "plain", formatValue(slog.StringValue("plain")))
	assert.Equal(t, `"a=b"`, formatValue(slog.StringValue("a=b")))
	assert.Equal(t, "true", formatValue(slog.BoolValue(true)))
}

func TestLogger_WithError(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Writer: &buf, Format: "json"})

	l.WithError(errors.New("boom")).Error("failed")

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "boom", decoded["error"])
	assert.Equal(t, "failed", decoded["msg"])
}

func TestLogger_WithFields(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Writer: &buf, Format: "json"})

	l.WithField("component", "seed").WithFields(map[string]any{"user_id": 7}).Info("seeded")

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "seed", decoded["component"])
	assert.InDelta(t, 7, decoded["user_id"], 0)
}

func TestContext(t *testing.T) {
	var buf bytes.Buffer
	l := newConsole(&buf, slog.LevelInfo)

	assert.Same(t, slog.Default(), FromContext(context.Background(), nil))

	base := slog.New(slog.NewTextHandler(io.Discard, nil))
	assert.Same(t, base, FromContext(context.Background(), base))

	ctx := NewContext(context.Background(), l)
	assert.Same(t, l, FromContext(ctx, base))
}
