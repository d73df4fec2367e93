package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func newTestLogger(t *testing.T) (*SlogLogger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	h := slog.NewTextHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})
	return NewSlogLogger(slog.New(h)), &buf
}

func TestSlogLogger_Levels_WriteExpectedOutput(t *testing.T) {
	log, buf := newTestLogger(t)
	ctx := context.Background()

	log.Debug(ctx, "dbg", "a", 1)
	log.Info(ctx, "inf", "b", 2)
	log.Warn(ctx, "wrn", "c", 3)
	log.Error(ctx, "err", "d", 4)

	out := buf.String()

	tests := []struct {
		level string
		msg   string
		key   string
		val   string
	}{
		{"DEBUG", "dbg", "a", "1"},
		{"INFO", "inf", "b", "2"},
		{"WARN", "wrn", "c", "3"},
		{"ERROR", "err", "d", "4"},
	}

	for _, tc := range tests {
		if !strings.Contains(out, "level="+tc.level) {
			t.Fatalf("expected line with level=%s in output:\n%s", tc.level, out)
		}
		if !strings.Contains(out, "msg="+tc.msg) {
			t.Fatalf("expected line with msg=%s in output:\n%s", tc.msg, out)
		}
		if !strings.Contains(out, tc.key+"="+tc.val) {
			t.Fatalf("expected attribute %s=%s in output:\n%s", tc.key, tc.val, out)
		}
	}
}

func TestNewJSON_EmitsJSONLines(t *testing.T) {
	var buf bytes.Buffer
	log := NewJSON(&buf)

	log.Info(context.Background(), "boot", "addr", ":8080")

	out := buf.String()
	if !strings.Contains(out, `"msg":"boot"`) || !strings.Contains(out, `"addr":":8080"`) {
		t.Fatalf("expected JSON line in output:\n%s", out)
	}
}

func TestNewText_EmitsKeyValueLines(t *testing.T) {
	var buf bytes.Buffer
	log := NewText(&buf)

	log.Info(context.Background(), "boot", "addr", ":8080")

	if !strings.Contains(buf.String(), "msg=boot") {
		t.Fatalf("expected text line in output:\n%s", buf.String())
	}
}

func TestSlogLogger_With_AddsPersistentAttrs(t *testing.T) {
	log, buf := newTestLogger(t)
	child := log.With("component", "store")

	child.Info(context.Background(), "hello")

	if !strings.Contains(buf.String(), "component=store") {
		t.Fatalf("expected persistent attribute in output:\n%s", buf.String())
	}
}
