package logging

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"go.opentelemetry.io/otel/trace"
)

func TestNewConsole_WritesKeyValues(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewConsole(LevelInfo, &buf).With("run_id", "abc")

	logger.Debug("hidden")
	logger.Warn("range failed", "window", "2025-01-01..2025-06-30", "error", errors.New("boom"))

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug line must be filtered at info level: %q", out)
	}
	for _, want := range []string{"range failed", `"window": "2025-01-01..2025-06-30"`, `"error": "boom"`, `"run_id": "abc"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in %q", want, out)
		}
	}
}

func TestLogContext_AddsTraceFields(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewConsole(LevelDebug, &buf)

	traceID, _ := trace.TraceIDFromHex("0102030405060708090a0b0c0d0e0f10")
	spanID, _ := trace.SpanIDFromHex("0102030405060708")
	ctx := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	}))

	logger.InfoContext(ctx, "traced")
	if !strings.Contains(buf.String(), "0102030405060708090a0b0c0d0e0f10") {
		t.Fatalf("expected trace id in %q", buf.String())
	}
}

func TestZapFields_OddArgs(t *testing.T) {
	t.Parallel()

	fields := zapFields([]any{"a", 1, 2, "b"})
	if len(fields) != 2 || fields[0].Key != "a" || fields[1].Key != "arg" {
		t.Fatalf("unexpected fields: %+v", fields)
	}
}
