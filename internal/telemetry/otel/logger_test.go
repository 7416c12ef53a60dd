package otel

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func TestParseLevel(t *testing.T) {
	testCases := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{" warn ", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}
	for _, tc := range testCases {
		if got := ParseLevel(tc.in); got != tc.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestNewLogger_ProductionJSON(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(LoggerOptions{Environment: "production", Level: "info", Output: &buf})
	l.Info("workspace created", "workspace_id", "ws-1")

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}
	if rec["msg"] != "workspace created" || rec["workspace_id"] != "ws-1" {
		t.Errorf("record = %v", rec)
	}
}

func TestNewLogger_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(LoggerOptions{Environment: "development", Level: "warn", Output: &buf})
	l.Info("dropped")
	l.Warn("kept")
	if strings.Contains(buf.String(), "dropped") {
		t.Errorf("info record should be filtered: %q", buf.String())
	}
	if !strings.Contains(buf.String(), "kept") {
		t.Errorf("warn record missing: %q", buf.String())
	}
}

func TestTraceHandler_AddsSpanIDs(t *testing.T) {
	tp := sdktrace.NewTracerProvider()
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	ctx, span := tp.Tracer("test").Start(context.Background(), "op")
	defer span.End()

	var buf bytes.Buffer
	l := NewLogger(LoggerOptions{Environment: "development", Output: &buf})
	l.InfoContext(ctx, "traced")

	sc := span.SpanContext()
	if !strings.Contains(buf.String(), "trace_id="+sc.TraceID().String()) {
		t.Errorf("trace_id missing: %q", buf.String())
	}
	if !strings.Contains(buf.String(), "span_id="+sc.SpanID().String()) {
		t.Errorf("span_id missing: %q", buf.String())
	}

	buf.Reset()
	l.Info("untraced")
	if strings.Contains(buf.String(), "trace_id") {
		t.Errorf("trace_id should be absent without a span: %q", buf.String())
	}
}
