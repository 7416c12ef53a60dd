package otel

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"go.opentelemetry.io/contrib/bridges/otelslog"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	"go.opentelemetry.io/otel/trace"
)

// LoggerOptions selects the slog handler built by NewLogger.
type LoggerOptions struct {
	Environment string // "production" selects JSON output
	Level       string // debug, info, warn, error
	ServiceName string
	// Provider, when non-nil, routes records to OpenTelemetry logs instead of Output.
	Provider *sdklog.LoggerProvider
	Output   io.Writer
}

// NewLogger builds the process logger.
func NewLogger(opts LoggerOptions) *slog.Logger {
	if opts.Provider != nil {
		return slog.New(otelslog.NewHandler(opts.ServiceName, otelslog.WithLoggerProvider(opts.Provider)))
	}
	hopts := &slog.HandlerOptions{Level: ParseLevel(opts.Level)}
	if opts.Environment == "production" {
		return slog.New(NewTraceHandler(slog.NewJSONHandler(opts.Output, hopts)))
	}
	return slog.New(NewTraceHandler(slog.NewTextHandler(opts.Output, hopts)))
}

// SetupLogger builds the logger and installs it as the slog default.
func SetupLogger(opts LoggerOptions) *slog.Logger {
	l := NewLogger(opts)
	slog.SetDefault(l)
	return l
}

// ParseLevel maps a level name to a slog level; unknown names mean info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
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

// TraceHandler adds trace_id and span_id from the active span.
type TraceHandler struct {
	slog.Handler
}

func NewTraceHandler(h slog.Handler) *TraceHandler {
	return &TraceHandler{Handler: h}
}

func (h *TraceHandler) Handle(ctx context.Context, r slog.Record) error {
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		r.AddAttrs(
			slog.String("trace_id", sc.TraceID().String()),
			slog.String("span_id", sc.SpanID().String()),
		)
	}
	return h.Handler.Handle(ctx, r)
}

func (h *TraceHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &TraceHandler{Handler: h.Handler.WithAttrs(attrs)}
}

func (h *TraceHandler) WithGroup(name string) slog.Handler {
	return &TraceHandler{Handler: h.Handler.WithGroup(name)}
}
