package interceptors

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// TelemetryUnary returns a unary server interceptor that writes one access log line per RPC and records
// the RPC duration in the workspace.rpc.duration histogram (milliseconds). Methods in skipMethods
// (health checks) are neither logged nor measured. A nil logger uses slog.Default.
func TelemetryUnary(logger *slog.Logger, meter metric.Meter, skipMethods map[string]bool) (grpc.UnaryServerInterceptor, error) {
	if logger == nil {
		logger = slog.Default()
	}
	var duration metric.Float64Histogram
	if meter != nil {
		h, err := meter.Float64Histogram(
			"workspace.rpc.duration",
			metric.WithUnit("ms"),
			metric.WithDescription("Duration of workspace RPCs"),
		)
		if err != nil {
			return nil, err
		}
		duration = h
	}
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		if skipMethods[info.FullMethod] {
			return resp, err
		}
		elapsed := time.Since(start)
		code := status.Code(err)
		if duration != nil {
			duration.Record(ctx, float64(elapsed.Microseconds())/1000, metric.WithAttributes(
				attribute.String("rpc.method", info.FullMethod),
				attribute.String("rpc.grpc.status_code", code.String()),
			))
		}
		userID, _ := GetUserID(ctx)
		orgID, _ := GetOrgID(ctx)
		logger.Log(ctx, levelFor(code), "rpc",
			"method", info.FullMethod,
			"code", code.String(),
			"duration_ms", elapsed.Milliseconds(),
			"user_id", userID,
			"org_id", orgID,
			"client_ip", ClientIP(ctx),
		)
		return resp, err
	}, nil
}

func levelFor(code codes.Code) slog.Level {
	switch code {
	case codes.OK:
		return slog.LevelInfo
	case codes.Internal, codes.Unknown, codes.DataLoss, codes.Unavailable:
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
