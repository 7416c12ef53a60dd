// Package server assembles the gRPC server: interceptor chain, OpenTelemetry stats handler and service
// registration.
package server

import (
	"log/slog"

	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"go.opentelemetry.io/otel/metric"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	workspacev1 "testplatform/backend/api/workspace/v1"
	"testplatform/backend/internal/audit"
	"testplatform/backend/internal/server/interceptors"
)

// PublicMethods run without an access token.
var PublicMethods = map[string]bool{
	"/grpc.health.v1.Health/Check": true,
	"/grpc.health.v1.Health/List":  true,
}

// Deps holds the service implementations to register.
type Deps struct {
	// Workspace serves WorkspaceService. If nil, the service is registered unimplemented.
	Workspace workspacev1.WorkspaceServiceServer
	// Health serves grpc.health.v1. If nil, the health service is not registered.
	Health *health.Server
}

// Options configures the interceptor chain built by NewGRPCServer.
type Options struct {
	// Tokens validates access tokens. If nil, no identity is set and every non-public RPC that needs one fails.
	Tokens interceptors.AccessValidator
	// Audit records mutating RPCs. If nil, nothing is audited.
	Audit audit.AuditLogger
	// Logger receives access logs; nil uses slog.Default.
	Logger *slog.Logger
	// Meter records RPC durations; nil disables the histogram.
	Meter metric.Meter
}

// NewGRPCServer returns a server whose unary chain runs locale, auth, access log/metrics and audit, in that order.
func NewGRPCServer(opts Options, extra ...grpc.ServerOption) (*grpc.Server, error) {
	telemetry, err := interceptors.TelemetryUnary(opts.Logger, opts.Meter, PublicMethods)
	if err != nil {
		return nil, err
	}
	chain := []grpc.UnaryServerInterceptor{interceptors.LocaleUnary()}
	if opts.Tokens != nil {
		chain = append(chain, interceptors.AuthUnary(opts.Tokens, PublicMethods))
	}
	chain = append(chain, telemetry, interceptors.AuditUnary(opts.Audit, PublicMethods))

	serverOpts := append([]grpc.ServerOption{
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.ChainUnaryInterceptor(chain...),
	}, extra...)
	return grpc.NewServer(serverOpts...), nil
}

// RegisterServices registers all gRPC services with the given server.
//
// Service → handler mapping:
//   - testplatform.workspace.v1.WorkspaceService → internal/workspace/handler
//   - grpc.health.v1.Health                      → google.golang.org/grpc/health, fed by internal/health
func RegisterServices(s grpc.ServiceRegistrar, deps Deps) {
	ws := deps.Workspace
	if ws == nil {
		ws = workspacev1.UnimplementedWorkspaceServiceServer{}
	}
	workspacev1.RegisterWorkspaceServiceServer(s, ws)
	if deps.Health != nil {
		healthpb.RegisterHealthServer(s, deps.Health)
	}
}
