// Package health reports readiness through the standard grpc.health.v1 service. The server is SERVING
// only while the database, the role cache and the ownership policy all respond.
package health

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

const checkTimeout = 2 * time.Second

// Pinger checks database connectivity (e.g. *sql.DB).
type Pinger interface {
	PingContext(ctx context.Context) error
}

// CachePinger checks the role cache (e.g. *session.RedisCache).
type CachePinger interface {
	Ping(ctx context.Context) error
}

// PolicyChecker checks that the ownership policy evaluates (e.g. *rbac.OPAEvaluator).
type PolicyChecker interface {
	HealthCheck(ctx context.Context) error
}

// Checker probes dependencies and publishes the result to a grpc health server. Nil dependencies are skipped.
type Checker struct {
	DB       Pinger
	Cache    CachePinger
	Policy   PolicyChecker
	Services []string
}

// Check runs every probe and returns the first failure.
func (c *Checker) Check(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()
	if c.DB != nil {
		if err := c.DB.PingContext(ctx); err != nil {
			return fmt.Errorf("database: %w", err)
		}
	}
	if c.Cache != nil {
		if err := c.Cache.Ping(ctx); err != nil {
			return fmt.Errorf("role cache: %w", err)
		}
	}
	if c.Policy != nil {
		if err := c.Policy.HealthCheck(ctx); err != nil {
			return fmt.Errorf("policy: %w", err)
		}
	}
	return nil
}

// Update runs Check once and sets the serving status of the overall server ("") and of every name in Services.
func (c *Checker) Update(ctx context.Context, srv *health.Server) healthpb.HealthCheckResponse_ServingStatus {
	st := healthpb.HealthCheckResponse_SERVING
	if err := c.Check(ctx); err != nil {
		slog.WarnContext(ctx, "health check failed", "error", err)
		st = healthpb.HealthCheckResponse_NOT_SERVING
	}
	srv.SetServingStatus("", st)
	for _, name := range c.Services {
		srv.SetServingStatus(name, st)
	}
	return st
}

// Run calls Update immediately and then every interval until ctx is done.
func (c *Checker) Run(ctx context.Context, srv *health.Server, interval time.Duration) {
	c.Update(ctx, srv)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.Update(ctx, srv)
		}
	}
}
