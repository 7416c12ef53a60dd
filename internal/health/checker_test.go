package health

import (
	"context"
	"errors"
	"testing"
	"time"

	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

type mockPinger struct{ err error }

func (m *mockPinger) PingContext(context.Context) error { return m.err }

type mockCache struct{ err error }

func (m *mockCache) Ping(context.Context) error { return m.err }

type mockPolicy struct{ err error }

func (m *mockPolicy) HealthCheck(context.Context) error { return m.err }

const serviceName = "testplatform.workspace.v1.WorkspaceService"

func TestChecker_Update(t *testing.T) {
	down := errors.New("connection refused")
	testCases := []struct {
		name    string
		checker *Checker
		want    healthpb.HealthCheckResponse_ServingStatus
	}{
		{"no dependencies", &Checker{}, healthpb.HealthCheckResponse_SERVING},
		{"all healthy", &Checker{DB: &mockPinger{}, Cache: &mockCache{}, Policy: &mockPolicy{}}, healthpb.HealthCheckResponse_SERVING},
		{"database down", &Checker{DB: &mockPinger{err: down}, Cache: &mockCache{}}, healthpb.HealthCheckResponse_NOT_SERVING},
		{"cache down", &Checker{DB: &mockPinger{}, Cache: &mockCache{err: down}}, healthpb.HealthCheckResponse_NOT_SERVING},
		{"policy broken", &Checker{Policy: &mockPolicy{err: down}}, healthpb.HealthCheckResponse_NOT_SERVING},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			srv := health.NewServer()
			tc.checker.Services = []string{serviceName}
			if got := tc.checker.Update(context.Background(), srv); got != tc.want {
				t.Errorf("Update = %v, want %v", got, tc.want)
			}
			for _, name := range []string{"", serviceName} {
				resp, err := srv.Check(context.Background(), &healthpb.HealthCheckRequest{Service: name})
				if err != nil {
					t.Fatalf("Check(%q): %v", name, err)
				}
				if resp.Status != tc.want {
					t.Errorf("Check(%q) = %v, want %v", name, resp.Status, tc.want)
				}
			}
		})
	}
}

func TestChecker_CheckNamesFailingDependency(t *testing.T) {
	c := &Checker{DB: &mockPinger{}, Cache: &mockCache{err: errors.New("timeout")}}
	err := c.Check(context.Background())
	if err == nil {
		t.Fatal("Check should fail when the cache is down")
	}
	if got, want := err.Error(), "role cache: timeout"; got != want {
		t.Errorf("error = %q, want %q", got, want)
	}
}

func TestChecker_RunStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	srv := health.NewServer()
	done := make(chan struct{})
	go func() {
		(&Checker{}).Run(ctx, srv, time.Hour)
		close(done)
	}()
	cancel()
	<-done
	resp, err := srv.Check(context.Background(), &healthpb.HealthCheckRequest{})
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if resp.Status != healthpb.HealthCheckResponse_SERVING {
		t.Errorf("status = %v, want SERVING", resp.Status)
	}
}
