package main

import (
	"context"
	"log"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"google.golang.org/grpc/health"

	workspacev1 "testplatform/backend/api/workspace/v1"
	"testplatform/backend/internal/audit"
	auditrepo "testplatform/backend/internal/audit/repository"
	"testplatform/backend/internal/config"
	"testplatform/backend/internal/db"
	healthcheck "testplatform/backend/internal/health"
	"testplatform/backend/internal/i18n"
	"testplatform/backend/internal/platform/rbac"
	"testplatform/backend/internal/security"
	"testplatform/backend/internal/server"
	"testplatform/backend/internal/server/interceptors"
	"testplatform/backend/internal/session"
	telemetryotel "testplatform/backend/internal/telemetry/otel"
	userrolerepo "testplatform/backend/internal/userrole/repository"
	workspacehandler "testplatform/backend/internal/workspace/handler"
	workspaceservice "testplatform/backend/internal/workspace/service"
)

const healthInterval = 15 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	providers, err := telemetryotel.NewProviders(ctx, cfg.OTLPEndpoint, cfg.ServiceName, cfg.Env, cfg.OTLPInsecure)
	if err != nil {
		log.Fatalf("telemetry: %v", err)
	}
	providers.SetGlobal()
	logOpts := telemetryotel.LoggerOptions{Environment: cfg.Env, Level: cfg.LogLevel, ServiceName: cfg.ServiceName, Output: os.Stdout}
	if providers.Exporting {
		logOpts.Provider = providers.LoggerProvider
	}
	logger := telemetryotel.SetupLogger(logOpts)

	if !cfg.AuthEnabled() {
		fatal("JWT_PUBLIC_KEY is not set; the server cannot authenticate callers")
	}
	pub, err := security.ParsePublicKey(cfg.JWTPublicKey)
	if err != nil {
		fatal("jwt public key", "error", err)
	}
	tokens := security.NewTokenProvider(nil, pub, cfg.JWTIssuer, cfg.JWTAudience, cfg.AccessTTL())

	conn, err := db.Open(ctx, cfg.DatabaseURL, db.PoolOptions{
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: 30 * time.Minute,
	})
	if err != nil {
		fatal("db", "error", err)
	}
	defer conn.Close()

	checker := &healthcheck.Checker{DB: conn, Services: []string{workspacev1.ServiceName}}

	var roleCache session.RoleCache
	if cfg.RedisURL != "" {
		client, err := session.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			fatal("redis", "error", err)
		}
		defer client.Close()
		cache := session.NewRedisCache(client, cfg.RoleCacheTTL())
		roleCache = cache
		checker.Cache = cache
	} else {
		slog.Warn("REDIS_URL is not set; role bindings are read from Postgres on every request")
	}

	evaluator, err := rbac.NewOPAEvaluator(ctx)
	if err != nil {
		fatal("ownership policy", "error", err)
	}
	checker.Policy = evaluator

	catalog, err := i18n.Load(cfg.DefaultLocale)
	if err != nil {
		fatal("i18n", "error", err)
	}

	auditLogger := audit.NewLogger(auditrepo.NewPostgresRepository(conn), interceptors.ClientIP)
	resolver := session.NewResolver(userrolerepo.NewPostgresRepository(conn), roleCache)
	tx := workspaceservice.NewTxRunner(conn)
	registry := workspaceservice.NewRegistry(tx, workspaceservice.WithAuditLogger(auditLogger))
	reconciler := workspaceservice.NewReconciler(tx, evaluator, resolver, workspaceservice.WithAuditLogger(auditLogger))

	srv, err := server.NewGRPCServer(server.Options{
		Tokens: tokens,
		Audit:  auditLogger,
		Logger: logger,
		Meter:  providers.MeterProvider.Meter("testplatform/workspace"),
	})
	if err != nil {
		fatal("grpc server", "error", err)
	}
	healthSrv := health.NewServer()
	server.RegisterServices(srv, server.Deps{
		Workspace: workspacehandler.NewServer(resolver, registry, reconciler, catalog),
		Health:    healthSrv,
	})
	go checker.Run(ctx, healthSrv, healthInterval)

	lis, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		fatal("listen", "error", err)
	}
	go func() {
		slog.Info("gRPC server listening", "addr", cfg.GRPCAddr)
		if err := srv.Serve(lis); err != nil {
			fatal("serve", "error", err)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down gRPC server")
	healthSrv.Shutdown()
	srv.GracefulStop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := providers.Shutdown(shutdownCtx); err != nil {
		slog.Warn("telemetry shutdown", "error", err)
	}
	slog.Info("gRPC server stopped")
}

func fatal(msg string, args ...any) {
	slog.Error(msg, args...)
	os.Exit(1)
}
