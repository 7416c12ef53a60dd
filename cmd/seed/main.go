// seed inserts development sample data and prints an access token for the dev org admin.
// Idempotent: skips inserts if the dev organization already exists.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"testplatform/backend/internal/config"
	"testplatform/backend/internal/db"
	orgdomain "testplatform/backend/internal/organization/domain"
	orgrepo "testplatform/backend/internal/organization/repository"
	"testplatform/backend/internal/security"
	userdomain "testplatform/backend/internal/user/domain"
	userrepo "testplatform/backend/internal/user/repository"
	userroledomain "testplatform/backend/internal/userrole/domain"
	userrolerepo "testplatform/backend/internal/userrole/repository"
	workspacedomain "testplatform/backend/internal/workspace/domain"
	workspacerepo "testplatform/backend/internal/workspace/repository"
)

const (
	devOrgID       = "dev-org-001"
	devAdminID     = "dev-user-001"
	devManagerID   = "dev-user-002"
	devTesterID    = "dev-user-003"
	devWorkspaceID = "dev-workspace-001"
	devSessionID   = "dev-session-001"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is not set; create a .env or set DATABASE_URL")
	}

	ctx := context.Background()
	conn, err := db.Open(ctx, cfg.DatabaseURL, db.PoolOptions{})
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer conn.Close()

	existing, err := orgrepo.NewPostgresRepository(conn).GetOrganizationByID(ctx, devOrgID)
	if err != nil {
		log.Fatalf("seed check: %v", err)
	}
	if existing != nil {
		log.Printf("Seed already applied (%s exists). Skipping inserts.", devOrgID)
	} else if err := db.WithTx(ctx, conn, func(tx *sql.Tx) error { return seed(ctx, tx) }); err != nil {
		log.Fatalf("seed: %v", err)
	}

	if cfg.JWTPrivateKey == "" || cfg.JWTPublicKey == "" {
		log.Println("JWT_PRIVATE_KEY/JWT_PUBLIC_KEY not set; no dev token issued.")
		return
	}
	priv, pub, err := security.LoadKeyPair(cfg.JWTPrivateKey, cfg.JWTPublicKey)
	if err != nil {
		log.Fatalf("jwt keys: %v", err)
	}
	tokens := security.NewTokenProvider(priv, pub, cfg.JWTIssuer, cfg.JWTAudience, cfg.AccessTTL())
	token, expiresAt, err := tokens.IssueAccess(devSessionID, devAdminID, devOrgID)
	if err != nil {
		log.Fatalf("issue token: %v", err)
	}
	fmt.Printf("Dev admin token, system and org admin (expires %s):\n%s\n", expiresAt.Format(time.RFC3339), token)
}

func seed(ctx context.Context, tx *sql.Tx) error {
	now := time.Now().UnixMilli()

	if err := orgrepo.NewPostgresRepository(tx).CreateOrganization(ctx, &orgdomain.Org{
		ID: devOrgID, Name: "Acme Dev", CreateTime: now, UpdateTime: now,
	}); err != nil {
		return fmt.Errorf("create org: %w", err)
	}

	users := userrepo.NewPostgresRepository(tx)
	for _, u := range []userdomain.User{
		{ID: devAdminID, Name: "Dev Admin", Email: "admin@example.com"},
		{ID: devManagerID, Name: "Dev Manager", Email: "manager@example.com"},
		{ID: devTesterID, Name: "Dev Tester", Email: "tester@example.com"},
	} {
		u.LastOrganizationID = devOrgID
		u.CreateTime, u.UpdateTime = now, now
		if err := users.Create(ctx, &u); err != nil {
			return fmt.Errorf("create user %s: %w", u.ID, err)
		}
	}

	if err := workspacerepo.NewPostgresRepository(tx).Create(ctx, &workspacedomain.Workspace{
		ID: devWorkspaceID, OrganizationID: devOrgID, Name: "Regression", Description: "Nightly regression suite",
		CreateTime: now, UpdateTime: now,
	}); err != nil {
		return fmt.Errorf("create workspace: %w", err)
	}

	roles := userrolerepo.NewPostgresRepository(tx)
	for _, b := range devBindings(now) {
		if _, err := roles.Create(ctx, b); err != nil {
			return fmt.Errorf("create binding %s: %w", b.ID, err)
		}
	}
	return nil
}

// devBindings grants the dev admin system and org admin, and gives the other users one workspace role each.
func devBindings(now int64) []*userroledomain.UserRole {
	out := []*userroledomain.UserRole{
		{UserID: devAdminID, RoleID: userroledomain.RoleAdmin, SourceID: userroledomain.SystemSourceID},
		{UserID: devAdminID, RoleID: userroledomain.RoleOrgAdmin, SourceID: devOrgID},
		{UserID: devManagerID, RoleID: userroledomain.RoleOrgMember, SourceID: devOrgID},
		{UserID: devManagerID, RoleID: userroledomain.RoleTestManager, SourceID: devWorkspaceID},
		{UserID: devTesterID, RoleID: userroledomain.RoleOrgMember, SourceID: devOrgID},
		{UserID: devTesterID, RoleID: userroledomain.RoleTestUser, SourceID: devWorkspaceID},
	}
	for i, b := range out {
		b.ID = fmt.Sprintf("dev-binding-%03d", i+1)
		b.CreateTime, b.UpdateTime = now, now
	}
	return out
}
