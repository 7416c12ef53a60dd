package repository

import (
	"context"
	"database/sql"
	"errors"

	"testplatform/backend/internal/db"
	"testplatform/backend/internal/user/domain"
)

type PostgresRepository struct {
	db db.DBTX
}

// NewPostgresRepository returns a user repository that uses the given db or tx for persistence.
func NewPostgresRepository(conn db.DBTX) *PostgresRepository {
	return &PostgresRepository{db: conn}
}

// GetByID returns the user for id, or nil if not found.
// It returns an error only for database failures, not for missing rows.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	var u domain.User
	var status string
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, email, phone, status, language, last_workspace_id, last_organization_id, create_time, update_time
		 FROM users WHERE id = $1`, id).
		Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &status, &u.Language, &u.LastWorkspaceID, &u.LastOrganizationID, &u.CreateTime, &u.UpdateTime)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	u.Status = domain.UserStatus(status)
	return &u, nil
}

// Create persists the user. The user must have ID set; it is not assigned by this method.
func (r *PostgresRepository) Create(ctx context.Context, u *domain.User) error {
	if err := u.Validate(); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, name, email, phone, status, language, last_workspace_id, last_organization_id, create_time, update_time)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		u.ID, u.Name, u.Email, u.Phone, string(u.Status), u.Language, u.LastWorkspaceID, u.LastOrganizationID, u.CreateTime, u.UpdateTime)
	return err
}

// UpdateSelective copies the non-empty profile fields of u onto the stored user.
func (r *PostgresRepository) UpdateSelective(ctx context.Context, u *domain.User) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET
		   name                 = COALESCE(NULLIF($2, ''), name),
		   email                = COALESCE(NULLIF($3, ''), email),
		   phone                = COALESCE(NULLIF($4, ''), phone),
		   status               = COALESCE(NULLIF($5, ''), status),
		   language             = COALESCE(NULLIF($6, ''), language),
		   last_workspace_id    = COALESCE(NULLIF($7, ''), last_workspace_id),
		   last_organization_id = COALESCE(NULLIF($8, ''), last_organization_id),
		   update_time          = COALESCE(NULLIF($9::bigint, 0), update_time)
		 WHERE id = $1`,
		u.ID, u.Name, u.Email, u.Phone, string(u.Status), u.Language, u.LastWorkspaceID, u.LastOrganizationID, u.UpdateTime)
	return err
}
