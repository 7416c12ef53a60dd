package repository

import (
	"context"
	"database/sql"
	"errors"

	"testplatform/backend/internal/db"
	"testplatform/backend/internal/organization/domain"
)

type PostgresRepository struct {
	db db.DBTX
}

// NewPostgresRepository returns an organization repository that uses the given db or tx for persistence.
func NewPostgresRepository(conn db.DBTX) *PostgresRepository {
	return &PostgresRepository{db: conn}
}

// GetOrganizationByID returns the organization for id, or nil if not found.
// It returns an error only for database failures, not for missing rows.
func (r *PostgresRepository) GetOrganizationByID(ctx context.Context, id string) (*domain.Org, error) {
	var o domain.Org
	err := r.db.QueryRowContext(ctx,
		"SELECT id, name, description, create_time, update_time FROM organizations WHERE id = $1", id).
		Scan(&o.ID, &o.Name, &o.Description, &o.CreateTime, &o.UpdateTime)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &o, nil
}

// CreateOrganization persists the organization. The organization must have ID set.
func (r *PostgresRepository) CreateOrganization(ctx context.Context, o *domain.Org) error {
	if err := o.Validate(); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO organizations (id, name, description, create_time, update_time)
		 VALUES ($1, $2, $3, $4, $5)`,
		o.ID, o.Name, o.Description, o.CreateTime, o.UpdateTime)
	return err
}
