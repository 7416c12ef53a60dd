package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"testplatform/backend/internal/db"
	"testplatform/backend/internal/workspace/domain"
)

const workspaceColumns = "w.id, w.organization_id, w.name, w.description, w.create_time, w.update_time"

type PostgresRepository struct {
	db db.DBTX
}

// NewPostgresRepository returns a workspace repository that uses the given db or tx for persistence.
func NewPostgresRepository(conn db.DBTX) *PostgresRepository {
	return &PostgresRepository{db: conn}
}

// GetByID returns the workspace for id, or nil if not found.
// It returns an error only for database failures, not for missing rows.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*domain.Workspace, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+workspaceColumns+" FROM workspaces w WHERE w.id = $1", id)
	w, err := scanWorkspace(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return w, nil
}

// Count returns the number of workspaces matching c.
func (r *PostgresRepository) Count(ctx context.Context, c Criteria) (int64, error) {
	where, args := c.where()
	var n int64
	if err := r.db.QueryRowContext(ctx, "SELECT count(*) FROM workspaces w"+where, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// List returns the workspaces matching c in no particular order.
func (r *PostgresRepository) List(ctx context.Context, c Criteria) ([]*domain.Workspace, error) {
	where, args := c.where()
	rows, err := r.db.QueryContext(ctx, "SELECT "+workspaceColumns+" FROM workspaces w"+where, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*domain.Workspace
	for rows.Next() {
		w, err := scanWorkspace(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

// ListWithOrg returns the workspaces matching c joined with their organization's name.
func (r *PostgresRepository) ListWithOrg(ctx context.Context, c Criteria) ([]*domain.WorkspaceWithOrg, error) {
	where, args := c.where()
	query := "SELECT " + workspaceColumns + ", COALESCE(o.name, '') FROM workspaces w " +
		"LEFT JOIN organizations o ON o.id = w.organization_id" + where
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*domain.WorkspaceWithOrg
	for rows.Next() {
		var w domain.WorkspaceWithOrg
		if err := rows.Scan(&w.ID, &w.OrganizationID, &w.Name, &w.Description, &w.CreateTime, &w.UpdateTime, &w.OrganizationName); err != nil {
			return nil, err
		}
		out = append(out, &w)
	}
	return out, rows.Err()
}

// Create persists the workspace. Returns ErrDuplicateName when the (organization_id, name) index rejects it.
func (r *PostgresRepository) Create(ctx context.Context, w *domain.Workspace) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO workspaces (id, organization_id, name, description, create_time, update_time)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		w.ID, w.OrganizationID, w.Name, w.Description, w.CreateTime, w.UpdateTime)
	if db.IsUniqueViolation(err) {
		return ErrDuplicateName
	}
	return err
}

// UpdateSelective overwrites only the non-empty fields of w. Returns ErrDuplicateName on a rename collision
// and ErrNotFound when no row has w.ID.
func (r *PostgresRepository) UpdateSelective(ctx context.Context, w *domain.Workspace) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE workspaces SET
		   organization_id = COALESCE(NULLIF($2, ''), organization_id),
		   name            = COALESCE(NULLIF($3, ''), name),
		   description     = COALESCE(NULLIF($4, ''), description),
		   create_time     = COALESCE(NULLIF($5::bigint, 0), create_time),
		   update_time     = COALESCE(NULLIF($6::bigint, 0), update_time)
		 WHERE id = $1`,
		w.ID, w.OrganizationID, w.Name, w.Description, w.CreateTime, w.UpdateTime)
	if db.IsUniqueViolation(err) {
		return ErrDuplicateName
	}
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the workspace with id. Deleting a missing row is not an error.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM workspaces WHERE id = $1", id)
	return err
}

// where renders c as a WHERE clause over alias w with positional arguments.
func (c Criteria) where() (string, []any) {
	var conds []string
	var args []any
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if len(c.IDs) > 0 {
		add("w.id = ANY($%d)", c.IDs)
	}
	if len(c.OrganizationIDs) > 0 {
		add("w.organization_id = ANY($%d)", c.OrganizationIDs)
	}
	if c.Name != "" {
		add("w.name = $%d", c.Name)
	}
	if c.NameLike != "" {
		add("w.name LIKE $%d", c.NameLike)
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

type scanner interface {
	Scan(dest ...any) error
}

func scanWorkspace(s scanner) (*domain.Workspace, error) {
	var w domain.Workspace
	if err := s.Scan(&w.ID, &w.OrganizationID, &w.Name, &w.Description, &w.CreateTime, &w.UpdateTime); err != nil {
		return nil, err
	}
	return &w, nil
}
