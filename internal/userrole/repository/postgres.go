package repository

import (
	"context"

	"testplatform/backend/internal/db"
	"testplatform/backend/internal/userrole/domain"
)

const userRoleColumns = "id, user_id, role_id, source_id, create_time, update_time"

type PostgresRepository struct {
	db db.DBTX
}

// NewPostgresRepository returns a user-role repository that uses the given db or tx for persistence.
func NewPostgresRepository(conn db.DBTX) *PostgresRepository {
	return &PostgresRepository{db: conn}
}

// ListBySourceAndUser returns the user's bindings within sourceID. Returns (nil, error) only on database errors.
func (r *PostgresRepository) ListBySourceAndUser(ctx context.Context, sourceID, userID string) ([]*domain.UserRole, error) {
	return r.list(ctx, "SELECT "+userRoleColumns+" FROM user_roles WHERE source_id = $1 AND user_id = $2", sourceID, userID)
}

// ListByUser returns all of the user's bindings. Returns (nil, error) only on database errors.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*domain.UserRole, error) {
	return r.list(ctx, "SELECT "+userRoleColumns+" FROM user_roles WHERE user_id = $1", userID)
}

// CountBySourceUserRole counts bindings for (sourceID, userID, roleID).
func (r *PostgresRepository) CountBySourceUserRole(ctx context.Context, sourceID, userID, roleID string) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx,
		"SELECT count(*) FROM user_roles WHERE source_id = $1 AND user_id = $2 AND role_id = $3",
		sourceID, userID, roleID).Scan(&n)
	return n, err
}

// Create inserts the binding, skipping it when the (user_id, role_id, source_id) triple already exists.
func (r *PostgresRepository) Create(ctx context.Context, ur *domain.UserRole) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO user_roles (id, user_id, role_id, source_id, create_time, update_time)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (user_id, role_id, source_id) DO NOTHING`,
		ur.ID, ur.UserID, ur.RoleID, ur.SourceID, ur.CreateTime, ur.UpdateTime)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// DeleteByUserSourceRoles deletes the user's bindings in sourceID for the given roles in one statement.
func (r *PostgresRepository) DeleteByUserSourceRoles(ctx context.Context, userID, sourceID string, roleIDs []string) (int64, error) {
	if len(roleIDs) == 0 {
		return 0, nil
	}
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM user_roles WHERE user_id = $1 AND source_id = $2 AND role_id = ANY($3)",
		userID, sourceID, roleIDs)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// RoleTypes reads the type of each requested role from the roles catalog.
func (r *PostgresRepository) RoleTypes(ctx context.Context, roleIDs []string) (map[string]string, error) {
	out := make(map[string]string, len(roleIDs))
	if len(roleIDs) == 0 {
		return out, nil
	}
	rows, err := r.db.QueryContext(ctx, "SELECT id, type FROM roles WHERE id = ANY($1)", roleIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var id, typ string
		if err := rows.Scan(&id, &typ); err != nil {
			return nil, err
		}
		out[id] = typ
	}
	return out, rows.Err()
}

// ListWorkspaceIDsByUser returns the distinct workspace IDs the user holds a binding in.
func (r *PostgresRepository) ListWorkspaceIDsByUser(ctx context.Context, userID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT DISTINCT ur.source_id FROM user_roles ur
		 JOIN workspaces w ON w.id = ur.source_id
		 WHERE ur.user_id = $1`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *PostgresRepository) list(ctx context.Context, query string, args ...any) ([]*domain.UserRole, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*domain.UserRole
	for rows.Next() {
		var ur domain.UserRole
		if err := rows.Scan(&ur.ID, &ur.UserID, &ur.RoleID, &ur.SourceID, &ur.CreateTime, &ur.UpdateTime); err != nil {
			return nil, err
		}
		out = append(out, &ur)
	}
	return out, rows.Err()
}
