package repository

import (
	"context"

	"testplatform/backend/internal/userrole/domain"
)

// Repository defines persistence for user-role bindings and reads the role catalog.
type Repository interface {
	// ListBySourceAndUser returns the bindings the user holds within sourceID.
	ListBySourceAndUser(ctx context.Context, sourceID, userID string) ([]*domain.UserRole, error)
	// ListByUser returns every binding the user holds, across all sources.
	ListByUser(ctx context.Context, userID string) ([]*domain.UserRole, error)
	// CountBySourceUserRole counts bindings for the exact (source, user, role) triple.
	CountBySourceUserRole(ctx context.Context, sourceID, userID, roleID string) (int64, error)
	// Create inserts the binding. Inserting an existing (user, role, source) triple is a no-op
	// and reports created == false.
	Create(ctx context.Context, ur *domain.UserRole) (created bool, err error)
	// DeleteByUserSourceRoles deletes the user's bindings in sourceID whose role is in roleIDs.
	DeleteByUserSourceRoles(ctx context.Context, userID, sourceID string, roleIDs []string) (int64, error)
	// RoleTypes returns the catalog type of each role in roleIDs. Unknown ids are absent from the map.
	RoleTypes(ctx context.Context, roleIDs []string) (map[string]string, error)
	// ListWorkspaceIDsByUser returns the IDs of workspaces in which the user holds any binding.
	ListWorkspaceIDsByUser(ctx context.Context, userID string) ([]string, error)
}
