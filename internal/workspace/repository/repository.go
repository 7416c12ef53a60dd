package repository

import (
	"context"
	"errors"

	"testplatform/backend/internal/workspace/domain"
)

// ErrDuplicateName is returned by Create when (organization_id, name) is already taken.
var ErrDuplicateName = errors.New("workspace name already exists in organization")

// ErrNotFound is returned by UpdateSelective when no row has the workspace's id.
var ErrNotFound = errors.New("workspace not found")

// Criteria narrows a workspace query. Empty fields are not applied; an empty criteria matches all rows.
type Criteria struct {
	IDs             []string
	OrganizationIDs []string
	// Name is an exact match.
	Name string
	// NameLike is a LIKE pattern; callers supply the wildcards.
	NameLike string
}

// Repository defines persistence for workspaces.
type Repository interface {
	// GetByID returns the workspace for id, or nil if not found.
	GetByID(ctx context.Context, id string) (*domain.Workspace, error)
	Count(ctx context.Context, c Criteria) (int64, error)
	List(ctx context.Context, c Criteria) ([]*domain.Workspace, error)
	ListWithOrg(ctx context.Context, c Criteria) ([]*domain.WorkspaceWithOrg, error)
	// Create inserts the workspace. The workspace must have ID and times set.
	Create(ctx context.Context, w *domain.Workspace) error
	// UpdateSelective overwrites only the non-zero fields of w on the row with w.ID, or returns ErrNotFound.
	UpdateSelective(ctx context.Context, w *domain.Workspace) error
	Delete(ctx context.Context, id string) error
}
