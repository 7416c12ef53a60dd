package repository

import (
	"context"

	"testplatform/backend/internal/organization/domain"
)

// Repository stores the tenants that own workspaces. Lookups of a missing id return (nil, nil).
type Repository interface {
	GetOrganizationByID(ctx context.Context, id string) (*domain.Org, error)
	// CreateOrganization inserts o; the seed command is the only writer.
	CreateOrganization(ctx context.Context, o *domain.Org) error
}
