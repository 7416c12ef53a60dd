package repository

import (
	"context"

	"testplatform/backend/internal/user/domain"
)

// Repository stores workspace members' profiles. GetByID returns (nil, nil) for an unknown id.
type Repository interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	Create(ctx context.Context, u *domain.User) error
	// UpdateSelective overwrites only the non-empty fields of u on the row with u.ID.
	UpdateSelective(ctx context.Context, u *domain.User) error
}
