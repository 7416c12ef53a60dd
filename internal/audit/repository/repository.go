package repository

import (
	"context"

	"testplatform/backend/internal/audit/domain"
)

// Repository appends audit entries. Entries are never updated or deleted.
type Repository interface {
	Create(ctx context.Context, a *domain.AuditLog) error
}
