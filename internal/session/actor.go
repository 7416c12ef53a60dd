// Package session resolves the authenticated caller of a request into an Actor: the identity set by the
// auth interceptor plus the caller's role bindings, which are cached in Redis.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"testplatform/backend/internal/server/interceptors"
	userroledomain "testplatform/backend/internal/userrole/domain"
)

// ErrUnauthenticated is returned by Resolve when the context carries no user or organization.
var ErrUnauthenticated = errors.New("session: user and organization context required")

// Actor is the caller on whose behalf an operation runs.
type Actor struct {
	UserID         string
	OrganizationID string
	SessionID      string
	Roles          []userroledomain.UserRole
}

// BindingLister loads every role binding a user holds.
type BindingLister interface {
	ListByUser(ctx context.Context, userID string) ([]*userroledomain.UserRole, error)
}

// Resolver builds Actors from request contexts.
type Resolver struct {
	bindings BindingLister
	cache    RoleCache
}

// NewResolver returns a Resolver that reads bindings from bindings, consulting cache first.
// cache may be nil; then every Resolve reads bindings directly.
func NewResolver(bindings BindingLister, cache RoleCache) *Resolver {
	return &Resolver{bindings: bindings, cache: cache}
}

// Resolve returns the Actor for ctx or ErrUnauthenticated.
func (r *Resolver) Resolve(ctx context.Context) (*Actor, error) {
	userID, okUser := interceptors.GetUserID(ctx)
	orgID, okOrg := interceptors.GetOrgID(ctx)
	if !okUser || userID == "" || !okOrg || orgID == "" {
		return nil, ErrUnauthenticated
	}
	sessionID, _ := interceptors.GetSessionID(ctx)
	roles, err := r.roles(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &Actor{UserID: userID, OrganizationID: orgID, SessionID: sessionID, Roles: roles}, nil
}

// Invalidate drops the cached bindings of userID so the next Resolve reloads them.
func (r *Resolver) Invalidate(ctx context.Context, userID string) error {
	if r.cache == nil {
		return nil
	}
	return r.cache.Delete(ctx, userID)
}

func (r *Resolver) roles(ctx context.Context, userID string) ([]userroledomain.UserRole, error) {
	if r.cache != nil {
		roles, ok, err := r.cache.Get(ctx, userID)
		if err != nil {
			slog.WarnContext(ctx, "session: role cache read failed", slog.String("user_id", userID), slog.Any("error", err))
		} else if ok {
			return roles, nil
		}
	}
	list, err := r.bindings.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load role bindings: %w", err)
	}
	roles := make([]userroledomain.UserRole, 0, len(list))
	for _, b := range list {
		roles = append(roles, *b)
	}
	if r.cache != nil {
		if err := r.cache.Set(ctx, userID, roles); err != nil {
			slog.WarnContext(ctx, "session: role cache write failed", slog.String("user_id", userID), slog.Any("error", err))
		}
	}
	return roles, nil
}
