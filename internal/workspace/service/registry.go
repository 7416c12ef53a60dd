// Package service implements the workspace registry and the membership reconciler. Every public operation
// runs in one transaction obtained from a TxRunner; the acting user is passed in explicitly.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"testplatform/backend/internal/audit"
	"testplatform/backend/internal/platform/errs"
	"testplatform/backend/internal/session"
	"testplatform/backend/internal/workspace/domain"
	workspacerepo "testplatform/backend/internal/workspace/repository"
)

// Audit actions emitted by the registry and the reconciler.
const (
	ActionWorkspaceCreated   = "workspace_created"
	ActionWorkspaceUpdated   = "workspace_updated"
	ActionWorkspaceDeleted   = "workspace_deleted"
	ActionMemberRolesChanged = "member_roles_changed"
)

// Clock returns the current time in epoch milliseconds.
type Clock func() int64

func systemClock() int64 { return time.Now().UnixMilli() }

// Option configures a Registry or Reconciler.
type Option func(*options)

type options struct {
	now   Clock
	newID func() string
	audit audit.AuditLogger
}

// WithClock overrides the time source.
func WithClock(c Clock) Option {
	return func(o *options) { o.now = c }
}

// WithIDGenerator overrides how new record IDs are generated.
func WithIDGenerator(f func() string) Option {
	return func(o *options) { o.newID = f }
}

// WithAuditLogger records mutations with l after they commit.
func WithAuditLogger(l audit.AuditLogger) Option {
	return func(o *options) { o.audit = l }
}

func newOptions(opts []Option) options {
	o := options{now: systemClock, newID: func() string { return uuid.New().String() }}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func (o options) logEvent(ctx context.Context, orgID, userID, action, resource, metadata string) {
	if o.audit == nil {
		return
	}
	o.audit.LogEvent(ctx, orgID, userID, action, resource, metadata)
}

// Registry creates, updates, lists and deletes workspaces.
type Registry struct {
	tx TxRunner
	options
}

// NewRegistry returns a Registry that runs its operations through tx.
func NewRegistry(tx TxRunner, opts ...Option) *Registry {
	return &Registry{tx: tx, options: newOptions(opts)}
}

// Save creates ws in the actor's organization when it has no ID, or partially updates it otherwise.
// The organization always comes from the actor; any OrganizationID on ws is overwritten.
func (r *Registry) Save(ctx context.Context, actor *session.Actor, ws *domain.Workspace) (*domain.Workspace, error) {
	if !ws.HasName() {
		return nil, errs.Validation(errs.KeyWorkspaceNameIsNull)
	}
	ws.OrganizationID = actor.OrganizationID
	if ws.IsNew() {
		if err := r.create(ctx, ws); err != nil {
			return nil, err
		}
		r.logEvent(ctx, ws.OrganizationID, actor.UserID, ActionWorkspaceCreated, "workspace", ws.ID)
		return ws, nil
	}
	ws.CreateTime = 0
	if err := r.update(ctx, ws); err != nil {
		return nil, err
	}
	r.logEvent(ctx, ws.OrganizationID, actor.UserID, ActionWorkspaceUpdated, "workspace", ws.ID)
	return ws, nil
}

// AdminCreate creates ws in the organization named by ws.OrganizationID.
func (r *Registry) AdminCreate(ctx context.Context, actor *session.Actor, ws *domain.Workspace) (*domain.Workspace, error) {
	if !ws.HasName() {
		return nil, errs.Validation(errs.KeyWorkspaceNameIsNull)
	}
	if strings.TrimSpace(ws.OrganizationID) == "" {
		return nil, errs.Validation(errs.KeyOrganizationIDIsNull)
	}
	ws.ID = ""
	if err := r.create(ctx, ws); err != nil {
		return nil, err
	}
	r.logEvent(ctx, ws.OrganizationID, actor.UserID, ActionWorkspaceCreated, "workspace", ws.ID)
	return ws, nil
}

// AdminUpdate partially updates ws. CreateTime is never overwritten; an unknown ID is not found.
func (r *Registry) AdminUpdate(ctx context.Context, actor *session.Actor, ws *domain.Workspace) (*domain.Workspace, error) {
	if ws.IsNew() {
		return nil, errs.Validation(errs.KeyWorkspaceIDIsNull)
	}
	ws.CreateTime = 0
	if err := r.update(ctx, ws); err != nil {
		return nil, err
	}
	r.logEvent(ctx, ws.OrganizationID, actor.UserID, ActionWorkspaceUpdated, "workspace", ws.ID)
	return ws, nil
}

func (r *Registry) create(ctx context.Context, ws *domain.Workspace) error {
	err := r.tx.WithTx(ctx, func(stores StoreProvider) error {
		n, err := stores.Workspaces().Count(ctx, workspacerepo.Criteria{
			OrganizationIDs: []string{ws.OrganizationID},
			Name:            ws.Name,
		})
		if err != nil {
			return fmt.Errorf("count workspaces by name: %w", err)
		}
		if n > 0 {
			return errs.Conflict(errs.KeyWorkspaceNameAlreadyExists)
		}
		now := r.now()
		ws.ID = r.newID()
		ws.CreateTime = now
		ws.UpdateTime = now
		if err := stores.Workspaces().Create(ctx, ws); err != nil {
			if errors.Is(err, workspacerepo.ErrDuplicateName) {
				return errs.Conflict(errs.KeyWorkspaceNameAlreadyExists)
			}
			return fmt.Errorf("create workspace: %w", err)
		}
		return nil
	})
	if err != nil {
		ws.ID = ""
		return err
	}
	slog.InfoContext(ctx, "workspace created",
		slog.String("workspace_id", ws.ID), slog.String("org_id", ws.OrganizationID))
	return nil
}

func (r *Registry) update(ctx context.Context, ws *domain.Workspace) error {
	ws.UpdateTime = r.now()
	err := r.tx.WithTx(ctx, func(stores StoreProvider) error {
		if err := stores.Workspaces().UpdateSelective(ctx, ws); err != nil {
			switch {
			case errors.Is(err, workspacerepo.ErrDuplicateName):
				return errs.Conflict(errs.KeyWorkspaceNameAlreadyExists)
			case errors.Is(err, workspacerepo.ErrNotFound):
				return errs.NotFound(errs.KeyWorkspaceNotExist)
			}
			return fmt.Errorf("update workspace: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	slog.InfoContext(ctx, "workspace updated", slog.String("workspace_id", ws.ID))
	return nil
}

// List returns the workspaces matching filter, in no particular order.
func (r *Registry) List(ctx context.Context, filter domain.Filter) ([]*domain.Workspace, error) {
	var out []*domain.Workspace
	err := r.tx.WithTx(ctx, func(stores StoreProvider) error {
		var err error
		out, err = stores.Workspaces().List(ctx, criteriaFor(filter))
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list workspaces: %w", err)
	}
	return out, nil
}

// ListWithOrg is List with each workspace's organization name attached.
func (r *Registry) ListWithOrg(ctx context.Context, filter domain.Filter) ([]*domain.WorkspaceWithOrg, error) {
	var out []*domain.WorkspaceWithOrg
	err := r.tx.WithTx(ctx, func(stores StoreProvider) error {
		var err error
		out, err = stores.Workspaces().ListWithOrg(ctx, criteriaFor(filter))
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list workspaces with org: %w", err)
	}
	return out, nil
}

// ListByUser returns the workspaces in which userID holds any role binding.
func (r *Registry) ListByUser(ctx context.Context, userID string) ([]*domain.Workspace, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, errs.Validation(errs.KeyUserIDIsNull)
	}
	return r.listForUser(ctx, userID, "")
}

// ListByOrgForUser returns the workspaces of orgID in which the actor holds any role binding.
func (r *Registry) ListByOrgForUser(ctx context.Context, actor *session.Actor, orgID string) ([]*domain.Workspace, error) {
	if strings.TrimSpace(orgID) == "" {
		return nil, errs.Validation(errs.KeyOrganizationIDIsNull)
	}
	return r.listForUser(ctx, actor.UserID, orgID)
}

func (r *Registry) listForUser(ctx context.Context, userID, orgID string) ([]*domain.Workspace, error) {
	out := []*domain.Workspace{}
	err := r.tx.WithTx(ctx, func(stores StoreProvider) error {
		ids, err := stores.UserRoles().ListWorkspaceIDsByUser(ctx, userID)
		if err != nil {
			return fmt.Errorf("list workspace ids for user: %w", err)
		}
		if len(ids) == 0 {
			return nil
		}
		c := workspacerepo.Criteria{IDs: ids}
		if orgID != "" {
			c.OrganizationIDs = []string{orgID}
		}
		list, err := stores.Workspaces().List(ctx, c)
		if err != nil {
			return fmt.Errorf("list workspaces: %w", err)
		}
		out = append(out, list...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes the workspace with id. Bindings scoped to it are left in place.
func (r *Registry) Delete(ctx context.Context, actor *session.Actor, id string) error {
	if strings.TrimSpace(id) == "" {
		return errs.Validation(errs.KeyWorkspaceIDIsNull)
	}
	err := r.tx.WithTx(ctx, func(stores StoreProvider) error {
		return stores.Workspaces().Delete(ctx, id)
	})
	if err != nil {
		return fmt.Errorf("delete workspace: %w", err)
	}
	slog.InfoContext(ctx, "workspace deleted", slog.String("workspace_id", id))
	r.logEvent(ctx, actor.OrganizationID, actor.UserID, ActionWorkspaceDeleted, "workspace", id)
	return nil
}

func criteriaFor(f domain.Filter) workspacerepo.Criteria {
	var c workspacerepo.Criteria
	if strings.TrimSpace(f.OrganizationID) != "" {
		c.OrganizationIDs = []string{f.OrganizationID}
	}
	c.NameLike = f.NamePattern()
	return c
}
