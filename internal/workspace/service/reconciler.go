package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"testplatform/backend/internal/platform/errs"
	"testplatform/backend/internal/platform/rbac"
	"testplatform/backend/internal/session"
	userdomain "testplatform/backend/internal/user/domain"
	userroledomain "testplatform/backend/internal/userrole/domain"
	userrolerepo "testplatform/backend/internal/userrole/repository"
	"testplatform/backend/internal/workspace/domain"
)

// RoleCacheInvalidator drops a user's cached role bindings.
type RoleCacheInvalidator interface {
	Invalidate(ctx context.Context, userID string) error
}

// MembershipChange reports the role IDs a reconciliation inserted and removed.
type MembershipChange struct {
	WorkspaceID string   `json:"workspace_id"`
	UserID      string   `json:"user_id"`
	Added       []string `json:"added"`
	Removed     []string `json:"removed"`
}

// Empty reports whether the reconciliation wrote no bindings.
func (c *MembershipChange) Empty() bool {
	return len(c.Added) == 0 && len(c.Removed) == 0
}

// Reconciler keeps a user's role bindings within a workspace equal to a requested set and answers
// ownership questions about workspaces.
type Reconciler struct {
	tx        TxRunner
	evaluator rbac.Evaluator
	cache     RoleCacheInvalidator
	options
}

// NewReconciler returns a Reconciler. cache may be nil.
func NewReconciler(tx TxRunner, evaluator rbac.Evaluator, cache RoleCacheInvalidator, opts ...Option) *Reconciler {
	return &Reconciler{tx: tx, evaluator: evaluator, cache: cache, options: newOptions(opts)}
}

// UpdateMember copies the member's profile fields onto the user, then reconciles the user's bindings in
// the workspace to exactly member.RoleIDs: missing roles are inserted, extra roles are removed in one
// batch, and bindings for roles in both sets are left untouched. Every target role must be a workspace
// role of the catalog; otherwise nothing is written.
func (r *Reconciler) UpdateMember(ctx context.Context, actor *session.Actor, member *domain.Member) (*MembershipChange, error) {
	if strings.TrimSpace(member.WorkspaceID) == "" {
		return nil, errs.Validation(errs.KeyWorkspaceIDIsNull)
	}
	if strings.TrimSpace(member.UserID) == "" {
		return nil, errs.Validation(errs.KeyUserIDIsNull)
	}
	change := &MembershipChange{WorkspaceID: member.WorkspaceID, UserID: member.UserID}
	err := r.tx.WithTx(ctx, func(stores StoreProvider) error {
		if err := checkAssignable(ctx, stores.UserRoles(), member.RoleIDs); err != nil {
			return err
		}
		now := r.now()
		if err := stores.Users().UpdateSelective(ctx, &userdomain.User{
			ID:         member.UserID,
			Name:       member.Name,
			Email:      member.Email,
			Phone:      member.Phone,
			UpdateTime: now,
		}); err != nil {
			return fmt.Errorf("update member profile: %w", err)
		}

		current, err := stores.UserRoles().ListBySourceAndUser(ctx, member.WorkspaceID, member.UserID)
		if err != nil {
			return fmt.Errorf("list member bindings: %w", err)
		}
		currentRoleIDs := userroledomain.RoleIDs(current)

		for _, roleID := range member.RoleIDs {
			n, err := stores.UserRoles().CountBySourceUserRole(ctx, member.WorkspaceID, member.UserID, roleID)
			if err != nil {
				return fmt.Errorf("count binding %s: %w", roleID, err)
			}
			if n > 0 {
				continue
			}
			created, err := stores.UserRoles().Create(ctx, &userroledomain.UserRole{
				ID:         r.newID(),
				UserID:     member.UserID,
				RoleID:     roleID,
				SourceID:   member.WorkspaceID,
				CreateTime: now,
				UpdateTime: now,
			})
			if err != nil {
				return fmt.Errorf("create binding %s: %w", roleID, err)
			}
			if created {
				change.Added = append(change.Added, roleID)
			}
		}

		toRemove := userroledomain.Difference(currentRoleIDs, member.RoleIDs)
		if len(toRemove) == 0 {
			return nil
		}
		if _, err := stores.UserRoles().DeleteByUserSourceRoles(ctx, member.UserID, member.WorkspaceID, toRemove); err != nil {
			return fmt.Errorf("delete bindings: %w", err)
		}
		change.Removed = toRemove
		return nil
	})
	if err != nil {
		return nil, err
	}

	if !change.Empty() {
		slog.InfoContext(ctx, "workspace member roles changed",
			slog.String("workspace_id", change.WorkspaceID),
			slog.String("user_id", change.UserID),
			slog.Any("added", change.Added),
			slog.Any("removed", change.Removed))
		if r.cache != nil {
			if err := r.cache.Invalidate(ctx, member.UserID); err != nil {
				slog.WarnContext(ctx, "workspace: role cache invalidation failed",
					slog.String("user_id", member.UserID), slog.Any("error", err))
			}
		}
		metadata, err := json.Marshal(change)
		if err != nil {
			slog.WarnContext(ctx, "workspace: encode membership change", slog.Any("error", err))
		}
		r.logEvent(ctx, actor.OrganizationID, actor.UserID, ActionMemberRolesChanged, "workspace_member", string(metadata))
	}
	return change, nil
}

// checkAssignable rejects role ids missing from the catalog or not of workspace type.
func checkAssignable(ctx context.Context, roles userrolerepo.Repository, roleIDs []string) error {
	if len(roleIDs) == 0 {
		return nil
	}
	types, err := roles.RoleTypes(ctx, roleIDs)
	if err != nil {
		return fmt.Errorf("read role catalog: %w", err)
	}
	for _, id := range roleIDs {
		if types[id] != userroledomain.RoleTypeWorkspace {
			slog.WarnContext(ctx, "workspace: rejected role assignment", slog.String("role_id", id))
			return errs.Validation(errs.KeyRoleNotAssignable)
		}
	}
	return nil
}

// AssertExists fails with a not-found error unless a workspace with id exists.
func (r *Reconciler) AssertExists(ctx context.Context, id string) error {
	_, err := r.load(ctx, id)
	return err
}

// AssertOwnedByOrgAdmin checks that the actor administers the organization owning the workspace.
func (r *Reconciler) AssertOwnedByOrgAdmin(ctx context.Context, actor *session.Actor, id string) error {
	return r.assertOwned(ctx, actor, id, rbac.OrgAdminRule)
}

// AssertOwnedByTestManager checks that the actor is a test manager of the workspace.
func (r *Reconciler) AssertOwnedByTestManager(ctx context.Context, actor *session.Actor, id string) error {
	return r.assertOwned(ctx, actor, id, rbac.TestManagerRule)
}

// AssertOwned passes when either AssertOwnedByOrgAdmin or AssertOwnedByTestManager would.
func (r *Reconciler) AssertOwned(ctx context.Context, actor *session.Actor, id string) error {
	return r.assertOwned(ctx, actor, id, rbac.OrgAdminRule, rbac.TestManagerRule)
}

// RequireOrgAdmin checks that the actor administers its current organization.
func (r *Reconciler) RequireOrgAdmin(ctx context.Context, actor *session.Actor) error {
	return r.require(ctx, actor, rbac.Resource{OrganizationID: actor.OrganizationID},
		errs.KeyOrganizationNotBelongToUser, rbac.OrgAdminRule)
}

// RequireAdmin checks that the actor is a system administrator.
func (r *Reconciler) RequireAdmin(ctx context.Context, actor *session.Actor) error {
	return r.require(ctx, actor, rbac.Resource{}, errs.KeyUserIsNotAdmin, rbac.AdminRule)
}

// assertOwned reports a missing workspace as not found before evaluating any rule.
func (r *Reconciler) assertOwned(ctx context.Context, actor *session.Actor, id string, rules ...rbac.Rule) error {
	ws, err := r.load(ctx, id)
	if err != nil {
		return err
	}
	return r.require(ctx, actor, rbac.Resource{WorkspaceID: ws.ID, OrganizationID: ws.OrganizationID},
		errs.KeyWorkspaceNotBelongToUser, rules...)
}

func (r *Reconciler) require(ctx context.Context, actor *session.Actor, res rbac.Resource, key string, rules ...rbac.Rule) error {
	ok, err := r.evaluator.Allowed(ctx, rbac.BindingsOf(actor.Roles), res, rules...)
	if err != nil {
		return fmt.Errorf("evaluate ownership: %w", err)
	}
	if !ok {
		return errs.Forbidden(key)
	}
	return nil
}

func (r *Reconciler) load(ctx context.Context, id string) (*domain.Workspace, error) {
	if strings.TrimSpace(id) == "" {
		return nil, errs.NotFound(errs.KeyWorkspaceNotExist)
	}
	var ws *domain.Workspace
	err := r.tx.WithTx(ctx, func(stores StoreProvider) error {
		var err error
		ws, err = stores.Workspaces().GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("get workspace: %w", err)
	}
	if ws == nil {
		return nil, errs.NotFound(errs.KeyWorkspaceNotExist)
	}
	return ws, nil
}
