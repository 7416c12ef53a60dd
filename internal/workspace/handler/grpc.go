package handler

import (
	"context"
	"errors"
	"log/slog"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	workspacev1 "testplatform/backend/api/workspace/v1"
	"testplatform/backend/internal/i18n"
	"testplatform/backend/internal/platform/errs"
	"testplatform/backend/internal/server/interceptors"
	"testplatform/backend/internal/session"
	"testplatform/backend/internal/workspace/domain"
	"testplatform/backend/internal/workspace/service"
)

// ErrorKeyTrailer carries the untranslated message key of a failed call.
const ErrorKeyTrailer = "x-error-key"

// ActorResolver turns an authenticated request context into the calling Actor.
type ActorResolver interface {
	Resolve(ctx context.Context) (*session.Actor, error)
}

// Registry is the workspace record store. *service.Registry implements it.
type Registry interface {
	Save(ctx context.Context, actor *session.Actor, ws *domain.Workspace) (*domain.Workspace, error)
	AdminCreate(ctx context.Context, actor *session.Actor, ws *domain.Workspace) (*domain.Workspace, error)
	AdminUpdate(ctx context.Context, actor *session.Actor, ws *domain.Workspace) (*domain.Workspace, error)
	List(ctx context.Context, filter domain.Filter) ([]*domain.Workspace, error)
	ListWithOrg(ctx context.Context, filter domain.Filter) ([]*domain.WorkspaceWithOrg, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Workspace, error)
	ListByOrgForUser(ctx context.Context, actor *session.Actor, orgID string) ([]*domain.Workspace, error)
	Delete(ctx context.Context, actor *session.Actor, id string) error
}

// Reconciler owns membership changes and authorization checks. *service.Reconciler implements it.
type Reconciler interface {
	UpdateMember(ctx context.Context, actor *session.Actor, member *domain.Member) (*service.MembershipChange, error)
	AssertOwnedByOrgAdmin(ctx context.Context, actor *session.Actor, id string) error
	AssertOwned(ctx context.Context, actor *session.Actor, id string) error
	RequireOrgAdmin(ctx context.Context, actor *session.Actor) error
	RequireAdmin(ctx context.Context, actor *session.Actor) error
}

// Server implements WorkspaceService.
// Proto: testplatform.workspace.v1.WorkspaceService → internal/workspace/handler.
type Server struct {
	workspacev1.UnimplementedWorkspaceServiceServer
	actors     ActorResolver
	registry   Registry
	reconciler Reconciler
	messages   i18n.Translator
}

// NewServer returns a new Workspace gRPC server. messages may be nil; errors then carry the bare key.
func NewServer(actors ActorResolver, registry Registry, reconciler Reconciler, messages i18n.Translator) *Server {
	return &Server{actors: actors, registry: registry, reconciler: reconciler, messages: messages}
}

// SaveWorkspace creates a workspace in the caller's organization (org admins only) or updates one the
// caller administers. An update also moves the workspace into the caller's current organization, so
// the caller must administer that one too.
func (s *Server) SaveWorkspace(ctx context.Context, req *workspacev1.SaveWorkspaceRequest) (*workspacev1.SaveWorkspaceResponse, error) {
	actor, err := s.actors.Resolve(ctx)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	ws := workspaceFromProto(req.Workspace)
	if ws.IsNew() {
		err = s.reconciler.RequireOrgAdmin(ctx, actor)
	} else if err = s.reconciler.AssertOwnedByOrgAdmin(ctx, actor, ws.ID); err == nil {
		err = s.reconciler.RequireOrgAdmin(ctx, actor)
	}
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	saved, err := s.registry.Save(ctx, actor, ws)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &workspacev1.SaveWorkspaceResponse{Workspace: workspaceToProto(saved)}, nil
}

// ListWorkspaces lists workspaces matching the filter. Callers other than system admins only see
// their own organization.
func (s *Server) ListWorkspaces(ctx context.Context, req *workspacev1.ListWorkspacesRequest) (*workspacev1.ListWorkspacesResponse, error) {
	actor, err := s.actors.Resolve(ctx)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	filter := domain.Filter{OrganizationID: req.OrganizationID, Name: req.Name}
	if err := s.reconciler.RequireAdmin(ctx, actor); err != nil {
		if !errors.Is(err, errs.ErrForbidden) {
			return nil, s.toStatus(ctx, err)
		}
		filter.OrganizationID = actor.OrganizationID
	}
	list, err := s.registry.List(ctx, filter)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &workspacev1.ListWorkspacesResponse{Workspaces: workspacesToProto(list)}, nil
}

// ListWorkspacesWithOrg lists workspaces with their organization names. System admins only.
func (s *Server) ListWorkspacesWithOrg(ctx context.Context, req *workspacev1.ListWorkspacesRequest) (*workspacev1.ListWorkspacesWithOrgResponse, error) {
	actor, err := s.actors.Resolve(ctx)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	if err := s.reconciler.RequireAdmin(ctx, actor); err != nil {
		return nil, s.toStatus(ctx, err)
	}
	list, err := s.registry.ListWithOrg(ctx, domain.Filter{OrganizationID: req.OrganizationID, Name: req.Name})
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	out := make([]*workspacev1.WorkspaceWithOrg, 0, len(list))
	for _, w := range list {
		out = append(out, &workspacev1.WorkspaceWithOrg{
			Workspace:        *workspaceToProto(&w.Workspace),
			OrganizationName: w.OrganizationName,
		})
	}
	return &workspacev1.ListWorkspacesWithOrgResponse{Workspaces: out}, nil
}

// DeleteWorkspace removes a workspace the caller administers. Bindings sourced from it are left in place.
func (s *Server) DeleteWorkspace(ctx context.Context, req *workspacev1.DeleteWorkspaceRequest) (*workspacev1.DeleteWorkspaceResponse, error) {
	actor, err := s.actors.Resolve(ctx)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	if err := s.reconciler.AssertOwnedByOrgAdmin(ctx, actor, req.WorkspaceID); err != nil {
		return nil, s.toStatus(ctx, err)
	}
	if err := s.registry.Delete(ctx, actor, req.WorkspaceID); err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &workspacev1.DeleteWorkspaceResponse{}, nil
}

// ListUserWorkspaces lists the workspaces a user holds a binding in. An empty user_id means the caller;
// listing another user requires org admin.
func (s *Server) ListUserWorkspaces(ctx context.Context, req *workspacev1.ListUserWorkspacesRequest) (*workspacev1.ListWorkspacesResponse, error) {
	actor, err := s.actors.Resolve(ctx)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	userID := req.UserID
	if userID == "" {
		userID = actor.UserID
	}
	if userID != actor.UserID {
		if err := s.reconciler.RequireOrgAdmin(ctx, actor); err != nil {
			return nil, s.toStatus(ctx, err)
		}
	}
	list, err := s.registry.ListByUser(ctx, userID)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &workspacev1.ListWorkspacesResponse{Workspaces: workspacesToProto(list)}, nil
}

// ListOrgWorkspacesForUser lists the caller's workspaces within an organization.
func (s *Server) ListOrgWorkspacesForUser(ctx context.Context, req *workspacev1.ListOrgWorkspacesForUserRequest) (*workspacev1.ListWorkspacesResponse, error) {
	actor, err := s.actors.Resolve(ctx)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	list, err := s.registry.ListByOrgForUser(ctx, actor, req.OrganizationID)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &workspacev1.ListWorkspacesResponse{Workspaces: workspacesToProto(list)}, nil
}

// UpdateWorkspaceMember sets a member's profile and exact role set in a workspace the caller owns.
func (s *Server) UpdateWorkspaceMember(ctx context.Context, req *workspacev1.UpdateWorkspaceMemberRequest) (*workspacev1.UpdateWorkspaceMemberResponse, error) {
	actor, err := s.actors.Resolve(ctx)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	if req.WorkspaceID == "" {
		return nil, s.toStatus(ctx, errs.Validation(errs.KeyWorkspaceIDIsNull))
	}
	if err := s.reconciler.AssertOwned(ctx, actor, req.WorkspaceID); err != nil {
		return nil, s.toStatus(ctx, err)
	}
	change, err := s.reconciler.UpdateMember(ctx, actor, &domain.Member{
		WorkspaceID: req.WorkspaceID,
		UserID:      req.UserID,
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		RoleIDs:     req.RoleIDs,
	})
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &workspacev1.UpdateWorkspaceMemberResponse{Added: nonNil(change.Added), Removed: nonNil(change.Removed)}, nil
}

// AdminCreateWorkspace creates a workspace in any organization. System admins only.
func (s *Server) AdminCreateWorkspace(ctx context.Context, req *workspacev1.AdminCreateWorkspaceRequest) (*workspacev1.SaveWorkspaceResponse, error) {
	return s.adminSave(ctx, req.Workspace, s.registry.AdminCreate)
}

// AdminUpdateWorkspace updates any workspace. System admins only.
func (s *Server) AdminUpdateWorkspace(ctx context.Context, req *workspacev1.AdminUpdateWorkspaceRequest) (*workspacev1.SaveWorkspaceResponse, error) {
	return s.adminSave(ctx, req.Workspace, s.registry.AdminUpdate)
}

func (s *Server) adminSave(
	ctx context.Context,
	in *workspacev1.Workspace,
	save func(context.Context, *session.Actor, *domain.Workspace) (*domain.Workspace, error),
) (*workspacev1.SaveWorkspaceResponse, error) {
	actor, err := s.actors.Resolve(ctx)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	if err := s.reconciler.RequireAdmin(ctx, actor); err != nil {
		return nil, s.toStatus(ctx, err)
	}
	saved, err := save(ctx, actor, workspaceFromProto(in))
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &workspacev1.SaveWorkspaceResponse{Workspace: workspaceToProto(saved)}, nil
}

// CheckWorkspaceOwner succeeds when the caller is an org admin of the workspace's organization or a
// test manager of the workspace.
func (s *Server) CheckWorkspaceOwner(ctx context.Context, req *workspacev1.CheckWorkspaceOwnerRequest) (*workspacev1.CheckWorkspaceOwnerResponse, error) {
	actor, err := s.actors.Resolve(ctx)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	if err := s.reconciler.AssertOwned(ctx, actor, req.WorkspaceID); err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &workspacev1.CheckWorkspaceOwnerResponse{}, nil
}

// toStatus maps service errors to gRPC status codes with a message localized for the caller.
func (s *Server) toStatus(ctx context.Context, err error) error {
	if errors.Is(err, session.ErrUnauthenticated) {
		return status.Error(codes.Unauthenticated, s.translate(ctx, "unauthenticated"))
	}
	e, ok := errs.As(err)
	if !ok {
		slog.ErrorContext(ctx, "workspace rpc failed", "error", err)
		return status.Error(codes.Internal, s.translate(ctx, "internal_error"))
	}
	_ = grpc.SetTrailer(ctx, metadata.Pairs(ErrorKeyTrailer, e.Key))
	var code codes.Code
	switch e.Kind {
	case errs.KindValidation:
		code = codes.InvalidArgument
	case errs.KindConflict:
		code = codes.AlreadyExists
	case errs.KindNotFound:
		code = codes.NotFound
	case errs.KindForbidden:
		code = codes.PermissionDenied
	default:
		code = codes.Internal
	}
	return status.Error(code, s.translate(ctx, e.Key))
}

func (s *Server) translate(ctx context.Context, key string) string {
	if s.messages == nil {
		return key
	}
	return s.messages.Translate(interceptors.GetLocale(ctx), key)
}

func workspaceFromProto(w *workspacev1.Workspace) *domain.Workspace {
	if w == nil {
		return &domain.Workspace{}
	}
	return &domain.Workspace{
		ID:             w.ID,
		OrganizationID: w.OrganizationID,
		Name:           w.Name,
		Description:    w.Description,
	}
}

func workspaceToProto(w *domain.Workspace) *workspacev1.Workspace {
	if w == nil {
		return nil
	}
	return &workspacev1.Workspace{
		ID:             w.ID,
		OrganizationID: w.OrganizationID,
		Name:           w.Name,
		Description:    w.Description,
		CreateTime:     w.CreateTime,
		UpdateTime:     w.UpdateTime,
	}
}

func workspacesToProto(list []*domain.Workspace) []*workspacev1.Workspace {
	out := make([]*workspacev1.Workspace, 0, len(list))
	for _, w := range list {
		out = append(out, workspaceToProto(w))
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
