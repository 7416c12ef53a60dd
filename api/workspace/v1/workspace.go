// Package workspacev1 defines the testplatform.workspace.v1.WorkspaceService gRPC contract. Messages are
// plain structs carried by a JSON codec.
package workspacev1

type Workspace struct {
	ID             string `json:"id,omitempty"`
	OrganizationID string `json:"organization_id,omitempty"`
	Name           string `json:"name,omitempty"`
	Description    string `json:"description,omitempty"`
	CreateTime     int64  `json:"create_time,omitempty"`
	UpdateTime     int64  `json:"update_time,omitempty"`
}

type WorkspaceWithOrg struct {
	Workspace
	OrganizationName string `json:"organization_name,omitempty"`
}

type SaveWorkspaceRequest struct {
	Workspace *Workspace `json:"workspace"`
}

type SaveWorkspaceResponse struct {
	Workspace *Workspace `json:"workspace"`
}

// ListWorkspacesRequest filters by exact organization and by a case-sensitive name substring.
type ListWorkspacesRequest struct {
	OrganizationID string `json:"organization_id,omitempty"`
	Name           string `json:"name,omitempty"`
}

type ListWorkspacesResponse struct {
	Workspaces []*Workspace `json:"workspaces"`
}

type ListWorkspacesWithOrgResponse struct {
	Workspaces []*WorkspaceWithOrg `json:"workspaces"`
}

type DeleteWorkspaceRequest struct {
	WorkspaceID string `json:"workspace_id"`
}

type DeleteWorkspaceResponse struct{}

type ListUserWorkspacesRequest struct {
	UserID string `json:"user_id"`
}

type ListOrgWorkspacesForUserRequest struct {
	OrganizationID string `json:"organization_id"`
}

// UpdateWorkspaceMemberRequest sets a member's profile fields and the exact role set held in a workspace.
type UpdateWorkspaceMemberRequest struct {
	WorkspaceID string   `json:"workspace_id"`
	UserID      string   `json:"user_id"`
	Name        string   `json:"name,omitempty"`
	Email       string   `json:"email,omitempty"`
	Phone       string   `json:"phone,omitempty"`
	RoleIDs     []string `json:"role_ids"`
}

type UpdateWorkspaceMemberResponse struct {
	Added   []string `json:"added"`
	Removed []string `json:"removed"`
}

type AdminCreateWorkspaceRequest struct {
	Workspace *Workspace `json:"workspace"`
}

type AdminUpdateWorkspaceRequest struct {
	Workspace *Workspace `json:"workspace"`
}

type CheckWorkspaceOwnerRequest struct {
	WorkspaceID string `json:"workspace_id"`
}

type CheckWorkspaceOwnerResponse struct{}

// GetWorkspaceID returns the workspace a request targets, or "" for a nil or new-workspace request.
func (r *DeleteWorkspaceRequest) GetWorkspaceID() string {
	if r == nil {
		return ""
	}
	return r.WorkspaceID
}

func (r *UpdateWorkspaceMemberRequest) GetWorkspaceID() string {
	if r == nil {
		return ""
	}
	return r.WorkspaceID
}

func (r *SaveWorkspaceRequest) GetWorkspaceID() string {
	if r == nil || r.Workspace == nil {
		return ""
	}
	return r.Workspace.ID
}

func (r *AdminUpdateWorkspaceRequest) GetWorkspaceID() string {
	if r == nil || r.Workspace == nil {
		return ""
	}
	return r.Workspace.ID
}
