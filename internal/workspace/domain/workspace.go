package domain

import (
	"strings"
)

// Workspace is a sub-tenant unit under an organization. Times are epoch milliseconds.
type Workspace struct {
	ID             string
	OrganizationID string
	Name           string
	Description    string
	CreateTime     int64
	UpdateTime     int64
}

// WorkspaceWithOrg is a workspace enriched with its parent organization's display data.
type WorkspaceWithOrg struct {
	Workspace
	OrganizationName string
}

// IsNew reports whether the workspace has not been persisted yet (no ID assigned).
func (w *Workspace) IsNew() bool {
	return strings.TrimSpace(w.ID) == ""
}

// HasName reports whether the workspace has a non-blank name.
func (w *Workspace) HasName() bool {
	return strings.TrimSpace(w.Name) != ""
}

// Filter selects workspaces. Empty fields are not applied.
type Filter struct {
	OrganizationID string
	// Name is matched as a case-sensitive LIKE pattern; see NamePattern.
	Name string
}

// NamePattern returns Name wrapped in '%' on each side where missing, or "" when Name is blank.
func (f Filter) NamePattern() string {
	if strings.TrimSpace(f.Name) == "" {
		return ""
	}
	p := f.Name
	if !strings.HasPrefix(p, "%") {
		p = "%" + p
	}
	if !strings.HasSuffix(p, "%") {
		p += "%"
	}
	return p
}

// Member is a requested change to a user's profile and role set within a workspace.
type Member struct {
	WorkspaceID string
	UserID      string
	Name        string
	Email       string
	Phone       string
	RoleIDs     []string
}
