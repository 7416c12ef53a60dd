package domain

// UserRole binds a role to a user within a source (a workspace or an organization).
// Bindings are created and deleted, never updated in place. Times are epoch milliseconds.
type UserRole struct {
	ID         string
	UserID     string
	RoleID     string
	SourceID   string
	CreateTime int64
	UpdateTime int64
}

// Built-in role IDs of the read-only role catalog (seeded by the init migration).
const (
	RoleAdmin       = "admin"
	RoleOrgAdmin    = "org_admin"
	RoleOrgMember   = "org_member"
	RoleTestManager = "test_manager"
	RoleTestUser    = "test_user"
	RoleTestViewer  = "test_viewer"
)

// Role types of the catalog. Only workspace roles may be bound to a workspace.
const (
	RoleTypeSystem       = "system"
	RoleTypeOrganization = "organization"
	RoleTypeWorkspace    = "workspace"
)

// SystemSourceID is the source of platform-wide bindings such as admin. It is never a workspace
// or organization id.
const SystemSourceID = "system"

// RoleIDs returns the distinct role IDs held in bindings, in first-seen order.
func RoleIDs(bindings []*UserRole) []string {
	seen := make(map[string]struct{}, len(bindings))
	out := make([]string, 0, len(bindings))
	for _, b := range bindings {
		if _, ok := seen[b.RoleID]; ok {
			continue
		}
		seen[b.RoleID] = struct{}{}
		out = append(out, b.RoleID)
	}
	return out
}

// Difference returns the IDs in a that are not in b, preserving a's order.
func Difference(a, b []string) []string {
	drop := make(map[string]struct{}, len(b))
	for _, id := range b {
		drop[id] = struct{}{}
	}
	var out []string
	for _, id := range a {
		if _, ok := drop[id]; !ok {
			out = append(out, id)
		}
	}
	return out
}
