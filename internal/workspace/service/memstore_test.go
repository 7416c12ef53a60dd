package service

import (
	"context"
	"errors"
	"regexp"
	"strconv"
	"strings"
	"sync"

	userdomain "testplatform/backend/internal/user/domain"
	userrepo "testplatform/backend/internal/user/repository"
	userroledomain "testplatform/backend/internal/userrole/domain"
	userrolerepo "testplatform/backend/internal/userrole/repository"
	"testplatform/backend/internal/workspace/domain"
	workspacerepo "testplatform/backend/internal/workspace/repository"
)

// memState is an in-memory database. memTxRunner snapshots it per transaction and restores the
// snapshot when the transaction function fails.
type memState struct {
	workspaces map[string]domain.Workspace
	orgNames   map[string]string
	bindings   map[string]userroledomain.UserRole
	users      map[string]userdomain.User
	// roleTypes is the read-only role catalog, id to type.
	roleTypes map[string]string

	inserts int
	deletes int
}

func newMemState() *memState {
	return &memState{
		workspaces: map[string]domain.Workspace{},
		orgNames:   map[string]string{},
		bindings:   map[string]userroledomain.UserRole{},
		users:      map[string]userdomain.User{},
		roleTypes: map[string]string{
			userroledomain.RoleAdmin:       userroledomain.RoleTypeSystem,
			userroledomain.RoleOrgAdmin:    userroledomain.RoleTypeOrganization,
			userroledomain.RoleOrgMember:   userroledomain.RoleTypeOrganization,
			userroledomain.RoleTestManager: userroledomain.RoleTypeWorkspace,
			userroledomain.RoleTestUser:    userroledomain.RoleTypeWorkspace,
			userroledomain.RoleTestViewer:  userroledomain.RoleTypeWorkspace,
		},
	}
}

func (s *memState) clone() *memState {
	c := newMemState()
	for k, v := range s.workspaces {
		c.workspaces[k] = v
	}
	for k, v := range s.orgNames {
		c.orgNames[k] = v
	}
	for k, v := range s.bindings {
		c.bindings[k] = v
	}
	for k, v := range s.users {
		c.users[k] = v
	}
	c.roleTypes = s.roleTypes
	c.inserts, c.deletes = s.inserts, s.deletes
	return c
}

type memTxRunner struct {
	mu    sync.Mutex
	state *memState
	err   error
}

func newMemTxRunner() *memTxRunner {
	return &memTxRunner{state: newMemState()}
}

func (r *memTxRunner) WithTx(ctx context.Context, fn func(stores StoreProvider) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	snapshot := r.state.clone()
	if err := fn(&memStores{s: r.state}); err != nil {
		r.state = snapshot
		return err
	}
	return nil
}

type memStores struct {
	s *memState
}

func (m *memStores) Workspaces() workspacerepo.Repository { return &memWorkspaces{m.s} }
func (m *memStores) UserRoles() userrolerepo.Repository   { return &memUserRoles{m.s} }
func (m *memStores) Users() userrepo.Repository           { return &memUsers{m.s} }

type memWorkspaces struct{ s *memState }

func likeMatch(pattern, v string) bool {
	parts := strings.Split(pattern, "%")
	for i, p := range parts {
		parts[i] = regexp.QuoteMeta(p)
	}
	return regexp.MustCompile("^" + strings.Join(parts, ".*") + "$").MatchString(v)
}

func contains(list []string, v string) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}

func (m *memWorkspaces) match(c workspacerepo.Criteria, w domain.Workspace) bool {
	if len(c.IDs) > 0 && !contains(c.IDs, w.ID) {
		return false
	}
	if len(c.OrganizationIDs) > 0 && !contains(c.OrganizationIDs, w.OrganizationID) {
		return false
	}
	if c.Name != "" && c.Name != w.Name {
		return false
	}
	if c.NameLike != "" && !likeMatch(c.NameLike, w.Name) {
		return false
	}
	return true
}

func (m *memWorkspaces) GetByID(ctx context.Context, id string) (*domain.Workspace, error) {
	w, ok := m.s.workspaces[id]
	if !ok {
		return nil, nil
	}
	return &w, nil
}

func (m *memWorkspaces) Count(ctx context.Context, c workspacerepo.Criteria) (int64, error) {
	var n int64
	for _, w := range m.s.workspaces {
		if m.match(c, w) {
			n++
		}
	}
	return n, nil
}

func (m *memWorkspaces) List(ctx context.Context, c workspacerepo.Criteria) ([]*domain.Workspace, error) {
	var out []*domain.Workspace
	for _, w := range m.s.workspaces {
		if m.match(c, w) {
			w := w
			out = append(out, &w)
		}
	}
	return out, nil
}

func (m *memWorkspaces) ListWithOrg(ctx context.Context, c workspacerepo.Criteria) ([]*domain.WorkspaceWithOrg, error) {
	list, _ := m.List(ctx, c)
	out := make([]*domain.WorkspaceWithOrg, 0, len(list))
	for _, w := range list {
		out = append(out, &domain.WorkspaceWithOrg{Workspace: *w, OrganizationName: m.s.orgNames[w.OrganizationID]})
	}
	return out, nil
}

func (m *memWorkspaces) Create(ctx context.Context, w *domain.Workspace) error {
	for _, existing := range m.s.workspaces {
		if existing.OrganizationID == w.OrganizationID && existing.Name == w.Name {
			return workspacerepo.ErrDuplicateName
		}
	}
	m.s.workspaces[w.ID] = *w
	return nil
}

func (m *memWorkspaces) UpdateSelective(ctx context.Context, w *domain.Workspace) error {
	cur, ok := m.s.workspaces[w.ID]
	if !ok {
		return workspacerepo.ErrNotFound
	}
	if w.OrganizationID != "" {
		cur.OrganizationID = w.OrganizationID
	}
	if w.Name != "" {
		cur.Name = w.Name
	}
	if w.Description != "" {
		cur.Description = w.Description
	}
	if w.CreateTime != 0 {
		cur.CreateTime = w.CreateTime
	}
	if w.UpdateTime != 0 {
		cur.UpdateTime = w.UpdateTime
	}
	for id, existing := range m.s.workspaces {
		if id != cur.ID && existing.OrganizationID == cur.OrganizationID && existing.Name == cur.Name {
			return workspacerepo.ErrDuplicateName
		}
	}
	m.s.workspaces[w.ID] = cur
	return nil
}

func (m *memWorkspaces) Delete(ctx context.Context, id string) error {
	delete(m.s.workspaces, id)
	return nil
}

type memUserRoles struct{ s *memState }

func (m *memUserRoles) filter(keep func(userroledomain.UserRole) bool) []*userroledomain.UserRole {
	var out []*userroledomain.UserRole
	for _, b := range m.s.bindings {
		if keep(b) {
			b := b
			out = append(out, &b)
		}
	}
	return out
}

func (m *memUserRoles) ListBySourceAndUser(ctx context.Context, sourceID, userID string) ([]*userroledomain.UserRole, error) {
	return m.filter(func(b userroledomain.UserRole) bool { return b.SourceID == sourceID && b.UserID == userID }), nil
}

func (m *memUserRoles) ListByUser(ctx context.Context, userID string) ([]*userroledomain.UserRole, error) {
	return m.filter(func(b userroledomain.UserRole) bool { return b.UserID == userID }), nil
}

func (m *memUserRoles) CountBySourceUserRole(ctx context.Context, sourceID, userID, roleID string) (int64, error) {
	return int64(len(m.filter(func(b userroledomain.UserRole) bool {
		return b.SourceID == sourceID && b.UserID == userID && b.RoleID == roleID
	}))), nil
}

func (m *memUserRoles) Create(ctx context.Context, ur *userroledomain.UserRole) (bool, error) {
	for _, b := range m.s.bindings {
		if b.UserID == ur.UserID && b.RoleID == ur.RoleID && b.SourceID == ur.SourceID {
			return false, nil
		}
	}
	m.s.bindings[ur.ID] = *ur
	m.s.inserts++
	return true, nil
}

func (m *memUserRoles) DeleteByUserSourceRoles(ctx context.Context, userID, sourceID string, roleIDs []string) (int64, error) {
	if len(roleIDs) == 0 {
		return 0, nil
	}
	m.s.deletes++
	var n int64
	for id, b := range m.s.bindings {
		if b.UserID == userID && b.SourceID == sourceID && contains(roleIDs, b.RoleID) {
			delete(m.s.bindings, id)
			n++
		}
	}
	return n, nil
}

func (m *memUserRoles) RoleTypes(ctx context.Context, roleIDs []string) (map[string]string, error) {
	out := map[string]string{}
	for _, id := range roleIDs {
		if typ, ok := m.s.roleTypes[id]; ok {
			out[id] = typ
		}
	}
	return out, nil
}

func (m *memUserRoles) ListWorkspaceIDsByUser(ctx context.Context, userID string) ([]string, error) {
	seen := map[string]bool{}
	var ids []string
	for _, b := range m.s.bindings {
		if b.UserID != userID || seen[b.SourceID] {
			continue
		}
		if _, ok := m.s.workspaces[b.SourceID]; !ok {
			continue
		}
		seen[b.SourceID] = true
		ids = append(ids, b.SourceID)
	}
	return ids, nil
}

type memUsers struct{ s *memState }

var errUserMissing = errors.New("user missing")

func (m *memUsers) GetByID(ctx context.Context, id string) (*userdomain.User, error) {
	u, ok := m.s.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (m *memUsers) Create(ctx context.Context, u *userdomain.User) error {
	if err := u.Validate(); err != nil {
		return err
	}
	m.s.users[u.ID] = *u
	return nil
}

func (m *memUsers) UpdateSelective(ctx context.Context, u *userdomain.User) error {
	cur, ok := m.s.users[u.ID]
	if !ok {
		return errUserMissing
	}
	if u.Name != "" {
		cur.Name = u.Name
	}
	if u.Email != "" {
		cur.Email = u.Email
	}
	if u.Phone != "" {
		cur.Phone = u.Phone
	}
	if u.UpdateTime != 0 {
		cur.UpdateTime = u.UpdateTime
	}
	m.s.users[u.ID] = cur
	return nil
}

// stepClock returns start, start+1, start+2, ... on successive calls.
func stepClock(start int64) Clock {
	var mu sync.Mutex
	next := start
	return func() int64 {
		mu.Lock()
		defer mu.Unlock()
		v := next
		next++
		return v
	}
}

// seqIDs returns prefix-1, prefix-2, ... on successive calls.
func seqIDs(prefix string) func() string {
	var mu sync.Mutex
	n := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return prefix + "-" + strconv.Itoa(n)
	}
}

type recordedEvent struct {
	OrgID, UserID, Action, Resource, Metadata string
}

type mockAuditLogger struct {
	events []recordedEvent
}

func (m *mockAuditLogger) LogEvent(ctx context.Context, orgID, userID, action, resource, metadata string) {
	m.events = append(m.events, recordedEvent{orgID, userID, action, resource, metadata})
}

type mockInvalidator struct {
	users []string
	err   error
}

func (m *mockInvalidator) Invalidate(ctx context.Context, userID string) error {
	m.users = append(m.users, userID)
	return m.err
}
