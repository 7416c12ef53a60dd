package audit

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"testplatform/backend/internal/audit/domain"
)

type mockAuditRepo struct {
	entries   []*domain.AuditLog
	ctxErrs   []error
	createErr error
}

func (m *mockAuditRepo) Create(ctx context.Context, entry *domain.AuditLog) error {
	m.ctxErrs = append(m.ctxErrs, ctx.Err())
	if m.createErr != nil {
		return m.createErr
	}
	m.entries = append(m.entries, entry)
	return nil
}

var fixedNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestLogger(repo *mockAuditRepo, ip IPExtractor) *Logger {
	return NewLogger(repo, ip,
		WithClock(func() time.Time { return fixedNow }),
		WithIDGenerator(func() string { return "audit-1" }))
}

func TestLogger_LogEvent(t *testing.T) {
	staticIP := func(ip string) IPExtractor {
		return func(context.Context) string { return ip }
	}
	tests := []struct {
		name    string
		ip      IPExtractor
		orgID   string
		wantOrg string
		wantIP  string
	}{
		{"org and ip", staticIP("192.168.1.1"), "org-1", "org-1", "192.168.1.1"},
		{"nil extractor", nil, "org-1", "org-1", domain.UnknownIP},
		{"extractor returns empty", staticIP(""), "org-1", "org-1", domain.UnknownIP},
		{"no org", staticIP("10.0.0.1"), "", SentinelOrgID, "10.0.0.1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockAuditRepo{}
			newTestLogger(repo, tt.ip).LogEvent(context.Background(), tt.orgID, "user-1", "member_updated", "workspace_member", `{"rpc_method":"m"}`)

			if len(repo.entries) != 1 {
				t.Fatalf("entries = %d, want 1", len(repo.entries))
			}
			got := repo.entries[0]
			want := domain.AuditLog{
				ID:        "audit-1",
				OrgID:     tt.wantOrg,
				UserID:    "user-1",
				Action:    "member_updated",
				Resource:  "workspace_member",
				IP:        tt.wantIP,
				Metadata:  `{"rpc_method":"m"}`,
				CreatedAt: fixedNow,
			}
			if *got != want {
				t.Errorf("entry = %+v, want %+v", *got, want)
			}
		})
	}
}

func TestLogger_LogEvent_DefaultIDAndClock(t *testing.T) {
	repo := &mockAuditRepo{}
	NewLogger(repo, nil).LogEvent(context.Background(), "org-1", "", "delete", "workspace", "")

	if len(repo.entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(repo.entries))
	}
	entry := repo.entries[0]
	if len(entry.ID) != 36 {
		t.Errorf("id = %q, want a uuid", entry.ID)
	}
	if entry.CreatedAt.Location() != time.UTC {
		t.Errorf("created_at location = %v, want UTC", entry.CreatedAt.Location())
	}
}

func TestLogger_LogEvent_SurvivesCanceledContext(t *testing.T) {
	repo := &mockAuditRepo{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	newTestLogger(repo, nil).LogEvent(ctx, "org-1", "user-1", "save", "workspace", "")

	if len(repo.entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(repo.entries))
	}
	if repo.ctxErrs[0] != nil {
		t.Errorf("write ctx err = %v, want nil", repo.ctxErrs[0])
	}
}

func TestLogger_LogEvent_DropsInvalid(t *testing.T) {
	tests := []struct {
		name     string
		action   string
		resource string
	}{
		{"empty action", "", "workspace"},
		{"empty resource", "save", ""},
		{"long action", strings.Repeat("a", 65), "workspace"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockAuditRepo{}
			newTestLogger(repo, nil).LogEvent(context.Background(), "org-1", "user-1", tt.action, tt.resource, "")
			if len(repo.ctxErrs) != 0 {
				t.Errorf("Create called %d times, want 0", len(repo.ctxErrs))
			}
		})
	}
}

func TestLogger_LogEvent_BestEffort(t *testing.T) {
	repo := &mockAuditRepo{createErr: errors.New("database error")}
	newTestLogger(repo, nil).LogEvent(context.Background(), "org-1", "user-1", "delete", "workspace", "")
	if len(repo.ctxErrs) != 1 {
		t.Errorf("Create called %d times, want 1", len(repo.ctxErrs))
	}

	var nilLogger *Logger
	nilLogger.LogEvent(context.Background(), "org-1", "user-1", "delete", "workspace", "")
	NewLogger(nil, nil).LogEvent(context.Background(), "org-1", "user-1", "delete", "workspace", "")
}
