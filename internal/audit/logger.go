package audit

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"testplatform/backend/internal/audit/domain"
	auditrepo "testplatform/backend/internal/audit/repository"
)

// SentinelOrgID is the org_id used for audit events that have no org.
const SentinelOrgID = domain.SystemOrgID

const writeTimeout = 3 * time.Second

// IPExtractor returns the client IP from the request context (e.g. gRPC metadata or peer).
type IPExtractor func(context.Context) string

// AuditLogger records one mutation against workspace data. Implementations must not fail the caller.
type AuditLogger interface {
	LogEvent(ctx context.Context, orgID, userID, action, resource, metadata string)
}

// Option configures a Logger.
type Option func(*Logger)

// WithClock overrides the time source for CreatedAt.
func WithClock(now func() time.Time) Option {
	return func(l *Logger) { l.now = now }
}

// WithIDGenerator overrides how entry IDs are produced.
func WithIDGenerator(newID func() string) Option {
	return func(l *Logger) { l.newID = newID }
}

// Logger persists audit entries through an audit repository.
type Logger struct {
	repo        auditrepo.Repository
	ipExtractor IPExtractor
	now         func() time.Time
	newID       func() string
}

// NewLogger returns a Logger writing to repo. A nil ipExtractor records every IP as domain.UnknownIP.
func NewLogger(repo auditrepo.Repository, ipExtractor IPExtractor, opts ...Option) *Logger {
	l := &Logger{
		repo:        repo,
		ipExtractor: ipExtractor,
		now:         func() time.Time { return time.Now().UTC() },
		newID:       uuid.NewString,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// LogEvent builds and stores one entry. The write outlives cancellation of ctx so that
// calls aborted by the client after the mutation still leave a record.
func (l *Logger) LogEvent(ctx context.Context, orgID, userID, action, resource, metadata string) {
	if l == nil || l.repo == nil {
		return
	}
	entry := l.entry(ctx, orgID, userID, action, resource, metadata)
	if err := entry.Validate(); err != nil {
		slog.WarnContext(ctx, "audit: dropping invalid entry", slog.String("action", action), slog.Any("error", err))
		return
	}
	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), writeTimeout)
	defer cancel()
	if err := l.repo.Create(writeCtx, entry); err != nil {
		slog.WarnContext(ctx, "audit: failed to log event",
			slog.String("org_id", entry.OrgID),
			slog.String("action", action),
			slog.String("resource", resource),
			slog.Any("error", err))
	}
}

func (l *Logger) entry(ctx context.Context, orgID, userID, action, resource, metadata string) *domain.AuditLog {
	ip := domain.UnknownIP
	if l.ipExtractor != nil {
		if got := l.ipExtractor(ctx); got != "" {
			ip = got
		}
	}
	if orgID == "" {
		orgID = SentinelOrgID
	}
	return &domain.AuditLog{
		ID:        l.newID(),
		OrgID:     orgID,
		UserID:    userID,
		Action:    action,
		Resource:  resource,
		IP:        ip,
		Metadata:  metadata,
		CreatedAt: l.now(),
	}
}
