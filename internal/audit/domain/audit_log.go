package domain

import (
	"errors"
	"time"
)

const (
	// SystemOrgID stands in for org_id on events raised outside any organization.
	SystemOrgID = "_system"
	// UnknownIP is recorded when the client address cannot be determined.
	UnknownIP = "unknown"
)

// Column widths of audit_logs.
const (
	maxActionLen   = 64
	maxResourceLen = 64
	maxIPLen       = 64
)

// AuditLog is one persisted record of a mutating call against workspace data.
// Metadata holds a JSON document (rpc method, status code) or is empty.
type AuditLog struct {
	ID        string
	OrgID     string
	UserID    string
	Action    string
	Resource  string
	IP        string
	Metadata  string
	CreatedAt time.Time
}

// Validate reports whether the entry can be written to audit_logs.
func (a *AuditLog) Validate() error {
	switch {
	case a.ID == "":
		return errors.New("audit log: id is required")
	case a.OrgID == "":
		return errors.New("audit log: org id is required")
	case a.Action == "" || len(a.Action) > maxActionLen:
		return errors.New("audit log: action is empty or too long")
	case a.Resource == "" || len(a.Resource) > maxResourceLen:
		return errors.New("audit log: resource is empty or too long")
	case len(a.IP) > maxIPLen:
		return errors.New("audit log: ip is too long")
	case a.CreatedAt.IsZero():
		return errors.New("audit log: created_at is required")
	}
	return nil
}
