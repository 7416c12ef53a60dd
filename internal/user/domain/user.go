package domain

import (
	"errors"
	"strings"
)

// User is a platform account. Times are epoch milliseconds.
type User struct {
	ID                 string
	Name               string
	Email              string
	Phone              string
	Status             UserStatus
	Language           string
	LastWorkspaceID    string
	LastOrganizationID string
	CreateTime         int64
	UpdateTime         int64
}

type UserStatus string

const (
	UserStatusActive   UserStatus = "active"
	UserStatusDisabled UserStatus = "disabled"
)

// Validate validates the user for insertion. Returns an error describing the first validation failure.
func (u *User) Validate() error {
	if strings.TrimSpace(u.ID) == "" {
		return errors.New("id is required")
	}
	if strings.TrimSpace(u.Email) == "" {
		return errors.New("email is required")
	}
	if u.Status == "" {
		u.Status = UserStatusActive
	}
	return nil
}
