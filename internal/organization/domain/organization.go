package domain

import (
	"errors"
	"strings"
)

// Org is the top-level tenant boundary. Times are epoch milliseconds.
type Org struct {
	ID          string
	Name        string
	Description string
	CreateTime  int64
	UpdateTime  int64
}

// Validate validates the organization for persistence. Returns an error describing the first validation failure.
func (o *Org) Validate() error {
	if strings.TrimSpace(o.ID) == "" {
		return errors.New("id is required")
	}
	if strings.TrimSpace(o.Name) == "" {
		return errors.New("name is required")
	}
	return nil
}
