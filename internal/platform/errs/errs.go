// Package errs defines the error kinds raised by workspace operations. Each error carries a
// translation key; the transport layer turns the key into a localized message and a status code.
package errs

import "errors"

// Kind classifies a failure so callers can map it to a protocol response.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindConflict
	KindNotFound
	KindForbidden
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindNotFound:
		return "not_found"
	case KindForbidden:
		return "forbidden"
	default:
		return "unknown"
	}
}

// Translation keys used by the workspace service.
const (
	KeyWorkspaceNameIsNull         = "workspace_name_is_null"
	KeyWorkspaceNameAlreadyExists  = "workspace_name_already_exists"
	KeyWorkspaceNotExist           = "workspace_not_exist"
	KeyWorkspaceNotBelongToUser    = "workspace_does_not_belong_to_user"
	KeyOrganizationIDIsNull        = "organization_id_is_null"
	KeyOrganizationNotBelongToUser = "organization_does_not_belong_to_user"
	KeyUserIsNotAdmin              = "user_is_not_admin"
	KeyWorkspaceIDIsNull           = "workspace_id_is_null"
	KeyUserIDIsNull                = "user_id_is_null"
	KeyRoleNotAssignable           = "role_not_assignable_to_workspace"
)

// Error is a classified failure with a translation key.
type Error struct {
	Kind Kind
	Key  string
}

func (e *Error) Error() string {
	if e.Key == "" {
		return e.Kind.String()
	}
	return e.Kind.String() + ": " + e.Key
}

// Is reports whether target is an *Error of the same kind. A target with a key must also match the key.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Kind != e.Kind {
		return false
	}
	return t.Key == "" || t.Key == e.Key
}

// Sentinels for errors.Is checks by kind.
var (
	ErrValidation = &Error{Kind: KindValidation}
	ErrConflict   = &Error{Kind: KindConflict}
	ErrNotFound   = &Error{Kind: KindNotFound}
	ErrForbidden  = &Error{Kind: KindForbidden}
)

func Validation(key string) *Error { return &Error{Kind: KindValidation, Key: key} }

func Conflict(key string) *Error { return &Error{Kind: KindConflict, Key: key} }

func NotFound(key string) *Error { return &Error{Kind: KindNotFound, Key: key} }

func Forbidden(key string) *Error { return &Error{Kind: KindForbidden, Key: key} }

// As returns the *Error in err's chain, if any.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
