package interceptors

import "context"

type contextKey struct{ name string }

var (
	userIDKey    = contextKey{"user_id"}
	orgIDKey     = contextKey{"org_id"}
	sessionIDKey = contextKey{"session_id"}
	localeKey    = contextKey{"locale"}
)

// WithIdentity returns a context carrying the authenticated caller's user, current organization and session.
// The session resolver reads them back through GetUserID, GetOrgID and GetSessionID.
func WithIdentity(ctx context.Context, userID, orgID, sessionID string) context.Context {
	ctx = context.WithValue(ctx, userIDKey, userID)
	ctx = context.WithValue(ctx, orgIDKey, orgID)
	return context.WithValue(ctx, sessionIDKey, sessionID)
}

func GetUserID(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(userIDKey).(string)
	return v, ok
}

// GetOrgID returns the caller's current organization, which scopes every workspace it creates.
func GetOrgID(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(orgIDKey).(string)
	return v, ok
}

func GetSessionID(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(sessionIDKey).(string)
	return v, ok
}

// WithLocale returns a context carrying the caller's requested locale (an Accept-Language value).
func WithLocale(ctx context.Context, locale string) context.Context {
	return context.WithValue(ctx, localeKey, locale)
}

// GetLocale returns the locale from context, or "" if none was requested.
func GetLocale(ctx context.Context) string {
	v, _ := ctx.Value(localeKey).(string)
	return v
}
