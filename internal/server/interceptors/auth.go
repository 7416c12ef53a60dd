package interceptors

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

const bearerPrefix = "bearer "

var (
	errMissingToken = errors.New("missing bearer token")
	errInvalidToken = errors.New("invalid access token")
)

// AccessValidator validates an access token and returns the identity it carries.
// *security.TokenProvider implements it.
type AccessValidator interface {
	ValidateAccess(token string) (sessionID, userID, orgID string, err error)
}

// AuthUnary puts the caller identity from the Bearer access token into the context.
// Methods in publicMethods never fail authentication but still receive the identity when the token is good.
func AuthUnary(tokens AccessValidator, publicMethods map[string]bool) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		authed, err := authenticate(ctx, tokens)
		if err == nil {
			return handler(authed, req)
		}
		if publicMethods[info.FullMethod] {
			return handler(ctx, req)
		}
		slog.DebugContext(ctx, "rejecting unauthenticated call", "method", info.FullMethod, "reason", err)
		return nil, status.Error(codes.Unauthenticated, err.Error())
	}
}

func authenticate(ctx context.Context, tokens AccessValidator) (context.Context, error) {
	token := extractBearer(ctx)
	if token == "" {
		return nil, errMissingToken
	}
	sessionID, userID, orgID, err := tokens.ValidateAccess(token)
	if err != nil || userID == "" {
		return nil, errInvalidToken
	}
	return WithIdentity(ctx, userID, orgID, sessionID), nil
}

// extractBearer returns the token of a case-insensitive "Bearer" authorization header, or "".
func extractBearer(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	vals := md.Get("authorization")
	if len(vals) == 0 {
		return ""
	}
	v := strings.TrimSpace(vals[0])
	if len(v) < len(bearerPrefix) || !strings.EqualFold(v[:len(bearerPrefix)], bearerPrefix) {
		return ""
	}
	return strings.TrimSpace(v[len(bearerPrefix):])
}
