package interceptors

import (
	"context"
	"testing"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"testplatform/backend/internal/security"
)

const (
	publicMethod    = "/grpc.health.v1.Health/Check"
	protectedMethod = "/testplatform.workspace.v1.WorkspaceService/SaveWorkspace"
)

func withBearer(token string) context.Context {
	return metadata.NewIncomingContext(context.Background(), metadata.Pairs("authorization", "Bearer "+token))
}

func TestAuthUnary(t *testing.T) {
	tokens, err := security.NewTestTokenProvider()
	if err != nil {
		t.Fatalf("NewTestTokenProvider: %v", err)
	}
	valid, _, err := tokens.IssueAccess("session-1", "user-1", "org-1")
	if err != nil {
		t.Fatalf("IssueAccess: %v", err)
	}
	interceptor := AuthUnary(tokens, map[string]bool{publicMethod: true})

	testCases := []struct {
		name       string
		ctx        context.Context
		method     string
		wantCode   codes.Code
		wantUserID string
	}{
		{"public without token", context.Background(), publicMethod, codes.OK, ""},
		{"public with bad token", withBearer("garbage"), publicMethod, codes.OK, ""},
		{"public with valid token", withBearer(valid), publicMethod, codes.OK, "user-1"},
		{"protected without token", context.Background(), protectedMethod, codes.Unauthenticated, ""},
		{"protected with bad token", withBearer("garbage"), protectedMethod, codes.Unauthenticated, ""},
		{"protected with valid token", withBearer(valid), protectedMethod, codes.OK, "user-1"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var gotUser, gotOrg, gotSession string
			handler := func(ctx context.Context, req interface{}) (interface{}, error) {
				gotUser, _ = GetUserID(ctx)
				gotOrg, _ = GetOrgID(ctx)
				gotSession, _ = GetSessionID(ctx)
				return "ok", nil
			}
			_, err := interceptor(tc.ctx, "req", &grpc.UnaryServerInfo{FullMethod: tc.method}, handler)
			if code := status.Code(err); code != tc.wantCode {
				t.Fatalf("code = %v, want %v", code, tc.wantCode)
			}
			if gotUser != tc.wantUserID {
				t.Errorf("user_id = %q, want %q", gotUser, tc.wantUserID)
			}
			if tc.wantUserID != "" && (gotOrg != "org-1" || gotSession != "session-1") {
				t.Errorf("org/session = %q/%q", gotOrg, gotSession)
			}
		})
	}
}

type staticValidator struct {
	sessionID, userID, orgID string
}

func (v staticValidator) ValidateAccess(string) (string, string, string, error) {
	return v.sessionID, v.userID, v.orgID, nil
}

func TestAuthUnary_RejectionReason(t *testing.T) {
	tokens, err := security.NewTestTokenProvider()
	if err != nil {
		t.Fatalf("NewTestTokenProvider: %v", err)
	}
	noop := func(ctx context.Context, req interface{}) (interface{}, error) { return "ok", nil }
	info := &grpc.UnaryServerInfo{FullMethod: protectedMethod}

	testCases := []struct {
		name      string
		validator AccessValidator
		ctx       context.Context
		want      string
	}{
		{"missing", tokens, context.Background(), "missing bearer token"},
		{"wrong scheme", tokens, metadata.NewIncomingContext(context.Background(), metadata.Pairs("authorization", "Basic abc")), "missing bearer token"},
		{"garbage", tokens, withBearer("garbage"), "invalid access token"},
		{"no subject", staticValidator{sessionID: "s", orgID: "o"}, withBearer("t"), "invalid access token"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := AuthUnary(tc.validator, nil)(tc.ctx, "req", info, noop)
			st, _ := status.FromError(err)
			if st.Code() != codes.Unauthenticated || st.Message() != tc.want {
				t.Errorf("status = %v %q, want Unauthenticated %q", st.Code(), st.Message(), tc.want)
			}
		})
	}
}

func TestExtractBearer(t *testing.T) {
	testCases := []struct {
		name string
		ctx  context.Context
		want string
	}{
		{"no metadata", context.Background(), ""},
		{"missing header", metadata.NewIncomingContext(context.Background(), metadata.Pairs("x", "y")), ""},
		{"valid", metadata.NewIncomingContext(context.Background(), metadata.Pairs("authorization", "Bearer abc")), "abc"},
		{"case insensitive", metadata.NewIncomingContext(context.Background(), metadata.Pairs("authorization", "BEARER abc")), "abc"},
		{"whitespace", metadata.NewIncomingContext(context.Background(), metadata.Pairs("authorization", "  Bearer   abc  ")), "abc"},
		{"basic scheme", metadata.NewIncomingContext(context.Background(), metadata.Pairs("authorization", "Basic abc")), ""},
		{"too short", metadata.NewIncomingContext(context.Background(), metadata.Pairs("authorization", "Bear")), ""},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := extractBearer(tc.ctx); got != tc.want {
				t.Errorf("extractBearer = %q, want %q", got, tc.want)
			}
		})
	}
}
