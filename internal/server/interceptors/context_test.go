package interceptors

import (
	"context"
	"testing"
)

func TestIdentity_RoundTrip(t *testing.T) {
	testCases := []struct {
		name                      string
		ctx                       context.Context
		wantUser, wantOrg, wantSn string
		wantOK                    bool
	}{
		{"unset", context.Background(), "", "", "", false},
		{"set", WithIdentity(context.Background(), "user-1", "org-1", "session-1"), "user-1", "org-1", "session-1", true},
		{"empty values are still set", WithIdentity(context.Background(), "", "", ""), "", "", "", true},
		{
			"last identity wins",
			WithIdentity(WithIdentity(context.Background(), "user-1", "org-1", "session-1"), "user-2", "org-2", "session-2"),
			"user-2", "org-2", "session-2", true,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			userID, okUser := GetUserID(tc.ctx)
			orgID, okOrg := GetOrgID(tc.ctx)
			sessionID, okSession := GetSessionID(tc.ctx)
			if okUser != tc.wantOK || okOrg != tc.wantOK || okSession != tc.wantOK {
				t.Errorf("ok = %v/%v/%v, want %v", okUser, okOrg, okSession, tc.wantOK)
			}
			if userID != tc.wantUser {
				t.Errorf("user_id = %q, want %q", userID, tc.wantUser)
			}
			if orgID != tc.wantOrg {
				t.Errorf("org_id = %q, want %q", orgID, tc.wantOrg)
			}
			if sessionID != tc.wantSn {
				t.Errorf("session_id = %q, want %q", sessionID, tc.wantSn)
			}
		})
	}
}

func TestLocale_RoundTrip(t *testing.T) {
	if got := GetLocale(context.Background()); got != "" {
		t.Errorf("locale = %q, want empty", got)
	}
	ctx := WithLocale(WithIdentity(context.Background(), "user-1", "org-1", "s"), "zh-CN")
	if got := GetLocale(ctx); got != "zh-CN" {
		t.Errorf("locale = %q, want %q", got, "zh-CN")
	}
	if userID, _ := GetUserID(ctx); userID != "user-1" {
		t.Errorf("user_id = %q, want identity preserved", userID)
	}
}
