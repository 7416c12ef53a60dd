package domain

import "testing"

func TestUser_Validate(t *testing.T) {
	testCases := []struct {
		name    string
		user    User
		wantErr bool
	}{
		{"valid", User{ID: "u1", Email: "a@example.com"}, false},
		{"missing id", User{Email: "a@example.com"}, true},
		{"missing email", User{ID: "u1"}, true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			u := tc.user
			err := u.Validate()
			if (err != nil) != tc.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
			if err == nil && u.Status != UserStatusActive {
				t.Errorf("status = %q, want %q", u.Status, UserStatusActive)
			}
		})
	}
}
