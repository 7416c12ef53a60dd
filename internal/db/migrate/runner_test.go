package migrate

import (
	"strings"
	"testing"
)

func TestValidate(t *testing.T) {
	const dsn = "postgres://localhost/testplatform"
	testCases := []struct {
		name      string
		dsn       string
		direction string
		wantErr   string
	}{
		{"up", dsn, DirectionUp, ""},
		{"down", dsn, DirectionDown, ""},
		{"no dsn", "", DirectionUp, "DATABASE_URL is not set"},
		{"empty direction", dsn, "", "direction must be up or down"},
		{"upper case", dsn, "UP", "direction must be up or down"},
		{"unknown", dsn, "sideways", "direction must be up or down"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := validate(tc.dsn, tc.direction)
			if tc.wantErr == "" {
				if err != nil {
					t.Errorf("validate = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("validate = %v, want error containing %q", err, tc.wantErr)
			}
		})
	}
}

func TestRun_RejectsBeforeConnecting(t *testing.T) {
	if err := Run("", DirectionUp); err == nil {
		t.Error("Run with empty DSN should fail")
	}
	if err := Run("postgres://localhost/testplatform", "Down"); err == nil {
		t.Error("Run with bad direction should fail")
	}
}

func TestVersion_EmptyDSN(t *testing.T) {
	if _, _, err := Version(""); err == nil {
		t.Fatal("Version with empty DSN should return error")
	}
}

func TestNewMigrator_LoadsEmbeddedSource(t *testing.T) {
	// An unsupported scheme fails in the database driver, after the embedded source opened.
	_, err := newMigrator("nosuchdb://localhost")
	if err == nil {
		t.Fatal("newMigrator should fail for an unknown database scheme")
	}
	if strings.Contains(err.Error(), "migrate source") {
		t.Errorf("embedded source failed to open: %v", err)
	}
}
