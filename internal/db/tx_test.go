package db

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

// recordingDriver is a database/sql driver that only records transaction outcomes.
type recordingDriver struct {
	mu        sync.Mutex
	commits   int
	rollbacks int
}

func (d *recordingDriver) Open(string) (driver.Conn, error) { return &recordingConn{d: d}, nil }

type recordingConn struct{ d *recordingDriver }

func (c *recordingConn) Prepare(string) (driver.Stmt, error) {
	return nil, errors.New("not supported")
}
func (c *recordingConn) Close() error              { return nil }
func (c *recordingConn) Begin() (driver.Tx, error) { return &recordingTx{d: c.d}, nil }

type recordingTx struct{ d *recordingDriver }

func (t *recordingTx) Commit() error {
	t.d.mu.Lock()
	defer t.d.mu.Unlock()
	t.d.commits++
	return nil
}

func (t *recordingTx) Rollback() error {
	t.d.mu.Lock()
	defer t.d.mu.Unlock()
	t.d.rollbacks++
	return nil
}

var driverSeq int

func openRecording(t *testing.T) (*sql.DB, *recordingDriver) {
	t.Helper()
	driverSeq++
	name := fmt.Sprintf("recording-%d", driverSeq)
	d := &recordingDriver{}
	sql.Register(name, d)
	conn, err := sql.Open(name, "")
	if err != nil {
		t.Fatalf("sql.Open: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn, d
}

func TestWithTx_CommitsOnSuccess(t *testing.T) {
	conn, d := openRecording(t)

	err := WithTx(context.Background(), conn, func(tx *sql.Tx) error { return nil })
	if err != nil {
		t.Fatalf("WithTx: %v", err)
	}
	if d.commits != 1 || d.rollbacks != 0 {
		t.Errorf("commits = %d, rollbacks = %d, want 1, 0", d.commits, d.rollbacks)
	}
}

func TestWithTx_RollsBackOnError(t *testing.T) {
	conn, d := openRecording(t)
	wantErr := errors.New("boom")

	err := WithTx(context.Background(), conn, func(tx *sql.Tx) error { return wantErr })
	if !errors.Is(err, wantErr) {
		t.Fatalf("WithTx error = %v, want %v", err, wantErr)
	}
	if d.commits != 0 || d.rollbacks != 1 {
		t.Errorf("commits = %d, rollbacks = %d, want 0, 1", d.commits, d.rollbacks)
	}
}

func TestWithTx_RollsBackOnPanic(t *testing.T) {
	conn, d := openRecording(t)

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic to propagate")
		}
		if d.rollbacks != 1 {
			t.Errorf("rollbacks = %d, want 1", d.rollbacks)
		}
	}()
	_ = WithTx(context.Background(), conn, func(tx *sql.Tx) error { panic("boom") })
}

func TestIsUniqueViolation(t *testing.T) {
	testCases := []struct {
		name string
		err  error
		want bool
	}{
		{"unique violation", &pgconn.PgError{Code: "23505"}, true},
		{"wrapped", fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"}), true},
		{"other pg error", &pgconn.PgError{Code: "23503"}, false},
		{"plain error", errors.New("x"), false},
		{"nil", nil, false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsUniqueViolation(tc.err); got != tc.want {
				t.Errorf("IsUniqueViolation = %v, want %v", got, tc.want)
			}
		})
	}
}
