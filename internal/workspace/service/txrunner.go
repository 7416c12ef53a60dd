package service

import (
	"context"
	"database/sql"

	"testplatform/backend/internal/db"
	userrepo "testplatform/backend/internal/user/repository"
	userrolerepo "testplatform/backend/internal/userrole/repository"
	workspacerepo "testplatform/backend/internal/workspace/repository"
)

// StoreProvider exposes the repositories a workspace operation may touch, bound to one transaction.
type StoreProvider interface {
	Workspaces() workspacerepo.Repository
	UserRoles() userrolerepo.Repository
	Users() userrepo.Repository
}

// TxRunner runs functions within a transaction and provides stores bound to that transaction.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(stores StoreProvider) error) error
}

type dbTxRunner struct {
	db *sql.DB
}

// NewTxRunner builds a TxRunner backed by conn.
func NewTxRunner(conn *sql.DB) TxRunner {
	return &dbTxRunner{db: conn}
}

func (r *dbTxRunner) WithTx(ctx context.Context, fn func(stores StoreProvider) error) error {
	return db.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		return fn(&txStores{tx: tx})
	})
}

type txStores struct {
	tx *sql.Tx
}

func (s *txStores) Workspaces() workspacerepo.Repository {
	return workspacerepo.NewPostgresRepository(s.tx)
}

func (s *txStores) UserRoles() userrolerepo.Repository {
	return userrolerepo.NewPostgresRepository(s.tx)
}

func (s *txStores) Users() userrepo.Repository {
	return userrepo.NewPostgresRepository(s.tx)
}
