package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ErrNestedTx is returned when WithinTx is called from inside a transaction
// of the same unit of work.
var ErrNestedTx = errors.New("nested transaction")

// UnitOfWork manages transactional boundaries. The callback receives a DBTX
// backed by a *sql.Tx; callers create tx-scoped repositories from it.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx DBTX) error) error
}

type useCaseKey struct{}

type activeTxKey struct{}

// WithUseCase names the use case that transactions started under ctx belong
// to. The name prefixes begin, commit and rollback failures.
func WithUseCase(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, useCaseKey{}, name)
}

// UseCase returns the name set by WithUseCase, or "unnamed use case".
func UseCase(ctx context.Context) string {
	if name, ok := ctx.Value(useCaseKey{}).(string); ok && name != "" {
		return name
	}
	return "unnamed use case"
}

// SQLiteUnitOfWork implements UnitOfWork using database/sql transactions.
type SQLiteUnitOfWork struct {
	db *sql.DB
}

func NewSQLiteUnitOfWork(db *sql.DB) *SQLiteUnitOfWork {
	return &SQLiteUnitOfWork{db: db}
}

// WithinTx commits when fn returns nil and rolls back on error or panic.
// fn must only touch the database through tx: an in-memory database has a
// single connection, which the transaction holds until it ends. A nested call
// would wait on that connection forever, so it fails with ErrNestedTx.
func (u *SQLiteUnitOfWork) WithinTx(ctx context.Context, fn func(ctx context.Context, tx DBTX) error) error {
	name := UseCase(ctx)
	if owner, _ := ctx.Value(activeTxKey{}).(*SQLiteUnitOfWork); owner == u {
		return fmt.Errorf("%s: %w", name, ErrNestedTx)
	}

	tx, err := u.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: beginning transaction: %w", name, err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(context.WithValue(ctx, activeTxKey{}, u), tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("%s: rollback failed: %v (original error: %w)", name, rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: committing transaction: %w", name, err)
	}
	return nil
}
