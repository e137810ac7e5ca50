package testutil

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/alexanderramin/agencyos/internal/db"
)

// ErrInjected is returned by FailOnNthExecUoW when Err is nil.
var ErrInjected = errors.New("injected write failure")

// FailOnNthExecUoW runs transactions like the real unit of work but fails the
// FailOn-th write (1-based). Reads are never counted. Every write attempted in
// the last transaction, including the failing one, is kept for inspection.
type FailOnNthExecUoW struct {
	DB     *sql.DB
	FailOn int
	Err    error

	mu     sync.Mutex
	writes []string
}

func (u *FailOnNthExecUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) (err error) {
	tx, err := u.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	u.mu.Lock()
	u.writes = nil
	u.mu.Unlock()

	if err := fn(ctx, &countingTx{DBTX: tx, uow: u}); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// Writes returns the first word and table of each write seen in the last
// transaction, e.g. "UPDATE workspaces".
func (u *FailOnNthExecUoW) Writes() []string {
	u.mu.Lock()
	defer u.mu.Unlock()
	return append([]string(nil), u.writes...)
}

func (u *FailOnNthExecUoW) record(query string) int {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.writes = append(u.writes, statementTarget(query))
	return len(u.writes)
}

type countingTx struct {
	db.DBTX
	uow *FailOnNthExecUoW
}

func (c *countingTx) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if n := c.uow.record(query); n == c.uow.FailOn {
		if c.uow.Err != nil {
			return nil, c.uow.Err
		}
		return nil, ErrInjected
	}
	return c.DBTX.ExecContext(ctx, query, args...)
}

// statementTarget reduces "INSERT INTO work_cards (...)" to "INSERT work_cards".
func statementTarget(query string) string {
	fields := strings.Fields(query)
	if len(fields) == 0 {
		return ""
	}
	verb := strings.ToUpper(fields[0])
	for _, f := range fields[1:] {
		switch strings.ToUpper(f) {
		case "INTO", "FROM", "OR", "REPLACE", "IGNORE":
			continue
		}
		return verb + " " + strings.TrimSuffix(f, "(")
	}
	return verb
}
