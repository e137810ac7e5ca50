package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/agencyos/internal/db"
	"github.com/alexanderramin/agencyos/internal/domain"
)

// SQLiteLedgerRepo implements LedgerRepo using a SQLite database.
type SQLiteLedgerRepo struct {
	db db.DBTX
}

func NewSQLiteLedgerRepo(db db.DBTX) *SQLiteLedgerRepo {
	return &SQLiteLedgerRepo{db: db}
}

func (r *SQLiteLedgerRepo) Append(ctx context.Context, e *domain.LedgerEntry) error {
	query := `INSERT INTO ledger_entries (id, workspace_id, action, kind, amount, balance_after, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		e.ID,
		e.WorkspaceID,
		string(e.Action),
		string(e.Kind),
		e.Amount,
		e.BalanceAfter,
		formatTime(e.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("appending ledger entry: %w", err)
	}
	return nil
}

func (r *SQLiteLedgerRepo) ListByWorkspace(ctx context.Context, workspaceID string, limit int) ([]*domain.LedgerEntry, error) {
	query := `SELECT id, workspace_id, action, kind, amount, balance_after, created_at
		FROM ledger_entries WHERE workspace_id = ? ORDER BY rowid DESC`
	args := []any{workspaceID}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing ledger entries: %w", err)
	}
	defer rows.Close()

	var out []*domain.LedgerEntry
	for rows.Next() {
		var e domain.LedgerEntry
		var action, kind, createdAt string
		if err := rows.Scan(&e.ID, &e.WorkspaceID, &action, &kind, &e.Amount, &e.BalanceAfter, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning ledger entry: %w", err)
		}
		e.Action = domain.CreditAction(action)
		e.Kind = domain.LedgerKind(kind)
		if e.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
			return nil, err
		}
		out = append(out, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating ledger entries: %w", err)
	}
	return out, nil
}
