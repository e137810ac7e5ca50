package db

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(MemoryDSN)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))
}

func TestMigrate_CreatesAllTables(t *testing.T) {
	db := openTestDB(t)

	expected := []string{"workspaces", "ledger_entries", "projects", "work_cards", "tickets", "ticket_messages"}
	for _, table := range expected {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestMigrate_CreatesIndexes(t *testing.T) {
	db := openTestDB(t)

	expected := []string{
		"idx_ledger_workspace",
		"idx_projects_workspace",
		"idx_work_cards_workspace",
		"idx_work_cards_project",
		"idx_tickets_workspace",
		"idx_tickets_work_card",
	}
	for _, idx := range expected {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='index' AND name=?`, idx).Scan(&name)
		require.NoError(t, err, "index %s should exist", idx)
	}
}

func TestMigrate_AddsToneColumn(t *testing.T) {
	db := openTestDB(t)

	rows, err := db.Query(`PRAGMA table_info(workspaces)`)
	require.NoError(t, err)
	defer rows.Close()

	found := false
	for rows.Next() {
		var (
			cid     int
			name    string
			ctype   string
			notnull int
			dflt    sql.NullString
			pk      int
		)
		require.NoError(t, rows.Scan(&cid, &name, &ctype, &notnull, &dflt, &pk))
		if name == "tone" {
			found = true
		}
	}
	require.NoError(t, rows.Err())
	assert.True(t, found, "tone column should exist")
}

func TestMigrate_StatusCheckConstraint(t *testing.T) {
	db := openTestDB(t)
	now := time.Now().UTC().Format(time.RFC3339)

	_, err := db.Exec(`INSERT INTO workspaces (id, name, brand_name, status, created_at, updated_at)
		VALUES ('ws-1', 'Acme', 'Acme', 'frozen', ?, ?)`, now, now)
	assert.Error(t, err, "unknown workspace status should violate CHECK")
}

func TestMigrate_LedgerRejectsNegativeAmount(t *testing.T) {
	db := openTestDB(t)
	now := time.Now().UTC().Format(time.RFC3339)

	_, err := db.Exec(`INSERT INTO workspaces (id, name, brand_name, created_at, updated_at)
		VALUES ('ws-1', 'Acme', 'Acme', ?, ?)`, now, now)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO ledger_entries (id, workspace_id, action, kind, amount, balance_after, created_at)
		VALUES ('e-1', 'ws-1', 'REVISION', 'debit', -5, 0, ?)`, now)
	assert.Error(t, err)
}

func TestMigrate_ForeignKeysEnforced(t *testing.T) {
	db := openTestDB(t)
	now := time.Now().UTC().Format(time.RFC3339)

	_, err := db.Exec(`INSERT INTO tickets (id, workspace_id, title, type, created_at, updated_at)
		VALUES ('t-1', 'missing', 'Hi', 'issue', ?, ?)`, now, now)
	assert.Error(t, err, "ticket for unknown workspace should violate FK")
}

func TestOpenDB_FileCreatesDirectoryAndUsesWAL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "agencyos.db")
	db, err := OpenDB(path)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	var mode string
	require.NoError(t, db.QueryRow(`PRAGMA journal_mode`).Scan(&mode))
	assert.Equal(t, "wal", mode)

	var fk int
	require.NoError(t, db.QueryRow(`PRAGMA foreign_keys`).Scan(&fk))
	assert.Equal(t, 1, fk)
}
