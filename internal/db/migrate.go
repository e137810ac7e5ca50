package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Statements are idempotent and re-run on
// every open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// ALTER TABLE ADD COLUMN has no IF NOT EXISTS form.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS workspaces (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL,
		brand_name  TEXT NOT NULL,
		website     TEXT NOT NULL DEFAULT '',
		channels    TEXT NOT NULL DEFAULT '[]',
		credits     INTEGER NOT NULL DEFAULT 0,
		status      TEXT NOT NULL DEFAULT 'active'
		            CHECK(status IN ('active','paused')),
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS ledger_entries (
		id            TEXT PRIMARY KEY,
		workspace_id  TEXT NOT NULL REFERENCES workspaces(id) ON DELETE CASCADE,
		action        TEXT NOT NULL
		              CHECK(action IN ('NEW_REQUEST','REVISION','RUSH_DELIVERY','EXTRA_DELIVERABLE','STRATEGY_CALL','TOP_UP')),
		kind          TEXT NOT NULL CHECK(kind IN ('debit','credit')),
		amount        INTEGER NOT NULL CHECK(amount >= 0),
		balance_after INTEGER NOT NULL,
		created_at    TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_ledger_workspace ON ledger_entries(workspace_id)`,

	`CREATE TABLE IF NOT EXISTS projects (
		id                TEXT PRIMARY KEY,
		workspace_id      TEXT NOT NULL REFERENCES workspaces(id) ON DELETE CASCADE,
		name              TEXT NOT NULL,
		type              TEXT NOT NULL CHECK(type IN ('campaign','retainer','one_off')),
		status            TEXT NOT NULL DEFAULT 'planning'
		                  CHECK(status IN ('planning','active','completed','paused')),
		review_preference TEXT,
		target_date       TEXT,
		included_services TEXT NOT NULL DEFAULT '[]',
		created_at        TEXT NOT NULL,
		updated_at        TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_projects_workspace ON projects(workspace_id)`,

	// project_id is deliberately not a foreign key: cards outlive project
	// replacement during onboarding.
	`CREATE TABLE IF NOT EXISTS work_cards (
		id                TEXT PRIMARY KEY,
		workspace_id      TEXT NOT NULL REFERENCES workspaces(id) ON DELETE CASCADE,
		project_id        TEXT NOT NULL DEFAULT '',
		category          TEXT NOT NULL,
		type              TEXT NOT NULL,
		title             TEXT NOT NULL,
		status            TEXT NOT NULL DEFAULT 'draft'
		                  CHECK(status IN ('draft','submitted','clarifying','staged','in_progress',
		                                   'in_production','scripting','filming','editing','qa',
		                                   'review','delivered','distribution','completed','archived')),
		revisions_allowed INTEGER NOT NULL DEFAULT 0,
		inputs            TEXT NOT NULL DEFAULT '{}',
		deliverables      TEXT NOT NULL DEFAULT '{}',
		metrics           TEXT NOT NULL DEFAULT '{}',
		ai_summary        TEXT NOT NULL DEFAULT '',
		next_steps        TEXT NOT NULL DEFAULT '[]',
		team              TEXT NOT NULL DEFAULT '[]',
		suggested_actions TEXT NOT NULL DEFAULT '[]',
		credits_used      INTEGER NOT NULL DEFAULT 0,
		created_at        TEXT NOT NULL,
		updated_at        TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_work_cards_workspace ON work_cards(workspace_id)`,
	`CREATE INDEX IF NOT EXISTS idx_work_cards_project ON work_cards(project_id)`,

	`CREATE TABLE IF NOT EXISTS tickets (
		id           TEXT PRIMARY KEY,
		workspace_id TEXT NOT NULL REFERENCES workspaces(id) ON DELETE CASCADE,
		work_card_id TEXT,
		title        TEXT NOT NULL,
		type         TEXT NOT NULL
		             CHECK(type IN ('clarification','revision','issue','request','announcement')),
		status       TEXT NOT NULL DEFAULT 'open'
		             CHECK(status IN ('open','in_progress','waiting_on_client','resolved','closed')),
		priority     TEXT NOT NULL DEFAULT 'normal'
		             CHECK(priority IN ('low','normal','high','urgent')),
		created_at   TEXT NOT NULL,
		updated_at   TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_tickets_workspace ON tickets(workspace_id)`,
	`CREATE INDEX IF NOT EXISTS idx_tickets_work_card ON tickets(work_card_id)`,

	`CREATE TABLE IF NOT EXISTS ticket_messages (
		id          TEXT PRIMARY KEY,
		ticket_id   TEXT NOT NULL REFERENCES tickets(id) ON DELETE CASCADE,
		seq         INTEGER NOT NULL CHECK(seq > 0),
		sender_id   TEXT NOT NULL,
		sender_type TEXT NOT NULL CHECK(sender_type IN ('user','agent','ai')),
		text        TEXT NOT NULL,
		created_at  TEXT NOT NULL,
		UNIQUE (ticket_id, seq)
	)`,

	// v2: brand voice captured during onboarding
	`ALTER TABLE workspaces ADD COLUMN tone TEXT NOT NULL DEFAULT ''`,
}
