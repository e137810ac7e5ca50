package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/agencyos/internal/db"
	"github.com/alexanderramin/agencyos/internal/domain"
)

// SQLiteWorkCardRepo implements WorkCardRepo using a SQLite database.
type SQLiteWorkCardRepo struct {
	db db.DBTX
}

func NewSQLiteWorkCardRepo(db db.DBTX) *SQLiteWorkCardRepo {
	return &SQLiteWorkCardRepo{db: db}
}

const workCardColumns = `id, workspace_id, project_id, category, type, title, status, revisions_allowed,
	inputs, deliverables, metrics, ai_summary, next_steps, team, suggested_actions,
	credits_used, created_at, updated_at`

// cardJSON holds the encoded map and list columns of a card.
type cardJSON struct {
	inputs, deliverables, metrics, nextSteps, team, suggested string
}

func encodeCard(c *domain.WorkCard) (cardJSON, error) {
	var j cardJSON
	var err error
	if j.inputs, err = toJSON(c.Inputs, "{}"); err != nil {
		return j, fmt.Errorf("encoding inputs: %w", err)
	}
	if j.deliverables, err = toJSON(c.Deliverables, "{}"); err != nil {
		return j, fmt.Errorf("encoding deliverables: %w", err)
	}
	if j.metrics, err = toJSON(c.Metrics, "{}"); err != nil {
		return j, fmt.Errorf("encoding metrics: %w", err)
	}
	if j.nextSteps, err = toJSON(c.NextSteps, "[]"); err != nil {
		return j, fmt.Errorf("encoding next steps: %w", err)
	}
	if j.team, err = toJSON(c.Team, "[]"); err != nil {
		return j, fmt.Errorf("encoding team: %w", err)
	}
	if j.suggested, err = toJSON(c.SuggestedActions, "[]"); err != nil {
		return j, fmt.Errorf("encoding suggested actions: %w", err)
	}
	return j, nil
}

func (r *SQLiteWorkCardRepo) Create(ctx context.Context, c *domain.WorkCard) error {
	j, err := encodeCard(c)
	if err != nil {
		return err
	}
	query := `INSERT INTO work_cards (` + workCardColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		c.ID, c.WorkspaceID, c.ProjectID,
		c.Category, c.Type, c.Title,
		string(c.Status), c.RevisionsAllowed,
		j.inputs, j.deliverables, j.metrics,
		c.AISummary, j.nextSteps, j.team, j.suggested,
		c.CreditsUsed,
		formatTime(c.CreatedAt), formatTime(c.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting work card: %w", err)
	}
	return nil
}

func (r *SQLiteWorkCardRepo) GetByID(ctx context.Context, id string) (*domain.WorkCard, error) {
	query := `SELECT ` + workCardColumns + ` FROM work_cards WHERE id = ?`
	c, err := scanWorkCard(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("work card %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return c, nil
}

func (r *SQLiteWorkCardRepo) ListByWorkspace(ctx context.Context, workspaceID string) ([]*domain.WorkCard, error) {
	query := `SELECT ` + workCardColumns + ` FROM work_cards WHERE workspace_id = ? ORDER BY rowid DESC`
	return r.list(ctx, query, workspaceID)
}

func (r *SQLiteWorkCardRepo) ListByProject(ctx context.Context, projectID string) ([]*domain.WorkCard, error) {
	query := `SELECT ` + workCardColumns + ` FROM work_cards WHERE project_id = ? ORDER BY rowid DESC`
	return r.list(ctx, query, projectID)
}

func (r *SQLiteWorkCardRepo) list(ctx context.Context, query string, args ...any) ([]*domain.WorkCard, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing work cards: %w", err)
	}
	defer rows.Close()

	var cards []*domain.WorkCard
	for rows.Next() {
		c, err := scanWorkCard(rows)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating work cards: %w", err)
	}
	return cards, nil
}

func (r *SQLiteWorkCardRepo) Update(ctx context.Context, c *domain.WorkCard) error {
	j, err := encodeCard(c)
	if err != nil {
		return err
	}
	query := `UPDATE work_cards SET project_id = ?, category = ?, type = ?, title = ?, status = ?,
		revisions_allowed = ?, inputs = ?, deliverables = ?, metrics = ?, ai_summary = ?,
		next_steps = ?, team = ?, suggested_actions = ?, credits_used = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		c.ProjectID, c.Category, c.Type, c.Title,
		string(c.Status), c.RevisionsAllowed,
		j.inputs, j.deliverables, j.metrics,
		c.AISummary, j.nextSteps, j.team, j.suggested,
		c.CreditsUsed, formatTime(c.UpdatedAt),
		c.ID,
	)
	if err != nil {
		return fmt.Errorf("updating work card: %w", err)
	}
	return checkAffected(res, "work card "+c.ID)
}

func scanWorkCard(s scanner) (*domain.WorkCard, error) {
	var c domain.WorkCard
	var status, createdAt, updatedAt string
	var j cardJSON

	err := s.Scan(
		&c.ID, &c.WorkspaceID, &c.ProjectID,
		&c.Category, &c.Type, &c.Title,
		&status, &c.RevisionsAllowed,
		&j.inputs, &j.deliverables, &j.metrics,
		&c.AISummary, &j.nextSteps, &j.team, &j.suggested,
		&c.CreditsUsed, &createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning work card: %w", err)
	}

	c.Status = domain.WorkCardStatus(status)
	for _, f := range []struct {
		column string
		raw    string
		dst    any
	}{
		{"inputs", j.inputs, &c.Inputs},
		{"deliverables", j.deliverables, &c.Deliverables},
		{"metrics", j.metrics, &c.Metrics},
		{"next_steps", j.nextSteps, &c.NextSteps},
		{"team", j.team, &c.Team},
		{"suggested_actions", j.suggested, &c.SuggestedActions},
	} {
		if err := fromJSON(f.column, f.raw, f.dst); err != nil {
			return nil, err
		}
	}
	if c.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
		return nil, err
	}
	if c.UpdatedAt, err = parseTime("updated_at", updatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}
