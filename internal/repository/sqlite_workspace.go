package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/agencyos/internal/db"
	"github.com/alexanderramin/agencyos/internal/domain"
)

// SQLiteWorkspaceRepo implements WorkspaceRepo using a SQLite database.
type SQLiteWorkspaceRepo struct {
	db db.DBTX
}

func NewSQLiteWorkspaceRepo(db db.DBTX) *SQLiteWorkspaceRepo {
	return &SQLiteWorkspaceRepo{db: db}
}

const workspaceColumns = `id, name, brand_name, website, tone, channels, credits, status, created_at, updated_at`

func (r *SQLiteWorkspaceRepo) Create(ctx context.Context, w *domain.Workspace) error {
	channels, err := toJSON(w.Channels, "[]")
	if err != nil {
		return fmt.Errorf("encoding channels: %w", err)
	}
	query := `INSERT INTO workspaces (` + workspaceColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		w.ID,
		w.Name,
		w.BrandName,
		w.Website,
		w.Tone,
		channels,
		w.Credits,
		string(w.Status),
		formatTime(w.CreatedAt),
		formatTime(w.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting workspace: %w", err)
	}
	return nil
}

func (r *SQLiteWorkspaceRepo) GetByID(ctx context.Context, id string) (*domain.Workspace, error) {
	query := `SELECT ` + workspaceColumns + ` FROM workspaces WHERE id = ?`
	w, err := scanWorkspace(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("workspace %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return w, nil
}

func (r *SQLiteWorkspaceRepo) List(ctx context.Context) ([]*domain.Workspace, error) {
	query := `SELECT ` + workspaceColumns + ` FROM workspaces ORDER BY rowid`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing workspaces: %w", err)
	}
	defer rows.Close()

	var out []*domain.Workspace
	for rows.Next() {
		w, err := scanWorkspace(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating workspaces: %w", err)
	}
	return out, nil
}

func (r *SQLiteWorkspaceRepo) Update(ctx context.Context, w *domain.Workspace) error {
	channels, err := toJSON(w.Channels, "[]")
	if err != nil {
		return fmt.Errorf("encoding channels: %w", err)
	}
	query := `UPDATE workspaces SET name = ?, brand_name = ?, website = ?, tone = ?, channels = ?,
		credits = ?, status = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		w.Name,
		w.BrandName,
		w.Website,
		w.Tone,
		channels,
		w.Credits,
		string(w.Status),
		formatTime(w.UpdatedAt),
		w.ID,
	)
	if err != nil {
		return fmt.Errorf("updating workspace: %w", err)
	}
	return checkAffected(res, "workspace "+w.ID)
}

func scanWorkspace(s scanner) (*domain.Workspace, error) {
	var w domain.Workspace
	var status, channels, createdAt, updatedAt string
	err := s.Scan(
		&w.ID, &w.Name, &w.BrandName, &w.Website, &w.Tone,
		&channels, &w.Credits, &status,
		&createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning workspace: %w", err)
	}
	w.Status = domain.WorkspaceStatus(status)
	if err := fromJSON("channels", channels, &w.Channels); err != nil {
		return nil, err
	}
	if w.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
		return nil, err
	}
	if w.UpdatedAt, err = parseTime("updated_at", updatedAt); err != nil {
		return nil, err
	}
	return &w, nil
}
