package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/agencyos/internal/db"
	"github.com/alexanderramin/agencyos/internal/domain"
)

// SQLiteProjectRepo implements ProjectRepo using a SQLite database.
type SQLiteProjectRepo struct {
	db db.DBTX
}

// NewSQLiteProjectRepo creates a new SQLiteProjectRepo.
func NewSQLiteProjectRepo(db db.DBTX) *SQLiteProjectRepo {
	return &SQLiteProjectRepo{db: db}
}

const projectColumns = `id, workspace_id, name, type, status, review_preference, target_date,
	included_services, created_at, updated_at`

func (r *SQLiteProjectRepo) Create(ctx context.Context, p *domain.Project) error {
	services, err := toJSON(p.IncludedServices, "[]")
	if err != nil {
		return fmt.Errorf("encoding included services: %w", err)
	}
	query := `INSERT INTO projects (` + projectColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		p.ID,
		p.WorkspaceID,
		p.Name,
		string(p.Type),
		string(p.Status),
		nullableString(p.ReviewPreference),
		nullableTimeToString(p.TargetDate, dateLayout),
		services,
		formatTime(p.CreatedAt),
		formatTime(p.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting project: %w", err)
	}
	return nil
}

func (r *SQLiteProjectRepo) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = ?`
	p, err := scanProject(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("project %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return p, nil
}

func (r *SQLiteProjectRepo) ListByWorkspace(ctx context.Context, workspaceID string) ([]*domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE workspace_id = ? ORDER BY rowid`
	rows, err := r.db.QueryContext(ctx, query, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	defer rows.Close()

	var projects []*domain.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating projects: %w", err)
	}
	return projects, nil
}

func (r *SQLiteProjectRepo) Update(ctx context.Context, p *domain.Project) error {
	services, err := toJSON(p.IncludedServices, "[]")
	if err != nil {
		return fmt.Errorf("encoding included services: %w", err)
	}
	query := `UPDATE projects SET name = ?, type = ?, status = ?, review_preference = ?, target_date = ?,
		included_services = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		p.Name,
		string(p.Type),
		string(p.Status),
		nullableString(p.ReviewPreference),
		nullableTimeToString(p.TargetDate, dateLayout),
		services,
		formatTime(p.UpdatedAt),
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("updating project: %w", err)
	}
	return checkAffected(res, "project "+p.ID)
}

// DeleteByWorkspace removes every project of a workspace and reports how many
// were removed. Work cards keep their project ids.
func (r *SQLiteProjectRepo) DeleteByWorkspace(ctx context.Context, workspaceID string) (int, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE workspace_id = ?`, workspaceID)
	if err != nil {
		return 0, fmt.Errorf("deleting projects: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("deleting projects: %w", err)
	}
	return int(n), nil
}

func scanProject(s scanner) (*domain.Project, error) {
	var p domain.Project
	var typ, status, services, createdAt, updatedAt string
	var reviewPref, targetDate sql.NullString

	err := s.Scan(
		&p.ID, &p.WorkspaceID, &p.Name, &typ, &status,
		&reviewPref, &targetDate, &services,
		&createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning project: %w", err)
	}

	p.Type = domain.ProjectType(typ)
	p.Status = domain.ProjectStatus(status)
	p.ReviewPreference = stringPtr[domain.ReviewPreference](reviewPref)
	p.TargetDate = parseNullableTime(targetDate, dateLayout)
	if err := fromJSON("included_services", services, &p.IncludedServices); err != nil {
		return nil, err
	}
	if p.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
		return nil, err
	}
	if p.UpdatedAt, err = parseTime("updated_at", updatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}
