package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/agencyos/internal/db"
	"github.com/alexanderramin/agencyos/internal/domain"
)

// SQLiteTicketRepo implements TicketRepo using a SQLite database.
type SQLiteTicketRepo struct {
	db db.DBTX
}

func NewSQLiteTicketRepo(db db.DBTX) *SQLiteTicketRepo {
	return &SQLiteTicketRepo{db: db}
}

const ticketColumns = `id, workspace_id, work_card_id, title, type, status, priority, created_at, updated_at`

func (r *SQLiteTicketRepo) Create(ctx context.Context, t *domain.Ticket) error {
	query := `INSERT INTO tickets (` + ticketColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		t.ID,
		t.WorkspaceID,
		nullableString(t.WorkCardID),
		t.Title,
		string(t.Type),
		string(t.Status),
		string(t.Priority),
		formatTime(t.CreatedAt),
		formatTime(t.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting ticket: %w", err)
	}
	return nil
}

func (r *SQLiteTicketRepo) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE id = ?`
	t, err := scanTicket(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("ticket %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	if t.Messages, err = r.listMessages(ctx, t.ID); err != nil {
		return nil, err
	}
	return t, nil
}

func (r *SQLiteTicketRepo) ListByWorkspace(ctx context.Context, workspaceID string) ([]*domain.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE workspace_id = ? ORDER BY rowid DESC`
	return r.list(ctx, query, workspaceID)
}

func (r *SQLiteTicketRepo) ListByWorkCard(ctx context.Context, workCardID string) ([]*domain.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE work_card_id = ? ORDER BY rowid DESC`
	return r.list(ctx, query, workCardID)
}

// ListAwaitingAutoReply returns tickets that are not closed and have no ai
// message, oldest first.
func (r *SQLiteTicketRepo) ListAwaitingAutoReply(ctx context.Context) ([]*domain.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets t
		WHERE t.status <> 'closed'
		  AND NOT EXISTS (
			SELECT 1 FROM ticket_messages m WHERE m.ticket_id = t.id AND m.sender_type = 'ai'
		  )
		ORDER BY t.rowid`
	return r.list(ctx, query)
}

func (r *SQLiteTicketRepo) list(ctx context.Context, query string, args ...any) ([]*domain.Ticket, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing tickets: %w", err)
	}

	var tickets []*domain.Ticket
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		tickets = append(tickets, t)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterating tickets: %w", err)
	}
	// Close before loading messages: an in-memory database has one connection.
	rows.Close()

	for _, t := range tickets {
		if t.Messages, err = r.listMessages(ctx, t.ID); err != nil {
			return nil, err
		}
	}
	return tickets, nil
}

func (r *SQLiteTicketRepo) Update(ctx context.Context, t *domain.Ticket) error {
	query := `UPDATE tickets SET title = ?, status = ?, priority = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		t.Title,
		string(t.Status),
		string(t.Priority),
		formatTime(t.UpdatedAt),
		t.ID,
	)
	if err != nil {
		return fmt.Errorf("updating ticket: %w", err)
	}
	return checkAffected(res, "ticket "+t.ID)
}

func (r *SQLiteTicketRepo) AppendMessage(ctx context.Context, m domain.TicketMessage) (int, error) {
	query := `INSERT INTO ticket_messages (id, ticket_id, seq, sender_id, sender_type, text, created_at)
		SELECT ?, ?, COALESCE(MAX(seq), 0) + 1, ?, ?, ?, ?
		FROM ticket_messages WHERE ticket_id = ?
		RETURNING seq`
	var seq int
	err := r.db.QueryRowContext(ctx, query,
		m.ID,
		m.TicketID,
		m.SenderID,
		string(m.SenderType),
		m.Text,
		formatTime(m.CreatedAt),
		m.TicketID,
	).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("appending ticket message: %w", err)
	}
	return seq, nil
}

func (r *SQLiteTicketRepo) listMessages(ctx context.Context, ticketID string) ([]domain.TicketMessage, error) {
	query := `SELECT id, ticket_id, seq, sender_id, sender_type, text, created_at
		FROM ticket_messages WHERE ticket_id = ? ORDER BY seq`
	rows, err := r.db.QueryContext(ctx, query, ticketID)
	if err != nil {
		return nil, fmt.Errorf("listing ticket messages: %w", err)
	}
	defer rows.Close()

	var msgs []domain.TicketMessage
	for rows.Next() {
		var m domain.TicketMessage
		var senderType, createdAt string
		if err := rows.Scan(&m.ID, &m.TicketID, &m.Seq, &m.SenderID, &senderType, &m.Text, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning ticket message: %w", err)
		}
		m.SenderType = domain.SenderType(senderType)
		if m.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
			return nil, err
		}
		msgs = append(msgs, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating ticket messages: %w", err)
	}
	return msgs, nil
}

func scanTicket(s scanner) (*domain.Ticket, error) {
	var t domain.Ticket
	var workCardID sql.NullString
	var typ, status, priority, createdAt, updatedAt string

	err := s.Scan(
		&t.ID, &t.WorkspaceID, &workCardID, &t.Title,
		&typ, &status, &priority,
		&createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning ticket: %w", err)
	}
	t.WorkCardID = stringPtr[string](workCardID)
	t.Type = domain.TicketType(typ)
	t.Status = domain.TicketStatus(status)
	t.Priority = domain.TicketPriority(priority)
	if t.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
		return nil, err
	}
	if t.UpdatedAt, err = parseTime("updated_at", updatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}
