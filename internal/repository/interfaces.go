package repository

import (
	"context"
	"errors"

	"github.com/alexanderramin/agencyos/internal/domain"
)

// ErrNotFound is returned (wrapped) by every id-keyed lookup or mutation whose
// target does not exist.
var ErrNotFound = errors.New("not found")

type WorkspaceRepo interface {
	Create(ctx context.Context, w *domain.Workspace) error
	GetByID(ctx context.Context, id string) (*domain.Workspace, error)
	List(ctx context.Context) ([]*domain.Workspace, error)
	Update(ctx context.Context, w *domain.Workspace) error
}

// LedgerRepo is append-only: entries are never updated or deleted.
type LedgerRepo interface {
	Append(ctx context.Context, e *domain.LedgerEntry) error
	// ListByWorkspace returns entries most-recent-first. limit <= 0 returns all.
	ListByWorkspace(ctx context.Context, workspaceID string, limit int) ([]*domain.LedgerEntry, error)
}

type ProjectRepo interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	ListByWorkspace(ctx context.Context, workspaceID string) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	DeleteByWorkspace(ctx context.Context, workspaceID string) (int, error)
}

type WorkCardRepo interface {
	Create(ctx context.Context, c *domain.WorkCard) error
	GetByID(ctx context.Context, id string) (*domain.WorkCard, error)
	// ListByWorkspace and ListByProject return cards newest-first.
	ListByWorkspace(ctx context.Context, workspaceID string) ([]*domain.WorkCard, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.WorkCard, error)
	Update(ctx context.Context, c *domain.WorkCard) error
}

type TicketRepo interface {
	Create(ctx context.Context, t *domain.Ticket) error
	// GetByID loads the ticket with its messages in insertion order.
	GetByID(ctx context.Context, id string) (*domain.Ticket, error)
	ListByWorkspace(ctx context.Context, workspaceID string) ([]*domain.Ticket, error)
	ListByWorkCard(ctx context.Context, workCardID string) ([]*domain.Ticket, error)
	ListAwaitingAutoReply(ctx context.Context) ([]*domain.Ticket, error)
	// Update persists status, priority, title and updated_at. Messages are
	// written only through AppendMessage.
	Update(ctx context.Context, t *domain.Ticket) error
	// AppendMessage stores m after the ticket's last message and returns the
	// sequence number it was given. m.Seq is ignored.
	AppendMessage(ctx context.Context, m domain.TicketMessage) (int, error)
}
