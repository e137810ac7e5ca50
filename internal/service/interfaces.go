package service

import (
	"context"
	"io"

	"github.com/alexanderramin/agencyos/internal/domain"
	"github.com/alexanderramin/agencyos/internal/importer"
)

// WorkspaceService owns workspaces and their credit ledger.
type WorkspaceService interface {
	Create(ctx context.Context, w *domain.Workspace) error
	GetByID(ctx context.Context, id string) (*domain.Workspace, error)
	List(ctx context.Context) ([]*domain.Workspace, error)
	SetStatus(ctx context.Context, id string, status domain.WorkspaceStatus) error
	// Deduct reports false with a nil error when the balance is too low.
	Deduct(ctx context.Context, workspaceID string, action domain.CreditAction, cost int) (bool, error)
	Credit(ctx context.Context, workspaceID string, amount int) error
	// Ledger returns entries most-recent-first.
	Ledger(ctx context.Context, workspaceID string) ([]*domain.LedgerEntry, error)
}

type WorkCardService interface {
	Create(ctx context.Context, c *domain.WorkCard) error
	GetByID(ctx context.Context, id string) (*domain.WorkCard, error)
	ListByWorkspace(ctx context.Context, workspaceID string) ([]*domain.WorkCard, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.WorkCard, error)
	Update(ctx context.Context, id string, patch domain.WorkCardPatch) (*domain.WorkCard, error)
	SetDeliverable(ctx context.Context, id, name string, d domain.Deliverable) (*domain.WorkCard, error)
	// SubmitRequest charges the NEW_REQUEST price and stores the card as
	// submitted in one transaction.
	SubmitRequest(ctx context.Context, c *domain.WorkCard) error
}

type ProjectService interface {
	// Create adds a project to an existing workspace.
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	ListByWorkspace(ctx context.Context, workspaceID string) ([]*domain.Project, error)
	SetStatus(ctx context.Context, id string, status domain.ProjectStatus) error
}

type TicketService interface {
	// Create stores the ticket with any initial messages and schedules its
	// auto-reply.
	Create(ctx context.Context, t *domain.Ticket) error
	GetByID(ctx context.Context, id string) (*domain.Ticket, error)
	ListByWorkspace(ctx context.Context, workspaceID string) ([]*domain.Ticket, error)
	ListByWorkCard(ctx context.Context, workCardID string) ([]*domain.Ticket, error)
	AddMessage(ctx context.Context, ticketID string, m domain.TicketMessage) (domain.TicketMessage, error)
	SetStatus(ctx context.Context, ticketID string, status domain.TicketStatus) error
	WaitForAutoReply(ctx context.Context, ticketID string) error
	// ResumeAutoReplies reschedules replies lost when an earlier process
	// exited before they ran.
	ResumeAutoReplies(ctx context.Context) ([]string, error)
	// Close cancels outstanding auto-replies.
	Close()
}

// WorkspaceProfile describes a workspace created during onboarding.
type WorkspaceProfile struct {
	Name      string
	BrandName string
	Website   string
	Tone      string
	Channels  []string
}

// OnboardingRequest commits a project confirmation. When WorkspaceID is empty
// a workspace is created from Profile with OpeningCredits.
type OnboardingRequest struct {
	WorkspaceID    string
	Profile        WorkspaceProfile
	OpeningCredits int
	Confirmation   *domain.Confirmation
}

type OnboardingResult struct {
	Workspace        *domain.Workspace
	Projects         []*domain.Project
	Cards            []*domain.WorkCard
	ReplacedProjects int
}

type OnboardingService interface {
	Complete(ctx context.Context, req OnboardingRequest) (*OnboardingResult, error)
}

// MetricsImportResult holds the outcome of a metrics import.
type MetricsImportResult struct {
	Card    *domain.WorkCard
	Metrics importer.Metrics
}

type MetricsImportService interface {
	// Import replaces the card's metrics with the aggregate of r. On any
	// error the card is left untouched.
	Import(ctx context.Context, cardID string, r io.Reader) (*MetricsImportResult, error)
	ImportFile(ctx context.Context, cardID, path string) (*MetricsImportResult, error)
}

// SeedResult summarizes what Seed created.
type SeedResult struct {
	Workspace *domain.Workspace
	Projects  int
	Cards     int
	Tickets   int
}

type SeedService interface {
	Seed(ctx context.Context) (*SeedResult, error)
}
