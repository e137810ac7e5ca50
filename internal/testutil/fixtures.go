package testutil

import (
	"time"

	"github.com/alexanderramin/agencyos/internal/domain"
	"github.com/google/uuid"
)

// Workspace options
type WorkspaceOption func(*domain.Workspace)

func WithCredits(n int) WorkspaceOption {
	return func(w *domain.Workspace) {
		w.Credits = n
	}
}

func WithWorkspaceStatus(s domain.WorkspaceStatus) WorkspaceOption {
	return func(w *domain.Workspace) {
		w.Status = s
	}
}

func WithChannels(ch ...string) WorkspaceOption {
	return func(w *domain.Workspace) {
		w.Channels = ch
	}
}

func NewTestWorkspace(name string, opts ...WorkspaceOption) *domain.Workspace {
	now := time.Now().UTC()
	w := &domain.Workspace{
		ID:        uuid.New().String(),
		Name:      name,
		BrandName: name + " Brand",
		Website:   "https://example.com",
		Tone:      "friendly",
		Channels:  []string{"instagram"},
		Credits:   100,
		Status:    domain.WorkspaceActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Project options
type ProjectOption func(*domain.Project)

func WithTargetDate(d time.Time) ProjectOption {
	return func(p *domain.Project) {
		p.TargetDate = &d
	}
}

func WithProjectStatus(s domain.ProjectStatus) ProjectOption {
	return func(p *domain.Project) {
		p.Status = s
	}
}

func WithServices(s ...string) ProjectOption {
	return func(p *domain.Project) {
		p.IncludedServices = s
	}
}

func NewTestProject(workspaceID, name string, opts ...ProjectOption) *domain.Project {
	now := time.Now().UTC()
	p := &domain.Project{
		ID:               uuid.New().String(),
		WorkspaceID:      workspaceID,
		Name:             name,
		Type:             domain.ProjectCampaign,
		Status:           domain.ProjectPlanning,
		IncludedServices: []string{},
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// WorkCard options
type WorkCardOption func(*domain.WorkCard)

func WithProject(projectID string) WorkCardOption {
	return func(c *domain.WorkCard) {
		c.ProjectID = projectID
	}
}

func WithCardStatus(s domain.WorkCardStatus) WorkCardOption {
	return func(c *domain.WorkCard) {
		c.Status = s
	}
}

func WithInputs(in map[string]string) WorkCardOption {
	return func(c *domain.WorkCard) {
		c.Inputs = in
	}
}

func WithDeliverable(key string, d domain.Deliverable) WorkCardOption {
	return func(c *domain.WorkCard) {
		if c.Deliverables == nil {
			c.Deliverables = map[string]domain.Deliverable{}
		}
		c.Deliverables[key] = d
	}
}

func WithMetrics(m map[string]float64) WorkCardOption {
	return func(c *domain.WorkCard) {
		c.Metrics = m
	}
}

func NewTestWorkCard(workspaceID, title string, opts ...WorkCardOption) *domain.WorkCard {
	now := time.Now().UTC()
	c := &domain.WorkCard{
		ID:               uuid.New().String(),
		WorkspaceID:      workspaceID,
		Category:         "social",
		Type:             "carousel",
		Title:            title,
		Status:           domain.CardDraft,
		RevisionsAllowed: 2,
		Inputs:           map[string]string{},
		Deliverables:     map[string]domain.Deliverable{},
		Metrics:          map[string]float64{},
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Ticket options
type TicketOption func(*domain.Ticket)

func WithTicketType(tt domain.TicketType) TicketOption {
	return func(t *domain.Ticket) {
		t.Type = tt
	}
}

func WithWorkCard(cardID string) TicketOption {
	return func(t *domain.Ticket) {
		t.WorkCardID = &cardID
	}
}

func WithTicketStatus(s domain.TicketStatus) TicketOption {
	return func(t *domain.Ticket) {
		t.Status = s
	}
}

func NewTestTicket(workspaceID, title string, opts ...TicketOption) *domain.Ticket {
	now := time.Now().UTC()
	t := &domain.Ticket{
		ID:          uuid.New().String(),
		WorkspaceID: workspaceID,
		Title:       title,
		Type:        domain.TicketRequest,
		Status:      domain.TicketOpen,
		Priority:    domain.PriorityNormal,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func NewTestMessage(senderID, text string) domain.TicketMessage {
	return domain.TicketMessage{
		ID:         uuid.New().String(),
		SenderID:   senderID,
		SenderType: domain.SenderUser,
		Text:       text,
		CreatedAt:  time.Now().UTC(),
	}
}
