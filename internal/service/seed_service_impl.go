package service

import (
	"context"
	"fmt"

	"github.com/alexanderramin/agencyos/internal/domain"
)

// demoSelections is the onboarding answer used by Seed.
var demoSelections = domain.Selections{
	"paid_ads": {"Meta ads", "Google search ads"},
	"social":   {"Instagram content calendar"},
	"video":    {"Launch reel"},
}

type seedService struct {
	workspaces WorkspaceService
	onboarding OnboardingService
	cards      WorkCardService
	tickets    TicketService
}

// NewSeedService builds demo data through the regular use cases, so seeded
// rows are indistinguishable from ones a client created.
func NewSeedService(workspaces WorkspaceService, onboarding OnboardingService, cards WorkCardService, tickets TicketService) SeedService {
	return &seedService{workspaces: workspaces, onboarding: onboarding, cards: cards, tickets: tickets}
}

func (s *seedService) Seed(ctx context.Context) (*SeedResult, error) {
	onboarded, err := s.onboarding.Complete(ctx, OnboardingRequest{
		Profile: WorkspaceProfile{
			Name:      "Northwind Coffee",
			BrandName: "Northwind",
			Website:   "https://northwind.example.com",
			Tone:      "warm, playful",
			Channels:  []string{"instagram", "tiktok", "email"},
		},
		OpeningCredits: 120,
		Confirmation:   domain.NewConfirmation(demoSelections),
	})
	if err != nil {
		return nil, fmt.Errorf("seeding onboarding: %w", err)
	}
	ws := onboarded.Workspace
	res := &SeedResult{Workspace: ws, Projects: len(onboarded.Projects), Cards: len(onboarded.Cards)}

	var projectID string
	if len(onboarded.Projects) > 0 {
		projectID = onboarded.Projects[0].ID
	}
	request := &domain.WorkCard{
		WorkspaceID:      ws.ID,
		ProjectID:        projectID,
		Category:         "paid_ads",
		Type:             "retargeting",
		Title:            "Holiday retargeting set",
		RevisionsAllowed: 2,
		Inputs:           map[string]string{"budget": "1500", "audience": "site visitors 30d"},
		Deliverables: map[string]domain.Deliverable{
			"ad_copy":   {Status: domain.DeliverablePending},
			"creatives": {Status: domain.DeliverablePending},
		},
	}
	if err := s.cards.SubmitRequest(ctx, request); err != nil {
		return nil, fmt.Errorf("seeding request: %w", err)
	}
	res.Cards++

	tickets := []*domain.Ticket{
		{
			WorkspaceID: ws.ID,
			WorkCardID:  &request.ID,
			Title:       "Which landing page should the ads use?",
			Type:        domain.TicketClarification,
			Messages: []domain.TicketMessage{
				{SenderID: "client", Text: "We have two landing pages, not sure which converts better."},
			},
		},
		{
			WorkspaceID: ws.ID,
			Title:       "Instagram handle changed",
			Type:        domain.TicketIssue,
			Priority:    domain.PriorityHigh,
		},
	}
	for _, t := range tickets {
		if err := s.tickets.Create(ctx, t); err != nil {
			return nil, fmt.Errorf("seeding ticket %q: %w", t.Title, err)
		}
		res.Tickets++
	}
	// The process may exit right after seeding; an unfinished reply would be lost.
	for _, t := range tickets {
		if err := s.tickets.WaitForAutoReply(ctx, t.ID); err != nil {
			return nil, fmt.Errorf("waiting for reply to %q: %w", t.Title, err)
		}
	}

	if res.Workspace, err = s.workspaces.GetByID(ctx, ws.ID); err != nil {
		return nil, err
	}
	return res, nil
}
