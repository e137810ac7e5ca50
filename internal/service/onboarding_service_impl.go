package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/agencyos/internal/db"
	"github.com/alexanderramin/agencyos/internal/domain"
	"github.com/alexanderramin/agencyos/internal/repository"
	"github.com/google/uuid"
)

// DefaultOpeningCredits is granted to workspaces created by onboarding when
// the request does not name an amount.
const DefaultOpeningCredits = 100

type onboardingService struct {
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewOnboardingService(uow db.UnitOfWork, observers ...UseCaseObserver) OnboardingService {
	return &onboardingService{uow: uow, observer: useCaseObserverOrNoop(observers)}
}

func (s *onboardingService) Complete(ctx context.Context, req OnboardingRequest) (result *OnboardingResult, err error) {
	fields := map[string]any{"workspace": req.WorkspaceID}
	ctx, done := track(ctx, s.observer, "complete-onboarding", fields)
	defer func() { done(err) }()

	if req.Confirmation == nil || len(req.Confirmation.Selected()) == 0 {
		return nil, domain.ErrNoProjectsSelected
	}
	if req.OpeningCredits < 0 {
		return nil, fmt.Errorf("opening credits %d: %w", req.OpeningCredits, domain.ErrInvalidAmount)
	}

	now := time.Now().UTC()
	result = &OnboardingResult{}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		ws, err := s.resolveWorkspace(ctx, tx, req, now)
		if err != nil {
			return err
		}
		result.Workspace = ws

		projects, cards, err := req.Confirmation.Materialize(ws.ID, now, func() string { return uuid.New().String() })
		if err != nil {
			return err
		}

		projectRepo := repository.NewSQLiteProjectRepo(tx)
		if result.ReplacedProjects, err = projectRepo.DeleteByWorkspace(ctx, ws.ID); err != nil {
			return err
		}
		for _, p := range projects {
			if err := p.Check(); err != nil {
				return fmt.Errorf("project %q: %w", p.Name, err)
			}
			if err := projectRepo.Create(ctx, p); err != nil {
				return err
			}
		}
		cardRepo := repository.NewSQLiteWorkCardRepo(tx)
		for _, c := range cards {
			if err := prepareCard(c, now); err != nil {
				return fmt.Errorf("card %q: %w", c.Title, err)
			}
			if err := cardRepo.Create(ctx, c); err != nil {
				return err
			}
		}
		result.Projects = projects
		result.Cards = cards
		return nil
	})
	if err != nil {
		return nil, err
	}

	fields["workspace"] = result.Workspace.ID
	fields["projects"] = len(result.Projects)
	fields["cards"] = len(result.Cards)
	return result, nil
}

// resolveWorkspace loads the named workspace or creates one from the profile
// with its opening balance recorded as a top-up.
func (s *onboardingService) resolveWorkspace(ctx context.Context, tx db.DBTX, req OnboardingRequest, now time.Time) (*domain.Workspace, error) {
	repo := repository.NewSQLiteWorkspaceRepo(tx)
	if req.WorkspaceID != "" {
		return repo.GetByID(ctx, req.WorkspaceID)
	}

	ws := &domain.Workspace{
		Name:      req.Profile.Name,
		BrandName: domain.Coalesce(req.Profile.BrandName, req.Profile.Name),
		Website:   req.Profile.Website,
		Tone:      req.Profile.Tone,
		Channels:  req.Profile.Channels,
	}
	prepareWorkspace(ws, now)
	if err := domain.Validate(ws); err != nil {
		return nil, err
	}
	if err := repo.Create(ctx, ws); err != nil {
		return nil, err
	}

	credits := req.OpeningCredits
	if credits == 0 {
		credits = DefaultOpeningCredits
	}
	if _, err := creditWorkspace(ctx, tx, ws.ID, credits, now); err != nil {
		return nil, err
	}
	ws.Credits = credits
	return ws, nil
}
