package service

import (
	"context"
	"fmt"
	"maps"
	"time"

	"github.com/alexanderramin/agencyos/internal/db"
	"github.com/alexanderramin/agencyos/internal/domain"
	"github.com/alexanderramin/agencyos/internal/repository"
	"github.com/google/uuid"
)

type workCardService struct {
	cards    repository.WorkCardRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewWorkCardService(cards repository.WorkCardRepo, uow db.UnitOfWork, observers ...UseCaseObserver) WorkCardService {
	return &workCardService{cards: cards, uow: uow, observer: useCaseObserverOrNoop(observers)}
}

// prepareCard fills defaults and validates a new card.
func prepareCard(c *domain.WorkCard, now time.Time) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	c.Status = domain.Coalesce(c.Status, domain.CardDraft)
	if !c.Status.Valid() {
		return fmt.Errorf("work card status %q: %w", c.Status, domain.ErrUnknownStatus)
	}
	if c.Inputs == nil {
		c.Inputs = map[string]string{}
	}
	if c.Deliverables == nil {
		c.Deliverables = map[string]domain.Deliverable{}
	}
	if c.Metrics == nil {
		c.Metrics = map[string]float64{}
	}
	c.CreatedAt = now
	c.UpdatedAt = now
	return domain.Validate(c)
}

func (s *workCardService) Create(ctx context.Context, c *domain.WorkCard) error {
	if err := prepareCard(c, time.Now().UTC()); err != nil {
		return err
	}
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if _, err := repository.NewSQLiteWorkspaceRepo(tx).GetByID(ctx, c.WorkspaceID); err != nil {
			return err
		}
		return repository.NewSQLiteWorkCardRepo(tx).Create(ctx, c)
	})
}

func (s *workCardService) GetByID(ctx context.Context, id string) (*domain.WorkCard, error) {
	return s.cards.GetByID(ctx, id)
}

func (s *workCardService) ListByWorkspace(ctx context.Context, workspaceID string) ([]*domain.WorkCard, error) {
	return s.cards.ListByWorkspace(ctx, workspaceID)
}

// ListByProject does not check that the project exists; cards may point at
// a project that was replaced.
func (s *workCardService) ListByProject(ctx context.Context, projectID string) ([]*domain.WorkCard, error) {
	return s.cards.ListByProject(ctx, projectID)
}

func (s *workCardService) Update(ctx context.Context, id string, patch domain.WorkCardPatch) (card *domain.WorkCard, err error) {
	fields := map[string]any{"card": id}
	if patch.Status != nil {
		fields["status"] = string(*patch.Status)
	}
	ctx, done := track(ctx, s.observer, "update-work-card", fields)
	defer func() { done(err) }()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := repository.NewSQLiteWorkCardRepo(tx)
		c, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if patch.IsEmpty() {
			card = c
			return nil
		}
		if err := patch.Apply(c, time.Now().UTC()); err != nil {
			return err
		}
		if err := repo.Update(ctx, c); err != nil {
			return err
		}
		card = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return card, nil
}

func (s *workCardService) SetDeliverable(ctx context.Context, id, name string, d domain.Deliverable) (*domain.WorkCard, error) {
	if name == "" {
		return nil, fmt.Errorf("deliverable name is required: %w", domain.ErrValidation)
	}
	var card *domain.WorkCard
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := repository.NewSQLiteWorkCardRepo(tx)
		c, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		deliverables := maps.Clone(c.Deliverables)
		if deliverables == nil {
			deliverables = map[string]domain.Deliverable{}
		}
		deliverables[name] = d
		if err := (domain.WorkCardPatch{Deliverables: deliverables}).Apply(c, time.Now().UTC()); err != nil {
			return err
		}
		if err := repo.Update(ctx, c); err != nil {
			return err
		}
		card = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return card, nil
}

func (s *workCardService) SubmitRequest(ctx context.Context, c *domain.WorkCard) (err error) {
	cost, _ := domain.CostOf(domain.ActionNewRequest)
	fields := map[string]any{"workspace": c.WorkspaceID, "cost": cost}
	ctx, done := track(ctx, s.observer, "submit-request", fields)
	defer func() { done(err) }()

	now := time.Now().UTC()
	c.Status = domain.CardSubmitted
	c.CreditsUsed = cost
	if err = prepareCard(c, now); err != nil {
		return err
	}
	fields["card"] = c.ID

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if _, err := debitWorkspace(ctx, tx, c.WorkspaceID, domain.ActionNewRequest, cost, now); err != nil {
			return err
		}
		return repository.NewSQLiteWorkCardRepo(tx).Create(ctx, c)
	})
}
