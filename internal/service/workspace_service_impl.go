package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/agencyos/internal/db"
	"github.com/alexanderramin/agencyos/internal/domain"
	"github.com/alexanderramin/agencyos/internal/repository"
	"github.com/google/uuid"
)

type workspaceService struct {
	workspaces repository.WorkspaceRepo
	ledger     repository.LedgerRepo
	uow        db.UnitOfWork
	observer   UseCaseObserver
}

func NewWorkspaceService(
	workspaces repository.WorkspaceRepo,
	ledger repository.LedgerRepo,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) WorkspaceService {
	return &workspaceService{
		workspaces: workspaces,
		ledger:     ledger,
		uow:        uow,
		observer:   useCaseObserverOrNoop(observers),
	}
}

// Create stores the workspace and records a non-zero opening balance as a
// TOP_UP credit, so the ledger always sums to the balance.
func (s *workspaceService) Create(ctx context.Context, w *domain.Workspace) (err error) {
	ctx, done := track(ctx, s.observer, "create-workspace", map[string]any{"credits": w.Credits})
	defer func() { done(err) }()

	now := time.Now().UTC()
	prepareWorkspace(w, now)
	if err := domain.Validate(w); err != nil {
		return err
	}
	opening := w.Credits
	if opening < 0 {
		return fmt.Errorf("opening credits %d: %w", opening, domain.ErrInvalidAmount)
	}

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		w.Credits = 0
		if err := repository.NewSQLiteWorkspaceRepo(tx).Create(ctx, w); err != nil {
			w.Credits = opening
			return err
		}
		w.Credits = opening
		if opening == 0 {
			return nil
		}
		_, err := creditWorkspace(ctx, tx, w.ID, opening, now)
		return err
	})
}

func prepareWorkspace(w *domain.Workspace, now time.Time) {
	if w.ID == "" {
		w.ID = uuid.New().String()
	}
	w.Status = domain.Coalesce(w.Status, domain.WorkspaceActive)
	w.CreatedAt = now
	w.UpdatedAt = now
}

func (s *workspaceService) GetByID(ctx context.Context, id string) (*domain.Workspace, error) {
	return s.workspaces.GetByID(ctx, id)
}

func (s *workspaceService) List(ctx context.Context) ([]*domain.Workspace, error) {
	return s.workspaces.List(ctx)
}

func (s *workspaceService) SetStatus(ctx context.Context, id string, status domain.WorkspaceStatus) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := repository.NewSQLiteWorkspaceRepo(tx)
		w, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := w.SetStatus(status, time.Now().UTC()); err != nil {
			return err
		}
		return repo.Update(ctx, w)
	})
}

func (s *workspaceService) Deduct(ctx context.Context, workspaceID string, action domain.CreditAction, cost int) (ok bool, err error) {
	fields := map[string]any{"workspace": workspaceID, "action": string(action), "cost": cost}
	ctx, done := track(ctx, s.observer, "deduct-credits", fields)
	defer func() {
		fields["deducted"] = ok
		done(err)
	}()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		_, err := debitWorkspace(ctx, tx, workspaceID, action, cost, time.Now().UTC())
		return err
	})
	if errors.Is(err, domain.ErrInsufficientCredits) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// debitWorkspace charges a workspace inside an open transaction and appends
// the ledger entry.
func debitWorkspace(ctx context.Context, tx db.DBTX, workspaceID string, action domain.CreditAction, cost int, now time.Time) (*domain.LedgerEntry, error) {
	workspaces := repository.NewSQLiteWorkspaceRepo(tx)
	w, err := workspaces.GetByID(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	entry, err := w.Debit(action, cost, now)
	if err != nil {
		return nil, err
	}
	entry.ID = uuid.New().String()
	if err := workspaces.Update(ctx, w); err != nil {
		return nil, err
	}
	if err := repository.NewSQLiteLedgerRepo(tx).Append(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *workspaceService) Credit(ctx context.Context, workspaceID string, amount int) (err error) {
	ctx, done := track(ctx, s.observer, "credit-workspace", map[string]any{"workspace": workspaceID, "amount": amount})
	defer func() { done(err) }()

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		_, err := creditWorkspace(ctx, tx, workspaceID, amount, time.Now().UTC())
		return err
	})
}

func creditWorkspace(ctx context.Context, tx db.DBTX, workspaceID string, amount int, now time.Time) (*domain.LedgerEntry, error) {
	workspaces := repository.NewSQLiteWorkspaceRepo(tx)
	w, err := workspaces.GetByID(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	entry, err := w.Credit(amount, now)
	if err != nil {
		return nil, err
	}
	entry.ID = uuid.New().String()
	if err := workspaces.Update(ctx, w); err != nil {
		return nil, err
	}
	if err := repository.NewSQLiteLedgerRepo(tx).Append(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *workspaceService) Ledger(ctx context.Context, workspaceID string) ([]*domain.LedgerEntry, error) {
	if _, err := s.workspaces.GetByID(ctx, workspaceID); err != nil {
		return nil, err
	}
	return s.ledger.ListByWorkspace(ctx, workspaceID, 0)
}
