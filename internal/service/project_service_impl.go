package service

import (
	"context"
	"time"

	"github.com/alexanderramin/agencyos/internal/db"
	"github.com/alexanderramin/agencyos/internal/domain"
	"github.com/alexanderramin/agencyos/internal/repository"
	"github.com/google/uuid"
)

type projectService struct {
	projects repository.ProjectRepo
	uow      db.UnitOfWork
}

func NewProjectService(projects repository.ProjectRepo, uow db.UnitOfWork) ProjectService {
	return &projectService{projects: projects, uow: uow}
}

// Create stores a project outside onboarding. It starts in planning and a
// one_off type unless the caller set them.
func (s *projectService) Create(ctx context.Context, p *domain.Project) error {
	now := time.Now().UTC()
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	p.Type = domain.Coalesce(p.Type, domain.ProjectOneOff)
	p.Status = domain.Coalesce(p.Status, domain.ProjectPlanning)
	p.CreatedAt = now
	p.UpdatedAt = now
	if err := p.Check(); err != nil {
		return err
	}

	return s.uow.WithinTx(db.WithUseCase(ctx, "create-project"), func(ctx context.Context, tx db.DBTX) error {
		if _, err := repository.NewSQLiteWorkspaceRepo(tx).GetByID(ctx, p.WorkspaceID); err != nil {
			return err
		}
		return repository.NewSQLiteProjectRepo(tx).Create(ctx, p)
	})
}

func (s *projectService) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	return s.projects.GetByID(ctx, id)
}

func (s *projectService) ListByWorkspace(ctx context.Context, workspaceID string) ([]*domain.Project, error) {
	return s.projects.ListByWorkspace(ctx, workspaceID)
}

func (s *projectService) SetStatus(ctx context.Context, id string, status domain.ProjectStatus) error {
	return s.uow.WithinTx(db.WithUseCase(ctx, "set-project-status"), func(ctx context.Context, tx db.DBTX) error {
		repo := repository.NewSQLiteProjectRepo(tx)
		p, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := p.SetStatus(status, time.Now().UTC()); err != nil {
			return err
		}
		return repo.Update(ctx, p)
	})
}
