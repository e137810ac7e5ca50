package service

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/agencyos/internal/domain"
	"github.com/alexanderramin/agencyos/internal/repository"
	"github.com/alexanderramin/agencyos/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectCreate_DefaultsAndPersists(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	ws := r.seedWorkspace(t, 0)
	svc := NewProjectService(r.projects, r.uow)

	target := time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC)
	p := &domain.Project{
		WorkspaceID:      ws.ID,
		Name:             "Spring launch",
		Type:             domain.ProjectCampaign,
		ReviewPreference: domain.Ptr(domain.ReviewLiveCall),
		TargetDate:       &target,
		IncludedServices: []string{"Meta ads", "Landing page"},
	}
	require.NoError(t, svc.Create(ctx, p))
	assert.NotEmpty(t, p.ID)

	got, err := svc.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Spring launch", got.Name)
	assert.Equal(t, domain.ProjectCampaign, got.Type)
	assert.Equal(t, domain.ProjectPlanning, got.Status)
	require.NotNil(t, got.ReviewPreference)
	assert.Equal(t, domain.ReviewLiveCall, *got.ReviewPreference)
	require.NotNil(t, got.TargetDate)
	assert.Equal(t, "2026-12-01", got.TargetDate.Format(time.DateOnly))
	assert.Equal(t, []string{"Meta ads", "Landing page"}, got.IncludedServices)

	bare := &domain.Project{WorkspaceID: ws.ID, Name: "Odd job"}
	require.NoError(t, svc.Create(ctx, bare))
	assert.Equal(t, domain.ProjectOneOff, bare.Type)
}

func TestProjectCreate_Rejects(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	ws := r.seedWorkspace(t, 0)
	svc := NewProjectService(r.projects, r.uow)

	tests := []struct {
		name    string
		project *domain.Project
		wantErr error
	}{
		{"missing workspace", &domain.Project{WorkspaceID: "missing", Name: "X"}, repository.ErrNotFound},
		{"blank name", &domain.Project{WorkspaceID: ws.ID}, domain.ErrValidation},
		{"bad type", &domain.Project{WorkspaceID: ws.ID, Name: "X", Type: "sprint"}, domain.ErrValidation},
		{"bad review", &domain.Project{WorkspaceID: ws.ID, Name: "X", ReviewPreference: domain.Ptr(domain.ReviewPreference("email"))}, domain.ErrValidation},
		{"bad status", &domain.Project{WorkspaceID: ws.ID, Name: "X", Status: "abandoned"}, domain.ErrUnknownStatus},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, svc.Create(ctx, tt.project), tt.wantErr)
		})
	}

	projects, err := svc.ListByWorkspace(ctx, ws.ID)
	require.NoError(t, err)
	assert.Empty(t, projects)
}

func TestProjectSetStatus_Persists(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	ws := r.seedWorkspace(t, 0)
	p := testutil.NewTestProject(ws.ID, "Launch")
	require.NoError(t, r.projects.Create(ctx, p))
	svc := NewProjectService(r.projects, r.uow)

	require.NoError(t, svc.SetStatus(ctx, p.ID, domain.ProjectActive))
	got, err := svc.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ProjectActive, got.Status)
}

func TestProjectSetStatus_Rejects(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	ws := r.seedWorkspace(t, 0)
	p := testutil.NewTestProject(ws.ID, "Launch", testutil.WithProjectStatus(domain.ProjectCompleted))
	require.NoError(t, r.projects.Create(ctx, p))
	svc := NewProjectService(r.projects, r.uow)

	require.ErrorIs(t, svc.SetStatus(ctx, p.ID, domain.ProjectActive), domain.ErrInvalidTransition)
	require.ErrorIs(t, svc.SetStatus(ctx, p.ID, "abandoned"), domain.ErrUnknownStatus)
	require.ErrorIs(t, svc.SetStatus(ctx, "missing", domain.ProjectActive), repository.ErrNotFound)

	got, err := svc.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ProjectCompleted, got.Status)
}

func TestProjectListByWorkspace(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	a := r.seedWorkspace(t, 0)
	b := r.seedWorkspace(t, 0)
	require.NoError(t, r.projects.Create(ctx, testutil.NewTestProject(a.ID, "One")))
	require.NoError(t, r.projects.Create(ctx, testutil.NewTestProject(a.ID, "Two")))
	require.NoError(t, r.projects.Create(ctx, testutil.NewTestProject(b.ID, "Other")))
	svc := NewProjectService(r.projects, r.uow)

	got, err := svc.ListByWorkspace(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "One", got[0].Name)
}
