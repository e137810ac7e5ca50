package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/agencyos/internal/domain"
	"github.com/alexanderramin/agencyos/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedWorkspace(t *testing.T, repo *SQLiteWorkspaceRepo) *domain.Workspace {
	t.Helper()
	ws := testutil.NewTestWorkspace("Acme")
	require.NoError(t, repo.Create(context.Background(), ws))
	return ws
}

func TestProjectRepo_CreateAndGetByID(t *testing.T) {
	db := testutil.NewTestDB(t)
	ws := seedWorkspace(t, NewSQLiteWorkspaceRepo(db))
	repo := NewSQLiteProjectRepo(db)
	ctx := context.Background()

	target := time.Now().UTC().AddDate(0, 2, 0)
	proj := testutil.NewTestProject(ws.ID, "Summer Launch",
		testutil.WithTargetDate(target),
		testutil.WithServices("Meta ads", "Google ads"),
	)
	proj.ReviewPreference = domain.Ptr(domain.ReviewLiveCall)
	require.NoError(t, repo.Create(ctx, proj))

	fetched, err := repo.GetByID(ctx, proj.ID)
	require.NoError(t, err)
	assert.Equal(t, "Summer Launch", fetched.Name)
	assert.Equal(t, domain.ProjectPlanning, fetched.Status)
	assert.Equal(t, domain.ProjectCampaign, fetched.Type)
	assert.Equal(t, []string{"Meta ads", "Google ads"}, fetched.IncludedServices)
	require.NotNil(t, fetched.ReviewPreference)
	assert.Equal(t, domain.ReviewLiveCall, *fetched.ReviewPreference)
	require.NotNil(t, fetched.TargetDate)
	assert.Equal(t, target.Format("2006-01-02"), fetched.TargetDate.Format("2006-01-02"))
}

func TestProjectRepo_OptionalFieldsNull(t *testing.T) {
	db := testutil.NewTestDB(t)
	ws := seedWorkspace(t, NewSQLiteWorkspaceRepo(db))
	repo := NewSQLiteProjectRepo(db)
	ctx := context.Background()

	proj := testutil.NewTestProject(ws.ID, "Plain")
	require.NoError(t, repo.Create(ctx, proj))

	fetched, err := repo.GetByID(ctx, proj.ID)
	require.NoError(t, err)
	assert.Nil(t, fetched.ReviewPreference)
	assert.Nil(t, fetched.TargetDate)
}

func TestProjectRepo_GetByID_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(db)

	_, err := repo.GetByID(context.Background(), "nonexistent")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProjectRepo_UpdateStatus(t *testing.T) {
	db := testutil.NewTestDB(t)
	ws := seedWorkspace(t, NewSQLiteWorkspaceRepo(db))
	repo := NewSQLiteProjectRepo(db)
	ctx := context.Background()

	proj := testutil.NewTestProject(ws.ID, "Retainer")
	require.NoError(t, repo.Create(ctx, proj))

	proj.Status = domain.ProjectActive
	require.NoError(t, repo.Update(ctx, proj))

	fetched, err := repo.GetByID(ctx, proj.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ProjectActive, fetched.Status)
}

func TestProjectRepo_DeleteByWorkspace(t *testing.T) {
	db := testutil.NewTestDB(t)
	wsRepo := NewSQLiteWorkspaceRepo(db)
	a := seedWorkspace(t, wsRepo)
	b := seedWorkspace(t, wsRepo)
	repo := NewSQLiteProjectRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testutil.NewTestProject(a.ID, "A1")))
	require.NoError(t, repo.Create(ctx, testutil.NewTestProject(a.ID, "A2")))
	require.NoError(t, repo.Create(ctx, testutil.NewTestProject(b.ID, "B1")))

	n, err := repo.DeleteByWorkspace(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	remaining, err := repo.ListByWorkspace(ctx, a.ID)
	require.NoError(t, err)
	assert.Empty(t, remaining)

	others, err := repo.ListByWorkspace(ctx, b.ID)
	require.NoError(t, err)
	assert.Len(t, others, 1)
}
