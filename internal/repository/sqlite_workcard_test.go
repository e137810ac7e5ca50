package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/agencyos/internal/domain"
	"github.com/alexanderramin/agencyos/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkCardRepo_CreateAndGetByID(t *testing.T) {
	db := testutil.NewTestDB(t)
	ws := seedWorkspace(t, NewSQLiteWorkspaceRepo(db))
	repo := NewSQLiteWorkCardRepo(db)
	ctx := context.Background()

	card := testutil.NewTestWorkCard(ws.ID, "Launch carousel",
		testutil.WithProject("proj-1"),
		testutil.WithInputs(map[string]string{"brief": "5 slides"}),
		testutil.WithDeliverable("slides", domain.Deliverable{Status: domain.DeliverableReady, URL: "https://cdn.example.com/s.zip"}),
		testutil.WithMetrics(map[string]float64{"spend": 120.5}),
	)
	card.NextSteps = []string{"approve copy"}
	card.Team = []string{"Dana", "Lee"}
	card.AISummary = "On track"
	require.NoError(t, repo.Create(ctx, card))

	fetched, err := repo.GetByID(ctx, card.ID)
	require.NoError(t, err)
	assert.Equal(t, "Launch carousel", fetched.Title)
	assert.Equal(t, "proj-1", fetched.ProjectID)
	assert.Equal(t, domain.CardDraft, fetched.Status)
	assert.Equal(t, 2, fetched.RevisionsAllowed)
	assert.Equal(t, map[string]string{"brief": "5 slides"}, fetched.Inputs)
	assert.Equal(t, card.Deliverables, fetched.Deliverables)
	assert.Equal(t, 120.5, fetched.Metrics["spend"])
	assert.Equal(t, []string{"approve copy"}, fetched.NextSteps)
	assert.Equal(t, []string{"Dana", "Lee"}, fetched.Team)
	assert.Equal(t, "On track", fetched.AISummary)
}

func TestWorkCardRepo_GetByID_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteWorkCardRepo(db)

	_, err := repo.GetByID(context.Background(), "nonexistent")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestWorkCardRepo_ListNewestFirst(t *testing.T) {
	db := testutil.NewTestDB(t)
	ws := seedWorkspace(t, NewSQLiteWorkspaceRepo(db))
	repo := NewSQLiteWorkCardRepo(db)
	ctx := context.Background()

	for _, title := range []string{"first", "second", "third"} {
		require.NoError(t, repo.Create(ctx, testutil.NewTestWorkCard(ws.ID, title, testutil.WithProject("p-1"))))
	}

	cards, err := repo.ListByWorkspace(ctx, ws.ID)
	require.NoError(t, err)
	require.Len(t, cards, 3)
	assert.Equal(t, "third", cards[0].Title)
	assert.Equal(t, "first", cards[2].Title)

	byProject, err := repo.ListByProject(ctx, "p-1")
	require.NoError(t, err)
	assert.Len(t, byProject, 3)
}

func TestWorkCardRepo_ListByOrphanProject(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteWorkCardRepo(db)

	cards, err := repo.ListByProject(context.Background(), "no-such-project")
	require.NoError(t, err)
	assert.Empty(t, cards)
}

func TestWorkCardRepo_UpdateReplacesMaps(t *testing.T) {
	db := testutil.NewTestDB(t)
	ws := seedWorkspace(t, NewSQLiteWorkspaceRepo(db))
	repo := NewSQLiteWorkCardRepo(db)
	ctx := context.Background()

	card := testutil.NewTestWorkCard(ws.ID, "Ads", testutil.WithMetrics(map[string]float64{"spend": 10, "clicks": 3}))
	require.NoError(t, repo.Create(ctx, card))

	card.Metrics = map[string]float64{"impressions": 400}
	card.Status = domain.CardSubmitted
	card.CreditsUsed = 10
	require.NoError(t, repo.Update(ctx, card))

	fetched, err := repo.GetByID(ctx, card.ID)
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"impressions": 400}, fetched.Metrics)
	assert.Equal(t, domain.CardSubmitted, fetched.Status)
	assert.Equal(t, 10, fetched.CreditsUsed)
}

func TestWorkCardRepo_Update_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteWorkCardRepo(db)

	err := repo.Update(context.Background(), testutil.NewTestWorkCard("ws", "ghost"))
	assert.ErrorIs(t, err, ErrNotFound)
}
