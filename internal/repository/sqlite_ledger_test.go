package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/agencyos/internal/domain"
	"github.com/alexanderramin/agencyos/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEntry(wsID string, action domain.CreditAction, amount, balance int) *domain.LedgerEntry {
	kind := domain.LedgerDebit
	if action == domain.ActionTopUp {
		kind = domain.LedgerCredit
	}
	return &domain.LedgerEntry{
		ID:           uuid.New().String(),
		WorkspaceID:  wsID,
		Action:       action,
		Kind:         kind,
		Amount:       amount,
		BalanceAfter: balance,
		CreatedAt:    time.Now().UTC(),
	}
}

func TestLedgerRepo_MostRecentFirst(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	ws := testutil.NewTestWorkspace("Acme")
	require.NoError(t, NewSQLiteWorkspaceRepo(db).Create(ctx, ws))
	repo := NewSQLiteLedgerRepo(db)

	require.NoError(t, repo.Append(ctx, newEntry(ws.ID, domain.ActionNewRequest, 10, 90)))
	require.NoError(t, repo.Append(ctx, newEntry(ws.ID, domain.ActionRevision, 3, 87)))
	require.NoError(t, repo.Append(ctx, newEntry(ws.ID, domain.ActionTopUp, 20, 107)))

	entries, err := repo.ListByWorkspace(ctx, ws.ID, 0)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, domain.ActionTopUp, entries[0].Action)
	assert.Equal(t, domain.LedgerCredit, entries[0].Kind)
	assert.Equal(t, 107, entries[0].BalanceAfter)
	assert.Equal(t, domain.ActionNewRequest, entries[2].Action)

	limited, err := repo.ListByWorkspace(ctx, ws.ID, 2)
	require.NoError(t, err)
	require.Len(t, limited, 2)
	assert.Equal(t, domain.ActionRevision, limited[1].Action)
}

func TestLedgerRepo_ScopedToWorkspace(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	wsRepo := NewSQLiteWorkspaceRepo(db)
	a := testutil.NewTestWorkspace("A")
	b := testutil.NewTestWorkspace("B")
	require.NoError(t, wsRepo.Create(ctx, a))
	require.NoError(t, wsRepo.Create(ctx, b))
	repo := NewSQLiteLedgerRepo(db)

	require.NoError(t, repo.Append(ctx, newEntry(a.ID, domain.ActionRevision, 3, 97)))

	entries, err := repo.ListByWorkspace(ctx, b.ID, 0)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestLedgerRepo_UnknownWorkspaceRejected(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteLedgerRepo(db)

	err := repo.Append(context.Background(), newEntry("missing", domain.ActionRevision, 3, 0))
	assert.Error(t, err)
}
