package service

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/agencyos/internal/autoreply"
	"github.com/alexanderramin/agencyos/internal/db"
	"github.com/alexanderramin/agencyos/internal/domain"
	"github.com/alexanderramin/agencyos/internal/repository"
	"github.com/alexanderramin/agencyos/internal/testutil"
	"github.com/stretchr/testify/require"
)

const testReplyDelay = 5 * time.Millisecond

type testRepos struct {
	db         *sql.DB
	uow        db.UnitOfWork
	workspaces *repository.SQLiteWorkspaceRepo
	ledger     *repository.SQLiteLedgerRepo
	projects   *repository.SQLiteProjectRepo
	cards      *repository.SQLiteWorkCardRepo
	tickets    *repository.SQLiteTicketRepo
}

func setupRepos(t *testing.T) *testRepos {
	t.Helper()
	database := testutil.NewTestDB(t)
	return &testRepos{
		db:         database,
		uow:        testutil.NewTestUoW(database),
		workspaces: repository.NewSQLiteWorkspaceRepo(database),
		ledger:     repository.NewSQLiteLedgerRepo(database),
		projects:   repository.NewSQLiteProjectRepo(database),
		cards:      repository.NewSQLiteWorkCardRepo(database),
		tickets:    repository.NewSQLiteTicketRepo(database),
	}
}

func (r *testRepos) seedWorkspace(t *testing.T, credits int) *domain.Workspace {
	t.Helper()
	ws := testutil.NewTestWorkspace("Acme", testutil.WithCredits(credits))
	require.NoError(t, r.workspaces.Create(context.Background(), ws))
	return ws
}

func (r *testRepos) ledgerLen(t *testing.T, workspaceID string) int {
	t.Helper()
	entries, err := r.ledger.ListByWorkspace(context.Background(), workspaceID, 0)
	require.NoError(t, err)
	return len(entries)
}

func (r *testRepos) ticketService(t *testing.T, delay time.Duration, observers ...UseCaseObserver) TicketService {
	t.Helper()
	svc := NewTicketService(r.tickets, r.uow, autoreply.New(delay, nil), observers...)
	t.Cleanup(svc.Close)
	return svc
}

// recordingObserver keeps every event it sees.
type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, e)
}

func (o *recordingObserver) last(name string) (UseCaseEvent, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	for i := len(o.events) - 1; i >= 0; i-- {
		if o.events[i].Name == name {
			return o.events[i], true
		}
	}
	return UseCaseEvent{}, false
}
