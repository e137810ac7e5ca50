package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alexanderramin/agencyos/internal/autoreply"
	"github.com/alexanderramin/agencyos/internal/domain"
	"github.com/alexanderramin/agencyos/internal/repository"
	"github.com/alexanderramin/agencyos/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitCtx(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestTicketCreate_IssueGetsOneAutoReply(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	ws := r.seedWorkspace(t, 0)
	svc := r.ticketService(t, testReplyDelay)

	tk := testutil.NewTestTicket(ws.ID, "Ad account locked", testutil.WithTicketType(domain.TicketIssue))
	tk.Messages = []domain.TicketMessage{testutil.NewTestMessage("u-1", "We can't log in")}
	require.NoError(t, svc.Create(ctx, tk))

	require.NoError(t, svc.WaitForAutoReply(waitCtx(t), tk.ID))

	got, err := svc.GetByID(ctx, tk.ID)
	require.NoError(t, err)
	require.Len(t, got.Messages, 2)
	reply := got.Messages[1]
	assert.Equal(t, domain.SenderAI, reply.SenderType)
	assert.Equal(t, domain.AutoReplySenderID, reply.SenderID)
	assert.Equal(t, domain.AutoReplyText(domain.TicketIssue), reply.Text)
	assert.Equal(t, 2, reply.Seq)
}

func TestTicketCreate_Defaults(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	ws := r.seedWorkspace(t, 0)
	svc := r.ticketService(t, time.Hour)

	tk := &domain.Ticket{WorkspaceID: ws.ID, Title: "Question", Type: domain.TicketClarification}
	require.NoError(t, svc.Create(ctx, tk))
	assert.NotEmpty(t, tk.ID)
	assert.Equal(t, domain.TicketOpen, tk.Status)
	assert.Equal(t, domain.PriorityNormal, tk.Priority)

	got, err := svc.GetByID(ctx, tk.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Messages)
}

func TestTicketCreate_Rejects(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	ws := r.seedWorkspace(t, 0)
	svc := r.ticketService(t, time.Hour)

	assert.ErrorIs(t, svc.Create(ctx, testutil.NewTestTicket("missing", "x")), repository.ErrNotFound)
	assert.ErrorIs(t, svc.Create(ctx, testutil.NewTestTicket(ws.ID, "x", testutil.WithWorkCard("no-card"))), repository.ErrNotFound)
	assert.ErrorIs(t, svc.Create(ctx, testutil.NewTestTicket(ws.ID, "x", testutil.WithTicketType("complaint"))), domain.ErrValidation)

	tickets, err := svc.ListByWorkspace(ctx, ws.ID)
	require.NoError(t, err)
	assert.Empty(t, tickets)
}

func TestTicketAddMessage_KeepsOrder(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	ws := r.seedWorkspace(t, 0)
	svc := r.ticketService(t, time.Hour)

	tk := testutil.NewTestTicket(ws.ID, "Thread")
	require.NoError(t, svc.Create(ctx, tk))

	for i := 0; i < 4; i++ {
		m, err := svc.AddMessage(ctx, tk.ID, domain.TicketMessage{
			SenderID: "u-1",
			Text:     fmt.Sprintf("msg %d", i),
			// older timestamps must not reorder the thread
			CreatedAt: time.Now().UTC().Add(-time.Duration(i) * time.Hour),
		})
		require.NoError(t, err)
		assert.Equal(t, i+1, m.Seq)
	}

	got, err := svc.GetByID(ctx, tk.ID)
	require.NoError(t, err)
	require.Len(t, got.Messages, 4)
	for i, m := range got.Messages {
		assert.Equal(t, fmt.Sprintf("msg %d", i), m.Text)
		assert.Equal(t, domain.SenderUser, m.SenderType)
	}
}

func TestTicketAddMessage_Errors(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	svc := r.ticketService(t, time.Hour)

	_, err := svc.AddMessage(ctx, "missing", testutil.NewTestMessage("u-1", "hi"))
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = svc.AddMessage(ctx, "missing", domain.TicketMessage{SenderID: "u-1"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestTicketSetStatus(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	ws := r.seedWorkspace(t, 0)
	svc := r.ticketService(t, time.Hour)

	tk := testutil.NewTestTicket(ws.ID, "Lifecycle")
	require.NoError(t, svc.Create(ctx, tk))

	require.NoError(t, svc.SetStatus(ctx, tk.ID, domain.TicketResolved))
	require.NoError(t, svc.SetStatus(ctx, tk.ID, domain.TicketOpen), "resolved tickets may reopen")

	err := svc.SetStatus(ctx, tk.ID, "escalated")
	assert.ErrorIs(t, err, domain.ErrUnknownStatus)

	require.NoError(t, svc.SetStatus(ctx, tk.ID, domain.TicketClosed))
	err = svc.SetStatus(ctx, tk.ID, domain.TicketOpen)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	got, err := svc.GetByID(ctx, tk.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TicketClosed, got.Status)

	assert.ErrorIs(t, svc.SetStatus(ctx, "missing", domain.TicketClosed), repository.ErrNotFound)
}

func TestTicketClosedBeforeReply_NoAIMessage(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	ws := r.seedWorkspace(t, 0)
	svc := r.ticketService(t, time.Hour)

	tk := testutil.NewTestTicket(ws.ID, "Never mind")
	require.NoError(t, svc.Create(ctx, tk))
	require.NoError(t, svc.SetStatus(ctx, tk.ID, domain.TicketClosed))

	assert.ErrorIs(t, svc.WaitForAutoReply(waitCtx(t), tk.ID), autoreply.ErrCancelled)

	got, err := svc.GetByID(ctx, tk.ID)
	require.NoError(t, err)
	assert.False(t, got.HasAutoReply())
}

func TestAutoReplyTask_Idempotent(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	ws := r.seedWorkspace(t, 0)
	svc := r.ticketService(t, time.Hour)

	tk := testutil.NewTestTicket(ws.ID, "Twice", testutil.WithTicketType(domain.TicketRevision))
	require.NoError(t, svc.Create(ctx, tk))

	task := svc.(*ticketService).autoReplyTask(tk.ID)
	require.NoError(t, task(ctx))
	require.NoError(t, task(ctx))

	got, err := svc.GetByID(ctx, tk.ID)
	require.NoError(t, err)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, domain.AutoReplyText(domain.TicketRevision), got.Messages[0].Text)
}

func TestAutoReplyTask_SkipsClosedTicket(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	ws := r.seedWorkspace(t, 0)
	svc := r.ticketService(t, time.Hour)

	tk := testutil.NewTestTicket(ws.ID, "Closed", testutil.WithTicketStatus(domain.TicketClosed))
	require.NoError(t, svc.Create(ctx, tk))

	require.NoError(t, svc.(*ticketService).autoReplyTask(tk.ID)(ctx))

	got, err := svc.GetByID(ctx, tk.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Messages)
}

func TestWaitForAutoReply_UnknownTicket(t *testing.T) {
	r := setupRepos(t)
	svc := r.ticketService(t, testReplyDelay)

	err := svc.WaitForAutoReply(waitCtx(t), "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestTicketListByWorkCard(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	ws := r.seedWorkspace(t, 0)
	card := testutil.NewTestWorkCard(ws.ID, "Banner")
	require.NoError(t, r.cards.Create(ctx, card))
	svc := r.ticketService(t, time.Hour)

	require.NoError(t, svc.Create(ctx, testutil.NewTestTicket(ws.ID, "About banner", testutil.WithWorkCard(card.ID))))
	require.NoError(t, svc.Create(ctx, testutil.NewTestTicket(ws.ID, "General")))

	byCard, err := svc.ListByWorkCard(ctx, card.ID)
	require.NoError(t, err)
	require.Len(t, byCard, 1)
	assert.Equal(t, "About banner", byCard[0].Title)

	all, err := svc.ListByWorkspace(ctx, ws.ID)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestTicketCreate_ObserverFields(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	ws := r.seedWorkspace(t, 0)
	obs := &recordingObserver{}
	svc := r.ticketService(t, time.Hour, obs)

	tk := testutil.NewTestTicket(ws.ID, "Observed")
	require.NoError(t, svc.Create(ctx, tk))

	e, ok := obs.last("create-ticket")
	require.True(t, ok)
	assert.True(t, e.Success)
	assert.Equal(t, tk.ID, e.Fields["ticket"])
}

func TestResumeAutoReplies_PostsRepliesLostOnExit(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	ws := r.seedWorkspace(t, 0)

	first := NewTicketService(r.tickets, r.uow, autoreply.New(time.Hour, nil))
	open := testutil.NewTestTicket(ws.ID, "Open", testutil.WithTicketType(domain.TicketRequest))
	closed := testutil.NewTestTicket(ws.ID, "Closed")
	require.NoError(t, first.Create(ctx, open))
	require.NoError(t, first.Create(ctx, closed))
	require.NoError(t, first.SetStatus(ctx, closed.ID, domain.TicketClosed))
	first.Close()

	next := r.ticketService(t, 0)
	due, err := next.ResumeAutoReplies(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{open.ID}, due)
	require.NoError(t, next.WaitForAutoReply(waitCtx(t), open.ID))

	got, err := next.GetByID(ctx, open.ID)
	require.NoError(t, err)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, domain.AutoReplyText(domain.TicketRequest), got.Messages[0].Text)

	got, err = next.GetByID(ctx, closed.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Messages)

	due, err = next.ResumeAutoReplies(ctx)
	require.NoError(t, err)
	assert.Empty(t, due, "answered tickets are not picked up again")
}

func TestResumeAutoReplies_KeepsRemainingDelay(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	ws := r.seedWorkspace(t, 0)

	first := NewTicketService(r.tickets, r.uow, autoreply.New(time.Hour, nil))
	tk := testutil.NewTestTicket(ws.ID, "Fresh")
	require.NoError(t, first.Create(ctx, tk))
	first.Close()

	next := r.ticketService(t, time.Hour)
	due, err := next.ResumeAutoReplies(ctx)
	require.NoError(t, err)
	assert.Empty(t, due)

	short, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, next.WaitForAutoReply(short, tk.ID), context.DeadlineExceeded, "reply is scheduled, not posted yet")
}
