package service

import (
	"context"
	"errors"
	"time"

	"github.com/alexanderramin/agencyos/internal/autoreply"
	"github.com/alexanderramin/agencyos/internal/db"
	"github.com/alexanderramin/agencyos/internal/domain"
	"github.com/alexanderramin/agencyos/internal/repository"
	"github.com/google/uuid"
)

// ReplyScheduler runs one delayed task per ticket id.
type ReplyScheduler interface {
	Delay() time.Duration
	Schedule(id string, fn autoreply.Task) bool
	ScheduleAfter(id string, delay time.Duration, fn autoreply.Task) bool
	Cancel(id string) bool
	Wait(ctx context.Context, id string) error
	Close()
}

type ticketService struct {
	tickets  repository.TicketRepo
	uow      db.UnitOfWork
	replies  ReplyScheduler
	observer UseCaseObserver
}

func NewTicketService(
	tickets repository.TicketRepo,
	uow db.UnitOfWork,
	replies ReplyScheduler,
	observers ...UseCaseObserver,
) TicketService {
	return &ticketService{
		tickets:  tickets,
		uow:      uow,
		replies:  replies,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *ticketService) Create(ctx context.Context, t *domain.Ticket) (err error) {
	fields := map[string]any{"workspace": t.WorkspaceID, "type": string(t.Type)}
	ctx, done := track(ctx, s.observer, "create-ticket", fields)
	defer func() { done(err) }()

	now := time.Now().UTC()
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	t.Status = domain.Coalesce(t.Status, domain.TicketOpen)
	t.Priority = domain.Coalesce(t.Priority, domain.PriorityNormal)
	t.CreatedAt = now
	t.UpdatedAt = now
	if err = t.Check(); err != nil {
		return err
	}
	initial := t.Messages
	t.Messages = nil
	for i := range initial {
		if err = prepareMessage(&initial[i]); err != nil {
			return err
		}
	}
	fields["ticket"] = t.ID

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if _, err := repository.NewSQLiteWorkspaceRepo(tx).GetByID(ctx, t.WorkspaceID); err != nil {
			return err
		}
		if t.WorkCardID != nil {
			if _, err := repository.NewSQLiteWorkCardRepo(tx).GetByID(ctx, *t.WorkCardID); err != nil {
				return err
			}
		}
		repo := repository.NewSQLiteTicketRepo(tx)
		if err := repo.Create(ctx, t); err != nil {
			return err
		}
		for _, m := range initial {
			if _, err := appendMessage(ctx, repo, t, m, now); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		t.Messages = initial
		return err
	}

	s.replies.Schedule(t.ID, s.autoReplyTask(t.ID))
	return nil
}

func prepareMessage(m *domain.TicketMessage) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	m.SenderType = domain.Coalesce(m.SenderType, domain.SenderUser)
	return domain.Validate(m)
}

// appendMessage adds m to t in memory and in the store, keeping the stored
// sequence number.
func appendMessage(ctx context.Context, repo repository.TicketRepo, t *domain.Ticket, m domain.TicketMessage, now time.Time) (domain.TicketMessage, error) {
	m = t.AppendMessage(m, now)
	seq, err := repo.AppendMessage(ctx, m)
	if err != nil {
		return domain.TicketMessage{}, err
	}
	m.Seq = seq
	t.Messages[len(t.Messages)-1].Seq = seq
	if err := repo.Update(ctx, t); err != nil {
		return domain.TicketMessage{}, err
	}
	return m, nil
}

// autoReplyTask posts the canned reply for a ticket unless the ticket was
// closed or already has one.
func (s *ticketService) autoReplyTask(ticketID string) autoreply.Task {
	return func(ctx context.Context) error {
		ctx = db.WithUseCase(ctx, "post-auto-reply")
		return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
			repo := repository.NewSQLiteTicketRepo(tx)
			t, err := repo.GetByID(ctx, ticketID)
			if err != nil {
				return err
			}
			if t.Status == domain.TicketClosed || t.HasAutoReply() {
				return nil
			}
			m := domain.NewAutoReply(t)
			m.ID = uuid.New().String()
			_, err = appendMessage(ctx, repo, t, m, time.Now().UTC())
			return err
		})
	}
}

// ResumeAutoReplies schedules the reply of every open ticket that lacks one,
// counting the delay from the ticket's creation. It returns the ids whose
// reply was already overdue and so runs right away.
func (s *ticketService) ResumeAutoReplies(ctx context.Context) (due []string, err error) {
	ctx, done := track(ctx, s.observer, "resume-auto-replies", nil)
	defer func() { done(err) }()

	pending, err := s.tickets.ListAwaitingAutoReply(ctx)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	for _, t := range pending {
		remaining := s.replies.Delay() - now.Sub(t.CreatedAt)
		if !s.replies.ScheduleAfter(t.ID, remaining, s.autoReplyTask(t.ID)) {
			continue
		}
		if remaining <= 0 {
			due = append(due, t.ID)
		}
	}
	return due, nil
}

func (s *ticketService) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	return s.tickets.GetByID(ctx, id)
}

func (s *ticketService) ListByWorkspace(ctx context.Context, workspaceID string) ([]*domain.Ticket, error) {
	return s.tickets.ListByWorkspace(ctx, workspaceID)
}

func (s *ticketService) ListByWorkCard(ctx context.Context, workCardID string) ([]*domain.Ticket, error) {
	return s.tickets.ListByWorkCard(ctx, workCardID)
}

func (s *ticketService) AddMessage(ctx context.Context, ticketID string, m domain.TicketMessage) (domain.TicketMessage, error) {
	if err := prepareMessage(&m); err != nil {
		return domain.TicketMessage{}, err
	}
	var stored domain.TicketMessage
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := repository.NewSQLiteTicketRepo(tx)
		t, err := repo.GetByID(ctx, ticketID)
		if err != nil {
			return err
		}
		stored, err = appendMessage(ctx, repo, t, m, time.Now().UTC())
		return err
	})
	if err != nil {
		return domain.TicketMessage{}, err
	}
	return stored, nil
}

func (s *ticketService) SetStatus(ctx context.Context, ticketID string, status domain.TicketStatus) (err error) {
	ctx, done := track(ctx, s.observer, "set-ticket-status", map[string]any{"ticket": ticketID, "status": string(status)})
	defer func() { done(err) }()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := repository.NewSQLiteTicketRepo(tx)
		t, err := repo.GetByID(ctx, ticketID)
		if err != nil {
			return err
		}
		if err := t.SetStatus(status, time.Now().UTC()); err != nil {
			return err
		}
		return repo.Update(ctx, t)
	})
	if err != nil {
		return err
	}
	if status == domain.TicketClosed {
		s.replies.Cancel(ticketID)
	}
	return nil
}

func (s *ticketService) WaitForAutoReply(ctx context.Context, ticketID string) error {
	err := s.replies.Wait(ctx, ticketID)
	if errors.Is(err, autoreply.ErrNotScheduled) {
		if _, getErr := s.tickets.GetByID(ctx, ticketID); getErr != nil {
			return getErr
		}
	}
	return err
}

func (s *ticketService) Close() {
	s.replies.Close()
}
