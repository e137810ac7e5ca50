package domain

import (
	"fmt"
	"time"
)

type Ticket struct {
	ID          string
	WorkspaceID string `validate:"required"`
	WorkCardID  *string
	Title       string `validate:"required,max=200"`
	Type        TicketType
	Status      TicketStatus
	Priority    TicketPriority
	Messages    []TicketMessage
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TicketMessage is one entry in a ticket thread. Seq is assigned on append and
// is the only ordering key; messages are never re-sorted by time.
type TicketMessage struct {
	ID         string
	TicketID   string
	Seq        int
	SenderID   string     `validate:"required"`
	SenderType SenderType `validate:"oneof=user agent ai"`
	Text       string     `validate:"required"`
	CreatedAt  time.Time
}

// Check validates the enum fields of a new ticket.
func (t *Ticket) Check() error {
	if err := Validate(t); err != nil {
		return err
	}
	if !t.Type.Valid() {
		return fmt.Errorf("ticket type %q: %w", t.Type, ErrValidation)
	}
	if !t.Priority.Valid() {
		return fmt.Errorf("ticket priority %q: %w", t.Priority, ErrValidation)
	}
	if !t.Status.Valid() {
		return fmt.Errorf("ticket status %q: %w", t.Status, ErrUnknownStatus)
	}
	return nil
}

// AppendMessage adds m to the end of the thread and stamps the ticket.
func (t *Ticket) AppendMessage(m TicketMessage, now time.Time) TicketMessage {
	m.TicketID = t.ID
	m.Seq = t.NextSeq()
	if m.CreatedAt.IsZero() {
		m.CreatedAt = now
	}
	t.Messages = append(t.Messages, m)
	t.UpdatedAt = now
	return m
}

// NextSeq returns the sequence number the next appended message will get.
func (t *Ticket) NextSeq() int {
	if len(t.Messages) == 0 {
		return 1
	}
	return t.Messages[len(t.Messages)-1].Seq + 1
}

func (t *Ticket) SetStatus(next TicketStatus, now time.Time) error {
	if err := ValidateTicketTransition(t.Status, next); err != nil {
		return err
	}
	t.Status = next
	t.UpdatedAt = now
	return nil
}

// HasAutoReply reports whether the thread already holds an ai message.
func (t *Ticket) HasAutoReply() bool {
	for _, m := range t.Messages {
		if m.SenderType == SenderAI {
			return true
		}
	}
	return false
}
