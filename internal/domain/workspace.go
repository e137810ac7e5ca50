package domain

import (
	"fmt"
	"time"
)

type Workspace struct {
	ID        string
	Name      string `validate:"required,max=120"`
	BrandName string `validate:"required,max=120"`
	Website   string `validate:"omitempty,max=2048"`
	Tone      string
	Channels  []string
	Credits   int
	Status    WorkspaceStatus `validate:"oneof=active paused"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// LedgerEntry is one immutable row of a workspace's credit history. Amount is
// always non-negative; Kind carries the direction.
type LedgerEntry struct {
	ID           string
	WorkspaceID  string
	Action       CreditAction
	Kind         LedgerKind
	Amount       int
	BalanceAfter int
	CreatedAt    time.Time
}

// Debit subtracts cost from the balance and returns the audit entry. The
// balance is only checked here, so a workspace loaded with a negative balance
// is tolerated at rest.
func (w *Workspace) Debit(action CreditAction, cost int, now time.Time) (*LedgerEntry, error) {
	if !ValidCreditActions[action] || action == ActionTopUp {
		return nil, fmt.Errorf("action %q: %w", action, ErrUnknownAction)
	}
	if cost < 0 {
		return nil, fmt.Errorf("cost %d: %w", cost, ErrInvalidAmount)
	}
	if w.Credits < cost {
		return nil, fmt.Errorf("balance %d, cost %d: %w", w.Credits, cost, ErrInsufficientCredits)
	}
	w.Credits -= cost
	w.UpdatedAt = now
	return &LedgerEntry{
		WorkspaceID:  w.ID,
		Action:       action,
		Kind:         LedgerDebit,
		Amount:       cost,
		BalanceAfter: w.Credits,
		CreatedAt:    now,
	}, nil
}

// Credit adds amount to the balance unconditionally.
func (w *Workspace) Credit(amount int, now time.Time) (*LedgerEntry, error) {
	if amount < 0 {
		return nil, fmt.Errorf("amount %d: %w", amount, ErrInvalidAmount)
	}
	w.Credits += amount
	w.UpdatedAt = now
	return &LedgerEntry{
		WorkspaceID:  w.ID,
		Action:       ActionTopUp,
		Kind:         LedgerCredit,
		Amount:       amount,
		BalanceAfter: w.Credits,
		CreatedAt:    now,
	}, nil
}

func (w *Workspace) SetStatus(status WorkspaceStatus, now time.Time) error {
	if !status.Valid() {
		return fmt.Errorf("workspace status %q: %w", status, ErrUnknownStatus)
	}
	w.Status = status
	w.UpdatedAt = now
	return nil
}

// CostOf returns the default price of an action, or false if it has none.
func CostOf(action CreditAction) (int, bool) {
	c, ok := DefaultActionCosts[action]
	return c, ok
}
