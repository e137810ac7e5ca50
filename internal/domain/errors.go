package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInsufficientCredits = errors.New("insufficient credits")
	ErrInvalidAmount       = errors.New("invalid credit amount")
	ErrUnknownAction       = errors.New("unknown credit action")
	ErrUnknownStatus       = errors.New("unknown status")
	ErrInvalidTransition   = errors.New("invalid status transition")
	ErrNoProjectsSelected  = errors.New("select at least one project")
	ErrDraftNotFound       = errors.New("project draft not found")
)

// TransitionError reports a status change the transition table does not allow.
type TransitionError struct {
	Entity string
	From   string
	To     string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s: cannot move from %q to %q", e.Entity, e.From, e.To)
}

func (e *TransitionError) Unwrap() error { return ErrInvalidTransition }

// ErrValidation wraps struct validation failures reported by Validate.
var ErrValidation = errors.New("validation failed")
