package domain

import (
	"fmt"
	"time"
)

type Project struct {
	ID               string
	WorkspaceID      string `validate:"required"`
	Name             string `validate:"required,max=160"`
	Type             ProjectType
	Status           ProjectStatus
	ReviewPreference *ReviewPreference
	TargetDate       *time.Time
	IncludedServices []string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// SetStatus moves the project along its transition table.
func (p *Project) SetStatus(next ProjectStatus, now time.Time) error {
	if err := ValidateProjectTransition(p.Status, next); err != nil {
		return err
	}
	p.Status = next
	p.UpdatedAt = now
	return nil
}

// Check validates field values that struct tags cannot express.
func (p *Project) Check() error {
	if err := Validate(p); err != nil {
		return err
	}
	if !p.Type.Valid() {
		return fmt.Errorf("project type %q: %w", p.Type, ErrValidation)
	}
	if !p.Status.Valid() {
		return fmt.Errorf("project status %q: %w", p.Status, ErrUnknownStatus)
	}
	if p.ReviewPreference != nil && *p.ReviewPreference != ReviewAsync && *p.ReviewPreference != ReviewLiveCall {
		return fmt.Errorf("review preference %q: %w", *p.ReviewPreference, ErrValidation)
	}
	return nil
}
