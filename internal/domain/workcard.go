package domain

import (
	"maps"
	"slices"
	"time"
)

type Deliverable struct {
	Status DeliverableStatus `json:"status" validate:"oneof=pending ready"`
	URL    string            `json:"url,omitempty" validate:"omitempty,url"`
}

type WorkCard struct {
	ID               string
	WorkspaceID      string `validate:"required"`
	ProjectID        string
	Category         string `validate:"required"`
	Type             string `validate:"required"`
	Title            string `validate:"required,max=200"`
	Status           WorkCardStatus
	RevisionsAllowed int `validate:"gte=0"`
	Inputs           map[string]string
	Deliverables     map[string]Deliverable `validate:"dive"`
	Metrics          map[string]float64
	AISummary        string
	NextSteps        []string
	Team             []string
	SuggestedActions []string
	CreditsUsed      int `validate:"gte=0"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// WorkCardPatch carries a partial update. Nil fields are left alone; non-nil
// maps and slices replace the card's value wholesale.
type WorkCardPatch struct {
	ProjectID        *string
	Category         *string
	Type             *string
	Title            *string
	Status           *WorkCardStatus
	RevisionsAllowed *int
	Inputs           map[string]string
	Deliverables     map[string]Deliverable
	Metrics          map[string]float64
	AISummary        *string
	NextSteps        []string
	Team             []string
	SuggestedActions []string
	CreditsUsed      *int
}

// Apply merges the patch into the card. A status change is checked against the
// transition table before any field is written, so a rejected patch leaves
// the card untouched.
func (p WorkCardPatch) Apply(c *WorkCard, now time.Time) error {
	if p.Status != nil {
		if err := ValidateCardTransition(c.Status, *p.Status); err != nil {
			return err
		}
	}

	next := *c
	if p.ProjectID != nil {
		next.ProjectID = *p.ProjectID
	}
	if p.Category != nil {
		next.Category = *p.Category
	}
	if p.Type != nil {
		next.Type = *p.Type
	}
	if p.Title != nil {
		next.Title = *p.Title
	}
	if p.Status != nil {
		next.Status = *p.Status
	}
	if p.RevisionsAllowed != nil {
		next.RevisionsAllowed = *p.RevisionsAllowed
	}
	if p.Inputs != nil {
		next.Inputs = maps.Clone(p.Inputs)
	}
	if p.Deliverables != nil {
		next.Deliverables = maps.Clone(p.Deliverables)
	}
	if p.Metrics != nil {
		next.Metrics = maps.Clone(p.Metrics)
	}
	if p.AISummary != nil {
		next.AISummary = *p.AISummary
	}
	if p.NextSteps != nil {
		next.NextSteps = slices.Clone(p.NextSteps)
	}
	if p.Team != nil {
		next.Team = slices.Clone(p.Team)
	}
	if p.SuggestedActions != nil {
		next.SuggestedActions = slices.Clone(p.SuggestedActions)
	}
	if p.CreditsUsed != nil {
		next.CreditsUsed = *p.CreditsUsed
	}
	if err := Validate(&next); err != nil {
		return err
	}
	next.UpdatedAt = now
	*c = next
	return nil
}

// IsEmpty reports whether the patch would change nothing.
func (p WorkCardPatch) IsEmpty() bool {
	return p.ProjectID == nil && p.Category == nil && p.Type == nil && p.Title == nil &&
		p.Status == nil && p.RevisionsAllowed == nil && p.Inputs == nil &&
		p.Deliverables == nil && p.Metrics == nil && p.AISummary == nil &&
		p.NextSteps == nil && p.Team == nil && p.SuggestedActions == nil &&
		p.CreditsUsed == nil
}

// PendingDeliverables returns the names of deliverables not yet ready, sorted.
func (c *WorkCard) PendingDeliverables() []string {
	var names []string
	for name, d := range c.Deliverables {
		if d.Status != DeliverableReady {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names
}
