package domain

import "fmt"

// cardTransitions lists, for each work card status, the statuses it may move to.
// Video work runs scripting → filming → editing; small requests may go from
// submitted straight to review.
var cardTransitions = map[WorkCardStatus][]WorkCardStatus{
	CardDraft:        {CardSubmitted, CardStaged, CardArchived},
	CardSubmitted:    {CardClarifying, CardStaged, CardInProgress, CardInProduction, CardScripting, CardReview, CardArchived},
	CardClarifying:   {CardSubmitted, CardInProgress, CardInProduction, CardArchived},
	CardStaged:       {CardSubmitted, CardInProgress, CardInProduction, CardScripting, CardArchived},
	CardInProgress:   {CardClarifying, CardQA, CardReview, CardInProduction, CardArchived},
	CardInProduction: {CardClarifying, CardQA, CardReview, CardArchived},
	CardScripting:    {CardFilming, CardClarifying, CardArchived},
	CardFilming:      {CardEditing, CardArchived},
	CardEditing:      {CardQA, CardReview, CardArchived},
	CardQA:           {CardReview, CardInProgress, CardInProduction, CardEditing, CardArchived},
	CardReview:       {CardDelivered, CardInProgress, CardInProduction, CardEditing, CardArchived},
	CardDelivered:    {CardCompleted, CardDistribution, CardReview, CardArchived},
	CardDistribution: {CardCompleted, CardArchived},
	CardCompleted:    {CardArchived},
	CardArchived:     {},
}

var ticketTransitions = map[TicketStatus][]TicketStatus{
	TicketOpen:            {TicketInProgress, TicketWaitingOnClient, TicketResolved, TicketClosed},
	TicketInProgress:      {TicketWaitingOnClient, TicketResolved, TicketClosed},
	TicketWaitingOnClient: {TicketInProgress, TicketResolved, TicketClosed},
	TicketResolved:        {TicketClosed, TicketOpen},
	TicketClosed:          {},
}

var projectTransitions = map[ProjectStatus][]ProjectStatus{
	ProjectPlanning:  {ProjectActive, ProjectPaused},
	ProjectActive:    {ProjectPaused, ProjectCompleted},
	ProjectPaused:    {ProjectActive, ProjectPlanning},
	ProjectCompleted: {},
}

func (s WorkCardStatus) Valid() bool {
	_, ok := cardTransitions[s]
	return ok
}

func (s TicketStatus) Valid() bool {
	_, ok := ticketTransitions[s]
	return ok
}

func (s ProjectStatus) Valid() bool {
	_, ok := projectTransitions[s]
	return ok
}

// CanTransition reports whether a card may move from s to next. Staying in
// the same status is always allowed.
func (s WorkCardStatus) CanTransition(next WorkCardStatus) bool {
	return allowed(cardTransitions, s, next)
}

func (s TicketStatus) CanTransition(next TicketStatus) bool {
	return allowed(ticketTransitions, s, next)
}

func (s ProjectStatus) CanTransition(next ProjectStatus) bool {
	return allowed(projectTransitions, s, next)
}

// ValidateCardTransition returns ErrUnknownStatus for statuses outside the
// enum and a *TransitionError for moves the table forbids.
func ValidateCardTransition(from, to WorkCardStatus) error {
	return validateTransition("work card", cardTransitions, from, to)
}

func ValidateTicketTransition(from, to TicketStatus) error {
	return validateTransition("ticket", ticketTransitions, from, to)
}

func ValidateProjectTransition(from, to ProjectStatus) error {
	return validateTransition("project", projectTransitions, from, to)
}

func allowed[S comparable](table map[S][]S, from, to S) bool {
	if from == to {
		_, ok := table[from]
		return ok
	}
	for _, s := range table[from] {
		if s == to {
			return true
		}
	}
	return false
}

func validateTransition[S ~string](entity string, table map[S][]S, from, to S) error {
	if _, ok := table[to]; !ok {
		return fmt.Errorf("%s status %q: %w", entity, to, ErrUnknownStatus)
	}
	if _, ok := table[from]; !ok {
		return fmt.Errorf("%s status %q: %w", entity, from, ErrUnknownStatus)
	}
	if !allowed(table, from, to) {
		return &TransitionError{Entity: entity, From: string(from), To: string(to)}
	}
	return nil
}
