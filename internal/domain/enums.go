package domain

type WorkspaceStatus string

const (
	WorkspaceActive WorkspaceStatus = "active"
	WorkspacePaused WorkspaceStatus = "paused"
)

type ProjectStatus string

const (
	ProjectPlanning  ProjectStatus = "planning"
	ProjectActive    ProjectStatus = "active"
	ProjectCompleted ProjectStatus = "completed"
	ProjectPaused    ProjectStatus = "paused"
)

type ProjectType string

const (
	ProjectCampaign ProjectType = "campaign"
	ProjectRetainer ProjectType = "retainer"
	ProjectOneOff   ProjectType = "one_off"
)

type ReviewPreference string

const (
	ReviewAsync    ReviewPreference = "async"
	ReviewLiveCall ReviewPreference = "live_call"
)

type WorkCardStatus string

const (
	CardDraft        WorkCardStatus = "draft"
	CardSubmitted    WorkCardStatus = "submitted"
	CardClarifying   WorkCardStatus = "clarifying"
	CardStaged       WorkCardStatus = "staged"
	CardInProgress   WorkCardStatus = "in_progress"
	CardInProduction WorkCardStatus = "in_production"
	CardScripting    WorkCardStatus = "scripting"
	CardFilming      WorkCardStatus = "filming"
	CardEditing      WorkCardStatus = "editing"
	CardQA           WorkCardStatus = "qa"
	CardReview       WorkCardStatus = "review"
	CardDelivered    WorkCardStatus = "delivered"
	CardDistribution WorkCardStatus = "distribution"
	CardCompleted    WorkCardStatus = "completed"
	CardArchived     WorkCardStatus = "archived"
)

type DeliverableStatus string

const (
	DeliverablePending DeliverableStatus = "pending"
	DeliverableReady   DeliverableStatus = "ready"
)

type TicketType string

const (
	TicketClarification TicketType = "clarification"
	TicketRevision      TicketType = "revision"
	TicketIssue         TicketType = "issue"
	TicketRequest       TicketType = "request"
	TicketAnnouncement  TicketType = "announcement"
)

type TicketStatus string

const (
	TicketOpen            TicketStatus = "open"
	TicketInProgress      TicketStatus = "in_progress"
	TicketWaitingOnClient TicketStatus = "waiting_on_client"
	TicketResolved        TicketStatus = "resolved"
	TicketClosed          TicketStatus = "closed"
)

type TicketPriority string

const (
	PriorityLow    TicketPriority = "low"
	PriorityNormal TicketPriority = "normal"
	PriorityHigh   TicketPriority = "high"
	PriorityUrgent TicketPriority = "urgent"
)

type SenderType string

const (
	SenderUser  SenderType = "user"
	SenderAgent SenderType = "agent"
	SenderAI    SenderType = "ai"
)

// CreditAction tags a ledger entry with the reason credits moved.
type CreditAction string

const (
	ActionNewRequest       CreditAction = "NEW_REQUEST"
	ActionRevision         CreditAction = "REVISION"
	ActionRushDelivery     CreditAction = "RUSH_DELIVERY"
	ActionExtraDeliverable CreditAction = "EXTRA_DELIVERABLE"
	ActionStrategyCall     CreditAction = "STRATEGY_CALL"
	ActionTopUp            CreditAction = "TOP_UP"
)

type LedgerKind string

const (
	LedgerDebit  LedgerKind = "debit"
	LedgerCredit LedgerKind = "credit"
)

// DefaultActionCosts is the price list applied when a caller does not pass an
// explicit cost.
var DefaultActionCosts = map[CreditAction]int{
	ActionNewRequest:       10,
	ActionRevision:         3,
	ActionRushDelivery:     15,
	ActionExtraDeliverable: 5,
	ActionStrategyCall:     8,
}

// ValidCreditActions is the canonical set of accepted ledger action tags.
var ValidCreditActions = map[CreditAction]bool{
	ActionNewRequest: true, ActionRevision: true, ActionRushDelivery: true,
	ActionExtraDeliverable: true, ActionStrategyCall: true, ActionTopUp: true,
}

var validWorkspaceStatuses = map[WorkspaceStatus]bool{
	WorkspaceActive: true, WorkspacePaused: true,
}

func (s WorkspaceStatus) Valid() bool { return validWorkspaceStatuses[s] }

var validTicketTypes = map[TicketType]bool{
	TicketClarification: true, TicketRevision: true, TicketIssue: true,
	TicketRequest: true, TicketAnnouncement: true,
}

func (t TicketType) Valid() bool { return validTicketTypes[t] }

var validPriorities = map[TicketPriority]bool{
	PriorityLow: true, PriorityNormal: true, PriorityHigh: true, PriorityUrgent: true,
}

func (p TicketPriority) Valid() bool { return validPriorities[p] }

var validProjectTypes = map[ProjectType]bool{
	ProjectCampaign: true, ProjectRetainer: true, ProjectOneOff: true,
}

func (t ProjectType) Valid() bool { return validProjectTypes[t] }
