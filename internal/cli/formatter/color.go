package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/agencyos/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// Header renders a section header with an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}

// humanize turns an enum value like "waiting_on_client" into "Waiting on client".
func humanize(s string) string {
	s = strings.ReplaceAll(s, "_", " ")
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func WorkspaceStatusPill(s domain.WorkspaceStatus) string {
	if s == domain.WorkspaceActive {
		return StyleGreen.Render("● Active")
	}
	return StyleYellow.Render("○ " + humanize(string(s)))
}

func ProjectStatusPill(s domain.ProjectStatus) string {
	switch s {
	case domain.ProjectActive:
		return StyleGreen.Render("● Active")
	case domain.ProjectPlanning:
		return StyleBlue.Render("◌ Planning")
	case domain.ProjectPaused:
		return StyleYellow.Render("○ Paused")
	case domain.ProjectCompleted:
		return StyleDim.Render("✔ Completed")
	default:
		return StyleDim.Render(string(s))
	}
}

// CardStatusPill colors a work card status by pipeline phase.
func CardStatusPill(s domain.WorkCardStatus) string {
	label := humanize(string(s))
	switch s {
	case domain.CardDraft, domain.CardStaged:
		return StyleDim.Render("○ " + label)
	case domain.CardSubmitted, domain.CardClarifying:
		return StyleBlue.Render("◌ " + label)
	case domain.CardReview, domain.CardQA:
		return StyleYellow.Render("◆ " + label)
	case domain.CardDelivered, domain.CardDistribution, domain.CardCompleted:
		return StyleGreen.Render("✔ " + label)
	case domain.CardArchived:
		return StyleDim.Render("✖ " + label)
	default:
		return StylePurple.Render("● " + label)
	}
}

func TicketStatusPill(s domain.TicketStatus) string {
	label := humanize(string(s))
	switch s {
	case domain.TicketOpen:
		return StyleBlue.Render("○ " + label)
	case domain.TicketInProgress:
		return StyleGreen.Render("● " + label)
	case domain.TicketWaitingOnClient:
		return StyleYellow.Render("◆ " + label)
	default:
		return StyleDim.Render("✔ " + label)
	}
}

func PriorityBadge(p domain.TicketPriority) string {
	switch p {
	case domain.PriorityUrgent:
		return StyleRed.Render("▲ URGENT")
	case domain.PriorityHigh:
		return StyleYellow.Render("▲ high")
	case domain.PriorityLow:
		return StyleDim.Render("▽ low")
	default:
		return StyleFg.Render("– normal")
	}
}

// SenderLabel renders who wrote a ticket message.
func SenderLabel(m domain.TicketMessage) string {
	switch m.SenderType {
	case domain.SenderAI:
		return StylePurple.Render("assistant")
	case domain.SenderAgent:
		return StyleGreen.Render(m.SenderID)
	default:
		return StyleBlue.Render(m.SenderID)
	}
}
