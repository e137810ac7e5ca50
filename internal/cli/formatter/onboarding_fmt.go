package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/agencyos/internal/domain"
)

// FormatDrafts renders the project proposals awaiting confirmation.
func FormatDrafts(drafts []domain.ProjectDraft) string {
	headers := []string{"KEY", "", "PROJECT", "TYPE", "SERVICES"}
	rows := make([][]string, 0, len(drafts))
	for _, d := range drafts {
		mark := StyleGreen.Render("✔")
		if !d.Selected {
			mark = Dim("·")
		}
		rows = append(rows, []string{Dim(d.Key), mark, Bold(d.Name), humanize(string(d.Type)), List(d.Services)})
	}
	return RenderBox("Proposed projects", RenderTable(headers, rows))
}

// FormatOnboarding summarizes a completed onboarding.
func FormatOnboarding(ws *domain.Workspace, projects []*domain.Project, cards int, replaced int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s %s\n", StyleGreen.Render("✔"), Bold(ws.Name), Dim("("+ws.ID+")"))
	fmt.Fprintf(&b, "  %s %d cr\n", Dim("credits:"), ws.Credits)
	fmt.Fprintf(&b, "  %s %d, %s %d\n", Dim("projects:"), len(projects), Dim("staged cards:"), cards)
	if replaced > 0 {
		fmt.Fprintf(&b, "  %s\n", StyleYellow.Render(fmt.Sprintf("replaced %d earlier project(s)", replaced)))
	}
	for _, p := range projects {
		fmt.Fprintf(&b, "  • %s %s\n", p.Name, Dim("["+List(p.IncludedServices)+"]"))
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatSeed summarizes demo data creation.
func FormatSeed(ws *domain.Workspace, projects, cards, tickets int) string {
	return fmt.Sprintf("%s Seeded %s %s: %d projects, %d cards, %d tickets, %d cr left",
		StyleGreen.Render("✔"), Bold(ws.Name), Dim("("+ws.ID+")"), projects, cards, tickets, ws.Credits)
}
