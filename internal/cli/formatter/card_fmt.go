package formatter

import (
	"fmt"
	"slices"
	"strings"

	"github.com/alexanderramin/agencyos/internal/domain"
)

func FormatCardList(cards []*domain.WorkCard) string {
	headers := []string{"ID", "TITLE", "CATEGORY", "STATUS", "CREDITS", "UPDATED"}
	rows := make([][]string, 0, len(cards))
	for _, c := range cards {
		rows = append(rows, []string{
			TruncID(c.ID),
			Bold(c.Title),
			StylePurple.Render(c.Category + "/" + c.Type),
			CardStatusPill(c.Status),
			fmt.Sprintf("%d", c.CreditsUsed),
			HumanTimestamp(c.UpdatedAt),
		})
	}
	return RenderBox("Work cards", RenderTable(headers, rows))
}

// FormatCard renders every populated field of a work card.
func FormatCard(c *domain.WorkCard) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n", Bold(c.Title), CardStatusPill(c.Status))
	fmt.Fprintf(&b, "%s %s\n", Dim("id:       "), c.ID)
	fmt.Fprintf(&b, "%s %s\n", Dim("project:  "), Or(c.ProjectID))
	fmt.Fprintf(&b, "%s %s/%s\n", Dim("kind:     "), c.Category, c.Type)
	fmt.Fprintf(&b, "%s %d\n", Dim("revisions:"), c.RevisionsAllowed)
	fmt.Fprintf(&b, "%s %d\n", Dim("credits:  "), c.CreditsUsed)

	if len(c.Inputs) > 0 {
		b.WriteString("\n" + Header("Inputs") + "\n")
		for _, k := range sortedKeys(c.Inputs) {
			fmt.Fprintf(&b, "  %s %s\n", Dim(k+":"), c.Inputs[k])
		}
	}
	if len(c.Deliverables) > 0 {
		b.WriteString("\n" + Header("Deliverables") + "\n")
		for _, k := range sortedKeys(c.Deliverables) {
			d := c.Deliverables[k]
			mark := StyleYellow.Render("○ pending")
			if d.Status == domain.DeliverableReady {
				mark = StyleGreen.Render("✔ ready")
			}
			line := fmt.Sprintf("  %s %s", mark, k)
			if d.URL != "" {
				line += " " + Dim(d.URL)
			}
			b.WriteString(line + "\n")
		}
	}
	if len(c.Metrics) > 0 {
		b.WriteString("\n" + Header("Metrics") + "\n")
		for _, k := range sortedKeys(c.Metrics) {
			fmt.Fprintf(&b, "  %s %s\n", Dim(k+":"), Number(c.Metrics[k]))
		}
	}
	if c.AISummary != "" {
		b.WriteString("\n" + Header("Summary") + "\n  " + c.AISummary + "\n")
	}
	if len(c.NextSteps) > 0 {
		b.WriteString("\n" + Header("Next steps") + "\n")
		for _, s := range c.NextSteps {
			b.WriteString("  • " + s + "\n")
		}
	}
	if len(c.Team) > 0 {
		fmt.Fprintf(&b, "\n%s %s\n", Dim("team:"), List(c.Team))
	}
	return RenderBox("Work card", strings.TrimRight(b.String(), "\n"))
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
