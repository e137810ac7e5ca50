package formatter

import (
	"fmt"

	"github.com/alexanderramin/agencyos/internal/domain"
)

// FormatProjectList renders projects with the number of cards grouped under
// each.
func FormatProjectList(projects []*domain.Project, cardCounts map[string]int) string {
	headers := []string{"ID", "NAME", "TYPE", "STATUS", "SERVICES", "CARDS", "TARGET"}
	rows := make([][]string, 0, len(projects))
	for _, p := range projects {
		target := Dim("--")
		if p.TargetDate != nil {
			target = p.TargetDate.Format("Jan 2, 2006")
		}
		rows = append(rows, []string{
			TruncID(p.ID),
			Bold(p.Name),
			humanize(string(p.Type)),
			ProjectStatusPill(p.Status),
			List(p.IncludedServices),
			fmt.Sprintf("%d", cardCounts[p.ID]),
			target,
		})
	}
	return RenderBox("Projects", RenderTable(headers, rows))
}
