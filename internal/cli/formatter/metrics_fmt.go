package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/agencyos/internal/importer"
)

// FormatMetrics renders the aggregate of an imported CSV.
func FormatMetrics(title string, m importer.Metrics) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", Dim("spend:      "), Money(m.Spend))
	fmt.Fprintf(&b, "%s %s\n", Dim("impressions:"), Number(m.Impressions))
	fmt.Fprintf(&b, "%s %s\n", Dim("clicks:     "), Number(m.Clicks))
	if m.Impressions > 0 {
		fmt.Fprintf(&b, "%s %s\n", Dim("ctr:        "), Percent(m.CTR()))
	}
	if m.Clicks > 0 {
		fmt.Fprintf(&b, "%s %s\n", Dim("cpc:        "), Money(m.CPC()))
	}
	fmt.Fprintf(&b, "\n%s", Dim(fmt.Sprintf("%d rows, columns: %s", m.Rows, strings.Join(m.Columns, ", "))))
	if m.SkippedCells > 0 {
		b.WriteString("\n" + StyleYellow.Render(fmt.Sprintf("%d unreadable cell(s) counted as zero", m.SkippedCells)))
	}
	return RenderBox(title, b.String())
}
