package formatter

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const colGap = 2

// numericCell matches credit amounts as the formatters print them: "120",
// "+50", "-3" or "20 cr".
var numericCell = regexp.MustCompile(`^[+-]?\d+(\.\d+)?%?( cr)?$`)

// RenderTable renders an aligned table with a separator under the headers.
// Widths are measured on visible text, so styled cells line up. Columns whose
// cells are all numbers are right-aligned so balances and amounts line up.
func RenderTable(headers []string, rows [][]string) string {
	if len(headers) == 0 {
		return ""
	}

	cols := len(headers)
	widths := make([]int, cols)
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i := 0; i < cols && i < len(row); i++ {
			widths[i] = max(widths[i], lipgloss.Width(row[i]))
		}
	}
	right := numericColumns(cols, rows)
	for i, h := range headers {
		// a short id prefix can happen to be all digits
		if h == "ID" {
			right[i] = false
		}
	}

	var b strings.Builder
	writeRow := func(cells []string, style func(string) string) {
		for i := 0; i < cols; i++ {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			pad := strings.Repeat(" ", max(widths[i]-lipgloss.Width(cell), 0))
			if style != nil {
				cell = style(cell)
			}
			switch {
			case right[i]:
				b.WriteString(pad + cell)
			case i < cols-1:
				b.WriteString(cell + pad)
			default:
				b.WriteString(cell)
			}
			if i < cols-1 {
				b.WriteString(strings.Repeat(" ", colGap))
			}
		}
		b.WriteString("\n")
	}

	writeRow(headers, func(s string) string { return StyleHeader.Render(s) })

	rules := make([]string, cols)
	for i, w := range widths {
		rules[i] = StyleDim.Render(strings.Repeat("─", w))
	}
	writeRow(rules, nil)

	for _, row := range rows {
		writeRow(row, nil)
	}
	return b.String()
}

// numericColumns reports the columns where every non-blank cell is a number.
// A column with no values stays left-aligned.
func numericColumns(cols int, rows [][]string) []bool {
	right := make([]bool, cols)
	for i := range right {
		seen := false
		right[i] = true
		for _, row := range rows {
			if i >= len(row) {
				continue
			}
			cell := strings.TrimSpace(ansi.Strip(row[i]))
			if cell == "" {
				continue
			}
			seen = true
			if !numericCell.MatchString(cell) {
				right[i] = false
				break
			}
		}
		right[i] = right[i] && seen
	}
	return right
}
