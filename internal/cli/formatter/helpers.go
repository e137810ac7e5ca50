package formatter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		titleRendered := StyleHeader.Render(strings.ToUpper(title))
		return boxStyle.Render(titleRendered + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// HumanDate returns "Today", "Yesterday" or a short absolute date.
func HumanDate(t time.Time) string {
	return HumanDateFrom(t, time.Now())
}

func HumanDateFrom(t, now time.Time) string {
	t = t.In(now.Location())
	y1, m1, d1 := now.Date()
	y2, m2, d2 := t.Date()
	if y1 == y2 && m1 == m2 && d1 == d2 {
		return "Today"
	}
	y3, m3, d3 := now.AddDate(0, 0, -1).Date()
	if y2 == y3 && m2 == m3 && d2 == d3 {
		return "Yesterday"
	}
	return t.Format("Jan 2, 2006")
}

// HumanTimestamp returns a relative timestamp for recent times.
func HumanTimestamp(t time.Time) string {
	return HumanTimestampFrom(t, time.Now())
}

func HumanTimestampFrom(t, now time.Time) string {
	diff := now.Sub(t)
	switch {
	case diff < 0:
		return HumanDateFrom(t, now)
	case diff < time.Minute:
		return "Just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	default:
		return HumanDateFrom(t, now)
	}
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	if id == "" {
		id = "--"
	}
	return StyleDim.Render(id)
}

// Credits renders a balance, red when it cannot cover cost.
func Credits(balance, cost int) string {
	text := fmt.Sprintf("%d cr", balance)
	if balance < cost {
		return StyleRed.Render(text)
	}
	return StyleGreen.Render(text)
}

// SignedAmount renders a ledger amount with its direction.
func SignedAmount(amount int, debit bool) string {
	if debit {
		return StyleRed.Render("-" + strconv.Itoa(amount))
	}
	return StyleGreen.Render("+" + strconv.Itoa(amount))
}

// Number formats a metric value without trailing zeros.
func Number(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Percent formats a ratio as a percentage with two decimals.
func Percent(ratio float64) string {
	return fmt.Sprintf("%.2f%%", ratio*100)
}

// Money formats a currency-free amount with two decimals.
func Money(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

// List joins values with commas, or renders a dim placeholder when empty.
func List(values []string) string {
	if len(values) == 0 {
		return Dim("--")
	}
	return strings.Join(values, ", ")
}

// Or returns s, or a dim placeholder when s is blank.
func Or(s string) string {
	if strings.TrimSpace(s) == "" {
		return Dim("--")
	}
	return s
}
