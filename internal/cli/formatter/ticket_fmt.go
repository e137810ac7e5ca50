package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/agencyos/internal/domain"
)

func FormatTicketList(tickets []*domain.Ticket) string {
	headers := []string{"ID", "TITLE", "TYPE", "STATUS", "PRIORITY", "MSGS", "UPDATED"}
	rows := make([][]string, 0, len(tickets))
	for _, t := range tickets {
		rows = append(rows, []string{
			TruncID(t.ID),
			Bold(t.Title),
			string(t.Type),
			TicketStatusPill(t.Status),
			PriorityBadge(t.Priority),
			fmt.Sprintf("%d", len(t.Messages)),
			HumanTimestamp(t.UpdatedAt),
		})
	}
	return RenderBox("Tickets", RenderTable(headers, rows))
}

// FormatTicket renders a ticket and its thread in message order.
func FormatTicket(t *domain.Ticket) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s  %s\n", Bold(t.Title), TicketStatusPill(t.Status), PriorityBadge(t.Priority))
	fmt.Fprintf(&b, "%s %s\n", Dim("id:  "), t.ID)
	fmt.Fprintf(&b, "%s %s\n", Dim("type:"), t.Type)
	if t.WorkCardID != nil {
		fmt.Fprintf(&b, "%s %s\n", Dim("card:"), *t.WorkCardID)
	}
	b.WriteString("\n")
	if len(t.Messages) == 0 {
		b.WriteString(Dim("No messages yet."))
	}
	for _, m := range t.Messages {
		b.WriteString(FormatMessage(m))
		b.WriteString("\n")
	}
	return RenderBox("Ticket", strings.TrimRight(b.String(), "\n"))
}

// FormatMessage renders one thread entry.
func FormatMessage(m domain.TicketMessage) string {
	return fmt.Sprintf("%s %s %s\n   %s",
		Dim(fmt.Sprintf("#%d", m.Seq)), SenderLabel(m), Dim(HumanTimestamp(m.CreatedAt)), m.Text)
}
