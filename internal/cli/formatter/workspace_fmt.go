package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/agencyos/internal/domain"
)

// FormatWorkspaceList renders workspaces with their balances.
func FormatWorkspaceList(workspaces []*domain.Workspace) string {
	headers := []string{"ID", "NAME", "BRAND", "CREDITS", "STATUS"}
	rows := make([][]string, 0, len(workspaces))
	newRequest, _ := domain.CostOf(domain.ActionNewRequest)
	for _, w := range workspaces {
		rows = append(rows, []string{
			TruncID(w.ID),
			Bold(w.Name),
			w.BrandName,
			Credits(w.Credits, newRequest),
			WorkspaceStatusPill(w.Status),
		})
	}
	return RenderBox("Workspaces", RenderTable(headers, rows))
}

// FormatWorkspace renders one workspace with the latest ledger entries.
func FormatWorkspace(w *domain.Workspace, recent []*domain.LedgerEntry) string {
	newRequest, _ := domain.CostOf(domain.ActionNewRequest)
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n", Bold(w.Name), WorkspaceStatusPill(w.Status))
	fmt.Fprintf(&b, "%s %s\n", Dim("id:      "), w.ID)
	fmt.Fprintf(&b, "%s %s\n", Dim("brand:   "), w.BrandName)
	fmt.Fprintf(&b, "%s %s\n", Dim("website: "), Or(w.Website))
	fmt.Fprintf(&b, "%s %s\n", Dim("tone:    "), Or(w.Tone))
	fmt.Fprintf(&b, "%s %s\n", Dim("channels:"), List(w.Channels))
	fmt.Fprintf(&b, "%s %s", Dim("credits: "), Credits(w.Credits, newRequest))
	if len(recent) > 0 {
		b.WriteString("\n\n")
		b.WriteString(Header("Recent activity"))
		b.WriteString("\n")
		b.WriteString(ledgerTable(recent))
	}
	return RenderBox("Workspace", strings.TrimRight(b.String(), "\n"))
}

// FormatLedger renders a workspace's credit history, newest first.
func FormatLedger(w *domain.Workspace, entries []*domain.LedgerEntry) string {
	if len(entries) == 0 {
		return RenderBox("Ledger", Dim("No credit activity yet."))
	}
	title := fmt.Sprintf("Ledger · %s", w.Name)
	return RenderBox(title, strings.TrimRight(ledgerTable(entries), "\n"))
}

func ledgerTable(entries []*domain.LedgerEntry) string {
	headers := []string{"WHEN", "ACTION", "AMOUNT", "BALANCE"}
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			HumanTimestamp(e.CreatedAt),
			string(e.Action),
			SignedAmount(e.Amount, e.Kind == domain.LedgerDebit),
			fmt.Sprintf("%d", e.BalanceAfter),
		})
	}
	return RenderTable(headers, rows)
}

// FormatPriceList renders the default cost of each chargeable action.
func FormatPriceList() string {
	headers := []string{"ACTION", "COST"}
	var rows [][]string
	for _, a := range []domain.CreditAction{
		domain.ActionNewRequest, domain.ActionRevision, domain.ActionRushDelivery,
		domain.ActionExtraDeliverable, domain.ActionStrategyCall,
	} {
		cost, _ := domain.CostOf(a)
		rows = append(rows, []string{string(a), fmt.Sprintf("%d cr", cost)})
	}
	return RenderTable(headers, rows)
}
