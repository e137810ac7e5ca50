package formatter

import (
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/agencyos/internal/domain"
	"github.com/alexanderramin/agencyos/internal/importer"
	"github.com/stretchr/testify/assert"
)

func TestFormatWorkspace_ShowsLedger(t *testing.T) {
	now := time.Now().UTC()
	ws := &domain.Workspace{ID: "ws-12345678", Name: "Acme", BrandName: "ACME", Credits: 20, Status: domain.WorkspaceActive}
	out := stripANSI(FormatWorkspace(ws, []*domain.LedgerEntry{
		{Action: domain.ActionRushDelivery, Kind: domain.LedgerDebit, Amount: 30, BalanceAfter: 20, CreatedAt: now},
	}))
	assert.Contains(t, out, "Acme")
	assert.Contains(t, out, "20 cr")
	assert.Contains(t, out, "RUSH_DELIVERY")
	assert.Contains(t, out, "-30")
}

func TestFormatLedger_Empty(t *testing.T) {
	out := stripANSI(FormatLedger(&domain.Workspace{Name: "Acme"}, nil))
	assert.Contains(t, out, "No credit activity yet.")
}

func TestFormatPriceList(t *testing.T) {
	out := stripANSI(FormatPriceList())
	assert.Contains(t, out, "NEW_REQUEST")
	assert.Contains(t, out, "STRATEGY_CALL")
	assert.NotContains(t, out, "TOP_UP")
}

func TestFormatCard_SortedSections(t *testing.T) {
	c := &domain.WorkCard{
		ID: "card-1", Title: "Launch reel", Category: "video", Type: "reel", Status: domain.CardEditing,
		Inputs: map[string]string{"length": "15s", "brief": "teaser"},
		Deliverables: map[string]domain.Deliverable{
			"final_cut": {Status: domain.DeliverableReady, URL: "https://cdn.example.com/cut.mp4"},
		},
		Metrics:   map[string]float64{"views": 1200},
		NextSteps: []string{"Color grade"},
	}
	out := stripANSI(FormatCard(c))
	assert.Contains(t, out, "Editing")
	assert.Contains(t, out, "✔ ready final_cut")
	assert.Contains(t, out, "views: 1200")
	assert.Contains(t, out, "• Color grade")
	assert.Less(t, strings.Index(out, "brief:"), strings.Index(out, "length:"))
}

func TestFormatTicket_ThreadInOrder(t *testing.T) {
	tk := &domain.Ticket{
		ID: "t-1", Title: "Broken link", Type: domain.TicketIssue,
		Status: domain.TicketOpen, Priority: domain.PriorityUrgent,
		Messages: []domain.TicketMessage{
			{Seq: 1, SenderID: "client", SenderType: domain.SenderUser, Text: "first"},
			{Seq: 2, SenderID: domain.AutoReplySenderID, SenderType: domain.SenderAI, Text: "second"},
		},
	}
	out := stripANSI(FormatTicket(tk))
	assert.Contains(t, out, "URGENT")
	assert.Contains(t, out, "assistant")
	assert.Less(t, strings.Index(out, "first"), strings.Index(out, "second"))
}

func TestFormatDrafts_MarksDeselected(t *testing.T) {
	out := stripANSI(FormatDrafts([]domain.ProjectDraft{
		{Key: "d1", Name: "Video Production", Type: domain.ProjectOneOff, Services: []string{"Launch reel"}, Selected: true},
		{Key: "d2", Name: "Website Build", Type: domain.ProjectOneOff, Selected: false},
	}))
	assert.Contains(t, out, "✔  Video Production")
	assert.Contains(t, out, "·  Website Build")
	assert.Contains(t, out, "One off")
}

func TestFormatMetrics(t *testing.T) {
	out := stripANSI(FormatMetrics("Metrics", importer.Metrics{
		Spend: 100, Impressions: 1000, Clicks: 50, Rows: 3, SkippedCells: 1,
		Columns: []string{"spend", "impressions", "clicks"},
	}))
	assert.Contains(t, out, "100.00")
	assert.Contains(t, out, "5.00%")
	assert.Contains(t, out, "2.00")
	assert.Contains(t, out, "1 unreadable cell(s)")
}
