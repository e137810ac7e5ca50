package formatter

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

func TestHumanDateFrom(t *testing.T) {
	now := time.Date(2026, 2, 7, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, "Today", HumanDateFrom(now.Add(-2*time.Hour), now))
	assert.Equal(t, "Yesterday", HumanDateFrom(now.AddDate(0, 0, -1), now))
	assert.Equal(t, "Sep 30, 2022", HumanDateFrom(time.Date(2022, 9, 30, 0, 0, 0, 0, time.UTC), now))
}

func TestHumanTimestampFrom(t *testing.T) {
	now := time.Date(2026, 2, 7, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		input time.Time
		want  string
	}{
		{"just now", now.Add(-10 * time.Second), "Just now"},
		{"minutes", now.Add(-5 * time.Minute), "5m ago"},
		{"hours", now.Add(-3 * time.Hour), "3h ago"},
		{"days", now.AddDate(0, 0, -3), "Feb 4, 2026"},
		{"future", now.Add(48 * time.Hour), "Feb 9, 2026"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HumanTimestampFrom(tt.input, now))
		})
	}
}

func TestTruncID(t *testing.T) {
	assert.Equal(t, "abcdef12", stripANSI(TruncID("abcdef12-3456-7890")))
	assert.Equal(t, "abc", stripANSI(TruncID("abc")))
	assert.Equal(t, "--", stripANSI(TruncID("")))
}

func TestNumberFormatting(t *testing.T) {
	assert.Equal(t, "1500.5", Number(1500.5))
	assert.Equal(t, "250", Number(250))
	assert.Equal(t, "1.67%", Percent(250.0/15000))
	assert.Equal(t, "6.00", Money(6.002))
}

func TestSignedAmount(t *testing.T) {
	assert.Equal(t, "-10", stripANSI(SignedAmount(10, true)))
	assert.Equal(t, "+25", stripANSI(SignedAmount(25, false)))
}

func TestHumanize(t *testing.T) {
	assert.Equal(t, "Waiting on client", humanize("waiting_on_client"))
	assert.Equal(t, "", humanize(""))
}
