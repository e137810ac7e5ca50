// Package importer reads campaign metrics exports into work card metrics.
package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"slices"
	"strconv"
	"strings"
)

var (
	// ErrEmptyCSV is returned when the input has no header or no data rows.
	ErrEmptyCSV = errors.New("csv has no data rows")
	// ErrNoMetricColumns is returned when no header matches a known metric.
	ErrNoMetricColumns = errors.New("csv has no spend, impressions or clicks column")
)

// Metric keys written to a work card.
const (
	KeySpend       = "spend"
	KeyImpressions = "impressions"
	KeyClicks      = "clicks"
	KeyCTR         = "ctr"
	KeyCPC         = "cpc"
)

// headerAliases maps normalized header text to a metric key. Headers also
// match when they start with the key followed by a space or parenthesis,
// e.g. "Spend (USD)" or "Clicks (all)".
var headerAliases = map[string]string{
	"spend":        KeySpend,
	"amount spent": KeySpend,
	"impressions":  KeyImpressions,
	"impr":         KeyImpressions,
	"clicks":       KeyClicks,
	"link clicks":  KeyClicks,
}

var columnOrder = map[string]int{KeySpend: 0, KeyImpressions: 1, KeyClicks: 2}

// Metrics is the aggregate of one CSV export.
type Metrics struct {
	Spend       float64
	Impressions float64
	Clicks      float64
	// Rows counts data rows, blank rows excluded.
	Rows int
	// SkippedCells counts present but unparseable cells, which contribute zero.
	SkippedCells int
	// Columns lists the metric keys that matched a header.
	Columns []string
}

// CTR is clicks per impression, or 0 without impressions.
func (m Metrics) CTR() float64 {
	if m.Impressions == 0 {
		return 0
	}
	return m.Clicks / m.Impressions
}

// CPC is spend per click, or 0 without clicks.
func (m Metrics) CPC() float64 {
	if m.Clicks == 0 {
		return 0
	}
	return m.Spend / m.Clicks
}

// AsMap returns the metrics map stored on a work card. Derived ratios are
// included only when their denominator is non-zero.
func (m Metrics) AsMap() map[string]float64 {
	out := map[string]float64{
		KeySpend:       m.Spend,
		KeyImpressions: m.Impressions,
		KeyClicks:      m.Clicks,
	}
	if m.Impressions != 0 {
		out[KeyCTR] = m.CTR()
	}
	if m.Clicks != 0 {
		out[KeyCPC] = m.CPC()
	}
	return out
}

// ParseMetricsCSV sums the spend, impressions and clicks columns of a CSV
// with a header row. Rows may be ragged; a missing cell contributes zero.
func ParseMetricsCSV(r io.Reader) (Metrics, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return Metrics{}, ErrEmptyCSV
	}
	if err != nil {
		return Metrics{}, fmt.Errorf("reading csv header: %w", err)
	}

	columns := matchColumns(header)
	if len(columns) == 0 {
		return Metrics{}, ErrNoMetricColumns
	}

	var m Metrics
	for key := range columns {
		m.Columns = append(m.Columns, key)
	}
	slices.SortFunc(m.Columns, func(a, b string) int { return columnOrder[a] - columnOrder[b] })

	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Metrics{}, fmt.Errorf("reading csv: %w", err)
		}
		if blank(record) {
			continue
		}
		m.Rows++
		for key, idx := range columns {
			if idx >= len(record) {
				continue
			}
			v, ok := parseNumber(record[idx])
			if !ok {
				m.SkippedCells++
				continue
			}
			switch key {
			case KeySpend:
				m.Spend += v
			case KeyImpressions:
				m.Impressions += v
			case KeyClicks:
				m.Clicks += v
			}
		}
	}

	if m.Rows == 0 {
		return Metrics{}, ErrEmptyCSV
	}
	return m, nil
}

// matchColumns returns metric key -> column index. The first matching column
// wins for each key.
func matchColumns(header []string) map[string]int {
	out := make(map[string]int)
	for i, h := range header {
		key, ok := metricKey(h)
		if !ok {
			continue
		}
		if _, seen := out[key]; !seen {
			out[key] = i
		}
	}
	return out
}

func metricKey(header string) (string, bool) {
	h := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(header, "\ufeff")))
	if key, ok := headerAliases[h]; ok {
		return key, true
	}
	for alias, key := range headerAliases {
		if strings.HasPrefix(h, alias+" ") || strings.HasPrefix(h, alias+"(") {
			return key, true
		}
	}
	return "", false
}

// parseNumber accepts plain numbers with optional currency sign, thousands
// separators and percent sign. Empty cells are zero. NaN and infinities are
// rejected.
func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, true
	}
	s = strings.NewReplacer("$", "", "€", "", "£", "", ",", "", "%", "").Replace(s)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func blank(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
