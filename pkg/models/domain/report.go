package domain

import "time"

// MetricMap holds one numeric value per department or location key.
// A missing key means "no data"; consumers default absent lookups to 0.
type MetricMap map[string]float64

// Total sums every value in the map.
func (m MetricMap) Total() float64 {
	var total float64
	for _, v := range m {
		total += v
	}
	return total
}

// SnowMetrics are the two weather figures reported per window.
type SnowMetrics struct {
	Snow24Hrs float64
	BaseDepth float64
}

// FormatHint tells the rendering sink how to format a row's values.
type FormatHint string

const (
	FormatDecimal1DP        FormatHint = "decimal-1dp"
	FormatDecimal2DPGrouped FormatHint = "decimal-2dp-grouped"
	FormatPercent0DP        FormatHint = "percent-0dp"
)

// RowKind distinguishes layout rows from value rows.
type RowKind string

const (
	RowTitle   RowKind = "title"
	RowSection RowKind = "section_header"
	RowData    RowKind = "data"
	RowTotal   RowKind = "total"
	RowEmpty   RowKind = "empty"
)

// ReportRow is one finished line of the report matrix. Values are ordered by
// AllRangeNames and are empty for title, section and spacer rows.
type ReportRow struct {
	Kind   RowKind
	Label  string
	Values []float64
	Format FormatHint
}

// Report is the complete, immutable matrix handed to rendering sinks.
type Report struct {
	Resort      string
	ReportDate  time.Time
	GeneratedAt time.Time
	Ranges      []DateRange
	Rows        []ReportRow
}

// Resort identifies one property and the parameters its sources expect.
// Revenue is keyed by database + group number, the remaining sources by the
// resort name.
type Resort struct {
	Name     string
	Database string
	GroupNo  int
}
