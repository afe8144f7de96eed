package api

import (
	"fmt"
	"time"

	"github.com/mcp-analytics/resort-dmr/pkg/models/domain"
)

// ReportColumn is one of the nine comparison windows, with dates rendered as
// calendar days for consumers that do not care about time-of-day bounds.
// Display carries the two-line header string spreadsheet-style consumers show.
type ReportColumn struct {
	Name    string `json:"name"`
	Start   string `json:"start"`
	End     string `json:"end"`
	Display string `json:"display"`
}

type ReportRow struct {
	Kind   string    `json:"kind"`
	Label  string    `json:"label,omitempty"`
	Values []float64 `json:"values,omitempty"`
	Format string    `json:"format,omitempty"`
}

type Report struct {
	Resort      string         `json:"resort"`
	ReportDate  string         `json:"report_date"`
	GeneratedAt time.Time      `json:"generated_at"`
	Columns     []ReportColumn `json:"columns"`
	Rows        []ReportRow    `json:"rows"`
}

func MapReport(r *domain.Report) Report {
	columns := make([]ReportColumn, 0, len(r.Ranges))
	for _, rng := range r.Ranges {
		columns = append(columns, ReportColumn{
			Name:    string(rng.Name),
			Start:   rng.Start.Format("2006-01-02"),
			End:     rng.End.Format("2006-01-02"),
			Display: fmt.Sprintf("%s\n%s - %s", rng.Name, rng.Start.Format("Jan 02"), rng.End.Format("Jan 02")),
		})
	}

	rows := make([]ReportRow, 0, len(r.Rows))
	for _, row := range r.Rows {
		rows = append(rows, ReportRow{
			Kind:   string(row.Kind),
			Label:  row.Label,
			Values: row.Values,
			Format: string(row.Format),
		})
	}

	return Report{
		Resort:      r.Resort,
		ReportDate:  r.ReportDate.Format("2006-01-02"),
		GeneratedAt: r.GeneratedAt,
		Columns:     columns,
		Rows:        rows,
	}
}
