package report

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/exp/maps"

	"github.com/mcp-analytics/resort-dmr/pkg/models/domain"
)

// ErrNoPayrollData means no department key appeared in the payroll
// reconciliation output for any range, leaving nothing to report.
var ErrNoPayrollData = errors.New("no payroll departments in any range")

// MatrixInputs is everything the builder needs, already aggregated and
// reconciled per range.
type MatrixInputs struct {
	Resort      string
	ReportDate  time.Time
	GeneratedAt time.Time
	Ranges      []domain.DateRange

	Snow    map[domain.RangeName]domain.SnowMetrics
	Visits  map[domain.RangeName]domain.MetricMap
	Revenue map[domain.RangeName]domain.MetricMap
	Payroll map[domain.RangeName]domain.MetricMap

	Departments *Departments
}

// prPercent is the payroll-to-revenue ratio as a percentage. The result is
// forced to 0 whenever either side is exactly zero: reporting 0% for a genuine
// absence would be misleading, and the guard also covers divide-by-zero.
func prPercent(revenue, payroll float64) float64 {
	if revenue == 0 || payroll == 0 {
		return 0
	}
	return math.Abs(revenue) / math.Abs(payroll) * 100
}

// BuildMatrix assembles the final report rows in fixed order: snow, visits
// (with total), per-department financials, then the four total rows. The
// department row set is the union of payroll keys across all ranges; revenue
// is looked up against that set and defaults to 0. Identical inputs always
// produce identical rows.
func BuildMatrix(ctx context.Context, in MatrixInputs) (*domain.Report, error) {
	logger := zerolog.Ctx(ctx)

	deptSet := map[string]struct{}{}
	for _, name := range domain.AllRangeNames {
		for code := range in.Payroll[name] {
			deptSet[code] = struct{}{}
		}
	}
	if len(deptSet) == 0 {
		return nil, ErrNoPayrollData
	}
	departments := maps.Keys(deptSet)
	sort.Strings(departments)

	locSet := map[string]struct{}{}
	for _, name := range domain.AllRangeNames {
		for loc := range in.Visits[name] {
			locSet[loc] = struct{}{}
		}
	}
	locations := maps.Keys(locSet)
	sort.Strings(locations)

	for _, code := range in.Departments.Untitled() {
		logger.Warn().Str("department", code).Msg("department has no title; using code")
	}

	rows := make([]domain.ReportRow, 0, 12+len(locations)+3*len(departments))

	title := fmt.Sprintf("%s Resort - Daily Management Report - As of %s - %s",
		in.Resort,
		in.ReportDate.Format("Monday"),
		in.ReportDate.Format("2 January, 2006"))
	rows = append(rows, domain.ReportRow{Kind: domain.RowTitle, Label: title})

	rows = append(rows,
		domain.ReportRow{
			Kind:   domain.RowData,
			Label:  "Snow 24hrs",
			Values: rangeValues(in.Ranges, func(name domain.RangeName) float64 { return in.Snow[name].Snow24Hrs }),
			Format: domain.FormatDecimal1DP,
		},
		domain.ReportRow{
			Kind:   domain.RowData,
			Label:  "Base Depth",
			Values: rangeValues(in.Ranges, func(name domain.RangeName) float64 { return in.Snow[name].BaseDepth }),
			Format: domain.FormatDecimal1DP,
		},
		domain.ReportRow{Kind: domain.RowEmpty},
		domain.ReportRow{Kind: domain.RowSection, Label: "VISITS"},
	)

	for _, loc := range locations {
		loc := loc
		rows = append(rows, domain.ReportRow{
			Kind:   domain.RowData,
			Label:  loc,
			Values: rangeValues(in.Ranges, func(name domain.RangeName) float64 { return in.Visits[name][loc] }),
			Format: domain.FormatDecimal2DPGrouped,
		})
	}
	rows = append(rows, domain.ReportRow{
		Kind:   domain.RowTotal,
		Label:  "Total Tickets",
		Values: rangeValues(in.Ranges, func(name domain.RangeName) float64 { return in.Visits[name].Total() }),
		Format: domain.FormatDecimal2DPGrouped,
	})

	rows = append(rows,
		domain.ReportRow{Kind: domain.RowEmpty},
		domain.ReportRow{Kind: domain.RowSection, Label: "FINANCIALS"},
	)

	for _, code := range departments {
		code := code
		title := in.Departments.Title(code)
		rows = append(rows,
			domain.ReportRow{
				Kind:   domain.RowData,
				Label:  fmt.Sprintf("%s - Revenue", title),
				Values: rangeValues(in.Ranges, func(name domain.RangeName) float64 { return in.Revenue[name][code] }),
				Format: domain.FormatDecimal2DPGrouped,
			},
			domain.ReportRow{
				Kind:   domain.RowData,
				Label:  fmt.Sprintf("%s - Payroll", title),
				Values: rangeValues(in.Ranges, func(name domain.RangeName) float64 { return in.Payroll[name][code] }),
				Format: domain.FormatDecimal2DPGrouped,
			},
			domain.ReportRow{
				Kind:  domain.RowData,
				Label: fmt.Sprintf("PR %% of %s", title),
				Values: rangeValues(in.Ranges, func(name domain.RangeName) float64 {
					return prPercent(in.Revenue[name][code], in.Payroll[name][code])
				}),
				Format: domain.FormatPercent0DP,
			},
		)
	}

	totalRevenue := func(name domain.RangeName) float64 {
		var total float64
		for _, code := range departments {
			total += in.Revenue[name][code]
		}
		return total
	}
	totalPayroll := func(name domain.RangeName) float64 {
		var total float64
		for _, code := range departments {
			total += in.Payroll[name][code]
		}
		return total
	}

	rows = append(rows,
		domain.ReportRow{Kind: domain.RowEmpty},
		domain.ReportRow{
			Kind:   domain.RowTotal,
			Label:  "Total Revenue",
			Values: rangeValues(in.Ranges, totalRevenue),
			Format: domain.FormatDecimal2DPGrouped,
		},
		domain.ReportRow{
			Kind:   domain.RowTotal,
			Label:  "Total Payroll",
			Values: rangeValues(in.Ranges, totalPayroll),
			Format: domain.FormatDecimal2DPGrouped,
		},
		domain.ReportRow{
			Kind:  domain.RowTotal,
			Label: "PR % of Total Revenue",
			Values: rangeValues(in.Ranges, func(name domain.RangeName) float64 {
				return prPercent(totalRevenue(name), totalPayroll(name))
			}),
			Format: domain.FormatPercent0DP,
		},
		domain.ReportRow{
			Kind:  domain.RowTotal,
			Label: "Net Total Revenue",
			Values: rangeValues(in.Ranges, func(name domain.RangeName) float64 {
				return totalRevenue(name) - totalPayroll(name)
			}),
			Format: domain.FormatDecimal2DPGrouped,
		},
	)

	return &domain.Report{
		Resort:      in.Resort,
		ReportDate:  in.ReportDate,
		GeneratedAt: in.GeneratedAt,
		Ranges:      in.Ranges,
		Rows:        rows,
	}, nil
}

func rangeValues(ranges []domain.DateRange, value func(domain.RangeName) float64) []float64 {
	values := make([]float64, 0, len(ranges))
	for _, r := range ranges {
		values = append(values, value(r.Name))
	}
	return values
}
