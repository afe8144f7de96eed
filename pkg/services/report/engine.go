package report

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/mcp-analytics/resort-dmr/pkg/models/domain"
	"github.com/mcp-analytics/resort-dmr/pkg/models/store"
)

// Fetcher is the retrieval collaborator: one method per stored procedure.
// The engine treats a fetch error or an empty result the same way, as zero
// data for that (source, range) pair.
type Fetcher interface {
	Revenue(ctx context.Context, database string, groupNo int, start, end time.Time) (store.Result, error)
	Visits(ctx context.Context, resort string, start, end time.Time) (store.Result, error)
	Weather(ctx context.Context, resort string, start, end time.Time) (store.Result, error)
	PayrollContract(ctx context.Context, resort string, start, end time.Time) (store.Result, error)
	PayrollSalary(ctx context.Context, resort string) (store.Result, error)
	PayrollHistory(ctx context.Context, resort string, start, end time.Time) (store.Result, error)
}

// Engine runs one full report: derive the nine windows, pull and aggregate
// every applicable source per window, reconcile payroll, and assemble the
// matrix.
type Engine struct {
	fetcher Fetcher
}

func NewEngine(fetcher Fetcher) (*Engine, error) {
	if fetcher == nil {
		return nil, fmt.Errorf("fetcher is required")
	}
	return &Engine{fetcher: fetcher}, nil
}

// RunParams identify one report run. Now is injected for reproducibility;
// ReportDate counts as "current" when its date component equals Now's.
type RunParams struct {
	Resort     domain.Resort
	ReportDate time.Time
	Now        time.Time
}

// Generate produces the finished report matrix for one resort and reference
// date. Source-level failures degrade to warnings and empty data; the run
// aborts only when no payroll department exists across all nine windows.
func (e *Engine) Generate(ctx context.Context, params RunParams) (*domain.Report, error) {
	logger := zerolog.Ctx(ctx).With().
		Str("resort", params.Resort.Name).
		Str("report_date", params.ReportDate.Format("2006-01-02")).
		Logger()
	ctx = logger.WithContext(ctx)

	cal := NewCalendar(params.ReportDate, params.Now)
	ranges := cal.All()
	isCurrent := cal.IsCurrentDate()

	depts := NewDepartments()

	// Salaried rates are keyed by resort only and do not change per window.
	salaryRates := domain.MetricMap{}
	if !isCurrent {
		res := e.fetch(ctx, "salary", func() (store.Result, error) {
			return e.fetcher.PayrollSalary(ctx, params.Resort.Name)
		})
		salaryRates = parseSalaryRates(ctx, res, depts)
	}

	snow := make(map[domain.RangeName]domain.SnowMetrics, len(ranges))
	visits := make(map[domain.RangeName]domain.MetricMap, len(ranges))
	revenue := make(map[domain.RangeName]domain.MetricMap, len(ranges))
	payroll := make(map[domain.RangeName]domain.MetricMap, len(ranges))

	for _, r := range ranges {
		r := r
		logger.Info().
			Str("range", string(r.Name)).
			Time("start", r.Start).
			Time("end", r.End).
			Msg("fetching range")

		revenueRes := e.fetch(ctx, "revenue", func() (store.Result, error) {
			return e.fetcher.Revenue(ctx, params.Resort.Database, params.Resort.GroupNo, r.Start, r.End)
		})
		visitsRes := e.fetch(ctx, "visits", func() (store.Result, error) {
			return e.fetcher.Visits(ctx, params.Resort.Name, r.Start, r.End)
		})
		weatherRes := e.fetch(ctx, "weather", func() (store.Result, error) {
			return e.fetcher.Weather(ctx, params.Resort.Name, r.Start, r.End)
		})

		snow[r.Name] = aggregateWeather(ctx, weatherRes)
		visits[r.Name] = aggregateVisits(ctx, visitsRes)
		revenue[r.Name] = aggregateRevenue(ctx, revenueRes, depts)

		contract := domain.MetricMap{}
		history := domain.MetricMap{}
		if !isCurrent {
			contractRes := e.fetch(ctx, "payroll_contract", func() (store.Result, error) {
				return e.fetcher.PayrollContract(ctx, params.Resort.Name, r.Start, r.End)
			})
			contract = aggregateContractWages(ctx, contractRes, depts)

			if sub, ok := needsHistory(r, isCurrent); ok {
				historyRes := e.fetch(ctx, "payroll_history", func() (store.Result, error) {
					return e.fetcher.PayrollHistory(ctx, params.Resort.Name, sub.Start, sub.End)
				})
				history = parseHistoryTotals(ctx, historyRes, depts)
			}
		}

		payroll[r.Name] = ReconcilePayroll(PayrollInputs{
			Range:              r,
			Contract:           contract,
			SalaryPerDay:       salaryRates,
			HistoryTotals:      history,
			IsCurrentDate:      isCurrent,
			RevenueDepartments: revenue[r.Name],
		})
	}

	return BuildMatrix(ctx, MatrixInputs{
		Resort:      params.Resort.Name,
		ReportDate:  cal.DayActual().Start,
		GeneratedAt: params.Now,
		Ranges:      ranges,
		Snow:        snow,
		Visits:      visits,
		Revenue:     revenue,
		Payroll:     payroll,
		Departments: depts,
	})
}

// fetch runs one retrieval call, downgrading failures to an empty result.
func (e *Engine) fetch(ctx context.Context, source string, call func() (store.Result, error)) store.Result {
	res, err := call()
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("source", source).Msg("source fetch failed; treating as empty")
		return store.Result{}
	}
	return res
}
