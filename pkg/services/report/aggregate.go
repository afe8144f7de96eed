package report

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/mcp-analytics/resort-dmr/pkg/models/domain"
	"github.com/mcp-analytics/resort-dmr/pkg/models/store"
)

// aggregateWeather sums the snow and base-depth columns independently.
// An empty result or a missing column yields zeros, never an error.
func aggregateWeather(ctx context.Context, res store.Result) domain.SnowMetrics {
	var metrics domain.SnowMetrics
	if res.Empty() {
		return metrics
	}

	logger := zerolog.Ctx(ctx)

	snowIdx, err := resolveColumn(res, snowColumns)
	if err != nil {
		logger.Warn().Err(err).Msg("weather result has no snow column")
	}
	baseIdx, err := resolveColumn(res, baseDepthColumns)
	if err != nil {
		logger.Warn().Err(err).Msg("weather result has no base depth column")
	}

	for _, row := range res.Rows {
		if snowIdx >= 0 && snowIdx < len(row) {
			metrics.Snow24Hrs += normalizeValue(row[snowIdx])
		}
		if baseIdx >= 0 && baseIdx < len(row) {
			metrics.BaseDepth += normalizeValue(row[baseIdx])
		}
	}
	return metrics
}

// aggregateVisits groups by location. When the result carries a count column
// it is summed per location; otherwise each row counts as one visit.
func aggregateVisits(ctx context.Context, res store.Result) domain.MetricMap {
	visits := domain.MetricMap{}
	if res.Empty() {
		return visits
	}

	locIdx, err := resolveColumn(res, locationColumns)
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("visits result has no location column")
		return visits
	}
	countIdx, countErr := resolveColumn(res, visitsColumns)

	for _, row := range res.Rows {
		if locIdx >= len(row) {
			continue
		}
		loc := asString(row[locIdx])
		if loc == "" {
			continue
		}
		if countErr == nil && countIdx < len(row) {
			visits[loc] += normalizeValue(row[countIdx])
		} else {
			visits[loc]++
		}
	}
	return visits
}

// aggregateRevenue groups amounts by trimmed department code and registers
// the first non-empty title seen for each code.
func aggregateRevenue(ctx context.Context, res store.Result, depts *Departments) domain.MetricMap {
	revenue := domain.MetricMap{}
	if res.Empty() {
		return revenue
	}

	logger := zerolog.Ctx(ctx)

	codeIdx, err := resolveColumn(res, departmentColumns)
	if err != nil {
		logger.Warn().Err(err).Msg("revenue result has no department column")
		return revenue
	}
	amountIdx, err := resolveColumn(res, revenueColumns)
	if err != nil {
		logger.Warn().Err(err).Msg("revenue result has no amount column")
		return revenue
	}
	titleIdx, _ := resolveColumn(res, departmentTitleColumns)

	for _, row := range res.Rows {
		if codeIdx >= len(row) || amountIdx >= len(row) {
			continue
		}
		title := ""
		if titleIdx >= 0 && titleIdx < len(row) {
			title = asString(row[titleIdx])
		}
		code := depts.Observe(row[codeIdx], title)
		if code == "" {
			continue
		}
		revenue[code] += normalizeValue(row[amountIdx])
	}
	return revenue
}

// The upstream payroll policy documents a tiered overtime rule (1.5x beyond
// 8 hours per shift) that has never been active for this report. Wages stay
// strictly linear; changing that requires an explicit policy decision, not a
// code default.
const (
	overtimeThresholdHours = 8.0
	overtimeMultiplier     = 1.5
)

// aggregateContractWages turns hourly time punches into per-department wages.
// hours = (end - start); wage = hours * rate. Rows whose punch timestamps do
// not parse are dropped, which undercounts rather than corrupts.
func aggregateContractWages(ctx context.Context, res store.Result, depts *Departments) domain.MetricMap {
	wages := domain.MetricMap{}
	if res.Empty() {
		return wages
	}

	logger := zerolog.Ctx(ctx)

	codeIdx, err := resolveColumn(res, departmentColumns)
	if err != nil {
		logger.Warn().Err(err).Msg("payroll result has no department column")
		return wages
	}
	startIdx, err := resolveColumn(res, punchStartColumns)
	if err != nil {
		logger.Warn().Err(err).Msg("payroll result has no punch start column")
		return wages
	}
	endIdx, err := resolveColumn(res, punchEndColumns)
	if err != nil {
		logger.Warn().Err(err).Msg("payroll result has no punch end column")
		return wages
	}
	rateIdx, err := resolveColumn(res, hourlyRateColumns)
	if err != nil {
		logger.Warn().Err(err).Msg("payroll result has no rate column")
		return wages
	}
	titleIdx, _ := resolveColumn(res, departmentTitleColumns)

	dropped := 0
	for _, row := range res.Rows {
		if codeIdx >= len(row) || startIdx >= len(row) || endIdx >= len(row) || rateIdx >= len(row) {
			continue
		}
		title := ""
		if titleIdx >= 0 && titleIdx < len(row) {
			title = asString(row[titleIdx])
		}
		code := depts.Observe(row[codeIdx], title)
		if code == "" {
			continue
		}

		start, okStart := parseTimestamp(row[startIdx])
		end, okEnd := parseTimestamp(row[endIdx])
		if !okStart || !okEnd {
			dropped++
			continue
		}

		hours := end.Sub(start).Hours()
		if hours < 0 {
			hours = 0
		}
		wages[code] += hours * normalizeValue(row[rateIdx])
	}
	if dropped > 0 {
		logger.Warn().Int("rows", dropped).Msg("dropped payroll rows with unparseable punch times")
	}
	return wages
}

// parseSalaryRates reads the per-day salaried rate for each department.
// The salary source is fetched once per run, not per range.
func parseSalaryRates(ctx context.Context, res store.Result, depts *Departments) domain.MetricMap {
	rates := domain.MetricMap{}
	if res.Empty() {
		return rates
	}

	logger := zerolog.Ctx(ctx)

	codeIdx, err := resolveColumn(res, salaryDeptColumns)
	if err != nil {
		logger.Warn().Err(err).Msg("salary result has no department column")
		return rates
	}
	rateIdx, err := resolveColumn(res, salaryRateColumns)
	if err != nil {
		logger.Warn().Err(err).Msg("salary result has no rate column")
		return rates
	}
	titleIdx, _ := resolveColumn(res, departmentTitleColumns)

	for _, row := range res.Rows {
		if codeIdx >= len(row) || rateIdx >= len(row) {
			continue
		}
		title := ""
		if titleIdx >= 0 && titleIdx < len(row) {
			title = asString(row[titleIdx])
		}
		code := depts.Observe(row[codeIdx], title)
		if code == "" {
			continue
		}
		rates[code] = normalizeValue(row[rateIdx])
	}
	return rates
}

// parseHistoryTotals reads pre-aggregated payroll totals per department.
func parseHistoryTotals(ctx context.Context, res store.Result, depts *Departments) domain.MetricMap {
	totals := domain.MetricMap{}
	if res.Empty() {
		return totals
	}

	logger := zerolog.Ctx(ctx)

	codeIdx, err := resolveColumn(res, historyDeptColumns)
	if err != nil {
		logger.Warn().Err(err).Msg("history result has no department column")
		return totals
	}
	totalIdx, err := resolveColumn(res, historyTotalColumns)
	if err != nil {
		logger.Warn().Err(err).Msg("history result has no total column")
		return totals
	}

	for _, row := range res.Rows {
		if codeIdx >= len(row) || totalIdx >= len(row) {
			continue
		}
		code := depts.Observe(row[codeIdx], "")
		if code == "" {
			continue
		}
		totals[code] = normalizeValue(row[totalIdx])
	}
	return totals
}
