package report

import (
	"github.com/mcp-analytics/resort-dmr/pkg/models/domain"
)

// The salary term never projects past one week: for month-to-date and
// winter-to-date windows longer than that, the trailing 7 days are priced at
// the live salary rate and everything older comes from the history source.
const salaryProjectionDays = 7

// PayrollInputs carries the per-range material the reconciler combines.
// The reconciler never mutates its inputs.
type PayrollInputs struct {
	Range         domain.DateRange
	Contract      domain.MetricMap
	SalaryPerDay  domain.MetricMap
	HistoryTotals domain.MetricMap

	// IsCurrentDate marks a run whose reference date is today. Payroll is
	// reported as zero for that run and RevenueDepartments supplies the key
	// set, since no payroll source is queried at all.
	IsCurrentDate      bool
	RevenueDepartments domain.MetricMap
}

// needsHistory reports whether reconciling the given range requires the
// history source, and for which sub-window. Prior-year ranges use history for
// the whole window; long month/winter actuals use it for everything except
// the trailing week.
func needsHistory(r domain.DateRange, isCurrentDate bool) (domain.DateRange, bool) {
	if isCurrentDate {
		return domain.DateRange{}, false
	}
	if r.Name.PriorYear() {
		return r, true
	}
	switch r.Name {
	case domain.RangeMonthToDateActual, domain.RangeWinterEndingActual:
		if r.Days() > salaryProjectionDays {
			sub := r
			sub.End = r.End.AddDate(0, 0, -salaryProjectionDays)
			return sub, true
		}
	}
	return domain.DateRange{}, false
}

// ReconcilePayroll produces one payroll figure per department for a range,
// selecting the composition rule by range type and age:
//
//   - current-date runs report 0 for every department present in revenue;
//   - Day (Actual): contract + one day of salary;
//   - Week Ending (Actual): contract + salary x days in range;
//   - Month/Winter (Actual), span <= 7 days: contract + salary x days;
//   - Month/Winter (Actual), span > 7 days: contract + salary x 7 + history;
//   - any prior-year range: contract + history.
//
// Departments absent from the salary or history maps contribute 0 for that
// term. The result is a fresh map; inputs are left untouched.
func ReconcilePayroll(in PayrollInputs) domain.MetricMap {
	payroll := domain.MetricMap{}

	if in.IsCurrentDate {
		for code := range in.RevenueDepartments {
			payroll[code] = 0
		}
		return payroll
	}

	salaryDays := 0.0
	useHistory := false
	switch {
	case in.Range.Name.PriorYear():
		useHistory = true
	case in.Range.Name == domain.RangeDayActual:
		salaryDays = 1
	case in.Range.Name == domain.RangeWeekEndingActual:
		salaryDays = float64(in.Range.Days())
	default:
		// Month to Date (Actual) and For Winter Ending (Actual).
		days := in.Range.Days()
		if days <= salaryProjectionDays {
			salaryDays = float64(days)
		} else {
			salaryDays = salaryProjectionDays
			useHistory = true
		}
	}

	for code, wages := range in.Contract {
		payroll[code] = wages
	}
	if salaryDays > 0 {
		for code, rate := range in.SalaryPerDay {
			payroll[code] += rate * salaryDays
		}
	}
	if useHistory {
		for code, total := range in.HistoryTotals {
			payroll[code] += total
		}
	}
	return payroll
}
