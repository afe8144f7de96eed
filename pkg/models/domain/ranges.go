package domain

import "time"

// RangeName identifies one of the nine reporting windows.
type RangeName string

const (
	RangeDayActual             RangeName = "For The Day (Actual)"
	RangeDayPriorYear          RangeName = "For The Day (Prior Year)"
	RangeWeekEndingActual      RangeName = "For The Week Ending (Actual)"
	RangeWeekEndingPriorYear   RangeName = "For The Week Ending (Prior Year)"
	RangeWeekTotalPriorYear    RangeName = "Week Total (Prior Year)"
	RangeMonthToDateActual     RangeName = "Month to Date (Actual)"
	RangeMonthToDatePriorYear  RangeName = "Month to Date (Prior Year)"
	RangeWinterEndingActual    RangeName = "For Winter Ending (Actual)"
	RangeWinterEndingPriorYear RangeName = "For Winter Ending (Prior Year)"
)

// AllRangeNames lists the nine windows in report column order.
var AllRangeNames = []RangeName{
	RangeDayActual,
	RangeDayPriorYear,
	RangeWeekEndingActual,
	RangeWeekEndingPriorYear,
	RangeWeekTotalPriorYear,
	RangeMonthToDateActual,
	RangeMonthToDatePriorYear,
	RangeWinterEndingActual,
	RangeWinterEndingPriorYear,
}

// PriorYear reports whether the window describes the previous season/year.
func (n RangeName) PriorYear() bool {
	switch n {
	case RangeDayPriorYear, RangeWeekEndingPriorYear, RangeWeekTotalPriorYear,
		RangeMonthToDatePriorYear, RangeWinterEndingPriorYear:
		return true
	}
	return false
}

// DateRange is one reporting window. Instances are computed once per run and
// treated as read-only afterwards.
type DateRange struct {
	Name  RangeName
	Start time.Time
	End   time.Time
}

// Days returns the inclusive day count between the window's start and end
// dates, ignoring the time-of-day component. A reversed range counts as zero.
func (r DateRange) Days() int {
	start := dateOnly(r.Start)
	end := dateOnly(r.End)
	if start.After(end) {
		return 0
	}
	return int(end.Sub(start).Hours()/24) + 1
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
