package report

import (
	"time"

	"github.com/mcp-analytics/resort-dmr/pkg/models/domain"
)

// Calendar derives the nine reporting windows from a single reference date.
// "now" is injected rather than sampled so that runs are reproducible; the
// reference date counts as current when its date component matches now's.
type Calendar struct {
	base      time.Time
	now       time.Time
	isCurrent bool
}

// NewCalendar builds a calendar for the given reference date. When the
// reference date is today the windows that include it end at "now"; otherwise
// they end at 23:59:59 of the reference day.
func NewCalendar(refDate, now time.Time) *Calendar {
	isCurrent := sameDate(refDate, now)

	var base time.Time
	if isCurrent {
		base = now
	} else {
		y, m, d := refDate.Date()
		base = time.Date(y, m, d, 23, 59, 59, 0, refDate.Location())
	}

	return &Calendar{base: base, now: now, isCurrent: isCurrent}
}

// IsCurrentDate reports whether the reference date is the wall-clock today.
func (c *Calendar) IsCurrentDate() bool {
	return c.isCurrent
}

// All returns the nine windows in report column order.
func (c *Calendar) All() []domain.DateRange {
	return []domain.DateRange{
		c.DayActual(),
		c.DayPriorYear(),
		c.WeekEndingActual(),
		c.WeekEndingPriorYear(),
		c.WeekTotalPriorYear(),
		c.MonthToDateActual(),
		c.MonthToDatePriorYear(),
		c.WinterEndingActual(),
		c.WinterEndingPriorYear(),
	}
}

// DayActual covers the reference day from midnight to its end (or to "now"
// when the reference day is today).
func (c *Calendar) DayActual() domain.DateRange {
	return domain.DateRange{
		Name:  domain.RangeDayActual,
		Start: midnight(c.base),
		End:   c.base,
	}
}

// DayPriorYear is DayActual shifted back exactly 52 weeks, keeping the day of
// week aligned with the reference day.
func (c *Calendar) DayPriorYear() domain.DateRange {
	prior := c.base.AddDate(0, 0, -364)
	return domain.DateRange{
		Name:  domain.RangeDayPriorYear,
		Start: midnight(prior),
		End:   prior,
	}
}

// WeekEndingActual runs from the Monday of the reference week to the
// reference day.
func (c *Calendar) WeekEndingActual() domain.DateRange {
	return domain.DateRange{
		Name:  domain.RangeWeekEndingActual,
		Start: mondayOf(c.base),
		End:   c.base,
	}
}

// WeekEndingPriorYear is WeekEndingActual shifted back 52 weeks.
func (c *Calendar) WeekEndingPriorYear() domain.DateRange {
	priorEnd := c.base.AddDate(0, 0, -364)
	return domain.DateRange{
		Name:  domain.RangeWeekEndingPriorYear,
		Start: mondayOf(priorEnd),
		End:   priorEnd,
	}
}

// WeekTotalPriorYear covers the full Monday-Sunday week containing the
// 52-week-shifted reference day, regardless of the reference weekday.
func (c *Calendar) WeekTotalPriorYear() domain.DateRange {
	start := mondayOf(c.base.AddDate(0, 0, -364))
	end := endOfDay(start.AddDate(0, 0, 6))
	return domain.DateRange{
		Name:  domain.RangeWeekTotalPriorYear,
		Start: start,
		End:   end,
	}
}

// MonthToDateActual runs from the first of the reference month to the
// reference day.
func (c *Calendar) MonthToDateActual() domain.DateRange {
	y, m, _ := c.base.Date()
	return domain.DateRange{
		Name:  domain.RangeMonthToDateActual,
		Start: time.Date(y, m, 1, 0, 0, 0, 0, c.base.Location()),
		End:   c.base,
	}
}

// MonthToDatePriorYear covers the same calendar span one year earlier.
// A Feb 29 reference date resolves to Feb 28 in a non-leap prior year.
func (c *Calendar) MonthToDatePriorYear() domain.DateRange {
	priorEnd := minusOneCalendarYear(c.base)
	y, m, _ := priorEnd.Date()
	return domain.DateRange{
		Name:  domain.RangeMonthToDatePriorYear,
		Start: time.Date(y, m, 1, 0, 0, 0, 0, priorEnd.Location()),
		End:   priorEnd,
	}
}

// WinterEndingActual runs from Nov 1 of the season containing the reference
// day to the reference day. November and December belong to the season that
// starts in the same calendar year.
func (c *Calendar) WinterEndingActual() domain.DateRange {
	return domain.DateRange{
		Name:  domain.RangeWinterEndingActual,
		Start: seasonStart(c.base),
		End:   c.base,
	}
}

// WinterEndingPriorYear ends one calendar year before the reference day
// (date aligned, not day-of-week aligned) and starts at Nov 1 of the season
// containing that shifted end date.
func (c *Calendar) WinterEndingPriorYear() domain.DateRange {
	priorEnd := minusOneCalendarYear(c.base)
	return domain.DateRange{
		Name:  domain.RangeWinterEndingPriorYear,
		Start: seasonStart(priorEnd),
		End:   priorEnd,
	}
}

// minusOneCalendarYear shifts a timestamp back one year as a calendar unit,
// mapping Feb 29 to Feb 28 when the target year is not a leap year. Go's
// AddDate would normalize Feb 29 to Mar 1 instead.
func minusOneCalendarYear(t time.Time) time.Time {
	y, m, d := t.Date()
	if m == time.February && d == 29 {
		d = 28
	}
	h, min, s := t.Clock()
	return time.Date(y-1, m, d, h, min, s, 0, t.Location())
}

func seasonStart(t time.Time) time.Time {
	y, m, _ := t.Date()
	if m < time.November {
		y--
	}
	return time.Date(y, time.November, 1, 0, 0, 0, 0, t.Location())
}

func mondayOf(t time.Time) time.Time {
	daysSinceMonday := (int(t.Weekday()) + 6) % 7
	return midnight(t.AddDate(0, 0, -daysSinceMonday))
}

func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, 0, t.Location())
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
