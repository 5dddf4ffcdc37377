// Package period derives the active billing cycle and quarterly reward
// window from a reference date. All comparisons are date-only.
package period

import "time"

// Window is an inclusive date range. Quarter windows carry a display label.
type Window struct {
	Start time.Time
	End   time.Time
	Label string
}

// dateOnly drops the time component and pins the calendar date to UTC so
// that ledger dates and wall-clock reference dates compare consistently.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// MonthlyCycle returns the active billing cycle. The statement closes on
// the 12th: a reference on or before the 12th belongs to the cycle running
// from the 13th of the previous month, otherwise the cycle starts on the
// 13th of the current month. time.Date normalizes month overflow, so
// January rolls back to December of the prior year.
func MonthlyCycle(ref time.Time) Window {
	y, m, d := ref.Date()
	if d <= 12 {
		return Window{
			Start: time.Date(y, m-1, 13, 0, 0, 0, 0, time.UTC),
			End:   time.Date(y, m, 12, 0, 0, 0, 0, time.UTC),
		}
	}
	return Window{
		Start: time.Date(y, m, 13, 0, 0, 0, 0, time.UTC),
		End:   time.Date(y, m+1, 12, 0, 0, 0, 0, time.UTC),
	}
}

// QuarterlyWindow returns the reward quarter containing ref. Quarters are
// anchored on the 13th of March, June, September and December; a reference
// before March 13 falls into the previous year's Q4.
func QuarterlyWindow(ref time.Time) Window {
	y := ref.Year()
	day := dateOnly(ref)
	q1 := time.Date(y, time.March, 13, 0, 0, 0, 0, time.UTC)
	q2 := time.Date(y, time.June, 13, 0, 0, 0, 0, time.UTC)
	q3 := time.Date(y, time.September, 13, 0, 0, 0, 0, time.UTC)
	q4 := time.Date(y, time.December, 13, 0, 0, 0, 0, time.UTC)

	switch {
	case day.Before(q1):
		return Window{
			Start: time.Date(y-1, time.December, 13, 0, 0, 0, 0, time.UTC),
			End:   time.Date(y, time.March, 12, 0, 0, 0, 0, time.UTC),
			Label: "Q4 (Prev)",
		}
	case day.Before(q2):
		return Window{Start: q1, End: time.Date(y, time.June, 12, 0, 0, 0, 0, time.UTC), Label: "Q1"}
	case day.Before(q3):
		return Window{Start: q2, End: time.Date(y, time.September, 12, 0, 0, 0, 0, time.UTC), Label: "Q2"}
	case day.Before(q4):
		return Window{Start: q3, End: time.Date(y, time.December, 12, 0, 0, 0, 0, time.UTC), Label: "Q3"}
	default:
		return Window{Start: q4, End: time.Date(y+1, time.March, 12, 0, 0, 0, 0, time.UTC), Label: "Q4"}
	}
}

// InRange reports whether d falls inside [start, end]. The start is
// normalized to midnight and the end to end-of-day, so single-day windows
// and same-day transactions are included.
func InRange(d, start, end time.Time) bool {
	day := dateOnly(d)
	s := dateOnly(start)
	e := dateOnly(end).Add(24*time.Hour - time.Nanosecond)
	return !day.Before(s) && !day.After(e)
}
