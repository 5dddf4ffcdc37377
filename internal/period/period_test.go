package period

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestMonthlyCycleBoundaries(t *testing.T) {
	cases := []struct {
		ref       time.Time
		wantStart time.Time
		wantEnd   time.Time
	}{
		// On the statement date the cycle ends today.
		{date(2026, time.May, 12), date(2026, time.April, 13), date(2026, time.May, 12)},
		// On the 13th a fresh cycle starts today.
		{date(2026, time.May, 13), date(2026, time.May, 13), date(2026, time.June, 12)},
		// Mid-cycle.
		{date(2026, time.May, 25), date(2026, time.May, 13), date(2026, time.June, 12)},
		{date(2026, time.May, 1), date(2026, time.April, 13), date(2026, time.May, 12)},
		// January rolls the start back to December of the prior year.
		{date(2026, time.January, 5), date(2025, time.December, 13), date(2026, time.January, 12)},
		// Late December rolls the end into January of the next year.
		{date(2025, time.December, 20), date(2025, time.December, 13), date(2026, time.January, 12)},
	}

	for _, c := range cases {
		got := MonthlyCycle(c.ref)
		if !got.Start.Equal(c.wantStart) || !got.End.Equal(c.wantEnd) {
			t.Errorf("MonthlyCycle(%s) = [%s, %s], want [%s, %s]",
				c.ref.Format(time.DateOnly),
				got.Start.Format(time.DateOnly), got.End.Format(time.DateOnly),
				c.wantStart.Format(time.DateOnly), c.wantEnd.Format(time.DateOnly))
		}
	}
}

func TestMonthlyCycleStatementLaws(t *testing.T) {
	// Walk a year of 12ths and 13ths: the 12th always closes its own
	// cycle, the 13th always opens one.
	for m := time.January; m <= time.December; m++ {
		ref := date(2026, m, 12)
		cycle := MonthlyCycle(ref)
		if !cycle.End.Equal(ref) {
			t.Errorf("cycle for %s should end that day, got %s", ref.Format(time.DateOnly), cycle.End.Format(time.DateOnly))
		}
		wantStart := date(2026, m-1, 13)
		if !cycle.Start.Equal(wantStart) {
			t.Errorf("cycle for %s should start %s, got %s", ref.Format(time.DateOnly), wantStart.Format(time.DateOnly), cycle.Start.Format(time.DateOnly))
		}

		ref = date(2026, m, 13)
		if cycle = MonthlyCycle(ref); !cycle.Start.Equal(ref) {
			t.Errorf("cycle for %s should start that day, got %s", ref.Format(time.DateOnly), cycle.Start.Format(time.DateOnly))
		}
	}
}

func TestQuarterlyWindowLabels(t *testing.T) {
	cases := []struct {
		ref       time.Time
		wantLabel string
		wantStart time.Time
		wantEnd   time.Time
	}{
		{date(2026, time.January, 10), "Q4 (Prev)", date(2025, time.December, 13), date(2026, time.March, 12)},
		{date(2026, time.March, 12), "Q4 (Prev)", date(2025, time.December, 13), date(2026, time.March, 12)},
		{date(2026, time.March, 13), "Q1", date(2026, time.March, 13), date(2026, time.June, 12)},
		{date(2026, time.June, 12), "Q1", date(2026, time.March, 13), date(2026, time.June, 12)},
		{date(2026, time.June, 13), "Q2", date(2026, time.June, 13), date(2026, time.September, 12)},
		{date(2026, time.September, 13), "Q3", date(2026, time.September, 13), date(2026, time.December, 12)},
		{date(2026, time.December, 13), "Q4", date(2026, time.December, 13), date(2027, time.March, 12)},
		{date(2026, time.December, 31), "Q4", date(2026, time.December, 13), date(2027, time.March, 12)},
	}

	for _, c := range cases {
		got := QuarterlyWindow(c.ref)
		if got.Label != c.wantLabel {
			t.Errorf("QuarterlyWindow(%s).Label = %q, want %q", c.ref.Format(time.DateOnly), got.Label, c.wantLabel)
		}
		if !got.Start.Equal(c.wantStart) || !got.End.Equal(c.wantEnd) {
			t.Errorf("QuarterlyWindow(%s) = [%s, %s], want [%s, %s]",
				c.ref.Format(time.DateOnly),
				got.Start.Format(time.DateOnly), got.End.Format(time.DateOnly),
				c.wantStart.Format(time.DateOnly), c.wantEnd.Format(time.DateOnly))
		}
	}
}

func TestQuarterlyWindowPartitionsYear(t *testing.T) {
	// Every day of the year belongs to exactly one window, and windows
	// join end-to-end with no gap or overlap.
	d := date(2026, time.January, 1)
	prev := QuarterlyWindow(d)
	for d.Year() == 2026 {
		w := QuarterlyWindow(d)
		if !InRange(d, w.Start, w.End) {
			t.Fatalf("%s not inside its own window [%s, %s]", d.Format(time.DateOnly), w.Start.Format(time.DateOnly), w.End.Format(time.DateOnly))
		}
		if w.Label != prev.Label {
			if !w.Start.Equal(prev.End.AddDate(0, 0, 1)) {
				t.Fatalf("window %q does not start the day after %q ends", w.Label, prev.Label)
			}
			prev = w
		}
		d = d.AddDate(0, 0, 1)
	}
}

func TestInRange(t *testing.T) {
	start := date(2026, time.April, 13)
	end := date(2026, time.May, 12)

	cases := []struct {
		d    time.Time
		want bool
	}{
		{date(2026, time.April, 13), true},
		{date(2026, time.May, 12), true},
		{date(2026, time.April, 12), false},
		{date(2026, time.May, 13), false},
		{date(2026, time.April, 30), true},
	}
	for _, c := range cases {
		if got := InRange(c.d, start, end); got != c.want {
			t.Errorf("InRange(%s) = %v, want %v", c.d.Format(time.DateOnly), got, c.want)
		}
	}

	// Single-day window includes its own day, a timestamped one included.
	day := date(2026, time.July, 1)
	if !InRange(day, day, day) {
		t.Error("single-day window should include its day")
	}
	noon := time.Date(2026, time.July, 1, 12, 30, 0, 0, time.UTC)
	if !InRange(noon, day, day) {
		t.Error("time component should not affect inclusion")
	}
}
