package domain

import (
	"testing"
	"time"

	"cloud.google.com/go/civil"
)

func date(y int, m time.Month, d int) civil.Date {
	return civil.Date{Year: y, Month: m, Day: d}
}

func TestDaysInMonth(t *testing.T) {
	tests := []struct {
		year  int
		month time.Month
		want  int
	}{
		{2025, time.January, 31},
		{2025, time.February, 28},
		{2024, time.February, 29},
		{1900, time.February, 28},
		{2000, time.February, 29},
		{2025, time.April, 30},
		{2025, time.December, 31},
	}

	for _, tt := range tests {
		if got := DaysInMonth(tt.year, tt.month); got != tt.want {
			t.Fatalf("DaysInMonth(%d, %s) = %d, want %d", tt.year, tt.month, got, tt.want)
		}
	}
}

func TestDefaultPeriod(t *testing.T) {
	tests := []struct {
		name      string
		ref       civil.Date
		wantStart civil.Date
		wantEnd   civil.Date
	}{
		{"mid month", date(2025, time.March, 14), date(2025, time.March, 1), date(2025, time.March, 31)},
		{"leap february", date(2024, time.February, 29), date(2024, time.February, 1), date(2024, time.February, 29)},
		{"first day", date(2026, time.October, 1), date(2026, time.October, 1), date(2026, time.October, 31)},
		{"thirty day month", date(2026, time.November, 30), date(2026, time.November, 1), date(2026, time.November, 30)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := DefaultPeriod(tt.ref)
			if start != tt.wantStart || end != tt.wantEnd {
				t.Fatalf("expected %s..%s, got %s..%s", tt.wantStart, tt.wantEnd, start, end)
			}
		})
	}
}

func TestClampPeriod(t *testing.T) {
	tests := []struct {
		name  string
		start civil.Date
		end   civil.Date
		want  civil.Date
	}{
		{"end before start", date(2025, time.May, 10), date(2025, time.May, 1), date(2025, time.May, 10)},
		{"same day", date(2025, time.May, 10), date(2025, time.May, 10), date(2025, time.May, 10)},
		{"exactly 31 days", date(2025, time.January, 1), date(2025, time.January, 31), date(2025, time.January, 31)},
		{"32 days", date(2025, time.January, 1), date(2025, time.February, 1), date(2025, time.January, 31)},
		{"far future", date(2025, time.January, 15), date(2026, time.June, 1), date(2025, time.February, 14)},
		{"across year end", date(2025, time.December, 20), date(2026, time.March, 1), date(2026, time.January, 19)},
		{"short period untouched", date(2025, time.February, 1), date(2025, time.February, 28), date(2025, time.February, 28)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClampPeriod(tt.start, tt.end); got != tt.want {
				t.Fatalf("ClampPeriod(%s, %s) = %s, want %s", tt.start, tt.end, got, tt.want)
			}
		})
	}
}

func TestClampPeriod_Properties(t *testing.T) {
	start := date(2024, time.January, 1)
	for i := 0; i < 366; i++ {
		s := start.AddDays(i)

		for back := 1; back <= 40; back++ {
			if got := ClampPeriod(s, s.AddDays(-back)); got != s {
				t.Fatalf("end before start: ClampPeriod(%s, %s) = %s, want %s", s, s.AddDays(-back), got, s)
			}
		}

		for span := 32; span <= 70; span++ {
			end := s.AddDays(span - 1)
			got := ClampPeriod(s, end)
			if got != s.AddDays(30) {
				t.Fatalf("span %d: ClampPeriod(%s, %s) = %s, want %s", span, s, end, got, s.AddDays(30))
			}
			if got.DaysSince(s)+1 != MaxPeriodDays {
				t.Fatalf("span %d: expected exactly %d inclusive days", span, MaxPeriodDays)
			}
		}
	}
}

func TestShiftPeriod(t *testing.T) {
	tests := []struct {
		name      string
		start     civil.Date
		offset    int
		wantStart civil.Date
		wantEnd   civil.Date
	}{
		{"first of month forward", date(2025, time.January, 1), 1, date(2025, time.February, 1), date(2025, time.February, 28)},
		{"first of month back", date(2025, time.March, 1), -1, date(2025, time.February, 1), date(2025, time.February, 28)},
		{"mid month", date(2025, time.April, 15), 1, date(2025, time.May, 15), date(2025, time.June, 14)},
		{"year carry forward", date(2025, time.December, 5), 1, date(2026, time.January, 5), date(2026, time.February, 4)},
		{"year carry back", date(2026, time.January, 5), -1, date(2025, time.December, 5), date(2026, time.January, 4)},
		{"jan 31 into february", date(2025, time.January, 31), 1, date(2025, time.February, 28), date(2025, time.March, 27)},
		{"jan 31 into leap february", date(2024, time.January, 31), 1, date(2024, time.February, 29), date(2024, time.March, 28)},
		{"march 31 into april", date(2025, time.March, 31), 1, date(2025, time.April, 30), date(2025, time.May, 29)},
		{"dec 31 end rolls into march", date(2024, time.December, 31), 1, date(2025, time.January, 31), date(2025, time.March, 2)},
		{"dec 31 end rolls into leap march", date(2023, time.December, 31), 1, date(2024, time.January, 31), date(2024, time.March, 1)},
		{"jan 31 into march", date(2025, time.January, 31), 2, date(2025, time.March, 31), date(2025, time.April, 30)},
		{"may 31 back into march", date(2025, time.May, 31), -2, date(2025, time.March, 31), date(2025, time.April, 30)},
		{"august 31 into october", date(2025, time.August, 31), 2, date(2025, time.October, 31), date(2025, time.November, 30)},
		{"multi year forward", date(2025, time.June, 10), 30, date(2027, time.December, 10), date(2028, time.January, 9)},
		{"multi year back", date(2025, time.June, 10), -18, date(2023, time.December, 10), date(2024, time.January, 9)},
		{"zero offset rederives end", date(2025, time.June, 1), 0, date(2025, time.June, 1), date(2025, time.June, 30)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := ShiftPeriod(tt.start, tt.offset)
			if start != tt.wantStart || end != tt.wantEnd {
				t.Fatalf("ShiftPeriod(%s, %d) = %s..%s, want %s..%s",
					tt.start, tt.offset, start, end, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestShiftPeriod_SpanNeverExceedsLimit(t *testing.T) {
	for year := 2023; year <= 2025; year++ {
		for month := time.January; month <= time.December; month++ {
			for day := 1; day <= DaysInMonth(year, month); day++ {
				start, end := ShiftPeriod(date(year, month, day), 1)
				if end.Before(start) {
					t.Fatalf("shift from %d-%02d-%02d gave end %s before start %s", year, month, day, end, start)
				}
				if span := end.DaysSince(start) + 1; span > MaxPeriodDays {
					t.Fatalf("shift from %d-%02d-%02d gave %d-day period %s..%s", year, month, day, span, start, end)
				}
			}
		}
	}
}

func TestShiftPeriod_InvertibleUpToDay28(t *testing.T) {
	for year := 2023; year <= 2025; year++ {
		for month := time.January; month <= time.December; month++ {
			for day := 1; day <= 28; day++ {
				orig := date(year, month, day)

				fwd, _ := ShiftPeriod(orig, 1)
				back, _ := ShiftPeriod(fwd, -1)
				if back != orig {
					t.Fatalf("+1/-1 from %s returned %s", orig, back)
				}

				bwd, _ := ShiftPeriod(orig, -1)
				again, _ := ShiftPeriod(bwd, 1)
				if again != orig {
					t.Fatalf("-1/+1 from %s returned %s", orig, again)
				}
			}
		}
	}
}

func TestShiftPeriod_LossyAfterDay28(t *testing.T) {
	fwd, _ := ShiftPeriod(date(2025, time.January, 31), 1)
	back, _ := ShiftPeriod(fwd, -1)
	if back != date(2025, time.January, 28) {
		t.Fatalf("expected capping to land on Jan 28, got %s", back)
	}

	fwd, _ = ShiftPeriod(date(2024, time.January, 30), 1)
	back, _ = ShiftPeriod(fwd, -1)
	if back != date(2024, time.January, 29) {
		t.Fatalf("expected leap-year capping to land on Jan 29, got %s", back)
	}
}

func TestShiftPeriod_AlwaysWithinBounds(t *testing.T) {
	start := date(2023, time.January, 1)
	for i := 0; i < 3*366; i++ {
		s := start.AddDays(i)
		for _, offset := range []int{-13, -1, 1, 12} {
			ns, ne := ShiftPeriod(s, offset)
			if ne.Before(ns) {
				t.Fatalf("ShiftPeriod(%s, %d): end %s before start %s", s, offset, ne, ns)
			}
			if span := ne.DaysSince(ns) + 1; span > MaxPeriodDays {
				t.Fatalf("ShiftPeriod(%s, %d): span %d exceeds %d", s, offset, span, MaxPeriodDays)
			}
			if ns.Day > s.Day {
				t.Fatalf("ShiftPeriod(%s, %d): day grew to %d", s, offset, ns.Day)
			}
		}
	}
}
