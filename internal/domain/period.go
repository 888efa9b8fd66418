package domain

import (
	"time"

	"cloud.google.com/go/civil"
)

// MaxPeriodDays is the longest billing period, counted inclusively.
const MaxPeriodDays = 31

// DaysInMonth returns the number of days in the given month.
func DaysInMonth(year int, month time.Month) int {
	// Day 0 of the following month normalizes to the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// IsZeroDate reports whether d is unset.
func IsZeroDate(d civil.Date) bool {
	return d == civil.Date{}
}

// DefaultPeriod returns the first and last day of the month containing ref.
func DefaultPeriod(ref civil.Date) (civil.Date, civil.Date) {
	start := civil.Date{Year: ref.Year, Month: ref.Month, Day: 1}
	end := civil.Date{Year: ref.Year, Month: ref.Month, Day: DaysInMonth(ref.Year, ref.Month)}
	return start, end
}

// ClampPeriod returns end adjusted so that start <= end and the inclusive
// span does not exceed MaxPeriodDays.
func ClampPeriod(start, end civil.Date) civil.Date {
	if end.Before(start) {
		return start
	}
	if end.DaysSince(start)+1 > MaxPeriodDays {
		return start.AddDays(MaxPeriodDays - 1)
	}
	return end
}

// ShiftPeriod moves a period by whole calendar months. The day of month of
// start is kept, capped to the length of the target month, and the end is
// re-derived as one month after the new start minus one day.
//
// Capping the start is lossy: Jan 31 shifted +1 lands on Feb 28 (or 29), and
// shifting back returns Jan 28 (or 29), not Jan 31. The end is not capped: a
// day missing from the following month rolls over into the month after, so
// Jan 31 ends on Mar 2 (Mar 1 in leap years).
func ShiftPeriod(start civil.Date, monthOffset int) (civil.Date, civil.Date) {
	newStart := addMonthsCapped(start, monthOffset)

	end := addMonthOverflow(newStart).AddDays(-1)
	if end.DaysSince(newStart)+1 > MaxPeriodDays {
		end = newStart.AddDays(MaxPeriodDays - 1)
	}
	if end.Before(newStart) {
		end = newStart
	}

	return newStart, end
}

// addMonthsCapped adds months to d without overflowing into the month after
// the target; the day is capped to the target month's length.
func addMonthsCapped(d civil.Date, months int) civil.Date {
	idx := d.Year*12 + int(d.Month) - 1 + months
	year := floorDiv(idx, 12)
	month := time.Month(idx - year*12 + 1)

	day := d.Day
	if last := DaysInMonth(year, month); day > last {
		day = last
	}

	return civil.Date{Year: year, Month: month, Day: day}
}

// addMonthOverflow adds one month to d, letting a day missing from the
// following month roll over into the month after it.
func addMonthOverflow(d civil.Date) civil.Date {
	return civil.DateOf(time.Date(d.Year, d.Month+1, d.Day, 0, 0, 0, 0, time.UTC))
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
