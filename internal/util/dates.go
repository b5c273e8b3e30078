package util

import "time"

// MonthStart returns midnight of the first day of t's month, in t's location.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// AddMonths moves t by n calendar months keeping the time of day. When the
// day does not exist in the target month it is clamped to the month's last
// day, so 31 March minus one month is the last day of February.
func AddMonths(t time.Time, n int) time.Time {
	first := time.Date(t.Year(), t.Month()+time.Month(n), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	day := t.Day()
	if last := DaysIn(first.Year(), first.Month()); day > last {
		day = last
	}

	return first.AddDate(0, 0, day-1)
}

// AddYears moves t by n calendar years with the same clamping as AddMonths.
func AddYears(t time.Time, n int) time.Time {
	const monthsInYear = 12
	return AddMonths(t, n*monthsInYear)
}

// DaysIn returns the number of days in the given month.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// WallClock returns the wall clock reading of t as a UTC instant. Calendar
// dates are stored at UTC midnight, so comparing them against WallClock(now)
// compares what the user sees on the calendar.
func WallClock(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}
