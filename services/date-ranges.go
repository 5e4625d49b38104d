package services

import "time"

// DateRanges holds the boundaries of the day, week and month windows
// around a reference instant. EndOfToday is a hard end-of-day bound;
// EndOfWeek and EndOfMonth are exclusive next-period starts, always
// compared with "<".
type DateRanges struct {
	StartOfToday time.Time
	EndOfToday   time.Time
	StartOfWeek  time.Time
	EndOfWeek    time.Time
	StartOfMonth time.Time
	EndOfMonth   time.Time
}

// GetDateRanges computes the window boundaries for the given instant in
// its own location. The week starts on Sunday. EndOfMonth is day zero
// of the following month, so the last calendar day itself sits outside
// the month window.
func GetDateRanges(now time.Time) DateRanges {
	year, month, day := now.Date()
	loc := now.Location()

	startOfToday := time.Date(year, month, day, 0, 0, 0, 0, loc)
	endOfToday := startOfToday.AddDate(0, 0, 1).Add(-time.Millisecond)

	startOfWeek := startOfToday.AddDate(0, 0, -int(now.Weekday()))
	endOfWeek := startOfWeek.AddDate(0, 0, 6)

	startOfMonth := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	endOfMonth := time.Date(year, month+1, 0, 0, 0, 0, 0, loc)

	return DateRanges{
		StartOfToday: startOfToday,
		EndOfToday:   endOfToday,
		StartOfWeek:  startOfWeek,
		EndOfWeek:    endOfWeek,
		StartOfMonth: startOfMonth,
		EndOfMonth:   endOfMonth,
	}
}
