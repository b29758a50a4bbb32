package posixtz

import (
	"github.com/ngrash/go-zdump/internal/unixtime"
)

// daysBefore[m] counts the days of a non-leap year before month m+1.
var daysBefore = [...]int{0, 31, 59, 90, 120, 151, 181, 212, 243, 273, 304, 334, 365}

// Date returns the civil date on which r falls in year. A ZeroBasedDay
// rule for day 365 of a non-leap year falls on January 1 of the next year.
func (r DateRule) Date(year int) (y, month, day int) {
	switch r.Kind {
	case Julian:
		m, d := julianToMonthDay(r.Day)
		return year, m, d
	case ZeroBasedDay:
		return unixtime.CivilFromDays(unixtime.DaysFromCivil(year, 1, 1) + int64(r.Day))
	case MonthWeekDay:
		if r.Week == 5 {
			return year, r.Month, lastWeekdayOfMonth(year, r.Month, r.Day)
		}
		first := unixtime.DaysFromCivil(year, r.Month, 1)
		d := 1 + (r.Day-unixtime.Weekday(first)+7)%7 + (r.Week-1)*7
		return year, r.Month, d
	}
	return year, 1, 1
}

// At returns the UTC instant of r in year for a zone whose local time is
// offset seconds east of UTC.
func (r DateRule) At(year, offset int) int64 {
	y, m, d := r.Date(year)
	return unixtime.FromDateTime(y, m, d, 0, 0, r.Time) - int64(offset)
}

// julianToMonthDay converts a Jn day (1..365) to a month and day of a
// non-leap year. J60 is March 1.
func julianToMonthDay(j int) (month, day int) {
	m := 1
	for m < 12 && j > daysBefore[m] {
		m++
	}
	return m, j - daysBefore[m-1]
}

// lastWeekdayOfMonth finds the last instance of a given weekday in a specific month and year.
func lastWeekdayOfMonth(year, month, weekday int) int {
	lastDay := unixtime.DaysInMonth(year, month)
	lastDayWeekday := unixtime.Weekday(unixtime.DaysFromCivil(year, month, lastDay))

	// Calculate how many days to subtract from the last day to get the last instance of the given weekday.
	offset := (lastDayWeekday - weekday + 7) % 7
	return lastDay - offset
}

func yearOf(t int64) int {
	return unixtime.Year(t)
}
