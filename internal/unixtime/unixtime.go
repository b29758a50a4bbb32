// Package unixtime converts between proleptic Gregorian civil dates and
// seconds since 1970-01-01 00:00:00 UTC without going through time.Location.
//
// Leap seconds are ignored, as they are by POSIX time_t.
package unixtime

const (
	SecondsPerMinute = 60
	SecondsPerHour   = 60 * SecondsPerMinute
	SecondsPerDay    = 24 * SecondsPerHour

	daysPerEra = 365*400 + 97 // days in a 400 year cycle
)

// IsLeapYear reports whether year has 366 days.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysInMonth returns the number of days in month (1..12) of year.
func DaysInMonth(year, month int) int {
	switch month {
	case 2:
		if IsLeapYear(year) {
			return 29
		}
		return 28
	case 4, 6, 9, 11:
		return 30
	}
	return 31
}

// DaysFromCivil returns the number of days between 1970-01-01 and the given
// date. Days before the epoch are negative.
func DaysFromCivil(year, month, day int) int64 {
	y := int64(year)
	if month <= 2 {
		y--
	}
	era := floorDiv(y, 400)
	yoe := y - era*400 // [0, 399]
	mp := int64(month+9) % 12
	doy := (153*mp+2)/5 + int64(day) - 1  // [0, 365], counted from March 1
	doe := yoe*365 + yoe/4 - yoe/100 + doy // [0, 146096]
	return era*daysPerEra + doe - 719468
}

// CivilFromDays is the inverse of DaysFromCivil.
func CivilFromDays(days int64) (year, month, day int) {
	z := days + 719468
	era := floorDiv(z, daysPerEra)
	doe := z - era*daysPerEra
	yoe := (doe - doe/1460 + doe/36524 - doe/146096) / 365
	doy := doe - (365*yoe + yoe/4 - yoe/100)
	mp := (5*doy + 2) / 153
	day = int(doy - (153*mp+2)/5 + 1)
	month = int(mp + 3)
	if month > 12 {
		month -= 12
	}
	y := yoe + era*400
	if month <= 2 {
		y++
	}
	return int(y), month, day
}

// Weekday returns the day of the week of the given day number, where
// 0 is Sunday. 1970-01-01 was a Thursday.
func Weekday(days int64) int {
	return int(floorMod(days+4, 7))
}

// FromDateTime converts a given date and time to a Unix timestamp.
// Out of range hour, minute and second values are carried into the day.
func FromDateTime(year, month, day, hour, minute, second int) int64 {
	return DaysFromCivil(year, month, day)*SecondsPerDay +
		int64(hour)*SecondsPerHour +
		int64(minute)*SecondsPerMinute +
		int64(second)
}

// Date returns the civil date and the seconds into that day of the Unix
// timestamp unix.
func Date(unix int64) (year, month, day, secs int) {
	days := floorDiv(unix, SecondsPerDay)
	year, month, day = CivilFromDays(days)
	return year, month, day, int(unix - days*SecondsPerDay)
}

// Year returns the civil year containing the Unix timestamp unix.
func Year(unix int64) int {
	y, _, _, _ := Date(unix)
	return y
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorMod(a, b int64) int64 {
	return a - floorDiv(a, b)*b
}
