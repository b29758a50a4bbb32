package unixtime

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestFromDateTime(t *testing.T) {
	cases := []struct {
		year, month, day, hour, minute, second int
	}{
		{1970, 1, 1, 0, 0, 0},
		{1969, 12, 31, 23, 59, 59},
		{1901, 12, 13, 20, 45, 52},
		{2038, 1, 19, 3, 14, 7},
		{2000, 2, 29, 12, 0, 0},
		{2023, 3, 12, 7, 0, 0},
		{1600, 3, 1, 0, 0, 0},
		{-1, 12, 31, 0, 0, 0},
		{9999, 12, 31, 23, 59, 59},
	}
	for _, c := range cases {
		want := time.Date(c.year, time.Month(c.month), c.day, c.hour, c.minute, c.second, 0, time.UTC).Unix()
		if got := FromDateTime(c.year, c.month, c.day, c.hour, c.minute, c.second); got != want {
			t.Errorf("FromDateTime(%+v) = %d, want %d", c, got, want)
		}
	}
}

func TestDate(t *testing.T) {
	type date struct{ Year, Month, Day, Secs int }
	for _, unix := range []int64{0, -1, 1678604400, -2334101314, 951825600, 253402300799, -62167219200} {
		tm := time.Unix(unix, 0).UTC()
		want := date{tm.Year(), int(tm.Month()), tm.Day(), tm.Hour()*3600 + tm.Minute()*60 + tm.Second()}
		y, m, d, s := Date(unix)
		if diff := cmp.Diff(want, date{y, m, d, s}); diff != "" {
			t.Errorf("Date(%d) mismatch (-want +got):\n%s", unix, diff)
		}
	}
}

func TestCivilRoundTrip(t *testing.T) {
	for days := int64(-800000); days <= 800000; days += 997 {
		y, m, d := CivilFromDays(days)
		if got := DaysFromCivil(y, m, d); got != days {
			t.Fatalf("DaysFromCivil(CivilFromDays(%d)) = %d (%04d-%02d-%02d)", days, got, y, m, d)
		}
	}
}

func TestWeekday(t *testing.T) {
	for _, tm := range []time.Time{
		time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(1969, 12, 28, 0, 0, 0, 0, time.UTC),
		time.Date(2023, 3, 12, 0, 0, 0, 0, time.UTC),
		time.Date(1900, 2, 28, 0, 0, 0, 0, time.UTC),
	} {
		days := DaysFromCivil(tm.Year(), int(tm.Month()), tm.Day())
		if got := Weekday(days); got != int(tm.Weekday()) {
			t.Errorf("Weekday(%s) = %d, want %d", tm.Format(time.DateOnly), got, tm.Weekday())
		}
	}
}

func TestDaysInMonth(t *testing.T) {
	cases := []struct{ year, month, want int }{
		{2021, 2, 28},
		{2020, 2, 29},
		{1900, 2, 28},
		{2000, 2, 29},
		{2021, 4, 30},
		{2021, 12, 31},
	}
	for _, c := range cases {
		if got := DaysInMonth(c.year, c.month); got != c.want {
			t.Errorf("DaysInMonth(%d, %d) = %d, want %d", c.year, c.month, got, c.want)
		}
	}
}
