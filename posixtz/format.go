package posixtz

import (
	"fmt"
	"strings"
	"time"
)

// String encodes r as a TZ rule string. Parse(r.String()) yields r for
// rules whose abbreviations were not truncated.
func (r Rule) String() string {
	var b strings.Builder
	writeName(&b, r.Std.Abbr)
	b.WriteString(formatClock(-r.Std.Offset))
	if !r.HasDST {
		return b.String()
	}
	writeName(&b, r.DST.Abbr)
	if r.DST.Offset != r.Std.Offset+60*60 {
		b.WriteString(formatClock(-r.DST.Offset))
	}
	for _, d := range [...]DateRule{r.DST.Begins, r.Std.Begins} {
		if d.Kind == Unset {
			break
		}
		b.WriteByte(',')
		b.WriteString(d.String())
	}
	return b.String()
}

func (r DateRule) String() string {
	var s string
	switch r.Kind {
	case Julian:
		s = fmt.Sprintf("J%d", r.Day)
	case ZeroBasedDay:
		s = fmt.Sprintf("%d", r.Day)
	case MonthWeekDay:
		s = fmt.Sprintf("M%d.%d.%d", r.Month, r.Week, r.Day)
	default:
		return ""
	}
	if r.Time != DefaultTime {
		s += "/" + formatClock(r.Time)
	}
	return s
}

func writeName(b *strings.Builder, abbr string) {
	for _, c := range abbr {
		if (c < 'A' || c > 'Z') && (c < 'a' || c > 'z') {
			b.WriteString("<" + abbr + ">")
			return
		}
	}
	b.WriteString(abbr)
}

// formatClock formats secs as [-]h[:mm[:ss]].
func formatClock(secs int) string {
	sign := ""
	if secs < 0 {
		sign, secs = "-", -secs
	}
	h, m, s := secs/3600, secs/60%60, secs%60
	switch {
	case s != 0:
		return fmt.Sprintf("%s%d:%02d:%02d", sign, h, m, s)
	case m != 0:
		return fmt.Sprintf("%s%d:%02d", sign, h, m)
	}
	return fmt.Sprintf("%s%d", sign, h)
}

// FormatOffset formats an offset in seconds east of UTC as UTC+hh:mm.
func FormatOffset(offset int) string {
	sign := "+"
	if offset < 0 {
		sign, offset = "-", -offset
	}
	h, m, s := offset/3600, offset/60%60, offset%60
	if s != 0 {
		return fmt.Sprintf("UTC%s%02d:%02d:%02d", sign, h, m, s)
	}
	return fmt.Sprintf("UTC%s%02d:%02d", sign, h, m)
}

var (
	months   = [...]string{"January", "February", "March", "April", "May", "June", "July", "August", "September", "October", "November", "December"}
	weekdays = [...]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}
	ordinals = [...]string{"first", "second", "third", "fourth", "last"}
)

// Describe returns a human readable description of r, e.g.
//
//	Standard time: EST (UTC-05:00)
//	Daylight time: EDT (UTC-04:00), saving 1h0m0s
//	Starts on the second Sunday of March at 02:00:00 local time
//	Ends on the first Sunday of November at 02:00:00 local time
func (r Rule) Describe() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Standard time: %s (%s)\n", r.Std.Abbr, FormatOffset(r.Std.Offset))
	if !r.HasDST {
		b.WriteString("No daylight saving time\n")
		return b.String()
	}
	fmt.Fprintf(&b, "Daylight time: %s (%s), saving %s\n", r.DST.Abbr, FormatOffset(r.DST.Offset), formatDuration(r.DST.Save))
	if !r.Recurs() {
		b.WriteString("No transition dates\n")
		return b.String()
	}
	fmt.Fprintf(&b, "Starts %s\n", r.DST.Begins.Describe())
	fmt.Fprintf(&b, "Ends %s\n", r.Std.Begins.Describe())
	return b.String()
}

// Describe returns a human readable description of r.
func (r DateRule) Describe() string {
	var day string
	switch r.Kind {
	case Julian:
		m, d := julianToMonthDay(r.Day)
		day = fmt.Sprintf("on %s %d (day %d, ignoring February 29)", months[m-1], d, r.Day)
	case ZeroBasedDay:
		day = fmt.Sprintf("on day %d of the year (counting from 0)", r.Day)
	case MonthWeekDay:
		day = fmt.Sprintf("on the %s %s of %s", ordinals[r.Week-1], weekdays[r.Day], months[r.Month-1])
	default:
		return "never"
	}
	return fmt.Sprintf("%s at %s local time", day, formatTimeOfDay(r.Time))
}

func formatTimeOfDay(secs int) string {
	sign := ""
	if secs < 0 {
		sign, secs = "-", -secs
	}
	return fmt.Sprintf("%s%02d:%02d:%02d", sign, secs/3600, secs/60%60, secs%60)
}

func formatDuration(secs int) string {
	return (time.Duration(secs) * time.Second).String()
}
