// Package posixtz decodes POSIX TZ rule strings as found in the footer of
// version 2+ TZif files and computes the instants at which they switch
// between standard and daylight saving time.
//
// Offsets are stored in seconds east of UTC, the way TZif local time type
// records store them, not in the inverted form used by the TZ string.
package posixtz

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrEmpty is reported for an empty rule string.
	ErrEmpty = errors.New("empty rule")
	// ErrMalformed is reported for a rule string that does not follow the
	// TZ grammar.
	ErrMalformed = errors.New("malformed rule")
)

// RuleError describes a failure to decode a TZ rule string.
type RuleError struct {
	Rule string // the rule string
	Pos  int    // byte offset of the problem in Rule
	Err  error
}

func (e *RuleError) Error() string {
	if errors.Is(e.Err, ErrEmpty) {
		return "posixtz: " + e.Err.Error()
	}
	return fmt.Sprintf("posixtz: %v at offset %d in %q", e.Err, e.Pos, e.Rule)
}

func (e *RuleError) Unwrap() error { return e.Err }

// Kind selects the syntax of a DateRule.
type Kind uint8

const (
	// Unset marks a missing date rule.
	Unset Kind = iota
	// Julian is the Jn form: day 1..365, February 29 is never counted.
	Julian
	// ZeroBasedDay is the n form: day 0..365, February 29 is counted in
	// leap years.
	ZeroBasedDay
	// MonthWeekDay is the Mm.w.d form: weekday d (0 is Sunday) of week w
	// (1..5, 5 is the last) of month m.
	MonthWeekDay
)

// DefaultTime is the local time of day of a transition without an
// explicit /time.
const DefaultTime = 2 * 60 * 60

// DateRule is the day and local time of day at which a period begins.
type DateRule struct {
	Kind Kind
	// Day is the day of the year for Julian and ZeroBasedDay rules and the
	// weekday for MonthWeekDay rules.
	Day   int
	Week  int
	Month int
	// Time is the local time of day in seconds. It may be negative or
	// exceed one day.
	Time int
}

// Period is one half of a Rule.
type Period struct {
	Abbr string
	// Offset is the UTC offset in seconds east of Greenwich.
	Offset int
	// Save is the daylight saving delta in seconds. It is zero for
	// standard time.
	Save int
	// Begins tells when the period starts each year. It is Unset for
	// rules without daylight saving time.
	Begins DateRule
}

// Rule is a decoded TZ rule string.
type Rule struct {
	Std Period
	DST Period
	// HasDST reports whether the rule names a daylight saving period.
	HasDST bool
}

// Recurs reports whether r switches between standard and daylight saving
// time every year. A rule lacking a start or end date never does.
func (r Rule) Recurs() bool {
	return r.HasDST && r.DST.Begins.Kind != Unset && r.Std.Begins.Kind != Unset
}

// Other returns the period that precedes p.
func (r Rule) Other(p Period) Period {
	if p == r.DST {
		return r.Std
	}
	return r.DST
}

// Onset returns the instant at which p begins in year. Rule times are
// local times of the period being left.
func (r Rule) Onset(p Period, year int) int64 {
	return p.Begins.At(year, r.Other(p).Offset)
}

// Next returns the first instant strictly after t at which p begins.
// It returns t if r does not recur.
func (r Rule) Next(p Period, t int64) int64 {
	if !r.Recurs() {
		return t
	}
	y := yearOf(t)
	for year := y - 1; year <= y+2; year++ {
		if at := r.Onset(p, year); at > t {
			return at
		}
	}
	// Unreachable for rule times within the accepted range.
	return r.Onset(p, y+3)
}

// PeriodAt returns the period in effect at t.
func (r Rule) PeriodAt(t int64) Period {
	if !r.Recurs() {
		return r.Std
	}
	p, _ := r.Last(t)
	return p
}

// Last returns the period in effect at t and the instant it began. For a
// rule that does not recur it returns the standard period and
// math.MinInt64.
func (r Rule) Last(t int64) (Period, int64) {
	if !r.Recurs() {
		return r.Std, math.MinInt64
	}
	y := yearOf(t)
	best, at := r.Std, int64(0)
	found := false
	for year := y - 2; year <= y+1; year++ {
		for _, p := range [...]Period{r.DST, r.Std} {
			on := r.Onset(p, year)
			if on > t {
				continue
			}
			// Daylight time wins a tie, so a zone whose standard time
			// has zero length stays in daylight time.
			if !found || on > at || (on == at && p == r.DST) {
				best, at, found = p, on, true
			}
		}
	}
	return best, at
}
