package posixtz

import (
	"strings"
)

// MaxAbbrLen is the longest abbreviation kept. Longer ones are truncated.
const MaxAbbrLen = 9

// maxHours bounds the hour field of offsets and rule times. RFC 8536
// section 3.3.1 extends the POSIX range of 0..24 to -167..167 for times.
const maxHours = 167

// Parse decodes a TZ rule string of the form
//
//	std offset [dst [offset] [,start[/time],end[/time]]]
//
// A rule naming a daylight saving period without dates yields a Rule that
// does not recur. The daylight offset defaults to one hour ahead of
// standard time.
func Parse(s string) (Rule, error) {
	var r Rule
	if s == "" {
		return r, &RuleError{Rule: s, Err: ErrEmpty}
	}
	p := &parser{s: s}

	var err error
	if r.Std.Abbr, err = p.name(); err != nil {
		return Rule{}, err
	}
	off, err := p.offset()
	if err != nil {
		return Rule{}, err
	}
	r.Std.Offset = -off
	if p.done() {
		return r, nil
	}

	r.HasDST = true
	if r.DST.Abbr, err = p.name(); err != nil {
		return Rule{}, err
	}
	r.DST.Offset = r.Std.Offset + 60*60
	if !p.done() && p.peek() != ',' {
		if off, err = p.offset(); err != nil {
			return Rule{}, err
		}
		r.DST.Offset = -off
	}
	r.DST.Save = abs(r.DST.Offset - r.Std.Offset)
	if p.done() {
		return r, nil
	}

	if err := p.expect(','); err != nil {
		return Rule{}, err
	}
	if r.DST.Begins, err = p.date(); err != nil {
		return Rule{}, err
	}
	if p.done() {
		return r, nil
	}
	if err := p.expect(','); err != nil {
		return Rule{}, err
	}
	if r.Std.Begins, err = p.date(); err != nil {
		return Rule{}, err
	}
	if !p.done() {
		return Rule{}, p.errorf()
	}
	return r, nil
}

// MustParse is like Parse but panics on error.
func MustParse(s string) Rule {
	r, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return r
}

type parser struct {
	s   string
	pos int
}

func (p *parser) done() bool { return p.pos >= len(p.s) }

func (p *parser) peek() byte {
	if p.done() {
		return 0
	}
	return p.s[p.pos]
}

func (p *parser) errorf() error {
	return &RuleError{Rule: p.s, Pos: p.pos, Err: ErrMalformed}
}

func (p *parser) expect(c byte) error {
	if p.peek() != c {
		return p.errorf()
	}
	p.pos++
	return nil
}

// name reads an abbreviation: either a run of at least three letters or
// any text between '<' and '>'.
func (p *parser) name() (string, error) {
	start := p.pos
	if p.peek() == '<' {
		end := strings.IndexByte(p.s[p.pos:], '>')
		if end < 2 {
			return "", p.errorf()
		}
		name := p.s[p.pos+1 : p.pos+end]
		p.pos += end + 1
		return truncate(name), nil
	}
	for !p.done() && isLetter(p.peek()) {
		p.pos++
	}
	if p.pos-start < 3 {
		p.pos = start
		return "", p.errorf()
	}
	return truncate(p.s[start:p.pos]), nil
}

// offset reads [+-]hh[:mm[:ss]] and returns it in seconds. The sign
// applies to the whole value.
func (p *parser) offset() (int, error) {
	neg := false
	switch p.peek() {
	case '-':
		neg = true
		p.pos++
	case '+':
		p.pos++
	}
	hours, err := p.num(0, maxHours)
	if err != nil {
		return 0, err
	}
	secs := hours * 60 * 60
	for _, scale := range [...]int{60, 1} {
		if p.peek() != ':' {
			break
		}
		p.pos++
		n, err := p.num(0, 59)
		if err != nil {
			return 0, err
		}
		secs += n * scale
	}
	if neg {
		secs = -secs
	}
	return secs, nil
}

// date reads Jn, n or Mm.w.d with an optional /time.
func (p *parser) date() (DateRule, error) {
	var (
		r   DateRule
		err error
	)
	switch p.peek() {
	case 'J':
		p.pos++
		r.Kind = Julian
		if r.Day, err = p.num(1, 365); err != nil {
			return r, err
		}
	case 'M':
		p.pos++
		r.Kind = MonthWeekDay
		if r.Month, err = p.num(1, 12); err != nil {
			return r, err
		}
		if err = p.expect('.'); err != nil {
			return r, err
		}
		if r.Week, err = p.num(1, 5); err != nil {
			return r, err
		}
		if err = p.expect('.'); err != nil {
			return r, err
		}
		if r.Day, err = p.num(0, 6); err != nil {
			return r, err
		}
	default:
		r.Kind = ZeroBasedDay
		if r.Day, err = p.num(0, 365); err != nil {
			return r, err
		}
	}

	r.Time = DefaultTime
	if p.peek() == '/' {
		p.pos++
		if r.Time, err = p.offset(); err != nil {
			return r, err
		}
	}
	return r, nil
}

// num reads a decimal number in [lo, hi].
func (p *parser) num(lo, hi int) (int, error) {
	start := p.pos
	n := 0
	for !p.done() && p.peek() >= '0' && p.peek() <= '9' {
		n = n*10 + int(p.peek()-'0')
		if n > hi {
			p.pos = start
			return 0, p.errorf()
		}
		p.pos++
	}
	if p.pos == start || n < lo {
		p.pos = start
		return 0, p.errorf()
	}
	return n, nil
}

func isLetter(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}

func truncate(abbr string) string {
	if len(abbr) > MaxAbbrLen {
		return abbr[:MaxAbbrLen]
	}
	return abbr
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
