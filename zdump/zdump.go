// Package zdump lists the civil time changes of a zone within an interval.
//
// Changes recorded in a TZif file are reported as they are. Beyond the
// last recorded transition, changes are derived from the TZ rule string in
// the file footer.
package zdump

import (
	"sort"

	"github.com/ngrash/go-zdump/posixtz"
	"github.com/ngrash/go-zdump/tzif"
)

// Entry is a civil time change.
type Entry struct {
	// At is the instant of the change in seconds since the epoch.
	At int64 `json:"at"`
	// Offset is the UTC offset in seconds east of Greenwich from At on.
	Offset int `json:"utc_offset"`
	// Save is the daylight saving delta in seconds, 0 if not in effect.
	Save int `json:"save"`
	// Abbr is the time zone abbreviation, at most posixtz.MaxAbbrLen bytes.
	Abbr string `json:"abbr"`
}

// IsDST reports whether daylight saving time is in effect.
func (e Entry) IsDST() bool { return e.Save != 0 }

type options struct {
	batch int
	limit int
}

// Option configures a query.
type Option func(*options)

// WithBatchSize sets the number of entries the result buffer grows by.
func WithBatchSize(n int) Option {
	return func(o *options) { o.batch = n }
}

// WithMaxEntries limits the number of entries a query may return. Queries
// exceeding it fail with ErrBufferLimit.
func WithMaxEntries(n int) Option {
	return func(o *options) { o.limit = n }
}

// Query decodes the TZif file image file and lists the civil time changes
// in [start, end].
//
// The first entry describes the local time in effect at start and carries
// start as its instant. The remaining entries are the changes in
// (start, end] in ascending order.
//
// If changes past the last recorded transition are needed but the footer
// rule is missing or malformed, Query returns the entries derived from
// the recorded transitions together with a *posixtz.RuleError. Any other
// error yields no entries.
func Query(file []byte, start, end int64, opts ...Option) ([]Entry, error) {
	if end < start {
		return nil, ErrInvalidInterval
	}
	d, err := tzif.Decode(file)
	if err != nil {
		return nil, err
	}
	return QueryData(d, start, end, opts...)
}

// QueryData is like Query but operates on a decoded file.
func QueryData(d tzif.Data, start, end int64, opts ...Option) ([]Entry, error) {
	if end < start {
		return nil, ErrInvalidInterval
	}
	blk := d.Block()
	if len(blk.TransitionTimes) == 0 {
		return nil, &tzif.FormatError{Section: "data", Err: tzif.ErrZeroTransitionCount}
	}
	p := newProjector(blk, start, end, opts)

	// The rule is only consulted when the interval reaches past the last
	// recorded transition.
	var ruleErr error
	if end > p.lastTransition() {
		p.rule, ruleErr = posixtz.Parse(d.TZString())
		p.hasRule = ruleErr == nil
	}

	if err := p.recorded(); err != nil {
		return nil, err
	}
	if ruleErr != nil {
		return p.buf.entries, ruleErr
	}
	if p.hasRule {
		if err := p.projected(); err != nil {
			return nil, err
		}
	}
	return p.buf.entries, nil
}

// QueryRule lists the civil time changes in [start, end] of a zone
// described by a TZ rule alone.
func QueryRule(rule posixtz.Rule, start, end int64, opts ...Option) ([]Entry, error) {
	if end < start {
		return nil, ErrInvalidInterval
	}
	p := newProjector(tzif.DataBlock{}, start, end, opts)
	p.rule, p.hasRule = rule, true
	per := rule.PeriodAt(start)
	if err := p.buf.add(periodEntry(start, per)); err != nil {
		return nil, err
	}
	p.dst = per == rule.DST && rule.HasDST
	if err := p.projected(); err != nil {
		return nil, err
	}
	return p.buf.entries, nil
}

// projector holds the state of a single query.
type projector struct {
	blk        tzif.DataBlock
	start, end int64
	buf        *buffer

	rule    posixtz.Rule
	hasRule bool

	// dst tells whether daylight saving time is in effect after the last
	// emitted entry.
	dst bool
}

func newProjector(blk tzif.DataBlock, start, end int64, opts []Option) *projector {
	o := options{batch: DefaultBatchSize}
	for _, opt := range opts {
		opt(&o)
	}
	return &projector{
		blk:   blk,
		start: start,
		end:   end,
		buf:   newBuffer(o.batch, o.limit),
	}
}

func (p *projector) lastTransition() int64 {
	return p.blk.TransitionTimes[len(p.blk.TransitionTimes)-1]
}

// recorded emits the local time in effect at start followed by the
// recorded transitions in (start, end].
func (p *projector) recorded() error {
	times := p.blk.TransitionTimes
	// k is the number of transitions at or before start.
	k := sort.Search(len(times), func(i int) bool { return times[i] > p.start })

	var (
		first Entry
		err   error
	)
	switch {
	case k == 0:
		first, err = p.typeEntry(p.start, 0)
	case k == len(times) && p.hasRule && p.rule.Recurs():
		// Past the recorded data the rule decides, unless its latest
		// change predates the last recorded transition.
		if per, on := p.rule.Last(p.start); on >= times[k-1] {
			first = periodEntry(p.start, per)
			p.dst = per == p.rule.DST
			return p.buf.add(first)
		}
		first, err = p.transitionEntry(p.start, k-1)
	default:
		first, err = p.transitionEntry(p.start, k-1)
	}
	if err != nil {
		return err
	}
	if err := p.buf.add(first); err != nil {
		return err
	}
	if err := p.setDST(k - 1); err != nil {
		return err
	}

	for i := k; i < len(times) && times[i] <= p.end; i++ {
		e, err := p.transitionEntry(times[i], i)
		if err != nil {
			return err
		}
		if err := p.buf.add(e); err != nil {
			return err
		}
		if err := p.setDST(i); err != nil {
			return err
		}
	}
	return nil
}

// projected emits the changes derived from the rule after the last
// recorded transition, alternating between standard and daylight saving
// time, until they pass end.
func (p *projector) projected() error {
	if !p.rule.Recurs() {
		return nil
	}
	prior := p.buf.last().At
	if len(p.blk.TransitionTimes) > 0 {
		prior = max(prior, p.lastTransition())
	}

	cur, next := p.rule.Std, p.rule.DST
	if p.dst {
		cur, next = next, cur
	}
	for {
		at := p.rule.Next(next, prior)
		if at > p.end {
			return nil
		}
		// A period of zero length: the zone switches back at the same
		// instant and nothing changes.
		if p.rule.Next(cur, prior) == at {
			prior = at
			continue
		}
		if err := p.buf.add(periodEntry(at, next)); err != nil {
			return err
		}
		prior = at
		cur, next = next, cur
	}
}

// transitionEntry returns the entry for transition i taking effect at at.
func (p *projector) transitionEntry(at int64, i int) (Entry, error) {
	typ, err := p.blk.TransitionType(i)
	if err != nil {
		return Entry{}, &tzif.FormatError{Section: "transition types", Err: err}
	}
	save := 0
	if typ.Dst {
		// Local time type 0 is in effect before the first transition.
		prev, err := p.blk.LocalTimeType(0)
		if i > 0 {
			prev, err = p.blk.TransitionType(i - 1)
		}
		if err != nil {
			return Entry{}, &tzif.FormatError{Section: "transition types", Err: err}
		}
		save = abs(int(typ.Utoff) - int(prev.Utoff))
	}
	return p.recordEntry(at, typ, save)
}

// typeEntry returns the entry for local time type idx taking effect at at.
// No preceding type is known, so daylight saving time has no delta.
func (p *projector) typeEntry(at int64, idx int) (Entry, error) {
	typ, err := p.blk.LocalTimeType(idx)
	if err != nil {
		return Entry{}, &tzif.FormatError{Section: "local time type records", Err: err}
	}
	return p.recordEntry(at, typ, 0)
}

func (p *projector) recordEntry(at int64, typ tzif.LocalTimeTypeRecord, save int) (Entry, error) {
	abbr, err := p.blk.Designation(typ.Idx)
	if err != nil {
		return Entry{}, &tzif.FormatError{Section: "time zone designations", Err: err}
	}
	return Entry{At: at, Offset: int(typ.Utoff), Save: save, Abbr: truncate(abbr)}, nil
}

// setDST records the daylight saving flag of transition i, or of the
// first local time type if i is negative.
func (p *projector) setDST(i int) error {
	var (
		typ tzif.LocalTimeTypeRecord
		err error
	)
	if i < 0 {
		typ, err = p.blk.LocalTimeType(0)
	} else {
		typ, err = p.blk.TransitionType(i)
	}
	if err != nil {
		return &tzif.FormatError{Section: "transition types", Err: err}
	}
	p.dst = typ.Dst
	return nil
}

func periodEntry(at int64, per posixtz.Period) Entry {
	return Entry{At: at, Offset: per.Offset, Save: per.Save, Abbr: truncate(per.Abbr)}
}

func truncate(abbr string) string {
	if len(abbr) > posixtz.MaxAbbrLen {
		return abbr[:posixtz.MaxAbbrLen]
	}
	return abbr
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
