package zdump

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ngrash/go-zdump/internal/tziftest"
	"github.com/ngrash/go-zdump/posixtz"
	"github.com/ngrash/go-zdump/tzif"
)

var (
	lmt = Entry{Offset: -17762, Abbr: "LMT"}
	est = Entry{Offset: -18000, Abbr: "EST"}
	edt = Entry{Offset: -14400, Save: 3600, Abbr: "EDT"}
)

func at(e Entry, t int64) Entry {
	e.At = t
	return e
}

// dublin returns a zone whose daylight saving time is the winter period.
func dublin() tziftest.Zone {
	return tziftest.Zone{
		Version: '2',
		Types: []tziftest.Type{
			{Utoff: 3600, Abbr: "IST"},
			{Utoff: 0, Dst: true, Abbr: "GMT"},
		},
		Transitions: []tziftest.Transition{
			{At: 1667091600, Type: 1}, // 2022-10-30 01:00 UTC
			{At: 1679792400, Type: 0}, // 2023-03-26 01:00 UTC
			{At: 1698541200, Type: 1}, // 2023-10-29 01:00 UTC
		},
		Footer: "IST-1GMT0,M10.5.0,M3.5.0/1",
	}
}

// dstFirst returns a zone whose local time type 0 is daylight saving
// time. Its save is unknown before the first transition.
func dstFirst() tziftest.Zone {
	return tziftest.Zone{
		Version: '2',
		Types: []tziftest.Type{
			{Utoff: 3600, Dst: true, Abbr: "BST"},
			{Utoff: 0, Abbr: "GMT"},
		},
		Transitions: []tziftest.Transition{
			{At: 1000000000, Type: 1},
		},
		Footer: "GMT0",
	}
}

func TestQuery(t *testing.T) {
	ny := tziftest.NewYork().Bytes()

	cases := []struct {
		name       string
		file       []byte
		start, end int64
		want       []Entry
	}{
		{
			name:  "recorded transitions only",
			file:  ny,
			start: 1590000000, // 2020-05-20
			end:   1640000000, // 2021-12-20
			want: []Entry{
				at(edt, 1590000000),
				at(est, 1604210400),
				at(edt, 1615705200),
				at(est, 1636264800),
			},
		},
		{
			name:  "recorded and projected transitions",
			file:  ny,
			start: 1660000000, // 2022-08-08
			end:   1735689600, // 2025-01-01
			want: []Entry{
				at(edt, 1660000000),
				at(est, 1667714400),
				at(edt, 1678604400),
				at(est, 1699164000),
				at(edt, 1710054000),
				at(est, 1730613600),
			},
		},
		{
			name:  "start after last transition",
			file:  ny,
			start: 1690000000, // 2023-07-22
			end:   1700000000, // 2023-11-14
			want: []Entry{
				at(edt, 1690000000),
				at(est, 1699164000),
			},
		},
		{
			name:  "interval before first transition",
			file:  ny,
			start: -3000000000,
			end:   -2800000000,
			want:  []Entry{at(lmt, -3000000000)},
		},
		{
			name:  "start on a transition",
			file:  ny,
			start: 1604210400,
			end:   1615705200,
			want: []Entry{
				at(est, 1604210400),
				at(edt, 1615705200),
			},
		},
		{
			name:  "empty interval",
			file:  ny,
			start: 1700000000,
			end:   1700000000,
			want:  []Entry{at(est, 1700000000)},
		},
		{
			name:  "negative daylight saving time",
			file:  dublin().Bytes(),
			start: 1690000000, // 2023-07-22
			end:   1735689600, // 2025-01-01
			want: []Entry{
				{At: 1690000000, Offset: 3600, Abbr: "IST"},
				{At: 1698541200, Offset: 0, Save: 3600, Abbr: "GMT"},
				{At: 1711846800, Offset: 3600, Abbr: "IST"},
				{At: 1729990800, Offset: 0, Save: 3600, Abbr: "GMT"},
			},
		},
		{
			name:  "start in negative daylight saving time",
			file:  dublin().Bytes(),
			start: 1670000000, // 2022-12-02
			end:   1670000001,
			want: []Entry{
				{At: 1670000000, Offset: 0, Save: 3600, Abbr: "GMT"},
			},
		},
		{
			name:  "daylight saving time before first transition",
			file:  dstFirst().Bytes(),
			start: 0,
			end:   100,
			want: []Entry{
				{At: 0, Offset: 3600, Abbr: "BST"},
			},
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := Query(c.file, c.start, c.end)
			if err != nil {
				t.Fatalf("Query() failed: %v", err)
			}
			if diff := cmp.Diff(c.want, got); diff != "" {
				t.Errorf("Query() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestQuery_RuleWithoutDST(t *testing.T) {
	z := tziftest.Zone{
		Version: '2',
		Types: []tziftest.Type{
			{Utoff: -37886, Abbr: "LMT"},
			{Utoff: -36000, Abbr: "HST"},
		},
		Transitions: []tziftest.Transition{{At: -712150200, Type: 1}},
		Footer:      "HST10",
	}
	got, err := Query(z.Bytes(), -3000000000, 2000000000)
	if err != nil {
		t.Fatalf("Query() failed: %v", err)
	}
	want := []Entry{
		{At: -3000000000, Offset: -37886, Abbr: "LMT"},
		{At: -712150200, Offset: -36000, Abbr: "HST"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Query() mismatch (-want +got):\n%s", diff)
	}
}

func TestQuery_PartialResult(t *testing.T) {
	cases := []struct {
		name   string
		footer string
		noFoot bool
		want   error
	}{
		{"missing footer", "", true, posixtz.ErrEmpty},
		{"empty footer", "", false, posixtz.ErrEmpty},
		{"malformed footer", "EST5EDT,M3.2.0,M13.1.0", false, posixtz.ErrMalformed},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			z := tziftest.NewYork()
			z.Footer, z.NoFooter = c.footer, c.noFoot
			b := z.Bytes()

			got, err := Query(b, 1660000000, 1735689600)
			var re *posixtz.RuleError
			if !errors.As(err, &re) || !errors.Is(err, c.want) {
				t.Fatalf("Query() error = %v, want RuleError %v", err, c.want)
			}
			want := []Entry{at(edt, 1660000000), at(est, 1667714400)}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("Query() partial result mismatch (-want +got):\n%s", diff)
			}

			// The rule is not needed within the recorded data.
			if _, err := Query(b, 1590000000, 1640000000); err != nil {
				t.Errorf("Query() within recorded data failed: %v", err)
			}
		})
	}
}

func TestQuery_V1(t *testing.T) {
	z := tziftest.NewYork()
	z.Version = 0
	// Version 1 files have no footer, so nothing can be projected.
	got, err := Query(z.Bytes(), 1660000000, 1735689600)
	if !errors.Is(err, posixtz.ErrEmpty) {
		t.Errorf("Query() error = %v, want %v", err, posixtz.ErrEmpty)
	}
	if len(got) != 2 {
		t.Errorf("Query() returned %d entries, want 2", len(got))
	}
}

func TestQuery_Errors(t *testing.T) {
	ny := tziftest.NewYork().Bytes()

	got, err := Query(ny, 10, 5)
	if !errors.Is(err, ErrInvalidInterval) || got != nil {
		t.Errorf("Query(end < start) = %v, %v, want nil, %v", got, err, ErrInvalidInterval)
	}

	got, err = Query(ny[:100], 0, 10)
	var fe *tzif.FormatError
	if !errors.As(err, &fe) || got != nil {
		t.Errorf("Query(truncated) = %v, %v, want nil, *tzif.FormatError", got, err)
	}

	got, err = Query(ny, 1590000000, 1735689600, WithMaxEntries(3))
	if !errors.Is(err, ErrBufferLimit) || got != nil {
		t.Errorf("Query(WithMaxEntries) = %v, %v, want nil, %v", got, err, ErrBufferLimit)
	}
}

func TestQuery_Properties(t *testing.T) {
	files := map[string][]byte{
		"new york": tziftest.NewYork().Bytes(),
		"dublin":   dublin().Bytes(),
	}
	intervals := [][2]int64{
		{-3000000000, -3000000000},
		{-3000000000, 0},
		{0, 1600000000},
		{1583650800, 1583650800},
		{1583650799, 1583650801},
		{1600000000, 1700000000},
		{1667714400, 1900000000},
		{1700000000, 2500000000},
		{-3000000000, 4102444800},
	}
	for name, file := range files {
		for _, iv := range intervals {
			start, end := iv[0], iv[1]
			t.Run(fmt.Sprintf("%s/%d-%d", name, start, end), func(t *testing.T) {
				got, err := Query(file, start, end)
				if err != nil {
					t.Fatalf("Query() failed: %v", err)
				}
				if len(got) == 0 {
					t.Fatalf("Query() returned no entries")
				}
				if got[0].At != start {
					t.Errorf("first entry at %d, want %d", got[0].At, start)
				}
				for i, e := range got {
					if i > 0 && e.At <= got[i-1].At {
						t.Errorf("entry %d at %d not after entry %d at %d", i, e.At, i-1, got[i-1].At)
					}
					if e.At > end {
						t.Errorf("entry %d at %d after end %d", i, e.At, end)
					}
				}

				again, err := Query(file, start, end)
				if err != nil {
					t.Fatalf("second Query() failed: %v", err)
				}
				if diff := cmp.Diff(got, again); diff != "" {
					t.Errorf("Query() not idempotent (-first +second):\n%s", diff)
				}
			})
		}
	}
}

func TestQuery_BatchSize(t *testing.T) {
	ny := tziftest.NewYork().Bytes()
	want, err := Query(ny, -3000000000, 4102444800)
	if err != nil {
		t.Fatalf("Query() failed: %v", err)
	}
	for _, n := range []int{-1, 1, 2, 64} {
		got, err := Query(ny, -3000000000, 4102444800, WithBatchSize(n))
		if err != nil {
			t.Fatalf("Query(WithBatchSize(%d)) failed: %v", n, err)
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("Query(WithBatchSize(%d)) mismatch (-want +got):\n%s", n, diff)
		}
	}
}

func TestQueryRule(t *testing.T) {
	cases := []struct {
		name       string
		rule       string
		start, end int64
		want       []Entry
	}{
		{
			name:  "new york 2023",
			rule:  "EST5EDT,M3.2.0,M11.1.0",
			start: 1672531200,
			end:   1704067199,
			want: []Entry{
				at(est, 1672531200),
				at(edt, 1678604400),
				at(est, 1699164000),
			},
		},
		{
			name:  "fixed offset",
			rule:  "HST10",
			start: 1672531200,
			end:   1704067199,
			want:  []Entry{{At: 1672531200, Offset: -36000, Abbr: "HST"}},
		},
		{
			name:  "permanent daylight saving time",
			rule:  "EST5EDT,0/0,J365/25",
			start: 1672531200,
			end:   1800000000,
			want:  []Entry{at(edt, 1672531200)},
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := QueryRule(posixtz.MustParse(c.rule), c.start, c.end)
			if err != nil {
				t.Fatalf("QueryRule() failed: %v", err)
			}
			if diff := cmp.Diff(c.want, got); diff != "" {
				t.Errorf("QueryRule() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCode(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{nil, CodeSuccess},
		{ErrInvalidInterval, CodeBadValues},
		{fmt.Errorf("open: %w", ErrDirPath), CodeDirPath},
		{fmt.Errorf("open: %w", ErrOpen), CodeOpen},
		{fmt.Errorf("read: %w", ErrRead), CodeRead},
		{ErrBufferLimit, CodeAlloc},
		{&tzif.FormatError{Section: "header", Err: tzif.ErrBadMagic}, CodeHeader},
		{&tzif.BoundsError{Size: 4}, CodeHeader},
		{&posixtz.RuleError{Err: posixtz.ErrMalformed}, CodeRule},
		{errors.New("unexpected"), CodeFailure},
	}
	for _, c := range cases {
		if got := Code(c.err); got != c.want {
			t.Errorf("Code(%v) = %d, want %d", c.err, got, c.want)
		}
	}
}

func TestBuffer(t *testing.T) {
	b := newBuffer(2, 0)
	for i := range 5 {
		if err := b.add(Entry{At: int64(i)}); err != nil {
			t.Fatalf("add() failed: %v", err)
		}
	}
	if got, want := cap(b.entries), 6; got != want {
		t.Errorf("cap = %d, want %d", got, want)
	}
	if got := b.last().At; got != 4 {
		t.Errorf("last().At = %d, want 4", got)
	}

	b = newBuffer(0, 1)
	if err := b.add(Entry{}); err != nil {
		t.Fatalf("add() failed: %v", err)
	}
	if err := b.add(Entry{}); !errors.Is(err, ErrBufferLimit) {
		t.Errorf("add() over limit error = %v, want %v", err, ErrBufferLimit)
	}
}
