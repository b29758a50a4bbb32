// Package tziftest builds TZif file images for tests.
package tziftest

import (
	"bytes"
	"encoding/binary"
	"math"
	"strings"
)

var order = binary.BigEndian

// Type is a local time type.
type Type struct {
	Utoff int32
	Dst   bool
	Abbr  string
}

// Transition switches to Types[Type] at At.
type Transition struct {
	At   int64
	Type uint8
}

// Leap is a leap second record.
type Leap struct {
	Occur int64
	Corr  int32
}

// Zone describes the content of a TZif file.
type Zone struct {
	// Version is the version octet: 0 for version 1, '2', '3' or '4'.
	Version     byte
	Types       []Type
	Transitions []Transition
	Leaps       []Leap
	// Indicators adds standard/wall and UT/local indicators (all zero)
	// for every type.
	Indicators bool
	// Slim writes an empty version 1 data block in version 2+ files, the
	// way zic -b slim does.
	Slim bool
	// Footer is the TZ string of version 2+ files.
	Footer string
	// NoFooter omits the footer of version 2+ files.
	NoFooter bool
}

// Counts mirrors the six counts of a TZif header.
type Counts struct {
	Isutcnt, Isstdcnt, Leapcnt, Timecnt, Typecnt, Charcnt uint32
}

// Bytes encodes z.
func (z Zone) Bytes() []byte {
	var buf bytes.Buffer
	abbrev, idx := z.designations()

	v1 := z
	if z.Version != 0 && z.Slim {
		v1 = Zone{Version: z.Version, Types: z.Types[:1]}
	}
	v1.writeBlock(&buf, 4, abbrev, idx)

	if z.Version != 0 {
		z.writeBlock(&buf, 8, abbrev, idx)
		if !z.NoFooter {
			buf.WriteByte('\n')
			buf.WriteString(z.Footer)
			buf.WriteByte('\n')
		}
	}
	return buf.Bytes()
}

func (z Zone) writeBlock(buf *bytes.Buffer, timeSize int, abbrev []byte, idx map[string]int) {
	c := Counts{
		Leapcnt: uint32(len(z.Leaps)),
		Timecnt: uint32(len(z.Transitions)),
		Typecnt: uint32(len(z.Types)),
		Charcnt: uint32(len(abbrev)),
	}
	if z.Indicators {
		c.Isutcnt = c.Typecnt
		c.Isstdcnt = c.Typecnt
	}
	WriteHeader(buf, z.Version, c)

	for _, t := range z.Transitions {
		writeTime(buf, t.At, timeSize)
	}
	for _, t := range z.Transitions {
		buf.WriteByte(t.Type)
	}
	for _, t := range z.Types {
		binary.Write(buf, order, t.Utoff)
		binary.Write(buf, order, t.Dst)
		buf.WriteByte(uint8(idx[t.Abbr]))
	}
	buf.Write(abbrev)
	for _, l := range z.Leaps {
		writeTime(buf, l.Occur, timeSize)
		binary.Write(buf, order, l.Corr)
	}
	if z.Indicators {
		buf.Write(make([]byte, 2*len(z.Types)))
	}
}

// WriteHeader writes a 44-octet header with the given version and counts.
func WriteHeader(buf *bytes.Buffer, version byte, c Counts) {
	buf.WriteString("TZif")
	buf.WriteByte(version)
	buf.Write(make([]byte, 15))
	binary.Write(buf, order, c)
}

// writeTime writes t in size octets. Four-octet values are clamped to the
// int32 range the way zic does for version 1 data.
func writeTime(buf *bytes.Buffer, t int64, size int) {
	if size == 4 {
		binary.Write(buf, order, int32(max(min(t, math.MaxInt32), math.MinInt32)))
		return
	}
	binary.Write(buf, order, t)
}

// designations returns the designation pool of z and the index of
// every abbreviation in it.
func (z Zone) designations() ([]byte, map[string]int) {
	var pool strings.Builder
	idx := make(map[string]int)
	for _, t := range z.Types {
		if _, ok := idx[t.Abbr]; ok {
			continue
		}
		idx[t.Abbr] = pool.Len()
		pool.WriteString(t.Abbr)
		pool.WriteByte(0)
	}
	return []byte(pool.String()), idx
}

// NewYork returns a version 2 zone resembling America/New_York: local mean
// time until 1883, then the daylight saving transitions of 2020 to 2022
// and the POSIX footer.
func NewYork() Zone {
	return Zone{
		Version: '2',
		Types: []Type{
			{Utoff: -17762, Abbr: "LMT"},
			{Utoff: -14400, Dst: true, Abbr: "EDT"},
			{Utoff: -18000, Abbr: "EST"},
		},
		Transitions: []Transition{
			{At: -2717650800, Type: 2}, // 1883-11-18 17:00 UTC
			{At: 1583650800, Type: 1},  // 2020-03-08 07:00 UTC
			{At: 1604210400, Type: 2},  // 2020-11-01 06:00 UTC
			{At: 1615705200, Type: 1},  // 2021-03-14 07:00 UTC
			{At: 1636264800, Type: 2},  // 2021-11-07 06:00 UTC
			{At: 1647154800, Type: 1},  // 2022-03-13 07:00 UTC
			{At: 1667714400, Type: 2},  // 2022-11-06 06:00 UTC
		},
		Indicators: true,
		Footer:     "EST5EDT,M3.2.0,M11.1.0",
	}
}
