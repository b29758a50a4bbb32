// Package tzif decodes the TZif file format according to RFC8536.
// https://datatracker.ietf.org/doc/html/rfc8536
package tzif

import (
	"bytes"
	"fmt"
)

// Version represents the version of a TZif file.
// In V1, time values are 32bit (four-octets) and in V2 upwards time values are 64bit (eight-octets).
type Version byte

func (v Version) String() string {
	switch v {
	case V1:
		return "V1 (0x00)"
	case v1Space:
		return "V1 (0x20)"
	case V2:
		return "V2 (0x32)"
	case V3:
		return "V3 (0x33)"
	case V4:
		return "V4 (0x34)"
	default:
		return fmt.Sprintf("<undefined version (%d)>", v)
	}
}

// Wide reports whether files of this version carry a second header and a
// data block with eight-octet time values.
func (v Version) Wide() bool { return v >= V2 }

func (v Version) valid() bool {
	switch v {
	case V1, v1Space, V2, V3, V4:
		return true
	}
	return false
}

const (
	// V1 represents a version 1 TZif file. It contains only the version 1
	// header and data block.
	V1 Version = 0x00
	// Some old writers pad the version octet with a space.
	v1Space Version = 0x20
	// V2 represents a version 2 TZif file. It repeats the header and data
	// block with 64bit time values and ends with a footer.
	V2 Version = 0x32
	// V3 represents a version 3 TZif file. The footer may use the TZ
	// string extensions of RFC8536 section 3.3.1.
	V3 Version = 0x33 // '3'
	// V4 represents a version 4 TZif file (tzfile(5)). It differs from V3
	// only in the leap second table.
	V4 Version = 0x34 // '4'
)

// Magic is the four-octet ASCII sequence "TZif" (0x54 0x5A 0x69 0x66),
// which identifies the file as utilizing the Time Zone Information Format.
var Magic = [4]byte{'T', 'Z', 'i', 'f'}

// HeaderLen is the length of a TZif header in octets.
const HeaderLen = 44

// Header is the header of a TZif file.
//
// A TZif header is structured as follows (the lengths of multi-octet
// fields are shown in parentheses):
//
//	+---------------+---+
//	|  magic    (4) |ver|
//	+---------------+---+---------------------------------------+
//	|           [unused - reserved for future use] (15)         |
//	+---------------+---------------+---------------+-----------+
//	|  isutcnt  (4) |  isstdcnt (4) |  leapcnt  (4) |
//	+---------------+---------------+---------------+
//	|  timecnt  (4) |  typecnt  (4) |  charcnt  (4) |
//	+---------------+---------------+---------------+
type Header struct {
	// Version is an octet identifying the version of the file's format.
	Version Version
	// Reserved for future use.
	Reserved [15]byte

	// Isutcnt is the number of UT/local indicators in the data block.
	// It is either zero or equal to Typecnt.
	Isutcnt uint32

	// Isstdcnt is the number of standard/wall indicators in the data
	// block. It is either zero or equal to Typecnt.
	Isstdcnt uint32

	// Leapcnt is the number of leap-second records in the data block.
	Leapcnt uint32

	// Timecnt is the number of transition times in the data block.
	Timecnt uint32

	// Typecnt is the number of local time type records in the data block.
	Typecnt uint32

	// Charcnt is the number of octets of time zone designations,
	// including the trailing NUL of the last designation.
	Charcnt uint32
}

// DataLen returns the length in octets of the data block described by h
// when time values are timeSize octets wide.
func (h Header) DataLen(timeSize int) int {
	return int(h.Timecnt)*timeSize +
		int(h.Timecnt) +
		int(h.Typecnt)*localTimeTypeLen +
		int(h.Charcnt) +
		int(h.Leapcnt)*(timeSize+4) +
		int(h.Isstdcnt) +
		int(h.Isutcnt)
}

// Tag returns the five octets that open a header of this version.
func (h Header) Tag() []byte {
	return append(Magic[:len(Magic):len(Magic)], byte(h.Version))
}

// ParseHeader decodes the header at the start of b.
//
// Headers declaring no local time types or no transitions are rejected.
func ParseHeader(b []byte) (Header, error) {
	h, err := parseHeader(b)
	if err != nil {
		return h, err
	}
	if h.Timecnt == 0 {
		return h, formatErr("header", ErrZeroTransitionCount)
	}
	return h, nil
}

// parseHeader decodes a header without enforcing a transition count.
func parseHeader(b []byte) (Header, error) {
	var h Header
	if len(b) < HeaderLen {
		return h, formatErr("header", &BoundsError{Size: HeaderLen, Len: len(b)})
	}
	if !bytes.Equal(b[:len(Magic)], Magic[:]) {
		return h, formatErr("header", fmt.Errorf("%w: %q", ErrBadMagic, b[:len(Magic)]))
	}
	h.Version = Version(b[4])
	if !h.Version.valid() {
		return h, formatErr("header", fmt.Errorf("%w: %v", ErrBadVersion, h.Version))
	}
	copy(h.Reserved[:], b[5:20])
	h.Isutcnt = order.Uint32(b[20:24])
	h.Isstdcnt = order.Uint32(b[24:28])
	h.Leapcnt = order.Uint32(b[28:32])
	h.Timecnt = order.Uint32(b[32:36])
	h.Typecnt = order.Uint32(b[36:40])
	h.Charcnt = order.Uint32(b[40:44])
	if h.Typecnt == 0 {
		return h, formatErr("header", ErrZeroTypeCount)
	}
	return h, nil
}

// DataBlock is a data block of a TZif file. Version 1 blocks store time
// values in four octets, version 2+ blocks in eight; both are widened to
// int64 here.
//
//	+---------------------------------------------------------+
//	|  transition times          (timecnt x TIME_SIZE)        |
//	+---------------------------------------------------------+
//	|  transition types          (timecnt)                    |
//	+---------------------------------------------------------+
//	|  local time type records   (typecnt x 6)                |
//	+---------------------------------------------------------+
//	|  time zone designations    (charcnt)                    |
//	+---------------------------------------------------------+
//	|  leap-second records       (leapcnt x (TIME_SIZE + 4))  |
//	+---------------------------------------------------------+
//	|  standard/wall indicators  (isstdcnt)                   |
//	+---------------------------------------------------------+
//	|  UT/local indicators       (isutcnt)                    |
//	+---------------------------------------------------------+
type DataBlock struct {
	// TimeSize is the width of time values in the encoded block.
	TimeSize int

	// TransitionTimes holds UNIX leap-time values sorted in strictly
	// ascending order. Ordering is guaranteed by the writer and not
	// checked here.
	TransitionTimes []int64

	// TransitionTypes holds, for each transition, a zero-based index into
	// LocalTimeTypeRecords.
	TransitionTypes []uint8

	LocalTimeTypeRecords []LocalTimeTypeRecord

	// TimeZoneDesignation is an array of NUL-terminated designation
	// strings addressed by LocalTimeTypeRecord.Idx. Designations may
	// overlap if one is a suffix of the other.
	TimeZoneDesignation []byte

	LeapSecondRecords []LeapSecondRecord

	// StandardWallIndicators tells whether the transition times of each
	// local time type were specified as standard (true) or wall time.
	StandardWallIndicators []bool

	// UTLocalIndicators tells whether the transition times of each local
	// time type were specified as UT (true) or local time.
	UTLocalIndicators []bool
}

// LocalTimeTypeRecord represents a local time type record.
//
//	+---------------+---+---+
//	|  utoff (4)    |dst|idx|
//	+---------------+---+---+
type LocalTimeTypeRecord struct {
	// Utoff is the number of seconds to be added to UT in order to
	// determine local time.
	Utoff int32

	// Dst tells whether local time should be considered Daylight
	// Saving Time.
	Dst bool

	// Idx is an index into the time zone designations.
	Idx uint8
}

const localTimeTypeLen = 6

// LeapSecondRecord represents a leap-second record.
//
//	+---------------+---------------+
//	|  occur (TIME_SIZE) | corr (4) |
//	+---------------+---------------+
type LeapSecondRecord struct {
	// Occur is the time at which the correction occurs.
	Occur int64
	// Corr is the value of LEAPCORR on or after the occurrence.
	Corr int32
}

// DecodeDataBlock decodes the data block described by h from the start
// of b, using timeSize octets (4 or 8) per time value. It returns the
// block and the number of octets consumed.
func DecodeDataBlock(h Header, b []byte, timeSize int) (DataBlock, int, error) {
	blk := DataBlock{TimeSize: timeSize}
	if timeSize != 4 && timeSize != 8 {
		return blk, 0, fmt.Errorf("tzif: unsupported time size %d", timeSize)
	}
	c := cursor{b: b}

	times, err := c.next(int(h.Timecnt) * timeSize)
	if err != nil {
		return blk, c.off, formatErr("transition times", err)
	}
	types, err := c.next(int(h.Timecnt))
	if err != nil {
		return blk, c.off, formatErr("transition types", err)
	}
	ttinfo, err := c.next(int(h.Typecnt) * localTimeTypeLen)
	if err != nil {
		return blk, c.off, formatErr("local time type records", err)
	}
	abbrev, err := c.next(int(h.Charcnt))
	if err != nil {
		return blk, c.off, formatErr("time zone designations", err)
	}
	leaps, err := c.next(int(h.Leapcnt) * (timeSize + 4))
	if err != nil {
		return blk, c.off, formatErr("leap second records", err)
	}
	isstd, err := c.next(int(h.Isstdcnt))
	if err != nil {
		return blk, c.off, formatErr("standard/wall indicators", err)
	}
	isut, err := c.next(int(h.Isutcnt))
	if err != nil {
		return blk, c.off, formatErr("UT/local indicators", err)
	}

	if h.Timecnt > 0 {
		blk.TransitionTimes = make([]int64, h.Timecnt)
		for i := range blk.TransitionTimes {
			if blk.TransitionTimes[i], err = DecodeInt(times[i*timeSize:], timeSize); err != nil {
				return blk, c.off, formatErr("transition times", err)
			}
		}
		blk.TransitionTypes = append([]uint8(nil), types...)
	}

	blk.LocalTimeTypeRecords = make([]LocalTimeTypeRecord, h.Typecnt)
	for i := range blk.LocalTimeTypeRecords {
		p := ttinfo[i*localTimeTypeLen:]
		utoff, err := DecodeInt(p, 4)
		if err != nil {
			return blk, c.off, formatErr("local time type records", err)
		}
		blk.LocalTimeTypeRecords[i] = LocalTimeTypeRecord{
			Utoff: int32(utoff),
			Dst:   p[4] != 0,
			Idx:   p[5],
		}
	}

	blk.TimeZoneDesignation = append([]byte(nil), abbrev...)

	if h.Leapcnt > 0 {
		blk.LeapSecondRecords = make([]LeapSecondRecord, h.Leapcnt)
		recLen := timeSize + 4
		for i := range blk.LeapSecondRecords {
			p := leaps[i*recLen:]
			occur, err := DecodeInt(p, timeSize)
			if err != nil {
				return blk, c.off, formatErr("leap second records", err)
			}
			corr, err := DecodeInt(p[timeSize:], 4)
			if err != nil {
				return blk, c.off, formatErr("leap second records", err)
			}
			blk.LeapSecondRecords[i] = LeapSecondRecord{Occur: occur, Corr: int32(corr)}
		}
	}

	blk.StandardWallIndicators = indicators(isstd)
	blk.UTLocalIndicators = indicators(isut)
	return blk, c.off, nil
}

func indicators(p []byte) []bool {
	if len(p) == 0 {
		return nil
	}
	r := make([]bool, len(p))
	for i, v := range p {
		r[i] = v != 0
	}
	return r
}

// LocalTimeType returns the local time type record at index i.
func (b DataBlock) LocalTimeType(i int) (LocalTimeTypeRecord, error) {
	if i < 0 || i >= len(b.LocalTimeTypeRecords) {
		return LocalTimeTypeRecord{}, &BoundsError{Offset: i, Size: 1, Len: len(b.LocalTimeTypeRecords)}
	}
	return b.LocalTimeTypeRecords[i], nil
}

// TransitionType returns the local time type that takes effect at
// transition i.
func (b DataBlock) TransitionType(i int) (LocalTimeTypeRecord, error) {
	if i < 0 || i >= len(b.TransitionTypes) {
		return LocalTimeTypeRecord{}, &BoundsError{Offset: i, Size: 1, Len: len(b.TransitionTypes)}
	}
	return b.LocalTimeType(int(b.TransitionTypes[i]))
}

// Designation returns the NUL-terminated designation starting at idx.
func (b DataBlock) Designation(idx uint8) (string, error) {
	if int(idx) >= len(b.TimeZoneDesignation) {
		return "", &BoundsError{Offset: int(idx), Size: 1, Len: len(b.TimeZoneDesignation)}
	}
	p := b.TimeZoneDesignation[idx:]
	if i := bytes.IndexByte(p, 0); i != -1 {
		p = p[:i]
	}
	return string(p), nil
}

// Footer represents the footer of a version 2+ TZif file.
//
//	+---+--------------------+---+
//	| NL|  TZ string (0...)  |NL |
//	+---+--------------------+---+
type Footer struct {
	// TZString holds a POSIX TZ rule for local time changes after the last
	// transition of the version 2+ data block. It may be empty.
	TZString []byte
}

var asciiNewLine = byte(0x0A)

// ParseFooter decodes the footer at the start of b.
func ParseFooter(b []byte) (Footer, error) {
	var f Footer
	if len(b) == 0 {
		return f, formatErr("footer", &BoundsError{Size: 1, Len: 0})
	}
	if b[0] != asciiNewLine {
		return f, formatErr("footer", fmt.Errorf("expected newline: %v", b[0]))
	}
	end := bytes.IndexByte(b[1:], asciiNewLine)
	if end == -1 {
		return f, formatErr("footer", fmt.Errorf("%w: unterminated TZ string", ErrTruncated))
	}
	f.TZString = append([]byte(nil), b[1:1+end]...)
	return f, nil
}
