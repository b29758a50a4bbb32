package tzif

import (
	"errors"
	"fmt"
)

var (
	// ErrBadMagic is reported when a header does not start with "TZif".
	ErrBadMagic = errors.New("invalid magic")
	// ErrBadVersion is reported for an unknown version octet.
	ErrBadVersion = errors.New("invalid version")
	// ErrZeroTypeCount is reported when typecnt is zero.
	ErrZeroTypeCount = errors.New("zero local time type count")
	// ErrZeroTransitionCount is reported when timecnt is zero.
	//
	// RFC 8536 allows such files (fixed offset zones). They are rejected
	// because a query needs at least one recorded transition to anchor
	// the interval.
	ErrZeroTransitionCount = errors.New("zero transition count")
	// ErrTruncated is reported when the buffer ends before a section does.
	ErrTruncated = errors.New("truncated data")
	// ErrMissingV2Header is reported when a version 2+ file has no second header.
	ErrMissingV2Header = errors.New("missing version 2+ header")
	// ErrInvalid is reported when the decoded data violates RFC 8536.
	ErrInvalid = errors.New("invalid data")
)

// FormatError describes a failure to decode a TZif file.
type FormatError struct {
	// Section names the part of the file being decoded, e.g. "v1 header".
	Section string
	Err     error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("tzif: %s: %v", e.Section, e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }

// BoundsError is returned when a field would be read past the end of its buffer.
type BoundsError struct {
	Offset int // offset of the field
	Size   int // octets required by the field
	Len    int // octets available in the buffer
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("reading %d octets at offset %d: buffer has %d", e.Size, e.Offset, e.Len)
}

// Is reports a BoundsError as truncated data.
func (e *BoundsError) Is(target error) bool { return target == ErrTruncated }

func formatErr(section string, err error) error {
	return &FormatError{Section: section, Err: err}
}
