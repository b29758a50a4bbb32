package tzif

import (
	"bytes"
	"fmt"
)

// Data represents a decoded TZif file.
type Data struct {
	Version Version

	V1Header Header
	V1Data   DataBlock

	V2Header Header
	V2Data   DataBlock
	V2Footer Footer
}

// Header returns the header of the data block that describes the zone:
// the version 2+ header when present, the version 1 header otherwise.
func (d Data) Header() Header {
	if d.Version.Wide() {
		return d.V2Header
	}
	return d.V1Header
}

// Block returns the data block that describes the zone: the 64bit block
// when present, the 32bit block otherwise.
func (d Data) Block() DataBlock {
	if d.Version.Wide() {
		return d.V2Data
	}
	return d.V1Data
}

// TZString returns the footer TZ string. It is empty for version 1 files
// and for files whose footer is missing or malformed.
func (d Data) TZString() string {
	return string(d.V2Footer.TZString)
}

// Decode decodes a complete TZif file image.
//
// For version 2+ files the second header is located by searching for
// "TZif" followed by the version octet after the version 1 data block,
// and the header that governs the zone must declare at least one
// transition. A missing or malformed footer leaves V2Footer empty.
func Decode(b []byte) (Data, error) {
	var (
		d   Data
		err error
	)
	d.V1Header, err = parseHeader(b)
	if err != nil {
		return d, fmt.Errorf("read v1 header: %w", err)
	}
	d.Version = d.V1Header.Version
	if !d.Version.Wide() && d.V1Header.Timecnt == 0 {
		return d, fmt.Errorf("read v1 header: %w", formatErr("header", ErrZeroTransitionCount))
	}

	var n int
	d.V1Data, n, err = DecodeDataBlock(d.V1Header, b[HeaderLen:], 4)
	if err != nil {
		return d, fmt.Errorf("read v1 data block: %w", err)
	}

	if d.Version.Wide() {
		rest := b[HeaderLen+n:]
		at := bytes.Index(rest, d.V1Header.Tag())
		if at == -1 {
			return d, fmt.Errorf("read v2 header: %w", formatErr("header", ErrMissingV2Header))
		}
		rest = rest[at:]
		d.V2Header, err = ParseHeader(rest)
		if err != nil {
			return d, fmt.Errorf("read v2 header: %w", err)
		}
		d.V2Data, n, err = DecodeDataBlock(d.V2Header, rest[HeaderLen:], 8)
		if err != nil {
			return d, fmt.Errorf("read v2 data block: %w", err)
		}
		if f, err := ParseFooter(rest[HeaderLen+n:]); err == nil {
			d.V2Footer = f
		}
	}

	if err := Validate(d); err != nil {
		return d, fmt.Errorf("validate: %w", formatErr("data", fmt.Errorf("%w: %w", ErrInvalid, err)))
	}
	return d, nil
}
