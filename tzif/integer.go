package tzif

import (
	"encoding/binary"
	"fmt"
)

// NOTE: All multi-octet integer values MUST be stored in network octet
// order format (high-order octet first, otherwise known as big-endian),
// with all bits significant.  Signed integer values MUST be represented
// using two's complement.
var order = binary.BigEndian

// DecodeInt decodes the first size octets of b as a big-endian two's
// complement integer. Four-octet values are sign extended.
//
// A size other than 4 or 8 is a programming error. A b shorter than size
// yields a *BoundsError.
func DecodeInt(b []byte, size int) (int64, error) {
	if size != 4 && size != 8 {
		return 0, fmt.Errorf("tzif: unsupported integer size %d", size)
	}
	if len(b) < size {
		return 0, &BoundsError{Size: size, Len: len(b)}
	}
	if size == 4 {
		return int64(int32(order.Uint32(b))), nil
	}
	return int64(order.Uint64(b)), nil
}

// cursor walks a byte slice handing out length-checked sub-slices.
type cursor struct {
	b   []byte
	off int
}

func (c *cursor) next(n int) ([]byte, error) {
	if n < 0 || len(c.b)-c.off < n {
		return nil, &BoundsError{Offset: c.off, Size: n, Len: len(c.b)}
	}
	p := c.b[c.off : c.off+n]
	c.off += n
	return p, nil
}
