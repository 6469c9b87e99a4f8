package nt

import (
	"errors"
	"fmt"
)

// ErrShortPayload is returned when a record declares more bases than its
// packed payload holds.
var ErrShortPayload = errors.New("packed sequence shorter than declared length")

// Decoder unpacks reads into text, reusing one scratch buffer across calls.
type Decoder struct {
	table Table
	buf   []byte
}

func NewDecoder(t Table) *Decoder {
	return &Decoder{table: t}
}

// Decode unpacks length bases from packed. ambiguous reports whether any
// base decoded to 'N'; other IUPAC codes do not count.
//
// The returned slice is overwritten by the next call. It is reallocated
// whenever length differs from the previous read, so it never carries
// bases past the current length.
func (d *Decoder) Decode(packed []byte, length int) (seq []byte, ambiguous bool, err error) {
	if length < 0 || len(packed) < (length+1)/2 {
		return nil, false, fmt.Errorf("%w: %d bases in %d bytes", ErrShortPayload, length, len(packed))
	}
	if len(d.buf) != length {
		d.buf = make([]byte, length)
	}
	for i := 0; i < length; i++ {
		c := packed[i>>1]
		if i&1 == 0 {
			c >>= 4
		} else {
			c &= 0xf
		}
		b := d.table[c]
		d.buf[i] = b
		if b == 'N' {
			ambiguous = true
		}
	}
	return d.buf, ambiguous, nil
}
