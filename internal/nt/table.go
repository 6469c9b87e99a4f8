package nt

import "fmt"

// Table maps a 4-bit packed code to its nucleotide letter. Swapping the
// table is how a different packed format is supported; the decoder has no
// per-code branching.
type Table [16]byte

// BAM is the nt16 table used by the BAM sequence field:
//
//	0 =   1 A   2 C   3 M   4 G   5 R   6 S   7 V
//	8 T   9 W  10 Y  11 H  12 K  13 D  14 B  15 N
var BAM = Table{'=', 'A', 'C', 'M', 'G', 'R', 'S', 'V', 'T', 'W', 'Y', 'H', 'K', 'D', 'B', 'N'}

const noCode = 0xff

var bamIndex = BAM.index()

// index is the inverse of t, noCode for letters t cannot represent.
func (t *Table) index() [256]uint8 {
	var idx [256]uint8
	for i := range idx {
		idx[i] = noCode
	}
	for code, b := range t {
		idx[b] = uint8(code)
		if b >= 'A' && b <= 'Z' {
			idx[b+'a'-'A'] = uint8(code)
		}
	}
	return idx
}

// Pack appends the packed form of seq to dst, two bases per byte with the
// first base in the high nibble. An odd trailing base leaves the low
// nibble zero.
func (t *Table) Pack(dst, seq []byte) ([]byte, error) {
	var idx *[256]uint8
	if *t == BAM {
		idx = &bamIndex
	} else {
		ti := t.index()
		idx = &ti
	}
	for i := 0; i < len(seq); i += 2 {
		hi := idx[seq[i]]
		if hi == noCode {
			return dst, fmt.Errorf("cannot pack base %q at %d", seq[i], i)
		}
		var lo uint8
		if i+1 < len(seq) {
			lo = idx[seq[i+1]]
			if lo == noCode {
				return dst, fmt.Errorf("cannot pack base %q at %d", seq[i+1], i+1)
			}
		}
		dst = append(dst, hi<<4|lo)
	}
	return dst, nil
}
