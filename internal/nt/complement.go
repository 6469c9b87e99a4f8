package nt

import (
	"errors"
	"fmt"
)

// ErrInvalidMotif is returned for empty motifs or motifs with letters
// outside A, C, G, T.
var ErrInvalidMotif = errors.New("invalid motif")

var complement [256]byte

func init() {
	complement['A'] = 'T'
	complement['C'] = 'G'
	complement['G'] = 'C'
	complement['T'] = 'A'
	complement['R'] = 'Y'
	complement['Y'] = 'R'
	complement['S'] = 'S'
	complement['W'] = 'W'
	complement['K'] = 'M'
	complement['M'] = 'K'
	complement['B'] = 'V'
	complement['V'] = 'B'
	complement['D'] = 'H'
	complement['H'] = 'D'
	complement['N'] = 'N'
}

// ReverseComplement complements every base and reverses the order.
// Letters without a complement become 'N'.
func ReverseComplement(seq string) string {
	n := len(seq)
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		c := complement[seq[n-1-i]]
		if c == 0 {
			c = 'N'
		}
		out[i] = c
	}
	return string(out)
}

// ValidMotif reports whether m is a non-empty upper-case A/C/G/T string.
func ValidMotif(m string) error {
	if m == "" {
		return fmt.Errorf("%w: empty", ErrInvalidMotif)
	}
	for i := 0; i < len(m); i++ {
		switch m[i] {
		case 'A', 'C', 'G', 'T':
		default:
			return fmt.Errorf("%w %q: base %q at %d", ErrInvalidMotif, m, m[i], i)
		}
	}
	return nil
}
