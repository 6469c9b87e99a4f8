// Package sim generates synthetic read datasets with known motif content.
package sim

import (
	"fmt"
	"math/rand"
	"time"

	"motifliquidator/internal/nt"
)

// Make returns an upper‑case DNA sequence of given length with ~gc fraction GC.
// If seed==0 we use a time-based seed; otherwise results are reproducible.
func Make(length int, gc float64, seed int64) []byte {
	return makeSeq(newRand(seed), length, gc)
}

func newRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

func makeSeq(r *rand.Rand, length int, gc float64) []byte {
	if length <= 0 {
		return []byte{}
	}
	gc = clamp(gc)

	gcCount := int(float64(length)*gc + 0.5) // nearest integer
	if gcCount > length {
		gcCount = length
	}

	seq := make([]byte, length)

	// Fill exact composition.
	for i := 0; i < gcCount; i++ {
		if r.Intn(2) == 0 {
			seq[i] = 'G'
		} else {
			seq[i] = 'C'
		}
	}
	for i := gcCount; i < length; i++ {
		if r.Intn(2) == 0 {
			seq[i] = 'A'
		} else {
			seq[i] = 'T'
		}
	}

	// Shuffle to disperse bases.
	for i := length - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		seq[i], seq[j] = seq[j], seq[i]
	}
	return seq
}

func clamp(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// Read is one simulated read.
type Read struct {
	Name string
	Seq  []byte
}

type Options struct {
	Reads     int
	Length    int
	Jitter    int     // read length is drawn from [Length-Jitter, Length+Jitter]
	GC        float64 // GC fraction of the background sequence
	NRate     float64 // fraction of reads that get one N
	Plant     []string
	PlantRate float64 // per read and planted motif; half are planted reverse-complemented
	Seed      int64
}

// Reads generates opt.Reads reads. Planting happens before N injection,
// so a read can carry both a motif and an N.
func Reads(opt Options) ([]Read, error) {
	for _, m := range opt.Plant {
		if err := nt.ValidMotif(m); err != nil {
			return nil, err
		}
	}
	if opt.Jitter < 0 || opt.Jitter > opt.Length {
		return nil, fmt.Errorf("length jitter %d outside [0,%d]", opt.Jitter, opt.Length)
	}
	r := newRand(opt.Seed)
	out := make([]Read, 0, opt.Reads)
	for i := 0; i < opt.Reads; i++ {
		n := opt.Length
		if opt.Jitter > 0 {
			n += r.Intn(2*opt.Jitter+1) - opt.Jitter
		}
		seq := makeSeq(r, n, opt.GC)
		for _, m := range opt.Plant {
			if len(m) > len(seq) || r.Float64() >= clamp(opt.PlantRate) {
				continue
			}
			if r.Intn(2) == 1 {
				m = nt.ReverseComplement(m)
			}
			copy(seq[r.Intn(len(seq)-len(m)+1):], m)
		}
		if len(seq) > 0 && r.Float64() < clamp(opt.NRate) {
			seq[r.Intn(len(seq))] = 'N'
		}
		out = append(out, Read{Name: fmt.Sprintf("sim_%d", i+1), Seq: seq})
	}
	return out, nil
}
