package liquidate

import (
	"bytes"
	"sort"

	"github.com/shenwei356/kmers"
)

type matcher interface {
	// match sets hit[i] for every motif i that seq contains in either
	// orientation. It never clears hit.
	match(seq []byte, hit []bool)
}

type scanPattern struct {
	idx     int
	fwd, rc []byte
}

type scanMatcher []scanPattern

// newScanMatcher scans the motifs at positions only, or all motifs if only is nil.
func newScanMatcher(motifs []Motif, only []int) scanMatcher {
	if only == nil {
		only = make([]int, len(motifs))
		for i := range only {
			only[i] = i
		}
	}
	sm := make(scanMatcher, 0, len(only))
	for _, i := range only {
		sm = append(sm, scanPattern{idx: i, fwd: []byte(motifs[i].Seq), rc: []byte(motifs[i].RC)})
	}
	return sm
}

func (sm scanMatcher) match(seq []byte, hit []bool) {
	for _, p := range sm {
		if bytes.Contains(seq, p.fwd) || bytes.Contains(seq, p.rc) {
			hit[p.idx] = true
		}
	}
}

// 2-bit codes in kmers order; 0xff marks bases a motif can never match.
var base2bit [256]byte

func init() {
	for i := range base2bit {
		base2bit[i] = 0xff
	}
	base2bit['A'] = 0
	base2bit['C'] = 1
	base2bit['G'] = 2
	base2bit['T'] = 3
}

const maxK = 32

// kmerMatcher maps the canonical code of every motif to the motifs that
// share it, one table per motif length. A window matches a motif or its
// reverse complement exactly when their canonical codes agree.
type kmerMatcher struct {
	ks    []int
	index map[int]map[uint64][]int
	long  scanMatcher
}

func newKmerMatcher(motifs []Motif) (*kmerMatcher, error) {
	km := &kmerMatcher{index: make(map[int]map[uint64][]int)}
	var long []int
	for i, m := range motifs {
		k := len(m.Seq)
		if k > maxK {
			long = append(long, i)
			continue
		}
		code, err := kmers.Encode([]byte(m.Seq))
		if err != nil {
			return nil, err
		}
		tab, ok := km.index[k]
		if !ok {
			tab = make(map[uint64][]int)
			km.index[k] = tab
			km.ks = append(km.ks, k)
		}
		c := kmers.Canonical(code, k)
		tab[c] = append(tab[c], i)
	}
	sort.Ints(km.ks)
	if len(long) > 0 {
		km.long = newScanMatcher(motifs, long)
	}
	return km, nil
}

func (km *kmerMatcher) match(seq []byte, hit []bool) {
	for _, k := range km.ks {
		tab := km.index[k]
		mask := ^uint64(0)
		if k < maxK {
			mask = 1<<(2*uint(k)) - 1
		}
		var code uint64
		run := 0
		for _, b := range seq {
			v := base2bit[b]
			if v == 0xff {
				run, code = 0, 0
				continue
			}
			code = (code<<2 | uint64(v)) & mask
			if run++; run < k {
				continue
			}
			for _, i := range tab[kmers.Canonical(code, k)] {
				hit[i] = true
			}
		}
	}
	km.long.match(seq, hit)
}
