// Package liquidate counts, per motif, the reads of a dataset that contain
// the motif or its reverse complement.
package liquidate

import (
	"fmt"

	"motifliquidator/internal/nt"
)

type Matcher string

const (
	// Scan searches every read once per motif and orientation.
	Scan Matcher = "scan"
	// Kmer looks up every read window in a canonical k-mer index built over
	// all motifs. Motifs longer than 32 bp are still scanned.
	Kmer Matcher = "kmer"
)

func ParseMatcher(s string) (Matcher, error) {
	switch m := Matcher(s); m {
	case Scan, Kmer:
		return m, nil
	case "":
		return Scan, nil
	}
	return "", fmt.Errorf("unknown matcher %q (want scan or kmer)", s)
}

type Options struct {
	Matcher Matcher
	// Table decodes packed bases; the zero value means nt.BAM.
	Table nt.Table
}

// Motif is a validated motif with its reverse complement.
type Motif struct {
	Seq string
	RC  string
}

// Plan precompiles a motif list for reuse across datasets. It holds no
// counters, so one Plan can drive any number of independent passes.
type Plan struct {
	motifs  []Motif
	table   nt.Table
	matcher matcher
}

// NewPlan validates motifs and derives their reverse complements once,
// before any read is scanned.
func NewPlan(motifs []string, opt Options) (*Plan, error) {
	if len(motifs) == 0 {
		return nil, fmt.Errorf("%w: no motifs", nt.ErrInvalidMotif)
	}
	p := &Plan{table: opt.Table}
	if p.table == (nt.Table{}) {
		p.table = nt.BAM
	}
	for _, m := range motifs {
		if err := nt.ValidMotif(m); err != nil {
			return nil, err
		}
		p.motifs = append(p.motifs, Motif{Seq: m, RC: nt.ReverseComplement(m)})
	}

	switch opt.Matcher {
	case Scan, "":
		p.matcher = newScanMatcher(p.motifs, nil)
	case Kmer:
		km, err := newKmerMatcher(p.motifs)
		if err != nil {
			return nil, err
		}
		p.matcher = km
	default:
		return nil, fmt.Errorf("unknown matcher %q", opt.Matcher)
	}
	return p, nil
}

// Motifs returns the compiled motifs in input order.
func (p *Plan) Motifs() []Motif {
	return append([]Motif(nil), p.motifs...)
}
