package liquidate

import (
	"errors"
	"fmt"
	"io"

	"motifliquidator/internal/nt"
	"motifliquidator/internal/reads"
)

// Count is the number of usable reads matching one motif.
type Count struct {
	Motif   string
	Matches int
}

// Result is one full scan of a dataset. Counts follow the plan's motif order.
type Result struct {
	Counts  []Count
	Reads   int // usable reads
	Skipped int // reads dropped for containing N
}

// RecordReader is the part of reads.Source that Run consumes.
type RecordReader interface {
	Read() (reads.Record, error)
}

// Run scans src to exhaustion. Reads with an N count toward nothing; every
// other read increments Reads and, at most once, each motif it contains in
// either orientation.
func Run(src RecordReader, p *Plan) (Result, error) {
	res := Result{Counts: make([]Count, len(p.motifs))}
	for i, m := range p.motifs {
		res.Counts[i].Motif = m.Seq
	}
	dec := nt.NewDecoder(p.table)
	hit := make([]bool, len(p.motifs))
	for {
		rec, err := src.Read()
		if err == io.EOF {
			return res, nil
		}
		if err != nil {
			return Result{}, err
		}
		seq, ambiguous, err := dec.Decode(rec.Seq, rec.Length)
		if err != nil {
			return Result{}, fmt.Errorf("read %s: %w", rec.Name, err)
		}
		if ambiguous {
			res.Skipped++
			continue
		}
		res.Reads++

		p.matcher.match(seq, hit)
		for i, h := range hit {
			if h {
				res.Counts[i].Matches++
				hit[i] = false
			}
		}
	}
}

// File opens path, scans it with p and closes it on every exit path.
// Any open or read failure names the file.
func File(path string, p *Plan, opt reads.Options) (res Result, err error) {
	src, err := reads.Open(path, opt)
	if err != nil {
		return Result{}, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() {
		if cerr := src.Close(); cerr != nil && err == nil {
			res, err = Result{}, fmt.Errorf("close %s: %w", path, cerr)
		}
	}()
	if res, err = Run(src, p); err != nil {
		return Result{}, fmt.Errorf("%s: %w", path, err)
	}
	return res, nil
}

// ErrMotifOrder is returned when two results do not list the same motifs
// in the same order.
var ErrMotifOrder = errors.New("motif lists differ")

// Add accumulates o into r, pooling counts from several passes of the same
// plan, for example one per lane of a split dataset.
func (r *Result) Add(o Result) error {
	if len(r.Counts) != len(o.Counts) {
		return fmt.Errorf("%w: %d vs %d motifs", ErrMotifOrder, len(r.Counts), len(o.Counts))
	}
	for i := range r.Counts {
		if r.Counts[i].Motif != o.Counts[i].Motif {
			return fmt.Errorf("%w at %d: %s vs %s", ErrMotifOrder, i, r.Counts[i].Motif, o.Counts[i].Motif)
		}
	}
	for i := range r.Counts {
		r.Counts[i].Matches += o.Counts[i].Matches
	}
	r.Reads += o.Reads
	r.Skipped += o.Skipped
	return nil
}
