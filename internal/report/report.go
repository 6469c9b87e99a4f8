// Package report turns two liquidation results into per-million motif rates
// and renders them.
package report

import (
	"fmt"
	"math"

	"motifliquidator/internal/liquidate"
)

// Row compares one motif across the two datasets.
type Row struct {
	Motif          string
	Background     int
	Target         int
	BackgroundRate float64
	TargetRate     float64
}

type Report struct {
	Rows            []Row
	BackgroundReads int
	TargetReads     int
}

// Normalize returns matches per million usable reads. A zero total yields
// +Inf or NaN; it is not treated as an error.
func Normalize(matches, total int) float64 {
	return float64(matches) / (float64(total) / 1e6)
}

// New zips the background and target results position by position. Both
// must come from the same motif list; anything else is a logic error.
func New(bg, tg liquidate.Result) (Report, error) {
	if len(bg.Counts) != len(tg.Counts) {
		return Report{}, fmt.Errorf("internal logic error: %w (%d vs %d motifs)",
			liquidate.ErrMotifOrder, len(bg.Counts), len(tg.Counts))
	}
	r := Report{
		Rows:            make([]Row, len(bg.Counts)),
		BackgroundReads: bg.Reads,
		TargetReads:     tg.Reads,
	}
	for i, b := range bg.Counts {
		t := tg.Counts[i]
		if b.Motif != t.Motif {
			return Report{}, fmt.Errorf("internal logic error: %w at %d (%s vs %s)",
				liquidate.ErrMotifOrder, i, b.Motif, t.Motif)
		}
		r.Rows[i] = Row{
			Motif:          b.Motif,
			Background:     b.Matches,
			Target:         t.Matches,
			BackgroundRate: Normalize(b.Matches, bg.Reads),
			TargetRate:     Normalize(t.Matches, tg.Reads),
		}
	}
	return r, nil
}

// Degenerate reports whether either dataset had no usable reads, in which
// case its rates are not finite.
func (r Report) Degenerate() bool {
	return r.BackgroundReads == 0 || r.TargetReads == 0
}

func finite(f float64) bool { return !math.IsInf(f, 0) && !math.IsNaN(f) }
