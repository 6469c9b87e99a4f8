package report

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// formatRate prints six significant digits, like C's %g.
func formatRate(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	return strconv.FormatFloat(f, 'g', 6, 64)
}

// WriteTable writes the tab-separated table followed by the read totals.
func (r Report) WriteTable(w io.Writer) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString("motif\tbackground (normalized)\ttarget (normalized)\n"); err != nil {
		return err
	}
	for _, row := range r.Rows {
		if _, err := fmt.Fprintf(bw, "%s\t%d (%s)\t%d (%s)\n",
			row.Motif,
			row.Background, formatRate(row.BackgroundRate),
			row.Target, formatRate(row.TargetRate),
		); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(bw, "\nbackground reads: %d\ntarget reads: %d\n",
		r.BackgroundReads, r.TargetReads); err != nil {
		return err
	}
	return bw.Flush()
}

// WriteTableFile writes the table to path, or stdout for "-".
func (r Report) WriteTableFile(path string) error {
	if path == "-" || path == "" {
		return r.WriteTable(os.Stdout)
	}
	return writeFile(path, r.WriteTable)
}

// Meta describes the run for the JSON summary.
type Meta struct {
	Background string
	Target     string
	Matcher    string
	Version    string
}

type motifJSON struct {
	Motif          string   `json:"motif"`
	Background     int      `json:"background"`
	Target         int      `json:"target"`
	BackgroundRate *float64 `json:"background_per_million"`
	TargetRate     *float64 `json:"target_per_million"`
}

type summaryJSON struct {
	RunID           string      `json:"run_id"`
	Created         time.Time   `json:"created"`
	Version         string      `json:"version,omitempty"`
	Background      string      `json:"background"`
	Target          string      `json:"target"`
	Matcher         string      `json:"matcher"`
	BackgroundReads int         `json:"background_reads"`
	TargetReads     int         `json:"target_reads"`
	Motifs          []motifJSON `json:"motifs"`
}

// rate is nil for non-finite values, which JSON cannot carry.
func rate(f float64) *float64 {
	if !finite(f) {
		return nil
	}
	return &f
}

// WriteJSON writes a run summary. Non-finite rates are null.
func (r Report) WriteJSON(w io.Writer, m Meta) error {
	out := summaryJSON{
		RunID:           uuid.NewString(),
		Created:         time.Now().UTC(),
		Version:         m.Version,
		Background:      m.Background,
		Target:          m.Target,
		Matcher:         m.Matcher,
		BackgroundReads: r.BackgroundReads,
		TargetReads:     r.TargetReads,
		Motifs:          make([]motifJSON, len(r.Rows)),
	}
	for i, row := range r.Rows {
		out.Motifs[i] = motifJSON{
			Motif:          row.Motif,
			Background:     row.Background,
			Target:         row.Target,
			BackgroundRate: rate(row.BackgroundRate),
			TargetRate:     rate(row.TargetRate),
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// WriteJSONFile writes the summary to path.
func (r Report) WriteJSONFile(path string, m Meta) error {
	return writeFile(path, func(w io.Writer) error { return r.WriteJSON(w, m) })
}

// writeFile creates or truncates path and keeps the first error from
// writing or closing.
func writeFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return write(f)
}
