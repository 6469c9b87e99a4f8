package reads

import (
	"fmt"
	"io"

	"github.com/biogo/hts/bam"
	"github.com/biogo/hts/sam"
)

// htsReader adapts biogo BAM and SAM readers, copying the packed
// doublets into a reused buffer.
type htsReader struct {
	r interface {
		Read() (*sam.Record, error)
	}
	buf []byte
}

func newBAM(in io.Reader, cl *closers) (*htsReader, error) {
	br, err := bam.NewReader(in, 1)
	if err != nil {
		return nil, fmt.Errorf("read bam header: %w", err)
	}
	*cl = append(*cl, br)
	return &htsReader{r: br}, nil
}

func newSAM(in io.Reader, cl *closers) (*htsReader, error) {
	in, err := maybeGunzip(in, cl)
	if err != nil {
		return nil, err
	}
	sr, err := sam.NewReader(in)
	if err != nil {
		return nil, fmt.Errorf("read sam header: %w", err)
	}
	return &htsReader{r: sr}, nil
}

func (h *htsReader) Read() (Record, error) {
	rec, err := h.r.Read()
	if err != nil {
		return Record{}, err
	}
	h.buf = h.buf[:0]
	for _, d := range rec.Seq.Seq {
		h.buf = append(h.buf, byte(d))
	}
	return Record{Name: rec.Name, Length: rec.Seq.Length, Seq: h.buf}, nil
}
