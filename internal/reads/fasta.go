package reads

import (
	"bufio"
	"bytes"
	"fmt"
	"io"

	"motifliquidator/internal/nt"
)

// fastaReader treats every FASTA entry as one read. Multi-line entries are
// joined; lines before the first header are ignored.
type fastaReader struct {
	r       *bufio.Reader
	id      string
	pending bool // id holds a header whose sequence is being collected
	eof     bool
	seq     []byte
	packed  []byte
}

func newFASTA(in io.Reader, cl *closers) (*fastaReader, error) {
	in, err := maybeGunzip(in, cl)
	if err != nil {
		return nil, err
	}
	return &fastaReader{r: bufio.NewReaderSize(in, bufSize)}, nil
}

func (f *fastaReader) Read() (Record, error) {
	for !f.eof {
		line, err := f.r.ReadBytes('\n')
		if err != nil && err != io.EOF {
			return Record{}, err
		}
		if err == io.EOF {
			f.eof = true
		}
		line = bytes.TrimRight(line, "\r\n")
		if len(line) > 0 && line[0] == '>' { // header
			id := headerID(line)
			if f.pending {
				rec, err := f.flush()
				f.id = id
				return rec, err
			}
			f.id, f.pending = id, true
			continue
		}
		if f.pending {
			f.seq = append(f.seq, bytes.TrimSpace(line)...)
		}
	}
	if f.pending {
		f.pending = false
		return f.flush()
	}
	return Record{}, io.EOF
}

func (f *fastaReader) flush() (Record, error) {
	var err error
	f.packed, err = nt.BAM.Pack(f.packed[:0], f.seq)
	n := len(f.seq)
	f.seq = f.seq[:0]
	if err != nil {
		return Record{}, fmt.Errorf("fasta record %s: %w", f.id, err)
	}
	return Record{Name: f.id, Length: n, Seq: f.packed}, nil
}

// headerID grabs the header up to the first space.
func headerID(line []byte) string {
	if fs := bytes.Fields(line[1:]); len(fs) > 0 {
		return string(fs[0])
	}
	return ""
}
