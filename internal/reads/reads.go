// Package reads opens sequencing-read datasets and yields their records
// with the sequence still in packed 4-bit form.
package reads

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cheggaaa/pb/v3"
)

// ErrUnknownFormat is returned when the dataset format cannot be inferred.
var ErrUnknownFormat = errors.New("unknown dataset format")

// Record is one read. Seq holds Length bases packed two per byte (BAM nt16
// layout, first base in the high nibble). Seq is reused by the next Read;
// copy it if you need to keep it.
type Record struct {
	Name   string
	Length int
	Seq    []byte
}

// Source yields records in file order. Read returns io.EOF when the
// dataset is exhausted.
type Source interface {
	Read() (Record, error)
	Close() error
}

type Format string

const (
	Auto  Format = "auto"
	BAM   Format = "bam"
	SAM   Format = "sam"
	FASTA Format = "fasta"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case Auto, BAM, SAM, FASTA:
		return f, nil
	case "":
		return Auto, nil
	}
	return "", fmt.Errorf("%w %q (want auto, bam, sam or fasta)", ErrUnknownFormat, s)
}

// Detect infers the format from the file name, ignoring a trailing .gz.
func Detect(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".gz" {
		ext = strings.ToLower(filepath.Ext(strings.TrimSuffix(path, filepath.Ext(path))))
	}
	switch ext {
	case ".bam":
		return BAM, nil
	case ".sam":
		return SAM, nil
	case ".fa", ".fasta", ".fna", ".fas":
		return FASTA, nil
	}
	return "", fmt.Errorf("%w: %s (use an explicit format)", ErrUnknownFormat, path)
}

type Options struct {
	Format Format
	// Progress, when set, receives a byte-count progress bar for the file.
	Progress io.Writer
}

// Open opens path ("-" for stdin) and reads the dataset header.
// The returned Source owns the file and must be closed.
func Open(path string, opt Options) (Source, error) {
	format := opt.Format
	if format == "" || format == Auto {
		f, err := Detect(path)
		if err != nil {
			return nil, err
		}
		format = f
	}

	var (
		in io.Reader
		cl closers
	)
	size := int64(-1)
	if path == "-" {
		in = os.Stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		cl = append(cl, f)
		if fi, err := f.Stat(); err == nil {
			size = fi.Size()
		}
		in = f
	}
	if opt.Progress != nil {
		bar := pb.New64(size).SetTemplate(pb.Full).Set(pb.Bytes, true).SetWriter(opt.Progress).Start()
		in = bar.NewProxyReader(in)
		cl = append(cl, closerFunc(func() error { bar.Finish(); return nil }))
	}

	var (
		r   recordReader
		err error
	)
	switch format {
	case BAM:
		r, err = newBAM(in, &cl)
	case SAM:
		r, err = newSAM(in, &cl)
	case FASTA:
		r, err = newFASTA(in, &cl)
	default:
		err = fmt.Errorf("%w %q", ErrUnknownFormat, format)
	}
	if err != nil {
		cl.Close()
		return nil, err
	}
	return &dataset{recordReader: r, cl: cl}, nil
}

type recordReader interface {
	Read() (Record, error)
}

type dataset struct {
	recordReader
	cl closers
}

func (d *dataset) Close() error { return d.cl.Close() }

// closers releases resources in reverse order of acquisition, each once.
type closers []io.Closer

func (c *closers) Close() error {
	var first error
	for i := len(*c) - 1; i >= 0; i-- {
		if err := (*c)[i].Close(); err != nil && first == nil {
			first = err
		}
	}
	*c = nil
	return first
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }
