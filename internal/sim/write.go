package sim

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/biogo/hts/bam"
	"github.com/biogo/hts/sam"
	gzip "github.com/klauspost/pgzip"

	"motifliquidator/internal/reads"
)

const qual = 30

func unmapped(rd Read) (*sam.Record, error) {
	q := make([]byte, len(rd.Seq))
	for i := range q {
		q[i] = qual
	}
	rec, err := sam.NewRecord(rd.Name, nil, nil, -1, -1, 0, 0, nil, rd.Seq, q, nil)
	if err != nil {
		return nil, fmt.Errorf("record %s: %w", rd.Name, err)
	}
	rec.Flags = sam.Unmapped
	return rec, nil
}

// WriteBAM writes rs as unmapped BAM records.
func WriteBAM(w io.Writer, rs []Read) error {
	h, err := sam.NewHeader(nil, nil)
	if err != nil {
		return err
	}
	bw, err := bam.NewWriter(w, h, 1)
	if err != nil {
		return err
	}
	for _, rd := range rs {
		rec, err := unmapped(rd)
		if err != nil {
			bw.Close()
			return err
		}
		if err := bw.Write(rec); err != nil {
			bw.Close()
			return err
		}
	}
	return bw.Close()
}

// WriteSAM writes rs as unmapped SAM text records.
func WriteSAM(w io.Writer, rs []Read) error {
	h, err := sam.NewHeader(nil, nil)
	if err != nil {
		return err
	}
	sw, err := sam.NewWriter(w, h, sam.FlagDecimal)
	if err != nil {
		return err
	}
	for _, rd := range rs {
		rec, err := unmapped(rd)
		if err != nil {
			return err
		}
		if err := sw.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

// WriteFASTA writes one single-line entry per read.
func WriteFASTA(w io.Writer, rs []Read) error {
	bw := bufio.NewWriter(w)
	for _, rd := range rs {
		if _, err := fmt.Fprintf(bw, ">%s\n%s\n", rd.Name, rd.Seq); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteFile writes rs to path ("-" for stdout) in the given format. SAM and
// FASTA output is gzip-compressed when path ends in .gz.
func WriteFile(path string, format reads.Format, rs []Read) (err error) {
	if format == "" || format == reads.Auto {
		if format, err = reads.Detect(path); err != nil {
			return err
		}
	}
	var w io.Writer = os.Stdout
	if path != "-" {
		f, cerr := os.Create(path)
		if cerr != nil {
			return cerr
		}
		defer func() {
			if cerr := f.Close(); err == nil {
				err = cerr
			}
		}()
		w = f
	}
	if format != reads.BAM && strings.HasSuffix(path, ".gz") {
		zw := gzip.NewWriter(w)
		defer func() {
			if cerr := zw.Close(); err == nil {
				err = cerr
			}
		}()
		w = zw
	}
	switch format {
	case reads.BAM:
		return WriteBAM(w, rs)
	case reads.SAM:
		return WriteSAM(w, rs)
	case reads.FASTA:
		return WriteFASTA(w, rs)
	}
	return fmt.Errorf("%w %q", reads.ErrUnknownFormat, format)
}
