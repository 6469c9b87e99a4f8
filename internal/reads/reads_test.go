package reads_test

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"motifliquidator/internal/nt"
	"motifliquidator/internal/reads"
	"motifliquidator/internal/sim"
)

func readAll(t *testing.T, src reads.Source) []sim.Read {
	t.Helper()
	d := nt.NewDecoder(nt.BAM)
	var out []sim.Read
	for {
		rec, err := src.Read()
		if err == io.EOF {
			return out
		}
		require.NoError(t, err)
		seq, _, err := d.Decode(rec.Seq, rec.Length)
		require.NoError(t, err)
		out = append(out, sim.Read{Name: rec.Name, Seq: []byte(string(seq))})
	}
}

func TestOpen_RoundTripAllFormats(t *testing.T) {
	want, err := sim.Reads(sim.Options{Reads: 50, Length: 36, Jitter: 6, NRate: 0.2, Seed: 11})
	require.NoError(t, err)
	want = append(want, sim.Read{Name: "iupac", Seq: []byte("ACGTRYKM")})

	for _, name := range []string{"r.bam", "r.sam", "r.sam.gz", "r.fa", "r.fasta.gz"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			require.NoError(t, sim.WriteFile(path, reads.Auto, want))

			src, err := reads.Open(path, reads.Options{})
			require.NoError(t, err)
			got := readAll(t, src)
			require.NoError(t, src.Close())
			assert.Equal(t, want, got)
		})
	}
}

func TestOpen_FASTAMultiLineCRLF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "m.fa")
	data := "junk before header\r\n>r1 desc\r\nAC\r\ngt\r\n>r2\nTTTT\n\n>empty\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	src, err := reads.Open(path, reads.Options{})
	require.NoError(t, err)
	defer src.Close()
	got := readAll(t, src)
	assert.Equal(t, []sim.Read{
		{Name: "r1", Seq: []byte("ACGT")},
		{Name: "r2", Seq: []byte("TTTT")},
		{Name: "empty", Seq: []byte{}},
	}, got)
}

func TestOpen_FASTABadBase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.fa")
	require.NoError(t, os.WriteFile(path, []byte(">x\nAC*T\n"), 0o644))
	src, err := reads.Open(path, reads.Options{})
	require.NoError(t, err)
	defer src.Close()
	_, err = src.Read()
	assert.ErrorContains(t, err, "fasta record x")
}

func TestOpen_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := reads.Open(filepath.Join(dir, "missing.bam"), reads.Options{})
	assert.True(t, errors.Is(err, os.ErrNotExist), "got %v", err)

	notBAM := filepath.Join(dir, "plain.bam")
	require.NoError(t, os.WriteFile(notBAM, []byte("this is not bgzf"), 0o644))
	_, err = reads.Open(notBAM, reads.Options{})
	assert.Error(t, err)

	_, err = reads.Open(filepath.Join(dir, "reads.txt"), reads.Options{})
	assert.ErrorIs(t, err, reads.ErrUnknownFormat)
}

func TestOpen_ExplicitFormatAndDoubleClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reads.dat")
	require.NoError(t, sim.WriteFile(path, reads.BAM, []sim.Read{{Name: "a", Seq: []byte("ACGT")}}))

	src, err := reads.Open(path, reads.Options{Format: reads.BAM, Progress: io.Discard})
	require.NoError(t, err)
	assert.Len(t, readAll(t, src), 1)
	require.NoError(t, src.Close())
	assert.NoError(t, src.Close(), "second close is a no-op")
}

func TestDetectAndParseFormat(t *testing.T) {
	for path, want := range map[string]reads.Format{
		"x.bam": reads.BAM, "X.BAM": reads.BAM, "x.sam": reads.SAM, "x.sam.gz": reads.SAM,
		"x.fa": reads.FASTA, "x.fna.gz": reads.FASTA, "x.fasta": reads.FASTA,
	} {
		got, err := reads.Detect(path)
		require.NoError(t, err, path)
		assert.Equal(t, want, got, path)
	}
	_, err := reads.Detect("x.gz")
	assert.ErrorIs(t, err, reads.ErrUnknownFormat)

	f, err := reads.ParseFormat("BAM")
	require.NoError(t, err)
	assert.Equal(t, reads.BAM, f)
	f, err = reads.ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, reads.Auto, f)
	_, err = reads.ParseFormat("cram")
	assert.ErrorIs(t, err, reads.ErrUnknownFormat)
}
