package sim

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"motifliquidator/internal/nt"
)

func gcFrac(b []byte) float64 {
	if len(b) == 0 {
		return 0
	}
	gc := 0
	for _, x := range b {
		if x == 'G' || x == 'C' {
			gc++
		}
	}
	return float64(gc) / float64(len(b))
}

func TestMake_LengthAndGC(t *testing.T) {
	N := 10000
	seq := Make(N, 0.42, 123)
	if len(seq) != N {
		t.Fatalf("length: got %d want %d", len(seq), N)
	}
	got := gcFrac(seq)
	tol := 0.5/float64(N) + 1e-12 // nearest-integer rounding
	if math.Abs(got-0.42) > tol {
		t.Fatalf("gc: got %.6f want 0.42 (tol %.6g)", got, tol)
	}
}

func TestMake_SeedDeterministic(t *testing.T) {
	a := Make(5000, 0.50, 42)
	if !bytes.Equal(a, Make(5000, 0.50, 42)) {
		t.Fatalf("same seed should reproduce sequence")
	}
	if bytes.Equal(a, Make(5000, 0.50, 43)) {
		t.Fatalf("different seed unexpectedly produced identical sequence")
	}
}

func TestMake_GCClamp(t *testing.T) {
	if len(Make(0, 0.5, 1)) != 0 {
		t.Fatalf("length zero should return empty slice")
	}
	if g := gcFrac(Make(100, -0.1, 1)); g != 0 {
		t.Fatalf("gc clamp low failed: got %.3f", g)
	}
	if g := gcFrac(Make(100, 1.5, 1)); g != 1 {
		t.Fatalf("gc clamp high failed: got %.3f", g)
	}
}

func TestReads_PlantEveryRead(t *testing.T) {
	rs, err := Reads(Options{Reads: 200, Length: 40, GC: 0.5, Plant: []string{"TGGGAA"}, PlantRate: 1, Seed: 9})
	require.NoError(t, err)
	require.Len(t, rs, 200)
	rc := nt.ReverseComplement("TGGGAA")
	for _, r := range rs {
		s := string(r.Seq)
		assert.Len(t, s, 40)
		assert.True(t, strings.Contains(s, "TGGGAA") || strings.Contains(s, rc), "read %s lacks motif: %s", r.Name, s)
	}
}

func TestReads_NRateAndJitter(t *testing.T) {
	rs, err := Reads(Options{Reads: 100, Length: 30, Jitter: 5, NRate: 1, Seed: 3})
	require.NoError(t, err)
	for _, r := range rs {
		assert.Equal(t, 1, bytes.Count(r.Seq, []byte("N")))
		assert.GreaterOrEqual(t, len(r.Seq), 25)
		assert.LessOrEqual(t, len(r.Seq), 35)
	}
}

func TestReads_Invalid(t *testing.T) {
	_, err := Reads(Options{Reads: 1, Length: 10, Plant: []string{"ACNG"}})
	assert.ErrorIs(t, err, nt.ErrInvalidMotif)
	_, err = Reads(Options{Reads: 1, Length: 10, Jitter: 11})
	assert.Error(t, err)
}
