package randstate

import (
	"math"
	"math/rand/v2"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestNewDeterminism(t *testing.T) {
	a := New(42).NormalMatrix(10, 5)
	b := New(42).NormalMatrix(10, 5)

	if !mat.Equal(a, b) {
		t.Error("equal seeds should produce identical normal matrices")
	}

	u1 := New(42).UniformMatrix(4, 6, 0, 2*math.Pi)
	u2 := New(42).UniformMatrix(4, 6, 0, 2*math.Pi)

	if !mat.Equal(u1, u2) {
		t.Error("equal seeds should produce identical uniform matrices")
	}
}

func TestDistinctSeeds(t *testing.T) {
	a := New(1).NormalMatrix(10, 5)
	b := New(2).NormalMatrix(10, 5)

	if mat.Equal(a, b) {
		t.Error("distinct seeds should produce different draws")
	}
}

func TestNegativeSeedUsable(t *testing.T) {
	// A negative seed is time-seeded; only check that draws are well-formed.
	s := New(-1)
	m := s.NormalMatrix(3, 3)

	r, c := m.Dims()
	if r != 3 || c != 3 {
		t.Fatalf("expected 3x3 matrix, got %dx%d", r, c)
	}
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if math.IsNaN(m.At(i, j)) || math.IsInf(m.At(i, j), 0) {
				t.Errorf("draw at (%d,%d) is not finite: %v", i, j, m.At(i, j))
			}
		}
	}
}

func TestFromSource(t *testing.T) {
	// New(seed) seeds a PCG with (seed, seed), so wrapping the same PCG
	// directly must reproduce the stream.
	a := FromSource(rand.NewPCG(7, 7)).NormalMatrix(5, 5)
	b := New(7).NormalMatrix(5, 5)

	if !mat.Equal(a, b) {
		t.Error("FromSource should honor the provided source")
	}
}

func TestUniformMatrixRange(t *testing.T) {
	low, high := 0.0, 2*math.Pi
	m := New(0).UniformMatrix(20, 10, low, high)

	r, c := m.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v := m.At(i, j)
			if v < low || v >= high {
				t.Errorf("draw %v at (%d,%d) outside [%v, %v)", v, i, j, low, high)
			}
		}
	}
}

func TestUniformSlice(t *testing.T) {
	vals := New(3).UniformSlice(100, 0, 1)

	if len(vals) != 100 {
		t.Fatalf("expected 100 draws, got %d", len(vals))
	}
	for i, v := range vals {
		if v < 0 || v >= 1 {
			t.Errorf("draw %v at index %d outside [0, 1)", v, i)
		}
	}
}
