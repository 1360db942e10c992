// Package randstate provides seeded random number generation for the samplers.
//
// It mirrors scikit-learn's check_random_state behavior: a non-negative seed
// yields a deterministic generator, a negative seed yields a time-seeded one,
// and callers may supply their own source directly.
package randstate

import (
	"math/rand/v2"
	"time"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// State is a source of random draws shaped for feature map construction.
// It is not safe for concurrent use.
type State struct {
	rng *rand.Rand
}

// New creates a State from an integer seed.
// A negative seed produces a time-seeded, non-reproducible State.
func New(seed int64) *State {
	if seed < 0 {
		seed = time.Now().UnixNano()
	}
	return &State{
		rng: rand.New(rand.NewPCG(uint64(seed), uint64(seed))),
	}
}

// FromSource wraps an existing random source.
// Draws consume the source directly, so two States sharing one source
// interleave their streams.
func FromSource(src rand.Source) *State {
	return &State{
		rng: rand.New(src),
	}
}

// NormalMatrix returns an r x c matrix of iid standard normal draws.
func (s *State) NormalMatrix(r, c int) *mat.Dense {
	dist := distuv.Normal{Mu: 0, Sigma: 1, Src: s.rng}

	data := make([]float64, r*c)
	for i := range data {
		data[i] = dist.Rand()
	}
	return mat.NewDense(r, c, data)
}

// UniformMatrix returns an r x c matrix of iid uniform draws in [low, high).
func (s *State) UniformMatrix(r, c int, low, high float64) *mat.Dense {
	dist := distuv.Uniform{Min: low, Max: high, Src: s.rng}

	data := make([]float64, r*c)
	for i := range data {
		data[i] = dist.Rand()
	}
	return mat.NewDense(r, c, data)
}

// UniformSlice returns n iid uniform draws in [low, high).
func (s *State) UniformSlice(n int, low, high float64) []float64 {
	dist := distuv.Uniform{Min: low, Max: high, Src: s.rng}

	data := make([]float64, n)
	for i := range data {
		data[i] = dist.Rand()
	}
	return data
}
