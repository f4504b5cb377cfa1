package noise

import "math/rand"

// Source draws one zero-mean, normally distributed sample per call.
// The machine model injects a Source instead of reaching for global
// randomness so that tests can supply deterministic sequences.
type Source interface {
	Normal(stddev float64) float64
}

// Resettable sources can rewind to the start of their stream, so a
// restarted simulation replays the exact trajectory of the first run.
type Resettable interface {
	Reset()
}

// Gaussian is a seeded pseudo-random source.
type Gaussian struct {
	seed int64
	rng  *rand.Rand
}

func NewGaussian(seed int64) *Gaussian {
	return &Gaussian{seed: seed, rng: rand.New(rand.NewSource(seed))}
}

func (g *Gaussian) Normal(stddev float64) float64 {
	return g.rng.NormFloat64() * stddev
}

// Reset rewinds the stream to its seed.
func (g *Gaussian) Reset() {
	g.rng = rand.New(rand.NewSource(g.seed))
}

// Zero never perturbs anything.
type Zero struct{}

func (Zero) Normal(float64) float64 { return 0 }

// Sequence replays a fixed list of standard-normal draws, scaled by the
// requested stddev. It wraps around when exhausted.
type Sequence struct {
	vals []float64
	i    int
}

func NewSequence(vals ...float64) *Sequence {
	return &Sequence{vals: vals}
}

func (s *Sequence) Normal(stddev float64) float64 {
	if len(s.vals) == 0 {
		return 0
	}
	v := s.vals[s.i%len(s.vals)]
	s.i++
	return v * stddev
}

// Reset rewinds to the first value.
func (s *Sequence) Reset() {
	s.i = 0
}
