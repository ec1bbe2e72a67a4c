package core

import "math/rand"

// Sampler abstracts the source of randomness used for Monte Carlo
// estimation, so that renders can be reproduced from a fixed seed.
type Sampler interface {
	// Get1D returns a uniform random float64 in [0, 1).
	Get1D() float64
	// Get2D returns two independent uniform samples in [0, 1).
	Get2D() Vec2
	// Get3D returns three independent uniform samples in [0, 1).
	Get3D() Vec3
}

// RandomSampler is a Sampler backed by math/rand.
type RandomSampler struct {
	rng *rand.Rand
}

// NewRandomSampler wraps an existing *rand.Rand as a Sampler.
func NewRandomSampler(rng *rand.Rand) *RandomSampler {
	return &RandomSampler{rng: rng}
}

// NewSeededSampler creates a Sampler deterministically seeded from seed,
// so the same pixel always draws the same sequence of samples.
func NewSeededSampler(seed int64) *RandomSampler {
	return &RandomSampler{rng: rand.New(rand.NewSource(seed))}
}

func (s *RandomSampler) Get1D() float64 {
	return s.rng.Float64()
}

func (s *RandomSampler) Get2D() Vec2 {
	return Vec2{X: s.rng.Float64(), Y: s.rng.Float64()}
}

func (s *RandomSampler) Get3D() Vec3 {
	return Vec3{X: s.rng.Float64(), Y: s.rng.Float64(), Z: s.rng.Float64()}
}
