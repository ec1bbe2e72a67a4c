package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeededSamplerIsDeterministic(t *testing.T) {
	a := NewSeededSampler(42)
	b := NewSeededSampler(42)

	for i := 0; i < 8; i++ {
		assert.Equal(t, a.Get1D(), b.Get1D())
	}
}

func TestSeededSamplerDiffersAcrossSeeds(t *testing.T) {
	a := NewSeededSampler(1)
	b := NewSeededSampler(2)
	assert.NotEqual(t, a.Get1D(), b.Get1D())
}

func TestSamplerRangesAreUnit(t *testing.T) {
	s := NewSeededSampler(7)
	for i := 0; i < 100; i++ {
		v := s.Get1D()
		assert.True(t, v >= 0 && v < 1)
		v2 := s.Get2D()
		assert.True(t, v2.X >= 0 && v2.X < 1 && v2.Y >= 0 && v2.Y < 1)
		v3 := s.Get3D()
		assert.True(t, v3.X >= 0 && v3.X < 1 && v3.Y >= 0 && v3.Y < 1 && v3.Z >= 0 && v3.Z < 1)
	}
}
