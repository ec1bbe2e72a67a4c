package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVec3Arithmetic(t *testing.T) {
	a := Vec3{X: 1, Y: 2, Z: 3}
	b := Vec3{X: 4, Y: 5, Z: 6}

	assert.Equal(t, Vec3{X: 5, Y: 7, Z: 9}, a.Add(b))
	assert.Equal(t, Vec3{X: -3, Y: -3, Z: -3}, a.Subtract(b))
	assert.Equal(t, Vec3{X: 2, Y: 4, Z: 6}, a.Multiply(2))
	assert.Equal(t, Vec3{X: 4, Y: 10, Z: 18}, a.MultiplyVec(b))
	assert.InDelta(t, 32, a.Dot(b), 1e-9)
}

func TestVec3Normalize(t *testing.T) {
	v := Vec3{X: 3, Y: 4, Z: 0}
	n := v.Normalize()
	assert.InDelta(t, 1, n.Length(), 1e-9)

	assert.Equal(t, Vec3{}, Vec3{}.Normalize())
}

func TestVec3Cross(t *testing.T) {
	x := Vec3{X: 1, Y: 0, Z: 0}
	y := Vec3{X: 0, Y: 1, Z: 0}
	assert.True(t, x.Cross(y).Equals(Vec3{X: 0, Y: 0, Z: 1}))
}

func TestVec3GammaCorrect(t *testing.T) {
	c := Vec3{X: 1, Y: 1, Z: 1}
	assert.True(t, c.GammaCorrect(2.2).Equals(Vec3{X: 1, Y: 1, Z: 1}))
}

func TestRayAt(t *testing.T) {
	r := Ray{Origin: Vec3{X: 0, Y: 0, Z: 0}, Direction: Vec3{X: 1, Y: 0, Z: 0}}
	assert.True(t, r.At(3).Equals(Vec3{X: 3, Y: 0, Z: 0}))
}
