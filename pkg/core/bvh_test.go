package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unitBoxAt(center Vec3) AABB {
	return NewAABB(center.Subtract(Vec3{X: 0.5, Y: 0.5, Z: 0.5}), center.Add(Vec3{X: 0.5, Y: 0.5, Z: 0.5}))
}

func TestBuildBVHSingleLeaf(t *testing.T) {
	boxes := []AABB{unitBoxAt(Vec3{})}
	bvh := BuildBVH(boxes)

	ray := Ray{Origin: Vec3{X: -5, Y: 0, Z: 0}, Direction: Vec3{X: 1, Y: 0, Z: 0}}
	idx, _, ok := bvh.ClosestHit(ray, 1e-6, 1e8, func(i int, ray Ray, tMin, closest float64) (float64, bool) {
		return 5, true
	})
	require.True(t, ok)
	assert.Equal(t, 0, idx)
}

func TestBuildBVHFindsClosestOfMany(t *testing.T) {
	boxes := []AABB{
		unitBoxAt(Vec3{X: 10, Y: 0, Z: 0}),
		unitBoxAt(Vec3{X: 5, Y: 0, Z: 0}),
		unitBoxAt(Vec3{X: 20, Y: 0, Z: 0}),
	}
	bvh := BuildBVH(boxes)

	ray := Ray{Origin: Vec3{X: -5, Y: 0, Z: 0}, Direction: Vec3{X: 1, Y: 0, Z: 0}}
	idx, t0, ok := bvh.ClosestHit(ray, 1e-6, 1e8, func(i int, ray Ray, tMin, closest float64) (float64, bool) {
		box := boxes[i]
		if !box.Hit(ray, tMin, closest) {
			return 0, false
		}
		return box.Center().X - ray.Origin.X, true
	})
	require.True(t, ok)
	assert.Equal(t, 1, idx) // the box at x=5 is closest
	assert.InDelta(t, 10, t0, 1e-9)
}

func TestBuildBVHNoHit(t *testing.T) {
	boxes := []AABB{unitBoxAt(Vec3{X: 10, Y: 10, Z: 10})}
	bvh := BuildBVH(boxes)

	ray := Ray{Origin: Vec3{}, Direction: Vec3{X: 1, Y: 0, Z: 0}}
	_, _, ok := bvh.ClosestHit(ray, 1e-6, 1e8, func(i int, ray Ray, tMin, closest float64) (float64, bool) {
		return 0, false
	})
	assert.False(t, ok)
}
