// Package scene assembles loaded primitives into a renderable scene: a
// camera, a background color, the SAH BVH over finite primitives, and the
// mixture distribution used to importance-sample diffuse bounces toward
// emissive geometry.
package scene

import (
	"math"

	"github.com/cbellone/pathtrace/pkg/core"
	"github.com/cbellone/pathtrace/pkg/geometry"
	"github.com/cbellone/pathtrace/pkg/sampling"
)

// Scene holds everything integrator.Trace needs once a scene file is loaded: the
// camera, render parameters, and the geometry in a form ready for
// traversal.
type Scene struct {
	Camera     Camera
	Background core.Vec3
	RayDepth   int
	Samples    int

	Primitives []geometry.Primitive
	Mixture    *sampling.Mixture

	bvh      *core.BVH
	bvhBoxes []core.AABB
	finite   []int // indices into Primitives covered by bvh, in original order
	planes   []int // indices into Primitives skipped by the BVH
}

// Init partitions primitives into finite shapes (indexed by the BVH) and
// planes (intersected by linear scan in Intersect), builds the
// BVH, and collects every emissive box/ellipsoid into the mixture
// distribution. Must be called once after Primitives is fully populated.
func (s *Scene) Init() {
	s.finite = s.finite[:0]
	s.planes = s.planes[:0]
	for i, p := range s.Primitives {
		if p.IsFinite() {
			s.finite = append(s.finite, i)
		} else {
			s.planes = append(s.planes, i)
		}
	}

	boxes := make([]core.AABB, len(s.finite))
	for i, idx := range s.finite {
		boxes[i] = s.Primitives[idx].BoundingBox()
	}
	s.bvhBoxes = boxes
	s.bvh = core.BuildBVH(boxes)

	var lights []sampling.Distribution
	for _, p := range s.Primitives {
		if p.Emission.X <= 0 && p.Emission.Y <= 0 && p.Emission.Z <= 0 {
			continue
		}
		switch p.Shape {
		case geometry.ShapeBox:
			lights = append(lights, sampling.NewBoxLight(p))
		case geometry.ShapeEllipsoid:
			lights = append(lights, sampling.NewEllipsoidLight(p))
		}
	}
	s.Mixture = sampling.NewMixture(lights)
}

// HitResult is the outcome of intersecting a ray against the whole scene.
type HitResult struct {
	geometry.Intersection
	PrimitiveIndex int
}

// Intersect finds the closest primitive the ray hits, merging a linear
// scan over planes with a BVH traversal over everything else, exactly as
// the two are combined by smaller t.
func (s *Scene) Intersect(ray core.Ray) (HitResult, bool) {
	closest := math.MaxFloat64
	var best HitResult
	found := false

	for _, idx := range s.planes {
		if isec, ok := s.Primitives[idx].Intersect(ray); ok && isec.T < closest {
			closest = isec.T
			best = HitResult{Intersection: isec, PrimitiveIndex: idx}
			found = true
		}
	}

	if s.bvh != nil {
		bvhIdx, t, ok := s.bvh.ClosestHit(ray, 1e-8, closest, func(i int, ray core.Ray, tMin, curClosest float64) (float64, bool) {
			origIdx := s.finite[i]
			isec, hit := s.Primitives[origIdx].Intersect(ray)
			if !hit || isec.T >= curClosest {
				return 0, false
			}
			return isec.T, true
		})
		if ok && t < closest {
			origIdx := s.finite[bvhIdx]
			isec, _ := s.Primitives[origIdx].Intersect(ray)
			best = HitResult{Intersection: isec, PrimitiveIndex: origIdx}
			found = true
		}
	}

	return best, found
}
