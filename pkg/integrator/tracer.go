// Package integrator implements the recursive Monte Carlo path-tracing
// estimator: one scattered ray per bounce, dispatched by material, with a
// fixed recursion depth rather than Russian roulette termination.
package integrator

import (
	"math"

	"github.com/cbellone/pathtrace/pkg/core"
	"github.com/cbellone/pathtrace/pkg/geometry"
	"github.com/cbellone/pathtrace/pkg/scene"
)

// offsetEps nudges a secondary ray's origin off the surface along the
// relevant direction so it doesn't immediately re-intersect the same
// point due to floating point error.
const offsetEps = 1e-4

// Trace estimates the radiance arriving at the camera along ray, up to
// depth bounces. depth == 0 contributes nothing (matching a fixed ray
// budget rather than unbounded recursion).
func Trace(sc *scene.Scene, ray core.Ray, sampler core.Sampler, depth int) core.Vec3 {
	if depth == 0 {
		return core.Vec3{}
	}

	hit, ok := sc.Intersect(ray)
	if !ok {
		return sc.Background
	}

	prim := sc.Primitives[hit.PrimitiveIndex]
	p := ray.At(hit.T)
	normal := hit.Normal

	var other core.Vec3
	switch prim.Material {
	case geometry.MaterialDiffuse:
		other = traceDiffuse(sc, sampler, prim, p, normal, depth)
	case geometry.MaterialMetallic:
		other = traceMetallic(sc, sampler, prim, ray, p, normal, depth)
	case geometry.MaterialDielectric:
		other = traceDielectric(sc, sampler, prim, ray, p, normal, hit.Interior, depth)
	}

	return prim.Emission.Add(other)
}

func reflect(normal, dir core.Vec3) core.Vec3 {
	return dir.Subtract(normal.Multiply(2 * normal.Dot(dir)))
}

func traceDiffuse(sc *scene.Scene, sampler core.Sampler, prim geometry.Primitive, p, normal core.Vec3, depth int) core.Vec3 {
	outer := p.Add(normal.Multiply(offsetEps))
	dir := sc.Mixture.Sample(sampler, outer, normal)

	if dir.Dot(normal) <= 0 {
		return core.Vec3{}
	}

	pw := sc.Mixture.PDF(outer, normal, dir)
	incoming := Trace(sc, core.Ray{Origin: p.Add(dir.Multiply(offsetEps)), Direction: dir}, sampler, depth-1)

	return prim.Color.Multiply(1 / math.Pi).MultiplyVec(incoming).Multiply(dir.Dot(normal) / pw)
}

func traceMetallic(sc *scene.Scene, sampler core.Sampler, prim geometry.Primitive, ray core.Ray, p, normal core.Vec3, depth int) core.Vec3 {
	dir := reflect(normal, ray.Direction.Normalize())
	incoming := Trace(sc, core.Ray{Origin: p.Add(dir.Multiply(offsetEps)), Direction: dir}, sampler, depth-1)
	return prim.Color.MultiplyVec(incoming)
}

func traceDielectric(sc *scene.Scene, sampler core.Sampler, prim geometry.Primitive, ray core.Ray, p, normal core.Vec3, interior bool, depth int) core.Vec3 {
	eta1, eta2 := 1.0, prim.IOR
	if interior {
		eta1, eta2 = eta2, eta1
	}

	dir := ray.Direction.Normalize().Negate()
	cosTheta1 := normal.Dot(dir)
	sinTheta2 := eta1 / eta2 * math.Sqrt(1-cosTheta1*cosTheta1)

	reflectBranch := func() core.Vec3 {
		reflectDir := reflect(normal, ray.Direction.Normalize())
		return Trace(sc, core.Ray{Origin: p.Add(reflectDir.Multiply(offsetEps)), Direction: reflectDir}, sampler, depth-1)
	}

	if math.Abs(sinTheta2) > 1 {
		// total internal reflection
		return reflectBranch()
	}

	r0 := math.Pow((eta1-eta2)/(eta1+eta2), 2)
	r := r0 + (1-r0)*math.Pow(1-cosTheta1, 5)

	if sampler.Get1D() < r {
		return reflectBranch()
	}

	cosTheta2 := math.Sqrt(1 - sinTheta2*sinTheta2)
	refractedDir := dir.Negate().Multiply(eta1 / eta2).Add(normal.Multiply(eta1/eta2*cosTheta1 - cosTheta2))
	refracted := Trace(sc, core.Ray{Origin: p.Add(refractedDir.Multiply(offsetEps)), Direction: refractedDir}, sampler, depth-1)

	if !interior {
		// tint only on entering the medium, not on exiting it.
		refracted = prim.Color.MultiplyVec(refracted)
	}
	return refracted
}
