package sampling

import (
	"math"

	"github.com/cbellone/pathtrace/pkg/core"
	"github.com/cbellone/pathtrace/pkg/geometry"
)

// EllipsoidLight samples points uniformly in direction (isotropically)
// from the ellipsoid's center, mapped onto its surface by its radii —
// this is not a uniform-area sample either, but it is what PDF below is
// derived to match.
type EllipsoidLight struct {
	Prim geometry.Primitive
}

// NewEllipsoidLight wraps an ellipsoid primitive as a surface-sampling
// distribution.
func NewEllipsoidLight(p geometry.Primitive) *EllipsoidLight {
	return &EllipsoidLight{Prim: p}
}

// Sample draws an isotropic direction k, scales it by the ellipsoid's
// radii to land on its surface, and returns the direction from x toward
// that point — resampling if the resulting ray somehow misses the
// ellipsoid.
func (e *EllipsoidLight) Sample(sampler core.Sampler, x, n core.Vec3) core.Vec3 {
	r := e.Prim.A

	dir := n
	for attempt := 0; attempt < resampleLimit; attempt++ {
		k := standardNormal3(sampler).Normalize()
		pnt := core.Vec3{X: r.X * k.X, Y: r.Y * k.Y, Z: r.Z * k.Z}
		onEllipsoid := e.Prim.Rot.Rotate(pnt).Add(e.Prim.Pos)
		dir = onEllipsoid.Subtract(x).Normalize()

		if _, ok := e.Prim.Intersect(core.Ray{Origin: x, Direction: dir}); ok {
			return dir
		}
	}
	return dir
}

// pdfPoint maps the hit point y back into local space and divides by the
// radii, giving the unit-sphere point the sampler would have drawn, and
// uses it to weight the surface Jacobian; the cosine term uses the world
// normal returned by Intersect.
func (e *EllipsoidLight) pdfPoint(dist2 float64, y, normal, d core.Vec3) float64 {
	r := e.Prim.A
	local := e.Prim.Rot.Conjugate().Rotate(y.Subtract(e.Prim.Pos))
	n := core.Vec3{X: local.X / r.X, Y: local.Y / r.Y, Z: local.Z / r.Z}

	weighted := core.Vec3{X: n.X * r.Y * r.Z, Y: r.X * n.Y * r.Z, Z: r.X * r.Y * n.Z}
	pointDensity := 1.0 / (4 * math.Pi * weighted.Length())
	return pointDensity * dist2 / absf(d.Dot(normal))
}

// PDF sums the solid-angle density contributed by the (up to two) points
// where the ray from x in direction d meets the ellipsoid.
func (e *EllipsoidLight) PDF(x, n, d core.Vec3) float64 {
	return twoHitPDF(e.Prim, x, d, e.pdfPoint)
}
