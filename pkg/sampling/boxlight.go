package sampling

import (
	"github.com/cbellone/pathtrace/pkg/core"
	"github.com/cbellone/pathtrace/pkg/geometry"
)

// resampleLimit bounds the reject-and-retry loop in Sample so a
// pathological configuration (light fully occluded from x by its own
// geometry) can't spin forever; it falls back to the last candidate.
const resampleLimit = 64

// BoxLight samples points uniformly over the faces of a box primitive,
// weighted by face — but the weight of the pair of faces normal to an
// axis is that axis's squared half-extent, not the true face area. This
// reproduces a known bias in the source material rather than correcting
// it. PDF uses the same weight total, with a per-point density of
// 1/(8*(wx+wy+wz)); that equals the density Sample actually produces only
// when each weight is proportional to its face area (e.g. for a cube).
type BoxLight struct {
	Prim geometry.Primitive
}

// NewBoxLight wraps a box primitive as a surface-sampling distribution.
func NewBoxLight(p geometry.Primitive) *BoxLight {
	return &BoxLight{Prim: p}
}

func (b *BoxLight) faceWeights() (wx, wy, wz float64) {
	s := b.Prim.A
	return s.X * s.X, s.Y * s.Y, s.Z * s.Z
}

// Sample picks a face weighted by faceWeights, a uniform point on that
// face, and returns the direction from x toward it. If the resulting ray
// doesn't actually hit the box (can happen near glancing angles), the
// draw is discarded and resampled.
func (b *BoxLight) Sample(sampler core.Sampler, x, n core.Vec3) core.Vec3 {
	s := b.Prim.A
	wx, wy, wz := b.faceWeights()

	dir := n
	for attempt := 0; attempt < resampleLimit; attempt++ {
		u := sampler.Get1D() * (wx + wy + wz)
		side := 1.0
		if sampler.Get1D() > 0.5 {
			side = -1.0
		}

		c := sampler.Get3D()
		pnt := core.Vec3{X: (2*c.X - 1) * s.X, Y: (2*c.Y - 1) * s.Y, Z: (2*c.Z - 1) * s.Z}
		switch {
		case u < wx:
			pnt.X = side * s.X
		case u < wx+wy:
			pnt.Y = side * s.Y
		default:
			pnt.Z = side * s.Z
		}

		onBox := b.Prim.Rot.Rotate(pnt).Add(b.Prim.Pos)
		dir = onBox.Subtract(x).Normalize()

		if _, ok := b.Prim.Intersect(core.Ray{Origin: x, Direction: dir}); ok {
			return dir
		}
	}
	return dir
}

func (b *BoxLight) pdfPoint(dist2 float64, point, normal, d core.Vec3) float64 {
	wx, wy, wz := b.faceWeights()
	pointDensity := 1.0 / (8 * (wx + wy + wz))
	return pointDensity * dist2 / absf(d.Dot(normal))
}

// PDF sums the solid-angle density contributed by every point where the
// ray from x in direction d meets the box — up to two, since a box is
// convex.
func (b *BoxLight) PDF(x, n, d core.Vec3) float64 {
	return twoHitPDF(b.Prim, x, d, b.pdfPoint)
}

func absf(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// secondHitEps offsets the second probe ray past the first hit point so
// it doesn't immediately re-intersect the same surface.
const secondHitEps = 1e-4

// twoHitPDF implements the shared "intersect twice along d" pattern used
// by both BoxLight and EllipsoidLight PDF evaluation: a convex primitive
// can be crossed by a ray at most twice, and both crossings contribute to
// the solid-angle PDF at x.
func twoHitPDF(prim geometry.Primitive, x, d core.Vec3, pdfPoint func(dist2 float64, point, normal, d core.Vec3) float64) float64 {
	isec1, ok := prim.Intersect(core.Ray{Origin: x, Direction: d})
	if !ok {
		return 1e-9
	}
	p1 := x.Add(d.Multiply(isec1.T))
	sum := pdfPoint(p1.Subtract(x).LengthSquared(), p1, isec1.Normal, d)

	inner := x.Add(d.Multiply(isec1.T + secondHitEps))
	if isec2, ok2 := prim.Intersect(core.Ray{Origin: inner, Direction: d}); ok2 {
		p2 := inner.Add(d.Multiply(isec2.T))
		sum += pdfPoint(p2.Subtract(x).LengthSquared(), p2, isec2.Normal, d)
	}
	return sum
}
