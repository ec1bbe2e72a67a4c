package sampling

import (
	"math"

	"github.com/cbellone/pathtrace/pkg/core"
)

const invPi = 1 / math.Pi

// cosineDegenerateEps guards the near-tangent case where n + noise nearly
// cancels out; below this dot-product the noise is discarded and n itself
// is returned as the sampled direction.
const cosineDegenerateEps = 1e-3

// Cosine draws directions over the hemisphere around a surface normal
// with density proportional to the cosine of the angle to the normal —
// the standard diffuse-bounce importance sampler.
type Cosine struct{}

// standardNormal3 draws three independent samples from a standard normal
// distribution via Box-Muller, from a Sampler's uniform draws.
func standardNormal3(sampler core.Sampler) core.Vec3 {
	u1 := sampler.Get3D()
	u2 := sampler.Get2D()

	r1 := math.Sqrt(-2 * math.Log(clampUnit(u1.X)))
	z0 := r1 * math.Cos(2*math.Pi*u1.Y)
	z1 := r1 * math.Sin(2*math.Pi*u1.Y)

	r2 := math.Sqrt(-2 * math.Log(clampUnit(u1.Z)))
	z2 := r2 * math.Cos(2*math.Pi*u2.X)

	return core.Vec3{X: z0, Y: z1, Z: z2}
}

func clampUnit(u float64) float64 {
	const eps = 1e-12
	if u < eps {
		return eps
	}
	return u
}

// Sample draws a uniformly random unit vector (a normalized isotropic
// Gaussian draw), adds n and renormalizes; a near-cancelling or too-short
// result falls back to n itself rather than risk a degenerate direction.
func (Cosine) Sample(sampler core.Sampler, x, n core.Vec3) core.Vec3 {
	dir := standardNormal3(sampler).Normalize().Add(n)

	if dir.Dot(n) <= cosineDegenerateEps {
		return n
	}
	if dir.Length() <= 1e-4 {
		// noise cancelled the normal almost exactly; fall back rather
		// than normalize a near-zero vector.
		return n
	}
	return dir.Normalize()
}

// PDF returns max(0, cos(theta)/pi).
func (Cosine) PDF(x, n, d core.Vec3) float64 {
	return math.Max(0, invPi*d.Dot(n))
}
