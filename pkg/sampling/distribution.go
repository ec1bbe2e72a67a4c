// Package sampling implements the importance-sampling distributions the
// path tracer draws scattered and light-seeking directions from: a
// cosine-weighted hemisphere distribution used for every diffuse bounce,
// surface-sampling distributions over emissive box/ellipsoid primitives,
// and a 50/50 mixture of the two.
package sampling

import "github.com/cbellone/pathtrace/pkg/core"

// Distribution draws a direction from point x with surface normal n, and
// evaluates its own density for an arbitrary direction d.
type Distribution interface {
	Sample(sampler core.Sampler, x, n core.Vec3) core.Vec3
	PDF(x, n, d core.Vec3) float64
}
