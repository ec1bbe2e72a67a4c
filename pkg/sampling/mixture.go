package sampling

import "github.com/cbellone/pathtrace/pkg/core"

// Mixture combines the cosine-hemisphere distribution with a flat list of
// per-light surface distributions (box or ellipsoid), split 50/50: half
// the time it samples cosine-weighted, half the time it samples uniformly
// from the light list. This is the single distribution diffuse materials
// scatter through.
type Mixture struct {
	Lights []Distribution
}

// NewMixture builds a mixture over the given emissive surface samplers.
// An empty light list degenerates to pure cosine sampling.
func NewMixture(lights []Distribution) *Mixture {
	return &Mixture{Lights: lights}
}

func (m *Mixture) Sample(sampler core.Sampler, x, n core.Vec3) core.Vec3 {
	if len(m.Lights) == 0 || sampler.Get1D() <= 0.5 {
		return Cosine{}.Sample(sampler, x, n)
	}

	id := int(sampler.Get1D() * float64(len(m.Lights)))
	if id >= len(m.Lights) {
		id = len(m.Lights) - 1
	}
	return m.Lights[id].Sample(sampler, x, n)
}

func (m *Mixture) PDF(x, n, d core.Vec3) float64 {
	sum := Cosine{}.PDF(x, n, d)
	if len(m.Lights) == 0 {
		return sum
	}

	var lightSum float64
	for _, l := range m.Lights {
		lightSum += l.PDF(x, n, d)
	}
	lightSum /= float64(len(m.Lights))

	return 0.5*sum + 0.5*lightSum
}
