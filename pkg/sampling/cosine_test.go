package sampling

import (
	"testing"

	"github.com/cbellone/pathtrace/pkg/core"
	"github.com/stretchr/testify/assert"
)

func TestCosineSampleStaysInHemisphere(t *testing.T) {
	sampler := core.NewSeededSampler(1)
	n := core.Vec3{X: 0, Y: 1, Z: 0}

	for i := 0; i < 200; i++ {
		dir := Cosine{}.Sample(sampler, core.Vec3{}, n)
		assert.InDelta(t, 1, dir.Length(), 1e-6)
		assert.True(t, dir.Dot(n) >= 0)
	}
}

func TestCosinePDFNonNegative(t *testing.T) {
	n := core.Vec3{X: 0, Y: 1, Z: 0}
	assert.InDelta(t, 1/3.141592653589793, Cosine{}.PDF(core.Vec3{}, n, n), 1e-9)
	assert.Equal(t, 0.0, Cosine{}.PDF(core.Vec3{}, n, n.Negate()))
}
