package integrator

import (
	"testing"

	"github.com/cbellone/pathtrace/pkg/core"
	"github.com/cbellone/pathtrace/pkg/geometry"
	"github.com/cbellone/pathtrace/pkg/scene"
	"github.com/stretchr/testify/assert"
)

func TestTraceZeroDepthReturnsBlack(t *testing.T) {
	sc := &scene.Scene{}
	sc.Init()
	ray := core.Ray{Origin: core.Vec3{}, Direction: core.Vec3{X: 0, Y: 0, Z: 1}}

	got := Trace(sc, ray, core.NewSeededSampler(1), 0)
	assert.Equal(t, core.Vec3{}, got)
}

func TestTraceMissReturnsBackground(t *testing.T) {
	sc := &scene.Scene{Background: core.Vec3{X: 0.2, Y: 0.3, Z: 0.4}}
	sc.Init()
	ray := core.Ray{Origin: core.Vec3{}, Direction: core.Vec3{X: 0, Y: 0, Z: 1}}

	got := Trace(sc, ray, core.NewSeededSampler(1), 4)
	assert.True(t, got.Equals(sc.Background))
}

func TestTraceEmissiveSurfaceIncludesEmission(t *testing.T) {
	sc := &scene.Scene{
		Primitives: []geometry.Primitive{
			geometry.NewBox(core.Vec3{X: 0, Y: 0, Z: 5}, core.Identity(), core.Vec3{X: 1, Y: 1, Z: 1},
				geometry.MaterialDiffuse, core.Vec3{}, core.Vec3{X: 3, Y: 3, Z: 3}),
		},
	}
	sc.Init()
	ray := core.Ray{Origin: core.Vec3{}, Direction: core.Vec3{X: 0, Y: 0, Z: 1}}

	got := Trace(sc, ray, core.NewSeededSampler(1), 1)
	assert.GreaterOrEqual(t, got.X, 3.0)
}

func TestTraceMetallicReflectsTowardBackground(t *testing.T) {
	sc := &scene.Scene{Background: core.Vec3{X: 1, Y: 1, Z: 1}}
	sc.Init()
	sc.Primitives = []geometry.Primitive{
		geometry.NewPlane(core.Vec3{}, core.Identity(), core.Vec3{X: 0, Y: 1, Z: 0},
			geometry.MaterialMetallic, core.Vec3{X: 0.8, Y: 0.8, Z: 0.8}, core.Vec3{}),
	}
	sc.Init()

	ray := core.Ray{Origin: core.Vec3{X: 0, Y: 5, Z: 0}, Direction: core.Vec3{X: 0, Y: -1, Z: 0}}
	got := Trace(sc, ray, core.NewSeededSampler(1), 2)

	// a mirror facing straight up reflects the downward ray straight back
	// up into the background, tinted by the material color.
	assert.InDelta(t, 0.8, got.X, 1e-9)
}

func TestReflectAboutNormal(t *testing.T) {
	n := core.Vec3{X: 0, Y: 1, Z: 0}
	d := core.Vec3{X: 1, Y: -1, Z: 0}.Normalize()
	r := reflect(n, d)
	assert.InDelta(t, d.X, r.X, 1e-9)
	assert.InDelta(t, -d.Y, r.Y, 1e-9)
}
