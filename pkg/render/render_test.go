package render

import (
	"bytes"
	"testing"

	"github.com/cbellone/pathtrace/pkg/core"
	"github.com/cbellone/pathtrace/pkg/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcesTonemapClampsToUnit(t *testing.T) {
	bright := acesTonemap(core.Vec3{X: 100, Y: 100, Z: 100})
	assert.LessOrEqual(t, bright.X, 1.0)
	assert.GreaterOrEqual(t, bright.X, 0.0)

	black := acesTonemap(core.Vec3{})
	assert.Equal(t, core.Vec3{}, black)
}

func TestGammaCorrectPreservesEndpoints(t *testing.T) {
	assert.True(t, gammaCorrect(core.Vec3{}).Equals(core.Vec3{}))
	assert.True(t, gammaCorrect(core.Vec3{X: 1, Y: 1, Z: 1}).Equals(core.Vec3{X: 1, Y: 1, Z: 1}))
}

func TestRenderWritesPPMHeader(t *testing.T) {
	sc := &scene.Scene{
		Camera:  scene.Camera{Width: 2, Height: 2, FovX: 1.0, Forward: core.Vec3{X: 0, Y: 0, Z: 1}, Right: core.Vec3{X: 1, Y: 0, Z: 0}, Up: core.Vec3{X: 0, Y: 1, Z: 0}},
		Samples: 1,
	}
	sc.Init()

	var buf bytes.Buffer
	err := Render(sc, &buf)
	require.NoError(t, err)

	out := buf.Bytes()
	assert.Equal(t, "P6\n2 2\n255\n", string(out[:11]))
	// header + 2*2 pixels * 3 bytes
	assert.Equal(t, 11+2*2*3, len(out))
}
