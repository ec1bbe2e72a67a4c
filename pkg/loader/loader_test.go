package loader

import (
	"bytes"
	"strings"
	"testing"

	"github.com/cbellone/pathtrace/pkg/core"
	"github.com/cbellone/pathtrace/pkg/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleScene = `
DIMENSIONS 64 48
BG_COLOR 0.1 0.1 0.1
CAMERA_POSITION 0 0 0
CAMERA_RIGHT 1 0 0
CAMERA_UP 0 1 0
CAMERA_FORWARD 0 0 1
CAMERA_FOV_X 1.0472
RAY_DEPTH 4
SAMPLES 8

NEW_PRIMITIVE
BOX 1 1 1
POSITION 0 0 5
ROTATION 0 0 0 1
COLOR 0.8 0.2 0.2
EMISSION 2 2 2

NEW_PRIMITIVE
PLANE 0 1 0
POSITION 0 -1 0
ROTATION 0 0 0 1
METALLIC
COLOR 0.5 0.5 0.5
`

func TestLoadParsesGlobalsAndPrimitives(t *testing.T) {
	l := New(core.NewLoggerTo(&bytes.Buffer{}))
	sc, err := l.Load(strings.NewReader(sampleScene))
	require.NoError(t, err)

	assert.Equal(t, 64, sc.Camera.Width)
	assert.Equal(t, 48, sc.Camera.Height)
	assert.InDelta(t, 1.0472, sc.Camera.FovX, 1e-6)
	assert.Equal(t, 4, sc.RayDepth)
	assert.Equal(t, 8, sc.Samples)
	require.Len(t, sc.Primitives, 2)

	box := sc.Primitives[0]
	assert.Equal(t, geometry.ShapeBox, box.Shape)
	assert.True(t, box.Pos.Equals(core.Vec3{X: 0, Y: 0, Z: 5}))
	assert.True(t, box.Emission.Equals(core.Vec3{X: 2, Y: 2, Z: 2}))

	plane := sc.Primitives[1]
	assert.Equal(t, geometry.ShapePlane, plane.Shape)
	assert.Equal(t, geometry.MaterialMetallic, plane.Material)
}

func TestLoadRedispatchesBlockTerminatingCommand(t *testing.T) {
	scene := `DIMENSIONS 4 4
NEW_PRIMITIVE
BOX 1 1 1
NEW_PRIMITIVE
ELLIPSOID 1 1 1
`
	l := New(core.NewLoggerTo(&bytes.Buffer{}))
	sc, err := l.Load(strings.NewReader(scene))
	require.NoError(t, err)
	require.Len(t, sc.Primitives, 2)
	assert.Equal(t, geometry.ShapeBox, sc.Primitives[0].Shape)
	assert.Equal(t, geometry.ShapeEllipsoid, sc.Primitives[1].Shape)
}

func TestLoadSkipsMalformedCommandButContinues(t *testing.T) {
	scene := `DIMENSIONS notanumber 4
SAMPLES 16
`
	var logged bytes.Buffer
	l := New(core.NewLoggerTo(&logged))
	sc, err := l.Load(strings.NewReader(scene))
	require.NoError(t, err)
	assert.Equal(t, 16, sc.Samples)
	assert.Contains(t, logged.String(), "DIMENSIONS")
}

func TestLoadDefaultsAreZeroNotSilentlyFilledIn(t *testing.T) {
	l := New(core.NewLoggerTo(&bytes.Buffer{}))
	sc, err := l.Load(strings.NewReader("DIMENSIONS 4 4\n"))
	require.NoError(t, err)
	assert.Equal(t, 0, sc.RayDepth)
	assert.Equal(t, 0, sc.Samples)
}
