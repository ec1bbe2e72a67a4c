package scene

import (
	"math"

	"github.com/cbellone/pathtrace/pkg/core"
)

// Camera is a pinhole camera defined by an explicit basis (no look-at
// derivation): a position and three direction vectors, plus a horizontal
// field of view. Right/Up/Forward need not be unit length or orthogonal —
// they're used exactly as loaded, matching scene-file authoring.
type Camera struct {
	Pos                core.Vec3
	Right, Up, Forward core.Vec3
	FovX               float64
	Width, Height      int
}

// Ray returns the camera ray through continuous pixel coordinates (x, y);
// callers jitter x/y within the pixel for antialiasing.
func (c Camera) Ray(x, y float64) core.Ray {
	tanFovX := math.Tan(c.FovX / 2)
	tanFovY := tanFovX * float64(c.Height) / float64(c.Width)

	nx := (2*x/float64(c.Width) - 1) * tanFovX
	ny := -(2*y/float64(c.Height) - 1) * tanFovY

	dir := c.Right.Multiply(nx).Add(c.Up.Multiply(ny)).Add(c.Forward)
	return core.Ray{Origin: c.Pos, Direction: dir}
}
