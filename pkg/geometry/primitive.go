// Package geometry implements analytic ray/primitive intersection for the
// shapes a scene file can describe: planes, boxes, ellipsoids and
// triangles.
package geometry

import (
	"math"

	"github.com/cbellone/pathtrace/pkg/core"
)

// Shape identifies which analytic intersector a Primitive dispatches to.
type Shape int

const (
	ShapePlane Shape = iota
	ShapeBox
	ShapeEllipsoid
	ShapeTriangle
)

// Material identifies the shading model attached to a Primitive.
type Material int

const (
	MaterialDiffuse Material = iota
	MaterialMetallic
	MaterialDielectric
)

// planeFarFieldCull discards plane hits beyond this distance, treating the
// plane as effectively infinite background rather than a bounded shape —
// this is also why planes are excluded from the BVH and finite-world
// bounds calculations.
const planeFarFieldCull = 1e5

// Primitive is a tagged union over the four supported shapes. Rather than
// a polymorphic interface per shape, all payload fields live inline and
// Intersect dispatches on Shape — every primitive, regardless of kind,
// carries a pose (Pos, Rot) applied by rotating into local space before
// the analytic test and rotating the resulting normal back out.
type Primitive struct {
	Shape    Shape
	Material Material

	Pos core.Vec3
	Rot core.Quaternion

	Color    core.Vec3
	Emission core.Vec3
	IOR      float64

	// A holds the plane normal, the box half-extents, or the ellipsoid
	// radii, depending on Shape. For triangles A, B, C are the three
	// local-space vertices.
	A, B, C core.Vec3
}

// NewPlane creates a plane primitive with unit normal n (in local space).
func NewPlane(pos core.Vec3, rot core.Quaternion, n core.Vec3, mat Material, color, emission core.Vec3) Primitive {
	return Primitive{Shape: ShapePlane, Material: mat, Pos: pos, Rot: rot, Color: color, Emission: emission, A: n}
}

// NewBox creates a box primitive with local half-extents s.
func NewBox(pos core.Vec3, rot core.Quaternion, s core.Vec3, mat Material, color, emission core.Vec3) Primitive {
	return Primitive{Shape: ShapeBox, Material: mat, Pos: pos, Rot: rot, Color: color, Emission: emission, A: s}
}

// NewEllipsoid creates an ellipsoid primitive with local radii r.
func NewEllipsoid(pos core.Vec3, rot core.Quaternion, r core.Vec3, mat Material, color, emission core.Vec3) Primitive {
	return Primitive{Shape: ShapeEllipsoid, Material: mat, Pos: pos, Rot: rot, Color: color, Emission: emission, A: r}
}

// NewTriangle creates a triangle primitive from three local-space vertices.
func NewTriangle(pos core.Vec3, rot core.Quaternion, a, b, c core.Vec3, mat Material, color, emission core.Vec3) Primitive {
	return Primitive{Shape: ShapeTriangle, Material: mat, Pos: pos, Rot: rot, Color: color, Emission: emission, A: a, B: b, C: c}
}

// Intersection describes where and how a ray met a primitive.
type Intersection struct {
	T        float64
	Normal   core.Vec3 // unit, world space
	Interior bool      // true when the ray leaves a box/ellipsoid from inside, or meets a plane/triangle from behind its normal
}

// Intersect transforms ray into the primitive's local frame, dispatches to
// the shape-specific analytic test, and rotates the resulting normal back
// into world space.
func (p Primitive) Intersect(ray core.Ray) (Intersection, bool) {
	local := core.Ray{
		Origin:    ray.Origin.Subtract(p.Pos),
		Direction: ray.Direction,
	}
	local = p.Rot.Conjugate().RotateRay(local)

	var isec Intersection
	var ok bool
	switch p.Shape {
	case ShapePlane:
		isec, ok = intersectPlane(local, p.A)
	case ShapeBox:
		isec, ok = intersectBox(local, p.A)
	case ShapeEllipsoid:
		isec, ok = intersectEllipsoid(local, p.A)
	case ShapeTriangle:
		isec, ok = intersectTriangle(local, p.A, p.B, p.C)
	}
	if !ok {
		return Intersection{}, false
	}
	isec.Normal = p.Rot.Rotate(isec.Normal)
	return isec, true
}

// IsFinite reports whether the primitive has bounded extent. Planes are
// treated as unbounded background geometry: excluded from the BVH and
// from finite-scene-radius calculations, intersected by linear scan instead.
func (p Primitive) IsFinite() bool {
	return p.Shape != ShapePlane
}

// LocalCorners returns the 8 (box/ellipsoid, via half-extent envelope) or
// 3 (triangle) points that bound the primitive in local space, for AABB
// construction. Planes have no finite extent and are excluded by callers.
func (p Primitive) LocalCorners() []core.Vec3 {
	switch p.Shape {
	case ShapeBox, ShapeEllipsoid:
		s := p.A
		corners := make([]core.Vec3, 0, 8)
		for mask := 0; mask < 8; mask++ {
			c := core.Vec3{X: -s.X, Y: -s.Y, Z: -s.Z}
			if mask&1 != 0 {
				c.X = s.X
			}
			if mask&2 != 0 {
				c.Y = s.Y
			}
			if mask&4 != 0 {
				c.Z = s.Z
			}
			corners = append(corners, c)
		}
		return corners
	case ShapeTriangle:
		return []core.Vec3{p.A, p.B, p.C}
	default:
		return nil
	}
}

// BoundingBox returns the world-space AABB of the primitive, by rotating
// and translating its local-space corner envelope. Meaningless for a
// plane (LocalCorners returns none) — callers must check IsFinite first.
func (p Primitive) BoundingBox() core.AABB {
	return core.FromLocalCorners(p.Rot, p.Pos, p.LocalCorners())
}

// intersectPlane tests a ray against a plane through the local origin with
// unit normal n. Hits beyond planeFarFieldCull are discarded as
// effectively at infinity.
func intersectPlane(ray core.Ray, n core.Vec3) (Intersection, bool) {
	denom := ray.Direction.Dot(n)
	t := -ray.Origin.Dot(n) / denom
	if t > planeFarFieldCull || t <= 0 {
		return Intersection{}, false
	}
	if denom >= 0 {
		// ray direction and normal point the same way: we're inside.
		return Intersection{T: t, Normal: n.Negate(), Interior: true}, true
	}
	return Intersection{T: t, Normal: n, Interior: false}, true
}

// intersectBox is the classic slab test against a box centered at the
// local origin with half-extents s.
func intersectBox(ray core.Ray, s core.Vec3) (Intersection, bool) {
	invX, invY, invZ := 1/ray.Direction.X, 1/ray.Direction.Y, 1/ray.Direction.Z

	t1x, t2x := (-s.X-ray.Origin.X)*invX, (s.X-ray.Origin.X)*invX
	t1y, t2y := (-s.Y-ray.Origin.Y)*invY, (s.Y-ray.Origin.Y)*invY
	t1z, t2z := (-s.Z-ray.Origin.Z)*invZ, (s.Z-ray.Origin.Z)*invZ
	if t1x > t2x {
		t1x, t2x = t2x, t1x
	}
	if t1y > t2y {
		t1y, t2y = t2y, t1y
	}
	if t1z > t2z {
		t1z, t2z = t2z, t1z
	}

	t1 := math.Max(math.Max(t1x, t1y), t1z)
	t2 := math.Min(math.Min(t2x, t2y), t2z)
	if t1 > t2 || t2 < 0 {
		return Intersection{}, false
	}

	interior := t1 < 0
	t := t1
	if interior {
		t = t2
	}

	p := ray.At(t)
	normal := core.Vec3{X: p.X / s.X, Y: p.Y / s.Y, Z: p.Z / s.Z}
	if interior {
		normal = normal.Negate()
	}

	ax, ay, az := math.Abs(normal.X), math.Abs(normal.Y), math.Abs(normal.Z)
	mx := math.Max(math.Max(ax, ay), az)
	if ax != mx {
		normal.X = 0
	}
	if ay != mx {
		normal.Y = 0
	}
	if az != mx {
		normal.Z = 0
	}
	normal = normal.Normalize()

	return Intersection{T: t, Normal: normal, Interior: interior}, true
}

// intersectEllipsoid solves the quadratic for a ray against an ellipsoid
// centered at the local origin with radii r.
func intersectEllipsoid(ray core.Ray, r core.Vec3) (Intersection, bool) {
	dOverR := core.Vec3{X: ray.Direction.X / r.X, Y: ray.Direction.Y / r.Y, Z: ray.Direction.Z / r.Z}
	oOverR := core.Vec3{X: ray.Origin.X / r.X, Y: ray.Origin.Y / r.Y, Z: ray.Origin.Z / r.Z}

	a := dOverR.Dot(dOverR)
	b := 2 * oOverR.Dot(dOverR)
	c := oOverR.Dot(oOverR) - 1

	d := b*b - 4*a*c
	if d <= 0 {
		return Intersection{}, false
	}

	sq := math.Sqrt(d)
	x1 := (-b - sq) / (2 * a)
	x2 := (-b + sq) / (2 * a)
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	if x2 < 0 {
		return Intersection{}, false
	}

	interior := x1 < 0
	t := x1
	if interior {
		t = x2
	}

	p := ray.At(t)
	normal := core.Vec3{X: p.X / (r.X * r.X), Y: p.Y / (r.Y * r.Y), Z: p.Z / (r.Z * r.Z)}.Normalize()
	if interior {
		normal = normal.Negate()
	}

	return Intersection{T: t, Normal: normal, Interior: interior}, true
}

// intersectTriangle intersects the plane through a, b, c and then checks
// the hit point lies on the correct side of all three edges, via
// same-sign cross products (the usual barycentric sign test, done without
// forming barycentric coordinates).
func intersectTriangle(ray core.Ray, a, b, c core.Vec3) (Intersection, bool) {
	n := b.Subtract(a).Cross(c.Subtract(a)).Normalize()

	// intersectPlane tests a plane through the local origin, so shift the
	// ray into a frame centered on vertex a before testing.
	shifted := core.Ray{Origin: ray.Origin.Subtract(a), Direction: ray.Direction}
	isec, ok := intersectPlane(shifted, n)
	if !ok {
		return Intersection{}, false
	}

	p := ray.At(isec.T)
	goodOrient := func(u, v core.Vec3) bool {
		return u.Cross(v).Dot(n) > 0
	}
	if !goodOrient(b.Subtract(a), p.Subtract(a)) ||
		!goodOrient(p.Subtract(a), c.Subtract(a)) ||
		!goodOrient(c.Subtract(b), p.Subtract(b)) {
		return Intersection{}, false
	}
	return isec, true
}
