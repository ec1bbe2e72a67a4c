package core

import (
	"math"
	"sort"
)

// Bounded is anything a BVH can index: it must expose a world-space AABB.
// pkg/geometry's Primitive satisfies this via BoundingBox.
type Bounded interface {
	BoundingBox() AABB
}

// BVHNode is one node of a binary SAH BVH. Leaf nodes have no children and
// own a contiguous range [FirstPrimitive, FirstPrimitive+PrimitiveCount)
// of the index permutation built alongside the tree.
type BVHNode struct {
	Box            AABB
	Left, Right    int // -1 if absent
	FirstPrimitive int
	PrimitiveCount int
}

func (n BVHNode) isLeaf() bool {
	return n.Left < 0
}

// BVH is a surface-area-heuristic bounding volume hierarchy over a set of
// bounded items, referenced by index into the caller's backing slice via
// the Order permutation built during construction.
type BVH struct {
	nodes []BVHNode
	Order []int // permutation of original indices, grouped by leaf
	root  int
}

// BuildBVH constructs a SAH BVH over items (referenced by index). Items
// are reordered internally (the supplied boxes slice is not mutated); use
// bvh.Order to map a leaf's primitive range back to original indices.
//
// At each node, for each axis independently, items in the node are sorted
// by box-center position along that axis, and a sweep computes, for every
// candidate split point, the SAH cost: surface-area-of-prefix-box * count
// + surface-area-of-suffix-box * count. The globally cheapest split is
// taken if it beats the cost of leaving the node unsplit; otherwise the
// node becomes a leaf.
func BuildBVH(boxes []AABB) *BVH {
	b := &BVH{}
	order := make([]int, len(boxes))
	for i := range order {
		order[i] = i
	}
	b.Order = order
	b.root = b.build(boxes, order, 0, len(order))
	return b
}

func (b *BVH) build(boxes []AABB, order []int, first, last int) int {
	var box AABB
	box.Min = Vec3{X: math.MaxFloat64, Y: math.MaxFloat64, Z: math.MaxFloat64}
	box.Max = Vec3{X: -math.MaxFloat64, Y: -math.MaxFloat64, Z: -math.MaxFloat64}
	for i := first; i < last; i++ {
		box = box.Union(boxes[order[i]])
	}

	node := BVHNode{Box: box, Left: -1, Right: -1, FirstPrimitive: first, PrimitiveCount: last - first}
	pos := len(b.nodes)
	b.nodes = append(b.nodes, node)

	if last-first <= 1 {
		return pos
	}

	type axisResult struct {
		cost float64
		cut  int
	}
	var best [3]axisResult

	for axis := 0; axis < 3; axis++ {
		sub := order[first:last]
		sort.Slice(sub, func(i, j int) bool {
			return centerAxis(boxes[sub[i]], axis) < centerAxis(boxes[sub[j]], axis)
		})

		n := last - first
		cutCost := make([]float64, n)

		prefix := boxes[order[first]]
		for cut := 1; cut < n; cut++ {
			cutCost[cut] = prefix.SurfaceArea() * float64(cut)
			prefix = prefix.Union(boxes[order[first+cut]])
		}

		var suffix AABB
		suffix.Min = Vec3{X: math.MaxFloat64, Y: math.MaxFloat64, Z: math.MaxFloat64}
		suffix.Max = Vec3{X: -math.MaxFloat64, Y: -math.MaxFloat64, Z: -math.MaxFloat64}
		for cut := n - 1; cut > 0; cut-- {
			suffix = suffix.Union(boxes[order[first+cut]])
			cutCost[cut] += suffix.SurfaceArea() * float64(n-cut)
		}

		bestCost := math.Inf(1)
		bestCut := 0
		for cut := 1; cut < n; cut++ {
			if cutCost[cut] < bestCost {
				bestCost = cutCost[cut]
				bestCut = cut
			}
		}
		best[axis] = axisResult{cost: bestCost, cut: bestCut}
	}

	bestAxis := 0
	for axis := 1; axis < 3; axis++ {
		if best[axis].cost < best[bestAxis].cost {
			bestAxis = axis
		}
	}

	withoutCut := box.SurfaceArea() * float64(node.PrimitiveCount)
	if best[bestAxis].cost >= withoutCut {
		return pos
	}

	sub := order[first:last]
	sort.Slice(sub, func(i, j int) bool {
		return centerAxis(boxes[sub[i]], bestAxis) < centerAxis(boxes[sub[j]], bestAxis)
	})
	cut := first + best[bestAxis].cut

	left := b.build(boxes, order, first, cut)
	right := b.build(boxes, order, cut, last)
	b.nodes[pos].Left = left
	b.nodes[pos].Right = right
	return pos
}

func centerAxis(box AABB, axis int) float64 {
	c := box.Center()
	switch axis {
	case 0:
		return c.X
	case 1:
		return c.Y
	default:
		return c.Z
	}
}

// HitFunc tests ray against the item at original index i, returning a hit
// distance and whether it hit at all, for distances in (tMin, closest).
type HitFunc func(i int, ray Ray, tMin, closest float64) (t float64, hit bool)

// ClosestHit traverses the tree, visiting node boxes with Hit and
// primitives (via hitFn) only within leaves, and returns the index and
// distance of the closest hit found, or ok=false if none.
func (b *BVH) ClosestHit(ray Ray, tMin, tMax float64, hitFn HitFunc) (index int, t float64, ok bool) {
	return b.closestHit(ray, tMin, tMax, b.root, hitFn)
}

func (b *BVH) closestHit(ray Ray, tMin, closest float64, v int, hitFn HitFunc) (int, float64, bool) {
	node := b.nodes[v]
	if !node.Box.Hit(ray, tMin, closest) {
		return -1, 0, false
	}

	if node.isLeaf() {
		bestIdx := -1
		bestT := closest
		for i := node.FirstPrimitive; i < node.FirstPrimitive+node.PrimitiveCount; i++ {
			origIdx := b.Order[i]
			if t, hit := hitFn(origIdx, ray, tMin, bestT); hit && t < bestT {
				bestT = t
				bestIdx = origIdx
			}
		}
		if bestIdx < 0 {
			return -1, 0, false
		}
		return bestIdx, bestT, true
	}

	bestIdx, bestT, ok := b.closestHit(ray, tMin, closest, node.Left, hitFn)
	if ok {
		closest = bestT
	}
	if rIdx, rT, rOk := b.closestHit(ray, tMin, closest, node.Right, hitFn); rOk && (!ok || rT < bestT) {
		bestIdx, bestT, ok = rIdx, rT, true
	}
	return bestIdx, bestT, ok
}
