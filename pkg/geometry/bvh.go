package geometry

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"

	"github.com/df07/go-weekend-pathtracer/pkg/core"
)

// ErrEmptyBVH is returned when a BVH is built over no objects
var ErrEmptyBVH = errors.New("bvh: no objects to build from")

// BVHNode is a node in the Bounding Volume Hierarchy.
// Leaves hold primitives directly: a span of one stores the same object in both slots.
type BVHNode struct {
	Left  core.Hittable
	Right core.Hittable
	Box   core.AABB // Cached union of both children
}

// NewBVHFromList builds a BVH over the objects of a list
func NewBVHFromList(list *HittableList, time0, time1 float64, random *rand.Rand) (*BVHNode, error) {
	return NewBVHNode(list.Objects, time0, time1, random)
}

// NewBVHNode builds a BVH over objects for the shutter interval [time0, time1].
// Every object must report a bounding box; construction fails otherwise.
func NewBVHNode(objects []core.Hittable, time0, time1 float64, random *rand.Rand) (*BVHNode, error) {
	if len(objects) == 0 {
		return nil, ErrEmptyBVH
	}

	// Sort a private copy so callers' slices keep their order
	objectsCopy := make([]core.Hittable, len(objects))
	copy(objectsCopy, objects)

	return buildBVH(objectsCopy, time0, time1, random)
}

// buildBVH splits objects on a random axis at the median of their box minimums
func buildBVH(objects []core.Hittable, time0, time1 float64, random *rand.Rand) (*BVHNode, error) {
	axis := random.Intn(3)
	node := &BVHNode{}

	switch span := len(objects); span {
	case 1:
		node.Left = objects[0]
		node.Right = objects[0]
	case 2:
		less, err := core.BoxCompare(objects[0], objects[1], axis)
		if err != nil {
			return nil, fmt.Errorf("bvh construction: %w", err)
		}
		if less {
			node.Left, node.Right = objects[0], objects[1]
		} else {
			node.Left, node.Right = objects[1], objects[0]
		}
	default:
		if err := sortByAxis(objects, axis); err != nil {
			return nil, fmt.Errorf("bvh construction: %w", err)
		}

		mid := span / 2
		left, err := buildBVH(objects[:mid], time0, time1, random)
		if err != nil {
			return nil, err
		}
		right, err := buildBVH(objects[mid:], time0, time1, random)
		if err != nil {
			return nil, err
		}
		node.Left, node.Right = left, right
	}

	boxLeft, okLeft := node.Left.BoundingBox(time0, time1)
	boxRight, okRight := node.Right.BoundingBox(time0, time1)
	if !okLeft || !okRight {
		return nil, fmt.Errorf("bvh construction: %w", core.ErrNoBoundingBox)
	}
	node.Box = core.SurroundingBox(boxLeft, boxRight)

	return node, nil
}

// sortByAxis orders objects by their bounding box minimum on axis, reporting the first unbounded object
func sortByAxis(objects []core.Hittable, axis int) error {
	var sortErr error
	sort.SliceStable(objects, func(i, j int) bool {
		less, err := core.BoxCompare(objects[i], objects[j], axis)
		if err != nil && sortErr == nil {
			sortErr = err
		}
		return less
	})
	return sortErr
}

// Hit tests the ray against both subtrees, letting a left hit shorten the right search
func (n *BVHNode) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	if !n.Box.Hit(ray, tMin, tMax) {
		return nil, false
	}

	leftHit, hitLeft := n.Left.Hit(ray, tMin, tMax)
	if hitLeft {
		tMax = leftHit.T
	}

	if rightHit, hitRight := n.Right.Hit(ray, tMin, tMax); hitRight {
		return rightHit, true
	}
	return leftHit, hitLeft
}

// BoundingBox returns the cached box
func (n *BVHNode) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	return n.Box, true
}

// Summary describes the shape of the tree for logging
func (n *BVHNode) Summary() string {
	var stats bvhStats
	n.collectStats(0, &stats)
	return fmt.Sprintf("%d nodes, %d leaves, max depth %d", stats.totalNodes, stats.leaves, stats.maxDepth)
}

// bvhStats contains statistics about the BVH structure
type bvhStats struct {
	totalNodes int
	leaves     int
	maxDepth   int
}

// collectStats recursively collects statistics about the BVH
func (n *BVHNode) collectStats(depth int, stats *bvhStats) {
	stats.totalNodes++
	if depth > stats.maxDepth {
		stats.maxDepth = depth
	}

	for _, child := range [2]core.Hittable{n.Left, n.Right} {
		if node, ok := child.(*BVHNode); ok {
			node.collectStats(depth+1, stats)
		} else {
			stats.leaves++
		}
		if n.Left == n.Right {
			break
		}
	}
}
