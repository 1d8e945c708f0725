package core

import (
	"fmt"
	"math"
)

// AABB represents an axis-aligned bounding box
type AABB struct {
	Min Vec3 // Minimum corner
	Max Vec3 // Maximum corner
}

// NewAABB creates an AABB spanning two opposite corners, in either order
func NewAABB(a, b Vec3) AABB {
	return AABB{
		Min: NewVec3(math.Min(a.X, b.X), math.Min(a.Y, b.Y), math.Min(a.Z, b.Z)),
		Max: NewVec3(math.Max(a.X, b.X), math.Max(a.Y, b.Y), math.Max(a.Z, b.Z)),
	}
}

// NewAABBFromPoints creates an AABB that bounds all given points
func NewAABBFromPoints(points ...Vec3) AABB {
	if len(points) == 0 {
		return AABB{}
	}

	box := AABB{Min: points[0], Max: points[0]}
	for _, point := range points[1:] {
		box = SurroundingBox(box, AABB{Min: point, Max: point})
	}
	return box
}

// Hit tests if a ray intersects with this AABB using the slab method.
// A zero direction component yields infinite slab distances, which the
// interval update handles without a special case.
func (aabb AABB) Hit(ray Ray, tMin, tMax float64) bool {
	for axis := 0; axis < 3; axis++ {
		invD := 1.0 / ray.Direction.Axis(axis)
		origin := ray.Origin.Axis(axis)

		t0 := (aabb.Min.Axis(axis) - origin) * invD
		t1 := (aabb.Max.Axis(axis) - origin) * invD
		if invD < 0 {
			t0, t1 = t1, t0
		}

		if t0 > tMin {
			tMin = t0
		}
		if t1 < tMax {
			tMax = t1
		}
		if tMax <= tMin {
			return false
		}
	}

	return true
}

// SurroundingBox returns the smallest AABB containing both boxes
func SurroundingBox(a, b AABB) AABB {
	return AABB{
		Min: NewVec3(math.Min(a.Min.X, b.Min.X), math.Min(a.Min.Y, b.Min.Y), math.Min(a.Min.Z, b.Min.Z)),
		Max: NewVec3(math.Max(a.Max.X, b.Max.X), math.Max(a.Max.Y, b.Max.Y), math.Max(a.Max.Z, b.Max.Z)),
	}
}

// IsValid returns true if this is a valid AABB (min <= max for all axes)
func (aabb AABB) IsValid() bool {
	return aabb.Min.X <= aabb.Max.X &&
		aabb.Min.Y <= aabb.Max.Y &&
		aabb.Min.Z <= aabb.Max.Z
}

// BoxCompare reports whether a's box starts before b's box on the given axis.
// Both objects are queried over the instant t=0, the same convention BVH construction uses.
func BoxCompare(a, b Hittable, axis int) (bool, error) {
	boxA, okA := a.BoundingBox(0, 0)
	if !okA {
		return false, fmt.Errorf("comparing on axis %d: %T: %w", axis, a, ErrNoBoundingBox)
	}
	boxB, okB := b.BoundingBox(0, 0)
	if !okB {
		return false, fmt.Errorf("comparing on axis %d: %T: %w", axis, b, ErrNoBoundingBox)
	}
	return boxA.Min.Axis(axis) < boxB.Min.Axis(axis), nil
}
