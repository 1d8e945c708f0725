package geometry

import (
	"github.com/df07/go-weekend-pathtracer/pkg/core"
)

// HittableList is an unordered aggregate that tests every child in turn
type HittableList struct {
	Objects []core.Hittable
}

// NewHittableList creates a list holding the given objects
func NewHittableList(objects ...core.Hittable) *HittableList {
	return &HittableList{Objects: objects}
}

// Add appends an object to the list
func (l *HittableList) Add(object core.Hittable) {
	l.Objects = append(l.Objects, object)
}

// Clear removes every object from the list
func (l *HittableList) Clear() {
	l.Objects = nil
}

// Len returns the number of direct children
func (l *HittableList) Len() int {
	return len(l.Objects)
}

// Hit returns the closest hit among all children
func (l *HittableList) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	var closestHit *core.HitRecord
	closestSoFar := tMax

	for _, object := range l.Objects {
		if hit, isHit := object.Hit(ray, tMin, closestSoFar); isHit {
			closestSoFar = hit.T
			closestHit = hit
		}
	}

	return closestHit, closestHit != nil
}

// BoundingBox returns the union of all children's boxes.
// An empty list, or one with an unbounded child, has no box.
func (l *HittableList) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	if len(l.Objects) == 0 {
		return core.AABB{}, false
	}

	var output core.AABB
	for i, object := range l.Objects {
		box, ok := object.BoundingBox(time0, time1)
		if !ok {
			return core.AABB{}, false
		}
		if i == 0 {
			output = box
		} else {
			output = core.SurroundingBox(output, box)
		}
	}
	return output, true
}
