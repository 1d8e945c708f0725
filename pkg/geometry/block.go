package geometry

import (
	"github.com/df07/go-weekend-pathtracer/pkg/core"
)

// Block is an axis-aligned box made up of six rectangles sharing one material
type Block struct {
	Min, Max core.Point3
	sides    *HittableList
}

// NewBlock creates a block spanning two opposite corners, given in any order
func NewBlock(p0, p1 core.Point3, material core.Material) *Block {
	box := core.NewAABB(p0, p1)
	lo, hi := box.Min, box.Max

	sides := NewHittableList(
		NewXYRect(lo.X, hi.X, lo.Y, hi.Y, hi.Z, material),
		NewXYRect(lo.X, hi.X, lo.Y, hi.Y, lo.Z, material),
		NewXZRect(lo.X, hi.X, lo.Z, hi.Z, hi.Y, material),
		NewXZRect(lo.X, hi.X, lo.Z, hi.Z, lo.Y, material),
		NewYZRect(lo.Y, hi.Y, lo.Z, hi.Z, hi.X, material),
		NewYZRect(lo.Y, hi.Y, lo.Z, hi.Z, lo.X, material),
	)

	return &Block{
		Min:   lo,
		Max:   hi,
		sides: sides,
	}
}

// Hit tests if a ray intersects with any face of the block
func (b *Block) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	return b.sides.Hit(ray, tMin, tMax)
}

// BoundingBox returns the corner-to-corner box
func (b *Block) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	return core.AABB{Min: b.Min, Max: b.Max}, true
}
