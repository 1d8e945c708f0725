package geometry

import (
	"math"

	"github.com/df07/go-weekend-pathtracer/pkg/core"
)

// rectThickness pads the fixed axis of a rectangle's bounding box so BVH slab tests never see a flat box
const rectThickness = 0.0001

// Plane identifies which coordinate plane an axis-aligned rectangle lies in
type Plane int

const (
	PlaneXY Plane = iota // fixed z
	PlaneXZ              // fixed y
	PlaneYZ              // fixed x
)

// axes returns the two free axes and the fixed axis of the plane
func (p Plane) axes() (a, b, fixed int) {
	switch p {
	case PlaneXY:
		return 0, 1, 2
	case PlaneXZ:
		return 0, 2, 1
	default:
		return 1, 2, 0
	}
}

// AARect is an axis-aligned rectangle spanning [A0,A1]x[B0,B1] on its plane's free axes at K on the fixed axis
type AARect struct {
	Plane    Plane
	A0, A1   float64
	B0, B1   float64
	K        float64
	Material core.Material
}

// NewXYRect creates a rectangle in the plane z=k
func NewXYRect(x0, x1, y0, y1, k float64, material core.Material) *AARect {
	return newAARect(PlaneXY, x0, x1, y0, y1, k, material)
}

// NewXZRect creates a rectangle in the plane y=k
func NewXZRect(x0, x1, z0, z1, k float64, material core.Material) *AARect {
	return newAARect(PlaneXZ, x0, x1, z0, z1, k, material)
}

// NewYZRect creates a rectangle in the plane x=k
func NewYZRect(y0, y1, z0, z1, k float64, material core.Material) *AARect {
	return newAARect(PlaneYZ, y0, y1, z0, z1, k, material)
}

func newAARect(plane Plane, a0, a1, b0, b1, k float64, material core.Material) *AARect {
	return &AARect{
		Plane:    plane,
		A0:       math.Min(a0, a1),
		A1:       math.Max(a0, a1),
		B0:       math.Min(b0, b1),
		B1:       math.Max(b0, b1),
		K:        k,
		Material: material,
	}
}

// Hit tests if a ray crosses the rectangle
func (r *AARect) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	a, b, fixed := r.Plane.axes()

	t := (r.K - ray.Origin.Axis(fixed)) / ray.Direction.Axis(fixed)
	// A ray parallel to the plane gives an infinite or NaN t
	if math.IsInf(t, 0) || !(t >= tMin && t <= tMax) {
		return nil, false
	}

	x := ray.Origin.Axis(a) + t*ray.Direction.Axis(a)
	y := ray.Origin.Axis(b) + t*ray.Direction.Axis(b)
	if x < r.A0 || x > r.A1 || y < r.B0 || y > r.B1 {
		return nil, false
	}

	hitRecord := &core.HitRecord{
		T:        t,
		Point:    ray.At(t),
		U:        (x - r.A0) / (r.A1 - r.A0),
		V:        (y - r.B0) / (r.B1 - r.B0),
		Material: r.Material,
	}
	hitRecord.SetFaceNormal(ray, axisVector(fixed, 1))

	return hitRecord, true
}

// BoundingBox returns the rectangle's box, thickened along the fixed axis
func (r *AARect) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	a, b, fixed := r.Plane.axes()
	lo := axisVector(a, r.A0).Add(axisVector(b, r.B0)).Add(axisVector(fixed, r.K-rectThickness))
	hi := axisVector(a, r.A1).Add(axisVector(b, r.B1)).Add(axisVector(fixed, r.K+rectThickness))
	return core.NewAABB(lo, hi), true
}

// axisVector returns a vector with value on the given axis and zero elsewhere
func axisVector(axis int, value float64) core.Vec3 {
	switch axis {
	case 0:
		return core.NewVec3(value, 0, 0)
	case 1:
		return core.NewVec3(0, value, 0)
	default:
		return core.NewVec3(0, 0, value)
	}
}
