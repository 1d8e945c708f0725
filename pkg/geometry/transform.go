package geometry

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/df07/go-weekend-pathtracer/pkg/core"
)

// Translate moves an object by a fixed offset without copying its geometry
type Translate struct {
	Object core.Hittable
	Offset core.Vec3
}

// NewTranslate wraps object so it appears displaced by offset
func NewTranslate(object core.Hittable, offset core.Vec3) *Translate {
	return &Translate{Object: object, Offset: offset}
}

// Hit moves the ray into object space, tests it, and moves the hit point back
func (tr *Translate) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	moved := core.NewRayAtTime(ray.Origin.Subtract(tr.Offset), ray.Direction, ray.Time)
	hit, ok := tr.Object.Hit(moved, tMin, tMax)
	if !ok {
		return nil, false
	}
	hit.Point = hit.Point.Add(tr.Offset)
	return hit, true
}

// BoundingBox returns the object's box shifted by the offset
func (tr *Translate) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	box, ok := tr.Object.BoundingBox(time0, time1)
	if !ok {
		return core.AABB{}, false
	}
	return core.AABB{Min: box.Min.Add(tr.Offset), Max: box.Max.Add(tr.Offset)}, true
}

// RotateY rotates an object about the world Y axis
type RotateY struct {
	Object   core.Hittable
	Degrees  float64
	rotation mgl64.Mat3
	inverse  mgl64.Mat3
	box      core.AABB
	hasBox   bool
}

// NewRotateY wraps object so it appears rotated by degrees about the Y axis
func NewRotateY(object core.Hittable, degrees float64) *RotateY {
	rotation := mgl64.Rotate3DY(mgl64.DegToRad(degrees))
	r := &RotateY{
		Object:   object,
		Degrees:  degrees,
		rotation: rotation,
		inverse:  rotation.Transpose(),
	}

	box, ok := object.BoundingBox(0, 1)
	if !ok {
		return r
	}

	// Rotate all 8 corners and re-bound them
	corners := make([]core.Vec3, 0, 8)
	for _, x := range [2]float64{box.Min.X, box.Max.X} {
		for _, y := range [2]float64{box.Min.Y, box.Max.Y} {
			for _, z := range [2]float64{box.Min.Z, box.Max.Z} {
				corners = append(corners, applyMat3(rotation, core.NewVec3(x, y, z)))
			}
		}
	}
	r.box = core.NewAABBFromPoints(corners...)
	r.hasBox = true
	return r
}

// Hit rotates the ray into object space and the resulting hit back into world space
func (r *RotateY) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	local := core.NewRayAtTime(applyMat3(r.inverse, ray.Origin), applyMat3(r.inverse, ray.Direction), ray.Time)

	hit, ok := r.Object.Hit(local, tMin, tMax)
	if !ok {
		return nil, false
	}

	// The normal already faces the local ray; rotating both keeps that relation
	hit.Point = applyMat3(r.rotation, hit.Point)
	hit.Normal = applyMat3(r.rotation, hit.Normal)
	return hit, true
}

// BoundingBox returns the box of the rotated corners computed at construction
func (r *RotateY) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	return r.box, r.hasBox
}

func applyMat3(m mgl64.Mat3, v core.Vec3) core.Vec3 {
	out := m.Mul3x1(mgl64.Vec3{v.X, v.Y, v.Z})
	return core.NewVec3(out.X(), out.Y(), out.Z())
}
