package geometry

import (
	"github.com/df07/go-weekend-pathtracer/pkg/core"
)

// MovingSphere is a sphere whose center travels linearly from Center0 at Time0 to Center1 at Time1
type MovingSphere struct {
	Center0, Center1 core.Point3
	Time0, Time1     float64
	Radius           float64
	Material         core.Material
}

// NewMovingSphere creates a new moving sphere
func NewMovingSphere(center0, center1 core.Point3, time0, time1, radius float64, material core.Material) *MovingSphere {
	return &MovingSphere{
		Center0:  center0,
		Center1:  center1,
		Time0:    time0,
		Time1:    time1,
		Radius:   radius,
		Material: material,
	}
}

// Center returns the sphere center at the given time
func (s *MovingSphere) Center(time float64) core.Point3 {
	if s.Time1 == s.Time0 {
		return s.Center0
	}
	fraction := (time - s.Time0) / (s.Time1 - s.Time0)
	return s.Center0.Add(s.Center1.Subtract(s.Center0).Multiply(fraction))
}

// Hit tests the ray against the sphere at the ray's time
func (s *MovingSphere) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	center := s.Center(ray.Time)
	root, ok := solveSphere(ray, center, s.Radius, tMin, tMax)
	if !ok {
		return nil, false
	}

	hitRecord := &core.HitRecord{
		T:        root,
		Point:    ray.At(root),
		Material: s.Material,
	}
	outwardNormal := hitRecord.Point.Subtract(center).Divide(s.Radius)
	hitRecord.SetFaceNormal(ray, outwardNormal)
	hitRecord.U, hitRecord.V = sphereUV(outwardNormal)

	return hitRecord, true
}

// BoundingBox returns the box swept by the sphere between time0 and time1
func (s *MovingSphere) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	box0 := sphereBox(s.Center(time0), s.Radius)
	box1 := sphereBox(s.Center(time1), s.Radius)
	return core.SurroundingBox(box0, box1), true
}
