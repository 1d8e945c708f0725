package core

import (
	"errors"
	"math/rand"
)

// ErrNoBoundingBox is returned when an object that must be bounded reports no box
var ErrNoBoundingBox = errors.New("no bounding box")

// Logger interface for raytracer logging
type Logger interface {
	Printf(format string, args ...interface{})
}

// Hittable is anything a ray can intersect
type Hittable interface {
	// Hit returns the intersection closest to the ray origin with t in [tMin, tMax]
	Hit(ray Ray, tMin, tMax float64) (*HitRecord, bool)
	// BoundingBox returns a box enclosing the object over the shutter interval [time0, time1]
	BoundingBox(time0, time1 float64) (AABB, bool)
}

// Material decides how light scatters off and is emitted by a surface
type Material interface {
	Scatter(rayIn Ray, hit *HitRecord, random *rand.Rand) (ScatterResult, bool)
	Emitted(u, v float64, point Point3) Color
}

// Texture maps a surface coordinate to a color
type Texture interface {
	Value(u, v float64, point Point3) Color
}

// ScatterResult contains the result of material scattering
type ScatterResult struct {
	Scattered   Ray   // The scattered ray
	Attenuation Color // Color attenuation
}

// HitRecord contains information about a ray-object intersection
type HitRecord struct {
	Point     Point3   // Point of intersection
	Normal    Vec3     // Surface normal, always against the incident ray
	T         float64  // Parameter t along the ray
	U, V      float64  // Surface texture coordinates
	FrontFace bool     // Whether ray hit the front face
	Material  Material // Material of the hit object
}

// SetFaceNormal sets the normal vector and determines front/back face
func (h *HitRecord) SetFaceNormal(ray Ray, outwardNormal Vec3) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Negate()
	}
}
