package geometry

import (
	"math"

	"github.com/df07/go-weekend-pathtracer/pkg/core"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center   core.Point3
	Radius   float64
	Material core.Material
}

// NewSphere creates a new sphere
func NewSphere(center core.Point3, radius float64, material core.Material) *Sphere {
	return &Sphere{
		Center:   center,
		Radius:   radius,
		Material: material,
	}
}

// Hit tests if a ray intersects with the sphere
func (s *Sphere) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	root, ok := solveSphere(ray, s.Center, s.Radius, tMin, tMax)
	if !ok {
		return nil, false
	}

	hitRecord := &core.HitRecord{
		T:        root,
		Point:    ray.At(root),
		Material: s.Material,
	}

	// Calculate outward normal (from center to hit point)
	outwardNormal := hitRecord.Point.Subtract(s.Center).Divide(s.Radius)
	hitRecord.SetFaceNormal(ray, outwardNormal)
	hitRecord.U, hitRecord.V = sphereUV(outwardNormal)

	return hitRecord, true
}

// BoundingBox returns the axis-aligned bounding box for this sphere
func (s *Sphere) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	return sphereBox(s.Center, s.Radius), true
}

// solveSphere returns the nearest root of |O+tD-C|² = r² inside [tMin, tMax]
func solveSphere(ray core.Ray, center core.Point3, radius, tMin, tMax float64) (float64, bool) {
	// Vector from sphere center to ray origin
	oc := ray.Origin.Subtract(center)

	// Quadratic equation coefficients: at² + 2*halfB*t + c = 0
	a := ray.Direction.LengthSquared()
	halfB := oc.Dot(ray.Direction)
	c := oc.LengthSquared() - radius*radius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		return 0, false
	}
	sqrtD := math.Sqrt(discriminant)

	// Try the closer intersection point first
	root := (-halfB - sqrtD) / a
	if root < tMin || root > tMax {
		// Try the farther intersection point
		root = (-halfB + sqrtD) / a
		if root < tMin || root > tMax {
			return 0, false
		}
	}
	return root, true
}

// sphereUV maps a point on the unit sphere to texture coordinates.
// u is the angle around Y from X=-1, v is the angle from Y=-1 to Y=+1.
//
//	(1,0,0) -> (0.50,0.50)   (-1,0,0) -> (0.00,0.50)
//	(0,1,0) -> (0.50,1.00)   (0,-1,0) -> (0.50,0.00)
//	(0,0,1) -> (0.25,0.50)   (0,0,-1) -> (0.75,0.50)
func sphereUV(p core.Vec3) (u, v float64) {
	// Rounding can push |y| just past 1 at the poles
	theta := math.Acos(math.Max(-1, math.Min(1, -p.Y)))
	phi := math.Atan2(-p.Z, p.X) + math.Pi
	return phi / (2 * math.Pi), theta / math.Pi
}

func sphereBox(center core.Point3, radius float64) core.AABB {
	r := core.NewVec3(radius, radius, radius)
	return core.NewAABB(center.Subtract(r), center.Add(r))
}
