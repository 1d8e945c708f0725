package renderer

import (
	"math"
	"math/rand"

	"github.com/df07/go-weekend-pathtracer/pkg/core"
)

// CameraConfig contains all camera configuration parameters
type CameraConfig struct {
	LookFrom      core.Point3 // Camera position
	LookAt        core.Point3 // Point the camera looks at
	Up            core.Vec3   // Up direction (usually (0,1,0))
	VFov          float64     // Vertical field of view in degrees
	AspectRatio   float64     // Width / height
	Aperture      float64     // Lens diameter; 0 gives a pinhole camera
	FocusDistance float64     // Distance to the plane of perfect focus; 0 focuses on LookAt
	Time0, Time1  float64     // Shutter open and close times
}

// Camera generates rays for rendering
type Camera struct {
	origin          core.Point3
	lowerLeftCorner core.Point3
	horizontal      core.Vec3
	vertical        core.Vec3
	u, v, w         core.Vec3
	lensRadius      float64
	time0, time1    float64
}

// NewCamera derives the camera basis and viewport from config
func NewCamera(config CameraConfig) *Camera {
	theta := core.DegreesToRadians(config.VFov)
	h := math.Tan(theta / 2)
	viewportHeight := 2.0 * h
	viewportWidth := config.AspectRatio * viewportHeight

	focusDistance := config.FocusDistance
	if focusDistance <= 0 {
		focusDistance = config.LookFrom.Subtract(config.LookAt).Length()
	}

	w := config.LookFrom.Subtract(config.LookAt).Normalize()
	u := config.Up.Cross(w).Normalize()
	v := w.Cross(u)

	origin := config.LookFrom
	horizontal := u.Multiply(viewportWidth * focusDistance)
	vertical := v.Multiply(viewportHeight * focusDistance)
	lowerLeftCorner := origin.
		Subtract(horizontal.Multiply(0.5)).
		Subtract(vertical.Multiply(0.5)).
		Subtract(w.Multiply(focusDistance))

	return &Camera{
		origin:          origin,
		lowerLeftCorner: lowerLeftCorner,
		horizontal:      horizontal,
		vertical:        vertical,
		u:               u,
		v:               v,
		w:               w,
		lensRadius:      config.Aperture / 2,
		time0:           config.Time0,
		time1:           config.Time1,
	}
}

// GetRay generates a ray for viewport coordinates (s, t) where 0 <= s,t <= 1 and (0,0) is the lower left
func (c *Camera) GetRay(s, t float64, random *rand.Rand) core.Ray {
	origin := c.origin
	if c.lensRadius > 0 {
		rd := core.RandomInUnitDisk(random).Multiply(c.lensRadius)
		origin = origin.Add(c.u.Multiply(rd.X)).Add(c.v.Multiply(rd.Y))
	}

	target := c.lowerLeftCorner.Add(c.horizontal.Multiply(s)).Add(c.vertical.Multiply(t))

	time := c.time0
	if c.time1 > c.time0 {
		time = core.RandomRange(random, c.time0, c.time1)
	}

	return core.NewRayAtTime(origin, target.Subtract(origin), time)
}

// Forward returns the unit viewing direction
func (c *Camera) Forward() core.Vec3 {
	return c.w.Negate()
}
