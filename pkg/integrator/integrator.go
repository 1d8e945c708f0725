package integrator

import (
	"math/rand"

	"github.com/df07/go-weekend-pathtracer/pkg/core"
)

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor estimates the radiance arriving along ray from world
	RayColor(ray core.Ray, world core.Hittable, random *rand.Rand) core.Color
}

// Background supplies the radiance of rays that escape the scene
type Background interface {
	Color(ray core.Ray) core.Color
}

// SolidBackground is a constant environment, black for enclosed scenes lit by emitters
type SolidBackground struct {
	Value core.Color
}

// NewSolidBackground creates a constant background
func NewSolidBackground(color core.Color) *SolidBackground {
	return &SolidBackground{Value: color}
}

// Color returns the constant color
func (s *SolidBackground) Color(ray core.Ray) core.Color {
	return s.Value
}

// GradientBackground blends vertically from Bottom (straight down) to Top (straight up)
type GradientBackground struct {
	Top    core.Color
	Bottom core.Color
}

// NewGradientBackground creates a vertical sky gradient
func NewGradientBackground(top, bottom core.Color) *GradientBackground {
	return &GradientBackground{Top: top, Bottom: bottom}
}

// NewSkyBackground returns the white-to-light-blue sky used by outdoor scenes
func NewSkyBackground() *GradientBackground {
	return NewGradientBackground(core.NewColor(0.5, 0.7, 1.0), core.NewColor(1.0, 1.0, 1.0))
}

// Color interpolates on the y component of the normalized ray direction
func (g *GradientBackground) Color(ray core.Ray) core.Color {
	unitDirection := ray.Direction.Normalize()
	t := 0.5 * (unitDirection.Y + 1.0)
	return g.Bottom.Lerp(g.Top, t)
}
