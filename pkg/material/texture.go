package material

import (
	"math"
	"math/rand"

	"github.com/df07/go-weekend-pathtracer/pkg/core"
	"github.com/df07/go-weekend-pathtracer/pkg/noise"
)

// SolidColor provides uniform color
type SolidColor struct {
	Color core.Color
}

// NewSolidColor creates a new solid color texture
func NewSolidColor(color core.Color) *SolidColor {
	return &SolidColor{Color: color}
}

// Value returns the solid color regardless of UV or position
func (s *SolidColor) Value(u, v float64, point core.Point3) core.Color {
	return s.Color
}

// CheckerTexture alternates between two textures in a 3D checker pattern
type CheckerTexture struct {
	Odd  core.Texture
	Even core.Texture
}

// NewCheckerTexture creates a checker texture from two solid colors, even first
func NewCheckerTexture(even, odd core.Color) *CheckerTexture {
	return &CheckerTexture{Odd: NewSolidColor(odd), Even: NewSolidColor(even)}
}

// Value picks Odd where sin(10x)sin(10y)sin(10z) is negative and Even elsewhere
func (c *CheckerTexture) Value(u, v float64, point core.Point3) core.Color {
	sines := math.Sin(10*point.X) * math.Sin(10*point.Y) * math.Sin(10*point.Z)
	if sines < 0 {
		return c.Odd.Value(u, v, point)
	}
	return c.Even.Value(u, v, point)
}

// NoiseTexture is a grey marble pattern driven by Perlin turbulence
type NoiseTexture struct {
	Scale  float64
	perlin *noise.Perlin
}

// NewNoiseTexture builds its own noise field from random
func NewNoiseTexture(scale float64, random *rand.Rand) *NoiseTexture {
	return &NoiseTexture{Scale: scale, perlin: noise.NewPerlin(random)}
}

// Value phase-shifts a sine along z by the turbulence at point
func (n *NoiseTexture) Value(u, v float64, point core.Point3) core.Color {
	turb := n.perlin.Turbulence(point, noise.DefaultTurbulenceDepth)
	grey := 0.5 * (1 + math.Sin(n.Scale*point.Z+10*turb))
	return core.NewColor(grey, grey, grey)
}
