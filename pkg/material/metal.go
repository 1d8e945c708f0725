package material

import (
	"math/rand"

	"github.com/df07/go-weekend-pathtracer/pkg/core"
)

// Metal represents a metallic material with specular reflection
type Metal struct {
	noEmission
	Albedo core.Color // Metal color
	Fuzz   float64    // 0.0 = perfect mirror, 1.0 = very fuzzy
}

// NewMetal creates a new metal material
func NewMetal(albedo core.Color, fuzz float64) *Metal {
	// Clamp fuzz to valid range
	if fuzz > 1.0 {
		fuzz = 1.0
	}
	if fuzz < 0.0 {
		fuzz = 0.0
	}
	return &Metal{Albedo: albedo, Fuzz: fuzz}
}

// Scatter implements the Material interface for metal scattering
func (m *Metal) Scatter(rayIn core.Ray, hit *core.HitRecord, random *rand.Rand) (core.ScatterResult, bool) {
	reflected := rayIn.Direction.Normalize().Reflect(hit.Normal)

	// Fuzz perturbs the mirror direction
	if m.Fuzz > 0 {
		reflected = reflected.Add(core.RandomInUnitSphere(random).Multiply(m.Fuzz))
	}

	scattered := core.NewRayAtTime(hit.Point, reflected, rayIn.Time)

	// Rays perturbed below the surface are absorbed
	scatters := scattered.Direction.Dot(hit.Normal) > 0

	return core.ScatterResult{
		Scattered:   scattered,
		Attenuation: m.Albedo,
	}, scatters
}
