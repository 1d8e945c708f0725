package material

import (
	"math/rand"

	"github.com/df07/go-weekend-pathtracer/pkg/core"
)

// Lambertian represents a perfectly diffuse material
type Lambertian struct {
	noEmission
	Albedo core.Texture // Base color/reflectance (can be solid or textured)
}

// NewLambertian creates a new lambertian material with a solid color
func NewLambertian(albedo core.Color) *Lambertian {
	return &Lambertian{Albedo: NewSolidColor(albedo)}
}

// NewTexturedLambertian creates a new lambertian material with texture
func NewTexturedLambertian(albedo core.Texture) *Lambertian {
	return &Lambertian{Albedo: albedo}
}

// Scatter implements the Material interface for lambertian scattering
func (l *Lambertian) Scatter(rayIn core.Ray, hit *core.HitRecord, random *rand.Rand) (core.ScatterResult, bool) {
	scatterDirection := hit.Normal.Add(core.RandomUnitVector(random))

	// Catch degenerate scatter direction
	if scatterDirection.NearZero() {
		scatterDirection = hit.Normal
	}

	return core.ScatterResult{
		Scattered:   core.NewRayAtTime(hit.Point, scatterDirection, rayIn.Time),
		Attenuation: l.Albedo.Value(hit.U, hit.V, hit.Point),
	}, true
}
