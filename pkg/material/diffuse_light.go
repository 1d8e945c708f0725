package material

import (
	"math/rand"

	"github.com/df07/go-weekend-pathtracer/pkg/core"
)

// noEmission is embedded by materials that do not emit light
type noEmission struct{}

// Emitted returns black
func (noEmission) Emitted(u, v float64, point core.Point3) core.Color {
	return core.Color{}
}

// DiffuseLight represents a light-emitting material
type DiffuseLight struct {
	Emit core.Texture // Emitted light color/intensity
}

// NewDiffuseLight creates a light with a uniform emission color
func NewDiffuseLight(emission core.Color) *DiffuseLight {
	return NewTexturedDiffuseLight(NewSolidColor(emission))
}

// NewTexturedDiffuseLight creates a light whose emission varies over the surface
func NewTexturedDiffuseLight(emit core.Texture) *DiffuseLight {
	return &DiffuseLight{Emit: emit}
}

// Scatter absorbs every incoming ray; lights only emit
func (d *DiffuseLight) Scatter(rayIn core.Ray, hit *core.HitRecord, random *rand.Rand) (core.ScatterResult, bool) {
	return core.ScatterResult{}, false
}

// Emitted returns the emission texture at the hit point
func (d *DiffuseLight) Emitted(u, v float64, point core.Point3) core.Color {
	return d.Emit.Value(u, v, point)
}
