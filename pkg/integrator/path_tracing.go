package integrator

import (
	"math"
	"math/rand"

	"github.com/df07/go-weekend-pathtracer/pkg/core"
)

// shadowEpsilon keeps scattered rays from re-hitting the surface they left
const shadowEpsilon = 0.001

// PathTracingIntegrator implements unidirectional path tracing with a fixed bounce limit
type PathTracingIntegrator struct {
	Background Background
	MaxDepth   int
}

// NewPathTracingIntegrator creates a new path tracing integrator
func NewPathTracingIntegrator(background Background, maxDepth int) *PathTracingIntegrator {
	return &PathTracingIntegrator{
		Background: background,
		MaxDepth:   maxDepth,
	}
}

// RayColor computes the color for a single camera ray
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, world core.Hittable, random *rand.Rand) core.Color {
	return RayColor(ray, pt.Background, world, pt.MaxDepth, random)
}

// RayColor follows ray through world for at most depth bounces.
// Each bounce adds the surface's emission to its attenuation times the light arriving along the scattered ray.
func RayColor(ray core.Ray, background Background, world core.Hittable, depth int, random *rand.Rand) core.Color {
	// If we've exceeded the ray bounce limit, no more light is gathered
	if depth <= 0 {
		return core.Color{}
	}

	hit, isHit := world.Hit(ray, shadowEpsilon, math.Inf(1))
	if !isHit {
		return background.Color(ray)
	}

	emitted := hit.Material.Emitted(hit.U, hit.V, hit.Point)

	scatter, didScatter := hit.Material.Scatter(ray, hit, random)
	if !didScatter {
		return emitted
	}

	incoming := RayColor(scatter.Scattered, background, world, depth-1, random)
	return emitted.Add(scatter.Attenuation.MultiplyVec(incoming))
}
