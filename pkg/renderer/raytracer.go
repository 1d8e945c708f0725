package renderer

import (
	"context"
	"image"
	"math/rand"
	"time"

	"github.com/df07/go-weekend-pathtracer/pkg/core"
	"github.com/df07/go-weekend-pathtracer/pkg/integrator"
)

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	SamplesPerPixel int // Number of rays per pixel
	MaxDepth        int // Maximum ray bounce depth
}

// DefaultSamplingConfig returns sensible default values
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		SamplesPerPixel: 100,
		MaxDepth:        50,
	}
}

// Scene interface to avoid circular imports
type Scene interface {
	GetCamera() *Camera
	GetWorld() core.Hittable
	GetBackground() integrator.Background
}

// Raytracer drives the per-pixel sampling loop
type Raytracer struct {
	camera     *Camera
	world      core.Hittable
	integrator integrator.Integrator
	width      int
	height     int
	config     SamplingConfig
}

// NewRaytracer creates a path tracing raytracer for scene
func NewRaytracer(scene Scene, width, height int, config SamplingConfig) *Raytracer {
	return &Raytracer{
		camera:     scene.GetCamera(),
		world:      scene.GetWorld(),
		integrator: integrator.NewPathTracingIntegrator(scene.GetBackground(), config.MaxDepth),
		width:      width,
		height:     height,
		config:     config,
	}
}

// Width returns the image width in pixels
func (rt *Raytracer) Width() int { return rt.width }

// Height returns the image height in pixels
func (rt *Raytracer) Height() int { return rt.height }

// Render traces the whole image on the calling goroutine with a single generator
func (rt *Raytracer) Render(random *rand.Rand) (*Framebuffer, RenderStats) {
	start := time.Now()
	fb := NewFramebuffer(rt.width, rt.height)
	// A background context never cancels
	stats, _ := rt.RenderBounds(context.Background(), image.Rect(0, 0, rt.width, rt.height), fb, random)
	stats.Duration = time.Since(start)
	return fb, stats
}

// RenderBounds traces the pixels inside bounds into fb, checking ctx between rows.
// Distinct bounds touch distinct pixels, so concurrent calls on disjoint tiles are safe.
func (rt *Raytracer) RenderBounds(ctx context.Context, bounds image.Rectangle, fb *Framebuffer, random *rand.Rand) (RenderStats, error) {
	stats := RenderStats{}
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			fb.Set(x, y, rt.samplePixel(x, y, random))
			stats.TotalPixels++
			stats.TotalSamples += rt.config.SamplesPerPixel
		}
	}
	return stats, nil
}

// samplePixel averages jittered samples for framebuffer pixel (x, y)
func (rt *Raytracer) samplePixel(x, y int, random *rand.Rand) core.Color {
	if rt.config.SamplesPerPixel <= 0 {
		return core.Color{}
	}

	// Row 0 of the framebuffer is the top of the viewport
	j := rt.height - 1 - y
	du := float64(max(rt.width-1, 1))
	dv := float64(max(rt.height-1, 1))

	var accum core.Color
	for sample := 0; sample < rt.config.SamplesPerPixel; sample++ {
		s := (float64(x) + random.Float64()) / du
		t := (float64(j) + random.Float64()) / dv
		ray := rt.camera.GetRay(s, t, random)
		accum.AddAssign(rt.integrator.RayColor(ray, rt.world, random))
	}

	accum.DivideAssign(float64(rt.config.SamplesPerPixel))
	return accum
}
