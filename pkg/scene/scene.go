package scene

import (
	"fmt"
	"math/rand"

	"github.com/df07/go-weekend-pathtracer/pkg/core"
	"github.com/df07/go-weekend-pathtracer/pkg/geometry"
	"github.com/df07/go-weekend-pathtracer/pkg/integrator"
	"github.com/df07/go-weekend-pathtracer/pkg/renderer"
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Name           string
	Objects        *geometry.HittableList  // Primitives before acceleration
	World          core.Hittable           // BVH over Objects; what rays are traced against
	Background     integrator.Background   // Radiance of escaping rays
	CameraConfig   renderer.CameraConfig   // Parameters the camera was built from
	Camera         *renderer.Camera        // Built from CameraConfig
	SamplingConfig renderer.SamplingConfig // Suggested quality settings
	Width          int                     // Suggested image width; height follows the aspect ratio
}

// GetCamera returns the scene camera
func (s *Scene) GetCamera() *renderer.Camera { return s.Camera }

// GetWorld returns the accelerated scene root
func (s *Scene) GetWorld() core.Hittable { return s.World }

// GetBackground returns the environment color source
func (s *Scene) GetBackground() integrator.Background { return s.Background }

// ImageHeight returns the pixel height matching width at the camera's aspect ratio
func (s *Scene) ImageHeight(width int) int {
	return max(1, int(float64(width)/s.CameraConfig.AspectRatio))
}

// SetAspectRatio rebuilds the camera for a different aspect ratio
func (s *Scene) SetAspectRatio(aspectRatio float64) {
	s.CameraConfig.AspectRatio = aspectRatio
	s.Camera = renderer.NewCamera(s.CameraConfig)
}

// defaultCameraConfig is the outdoor camera shared by most demo scenes
func defaultCameraConfig() renderer.CameraConfig {
	return renderer.CameraConfig{
		LookFrom:      core.NewVec3(13, 2, 3),
		LookAt:        core.NewVec3(0, 0, 0),
		Up:            core.NewVec3(0, 1, 0),
		VFov:          20,
		AspectRatio:   3.0 / 2.0,
		Aperture:      0,
		FocusDistance: 10,
		Time0:         0,
		Time1:         1,
	}
}

// defaultBackground is the pale blue sky of the outdoor scenes
func defaultBackground() integrator.Background {
	return integrator.NewSolidBackground(core.NewColor(0.70, 0.80, 1.0))
}

// newScene wraps objects in a BVH over the shutter interval [0, 1] and builds the camera
func newScene(name string, objects *geometry.HittableList, cameraConfig renderer.CameraConfig, background integrator.Background, sampling renderer.SamplingConfig, width int, random *rand.Rand) (*Scene, error) {
	bvh, err := geometry.NewBVHFromList(objects, 0, 1, random)
	if err != nil {
		return nil, fmt.Errorf("scene %q: %w", name, err)
	}

	return &Scene{
		Name:           name,
		Objects:        objects,
		World:          bvh,
		Background:     background,
		CameraConfig:   cameraConfig,
		Camera:         renderer.NewCamera(cameraConfig),
		SamplingConfig: sampling,
		Width:          width,
	}, nil
}

// Summary describes the scene contents for logging
func (s *Scene) Summary() string {
	summary := fmt.Sprintf("scene %q: %d objects", s.Name, s.Objects.Len())
	if bvh, ok := s.World.(*geometry.BVHNode); ok {
		summary += ", BVH " + bvh.Summary()
	}
	return summary
}
