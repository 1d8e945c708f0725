package scene

import (
	"math/rand"

	"github.com/df07/go-weekend-pathtracer/pkg/core"
	"github.com/df07/go-weekend-pathtracer/pkg/geometry"
	"github.com/df07/go-weekend-pathtracer/pkg/integrator"
	"github.com/df07/go-weekend-pathtracer/pkg/loaders"
	"github.com/df07/go-weekend-pathtracer/pkg/material"
	"github.com/df07/go-weekend-pathtracer/pkg/renderer"
)

// DefaultTexturePath is where the earth scene looks for its map when none is configured
const DefaultTexturePath = "textures/earthmap.jpg"

var defaultSampling = renderer.DefaultSamplingConfig()

// NewBasic creates a single diffuse sphere resting on a large ground sphere under a sky gradient
func NewBasic(random *rand.Rand) (*Scene, error) {
	objects := geometry.NewHittableList(
		geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, material.NewLambertian(core.NewColor(0.5, 0.5, 0.5))),
		geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, material.NewLambertian(core.NewColor(0.7, 0.3, 0.3))),
	)

	cameraConfig := renderer.CameraConfig{
		LookFrom:    core.NewVec3(0, 0.25, 1),
		LookAt:      core.NewVec3(0, 0.25, -1),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        90,
		AspectRatio: 2,
	}

	sampling := renderer.SamplingConfig{SamplesPerPixel: 50, MaxDepth: 50}
	return newScene("basic", objects, cameraConfig, integrator.NewSkyBackground(), sampling, 400, random)
}

// NewRandomSpheres creates the checker-floored field of small random spheres around three large ones
func NewRandomSpheres(random *rand.Rand) (*Scene, error) {
	objects := geometry.NewHittableList()

	checker := material.NewCheckerTexture(core.NewColor(0.2, 0.3, 0.1), core.NewColor(0.9, 0.9, 0.9))
	objects.Add(geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, material.NewTexturedLambertian(checker)))

	// Keep the small spheres clear of the big metal one
	clearing := core.NewVec3(4, 0.2, 0)
	for a := -11; a < 11; a++ {
		for b := -11; b < 11; b++ {
			chooseMat := random.Float64()
			center := core.NewVec3(float64(a)+0.9*random.Float64(), 0.2, float64(b)+0.9*random.Float64())
			if center.Subtract(clearing).Length() <= 0.9 {
				continue
			}

			switch {
			case chooseMat < 0.8:
				// Diffuse spheres bounce during the shutter interval
				albedo := core.RandomVec3(random).MultiplyVec(core.RandomVec3(random))
				center2 := center.Add(core.NewVec3(0, core.RandomRange(random, 0, 0.5), 0))
				objects.Add(geometry.NewMovingSphere(center, center2, 0, 1, 0.2, material.NewLambertian(albedo)))
			case chooseMat < 0.95:
				albedo := core.RandomVec3Range(random, 0.5, 1)
				fuzz := core.RandomRange(random, 0, 0.5)
				objects.Add(geometry.NewSphere(center, 0.2, material.NewMetal(albedo, fuzz)))
			default:
				objects.Add(geometry.NewSphere(center, 0.2, material.NewDielectric(1.5)))
			}
		}
	}

	objects.Add(geometry.NewSphere(core.NewVec3(0, 1, 0), 1.0, material.NewDielectric(1.5)))
	objects.Add(geometry.NewSphere(core.NewVec3(-4, 1, 0), 1.0, material.NewLambertian(core.NewColor(0.4, 0.2, 0.1))))
	objects.Add(geometry.NewSphere(core.NewVec3(4, 1, 0), 1.0, material.NewMetal(core.NewColor(0.7, 0.6, 0.5), 0.0)))

	cameraConfig := defaultCameraConfig()
	cameraConfig.Aperture = 0.1

	return newScene("random-spheres", objects, cameraConfig, defaultBackground(), defaultSampling, 400, random)
}

// NewTwoSpheres creates two large checkered spheres touching at the origin
func NewTwoSpheres(random *rand.Rand) (*Scene, error) {
	checker := material.NewTexturedLambertian(
		material.NewCheckerTexture(core.NewColor(0.2, 0.3, 0.1), core.NewColor(0.9, 0.9, 0.9)))

	objects := geometry.NewHittableList(
		geometry.NewSphere(core.NewVec3(0, -10, 0), 10, checker),
		geometry.NewSphere(core.NewVec3(0, 10, 0), 10, checker),
	)

	return newScene("two-spheres", objects, defaultCameraConfig(), defaultBackground(), defaultSampling, 400, random)
}

// NewTwoPerlinSpheres creates a marble sphere resting on a marble ground
func NewTwoPerlinSpheres(random *rand.Rand) (*Scene, error) {
	return newScene("two-perlin-spheres", perlinSpheres(random), defaultCameraConfig(), defaultBackground(), defaultSampling, 400, random)
}

// perlinSpheres is shared by the marble scenes; both spheres use one noise field
func perlinSpheres(random *rand.Rand) *geometry.HittableList {
	marble := material.NewTexturedLambertian(material.NewNoiseTexture(4, random))
	return geometry.NewHittableList(
		geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, marble),
		geometry.NewSphere(core.NewVec3(0, 2, 0), 2, marble),
	)
}

// NewEarth creates a globe textured with the image at texturePath.
// An unreadable image is logged and replaced by the placeholder texture.
func NewEarth(texturePath string, maxTextureSize int, logger core.Logger, random *rand.Rand) (*Scene, error) {
	if texturePath == "" {
		texturePath = DefaultTexturePath
	}

	texture := material.NewImageTexture(0, 0, nil)
	if data, err := loaders.LoadImage(texturePath, maxTextureSize); err != nil {
		logger.Printf("Warning: %v; rendering placeholder texture\n", err)
	} else {
		texture = material.NewImageTexture(data.Width, data.Height, data.Pixels)
	}

	objects := geometry.NewHittableList(
		geometry.NewSphere(core.NewVec3(0, 0, 0), 2, material.NewTexturedLambertian(texture)),
	)

	return newScene("earth", objects, defaultCameraConfig(), defaultBackground(), defaultSampling, 400, random)
}

// NewSimpleLight creates the marble spheres lit only by a rectangular light
func NewSimpleLight(random *rand.Rand) (*Scene, error) {
	objects := perlinSpheres(random)
	objects.Add(geometry.NewXYRect(3, 5, 1, 3, -2, material.NewDiffuseLight(core.NewColor(4, 4, 4))))

	cameraConfig := defaultCameraConfig()
	cameraConfig.LookFrom = core.NewVec3(26, 3, 6)
	cameraConfig.LookAt = core.NewVec3(0, 2, 0)

	sampling := renderer.SamplingConfig{SamplesPerPixel: 400, MaxDepth: 50}
	return newScene("simple-light", objects, cameraConfig, integrator.NewSolidBackground(core.Color{}), sampling, 400, random)
}

// NewCornellBox creates the classic box with a ceiling light and two rotated blocks
func NewCornellBox(random *rand.Rand) (*Scene, error) {
	red := material.NewLambertian(core.NewColor(0.65, 0.05, 0.05))
	white := material.NewLambertian(core.NewColor(0.73, 0.73, 0.73))
	green := material.NewLambertian(core.NewColor(0.12, 0.45, 0.15))
	light := material.NewDiffuseLight(core.NewColor(15, 15, 15))

	objects := geometry.NewHittableList(
		geometry.NewYZRect(0, 555, 0, 555, 555, green),
		geometry.NewYZRect(0, 555, 0, 555, 0, red),
		geometry.NewXZRect(213, 343, 227, 332, 554, light),
		geometry.NewXZRect(0, 555, 0, 555, 0, white),
		geometry.NewXZRect(0, 555, 0, 555, 555, white),
		geometry.NewXYRect(0, 555, 0, 555, 555, white),
	)

	tall := geometry.NewBlock(core.NewVec3(0, 0, 0), core.NewVec3(165, 330, 165), white)
	objects.Add(geometry.NewTranslate(geometry.NewRotateY(tall, 15), core.NewVec3(265, 0, 295)))

	short := geometry.NewBlock(core.NewVec3(0, 0, 0), core.NewVec3(165, 165, 165), white)
	objects.Add(geometry.NewTranslate(geometry.NewRotateY(short, -18), core.NewVec3(130, 0, 65)))

	cameraConfig := defaultCameraConfig()
	cameraConfig.LookFrom = core.NewVec3(278, 278, -800)
	cameraConfig.LookAt = core.NewVec3(278, 278, 0)
	cameraConfig.VFov = 40
	cameraConfig.AspectRatio = 1

	sampling := renderer.SamplingConfig{SamplesPerPixel: 200, MaxDepth: 50}
	return newScene("cornell-box", objects, cameraConfig, integrator.NewSolidBackground(core.Color{}), sampling, 600, random)
}
