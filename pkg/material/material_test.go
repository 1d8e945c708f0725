package material

import (
	"math"
	"math/rand"
	"testing"

	"github.com/df07/go-weekend-pathtracer/pkg/core"
	"github.com/df07/go-weekend-pathtracer/pkg/geometry"
)

func upHit(frontFace bool) *core.HitRecord {
	return &core.HitRecord{
		Point:     core.NewVec3(0, 0, 0),
		Normal:    core.NewVec3(0, 1, 0),
		T:         1.0,
		U:         0.25,
		V:         0.75,
		FrontFace: frontFace,
	}
}

func inUnitRange(c core.Color) bool {
	return c.X >= 0 && c.X <= 1 && c.Y >= 0 && c.Y <= 1 && c.Z >= 0 && c.Z <= 1
}

func TestMaterials_AttenuationInUnitRange(t *testing.T) {
	tests := []struct {
		name     string
		material core.Material
	}{
		{"lambertian", NewLambertian(core.NewColor(0.8, 0.3, 0.1))},
		{"checker lambertian", NewTexturedLambertian(NewCheckerTexture(core.NewColor(0.2, 0.3, 0.1), core.NewColor(0.9, 0.9, 0.9)))},
		{"noise lambertian", NewTexturedLambertian(NewNoiseTexture(4, rand.New(rand.NewSource(1))))},
		{"metal", NewMetal(core.NewColor(0.7, 0.6, 0.5), 0.3)},
		{"glass", NewDielectric(1.5)},
	}

	random := rand.New(rand.NewSource(42))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for i := 0; i < 500; i++ {
				direction := core.NewVec3(core.RandomRange(random, -1, 1), -1, core.RandomRange(random, -1, 1))
				ray := core.NewRayAtTime(core.NewVec3(0, 1, 0), direction, 0.5)
				hit := upHit(true)
				hit.Point = core.RandomVec3Range(random, -3, 3)

				result, ok := tt.material.Scatter(ray, hit, random)
				if !ok {
					continue
				}
				if !inUnitRange(result.Attenuation) {
					t.Fatalf("Attenuation %v outside [0,1]", result.Attenuation)
				}
				if result.Scattered.Time != 0.5 {
					t.Fatalf("Scattered ray lost the incoming time: %f", result.Scattered.Time)
				}
				if result.Scattered.Origin != hit.Point {
					t.Fatalf("Scattered ray must start at the hit point")
				}
			}
		})
	}
}

func TestLambertian_Scatter(t *testing.T) {
	albedo := core.NewColor(0.5, 0.6, 0.7)
	lambertian := NewLambertian(albedo)
	random := rand.New(rand.NewSource(7))
	ray := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0))

	for i := 0; i < 1000; i++ {
		result, ok := lambertian.Scatter(ray, upHit(true), random)
		if !ok {
			t.Fatal("Lambertian must always scatter")
		}
		if result.Attenuation != albedo {
			t.Fatalf("Expected attenuation %v, got %v", albedo, result.Attenuation)
		}
		// normal + unit vector never points below the surface
		if result.Scattered.Direction.Dot(core.NewVec3(0, 1, 0)) < 0 {
			t.Fatalf("Scatter direction %v below surface", result.Scattered.Direction)
		}
		if result.Scattered.Direction.NearZero() {
			t.Fatal("Degenerate scatter direction not replaced by the normal")
		}
	}
}

func TestNewMetal_FuzzClamp(t *testing.T) {
	tests := []struct {
		name         string
		inputFuzz    float64
		expectedFuzz float64
	}{
		{"Valid fuzz 0.0", 0.0, 0.0},
		{"Valid fuzz 0.5", 0.5, 0.5},
		{"Valid fuzz 1.0", 1.0, 1.0},
		{"Clamp above 1.0", 1.5, 1.0},
		{"Clamp below 0.0", -0.5, 0.0},
	}

	albedo := core.NewColor(0.8, 0.8, 0.8)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			metal := NewMetal(albedo, tt.inputFuzz)
			if metal.Fuzz != tt.expectedFuzz {
				t.Errorf("Expected fuzz %f, got %f", tt.expectedFuzz, metal.Fuzz)
			}
		})
	}
}

func TestMetal_PerfectReflection(t *testing.T) {
	metal := NewMetal(core.NewColor(0.9, 0.9, 0.9), 0.0)
	random := rand.New(rand.NewSource(42))

	// Ray hitting surface at 45 degrees
	rayIn := core.NewRay(core.NewVec3(-1, 1, 0), core.NewVec3(1, -1, 0))
	result, ok := metal.Scatter(rayIn, upHit(true), random)
	if !ok {
		t.Fatal("Metal should scatter")
	}

	expected := core.NewVec3(1, 1, 0).Normalize()
	if result.Scattered.Direction.Subtract(expected).Length() > 1e-10 {
		t.Errorf("Perfect reflection failed: expected %v, got %v", expected, result.Scattered.Direction)
	}
}

func TestMetal_GrazingFuzzIsAbsorbed(t *testing.T) {
	metal := NewMetal(core.NewColor(1, 1, 1), 1.0)
	random := rand.New(rand.NewSource(3))

	// Near-grazing rays with full fuzz are sometimes pushed below the surface
	rayIn := core.NewRay(core.NewVec3(-1, 0.01, 0), core.NewVec3(1, -0.01, 0))
	absorbed := 0
	for i := 0; i < 1000; i++ {
		result, ok := metal.Scatter(rayIn, upHit(true), random)
		if !ok {
			absorbed++
			continue
		}
		if result.Scattered.Direction.Dot(core.NewVec3(0, 1, 0)) <= 0 {
			t.Fatal("Scattered ray reported below the surface")
		}
	}
	if absorbed == 0 {
		t.Error("Expected some grazing rays to be absorbed")
	}
}

func TestDielectric_Scatter(t *testing.T) {
	glass := NewDielectric(1.5)
	random := rand.New(rand.NewSource(42))
	ray := core.NewRay(core.NewVec3(-1, 1, 0), core.NewVec3(1, -1, 0))

	reflections, refractions := 0, 0
	for i := 0; i < 2000; i++ {
		result, ok := glass.Scatter(ray, upHit(true), random)
		if !ok {
			t.Fatal("Dielectric should always scatter")
		}
		if result.Attenuation != core.NewColor(1, 1, 1) {
			t.Fatalf("Expected attenuation exactly (1,1,1), got %v", result.Attenuation)
		}
		if result.Scattered.Direction.Y > 0 {
			reflections++
		} else {
			refractions++
		}
	}

	// Schlick gives about 5% at 45 degrees air to glass
	if refractions == 0 || reflections == 0 {
		t.Errorf("Expected both reflection and refraction, got %d/%d", reflections, refractions)
	}
	if fraction := float64(reflections) / 2000; fraction > 0.15 {
		t.Errorf("Reflection fraction %f too high", fraction)
	}
}

func TestDielectric_TotalInternalReflection(t *testing.T) {
	glass := NewDielectric(1.5)
	random := rand.New(rand.NewSource(1))

	// Exiting glass at 60 degrees exceeds the critical angle (~41.8)
	direction := core.NewVec3(math.Sin(math.Pi/3), math.Cos(math.Pi/3), 0)
	ray := core.NewRay(core.NewVec3(0, -1, 0), direction)
	hit := upHit(false)
	hit.Normal = core.NewVec3(0, -1, 0)

	for i := 0; i < 100; i++ {
		result, _ := glass.Scatter(ray, hit, random)
		if result.Scattered.Direction.Y >= 0 {
			t.Fatalf("Expected total internal reflection, got %v", result.Scattered.Direction)
		}
	}
}

func TestDielectric_IndexOneSphereIsInvisible(t *testing.T) {
	air := NewDielectric(1.0)
	sphere := geometry.NewSphere(core.NewVec3(0, 0, 0), 1, air)
	random := rand.New(rand.NewSource(5))

	for i := 0; i < 200; i++ {
		origin := core.NewVec3(core.RandomRange(random, -0.2, 0.2), core.RandomRange(random, -0.2, 0.2), 5)
		direction := core.NewVec3(core.RandomRange(random, -0.01, 0.01), core.RandomRange(random, -0.01, 0.01), -1).Normalize()
		ray := core.NewRay(origin, direction)

		// Enter, cross the interior, exit
		for bounce := 0; bounce < 2; bounce++ {
			hit, ok := sphere.Hit(ray, 0.001, math.Inf(1))
			if !ok {
				t.Fatalf("Ray %d bounce %d missed the sphere", i, bounce)
			}
			result, ok := hit.Material.Scatter(ray, hit, random)
			if !ok {
				t.Fatal("Dielectric should always scatter")
			}
			ray = result.Scattered
		}

		if ray.Direction.Subtract(direction).Length() > 1e-9 {
			t.Fatalf("Ray %d deflected: %v -> %v", i, direction, ray.Direction)
		}
		// The exit point lies on the original line
		offset := ray.Origin.Subtract(origin)
		if offset.Cross(direction).Length() > 1e-9 {
			t.Fatalf("Ray %d exit point %v is off the original line", i, ray.Origin)
		}
	}
}

func TestReflectance(t *testing.T) {
	tests := []struct {
		name     string
		cosine   float64
		ratio    float64
		expected float64
	}{
		{"normal incidence glass", 1.0, 1.0 / 1.5, 0.04},
		{"grazing", 0.0, 1.0 / 1.5, 1.0},
		{"matched index", 1.0, 1.0, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Reflectance(tt.cosine, tt.ratio); math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("Expected %f, got %f", tt.expected, got)
			}
		})
	}
}

func TestDiffuseLight(t *testing.T) {
	emission := core.NewColor(4, 4, 4)
	light := NewDiffuseLight(emission)
	random := rand.New(rand.NewSource(1))

	if _, ok := light.Scatter(core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0)), upHit(true), random); ok {
		t.Error("Diffuse light should not scatter")
	}
	if got := light.Emitted(0.3, 0.7, core.NewVec3(1, 2, 3)); got != emission {
		t.Errorf("Expected emission %v, got %v", emission, got)
	}

	for _, m := range []core.Material{NewLambertian(core.NewColor(1, 1, 1)), NewMetal(core.NewColor(1, 1, 1), 0), NewDielectric(1.5)} {
		if got := m.Emitted(0.5, 0.5, core.Vec3{}); got != (core.Color{}) {
			t.Errorf("%T: expected no emission, got %v", m, got)
		}
	}
}

func TestTexturedDiffuseLight(t *testing.T) {
	bright := core.NewColor(8, 8, 8)
	dim := core.NewColor(1, 1, 1)
	light := NewTexturedDiffuseLight(NewCheckerTexture(bright, dim))

	if got := light.Emitted(0, 0, core.NewVec3(0.1, 0.1, 0.1)); got != bright {
		t.Errorf("Expected bright emission, got %v", got)
	}
	if got := light.Emitted(0, 0, core.NewVec3(-0.1, 0.1, 0.1)); got != dim {
		t.Errorf("Expected dim emission, got %v", got)
	}
}

func TestImageTexturedSphere_PoleScatter(t *testing.T) {
	pixels := make([]byte, 3*3*3)
	texture := NewImageTexture(3, 3, pixels)
	lambertian := NewTexturedLambertian(texture)
	random := rand.New(rand.NewSource(23))

	for i := 0; i < 5000; i++ {
		center := core.RandomVec3Range(random, -20, 20)
		radius := core.RandomRange(random, 0.1, 10)
		sphere := geometry.NewSphere(center, radius, lambertian)

		ray := core.NewRay(center.Add(core.NewVec3(0, radius+1, 0)), core.NewVec3(0, -1, 0))
		hit, isHit := sphere.Hit(ray, 0.001, math.Inf(1))
		if !isHit {
			t.Fatalf("Trial %d: expected pole hit", i)
		}
		result, ok := lambertian.Scatter(ray, hit, random)
		if !ok {
			t.Fatalf("Trial %d: expected lambertian to scatter", i)
		}
		if result.Attenuation != (core.Color{}) {
			t.Fatalf("Trial %d: expected black texel, got %v", i, result.Attenuation)
		}
	}
}
