package material

import (
	"math"
	"math/rand"
	"testing"

	"github.com/df07/go-weekend-pathtracer/pkg/core"
)

func TestCheckerTexture(t *testing.T) {
	odd := core.NewColor(0, 0, 0)
	even := core.NewColor(1, 1, 1)
	checker := NewCheckerTexture(even, odd)

	tests := []struct {
		name     string
		point    core.Vec3
		expected core.Color
	}{
		{"all positive sines", core.NewVec3(0.1, 0.1, 0.1), even},
		{"one negative sine", core.NewVec3(-0.1, 0.1, 0.1), odd},
		{"two negative sines", core.NewVec3(-0.1, -0.1, 0.1), even},
		{"three negative sines", core.NewVec3(-0.1, -0.1, -0.1), odd},
		{"zero product", core.NewVec3(0, 0.1, 0.1), even},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := checker.Value(0, 0, tt.point); got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestNoiseTexture(t *testing.T) {
	texture := NewNoiseTexture(4, rand.New(rand.NewSource(9)))
	random := rand.New(rand.NewSource(10))

	for i := 0; i < 500; i++ {
		point := core.RandomVec3Range(random, -20, 20)
		c := texture.Value(0, 0, point)
		if c.X != c.Y || c.Y != c.Z {
			t.Fatalf("Expected grey, got %v", c)
		}
		if !inUnitRange(c) {
			t.Fatalf("Marble value %v outside [0,1]", c)
		}
	}
}

func TestImageTexture(t *testing.T) {
	// 2x2 image, top row first:
	//   red   green
	//   blue  white
	pixels := []byte{
		255, 0, 0, 0, 255, 0,
		0, 0, 255, 255, 255, 255,
	}
	texture := NewImageTexture(2, 2, pixels)

	red := core.NewColor(1, 0, 0)
	green := core.NewColor(0, 1, 0)
	blue := core.NewColor(0, 0, 1)
	white := core.NewColor(1, 1, 1)

	tests := []struct {
		name     string
		u, v     float64
		expected core.Color
	}{
		{"top left", 0.1, 0.9, red},
		{"top right", 0.9, 0.9, green},
		{"bottom left", 0.1, 0.1, blue},
		{"bottom right", 0.9, 0.1, white},
		{"u and v of one clamp to last pixel", 1.0, 1.0, green},
		{"u and v of zero", 0.0, 0.0, blue},
		{"negative clamps to zero", -3, -3, blue},
		{"above one clamps", 7, 0.2, white},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := texture.Value(tt.u, tt.v, core.Vec3{}); got.Subtract(tt.expected).Length() > 1e-12 {
				t.Errorf("UV(%g,%g): expected %v, got %v", tt.u, tt.v, tt.expected, got)
			}
		})
	}
}

func TestImageTexture_NaNCoordinates(t *testing.T) {
	// Odd width so a bad offset cannot land on a valid pixel by accident
	pixels := make([]byte, 3*3*3)
	for i := range pixels {
		pixels[i] = 255
	}
	texture := NewImageTexture(3, 3, pixels)
	nan := math.NaN()

	tests := []struct {
		name string
		u, v float64
	}{
		{"nan v", 0.5, nan},
		{"nan u", nan, 0.5},
		{"both nan", nan, nan},
		{"infinite", math.Inf(1), math.Inf(-1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := texture.Value(tt.u, tt.v, core.Vec3{})
			if got.Subtract(core.NewColor(1, 1, 1)).Length() > 1e-12 {
				t.Errorf("Expected a texel from the image, got %v", got)
			}
		})
	}
}

func TestClamp01(t *testing.T) {
	tests := []struct {
		in, expected float64
	}{
		{-0.5, 0},
		{0, 0},
		{0.25, 0.25},
		{1, 1},
		{3, 1},
		{math.NaN(), 0},
		{math.Inf(-1), 0},
		{math.Inf(1), 1},
	}

	for _, tt := range tests {
		if got := clamp01(tt.in); got != tt.expected {
			t.Errorf("clamp01(%v): expected %v, got %v", tt.in, tt.expected, got)
		}
	}
}

func TestImageTexture_Scaling(t *testing.T) {
	texture := NewImageTexture(1, 1, []byte{51, 102, 204})
	got := texture.Value(0.5, 0.5, core.Vec3{})
	expected := core.NewColor(0.2, 0.4, 0.8)
	if math.Abs(got.X-expected.X) > 1e-12 || math.Abs(got.Y-expected.Y) > 1e-12 || math.Abs(got.Z-expected.Z) > 1e-12 {
		t.Errorf("Expected %v, got %v", expected, got)
	}
}

func TestImageTexture_Placeholder(t *testing.T) {
	cyan := core.NewColor(0, 1, 1)
	tests := []struct {
		name    string
		texture *ImageTexture
	}{
		{"nil buffer", NewImageTexture(4, 4, nil)},
		{"empty buffer", NewImageTexture(0, 0, []byte{})},
		{"short buffer", NewImageTexture(2, 2, []byte{1, 2, 3})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.texture.Value(0.5, 0.5, core.Vec3{}); got != cyan {
				t.Errorf("Expected cyan placeholder, got %v", got)
			}
		})
	}
}
