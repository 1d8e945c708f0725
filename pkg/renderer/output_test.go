package renderer

import (
	"bytes"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/disintegration/imaging"

	"github.com/df07/go-weekend-pathtracer/pkg/core"
)

func TestFramebuffer_RGB8(t *testing.T) {
	tests := []struct {
		linear   float64
		expected uint8
	}{
		{0, 0},
		{-1, 0},
		{0.25, 128},
		{1, 255},
		{4, 255},
		{0.01, 25},
		{math.NaN(), 0},
		{math.Inf(1), 255},
	}

	fb := NewFramebuffer(len(tests), 1)
	for i, tt := range tests {
		fb.Set(i, 0, core.NewColor(tt.linear, tt.linear, tt.linear))
	}

	for i, tt := range tests {
		r, g, b := fb.RGB8(i, 0)
		if r != tt.expected || g != tt.expected || b != tt.expected {
			t.Errorf("RGB8 of %g: expected %d, got (%d,%d,%d)", tt.linear, tt.expected, r, g, b)
		}
	}
}

func TestWritePPM(t *testing.T) {
	fb := NewFramebuffer(2, 2)
	fb.Set(0, 0, core.NewColor(0.25, 1, 0))
	fb.Set(1, 0, core.NewColor(4, 0, 0))
	fb.Set(0, 1, core.NewColor(0, 0, 1))

	var buf bytes.Buffer
	if err := WritePPM(&buf, fb); err != nil {
		t.Fatalf("WritePPM failed: %v", err)
	}

	expected := strings.Join([]string{
		"P3",
		"2 2",
		"255",
		"128 255 0",
		"255 0 0",
		"0 0 255",
		"0 0 0",
		"",
	}, "\n")
	if buf.String() != expected {
		t.Errorf("Unexpected PPM output:\n%s\nexpected:\n%s", buf.String(), expected)
	}
}

func TestWritePNG(t *testing.T) {
	fb := NewFramebuffer(3, 2)
	fb.Set(2, 1, core.NewColor(1, 0.25, 0))

	var buf bytes.Buffer
	if err := WritePNG(&buf, fb); err != nil {
		t.Fatalf("WritePNG failed: %v", err)
	}

	img, err := imaging.Decode(&buf)
	if err != nil {
		t.Fatalf("Decoding PNG failed: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 3 || b.Dy() != 2 {
		t.Fatalf("Expected 3x2 image, got %v", b)
	}
	r, g, b, _ := img.At(2, 1).RGBA()
	if r>>8 != 255 || g>>8 != 128 || b>>8 != 0 {
		t.Errorf("Expected (255,128,0), got (%d,%d,%d)", r>>8, g>>8, b>>8)
	}
}

func TestSavePNG(t *testing.T) {
	fb := NewFramebuffer(4, 4)
	path := t.TempDir() + "/out.png"
	if err := SavePNG(path, fb); err != nil {
		t.Fatalf("SavePNG failed: %v", err)
	}

	img, err := imaging.Open(path)
	if err != nil {
		t.Fatalf("Reopening saved image failed: %v", err)
	}
	if img.Bounds().Dx() != 4 {
		t.Errorf("Expected width 4, got %d", img.Bounds().Dx())
	}

	if err := SavePNG(t.TempDir()+"/out.unknown", fb); err == nil {
		t.Error("Expected an error for an unsupported extension")
	}
}

func TestRenderStats(t *testing.T) {
	var total RenderStats
	total.Add(RenderStats{TotalPixels: 10, TotalSamples: 40, Tiles: 1})
	total.Add(RenderStats{TotalPixels: 10, TotalSamples: 40, Tiles: 1})

	if total.AverageSamples() != 4 {
		t.Errorf("Expected 4 samples per pixel, got %f", total.AverageSamples())
	}
	if total.SamplesPerSecond() != 0 {
		t.Error("Expected zero throughput without a duration")
	}

	total.Duration = 2 * time.Second
	if total.SamplesPerSecond() != 40 {
		t.Errorf("Expected 40 samples/s, got %f", total.SamplesPerSecond())
	}
	if (RenderStats{}).AverageSamples() != 0 {
		t.Error("Expected zero average for empty stats")
	}
}
