package renderer

import (
	"image"
	"image/color"

	"github.com/df07/go-weekend-pathtracer/pkg/core"
)

// Framebuffer holds averaged linear pixel colors. Row 0 is the top of the image.
type Framebuffer struct {
	Width  int
	Height int
	Pixels []core.Color // Row-major: Pixels[y*Width + x]
}

// NewFramebuffer allocates a black framebuffer
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		Width:  width,
		Height: height,
		Pixels: make([]core.Color, width*height),
	}
}

// At returns the linear color at (x, y)
func (fb *Framebuffer) At(x, y int) core.Color {
	return fb.Pixels[y*fb.Width+x]
}

// Set stores the linear color at (x, y)
func (fb *Framebuffer) Set(x, y int, c core.Color) {
	fb.Pixels[y*fb.Width+x] = c
}

// RGB8 returns the gamma-corrected 8-bit channels of the pixel at (x, y)
func (fb *Framebuffer) RGB8(x, y int) (r, g, b uint8) {
	c := fb.At(x, y).GammaCorrect(2).Clamp(0, 0.999)
	return toByte(c.X), toByte(c.Y), toByte(c.Z)
}

// ToImage converts the framebuffer to an 8-bit image with gamma 2
func (fb *Framebuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			r, g, b := fb.RGB8(x, y)
			img.SetRGBA(x, y, color.RGBA{R: r, G: g, B: b, A: 255})
		}
	}
	return img
}

// toByte scales a gamma-corrected component in [0, 0.999] to [0, 255]
func toByte(component float64) uint8 {
	// Negative input survives gamma as NaN
	if !(component > 0) {
		return 0
	}
	return uint8(256 * component)
}
