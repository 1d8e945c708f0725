package material

import (
	"github.com/df07/go-weekend-pathtracer/pkg/core"
)

const bytesPerPixel = 3

// placeholderColor marks surfaces whose image failed to load
var placeholderColor = core.NewColor(0, 1, 1)

// ImageTexture provides color from a packed 8-bit RGB image
type ImageTexture struct {
	Width  int
	Height int
	Pixels []byte // Row-major, top row first: Pixels[(y*Width+x)*3 : +3]
}

// NewImageTexture creates a new image texture. A nil or short buffer renders as solid cyan.
func NewImageTexture(width, height int, pixels []byte) *ImageTexture {
	return &ImageTexture{
		Width:  width,
		Height: height,
		Pixels: pixels,
	}
}

// Value samples the texture at (u, v) using nearest-neighbor filtering
func (t *ImageTexture) Value(u, v float64, point core.Point3) core.Color {
	if t.Width <= 0 || t.Height <= 0 || len(t.Pixels) < t.Width*t.Height*bytesPerPixel {
		return placeholderColor
	}

	u = clamp01(u)
	v = 1.0 - clamp01(v) // V=0 is the bottom row; images store the top row first

	x := int(u * float64(t.Width))
	y := int(v * float64(t.Height))

	// u or v of exactly 1 lands one past the edge
	if x >= t.Width {
		x = t.Width - 1
	}
	if y >= t.Height {
		y = t.Height - 1
	}

	const colorScale = 1.0 / 255.0
	offset := (y*t.Width + x) * bytesPerPixel
	return core.NewColor(
		colorScale*float64(t.Pixels[offset]),
		colorScale*float64(t.Pixels[offset+1]),
		colorScale*float64(t.Pixels[offset+2]),
	)
}

// clamp01 limits x to [0, 1], mapping NaN to 0
func clamp01(x float64) float64 {
	if !(x > 0) {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
