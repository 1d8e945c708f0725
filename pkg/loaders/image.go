package loaders

import (
	"fmt"
	"image"
	"io"

	"github.com/disintegration/imaging"
	"github.com/nfnt/resize"
	_ "golang.org/x/image/webp" // WebP decoder; imaging registers PNG, JPEG, GIF, BMP and TIFF
)

// ImageData contains a decoded image as packed 8-bit RGB, top row first
type ImageData struct {
	Width  int
	Height int
	Pixels []byte // Pixels[(y*Width+x)*3 : +3] = R, G, B
}

// LoadImage decodes the image at path, honoring EXIF orientation, and
// downscales it so neither side exceeds maxDimension (0 disables scaling).
func LoadImage(path string, maxDimension int) (*ImageData, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to open image file %s: %w", path, err)
	}
	return FromImage(fitWithin(img, maxDimension)), nil
}

// DecodeImage is LoadImage for an already open stream
func DecodeImage(r io.Reader, maxDimension int) (*ImageData, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return FromImage(fitWithin(img, maxDimension)), nil
}

// FromImage packs any image into RGB bytes, dropping alpha
func FromImage(img image.Image) *ImageData {
	nrgba := imaging.Clone(img)
	width := nrgba.Rect.Dx()
	height := nrgba.Rect.Dy()
	pixels := make([]byte, 0, width*height*3)

	for y := 0; y < height; y++ {
		row := nrgba.Pix[y*nrgba.Stride : y*nrgba.Stride+width*4]
		for x := 0; x < width; x++ {
			pixels = append(pixels, row[x*4], row[x*4+1], row[x*4+2])
		}
	}

	return &ImageData{
		Width:  width,
		Height: height,
		Pixels: pixels,
	}
}

// fitWithin shrinks img with Lanczos resampling so it fits a maxDimension square, keeping its aspect ratio
func fitWithin(img image.Image, maxDimension int) image.Image {
	bounds := img.Bounds()
	if maxDimension <= 0 || (bounds.Dx() <= maxDimension && bounds.Dy() <= maxDimension) {
		return img
	}
	return resize.Thumbnail(uint(maxDimension), uint(maxDimension), img, resize.Lanczos3)
}
