package renderer

import (
	"bufio"
	"fmt"
	"io"

	"github.com/disintegration/imaging"
)

// WritePPM writes fb as a plain-text P3 image, top row first, one "R G B" line per pixel
func WritePPM(w io.Writer, fb *Framebuffer) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P3\n%d %d\n255\n", fb.Width, fb.Height); err != nil {
		return fmt.Errorf("writing ppm header: %w", err)
	}
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			r, g, b := fb.RGB8(x, y)
			if _, err := fmt.Fprintf(bw, "%d %d %d\n", r, g, b); err != nil {
				return fmt.Errorf("writing ppm pixel (%d,%d): %w", x, y, err)
			}
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flushing ppm: %w", err)
	}
	return nil
}

// WritePNG encodes fb as a PNG
func WritePNG(w io.Writer, fb *Framebuffer) error {
	if err := imaging.Encode(w, fb.ToImage(), imaging.PNG); err != nil {
		return fmt.Errorf("encoding png: %w", err)
	}
	return nil
}

// SavePNG writes fb to path; the format follows the file extension
func SavePNG(path string, fb *Framebuffer) error {
	if err := imaging.Save(fb.ToImage(), path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}
