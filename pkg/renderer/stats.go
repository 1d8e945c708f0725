package renderer

import (
	"fmt"
	"time"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels  int           // Total number of pixels rendered
	TotalSamples int           // Total number of camera samples traced
	Tiles        int           // Number of tiles completed
	Duration     time.Duration // Wall-clock render time
}

// Add accumulates the counters of other into s
func (s *RenderStats) Add(other RenderStats) {
	s.TotalPixels += other.TotalPixels
	s.TotalSamples += other.TotalSamples
	s.Tiles += other.Tiles
}

// AverageSamples returns the mean number of samples per pixel
func (s RenderStats) AverageSamples() float64 {
	if s.TotalPixels == 0 {
		return 0
	}
	return float64(s.TotalSamples) / float64(s.TotalPixels)
}

// SamplesPerSecond returns the sampling throughput, or 0 when no time was recorded
func (s RenderStats) SamplesPerSecond() float64 {
	if s.Duration <= 0 {
		return 0
	}
	return float64(s.TotalSamples) / s.Duration.Seconds()
}

func (s RenderStats) String() string {
	return fmt.Sprintf("%d pixels, %d samples (%.1f/px) in %v, %.0f samples/s",
		s.TotalPixels, s.TotalSamples, s.AverageSamples(), s.Duration.Round(time.Millisecond), s.SamplesPerSecond())
}
