package renderer

import (
	"context"
	"errors"
	"fmt"
	"image"
	"math/rand"
	"runtime"
	"sync"
	"time"

	"github.com/df07/go-weekend-pathtracer/pkg/core"
)

// DefaultTileHeight is the number of rows in each tile handed to a worker
const DefaultTileHeight = 8

// TileTask represents a tile rendering task for the worker pool
type TileTask struct {
	TaskID int             // Tile index, also used to derive the seed
	Bounds image.Rectangle // Pixels to render
	Seed   int64           // Seed for the tile's private generator
}

// TileResult contains the result from rendering a tile
type TileResult struct {
	TaskID int
	Stats  RenderStats
	Error  error
}

// WorkerPool manages parallel tile rendering
type WorkerPool struct {
	taskQueue   chan TileTask
	resultQueue chan TileResult
	workers     []*Worker
	numWorkers  int
	wg          sync.WaitGroup
}

// Worker handles individual tile rendering tasks
type Worker struct {
	ID          int
	raytracer   *Raytracer
	framebuffer *Framebuffer
	taskQueue   chan TileTask
	resultQueue chan TileResult
}

// NewWorkerPool creates a worker pool rendering into fb. maxTasks sizes the queues so submission never blocks.
func NewWorkerPool(raytracer *Raytracer, fb *Framebuffer, numWorkers, maxTasks int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	wp := &WorkerPool{
		taskQueue:   make(chan TileTask, maxTasks),
		resultQueue: make(chan TileResult, maxTasks),
		numWorkers:  numWorkers,
	}

	for i := 0; i < numWorkers; i++ {
		wp.workers = append(wp.workers, &Worker{
			ID:          i,
			raytracer:   raytracer,
			framebuffer: fb,
			taskQueue:   wp.taskQueue,
			resultQueue: wp.resultQueue,
		})
	}

	return wp
}

// Start begins all workers
func (wp *WorkerPool) Start(ctx context.Context) {
	for _, worker := range wp.workers {
		wp.wg.Add(1)
		go worker.run(ctx, &wp.wg)
	}
}

// Stop gracefully shuts down all workers
func (wp *WorkerPool) Stop() {
	close(wp.taskQueue) // No more tasks
	wp.wg.Wait()        // Wait for workers to finish
	close(wp.resultQueue)
}

// SubmitTask submits a tile task to the worker pool
func (wp *WorkerPool) SubmitTask(task TileTask) {
	wp.taskQueue <- task
}

// GetResult retrieves a completed tile result
func (wp *WorkerPool) GetResult() (TileResult, bool) {
	result, ok := <-wp.resultQueue
	return result, ok
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// run is the main worker loop
func (w *Worker) run(ctx context.Context, wg *sync.WaitGroup) {
	defer wg.Done()

	for task := range w.taskQueue {
		// Drain remaining tasks without rendering once cancelled
		if err := ctx.Err(); err != nil {
			w.resultQueue <- TileResult{TaskID: task.TaskID, Error: err}
			continue
		}

		random := rand.New(rand.NewSource(task.Seed))
		stats, err := w.raytracer.RenderBounds(ctx, task.Bounds, w.framebuffer, random)
		stats.Tiles = 1

		w.resultQueue <- TileResult{TaskID: task.TaskID, Stats: stats, Error: err}
	}
}

// ParallelOptions controls how an image is split across workers
type ParallelOptions struct {
	Workers    int   // Number of goroutines (0 = use CPU count)
	Seed       int64 // Base seed; each tile derives its own from this
	TileHeight int   // Rows per tile (0 = DefaultTileHeight)
}

// RenderParallel renders the full image by splitting it into row bands.
// Every band owns a generator seeded from (Seed, band index), so the result
// does not depend on the number of workers or on scheduling order.
func RenderParallel(ctx context.Context, rt *Raytracer, opts ParallelOptions, logger core.Logger) (*Framebuffer, RenderStats, error) {
	start := time.Now()

	tileHeight := opts.TileHeight
	if tileHeight <= 0 {
		tileHeight = DefaultTileHeight
	}

	tiles := NewRowTiles(rt.width, rt.height, tileHeight)
	fb := NewFramebuffer(rt.width, rt.height)

	pool := NewWorkerPool(rt, fb, opts.Workers, len(tiles))
	logger.Printf("Rendering %dx%d in %d tiles with %d workers\n", rt.width, rt.height, len(tiles), pool.GetNumWorkers())

	pool.Start(ctx)
	for i, bounds := range tiles {
		pool.SubmitTask(TileTask{TaskID: i, Bounds: bounds, Seed: TileSeed(opts.Seed, i)})
	}

	var stats RenderStats
	var errs []error
	for range tiles {
		result, ok := pool.GetResult()
		if !ok {
			break
		}
		if result.Error != nil {
			errs = append(errs, fmt.Errorf("tile %d: %w", result.TaskID, result.Error))
			continue
		}
		stats.Add(result.Stats)
	}
	pool.Stop()

	stats.Duration = time.Since(start)
	if err := ctx.Err(); err != nil {
		return fb, stats, fmt.Errorf("render cancelled after %d/%d tiles: %w", stats.Tiles, len(tiles), err)
	}
	if len(errs) > 0 {
		return fb, stats, errors.Join(errs...)
	}
	return fb, stats, nil
}

// NewRowTiles splits a width x height image into full-width bands of at most tileHeight rows
func NewRowTiles(width, height, tileHeight int) []image.Rectangle {
	var tiles []image.Rectangle
	for y := 0; y < height; y += tileHeight {
		tiles = append(tiles, image.Rect(0, y, width, min(y+tileHeight, height)))
	}
	return tiles
}

// TileSeed derives a well-mixed per-tile seed from a base seed
func TileSeed(seed int64, tileIndex int) int64 {
	// splitmix64 finalizer
	z := uint64(seed) + uint64(tileIndex+1)*0x9E3779B97F4A7C15
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return int64(z ^ (z >> 31))
}
