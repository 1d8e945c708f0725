package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/mem"

	"github.com/df07/go-weekend-pathtracer/pkg/config"
	"github.com/df07/go-weekend-pathtracer/pkg/core"
	"github.com/df07/go-weekend-pathtracer/pkg/integrator"
	"github.com/df07/go-weekend-pathtracer/pkg/renderer"
	"github.com/df07/go-weekend-pathtracer/pkg/scene"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// cliOptions are the command line settings that are not part of config.Config
type cliOptions struct {
	envFile string
	list    bool
	help    bool
}

// parseFlags loads configuration from the env file and environment, then
// applies only the flags that were given explicitly.
func parseFlags(args []string, stderr io.Writer) (*config.Config, cliOptions, error) {
	var opts cliOptions
	var flagged config.Config

	fs := flag.NewFlagSet("pathtracer", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&flagged.Scene, "scene", "", "Scene to render (see -list)")
	fs.IntVar(&flagged.Width, "width", 0, "Image width in pixels (0 = scene default)")
	fs.IntVar(&flagged.SamplesPerPixel, "samples", 0, "Samples per pixel (0 = scene default)")
	fs.IntVar(&flagged.MaxDepth, "depth", 0, "Maximum bounces per path (0 = scene default)")
	fs.Int64Var(&flagged.Seed, "seed", 0, "Random seed for scene generation and sampling")
	fs.IntVar(&flagged.Workers, "workers", 0, "Render goroutines (0 = logical CPU count)")
	fs.StringVar(&flagged.Output, "out", "", "Output file (empty = PPM on stdout)")
	fs.StringVar(&flagged.Format, "format", "", "Output format: ppm or png (default from file extension, else ppm)")
	fs.StringVar(&flagged.TexturePath, "texture", "", "Image used by textured scenes")
	fs.StringVar(&flagged.Background, "background", "", "Override background: color name or r,g,b")
	fs.StringVar(&opts.envFile, "env", "", "Env file with RAYTRACER_* settings (default .env if present)")
	fs.BoolVar(&opts.list, "list", false, "List available scenes")
	fs.BoolVar(&opts.help, "help", false, "Show help information")

	if err := fs.Parse(args); err != nil {
		return nil, opts, err
	}
	if opts.help {
		fmt.Fprintln(stderr, "Weekend Path Tracer")
		fmt.Fprintln(stderr, "Usage: pathtracer [options]")
		fmt.Fprintln(stderr)
		fmt.Fprintln(stderr, "Options:")
		fs.PrintDefaults()
		return nil, opts, nil
	}

	cfg, err := config.Load(opts.envFile)
	if err != nil {
		return nil, opts, err
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "scene":
			cfg.Scene = flagged.Scene
		case "width":
			cfg.Width = flagged.Width
		case "samples":
			cfg.SamplesPerPixel = flagged.SamplesPerPixel
		case "depth":
			cfg.MaxDepth = flagged.MaxDepth
		case "seed":
			cfg.Seed = flagged.Seed
		case "workers":
			cfg.Workers = flagged.Workers
		case "out":
			cfg.Output = flagged.Output
		case "format":
			cfg.Format = flagged.Format
		case "texture":
			cfg.TexturePath = flagged.TexturePath
		case "background":
			cfg.Background = flagged.Background
		}
	})

	// Infer PNG from the file name unless a format was chosen explicitly
	formatSet := flagged.Format != "" || os.Getenv(config.EnvPrefix+"FORMAT") != ""
	if !formatSet && strings.EqualFold(filepath.Ext(cfg.Output), ".png") {
		cfg.Format = config.FormatPNG
	}

	return cfg, opts, nil
}

func run(args []string, stdout, stderr io.Writer) error {
	cfg, opts, err := parseFlags(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	if err != nil {
		return err
	}
	if opts.help {
		return nil
	}

	registry := scene.NewDefaultRegistry()
	if opts.list {
		listScenes(registry, stdout)
		return nil
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger := renderer.NewWriterLogger(stderr)
	logger.Printf("Starting Weekend Path Tracer...\n")
	logger.Printf("%s\n", hostSummary())

	selectedScene, err := createScene(registry, cfg, logger)
	if err != nil {
		return err
	}
	logger.Printf("Built %s\n", selectedScene.Summary())

	width := cfg.Width
	if width == 0 {
		width = selectedScene.Width
	}
	height := selectedScene.ImageHeight(width)

	sampling := selectedScene.SamplingConfig
	if cfg.SamplesPerPixel > 0 {
		sampling.SamplesPerPixel = cfg.SamplesPerPixel
	}
	if cfg.MaxDepth > 0 {
		sampling.MaxDepth = cfg.MaxDepth
	}
	logger.Printf("Rendering %s at %dx%d, %d samples per pixel, max depth %d\n",
		selectedScene.Name, width, height, sampling.SamplesPerPixel, sampling.MaxDepth)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	raytracer := renderer.NewRaytracer(selectedScene, width, height, sampling)
	fb, stats, err := renderer.RenderParallel(ctx, raytracer, renderer.ParallelOptions{
		Workers: resolveWorkers(cfg.Workers),
		Seed:    cfg.Seed,
	}, logger)
	if err != nil {
		return fmt.Errorf("render failed: %w", err)
	}
	logger.Printf("Render completed: %s\n", stats)

	if err := writeOutput(cfg, fb, stdout); err != nil {
		return err
	}
	if cfg.Output != "" {
		logger.Printf("Render saved as %s\n", cfg.Output)
	}
	return nil
}

// createScene builds the configured scene and applies the background override
func createScene(registry *scene.Registry, cfg *config.Config, logger core.Logger) (*scene.Scene, error) {
	random := rand.New(rand.NewSource(cfg.Seed))
	s, err := registry.Build(cfg.Scene, scene.Options{
		TexturePath:    cfg.TexturePath,
		MaxTextureSize: cfg.MaxTextureSize,
		Logger:         logger,
	}, random)
	if err != nil {
		return nil, fmt.Errorf("failed to create scene: %w", err)
	}

	if cfg.Background != "" {
		color, err := config.ParseColor(cfg.Background)
		if err != nil {
			return nil, err
		}
		s.Background = integrator.NewSolidBackground(color)
	}
	return s, nil
}

func listScenes(registry *scene.Registry, w io.Writer) {
	fmt.Fprintln(w, "Available scenes:")
	for _, name := range registry.Names() {
		fmt.Fprintf(w, "  %-20s %s\n", name, registry.Describe(name))
	}
}

// resolveWorkers returns requested, or the host's logical CPU count when it is 0
func resolveWorkers(requested int) int {
	if requested > 0 {
		return requested
	}
	if count, err := cpu.Counts(true); err == nil && count > 0 {
		return count
	}
	return runtime.NumCPU()
}

// hostSummary describes the machine for the render banner
func hostSummary() string {
	model := runtime.GOARCH
	if info, err := cpu.Info(); err == nil && len(info) > 0 && info[0].ModelName != "" {
		model = info[0].ModelName
	}

	summary := fmt.Sprintf("Host: %s, %d logical CPUs", model, resolveWorkers(0))
	if vm, err := mem.VirtualMemory(); err == nil {
		const gib = 1 << 30
		summary += fmt.Sprintf(", %.1f GiB RAM (%.1f GiB free)", float64(vm.Total)/gib, float64(vm.Available)/gib)
	}
	return summary
}

// writeOutput writes PPM to stdout or a file, or PNG to a file
func writeOutput(cfg *config.Config, fb *renderer.Framebuffer, stdout io.Writer) error {
	if cfg.Output == "" {
		return renderer.WritePPM(stdout, fb)
	}

	if dir := filepath.Dir(cfg.Output); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("error creating output directory: %w", err)
		}
	}

	if cfg.Format == config.FormatPNG {
		if err := renderer.SavePNG(cfg.Output, fb); err != nil {
			return fmt.Errorf("error saving PNG: %w", err)
		}
		return nil
	}

	file, err := os.Create(cfg.Output)
	if err != nil {
		return fmt.Errorf("error creating file: %w", err)
	}
	if err := renderer.WritePPM(file, fb); err != nil {
		file.Close()
		return fmt.Errorf("error writing PPM: %w", err)
	}
	return file.Close()
}
