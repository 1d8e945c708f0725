package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"golang.org/x/image/colornames"

	"github.com/df07/go-weekend-pathtracer/pkg/core"
)

// EnvPrefix prefixes every environment variable the renderer reads
const EnvPrefix = "RAYTRACER_"

// DefaultEnvFile is loaded when no env file is named; it may be absent
const DefaultEnvFile = ".env"

// Supported output formats
const (
	FormatPPM = "ppm"
	FormatPNG = "png"
)

// Config holds the render settings shared by the CLI and the environment.
// Zero numeric values mean "use the scene's suggestion".
type Config struct {
	Scene           string
	Width           int
	SamplesPerPixel int
	MaxDepth        int
	Seed            int64
	Workers         int    // 0 = host CPU count
	Output          string // "" = stdout
	Format          string // ppm or png
	TexturePath     string
	MaxTextureSize  int
	Background      string // Color name or "r,g,b"; "" keeps the scene background
}

// Default returns the built-in settings
func Default() *Config {
	return &Config{
		Scene:          "random-spheres",
		Seed:           1,
		Format:         FormatPPM,
		MaxTextureSize: 2048,
	}
}

// Load reads envFile into the process environment (existing variables win)
// and applies RAYTRACER_* variables over the defaults. An empty envFile
// tries DefaultEnvFile and ignores its absence.
func Load(envFile string) (*Config, error) {
	optional := envFile == ""
	if optional {
		envFile = DefaultEnvFile
	}
	if err := godotenv.Load(envFile); err != nil {
		if !optional || !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load env file %s: %w", envFile, err)
		}
	}

	cfg := Default()
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	setString(&c.Scene, "SCENE")
	setString(&c.Output, "OUTPUT")
	setString(&c.Format, "FORMAT")
	setString(&c.TexturePath, "TEXTURE")
	setString(&c.Background, "BACKGROUND")

	ints := []struct {
		key string
		dst *int
	}{
		{"WIDTH", &c.Width},
		{"SAMPLES", &c.SamplesPerPixel},
		{"DEPTH", &c.MaxDepth},
		{"WORKERS", &c.Workers},
		{"MAX_TEXTURE_SIZE", &c.MaxTextureSize},
	}
	for _, field := range ints {
		if err := setInt(field.dst, field.key); err != nil {
			return err
		}
	}

	if value, ok := lookup("SEED"); ok {
		seed, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid %sSEED %q: %w", EnvPrefix, value, err)
		}
		c.Seed = seed
	}
	return nil
}

func lookup(key string) (string, bool) {
	value, ok := os.LookupEnv(EnvPrefix + key)
	if !ok {
		return "", false
	}
	value = strings.TrimSpace(value)
	return value, value != ""
}

func setString(dst *string, key string) {
	if value, ok := lookup(key); ok {
		*dst = value
	}
}

func setInt(dst *int, key string) error {
	value, ok := lookup(key)
	if !ok {
		return nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("invalid %s%s %q: %w", EnvPrefix, key, value, err)
	}
	*dst = n
	return nil
}

// Validate reports the first setting that cannot be rendered.
// Zero width, samples and depth are allowed and defer to the scene.
func (c *Config) Validate() error {
	switch {
	case c.Scene == "":
		return errors.New("scene name is required")
	case c.Width < 0:
		return fmt.Errorf("width must not be negative, got %d", c.Width)
	case c.SamplesPerPixel < 0:
		return fmt.Errorf("samples per pixel must not be negative, got %d", c.SamplesPerPixel)
	case c.MaxDepth < 0:
		return fmt.Errorf("max depth must not be negative, got %d", c.MaxDepth)
	case c.Workers < 0:
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	case c.MaxTextureSize < 0:
		return fmt.Errorf("max texture size must not be negative, got %d", c.MaxTextureSize)
	}

	c.Format = strings.ToLower(c.Format)
	if c.Format != FormatPPM && c.Format != FormatPNG {
		return fmt.Errorf("unsupported format %q (want %s or %s)", c.Format, FormatPPM, FormatPNG)
	}
	if c.Format == FormatPNG && c.Output == "" {
		return errors.New("png output needs a file name")
	}

	if c.Background != "" {
		if _, err := ParseColor(c.Background); err != nil {
			return err
		}
	}
	return nil
}

// ParseColor accepts an SVG color name ("skyblue") or three comma-separated
// linear components ("0.7,0.8,1").
func ParseColor(value string) (core.Color, error) {
	value = strings.TrimSpace(value)
	if named, ok := colornames.Map[strings.ToLower(value)]; ok {
		const scale = 1.0 / 255.0
		return core.NewColor(scale*float64(named.R), scale*float64(named.G), scale*float64(named.B)), nil
	}

	parts := strings.Split(value, ",")
	if len(parts) != 3 {
		return core.Color{}, fmt.Errorf("invalid color %q: want a color name or r,g,b", value)
	}

	var rgb [3]float64
	for i, part := range parts {
		component, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return core.Color{}, fmt.Errorf("invalid color %q: %w", value, err)
		}
		if component < 0 {
			return core.Color{}, fmt.Errorf("invalid color %q: negative component", value)
		}
		rgb[i] = component
	}
	return core.NewColor(rgb[0], rgb[1], rgb[2]), nil
}
