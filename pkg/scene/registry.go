package scene

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"

	"github.com/df07/go-weekend-pathtracer/pkg/core"
	"github.com/df07/go-weekend-pathtracer/pkg/renderer"
)

// ErrUnknownScene is returned when building a scene that was never registered
var ErrUnknownScene = errors.New("unknown scene")

// Options carries the inputs some builders need beyond a random source
type Options struct {
	TexturePath    string      // Image for textured scenes
	MaxTextureSize int         // Longest texture side after loading (0 = unlimited)
	Logger         core.Logger // Receives warnings about degraded scenes
}

// Builder constructs a scene
type Builder func(opts Options, random *rand.Rand) (*Scene, error)

type registryEntry struct {
	description string
	build       Builder
}

// Registry maps scene names to builders
type Registry struct {
	entries map[string]registryEntry
}

// NewRegistry returns an empty registry
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]registryEntry)}
}

// NewDefaultRegistry returns a registry holding every built-in scene
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register("basic", "Diffuse sphere on a ground sphere under a sky gradient", ignoreOptions(NewBasic))
	r.Register("random-spheres", "Field of random diffuse, metal and glass spheres with motion blur", ignoreOptions(NewRandomSpheres))
	r.Register("two-spheres", "Two checkered spheres", ignoreOptions(NewTwoSpheres))
	r.Register("two-perlin-spheres", "Marble spheres textured with Perlin turbulence", ignoreOptions(NewTwoPerlinSpheres))
	r.Register("earth", "Image-textured globe", func(opts Options, random *rand.Rand) (*Scene, error) {
		return NewEarth(opts.TexturePath, opts.MaxTextureSize, opts.Logger, random)
	})
	r.Register("simple-light", "Marble spheres lit by a rectangular area light", ignoreOptions(NewSimpleLight))
	r.Register("cornell-box", "Cornell box with two rotated blocks", ignoreOptions(NewCornellBox))
	return r
}

func ignoreOptions(build func(*rand.Rand) (*Scene, error)) Builder {
	return func(_ Options, random *rand.Rand) (*Scene, error) {
		return build(random)
	}
}

// Register adds or replaces the builder for name
func (r *Registry) Register(name, description string, build Builder) {
	r.entries[name] = registryEntry{description: description, build: build}
}

// Names returns the registered scene names in sorted order
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Describe returns the one-line description of name, or "" if it is unknown
func (r *Registry) Describe(name string) string {
	return r.entries[name].description
}

// Build constructs the named scene
func (r *Registry) Build(name string, opts Options, random *rand.Rand) (*Scene, error) {
	entry, ok := r.entries[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScene, name)
	}
	if opts.Logger == nil {
		opts.Logger = renderer.NewNopLogger()
	}
	return entry.build(opts, random)
}
