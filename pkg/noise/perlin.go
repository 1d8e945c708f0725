package noise

import (
	"math"
	"math/rand"

	"github.com/df07/go-weekend-pathtracer/pkg/core"
)

const pointCount = 256

// DefaultTurbulenceDepth is the number of octaves summed by Turbulence when callers have no preference
const DefaultTurbulenceDepth = 7

// Perlin is a gradient noise field. It is immutable after construction and safe for concurrent reads.
type Perlin struct {
	gradients [pointCount]core.Vec3
	permX     [pointCount]int
	permY     [pointCount]int
	permZ     [pointCount]int
}

// NewPerlin builds the gradient table and the three permutations from random
func NewPerlin(random *rand.Rand) *Perlin {
	p := &Perlin{}
	for i := range p.gradients {
		p.gradients[i] = core.RandomVec3Range(random, -1, 1).Normalize()
	}
	generatePermutation(&p.permX, random)
	generatePermutation(&p.permY, random)
	generatePermutation(&p.permZ, random)
	return p
}

// generatePermutation fills perm with 0..255 and shuffles it in place (Fisher-Yates)
func generatePermutation(perm *[pointCount]int, random *rand.Rand) {
	for i := range perm {
		perm[i] = i
	}
	for i := pointCount - 1; i > 0; i-- {
		target := random.Intn(i + 1)
		perm[i], perm[target] = perm[target], perm[i]
	}
}

// Noise returns the smoothed gradient noise at point, roughly in [-1, 1]
func (p *Perlin) Noise(point core.Point3) float64 {
	fx, fy, fz := math.Floor(point.X), math.Floor(point.Y), math.Floor(point.Z)
	u, v, w := point.X-fx, point.Y-fy, point.Z-fz
	i, j, k := int(fx), int(fy), int(fz)

	var corners [2][2][2]core.Vec3
	for di := 0; di < 2; di++ {
		for dj := 0; dj < 2; dj++ {
			for dk := 0; dk < 2; dk++ {
				index := p.permX[(i+di)&255] ^ p.permY[(j+dj)&255] ^ p.permZ[(k+dk)&255]
				corners[di][dj][dk] = p.gradients[index]
			}
		}
	}

	return trilinearInterpolate(&corners, u, v, w)
}

// Turbulence sums depth octaves of noise, each at twice the frequency and half the weight of the last
func (p *Perlin) Turbulence(point core.Point3, depth int) float64 {
	accum := 0.0
	weight := 1.0
	for i := 0; i < depth; i++ {
		accum += weight * p.Noise(point)
		weight *= 0.5
		point = point.Multiply(2)
	}
	return math.Abs(accum)
}

func trilinearInterpolate(corners *[2][2][2]core.Vec3, u, v, w float64) float64 {
	// Hermite smoothing hides the lattice
	uu := u * u * (3 - 2*u)
	vv := v * v * (3 - 2*v)
	ww := w * w * (3 - 2*w)

	accum := 0.0
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			for k := 0; k < 2; k++ {
				fi, fj, fk := float64(i), float64(j), float64(k)
				offset := core.NewVec3(u-fi, v-fj, w-fk)
				accum += (fi*uu + (1-fi)*(1-uu)) *
					(fj*vv + (1-fj)*(1-vv)) *
					(fk*ww + (1-fk)*(1-ww)) *
					corners[i][j][k].Dot(offset)
			}
		}
	}
	return accum
}
