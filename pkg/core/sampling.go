package core

import (
	"math"
	"math/rand"
)

// RandomRange returns a float64 in [lo, hi)
func RandomRange(random *rand.Rand, lo, hi float64) float64 {
	return lo + (hi-lo)*random.Float64()
}

// RandomInt returns an int in [lo, hi]
func RandomInt(random *rand.Rand, lo, hi int) int {
	return lo + random.Intn(hi-lo+1)
}

// RandomVec3 returns a vector with components in [0, 1)
func RandomVec3(random *rand.Rand) Vec3 {
	return NewVec3(random.Float64(), random.Float64(), random.Float64())
}

// RandomVec3Range returns a vector with components in [lo, hi)
func RandomVec3Range(random *rand.Rand, lo, hi float64) Vec3 {
	return NewVec3(
		RandomRange(random, lo, hi),
		RandomRange(random, lo, hi),
		RandomRange(random, lo, hi),
	)
}

// RandomInUnitSphere generates a random point inside a unit sphere
func RandomInUnitSphere(random *rand.Rand) Vec3 {
	for {
		// Generate random point in [-1,1]³ cube
		p := RandomVec3Range(random, -1, 1)
		// Accept if inside unit sphere
		if p.LengthSquared() < 1.0 {
			return p
		}
	}
}

// RandomUnitVector generates a uniformly distributed direction on the unit sphere
func RandomUnitVector(random *rand.Rand) Vec3 {
	return RandomInUnitSphere(random).Normalize()
}

// RandomInHemisphere generates a random point in the unit sphere on the same side as normal
func RandomInHemisphere(normal Vec3, random *rand.Rand) Vec3 {
	inUnitSphere := RandomInUnitSphere(random)
	if inUnitSphere.Dot(normal) > 0.0 {
		return inUnitSphere
	}
	return inUnitSphere.Negate()
}

// RandomInUnitDisk generates a random point in a unit disk (for depth of field)
func RandomInUnitDisk(random *rand.Rand) Vec3 {
	for {
		// Generate random point in [-1,1] x [-1,1] square
		p := NewVec3(2*random.Float64()-1, 2*random.Float64()-1, 0)
		// Accept if inside unit disk
		if p.LengthSquared() < 1.0 {
			return p
		}
	}
}

// DegreesToRadians converts an angle in degrees to radians
func DegreesToRadians(degrees float64) float64 {
	return degrees * math.Pi / 180.0
}
