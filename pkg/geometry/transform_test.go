package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-weekend-pathtracer/pkg/core"
)

func TestTranslate(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1, nil)
	moved := NewTranslate(sphere, core.NewVec3(5, 0, 0))

	hit, isHit := moved.Hit(core.NewRay(core.NewVec3(5, 0, 5), core.NewVec3(0, 0, -1)), 0.001, math.Inf(1))
	if !isHit {
		t.Fatal("Expected translated sphere to be hit")
	}
	if math.Abs(hit.T-4) > 1e-9 {
		t.Errorf("Expected t=4, got %f", hit.T)
	}
	if hit.Point.Subtract(core.NewVec3(5, 0, 1)).Length() > 1e-9 {
		t.Errorf("Expected world-space hit point (5,0,1), got %v", hit.Point)
	}

	if _, isHit := moved.Hit(core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1)), 0.001, math.Inf(1)); isHit {
		t.Error("Expected the original location to be empty")
	}

	box, ok := moved.BoundingBox(0, 1)
	if !ok || box.Min != core.NewVec3(4, -1, -1) || box.Max != core.NewVec3(6, 1, 1) {
		t.Errorf("Expected shifted box, got %v (ok=%v)", box, ok)
	}
}

func TestRotateY(t *testing.T) {
	// A thin slab along +x rotated 90 degrees ends up along -z
	block := NewBlock(core.NewVec3(0, -0.5, -0.5), core.NewVec3(4, 0.5, 0.5), nil)
	rotated := NewRotateY(block, 90)

	box, ok := rotated.BoundingBox(0, 1)
	if !ok {
		t.Fatal("Expected rotated block to have a bounding box")
	}
	const eps = 1e-9
	if math.Abs(box.Min.Z+4) > eps || math.Abs(box.Max.Z-0) > eps || math.Abs(box.Min.X+0.5) > eps || math.Abs(box.Max.X-0.5) > eps {
		t.Errorf("Unexpected rotated box %v", box)
	}

	hit, isHit := rotated.Hit(core.NewRay(core.NewVec3(0, 0, -10), core.NewVec3(0, 0, 1)), 0.001, math.Inf(1))
	if !isHit {
		t.Fatal("Expected rotated block to be hit")
	}
	if math.Abs(hit.T-6) > eps {
		t.Errorf("Expected t=6, got %f", hit.T)
	}
	if hit.Normal.Subtract(core.NewVec3(0, 0, -1)).Length() > eps {
		t.Errorf("Expected world-space normal (0,0,-1), got %v", hit.Normal)
	}
	if !hit.FrontFace {
		t.Error("Expected front face hit from outside")
	}

	// The unrotated footprint along +x is now empty
	if _, isHit := rotated.Hit(core.NewRay(core.NewVec3(2, 0, 5), core.NewVec3(0, 0, -1)), 0.001, math.Inf(1)); isHit {
		t.Error("Expected miss where the block used to be")
	}
}

func TestRotateY_HitsStayInsideBox(t *testing.T) {
	rotated := NewRotateY(NewBlock(core.NewVec3(-1, -1, -1), core.NewVec3(1, 1, 1), nil), 30)
	box, ok := rotated.BoundingBox(0, 1)
	if !ok {
		t.Fatal("Expected bounding box")
	}

	// Every hit point must lie inside the re-bounded box
	for i := 0; i < 36; i++ {
		angle := core.DegreesToRadians(float64(i) * 10)
		origin := core.NewVec3(5*math.Cos(angle), 0.3, 5*math.Sin(angle))
		hit, isHit := rotated.Hit(core.NewRay(origin, origin.Negate()), 0.001, math.Inf(1))
		if !isHit {
			t.Fatalf("Expected hit from angle %d", i*10)
		}
		p := hit.Point
		if p.X < box.Min.X-1e-9 || p.X > box.Max.X+1e-9 || p.Z < box.Min.Z-1e-9 || p.Z > box.Max.Z+1e-9 {
			t.Errorf("Hit point %v outside box %v", p, box)
		}
	}
}
