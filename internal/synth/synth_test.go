package synth

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/mangostaniko/Visualization2-17s/pkg/math"
)

var (
	approx = cmpopts.EquateApprox(0, 1e-5)
	boxMin = math.Vec3{X: -1, Y: -1, Z: -1}
	boxMax = math.Vec3{X: 1, Y: 1, Z: 1}
)

func TestGenerateStepBound(t *testing.T) {
	p := DefaultParams()
	for _, seed := range []uint64{1, 2, 42, 9001} {
		rng, _ := NewRand(seed)
		pts := Generate(rng, 2000, boxMin, boxMax, p)
		if len(pts) != 2000 {
			t.Fatalf("seed %d: expected 2000 points, got %d", seed, len(pts))
		}

		prev := boxMin
		for i, q := range pts {
			if d := q.Distance(prev); d > p.StepSize*1.0001 {
				t.Fatalf("seed %d: step %d moved %v, more than %v", seed, i, d, p.StepSize)
			}
			prev = q
		}
	}
}

func TestGenerateDeterministic(t *testing.T) {
	r1, _ := NewRand(7)
	r2, _ := NewRand(7)
	a := Generate(r1, 500, boxMin, boxMax, DefaultParams())
	b := Generate(r2, 500, boxMin, boxMax, DefaultParams())
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("same seed produced different paths:\n%s", diff)
	}

	r3, _ := NewRand(8)
	c := Generate(r3, 500, boxMin, boxMax, DefaultParams())
	if cmp.Equal(a, c) {
		t.Error("different seeds produced identical paths")
	}
}

func TestGenerateFirstStep(t *testing.T) {
	// With curviness 1 the heading never changes, so the path walks straight up.
	p := DefaultParams()
	p.Curviness = 1
	p.TargetChangeProbability = 0
	rng, _ := NewRand(3)

	pts := Generate(rng, 3, boxMin, boxMax, p)
	want := []math.Vec3{{X: -1, Y: -0.99, Z: -1}, {X: -1, Y: -0.98, Z: -1}, {X: -1, Y: -0.97, Z: -1}}
	if diff := cmp.Diff(want, pts, approx); diff != "" {
		t.Errorf("path mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerateEmpty(t *testing.T) {
	rng, _ := NewRand(1)
	if pts := Generate(rng, 0, boxMin, boxMax, DefaultParams()); pts != nil {
		t.Errorf("expected nil for n=0, got %d points", len(pts))
	}
}

func TestNewRandSeed(t *testing.T) {
	if _, seed := NewRand(123); seed != 123 {
		t.Errorf("expected explicit seed to be kept, got %d", seed)
	}
	if _, seed := NewRand(0); seed == 0 {
		t.Error("expected a wall-clock seed for 0")
	}
}

func TestRandomPointInBox(t *testing.T) {
	rng, _ := NewRand(5)
	lo := math.Vec3{X: 2, Y: -3, Z: 0}
	hi := math.Vec3{X: 4, Y: -1, Z: 0}
	for i := 0; i < 1000; i++ {
		p := RandomPointInBox(rng, lo, hi)
		if p.X < lo.X || p.X > hi.X || p.Y < lo.Y || p.Y > hi.Y || p.Z != 0 {
			t.Fatalf("point %v outside box", p)
		}
	}
}
