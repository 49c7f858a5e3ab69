// Package synth generates smooth pseudo-random test paths by steering towards
// randomly chosen targets inside a bounding box.
package synth

import (
	"math/rand/v2"
	"time"

	"github.com/mangostaniko/Visualization2-17s/pkg/math"
)

// Params control the shape of a generated path.
type Params struct {
	// StepSize is the distance advanced per point.
	StepSize float32
	// Curviness blends the current direction (1) with the target direction (0).
	Curviness float32
	// TargetChangeProbability is the per-step chance of picking a new target.
	TargetChangeProbability float32
	// MinDistanceToTarget forces a new target once the path gets this close.
	MinDistanceToTarget float32
}

// DefaultParams returns the stock generator settings.
func DefaultParams() Params {
	return Params{
		StepSize:                0.01,
		Curviness:               0.8,
		TargetChangeProbability: 0.07,
		MinDistanceToTarget:     0.06,
	}
}

// NewRand returns a seeded random source. A zero seed picks one from the wall clock.
func NewRand(seed uint64) (*rand.Rand, uint64) {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)), seed
}

// RandomPointInBox returns a uniformly distributed point in [min, max].
func RandomPointInBox(rng *rand.Rand, min, max math.Vec3) math.Vec3 {
	return math.Vec3{
		X: min.X + rng.Float32()*(max.X-min.X),
		Y: min.Y + rng.Float32()*(max.Y-min.Y),
		Z: min.Z + rng.Float32()*(max.Z-min.Z),
	}
}

// Generate returns n positions of a single path starting at boxMin.
// The first target is the box centre and the initial heading is +Y.
// Each position is recorded after the step, so the start point itself is not included.
func Generate(rng *rand.Rand, n int, boxMin, boxMax math.Vec3, p Params) []math.Vec3 {
	if n <= 0 {
		return nil
	}

	pos := boxMin
	target := boxMin.Add(boxMax).Scale(0.5)
	dir := math.Vec3{Y: 1}

	out := make([]math.Vec3, 0, n)
	for i := 0; i < n; i++ {
		if target.Distance(pos) < p.MinDistanceToTarget || rng.Float32() <= p.TargetChangeProbability {
			target = RandomPointInBox(rng, boxMin, boxMax)
		}

		toTarget := target.Sub(pos).Normalize()
		dir = dir.Scale(p.Curviness).Add(toTarget.Scale(1 - p.Curviness)).Normalize()

		pos = pos.Add(dir.Scale(p.StepSize))
		out = append(out, pos)
	}
	return out
}
