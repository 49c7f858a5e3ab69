// Package bounds accumulates the mean and axis-aligned bounding box of a point set.
package bounds

import (
	"errors"

	"github.com/mangostaniko/Visualization2-17s/pkg/math"
)

// ErrEmpty is returned when stats are requested for zero points.
var ErrEmpty = errors.New("no points accumulated")

// Stats is the mean and axis-aligned bounding box of a point set.
type Stats struct {
	Count int
	Mean  math.Vec3
	Min   math.Vec3
	Max   math.Vec3
}

// Extent returns Max - Min per axis.
func (s Stats) Extent() math.Vec3 {
	return s.Max.Sub(s.Min)
}

// Centered returns the stats with the bounding box translated so the mean is the origin.
// The mean itself is left unchanged.
func (s Stats) Centered() Stats {
	s.Min = s.Min.Sub(s.Mean)
	s.Max = s.Max.Sub(s.Mean)
	return s
}

// DominantAxis returns the axis with the largest extent and that extent.
// Ties resolve to the lower axis index.
func (s Stats) DominantAxis() (axis int, extent float32) {
	ext := s.Extent()
	axis, extent = math.AxisX, ext.X
	if ext.Y > extent {
		axis, extent = math.AxisY, ext.Y
	}
	if ext.Z > extent {
		axis, extent = math.AxisZ, ext.Z
	}
	return axis, extent
}

// Accumulator collects points one at a time.
// Sums are kept in float64 so large track files do not lose precision in the mean.
type Accumulator struct {
	n        int
	sum      [3]float64
	min, max math.Vec3
}

// Add includes p in the running stats.
func (a *Accumulator) Add(p math.Vec3) {
	if a.n == 0 {
		a.min, a.max = p, p
	} else {
		a.min = a.min.Min(p)
		a.max = a.max.Max(p)
	}
	a.sum[0] += float64(p.X)
	a.sum[1] += float64(p.Y)
	a.sum[2] += float64(p.Z)
	a.n++
}

// Count returns the number of points added so far.
func (a *Accumulator) Count() int {
	return a.n
}

// Stats returns the current stats, or ErrEmpty if nothing was added.
func (a *Accumulator) Stats() (Stats, error) {
	if a.n == 0 {
		return Stats{}, ErrEmpty
	}
	inv := 1 / float64(a.n)
	return Stats{
		Count: a.n,
		Mean: math.Vec3{
			X: float32(a.sum[0] * inv),
			Y: float32(a.sum[1] * inv),
			Z: float32(a.sum[2] * inv),
		},
		Min: a.min,
		Max: a.max,
	}, nil
}

// Compute returns the stats of points after applying remap to each one.
// A nil remap leaves points unchanged.
func Compute(points []math.Vec3, remap func(math.Vec3) math.Vec3) (Stats, error) {
	var acc Accumulator
	for _, p := range points {
		if remap != nil {
			p = remap(p)
		}
		acc.Add(p)
	}
	return acc.Stats()
}
