// Package tracks loads multi-track line data, normalizes it into the viewer's
// [-1, 1] cube and concatenates all tracks into one point stream.
package tracks

import (
	"errors"
	"fmt"
	stdmath "math"

	"github.com/mangostaniko/Visualization2-17s/internal/bounds"
	"github.com/mangostaniko/Visualization2-17s/internal/lines"
	"github.com/mangostaniko/Visualization2-17s/pkg/math"
)

// Loader errors.
var (
	ErrSourceOpen = errors.New("track source failed to open")
	ErrNoPoints   = errors.New("track source contains no points")
	ErrNonFinite  = errors.New("track point is not finite")
)

// ErrInvalidSentinel is returned when the legacy marker could equal a normalized coordinate.
var ErrInvalidSentinel = errors.New("strip break sentinel must be finite and outside [-1, 1]")

// StripBreakSentinel is the legacy z marker for a track end. Normalized data
// lies in [-1, 1], so it never collides with a real coordinate.
const StripBreakSentinel float32 = 1000

// DefaultLargeDatasetThreshold is the point count above which a dataset counts as large.
const DefaultLargeDatasetThreshold = 200000

// Options control how track ends are encoded.
type Options struct {
	// LegacySentinel additionally overwrites the z of every track end with Sentinel.
	LegacySentinel bool
	// Sentinel defaults to StripBreakSentinel when zero.
	Sentinel float32
}

// StripSentinel returns the z marker Load writes into track ends.
func (o Options) StripSentinel() float32 {
	if o.Sentinel == 0 {
		return StripBreakSentinel
	}
	return o.Sentinel
}

// IndexSentinel returns the sentinel index builders should check, or NaN
// when LegacySentinel is off and only the StripEnd flags count.
func (o Options) IndexSentinel() float32 {
	if !o.LegacySentinel {
		return float32(stdmath.NaN())
	}
	return o.StripSentinel()
}

// Normalization maps source coordinates into the viewer cube.
type Normalization struct {
	// Mean of the axis-swapped points.
	Mean math.Vec3
	// Center of the bounding box after subtracting Mean.
	Center math.Vec3
	// Scale maps the dominant axis extent onto 2.
	Scale float32
}

// NewNormalization derives the transform from axis-swapped stats.
//
// The dominant axis of the mean-centred box spans exactly [-1, 1]. The other
// axes use the same scale and are centred on their own box, so they stay
// inside [-1, 1] without being stretched.
func NewNormalization(stats bounds.Stats) Normalization {
	c := stats.Centered()
	_, extent := c.DominantAxis()
	scale := float32(1)
	if extent > 0 {
		scale = 2 / extent
	}
	return Normalization{
		Mean:   stats.Mean,
		Center: c.Min.Add(c.Max).Scale(0.5),
		Scale:  scale,
	}
}

// Normalize maps a source point (Z-up) into the viewer cube (Y-up).
func Normalize(p math.Vec3, n Normalization) math.Vec3 {
	return p.SwapYZ().Sub(n.Mean).Sub(n.Center).Scale(n.Scale)
}

// Result is a loaded, normalized point stream.
type Result struct {
	Points []lines.Point
	// Stats of the axis-swapped source points before normalization.
	Stats         bounds.Stats
	DominantAxis  int
	Scale         float32
	Normalization Normalization
	// TrackCount counts tracks with at least one point.
	TrackCount int
}

// LargeDataset reports whether pointCount exceeds threshold.
func LargeDataset(pointCount, threshold int) bool {
	return pointCount > threshold
}

// Load reads every track from src and returns one normalized point stream.
// The last point of each track except the final one is marked as a strip end.
func Load(src Source, opts Options) (*Result, error) {
	if err := src.Open(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceOpen, err)
	}
	defer src.Close()

	sentinel := opts.StripSentinel()
	if opts.LegacySentinel && !lines.UsableSentinel(sentinel) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSentinel, sentinel)
	}

	numTracks := src.TrackCount()

	var acc bounds.Accumulator
	for t := 0; t < numTracks; t++ {
		n := src.PointCount(t)
		for i := 0; i < n; i++ {
			x, y, z := src.Point(t, i)
			if !finite(x) || !finite(y) || !finite(z) {
				return nil, fmt.Errorf("%w: track %d point %d (%v, %v, %v)", ErrNonFinite, t, i, x, y, z)
			}
			acc.Add(math.Vec3{X: x, Y: y, Z: z}.SwapYZ())
		}
	}
	stats, err := acc.Stats()
	if err != nil {
		return nil, ErrNoPoints
	}

	norm := NewNormalization(stats)
	axis, _ := stats.DominantAxis()

	points := make([]lines.Point, 0, stats.Count)
	var trackEnds []int
	for t := 0; t < numTracks; t++ {
		n := src.PointCount(t)
		for i := 0; i < n; i++ {
			x, y, z := src.Point(t, i)
			points = append(points, lines.Point{Position: Normalize(math.Vec3{X: x, Y: y, Z: z}, norm)})
		}
		if n > 0 {
			trackEnds = append(trackEnds, len(points)-1)
		}
	}

	// The final track runs to the end of the stream and needs no marker.
	for _, end := range trackEnds[:len(trackEnds)-1] {
		points[end].StripEnd = true
		if opts.LegacySentinel {
			points[end].Position.Z = sentinel
		}
	}

	return &Result{
		Points:        points,
		Stats:         stats,
		DominantAxis:  axis,
		Scale:         norm.Scale,
		Normalization: norm,
		TrackCount:    len(trackEnds),
	}, nil
}

func finite(v float32) bool {
	f := float64(v)
	return !stdmath.IsNaN(f) && !stdmath.IsInf(f, 0)
}
