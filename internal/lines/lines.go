// Package lines turns ordered point streams into duplicated, annotated vertex
// buffers that render as view-aligned triangle strips.
//
// Every source point becomes a strip pair: two vertices with the same position
// and direction, with uv.v set to 0 and 1. Several tracks may share one stream;
// a point with StripEnd set ends its track and the next point starts a new one.
package lines

import (
	"errors"

	"github.com/mangostaniko/Visualization2-17s/pkg/math"
)

// ErrEmptyLine is returned when a line has no points.
var ErrEmptyLine = errors.New("line has no points")

// Point is one input position.
type Point struct {
	Position math.Vec3
	// StripEnd marks the last point of a track that is followed by another track.
	StripEnd bool
}

// Vertex is one element of a duplicated polyline.
type Vertex struct {
	Position math.Vec3
	// DirectionToNext is the normalized average of the incoming and outgoing
	// segment directions. It is zero only for isolated points.
	DirectionToNext math.Vec3
	UV              math.Vec2
	StripEnd        bool
}

// Polyline is a duplicated vertex sequence; vertices 2i and 2i+1 form the strip pair of point i.
type Polyline []Vertex

// PointCount returns the number of source points.
func (l Polyline) PointCount() int {
	return len(l) / 2
}

// Build produces the duplicated polyline for points.
//
// u runs from 0 at the first point to 1 at the last, i/(N-1); a single point gets u = 0.
// Neighbours across a StripEnd boundary are treated as absent when computing directions,
// so track ends differ from a plain concatenated stream, which would blend in the next track.
func Build(points []Point) (Polyline, error) {
	n := len(points)
	if n == 0 {
		return nil, ErrEmptyLine
	}

	out := make(Polyline, 0, 2*n)
	for i := range points {
		var toCurrent, toNext math.Vec3
		if i > 0 && !points[i-1].StripEnd {
			toCurrent = points[i].Position.Sub(points[i-1].Position).Normalize()
		}
		if i < n-1 && !points[i].StripEnd {
			toNext = points[i+1].Position.Sub(points[i].Position).Normalize()
		}

		var u float32
		if n > 1 {
			u = float32(i) / float32(n-1)
		}

		v := Vertex{
			Position:        points[i].Position,
			DirectionToNext: toCurrent.Add(toNext).Normalize(),
			UV:              math.Vec2{X: u, Y: 0},
			StripEnd:        points[i].StripEnd,
		}
		out = append(out, v)
		v.UV.Y = 1
		out = append(out, v)
	}
	return out, nil
}

// BuildPositions builds a single unbroken line from bare positions.
func BuildPositions(positions []math.Vec3) (Polyline, error) {
	points := make([]Point, len(positions))
	for i, p := range positions {
		points[i].Position = p
	}
	return Build(points)
}
