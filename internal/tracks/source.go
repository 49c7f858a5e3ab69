package tracks

import (
	"fmt"

	"github.com/mangostaniko/Visualization2-17s/pkg/formats"
)

// Source is a readable collection of tracks.
// Open must succeed before any other call; indices passed to PointCount and
// Point are always in range.
type Source interface {
	Open() error
	TrackCount() int
	PointCount(track int) int
	Point(track, point int) (x, y, z float32)
	Close() error
}

// TRKSource reads tracks from a TrackVis .trk file.
type TRKSource struct {
	path string
	trk  *formats.TRK
}

// NewTRKSource returns a source for the .trk file at path. The file is read by Open.
func NewTRKSource(path string) *TRKSource {
	return &TRKSource{path: path}
}

// Open parses the whole file into memory.
func (s *TRKSource) Open() error {
	trk, err := formats.ParseTRKFile(s.path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", s.path, err)
	}
	s.trk = trk
	return nil
}

// Header returns the parsed header, or nil before Open.
func (s *TRKSource) Header() *formats.TRKHeader {
	if s.trk == nil {
		return nil
	}
	return &s.trk.Header
}

// TrackCount returns the number of tracks.
func (s *TRKSource) TrackCount() int { return s.trk.TrackCount() }

// PointCount returns the number of points in a track.
func (s *TRKSource) PointCount(track int) int { return s.trk.PointCount(track) }

// Point returns a point in voxmm coordinates.
func (s *TRKSource) Point(track, point int) (x, y, z float32) {
	return s.trk.Tracks[track].Point(point)
}

// Close drops the parsed data.
func (s *TRKSource) Close() error {
	s.trk = nil
	return nil
}
