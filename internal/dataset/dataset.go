// Package dataset holds the set of built polylines the renderer draws.
package dataset

import (
	"sync/atomic"

	"github.com/mangostaniko/Visualization2-17s/internal/lines"
)

// Dataset is an immutable collection of polylines. Build a new one instead of mutating it.
type Dataset struct {
	Lines []lines.Polyline
	// Source names where the data came from: a file name or "synthetic".
	Source     string
	PointCount int
}

// New builds a Dataset from lines, counting their source points.
func New(source string, ls ...lines.Polyline) *Dataset {
	ds := &Dataset{Lines: ls, Source: source}
	for _, l := range ls {
		ds.PointCount += l.PointCount()
	}
	return ds
}

// VertexCount returns the number of duplicated vertices across all lines.
func (d *Dataset) VertexCount() int {
	if d == nil {
		return 0
	}
	n := 0
	for _, l := range d.Lines {
		n += len(l)
	}
	return n
}

// Empty reports whether there is nothing to draw.
func (d *Dataset) Empty() bool {
	return d.VertexCount() == 0
}

// Store publishes datasets to readers. Swaps are atomic: a reader sees either
// the previous dataset or the new one in full.
type Store struct {
	current atomic.Pointer[Dataset]
	version atomic.Uint64
}

// Load returns the current dataset, or nil when the store is empty.
func (s *Store) Load() *Dataset {
	return s.current.Load()
}

// Replace publishes ds and returns the new version.
func (s *Store) Replace(ds *Dataset) uint64 {
	s.current.Store(ds)
	return s.version.Add(1)
}

// Clear empties the store and returns the new version.
func (s *Store) Clear() uint64 {
	return s.Replace(nil)
}

// Version increases on every Replace or Clear. Renderers compare it to decide
// whether their uploaded buffers are stale.
func (s *Store) Version() uint64 {
	return s.version.Load()
}
