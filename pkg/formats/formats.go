// Package formats provides readers and writers for tractography file formats.
package formats

// Note: TrackVis (.trk) is implemented in trk.go (read) and trk_write.go (write).
