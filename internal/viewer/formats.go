package viewer

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/mangostaniko/Visualization2-17s/internal/tracks"
)

// ErrUnrecognizedFormat is returned for files whose extension has no reader.
var ErrUnrecognizedFormat = errors.New("unknown filename extension")

// FileFormat is a loadable track file type.
type FileFormat struct {
	Extension string
	Name      string
	Open      func(path string) tracks.Source
}

var fileFormats = []FileFormat{
	{
		Extension: ".trk",
		Name:      "TrackVis Tractography Data",
		Open:      func(path string) tracks.Source { return tracks.NewTRKSource(path) },
	},
}

// FormatFor returns the reader for path by its extension, ignoring case.
func FormatFor(path string) (FileFormat, error) {
	ext := strings.ToLower(filepath.Ext(path))
	for _, f := range fileFormats {
		if f.Extension == ext {
			return f, nil
		}
	}
	return FileFormat{}, ErrUnrecognizedFormat
}

// DialogFilters returns the file dialog filter description and extensions without dots.
func DialogFilters() (desc string, exts []string) {
	names := make([]string, 0, len(fileFormats))
	for _, f := range fileFormats {
		names = append(names, f.Name)
		exts = append(exts, strings.TrimPrefix(f.Extension, "."))
	}
	return strings.Join(names, ", ") + " Files", exts
}
