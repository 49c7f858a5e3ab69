package debug

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/image/bmp"
)

// ErrUnknownImageFormat is returned for snapshot formats other than png and bmp.
var ErrUnknownImageFormat = errors.New("unknown image format")

// EncodeImage writes img to w as "png" or "bmp".
func EncodeImage(w io.Writer, img image.Image, format string) error {
	switch strings.ToLower(format) {
	case "png":
		return png.Encode(w, img)
	case "bmp":
		return bmp.Encode(w, img)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownImageFormat, format)
	}
}

// Snapshotter writes view captures into a directory with timestamped names.
type Snapshotter struct {
	Dir    string
	Prefix string
	Format string

	now func() time.Time
}

// NewSnapshotter creates a snapshotter. Format defaults to png.
func NewSnapshotter(dir, prefix, format string) *Snapshotter {
	if format == "" {
		format = "png"
	}
	return &Snapshotter{Dir: dir, Prefix: prefix, Format: strings.ToLower(format), now: time.Now}
}

// Filename returns the path the next snapshot would be written to.
func (s *Snapshotter) Filename() string {
	name := fmt.Sprintf("%s_%s.%s", s.Prefix, s.now().Format("2006-01-02_15-04-05"), s.Format)
	if s.Dir != "" {
		name = filepath.Join(s.Dir, name)
	}
	return name
}

// Save writes img under a generated filename and returns it.
func (s *Snapshotter) Save(img image.Image) (string, error) {
	path := s.Filename()
	if err := WriteImageFile(path, img, s.Format); err != nil {
		return "", err
	}
	return path, nil
}

// WriteImageFile encodes img to path, creating parent directories.
func WriteImageFile(path string, img image.Image, format string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating output dir: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	if err := EncodeImage(f, img, format); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("encoding %s: %w", format, err)
	}
	return f.Close()
}
