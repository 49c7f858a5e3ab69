// Package viewer holds the application state of the line viewer and the
// generate and load actions that mutate it. The presentation layer reads and
// writes this state; it never owns pipeline data itself.
package viewer

import (
	"fmt"

	"github.com/mangostaniko/Visualization2-17s/internal/config"
	"github.com/mangostaniko/Visualization2-17s/internal/dataset"
)

// RenderParams are the line width parameters the shaders consume.
type RenderParams struct {
	StripWidth        float32
	PercentageBlack   float32
	DepthCueingFactor float32
	HaloMaxDepth      float32
}

// ParamsFromPreset converts a configured preset.
func ParamsFromPreset(p config.RenderPreset) RenderParams {
	return RenderParams{
		StripWidth:        p.StripWidth,
		PercentageBlack:   p.PercentageBlack,
		DepthCueingFactor: p.DepthCueingFactor,
		HaloMaxDepth:      p.HaloMaxDepth,
	}
}

// RenderMode selects how lines are drawn.
type RenderMode int

const (
	ModeLines RenderMode = iota
	ModeTriangleStrips
	ModeHalo
)

// RenderModes lists all modes in selector order.
var RenderModes = []RenderMode{ModeLines, ModeTriangleStrips, ModeHalo}

func (m RenderMode) String() string {
	switch m {
	case ModeLines:
		return "lines"
	case ModeTriangleStrips:
		return "triangle_strips"
	case ModeHalo:
		return "halo"
	default:
		return fmt.Sprintf("RenderMode(%d)", int(m))
	}
}

// Label returns the name shown in the mode selector.
func (m RenderMode) Label() string {
	switch m {
	case ModeLines:
		return "Lines"
	case ModeTriangleStrips:
		return "Triangle Strips"
	case ModeHalo:
		return "Halo"
	default:
		return m.String()
	}
}

// ParseRenderMode converts a config name to a RenderMode.
func ParseRenderMode(s string) (RenderMode, error) {
	for _, m := range RenderModes {
		if m.String() == s {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown render mode %q", s)
}

// FPSLevel grades a frame rate for display.
type FPSLevel int

const (
	FPSGood FPSLevel = iota
	FPSWarning
	FPSCritical
)

// ClassifyFPS grades fps: below 10 is critical, below 25 a warning.
func ClassifyFPS(fps int) FPSLevel {
	switch {
	case fps < 10:
		return FPSCritical
	case fps < 25:
		return FPSWarning
	default:
		return FPSGood
	}
}

// Renderer draws the published dataset. It keeps no reference across store
// mutations: InitLineRenderMode is called after every Replace or Clear and the
// renderer must rebuild whatever it derived from the previous dataset.
type Renderer interface {
	InitLineRenderMode(ds *dataset.Dataset)
}

// State is everything the panel shows and the renderer reads.
type State struct {
	Store  dataset.Store
	Params RenderParams
	Mode   RenderMode

	EnableClipping bool
	// ClipSlider is the UI control position in [0, 100]; ClipPlaneDistance is derived from it.
	ClipSlider        int
	ClipPlaneDistance float32

	Status string
	Busy   bool
	// TestDataVertices is the strip vertex count the generate action uses.
	// Loading a file sets it to the loaded vertex count.
	TestDataVertices int
}

// SetClipSlider stores v clamped to [0, 100] and maps it onto [-1, 1].
func (s *State) SetClipSlider(v int) {
	v = max(0, min(100, v))
	s.ClipSlider = v
	s.ClipPlaneDistance = float32(v)/50 - 1
}
