// Color constants for the viewer panel.
package main

import "github.com/mangostaniko/Visualization2-17s/internal/viewer"

// FPS readout colors
var (
	FPSColorGood     = [4]float32{0.4, 0.8, 0.4, 1}
	FPSColorWarning  = [4]float32{1.0, 0.8, 0.0, 1}
	FPSColorCritical = [4]float32{1.0, 0.3, 0.3, 1}
)

func fpsColor(level viewer.FPSLevel) [4]float32 {
	switch level {
	case viewer.FPSCritical:
		return FPSColorCritical
	case viewer.FPSWarning:
		return FPSColorWarning
	default:
		return FPSColorGood
	}
}
