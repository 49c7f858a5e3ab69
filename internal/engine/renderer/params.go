package renderer

import (
	gomath "math"

	"github.com/mangostaniko/Visualization2-17s/internal/viewer"
	"github.com/mangostaniko/Visualization2-17s/pkg/math"
)

// dataRadius bounds the normalized data volume [-1, 1]^3 around the origin.
var dataRadius = float32(gomath.Sqrt(3))

// DepthRange returns the view-space distances between which the data volume can
// lie for a camera at distance from the origin. Depth cueing interpolates over it.
func DepthRange(distance float32) (near, far float32) {
	return max(distance-dataRadius, 0), distance + dataRadius
}

// ClipPlane returns the plane coefficients for gl_ClipDistance. Points p with
// dot(normal, p) >= distance are kept.
func ClipPlane(normal math.Vec3, distance float32) [4]float32 {
	n := normal.Normalize()
	if n.IsZero() {
		n = math.Vec3{Z: -1}
	}
	return [4]float32{n.X, n.Y, n.Z, -distance}
}

// shaderMode is the uMode uniform value for a render mode.
func shaderMode(m viewer.RenderMode) int32 {
	switch m {
	case viewer.ModeTriangleStrips:
		return 1
	case viewer.ModeHalo:
		return 2
	default:
		return 0
	}
}
