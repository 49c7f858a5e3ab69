// Package camera provides the arcball camera used to inspect line datasets.
package camera

import (
	gomath "math"

	"github.com/mangostaniko/Visualization2-17s/pkg/math"
)

// ArcballCamera rotates the scene around Target by dragging on a virtual sphere.
type ArcballCamera struct {
	Target      math.Vec3
	Orientation math.Quat
	Distance    float32

	MinDistance     float32
	MaxDistance     float32
	ZoomSensitivity float32

	FovY      float32 // radians
	Near, Far float32
}

// NewArcballCamera returns a camera framing the [-1, 1] cube.
func NewArcballCamera() *ArcballCamera {
	return &ArcballCamera{
		Orientation:     math.QuatIdentity(),
		Distance:        3.5,
		MinDistance:     0.2,
		MaxDistance:     20,
		ZoomSensitivity: 0.1,
		FovY:            gomath.Pi / 4,
		Near:            0.01,
		Far:             100,
	}
}

// Reset restores the default view.
func (c *ArcballCamera) Reset() {
	def := NewArcballCamera()
	c.Target = def.Target
	c.Orientation = def.Orientation
	c.Distance = def.Distance
}

// ArcballVector maps a point in a width x height viewport onto the unit arcball.
// Points outside the ball project onto its silhouette.
func ArcballVector(x, y, width, height float32) math.Vec3 {
	r := min(width, height) / 2
	if r <= 0 {
		return math.Vec3{Z: 1}
	}
	p := math.Vec3{
		X: (x - width/2) / r,
		Y: (height/2 - y) / r,
	}
	sq := p.X*p.X + p.Y*p.Y
	if sq <= 1 {
		p.Z = float32(gomath.Sqrt(float64(1 - sq)))
		return p
	}
	return p.Normalize()
}

// HandleDrag rotates the scene by dragging from (x0, y0) to (x1, y1) in viewport pixels.
func (c *ArcballCamera) HandleDrag(x0, y0, x1, y1, width, height float32) {
	from := ArcballVector(x0, y0, width, height)
	to := ArcballVector(x1, y1, width, height)
	if from == to {
		return
	}
	c.Orientation = math.QuatBetween(from, to).Mul(c.Orientation).Normalize()
}

// RotateYaw turns the scene about the world Y axis by degrees.
func (c *ArcballCamera) RotateYaw(degrees float32) {
	rad := degrees * gomath.Pi / 180
	c.Orientation = c.Orientation.Mul(math.QuatFromAxisAngle(math.Vec3{Y: 1}, rad)).Normalize()
}

// HandleZoom moves the camera closer for positive delta.
func (c *ArcballCamera) HandleZoom(delta float32) {
	c.Distance -= delta * c.Distance * c.ZoomSensitivity
	c.Distance = max(c.MinDistance, min(c.MaxDistance, c.Distance))
}

// ViewMatrix returns the world to camera transform.
func (c *ArcballCamera) ViewMatrix() math.Mat4 {
	t := c.Target.Scale(-1)
	return math.Translate(0, 0, -c.Distance).
		Mul(c.Orientation.ToMat4()).
		Mul(math.Translate(t.X, t.Y, t.Z))
}

// ProjectionMatrix returns the perspective projection for the given aspect ratio.
func (c *ArcballCamera) ProjectionMatrix(aspect float32) math.Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	return math.Perspective(c.FovY, aspect, c.Near, c.Far)
}

// ViewDirection returns the world space direction the camera looks along.
func (c *ArcballCamera) ViewDirection() math.Vec3 {
	return c.Orientation.Conjugate().Rotate(math.Vec3{Z: -1})
}

// Position returns the camera position in world space.
func (c *ArcballCamera) Position() math.Vec3 {
	return c.Target.Sub(c.ViewDirection().Scale(c.Distance))
}
