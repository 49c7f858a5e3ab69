package renderer

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/mangostaniko/Visualization2-17s/internal/viewer"
	"github.com/mangostaniko/Visualization2-17s/pkg/math"
)

var approx = cmpopts.EquateApprox(0, 1e-5)

func TestDepthRange(t *testing.T) {
	near, far := DepthRange(3.5)
	if diff := cmp.Diff([]float32{3.5 - dataRadius, 3.5 + dataRadius}, []float32{near, far}, approx); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}

	// Inside the volume the near end clamps to the eye.
	if near, _ := DepthRange(0.5); near != 0 {
		t.Errorf("expected near 0 inside the volume, got %v", near)
	}
}

func TestClipPlane(t *testing.T) {
	tests := []struct {
		name     string
		normal   math.Vec3
		distance float32
		want     [4]float32
	}{
		{"unit normal", math.Vec3{X: 1}, 0.5, [4]float32{1, 0, 0, -0.5}},
		{"normalizes", math.Vec3{Y: 4}, -1, [4]float32{0, 1, 0, 1}},
		{"zero falls back to -z", math.Vec3{}, 0, [4]float32{0, 0, -1, 0}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if diff := cmp.Diff(tc.want, ClipPlane(tc.normal, tc.distance), approx); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestClipPlaneKeepsFarSide(t *testing.T) {
	plane := ClipPlane(math.Vec3{Z: 1}, 0.2)
	eval := func(p math.Vec3) float32 {
		return plane[0]*p.X + plane[1]*p.Y + plane[2]*p.Z + plane[3]
	}
	if eval(math.Vec3{Z: 0.5}) < 0 {
		t.Error("expected point beyond the plane to be kept")
	}
	if eval(math.Vec3{Z: 0.1}) >= 0 {
		t.Error("expected point before the plane to be clipped")
	}
}

func TestShaderMode(t *testing.T) {
	want := map[viewer.RenderMode]int32{
		viewer.ModeLines:          0,
		viewer.ModeTriangleStrips: 1,
		viewer.ModeHalo:           2,
	}
	for m, w := range want {
		if got := shaderMode(m); got != w {
			t.Errorf("shaderMode(%v) = %d, want %d", m, got, w)
		}
	}
}
