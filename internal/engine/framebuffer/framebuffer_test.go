package framebuffer

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFlipRows(t *testing.T) {
	tests := []struct {
		name   string
		pix    []byte
		stride int
		want   []byte
	}{
		{"three rows", []byte{1, 1, 2, 2, 3, 3}, 2, []byte{3, 3, 2, 2, 1, 1}},
		{"four rows", []byte{1, 2, 3, 4}, 1, []byte{4, 3, 2, 1}},
		{"single row", []byte{1, 2, 3}, 3, []byte{1, 2, 3}},
		{"empty", []byte{}, 4, []byte{}},
		{"zero stride", []byte{1, 2}, 0, []byte{1, 2}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			FlipRows(tc.pix, tc.stride)
			if diff := cmp.Diff(tc.want, tc.pix); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}
