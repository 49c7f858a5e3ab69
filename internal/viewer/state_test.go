package viewer

import "testing"

func TestSetClipSlider(t *testing.T) {
	tests := []struct {
		in       int
		slider   int
		distance float32
	}{
		{0, 0, -1},
		{25, 25, -0.5},
		{50, 50, 0},
		{100, 100, 1},
		{-5, 0, -1},
		{130, 100, 1},
	}
	for _, tc := range tests {
		var s State
		s.SetClipSlider(tc.in)
		if s.ClipSlider != tc.slider || s.ClipPlaneDistance != tc.distance {
			t.Errorf("SetClipSlider(%d): got slider %d distance %v, want %d %v",
				tc.in, s.ClipSlider, s.ClipPlaneDistance, tc.slider, tc.distance)
		}
	}
}

func TestClassifyFPS(t *testing.T) {
	tests := []struct {
		fps  int
		want FPSLevel
	}{
		{0, FPSCritical},
		{9, FPSCritical},
		{10, FPSWarning},
		{24, FPSWarning},
		{25, FPSGood},
		{144, FPSGood},
	}
	for _, tc := range tests {
		if got := ClassifyFPS(tc.fps); got != tc.want {
			t.Errorf("ClassifyFPS(%d) = %v, want %v", tc.fps, got, tc.want)
		}
	}
}

func TestRenderModeNames(t *testing.T) {
	for _, m := range RenderModes {
		got, err := ParseRenderMode(m.String())
		if err != nil || got != m {
			t.Errorf("ParseRenderMode(%q) = %v, %v", m.String(), got, err)
		}
		if m.Label() == "" {
			t.Errorf("mode %v has no label", m)
		}
	}
	if _, err := ParseRenderMode("points"); err == nil {
		t.Error("expected error for unknown mode")
	}
	if RenderMode(7).String() != "RenderMode(7)" {
		t.Errorf("unexpected name for invalid mode: %s", RenderMode(7))
	}
}

func TestFormatFor(t *testing.T) {
	tests := []struct {
		path string
		ok   bool
	}{
		{"a/b/bundle.trk", true},
		{"BUNDLE.TRK", true},
		{"bundle.trk.gz", false},
		{"bundle", false},
		{"trk", false},
	}
	for _, tc := range tests {
		f, err := FormatFor(tc.path)
		if tc.ok && (err != nil || f.Name != "TrackVis Tractography Data") {
			t.Errorf("FormatFor(%q) = %+v, %v", tc.path, f, err)
		}
		if !tc.ok && err == nil {
			t.Errorf("FormatFor(%q) should fail", tc.path)
		}
	}

	desc, exts := DialogFilters()
	if desc != "TrackVis Tractography Data Files" || len(exts) != 1 || exts[0] != "trk" {
		t.Errorf("unexpected dialog filters %q %v", desc, exts)
	}
}
