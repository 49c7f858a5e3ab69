package tracks

import (
	"errors"
	stdmath "math"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/mangostaniko/Visualization2-17s/internal/lines"
	"github.com/mangostaniko/Visualization2-17s/pkg/formats"
	"github.com/mangostaniko/Visualization2-17s/pkg/math"
)

// memSource is an in-memory Source.
type memSource struct {
	tracks  [][][3]float32
	openErr error
	opened  bool
	closed  bool
}

func (s *memSource) Open() error {
	s.opened = true
	return s.openErr
}
func (s *memSource) TrackCount() int          { return len(s.tracks) }
func (s *memSource) PointCount(track int) int { return len(s.tracks[track]) }
func (s *memSource) Point(track, point int) (x, y, z float32) {
	p := s.tracks[track][point]
	return p[0], p[1], p[2]
}
func (s *memSource) Close() error {
	s.closed = true
	return nil
}

func sampleTracks() [][][3]float32 {
	return [][][3]float32{
		{{10, 20, 30}, {50, 25, 35}, {90, 30, 40}},
		{{20, 10, 60}, {30, 40, 50}},
		{{70, 20, 30}, {60, 30, 30}, {55, 35, 32}, {50, 40, 34}},
	}
}

func TestLoadNormalizationBound(t *testing.T) {
	res, err := Load(&memSource{tracks: sampleTracks()}, Options{})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(res.Points) != 9 {
		t.Fatalf("expected 9 points, got %d", len(res.Points))
	}

	lo := math.Vec3{X: 1e9, Y: 1e9, Z: 1e9}
	hi := lo.Scale(-1)
	for _, p := range res.Points {
		lo = lo.Min(p.Position)
		hi = hi.Max(p.Position)
	}

	const eps = 1e-5
	domLo, domHi := lo.Component(res.DominantAxis), hi.Component(res.DominantAxis)
	if stdmath.Abs(float64(domLo+1)) > eps || stdmath.Abs(float64(domHi-1)) > eps {
		t.Errorf("dominant axis %d spans [%v, %v], want [-1, 1]", res.DominantAxis, domLo, domHi)
	}
	for axis := math.AxisX; axis <= math.AxisZ; axis++ {
		if lo.Component(axis) < -1-eps || hi.Component(axis) > 1+eps {
			t.Errorf("axis %d spans [%v, %v], outside [-1, 1]", axis, lo.Component(axis), hi.Component(axis))
		}
		if ext := hi.Component(axis) - lo.Component(axis); ext > domHi-domLo+eps {
			t.Errorf("axis %d extent %v exceeds dominant extent", axis, ext)
		}
	}
}

func TestLoadAxisSwap(t *testing.T) {
	// x spans 80, source z spans 30 and becomes viewer y.
	res, err := Load(&memSource{tracks: sampleTracks()}, Options{})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if res.DominantAxis != math.AxisX {
		t.Errorf("expected X dominant, got %d", res.DominantAxis)
	}
	if res.Stats.Min != (math.Vec3{X: 10, Y: 30, Z: 10}) || res.Stats.Max != (math.Vec3{X: 90, Y: 60, Z: 40}) {
		t.Errorf("unexpected swapped bounds %v..%v", res.Stats.Min, res.Stats.Max)
	}
	if res.Scale != 2.0/80 {
		t.Errorf("expected scale 2/80, got %v", res.Scale)
	}
}

func TestLoadStripEnds(t *testing.T) {
	tests := []struct {
		name   string
		opts   Options
		wantZ  float32
		legacy bool
	}{
		{name: "flags only", opts: Options{}},
		{name: "legacy sentinel", opts: Options{LegacySentinel: true}, wantZ: StripBreakSentinel, legacy: true},
		{name: "custom sentinel", opts: Options{LegacySentinel: true, Sentinel: -500}, wantZ: -500, legacy: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res, err := Load(&memSource{tracks: sampleTracks()}, tc.opts)
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}

			var ends []int
			for i, p := range res.Points {
				if p.StripEnd {
					ends = append(ends, i)
				}
			}
			if diff := cmp.Diff([]int{2, 4}, ends); diff != "" {
				t.Errorf("strip ends (-want +got):\n%s", diff)
			}

			for i, p := range res.Points {
				isSentinel := p.Position.Z == tc.wantZ
				switch {
				case tc.legacy && p.StripEnd && !isSentinel:
					t.Errorf("point %d: expected sentinel z %v, got %v", i, tc.wantZ, p.Position.Z)
				case tc.legacy && !p.StripEnd && isSentinel:
					t.Errorf("point %d: sentinel on ordinary point", i)
				case !tc.legacy && (p.Position.Z < -1 || p.Position.Z > 1):
					t.Errorf("point %d: z %v outside cube", i, p.Position.Z)
				}
			}
		})
	}
}

func TestLoadSkipsEmptyTracks(t *testing.T) {
	src := &memSource{tracks: [][][3]float32{
		{{0, 0, 0}, {1, 0, 0}},
		{},
		{{2, 0, 0}},
		{},
	}}
	res, err := Load(src, Options{})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if res.TrackCount != 2 {
		t.Errorf("expected 2 non-empty tracks, got %d", res.TrackCount)
	}
	if !res.Points[1].StripEnd || res.Points[2].StripEnd {
		t.Errorf("unexpected strip ends: %+v", res.Points)
	}
}

func TestLoadErrors(t *testing.T) {
	openErr := errors.New("disk on fire")
	src := &memSource{openErr: openErr}
	if _, err := Load(src, Options{}); !errors.Is(err, ErrSourceOpen) || !errors.Is(err, openErr) {
		t.Errorf("expected ErrSourceOpen wrapping cause, got %v", err)
	}
	if src.closed {
		t.Error("Close must not be called when Open fails")
	}

	empty := &memSource{tracks: [][][3]float32{{}, {}}}
	if _, err := Load(empty, Options{}); !errors.Is(err, ErrNoPoints) {
		t.Errorf("expected ErrNoPoints, got %v", err)
	}
	if !empty.closed {
		t.Error("expected source to be closed")
	}
}

func TestLoadRejectsNonFinite(t *testing.T) {
	nan := float32(stdmath.NaN())
	inf := float32(stdmath.Inf(1))
	tests := []struct {
		name   string
		tracks [][][3]float32
	}{
		{"nan x", [][][3]float32{{{0, 0, 0}, {nan, 1, 1}}}},
		{"inf z", [][][3]float32{{{0, 0, 0}}, {{1, 1, inf}}}},
		{"negative inf y", [][][3]float32{{{0, -inf, 0}}}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			src := &memSource{tracks: tc.tracks}
			if _, err := Load(src, Options{}); !errors.Is(err, ErrNonFinite) {
				t.Errorf("expected ErrNonFinite, got %v", err)
			}
			if !src.closed {
				t.Error("expected source to be closed")
			}
		})
	}
}

func TestLoadRejectsCollidingSentinel(t *testing.T) {
	for _, s := range []float32{0.5, -1, float32(stdmath.NaN()), float32(stdmath.Inf(-1))} {
		_, err := Load(&memSource{tracks: sampleTracks()}, Options{LegacySentinel: true, Sentinel: s})
		if !errors.Is(err, ErrInvalidSentinel) {
			t.Errorf("sentinel %v: expected ErrInvalidSentinel, got %v", s, err)
		}
	}

	// Without legacy markers the sentinel is never written, so any value loads.
	if _, err := Load(&memSource{tracks: sampleTracks()}, Options{Sentinel: 0.5}); err != nil {
		t.Errorf("Load failed: %v", err)
	}
}

func TestOptionsSentinels(t *testing.T) {
	if got := (Options{}).StripSentinel(); got != StripBreakSentinel {
		t.Errorf("expected default %v, got %v", StripBreakSentinel, got)
	}
	if got := (Options{Sentinel: -5}).StripSentinel(); got != -5 {
		t.Errorf("expected -5, got %v", got)
	}
	if got := (Options{}).IndexSentinel(); !stdmath.IsNaN(float64(got)) {
		t.Errorf("expected NaN without legacy markers, got %v", got)
	}
	if got := (Options{LegacySentinel: true}).IndexSentinel(); got != StripBreakSentinel {
		t.Errorf("expected %v, got %v", StripBreakSentinel, got)
	}
}

// The zero sentinel resolves to the same value in the loader and the index builder.
func TestLegacySentinelRoundTrip(t *testing.T) {
	opts := Options{LegacySentinel: true}
	res, err := Load(&memSource{tracks: sampleTracks()}, opts)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	points := make([]lines.Point, len(res.Points))
	for i, p := range res.Points {
		points[i] = lines.Point{Position: p.Position}
	}
	line, err := lines.Build(points)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	restarts := 0
	for _, idx := range lines.StripIndices(line, opts.IndexSentinel()) {
		if idx == lines.RestartIndex {
			restarts++
		}
	}
	if restarts != 2 {
		t.Errorf("expected 2 restarts for 3 tracks, got %d", restarts)
	}
}

func TestLoadSinglePoint(t *testing.T) {
	res, err := Load(&memSource{tracks: [][][3]float32{{{4, 5, 6}}}}, Options{})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !res.Points[0].Position.IsZero() {
		t.Errorf("expected single point at origin, got %v", res.Points[0].Position)
	}
}

func TestLoadFeedsBuilder(t *testing.T) {
	res, err := Load(&memSource{tracks: sampleTracks()}, Options{})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	line, err := lines.Build(res.Points)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if len(line) != 2*len(res.Points) {
		t.Errorf("expected %d vertices, got %d", 2*len(res.Points), len(line))
	}
}

func TestLargeDataset(t *testing.T) {
	tests := []struct {
		n    int
		want bool
	}{
		{0, false},
		{DefaultLargeDatasetThreshold, false},
		{DefaultLargeDatasetThreshold + 1, true},
	}
	for _, tc := range tests {
		if got := LargeDataset(tc.n, DefaultLargeDatasetThreshold); got != tc.want {
			t.Errorf("LargeDataset(%d) = %v, want %v", tc.n, got, tc.want)
		}
	}
}

func TestTRKSource(t *testing.T) {
	hdr := formats.NewTRKHeader([3]int16{100, 100, 100}, [3]float32{1, 1, 1})
	trk := &formats.TRK{Header: hdr}
	for _, tr := range sampleTracks() {
		var flat []float32
		for _, p := range tr {
			flat = append(flat, p[:]...)
		}
		trk.Tracks = append(trk.Tracks, formats.TRKTrack{Points: flat})
	}
	path := filepath.Join(t.TempDir(), "sample.trk")
	if err := formats.WriteTRKFile(path, trk); err != nil {
		t.Fatalf("WriteTRKFile failed: %v", err)
	}

	fromFile, err := Load(NewTRKSource(path), Options{})
	if err != nil {
		t.Fatalf("Load from file failed: %v", err)
	}
	fromMem, _ := Load(&memSource{tracks: sampleTracks()}, Options{})
	if diff := cmp.Diff(fromMem.Points, fromFile.Points, cmpopts.EquateApprox(0, 1e-6)); diff != "" {
		t.Errorf("file and memory loads differ (-mem +file):\n%s", diff)
	}

	if _, err := Load(NewTRKSource(filepath.Join(t.TempDir(), "missing.trk")), Options{}); !errors.Is(err, ErrSourceOpen) {
		t.Errorf("expected ErrSourceOpen for missing file, got %v", err)
	}
}
