package formats

import (
	"bytes"
	"encoding/binary"
	"errors"
	"path/filepath"
	"testing"
)

// createTestTRK builds a minimal TrackVis file by hand.
// Each track is a list of xyz points; scalars and properties are filled with
// the point index and track index so tests can tell them apart.
func createTestTRK(order binary.ByteOrder, nCount int32, version int32, nScalars, nProperties int, tracks [][][3]float32) []byte {
	buf := new(bytes.Buffer)

	buf.WriteString("TRACK\x00")
	binary.Write(buf, order, [3]int16{64, 64, 32})          // dim
	binary.Write(buf, order, [3]float32{2, 2, 2})          // voxel_size
	binary.Write(buf, order, [3]float32{0, 0, 0})          // origin
	binary.Write(buf, order, int16(nScalars))              // n_scalars
	names := make([]byte, 200)
	copy(names, "FA")
	buf.Write(names)                                       // scalar_name
	binary.Write(buf, order, int16(nProperties))           // n_properties
	buf.Write(make([]byte, 200))                           // property_name
	// vox_to_ras
	binary.Write(buf, order, [16]float32{2, 0, 0, 0, 0, 2, 0, 0, 0, 0, 2, 0, 0, 0, 0, 1})
	buf.Write(make([]byte, 444))                           // reserved
	buf.WriteString("LPS\x00")                             // voxel_order
	buf.Write(make([]byte, 4))                             // pad2
	binary.Write(buf, order, [6]float32{1, 0, 0, 0, 1, 0}) // image_orientation_patient
	buf.Write(make([]byte, 2))                             // pad1
	buf.Write([]byte{0, 0, 1, 0, 0, 0})                    // invert_x/y/z, swap_xy/yz/zx
	binary.Write(buf, order, nCount)
	binary.Write(buf, order, version)
	binary.Write(buf, order, int32(TRKHeaderSize))

	for ti, track := range tracks {
		binary.Write(buf, order, int32(len(track)))
		for pi, p := range track {
			binary.Write(buf, order, p)
			for s := 0; s < nScalars; s++ {
				binary.Write(buf, order, float32(pi))
			}
		}
		for p := 0; p < nProperties; p++ {
			binary.Write(buf, order, float32(ti))
		}
	}

	return buf.Bytes()
}

var twoTracks = [][][3]float32{
	{{0, 0, 0}, {1, 0, 0}, {2, 0, 0}},
	{{5, 5, 5}, {5, 6, 5}},
}

func TestParseTRK_ValidFile(t *testing.T) {
	data := createTestTRK(binary.LittleEndian, 2, 2, 0, 0, twoTracks)
	if len(data) < TRKHeaderSize {
		t.Fatalf("fixture too short: %d", len(data))
	}

	trk, err := ParseTRK(data)
	if err != nil {
		t.Fatalf("ParseTRK failed: %v", err)
	}

	if trk.Header.Version != 2 {
		t.Errorf("expected version 2, got %d", trk.Header.Version)
	}
	if trk.Header.Dim != [3]int16{64, 64, 32} {
		t.Errorf("expected dim 64x64x32, got %v", trk.Header.Dim)
	}
	if trk.Header.VoxelOrder != "LPS" {
		t.Errorf("expected voxel order LPS, got %q", trk.Header.VoxelOrder)
	}
	if !trk.Header.Invert[2] || trk.Header.Invert[0] {
		t.Errorf("expected only invert_z set, got %v", trk.Header.Invert)
	}
	if trk.TrackCount() != 2 {
		t.Fatalf("expected 2 tracks, got %d", trk.TrackCount())
	}
	if trk.PointCount(0) != 3 || trk.PointCount(1) != 2 {
		t.Errorf("expected point counts 3/2, got %d/%d", trk.PointCount(0), trk.PointCount(1))
	}
	if trk.TotalPoints() != 5 {
		t.Errorf("expected 5 points total, got %d", trk.TotalPoints())
	}

	x, y, z, err := trk.Point(1, 1)
	if err != nil {
		t.Fatalf("Point failed: %v", err)
	}
	if x != 5 || y != 6 || z != 5 {
		t.Errorf("expected point (5,6,5), got (%v,%v,%v)", x, y, z)
	}
}

func TestParseTRK_ScalarsAndProperties(t *testing.T) {
	data := createTestTRK(binary.LittleEndian, 2, 2, 1, 2, twoTracks)

	trk, err := ParseTRK(data)
	if err != nil {
		t.Fatalf("ParseTRK failed: %v", err)
	}

	if got := trk.Header.ScalarNames; len(got) != 1 || got[0] != "FA" {
		t.Errorf("expected scalar names [FA], got %v", got)
	}
	if trk.Header.NProperties() != 2 {
		t.Errorf("expected 2 properties, got %d", trk.Header.NProperties())
	}

	first := trk.Tracks[0]
	if len(first.Scalars) != 3 || first.Scalars[2] != 2 {
		t.Errorf("unexpected scalars %v", first.Scalars)
	}
	// Scalars must not leak into the coordinates.
	if x, _, _ := first.Point(2); x != 2 {
		t.Errorf("expected x=2 for third point, got %v", x)
	}
	if second := trk.Tracks[1]; len(second.Properties) != 2 || second.Properties[0] != 1 {
		t.Errorf("unexpected properties %v", second.Properties)
	}
}

func TestParseTRK_UnknownCountReadsToEOF(t *testing.T) {
	data := createTestTRK(binary.LittleEndian, 0, 1, 0, 0, twoTracks)

	trk, err := ParseTRK(data)
	if err != nil {
		t.Fatalf("ParseTRK failed: %v", err)
	}
	if trk.TrackCount() != 2 {
		t.Errorf("expected 2 tracks, got %d", trk.TrackCount())
	}
}

func TestParseTRK_BigEndian(t *testing.T) {
	data := createTestTRK(binary.BigEndian, 2, 2, 0, 0, twoTracks)

	trk, err := ParseTRK(data)
	if err != nil {
		t.Fatalf("ParseTRK failed: %v", err)
	}
	if trk.Header.ByteOrder != binary.BigEndian {
		t.Errorf("expected big endian byte order")
	}
	if x, _, _, _ := trk.Point(0, 1); x != 1 {
		t.Errorf("expected x=1, got %v", x)
	}
}

func TestParseTRK_Errors(t *testing.T) {
	valid := createTestTRK(binary.LittleEndian, 2, 2, 0, 0, twoTracks)

	badMagic := append([]byte(nil), valid...)
	copy(badMagic, "XXXXX")

	badSize := append([]byte(nil), valid...)
	binary.LittleEndian.PutUint32(badSize[TRKHeaderSize-4:], 999)

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"short header", []byte("TRACK"), ErrTruncatedTRKData},
		{"bad magic", badMagic, ErrInvalidTRKMagic},
		{"bad header size", badSize, ErrInvalidTRKHeader},
		{"bad version", createTestTRK(binary.LittleEndian, 2, 3, 0, 0, twoTracks), ErrUnsupportedTRKVersion},
		{"truncated track", valid[:len(valid)-4], ErrTruncatedTRKData},
		{"missing track", createTestTRK(binary.LittleEndian, 3, 2, 0, 0, twoTracks), ErrTruncatedTRKData},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseTRK(tc.data)
			if !errors.Is(err, tc.want) {
				t.Errorf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestTRK_PointOutOfRange(t *testing.T) {
	trk, err := ParseTRK(createTestTRK(binary.LittleEndian, 2, 2, 0, 0, twoTracks))
	if err != nil {
		t.Fatalf("ParseTRK failed: %v", err)
	}

	if _, _, _, err := trk.Point(2, 0); !errors.Is(err, ErrTRKIndexOutOfRange) {
		t.Errorf("expected out of range for track 2, got %v", err)
	}
	if _, _, _, err := trk.Point(1, 2); !errors.Is(err, ErrTRKIndexOutOfRange) {
		t.Errorf("expected out of range for point 2, got %v", err)
	}
	if n := trk.PointCount(-1); n != 0 {
		t.Errorf("expected 0 points for invalid track, got %d", n)
	}
}

func TestWriteTRKFile_ReadBack(t *testing.T) {
	hdr := NewTRKHeader([3]int16{10, 10, 10}, [3]float32{1, 1, 1})
	hdr.ScalarNames = []string{"curvature"}
	trk := &TRK{
		Header: hdr,
		Tracks: []TRKTrack{
			{Points: []float32{0, 0, 0, 1, 1, 1}, Scalars: []float32{0.5, 0.25}},
			{Points: []float32{3, 2, 1}, Scalars: []float32{1}},
		},
	}

	path := filepath.Join(t.TempDir(), "out", "bundle.trk")
	if err := WriteTRKFile(path, trk); err != nil {
		t.Fatalf("WriteTRKFile failed: %v", err)
	}

	got, err := ParseTRKFile(path)
	if err != nil {
		t.Fatalf("ParseTRKFile failed: %v", err)
	}
	if got.Header.TrackCount != 2 || got.TrackCount() != 2 {
		t.Fatalf("expected 2 tracks, header says %d, parsed %d", got.Header.TrackCount, got.TrackCount())
	}
	if got.Header.ScalarNames[0] != "curvature" {
		t.Errorf("expected scalar name curvature, got %q", got.Header.ScalarNames[0])
	}
	if x, y, z, _ := got.Point(1, 0); x != 3 || y != 2 || z != 1 {
		t.Errorf("expected (3,2,1), got (%v,%v,%v)", x, y, z)
	}
	if got.Tracks[0].Scalars[1] != 0.25 {
		t.Errorf("expected scalar 0.25, got %v", got.Tracks[0].Scalars[1])
	}
}

func TestEncodeTRK_Inconsistent(t *testing.T) {
	hdr := NewTRKHeader([3]int16{1, 1, 1}, [3]float32{1, 1, 1})
	hdr.PropertyNames = []string{"id"}
	trk := &TRK{Header: hdr, Tracks: []TRKTrack{{Points: []float32{0, 0, 0}}}}

	if _, err := EncodeTRK(trk); !errors.Is(err, ErrInconsistentTRKTrack) {
		t.Errorf("expected ErrInconsistentTRKTrack, got %v", err)
	}
}

func TestParseTRKFile_Missing(t *testing.T) {
	if _, err := ParseTRKFile(filepath.Join(t.TempDir(), "nope.trk")); err == nil {
		t.Error("expected error for missing file")
	}
}
