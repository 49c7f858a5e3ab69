package formats

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"os"

	"github.com/mangostaniko/Visualization2-17s/pkg/encoding"
)

// TRK format errors.
var (
	ErrInvalidTRKMagic       = errors.New("invalid TRK magic: expected 'TRACK'")
	ErrInvalidTRKHeader      = errors.New("invalid TRK header size")
	ErrUnsupportedTRKVersion = errors.New("unsupported TRK version")
	ErrTruncatedTRKData      = errors.New("truncated TRK data")
	ErrTRKIndexOutOfRange    = errors.New("TRK track or point index out of range")
)

// TRKHeaderSize is the fixed size of a TrackVis header in bytes.
const TRKHeaderSize = 1000

const (
	trkMagic       = "TRACK"
	trkMaxNames    = 10
	trkNameLength  = 20
	trkMaxPoints   = 1 << 24 // per track, guards against garbage lengths
	trkMinVersion  = 1
	trkMaxVersion  = 2
	trkVoxelOrderN = 4
)

// trkRawHeader mirrors the on-disk header layout (packed, 1000 bytes).
type trkRawHeader struct {
	ID                      [6]byte
	Dim                     [3]int16
	VoxelSize               [3]float32
	Origin                  [3]float32
	NScalars                int16
	ScalarNames             [trkMaxNames][trkNameLength]byte
	NProperties             int16
	PropertyNames           [trkMaxNames][trkNameLength]byte
	VoxToRAS                [4][4]float32
	Reserved                [444]byte
	VoxelOrder              [trkVoxelOrderN]byte
	Pad2                    [4]byte
	ImageOrientationPatient [6]float32
	Pad1                    [2]byte
	InvertX                 uint8
	InvertY                 uint8
	InvertZ                 uint8
	SwapXY                  uint8
	SwapYZ                  uint8
	SwapZX                  uint8
	NCount                  int32
	Version                 int32
	HdrSize                 int32
}

// TRKHeader holds the decoded TrackVis header fields.
type TRKHeader struct {
	Dim                     [3]int16
	VoxelSize               [3]float32
	Origin                  [3]float32
	ScalarNames             []string
	PropertyNames           []string
	VoxToRAS                [4][4]float32 // row-major; all zero in version 1 files
	VoxelOrder              string
	ImageOrientationPatient [6]float32
	Invert                  [3]bool
	Swap                    [3]bool // XY, YZ, ZX
	TrackCount              int32   // 0 means "unknown, read to end of file"
	Version                 int32
	ByteOrder               binary.ByteOrder
}

// NScalars returns the number of per-point scalar values.
func (h *TRKHeader) NScalars() int { return len(h.ScalarNames) }

// NProperties returns the number of per-track property values.
func (h *TRKHeader) NProperties() int { return len(h.PropertyNames) }

// TRKTrack is one streamline.
type TRKTrack struct {
	// Points holds x, y, z triples in voxmm space.
	Points []float32
	// Scalars holds NScalars values per point, point-major.
	Scalars    []float32
	Properties []float32
}

// Len returns the number of points in the track.
func (t *TRKTrack) Len() int { return len(t.Points) / 3 }

// Point returns the i-th point.
func (t *TRKTrack) Point(i int) (x, y, z float32) {
	p := t.Points[i*3 : i*3+3]
	return p[0], p[1], p[2]
}

// TRK represents a parsed TrackVis track file.
type TRK struct {
	Header TRKHeader
	Tracks []TRKTrack
}

// TrackCount returns the number of tracks.
func (t *TRK) TrackCount() int { return len(t.Tracks) }

// PointCount returns the number of points in track i, or 0 if i is out of range.
func (t *TRK) PointCount(track int) int {
	if track < 0 || track >= len(t.Tracks) {
		return 0
	}
	return t.Tracks[track].Len()
}

// Point returns point j of track i.
func (t *TRK) Point(track, point int) (x, y, z float32, err error) {
	if track < 0 || track >= len(t.Tracks) {
		return 0, 0, 0, fmt.Errorf("%w: track %d of %d", ErrTRKIndexOutOfRange, track, len(t.Tracks))
	}
	tr := &t.Tracks[track]
	if point < 0 || point >= tr.Len() {
		return 0, 0, 0, fmt.Errorf("%w: point %d of %d in track %d", ErrTRKIndexOutOfRange, point, tr.Len(), track)
	}
	x, y, z = tr.Point(point)
	return x, y, z, nil
}

// TotalPoints returns the number of points across all tracks.
func (t *TRK) TotalPoints() int {
	n := 0
	for i := range t.Tracks {
		n += t.Tracks[i].Len()
	}
	return n
}

// ParseTRK parses a TrackVis file from raw bytes.
func ParseTRK(data []byte) (*TRK, error) {
	if len(data) < TRKHeaderSize {
		return nil, fmt.Errorf("%w: header needs %d bytes, got %d", ErrTruncatedTRKData, TRKHeaderSize, len(data))
	}

	if string(data[0:5]) != trkMagic {
		return nil, ErrInvalidTRKMagic
	}

	// hdr_size doubles as the byte order marker.
	order, err := detectTRKByteOrder(data)
	if err != nil {
		return nil, err
	}

	var raw trkRawHeader
	if err := binary.Read(bytes.NewReader(data[:TRKHeaderSize]), order, &raw); err != nil {
		return nil, fmt.Errorf("%w: reading header", ErrTruncatedTRKData)
	}

	if raw.Version < trkMinVersion || raw.Version > trkMaxVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedTRKVersion, raw.Version)
	}
	if raw.NScalars < 0 || raw.NScalars > trkMaxNames || raw.NProperties < 0 || raw.NProperties > trkMaxNames {
		return nil, fmt.Errorf("%w: %d scalars, %d properties", ErrInvalidTRKHeader, raw.NScalars, raw.NProperties)
	}

	trk := &TRK{Header: decodeTRKHeader(&raw, order)}

	r := bytes.NewReader(data[TRKHeaderSize:])
	ns := trk.Header.NScalars()
	np := trk.Header.NProperties()

	for i := 0; trk.Header.TrackCount == 0 || i < int(trk.Header.TrackCount); i++ {
		if trk.Header.TrackCount == 0 && r.Len() == 0 {
			break
		}
		track, err := parseTRKTrack(r, order, ns, np)
		if err != nil {
			return nil, fmt.Errorf("parsing track %d: %w", i, err)
		}
		trk.Tracks = append(trk.Tracks, track)
	}

	return trk, nil
}

func detectTRKByteOrder(data []byte) (binary.ByteOrder, error) {
	sizeField := data[TRKHeaderSize-4 : TRKHeaderSize]
	if binary.LittleEndian.Uint32(sizeField) == TRKHeaderSize {
		return binary.LittleEndian, nil
	}
	if binary.BigEndian.Uint32(sizeField) == TRKHeaderSize {
		return binary.BigEndian, nil
	}
	return nil, fmt.Errorf("%w: %d", ErrInvalidTRKHeader, binary.LittleEndian.Uint32(sizeField))
}

func decodeTRKHeader(raw *trkRawHeader, order binary.ByteOrder) TRKHeader {
	h := TRKHeader{
		Dim:                     raw.Dim,
		VoxelSize:               raw.VoxelSize,
		Origin:                  raw.Origin,
		VoxToRAS:                raw.VoxToRAS,
		VoxelOrder:              encoding.FixedString(raw.VoxelOrder[:]),
		ImageOrientationPatient: raw.ImageOrientationPatient,
		Invert:                  [3]bool{raw.InvertX != 0, raw.InvertY != 0, raw.InvertZ != 0},
		Swap:                    [3]bool{raw.SwapXY != 0, raw.SwapYZ != 0, raw.SwapZX != 0},
		TrackCount:              raw.NCount,
		Version:                 raw.Version,
		ByteOrder:               order,
	}
	for i := 0; i < int(raw.NScalars); i++ {
		h.ScalarNames = append(h.ScalarNames, encoding.FixedString(raw.ScalarNames[i][:]))
	}
	for i := 0; i < int(raw.NProperties); i++ {
		h.PropertyNames = append(h.PropertyNames, encoding.FixedString(raw.PropertyNames[i][:]))
	}
	return h
}

// parseTRKTrack reads the point count, the point records and the track properties.
func parseTRKTrack(r *bytes.Reader, order binary.ByteOrder, nScalars, nProperties int) (TRKTrack, error) {
	var m int32
	if err := binary.Read(r, order, &m); err != nil {
		return TRKTrack{}, fmt.Errorf("%w: reading point count", ErrTruncatedTRKData)
	}
	if m < 0 || m > trkMaxPoints {
		return TRKTrack{}, fmt.Errorf("%w: point count %d", ErrTruncatedTRKData, m)
	}

	stride := 3 + nScalars
	need := int(m)*stride*4 + nProperties*4
	if need > r.Len() {
		return TRKTrack{}, fmt.Errorf("%w: need %d bytes for %d points, have %d", ErrTruncatedTRKData, need, m, r.Len())
	}

	record := make([]float32, int(m)*stride)
	if err := binary.Read(r, order, record); err != nil {
		return TRKTrack{}, fmt.Errorf("%w: reading points", ErrTruncatedTRKData)
	}

	track := TRKTrack{Points: make([]float32, 0, int(m)*3)}
	if nScalars > 0 {
		track.Scalars = make([]float32, 0, int(m)*nScalars)
	}
	for i := 0; i < int(m); i++ {
		rec := record[i*stride : (i+1)*stride]
		track.Points = append(track.Points, rec[0], rec[1], rec[2])
		track.Scalars = append(track.Scalars, rec[3:]...)
	}

	if nProperties > 0 {
		track.Properties = make([]float32, nProperties)
		if err := binary.Read(r, order, track.Properties); err != nil {
			return TRKTrack{}, fmt.Errorf("%w: reading properties", ErrTruncatedTRKData)
		}
	}

	return track, nil
}

// ParseTRKFile parses a TrackVis file from disk.
func ParseTRKFile(path string) (*TRK, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading TRK file: %w", err)
	}
	return ParseTRK(data)
}
