package formats

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mangostaniko/Visualization2-17s/pkg/encoding"
)

// ErrInconsistentTRKTrack is returned when a track's scalar or property count does not match the header.
var ErrInconsistentTRKTrack = errors.New("track data does not match TRK header")

// NewTRKHeader returns a version 2 little-endian header for a volume of the given
// dimensions and voxel size, with an identity-scaled vox_to_ras matrix.
func NewTRKHeader(dim [3]int16, voxelSize [3]float32) TRKHeader {
	return TRKHeader{
		Dim:       dim,
		VoxelSize: voxelSize,
		VoxToRAS: [4][4]float32{
			{voxelSize[0], 0, 0, 0},
			{0, voxelSize[1], 0, 0},
			{0, 0, voxelSize[2], 0},
			{0, 0, 0, 1},
		},
		VoxelOrder: "LPS",
		Version:    2,
		ByteOrder:  binary.LittleEndian,
	}
}

// EncodeTRK serializes a TRK to bytes. The header's TrackCount is written as len(Tracks).
func EncodeTRK(trk *TRK) ([]byte, error) {
	h := &trk.Header
	if h.NScalars() > trkMaxNames || h.NProperties() > trkMaxNames {
		return nil, fmt.Errorf("%w: at most %d scalar and property names", ErrInvalidTRKHeader, trkMaxNames)
	}
	order := h.ByteOrder
	if order == nil {
		order = binary.LittleEndian
	}
	version := h.Version
	if version == 0 {
		version = trkMaxVersion
	}

	raw := trkRawHeader{
		Dim:                     h.Dim,
		VoxelSize:               h.VoxelSize,
		Origin:                  h.Origin,
		NScalars:                int16(h.NScalars()),
		NProperties:             int16(h.NProperties()),
		VoxToRAS:                h.VoxToRAS,
		ImageOrientationPatient: h.ImageOrientationPatient,
		InvertX:                 boolByte(h.Invert[0]),
		InvertY:                 boolByte(h.Invert[1]),
		InvertZ:                 boolByte(h.Invert[2]),
		SwapXY:                  boolByte(h.Swap[0]),
		SwapYZ:                  boolByte(h.Swap[1]),
		SwapZX:                  boolByte(h.Swap[2]),
		NCount:                  int32(len(trk.Tracks)),
		Version:                 version,
		HdrSize:                 TRKHeaderSize,
	}
	copy(raw.ID[:], trkMagic)
	copy(raw.VoxelOrder[:], encoding.PutFixedString(h.VoxelOrder, trkVoxelOrderN))
	for i, name := range h.ScalarNames {
		copy(raw.ScalarNames[i][:], encoding.PutFixedString(name, trkNameLength))
	}
	for i, name := range h.PropertyNames {
		copy(raw.PropertyNames[i][:], encoding.PutFixedString(name, trkNameLength))
	}

	buf := new(bytes.Buffer)
	if err := binary.Write(buf, order, &raw); err != nil {
		return nil, fmt.Errorf("writing header: %w", err)
	}

	ns, np := h.NScalars(), h.NProperties()
	for i := range trk.Tracks {
		tr := &trk.Tracks[i]
		n := tr.Len()
		if len(tr.Points) != n*3 || len(tr.Scalars) != n*ns || len(tr.Properties) != np {
			return nil, fmt.Errorf("%w: track %d", ErrInconsistentTRKTrack, i)
		}

		if err := binary.Write(buf, order, int32(n)); err != nil {
			return nil, err
		}
		record := make([]float32, 0, n*(3+ns))
		for p := 0; p < n; p++ {
			record = append(record, tr.Points[p*3:p*3+3]...)
			record = append(record, tr.Scalars[p*ns:(p+1)*ns]...)
		}
		if err := binary.Write(buf, order, record); err != nil {
			return nil, err
		}
		if np > 0 {
			if err := binary.Write(buf, order, tr.Properties); err != nil {
				return nil, err
			}
		}
	}

	return buf.Bytes(), nil
}

// WriteTRKFile encodes a TRK and writes it to path, creating parent directories.
func WriteTRKFile(path string, trk *TRK) error {
	data, err := EncodeTRK(trk)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func boolByte(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
