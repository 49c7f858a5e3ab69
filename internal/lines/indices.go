package lines

import stdmath "math"

// RestartIndex is the primitive restart index used to break strips in element buffers.
const RestartIndex uint32 = 0xFFFFFFFF

// FloatsPerVertex is the number of floats Flatten writes per vertex:
// position (3), direction (3), uv (2), strip end (1).
const FloatsPerVertex = 9

// UsableSentinel reports whether s can mark a strip end in z. Normalized
// coordinates lie in [-1, 1], so only finite values outside that range qualify.
func UsableSentinel(s float32) bool {
	f := float64(s)
	return !stdmath.IsNaN(f) && !stdmath.IsInf(f, 0) && stdmath.Abs(f) > 1
}

// breaksAfter reports whether the strip must not continue past point i.
// Vertices whose z equals sentinel count as strip ends so streams marked the
// legacy way still break. A sentinel that fails UsableSentinel is ignored.
func breaksAfter(v Vertex, sentinel float32) bool {
	return v.StripEnd || (UsableSentinel(sentinel) && v.Position.Z == sentinel)
}

// StripIndices returns element indices for drawing line as GL_TRIANGLE_STRIP,
// with RestartIndex inserted after every strip end.
func StripIndices(line Polyline, sentinel float32) []uint32 {
	n := line.PointCount()
	idx := make([]uint32, 0, len(line)+n/8)
	for i := 0; i < n; i++ {
		idx = append(idx, uint32(2*i), uint32(2*i+1))
		if i < n-1 && breaksAfter(line[2*i], sentinel) {
			idx = append(idx, RestartIndex)
		}
	}
	return idx
}

// LineIndices returns one index per strip pair for drawing line as GL_LINE_STRIP,
// with the same restart rule as StripIndices.
func LineIndices(line Polyline, sentinel float32) []uint32 {
	n := line.PointCount()
	idx := make([]uint32, 0, n+n/8)
	for i := 0; i < n; i++ {
		idx = append(idx, uint32(2*i))
		if i < n-1 && breaksAfter(line[2*i], sentinel) {
			idx = append(idx, RestartIndex)
		}
	}
	return idx
}

// Flatten interleaves line into the vertex buffer layout the line shaders expect.
func Flatten(line Polyline) []float32 {
	out := make([]float32, 0, len(line)*FloatsPerVertex)
	for _, v := range line {
		var end float32
		if v.StripEnd {
			end = 1
		}
		out = append(out,
			v.Position.X, v.Position.Y, v.Position.Z,
			v.DirectionToNext.X, v.DirectionToNext.Y, v.DirectionToNext.Z,
			v.UV.X, v.UV.Y,
			end,
		)
	}
	return out
}

// Packed holds the GPU-ready buffers for a set of polylines.
type Packed struct {
	Vertices []float32 // FloatsPerVertex floats per vertex
	Strip    []uint32
	Lines    []uint32
}

// VertexCount returns the number of vertices in Vertices.
func (p Packed) VertexCount() int {
	return len(p.Vertices) / FloatsPerVertex
}

// Pack concatenates polylines into shared buffers. Indices of each polyline are
// offset by the vertices before it, and a RestartIndex separates consecutive polylines.
func Pack(ls []Polyline, sentinel float32) Packed {
	var p Packed
	for _, line := range ls {
		if len(line) == 0 {
			continue
		}
		base := uint32(p.VertexCount())
		if len(p.Strip) > 0 {
			p.Strip = append(p.Strip, RestartIndex)
			p.Lines = append(p.Lines, RestartIndex)
		}
		p.Strip = appendOffset(p.Strip, StripIndices(line, sentinel), base)
		p.Lines = appendOffset(p.Lines, LineIndices(line, sentinel), base)
		p.Vertices = append(p.Vertices, Flatten(line)...)
	}
	return p
}

func appendOffset(dst, idx []uint32, base uint32) []uint32 {
	for _, i := range idx {
		if i != RestartIndex {
			i += base
		}
		dst = append(dst, i)
	}
	return dst
}
