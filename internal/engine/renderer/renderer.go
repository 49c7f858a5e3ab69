// Package renderer draws line datasets as lines, view-aligned ribbons or
// depth-dependent halos into an offscreen framebuffer.
package renderer

import (
	"fmt"
	gomath "math"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/mangostaniko/Visualization2-17s/internal/dataset"
	"github.com/mangostaniko/Visualization2-17s/internal/engine/camera"
	"github.com/mangostaniko/Visualization2-17s/internal/engine/debug"
	"github.com/mangostaniko/Visualization2-17s/internal/engine/framebuffer"
	"github.com/mangostaniko/Visualization2-17s/internal/engine/shader"
	"github.com/mangostaniko/Visualization2-17s/internal/lines"
	"github.com/mangostaniko/Visualization2-17s/internal/logger"
	"github.com/mangostaniko/Visualization2-17s/internal/viewer"
	"github.com/mangostaniko/Visualization2-17s/pkg/math"
)

// Config holds renderer configuration.
type Config struct {
	// Sentinel is the legacy strip break z value; NaN disables it.
	Sentinel float32
}

// DefaultConfig returns a configuration with the legacy sentinel disabled.
func DefaultConfig() Config {
	return Config{Sentinel: float32(gomath.NaN())}
}

// DefaultBoundingBoxColor is the wireframe color of the data volume.
var DefaultBoundingBoxColor = [4]float32{0.5, 0.5, 0.5, 1}

// DrawOptions carries per-frame settings that are not part of the viewer state.
type DrawOptions struct {
	Background       [4]float32
	ShowBoundingBox  bool
	BoundingBoxColor [4]float32
}

// LineRenderer holds the GPU copy of the current dataset.
// It must be created and used on the thread owning the GL context.
type LineRenderer struct {
	config Config
	Camera *camera.ArcballCamera

	lineProgram *shader.Program
	bboxProgram *shader.Program

	vao        uint32
	vbo        uint32
	stripEBO   uint32
	lineEBO    uint32
	stripCount int32
	lineCount  int32

	bboxVAO uint32
	bboxVBO uint32

	clipNormal math.Vec3
	log        *zap.Logger
}

// New creates a renderer. Must be called after the OpenGL context is current.
func New(cfg Config) (*LineRenderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	r := &LineRenderer{
		config:     cfg,
		Camera:     camera.NewArcballCamera(),
		clipNormal: math.Vec3{Z: -1},
		log:        logger.Named("renderer"),
	}

	r.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	var err error
	r.lineProgram, err = shader.NewProgram(lineVertexShader, lineFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("line shader: %w", err)
	}
	r.bboxProgram, err = shader.NewProgram(bboxVertexShader, bboxFragmentShader)
	if err != nil {
		r.lineProgram.Delete()
		return nil, fmt.Errorf("bbox shader: %w", err)
	}

	r.createLineBuffers()
	r.createBBox()

	return r, nil
}

func (r *LineRenderer) createLineBuffers() {
	gl.GenVertexArrays(1, &r.vao)
	gl.GenBuffers(1, &r.vbo)
	gl.GenBuffers(1, &r.stripEBO)
	gl.GenBuffers(1, &r.lineEBO)

	gl.BindVertexArray(r.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)

	stride := int32(lines.FloatsPerVertex * 4)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, 3*4)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, stride, 6*4)
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointerWithOffset(3, 1, gl.FLOAT, false, stride, 8*4)
	gl.EnableVertexAttribArray(3)

	gl.BindVertexArray(0)
}

func (r *LineRenderer) createBBox() {
	vertices := debug.UnitCubeWireframe()

	gl.GenVertexArrays(1, &r.bboxVAO)
	gl.BindVertexArray(r.bboxVAO)

	gl.GenBuffers(1, &r.bboxVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.bboxVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.STATIC_DRAW)

	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 3*4, 0)
	gl.EnableVertexAttribArray(0)

	gl.BindVertexArray(0)
}

// InitLineRenderMode uploads ds, replacing whatever was uploaded before.
// A nil or empty dataset leaves nothing to draw.
func (r *LineRenderer) InitLineRenderMode(ds *dataset.Dataset) {
	var packed lines.Packed
	if !ds.Empty() {
		packed = lines.Pack(ds.Lines, r.config.Sentinel)
	}

	gl.BindVertexArray(r.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	bufferData(gl.ARRAY_BUFFER, packed.Vertices)
	gl.BindVertexArray(0)

	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.stripEBO)
	bufferData(gl.ELEMENT_ARRAY_BUFFER, packed.Strip)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.lineEBO)
	bufferData(gl.ELEMENT_ARRAY_BUFFER, packed.Lines)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, 0)

	r.stripCount = int32(len(packed.Strip))
	r.lineCount = int32(len(packed.Lines))

	r.log.Debug("line buffers uploaded",
		zap.Int("vertices", packed.VertexCount()),
		zap.Int32("strip_indices", r.stripCount),
		zap.Int32("line_indices", r.lineCount),
	)
}

func bufferData[T float32 | uint32](target uint32, data []T) {
	if len(data) == 0 {
		gl.BufferData(target, 0, nil, gl.STATIC_DRAW)
		return
	}
	gl.BufferData(target, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)
}

// UpdateClipPlaneNormal orients the clipping plane along the current view direction.
func (r *LineRenderer) UpdateClipPlaneNormal() {
	r.clipNormal = r.Camera.ViewDirection()
	r.log.Debug("clip plane normal updated", zap.Float32s("normal", []float32{r.clipNormal.X, r.clipNormal.Y, r.clipNormal.Z}))
}

// ClipPlaneNormal returns the world-space clipping plane normal.
func (r *LineRenderer) ClipPlaneNormal() math.Vec3 {
	return r.clipNormal
}

// Draw renders the uploaded dataset into fb using the parameters in st.
func (r *LineRenderer) Draw(fb *framebuffer.Framebuffer, st *viewer.State, opts DrawOptions) {
	restore := fb.BindWithViewport()
	defer restore()

	fb.Clear(opts.Background)

	near, far := DepthRange(r.Camera.Distance)
	r.Camera.Near = max(near*0.5, 0.01)
	r.Camera.Far = far + 1
	view := r.Camera.ViewMatrix()
	proj := r.Camera.ProjectionMatrix(fb.Aspect())

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Disable(gl.CULL_FACE)

	if opts.ShowBoundingBox {
		r.bboxProgram.Use()
		r.bboxProgram.SetMat4("uView", view)
		r.bboxProgram.SetMat4("uProjection", proj)
		r.bboxProgram.SetVec4("uColor", opts.BoundingBoxColor)
		gl.BindVertexArray(r.bboxVAO)
		gl.DrawArrays(gl.LINES, 0, debug.BBoxWireframeVertexCount)
	}

	count, ebo, prim := r.stripCount, r.stripEBO, uint32(gl.TRIANGLE_STRIP)
	if st.Mode == viewer.ModeLines {
		count, ebo, prim = r.lineCount, r.lineEBO, gl.LINE_STRIP
	}
	if count == 0 {
		gl.BindVertexArray(0)
		return
	}

	p := r.lineProgram
	p.Use()
	p.SetMat4("uView", view)
	p.SetMat4("uProjection", proj)
	p.SetInt("uMode", shaderMode(st.Mode))
	p.SetFloat("uStripWidth", st.Params.StripWidth)
	p.SetFloat("uPercentageBlack", st.Params.PercentageBlack)
	p.SetFloat("uDepthCueing", st.Params.DepthCueingFactor)
	p.SetFloat("uHaloMaxDepth", st.Params.HaloMaxDepth)
	gl.Uniform2f(p.Uniform("uDepthRange"), near, far)
	gl.Uniform2f(p.Uniform("uNearFar"), r.Camera.Near, r.Camera.Far)
	p.SetBool("uEnableClipping", st.EnableClipping)
	p.SetVec4("uClipPlane", ClipPlane(r.clipNormal, st.ClipPlaneDistance))

	if st.EnableClipping {
		gl.Enable(gl.CLIP_DISTANCE0)
	}
	gl.Enable(gl.PRIMITIVE_RESTART)
	gl.PrimitiveRestartIndex(lines.RestartIndex)

	gl.BindVertexArray(r.vao)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, ebo)
	gl.DrawElements(prim, count, gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)

	gl.Disable(gl.PRIMITIVE_RESTART)
	gl.Disable(gl.CLIP_DISTANCE0)
}

// Close releases all GPU resources.
func (r *LineRenderer) Close() {
	r.log.Debug("closing renderer")
	for _, vao := range []*uint32{&r.vao, &r.bboxVAO} {
		if *vao != 0 {
			gl.DeleteVertexArrays(1, vao)
			*vao = 0
		}
	}
	for _, buf := range []*uint32{&r.vbo, &r.stripEBO, &r.lineEBO, &r.bboxVBO} {
		if *buf != 0 {
			gl.DeleteBuffers(1, buf)
			*buf = 0
		}
	}
	r.lineProgram.Delete()
	r.bboxProgram.Delete()
}

var _ viewer.Renderer = (*LineRenderer)(nil)
