package main

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"go.uber.org/zap"

	"github.com/mangostaniko/Visualization2-17s/internal/viewer"
)

func (tv *tractView) renderPanel(x, y, w, h float32) {
	imgui.SetNextWindowPos(imgui.NewVec2(x, y))
	imgui.SetNextWindowSize(imgui.NewVec2(w, h))
	if !imgui.BeginV("Controls", nil, imgui.WindowFlagsNoMove|imgui.WindowFlagsNoResize|imgui.WindowFlagsNoCollapse) {
		imgui.End()
		return
	}
	defer imgui.End()

	st := &tv.app.State

	imgui.BeginDisabledV(st.Busy)
	tv.renderDataSection(st)
	imgui.EndDisabled()

	imgui.Spacing()
	imgui.Separator()
	tv.renderLineSection(st)

	imgui.Spacing()
	imgui.Separator()
	tv.renderClipSection(st)

	imgui.Spacing()
	imgui.Separator()
	tv.renderViewSection()

	imgui.Spacing()
	imgui.Separator()
	fps := int(imgui.CurrentIO().Framerate() + 0.5)
	c := fpsColor(viewer.ClassifyFPS(fps))
	imgui.TextColored(imgui.NewVec4(c[0], c[1], c[2], c[3]), fmt.Sprintf("FPS: %d", fps))
	if ds := st.Store.Load(); ds != nil {
		imgui.Text(fmt.Sprintf("Points: %d", ds.PointCount))
		imgui.Text(fmt.Sprintf("Vertices: %d", ds.VertexCount()))
	}
}

func (tv *tractView) renderDataSection(st *viewer.State) {
	imgui.Text("Data")

	vertices := int32(st.TestDataVertices)
	imgui.SetNextItemWidth(140)
	if imgui.InputInt("Vertices", &vertices) {
		st.TestDataVertices = max(int(vertices), 0)
	}
	imgui.SameLine()
	if imgui.Button("Generate") {
		if err := tv.app.GenerateTestData(st.TestDataVertices); err != nil {
			tv.log.Warn("generate failed", zap.Error(err))
		} else {
			tv.backend.SetWindowTitle("Tractview - test data")
		}
	}

	if imgui.ButtonV("Open TrackVis File...", imgui.NewVec2(-1, 0)) {
		tv.openFileDialog()
	}
}

func (tv *tractView) renderLineSection(st *viewer.State) {
	imgui.Text("Lines")

	if imgui.BeginCombo("Mode", st.Mode.Label()) {
		for _, m := range viewer.RenderModes {
			if imgui.SelectableBoolV(m.Label(), m == st.Mode, 0, imgui.NewVec2(0, 0)) {
				st.Mode = m
			}
		}
		imgui.EndCombo()
	}

	imgui.SliderFloatV("Strip Width", &st.Params.StripWidth, 0.0001, 0.1, "%.4f", imgui.SliderFlagsNone)
	imgui.SliderFloatV("Percentage Black", &st.Params.PercentageBlack, 0, 1, "%.2f", imgui.SliderFlagsNone)
	imgui.SliderFloatV("Depth Cueing", &st.Params.DepthCueingFactor, 0, 5, "%.2f", imgui.SliderFlagsNone)
	imgui.SliderFloatV("Halo Max Depth", &st.Params.HaloMaxDepth, 0, 0.5, "%.3f", imgui.SliderFlagsNone)

	if imgui.Button("Restore Defaults") {
		tv.app.RestoreDefaults()
	}
}

func (tv *tractView) renderClipSection(st *viewer.State) {
	imgui.Text("Clipping")

	imgui.Checkbox("Enable Clipping", &st.EnableClipping)

	slider := int32(st.ClipSlider)
	if imgui.SliderIntV("Clip Distance", &slider, 0, 100, "%d", imgui.SliderFlagsNone) {
		st.SetClipSlider(int(slider))
	}
	if imgui.Button("Set Clip Plane Normal") {
		tv.renderer.UpdateClipPlaneNormal()
	}
	imgui.SameLine()
	imgui.TextDisabled("(from view)")
}

func (tv *tractView) renderViewSection() {
	imgui.Text("View")

	imgui.Checkbox("Bounding Box", &tv.showBBox)
	if imgui.Button("Reset View") {
		tv.renderer.Camera.Reset()
	}
	imgui.SameLine()
	if imgui.Button("Snapshot") {
		tv.snapshotRequested = true
	}
	imgui.TextDisabled("(Drag to rotate, scroll to zoom, F12 snapshot)")
}
