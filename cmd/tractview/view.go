package main

import (
	"fmt"
	"path/filepath"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/sqweek/dialog"
	"go.uber.org/zap"

	"github.com/mangostaniko/Visualization2-17s/internal/config"
	"github.com/mangostaniko/Visualization2-17s/internal/engine/debug"
	"github.com/mangostaniko/Visualization2-17s/internal/engine/framebuffer"
	"github.com/mangostaniko/Visualization2-17s/internal/engine/renderer"
	"github.com/mangostaniko/Visualization2-17s/internal/engine/ui"
	"github.com/mangostaniko/Visualization2-17s/internal/logger"
	"github.com/mangostaniko/Visualization2-17s/internal/viewer"
)

const (
	panelWidth      = 320
	statusBarHeight = 28
)

// tractView owns the window, the GL resources and the ImGui layout.
type tractView struct {
	cfg *config.Config
	app *viewer.App

	backend   *ui.Backend
	renderer  *renderer.LineRenderer
	fb        *framebuffer.Framebuffer
	snapshots *debug.Snapshotter

	// pendingPath receives dialog selections; SDL and GL work stays on the main thread.
	pendingPath chan string

	showBBox          bool
	snapshotRequested bool
	lastMousePos      imgui.Vec2
	log               *zap.Logger
}

func newTractView(cfg *config.Config, app *viewer.App) (*tractView, error) {
	tv := &tractView{
		cfg:         cfg,
		app:         app,
		snapshots:   debug.NewSnapshotter(cfg.Snapshot.Dir, "tractview", cfg.Snapshot.Format),
		pendingPath: make(chan string, 1),
		showBBox:    cfg.Render.ShowBoundingBox,
		log:         logger.Named("tractview"),
	}

	var err error
	tv.backend, err = ui.NewBackend("Tractview", int32(cfg.Window.Width), int32(cfg.Window.Height), cfg.Render.BackgroundColor)
	if err != nil {
		return nil, err
	}

	rcfg := renderer.DefaultConfig()
	rcfg.Sentinel = viewer.LoaderOptions(cfg.Loader).IndexSentinel()
	tv.renderer, err = renderer.New(rcfg)
	if err != nil {
		return nil, err
	}

	tv.fb, err = framebuffer.New(int32(cfg.Window.Width-panelWidth), int32(cfg.Window.Height-statusBarHeight))
	if err != nil {
		tv.renderer.Close()
		return nil, err
	}

	app.SetRenderer(tv.renderer)
	return tv, nil
}

// startup loads the configured file, or generates test data when there is none.
func (tv *tractView) startup() {
	if path := tv.cfg.Loader.InitialFile; path != "" {
		if err := tv.app.OpenFile(path); err != nil {
			tv.log.Warn("startup file not loaded", zap.String("path", path), zap.Error(err))
			return
		}
		tv.backend.SetWindowTitle(fmt.Sprintf("Tractview - %s", filepath.Base(path)))
		return
	}
	if err := tv.app.GenerateTestData(tv.app.State.TestDataVertices); err != nil {
		tv.log.Warn("startup test data not generated", zap.Error(err))
	}
}

// Close releases GL resources.
func (tv *tractView) Close() {
	if tv.fb != nil {
		tv.fb.Destroy()
	}
	if tv.renderer != nil {
		tv.renderer.Close()
	}
}

// Run starts the main loop.
func (tv *tractView) Run() {
	tv.backend.Run(tv.render)
}

// openFileDialog shows a native dialog without blocking the frame loop.
func (tv *tractView) openFileDialog() {
	desc, exts := viewer.DialogFilters()
	go func() {
		filename, err := dialog.File().
			Filter(desc, exts...).
			Title("Open Tractography Data").
			Load()
		if err != nil {
			if err != dialog.ErrCancelled {
				tv.log.Error("file dialog error", zap.Error(err))
			}
			return
		}
		select {
		case tv.pendingPath <- filename:
		default:
		}
	}()
}

func (tv *tractView) render() {
	select {
	case path := <-tv.pendingPath:
		if err := tv.app.OpenFileAsync(path); err != nil {
			tv.log.Warn("open ignored", zap.String("path", path), zap.Error(err))
		}
	default:
	}

	if handled, err := tv.app.Poll(); handled && err == nil {
		if ds := tv.app.State.Store.Load(); ds != nil {
			tv.backend.SetWindowTitle(fmt.Sprintf("Tractview - %s", filepath.Base(ds.Source)))
		}
	}

	if ui.IsKeyPressed(imgui.KeyF12) {
		tv.snapshotRequested = true
	}

	x, y, w, h := tv.backend.GetViewport()

	tv.renderPanel(x, y, panelWidth, h-statusBarHeight)
	tv.renderView(x+panelWidth, y, w-panelWidth, h-statusBarHeight)
	tv.renderStatusBar(x, y+h-statusBarHeight, w, statusBarHeight)
}

func (tv *tractView) renderView(x, y, w, h float32) {
	imgui.SetNextWindowPos(imgui.NewVec2(x, y))
	imgui.SetNextWindowSize(imgui.NewVec2(w, h))
	imgui.PushStyleVarVec2(imgui.StyleVarWindowPadding, imgui.NewVec2(0, 0))
	flags := imgui.WindowFlagsNoMove | imgui.WindowFlagsNoResize | imgui.WindowFlagsNoCollapse |
		imgui.WindowFlagsNoTitleBar | imgui.WindowFlagsNoScrollbar | imgui.WindowFlagsNoScrollWithMouse
	if imgui.BeginV("View", nil, flags) {
		avail := imgui.ContentRegionAvail()
		tv.fb.Resize(int32(avail.X), int32(avail.Y))
		tv.renderer.Draw(tv.fb, &tv.app.State, renderer.DrawOptions{
			Background:       tv.cfg.Render.BackgroundColor,
			ShowBoundingBox:  tv.showBBox,
			BoundingBoxColor: renderer.DefaultBoundingBoxColor,
		})

		if tv.snapshotRequested {
			tv.snapshotRequested = false
			tv.saveSnapshot()
		}

		ui.FramebufferImage(tv.fb.ColorTexture(), avail.X, avail.Y)
		tv.handleViewInput(avail)
	}
	imgui.End()
	imgui.PopStyleVar()
}

// handleViewInput rotates on left drag and zooms on wheel while the view is hovered.
func (tv *tractView) handleViewInput(size imgui.Vec2) {
	mousePos := imgui.MousePos()
	if imgui.IsItemHovered() {
		if imgui.IsMouseDragging(imgui.MouseButtonLeft) {
			origin := imgui.ItemRectMin()
			tv.renderer.Camera.HandleDrag(
				tv.lastMousePos.X-origin.X, tv.lastMousePos.Y-origin.Y,
				mousePos.X-origin.X, mousePos.Y-origin.Y,
				size.X, size.Y,
			)
		}
		if wheel := imgui.CurrentIO().MouseWheel(); wheel != 0 {
			tv.renderer.Camera.HandleZoom(wheel)
		}
	}
	tv.lastMousePos = mousePos
}

func (tv *tractView) saveSnapshot() {
	path, err := tv.snapshots.Save(tv.fb.ReadImage())
	if err != nil {
		tv.app.State.Status = fmt.Sprintf("ERROR saving snapshot: %v", err)
		tv.log.Error("snapshot failed", zap.Error(err))
		return
	}
	tv.app.State.Status = fmt.Sprintf("Snapshot saved [%s]", path)
	tv.log.Info("snapshot saved", zap.String("path", path))
}

func (tv *tractView) renderStatusBar(x, y, w, h float32) {
	imgui.SetNextWindowPos(imgui.NewVec2(x, y))
	imgui.SetNextWindowSize(imgui.NewVec2(w, h))
	flags := imgui.WindowFlagsNoMove | imgui.WindowFlagsNoResize | imgui.WindowFlagsNoCollapse |
		imgui.WindowFlagsNoTitleBar | imgui.WindowFlagsNoScrollbar
	if imgui.BeginV("##StatusBar", nil, flags) {
		imgui.Text(tv.app.State.Status)
	}
	imgui.End()
}
