package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mangostaniko/Visualization2-17s/internal/config"
	"github.com/mangostaniko/Visualization2-17s/internal/engine/debug"
	"github.com/mangostaniko/Visualization2-17s/internal/engine/framebuffer"
	"github.com/mangostaniko/Visualization2-17s/internal/engine/renderer"
	"github.com/mangostaniko/Visualization2-17s/internal/engine/window"
	"github.com/mangostaniko/Visualization2-17s/internal/logger"
	"github.com/mangostaniko/Visualization2-17s/internal/viewer"
)

// cmdRender draws a file the way the viewer would and writes the frame to an image.
func cmdRender(args []string) {
	fs := flag.NewFlagSet("render", flag.ExitOnError)
	configPath := fs.String("config", "", "Viewer config file (defaults are used otherwise)")
	out := fs.String("o", "", "Output image (.png or .bmp; default <file>.<snapshot format>)")
	mode := fs.String("mode", "", "Render mode: lines, triangle_strips or halo")
	width := fs.Int("width", 0, "Image width")
	height := fs.Int("height", 0, "Image height")
	clip := fs.Int("clip", -1, "Enable clipping at this slider position [0, 100]")
	yaw := fs.Float64("yaw", 0, "Rotate the view about the vertical axis, in degrees")
	debugLog := fs.Bool("debug", false, "Enable debug logging")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: trktool render [-config file] [-o out.png] [-mode m] [-width w] [-height h] [-clip n] [-yaw deg] <file.trk>")
		os.Exit(1)
	}
	path := fs.Arg(0)

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.LoadFile(*configPath); err != nil {
			fail(err)
		}
	}
	if *mode != "" {
		cfg.Render.Mode = *mode
	}
	if *width > 0 {
		cfg.Snapshot.Width = *width
	}
	if *height > 0 {
		cfg.Snapshot.Height = *height
	}
	if *debugLog {
		cfg.Logging.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		fail(err)
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fail(err)
	}
	defer logger.Sync()

	outPath := *out
	format := cfg.Snapshot.Format
	if outPath == "" {
		outPath = strings.TrimSuffix(path, filepath.Ext(path)) + "." + format
	} else if ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(outPath)), "."); ext != "" {
		format = ext
	}

	app, err := viewer.NewApp(cfg, nil)
	if err != nil {
		fail(err)
	}
	if *clip >= 0 {
		app.State.EnableClipping = true
		app.State.SetClipSlider(*clip)
	}

	win, err := window.New(window.Config{
		Title:  "trktool render",
		Width:  cfg.Snapshot.Width,
		Height: cfg.Snapshot.Height,
		Hidden: true,
	})
	if err != nil {
		fail(err)
	}
	defer win.Close()

	rcfg := renderer.DefaultConfig()
	rcfg.Sentinel = viewer.LoaderOptions(cfg.Loader).IndexSentinel()
	r, err := renderer.New(rcfg)
	if err != nil {
		fail(err)
	}
	defer r.Close()

	fb, err := framebuffer.New(int32(cfg.Snapshot.Width), int32(cfg.Snapshot.Height))
	if err != nil {
		fail(err)
	}
	defer fb.Destroy()

	app.SetRenderer(r)
	if err := app.OpenFile(path); err != nil {
		fail(err)
	}

	if *yaw != 0 {
		r.Camera.RotateYaw(float32(*yaw))
	}
	if app.State.EnableClipping {
		r.UpdateClipPlaneNormal()
	}

	r.Draw(fb, &app.State, renderer.DrawOptions{
		Background:       cfg.Render.BackgroundColor,
		ShowBoundingBox:  cfg.Render.ShowBoundingBox,
		BoundingBoxColor: renderer.DefaultBoundingBoxColor,
	})

	if err := debug.WriteImageFile(outPath, fb.ReadImage(), format); err != nil {
		fail(err)
	}
	fmt.Printf("%s\nWrote %s (%dx%d, %s)\n", app.State.Status, outPath, cfg.Snapshot.Width, cfg.Snapshot.Height, app.State.Mode)
}
