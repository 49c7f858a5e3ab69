package viewer

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/mangostaniko/Visualization2-17s/internal/config"
	"github.com/mangostaniko/Visualization2-17s/internal/dataset"
	"github.com/mangostaniko/Visualization2-17s/internal/lines"
	"github.com/mangostaniko/Visualization2-17s/internal/logger"
	"github.com/mangostaniko/Visualization2-17s/internal/synth"
	"github.com/mangostaniko/Visualization2-17s/internal/tracks"
	"github.com/mangostaniko/Visualization2-17s/pkg/math"
)

// ErrBusy is returned when an action starts while a background load is running.
var ErrBusy = errors.New("another load is in progress")

// SyntheticSource is the Dataset.Source of generated test data.
const SyntheticSource = "synthetic"

// App runs the generate and load actions against a State.
// All methods must be called from the thread that owns the renderer.
type App struct {
	State    State
	cfg      *config.Config
	renderer Renderer
	pending  chan loadResult
}

// Loaded is a built dataset plus the parameters chosen for it.
type Loaded struct {
	Dataset *dataset.Dataset
	Format  FileFormat
	Params  RenderParams
	Large   bool
}

type loadResult struct {
	path   string
	loaded *Loaded
	err    error
	took   time.Duration
}

// NewApp creates an App from cfg. r may be nil until a GL context exists; see SetRenderer.
func NewApp(cfg *config.Config, r Renderer) (*App, error) {
	mode, err := ParseRenderMode(cfg.Render.Mode)
	if err != nil {
		return nil, err
	}
	a := &App{
		cfg:      cfg,
		renderer: r,
		pending:  make(chan loadResult, 1),
	}
	a.State.Mode = mode
	a.State.Params = ParamsFromPreset(cfg.Render.Presets.Synthetic)
	a.State.EnableClipping = cfg.Render.EnableClipping
	a.State.SetClipSlider(cfg.Render.ClipSlider)
	a.State.TestDataVertices = cfg.Generator.StripVertices
	return a, nil
}

// SetRenderer attaches r and syncs it with the current dataset.
func (a *App) SetRenderer(r Renderer) {
	a.renderer = r
	a.syncRenderer()
}

func (a *App) syncRenderer() {
	if a.renderer != nil {
		a.renderer.InitLineRenderMode(a.State.Store.Load())
	}
}

// RestoreDefaults resets the width parameters to the synthetic preset.
func (a *App) RestoreDefaults() {
	a.State.Params = ParamsFromPreset(a.cfg.Render.Presets.Synthetic)
}

// GenerateTestData replaces the dataset with one synthetic line of stripVertices/2 points in [-1, 1]^3.
func (a *App) GenerateTestData(stripVertices int) error {
	if a.State.Busy {
		return ErrBusy
	}
	start := time.Now()
	gen := a.cfg.Generator

	rng, seed := synth.NewRand(gen.Seed)
	params := synth.Params{
		StepSize:                gen.StepSize,
		Curviness:               gen.Curviness,
		TargetChangeProbability: gen.TargetChangeProbability,
		MinDistanceToTarget:     gen.MinDistanceToTarget,
	}
	boxMin := math.Vec3{X: gen.BoxMin[0], Y: gen.BoxMin[1], Z: gen.BoxMin[2]}
	boxMax := math.Vec3{X: gen.BoxMax[0], Y: gen.BoxMax[1], Z: gen.BoxMax[2]}

	positions := synth.Generate(rng, stripVertices/2, boxMin, boxMax, params)
	line, err := lines.BuildPositions(positions)
	if err != nil {
		a.State.Status = fmt.Sprintf("ERROR generating test data: %v", err)
		return fmt.Errorf("generating %d strip vertices: %w", stripVertices, err)
	}

	ds := dataset.New(SyntheticSource, line)
	a.State.Params = ParamsFromPreset(a.cfg.Render.Presets.Synthetic)
	version := a.State.Store.Replace(ds)
	a.syncRenderer()

	a.State.Status = fmt.Sprintf("Test data GENERATED [%d vertices]", ds.VertexCount())
	logger.Info("test data generated",
		zap.Int("points", ds.PointCount),
		zap.Int("vertices", ds.VertexCount()),
		zap.Int("floats", ds.VertexCount()*lines.FloatsPerVertex),
		zap.Uint64("seed", seed),
		zap.Uint64("version", version),
		zap.Duration("took", time.Since(start)))
	return nil
}

// LoaderOptions maps loader settings onto track loading options. Renderers
// take their index sentinel from the same value via IndexSentinel.
func LoaderOptions(c config.LoaderConfig) tracks.Options {
	return tracks.Options{
		LegacySentinel: c.LegacySentinel,
		Sentinel:       c.Sentinel,
	}
}

// LoadFile reads and builds the dataset at path without touching any state.
// It is safe to call off the render thread.
func (a *App) LoadFile(path string) (*Loaded, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}

	res, err := tracks.Load(format.Open(path), LoaderOptions(a.cfg.Loader))
	if err != nil {
		return nil, err
	}

	line, err := lines.Build(res.Points)
	if err != nil {
		return nil, err
	}

	large := tracks.LargeDataset(len(res.Points), a.cfg.Render.LargeDatasetThreshold)
	preset := a.cfg.Render.Presets.TrackSmall
	if large {
		preset = a.cfg.Render.Presets.TrackLarge
	}

	logger.Debug("tracks normalized",
		zap.String("file", filepath.Base(path)),
		zap.Int("tracks", res.TrackCount),
		zap.Int("dominant_axis", res.DominantAxis),
		zap.Float32("scale", res.Scale))

	return &Loaded{
		Dataset: dataset.New(filepath.Base(path), line),
		Format:  format,
		Params:  ParamsFromPreset(preset),
		Large:   large,
	}, nil
}

// OpenFile loads path and publishes it. On failure the status reports the
// error and the previous dataset stays, unless loader.clear_on_failure is set.
// An unrecognized extension never touches the dataset.
func (a *App) OpenFile(path string) error {
	if a.State.Busy {
		return ErrBusy
	}
	a.beginLoad()
	start := time.Now()
	l, err := a.LoadFile(path)
	return a.finishLoad(path, l, err, time.Since(start))
}

// OpenFileAsync starts loading path in the background. Poll publishes the result.
func (a *App) OpenFileAsync(path string) error {
	if a.State.Busy {
		return ErrBusy
	}
	a.beginLoad()
	go func() {
		start := time.Now()
		l, err := a.LoadFile(path)
		a.pending <- loadResult{path: path, loaded: l, err: err, took: time.Since(start)}
	}()
	return nil
}

// Poll publishes a finished background load. It reports whether one was handled
// and returns that load's error.
func (a *App) Poll() (bool, error) {
	select {
	case r := <-a.pending:
		return true, a.finishLoad(r.path, r.loaded, r.err, r.took)
	default:
		return false, nil
	}
}

func (a *App) beginLoad() {
	a.State.Busy = true
	a.State.Status = "Loading data ..."
}

func (a *App) finishLoad(path string, l *Loaded, err error, took time.Duration) error {
	a.State.Busy = false
	name := filepath.Base(path)

	if errors.Is(err, ErrUnrecognizedFormat) {
		a.State.Status = fmt.Sprintf("Error loading file %s: Unknown filename extension.", name)
		logger.Warn("unrecognized file format", zap.String("file", name))
		return fmt.Errorf("%s: %w", name, err)
	}
	if err != nil {
		a.State.Status = fmt.Sprintf("ERROR loading file %s!", name)
		logger.Error("load failed", zap.String("file", name), zap.Error(err))
		if a.cfg.Loader.ClearOnFailure {
			a.State.Store.Clear()
			a.syncRenderer()
		}
		return fmt.Errorf("loading %s: %w", name, err)
	}

	a.State.Params = l.Params
	version := a.State.Store.Replace(l.Dataset)
	a.State.TestDataVertices = l.Dataset.VertexCount()
	a.syncRenderer()

	a.State.Status = fmt.Sprintf("File LOADED [%s], Type [%s]", name, l.Format.Name)
	preset := "track_small"
	if l.Large {
		preset = "track_large"
	}
	logger.Info("file loaded",
		zap.String("file", name),
		zap.Int("points", l.Dataset.PointCount),
		zap.Int("vertices", l.Dataset.VertexCount()),
		zap.String("preset", preset),
		zap.Uint64("version", version),
		zap.Duration("took", took))
	return nil
}
