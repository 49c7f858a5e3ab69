// Package config handles viewer and tool configuration loading and management.
package config

// Config holds all settings.
type Config struct {
	Window    WindowConfig    `yaml:"window"`
	Render    RenderConfig    `yaml:"render"`
	Generator GeneratorConfig `yaml:"generator"`
	Loader    LoaderConfig    `yaml:"loader"`
	Logging   LoggingConfig   `yaml:"logging"`
	Snapshot  SnapshotConfig  `yaml:"snapshot"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Width  int  `yaml:"width"`
	Height int  `yaml:"height"`
	VSync  bool `yaml:"vsync"`
	// MSAASamples is the multisample count requested for the GL context; 0 disables it.
	MSAASamples int `yaml:"msaa_samples"`
}

// RenderPreset is a set of line width parameters tuned for one kind of dataset.
type RenderPreset struct {
	StripWidth        float32 `yaml:"strip_width"`
	PercentageBlack   float32 `yaml:"percentage_black"`
	DepthCueingFactor float32 `yaml:"depth_cueing_factor"`
	HaloMaxDepth      float32 `yaml:"halo_max_depth"`
}

// PresetsConfig holds the presets applied after generate and load actions.
type PresetsConfig struct {
	Synthetic  RenderPreset `yaml:"synthetic"`
	TrackSmall RenderPreset `yaml:"track_small"`
	TrackLarge RenderPreset `yaml:"track_large"`
}

// RenderConfig holds line rendering settings.
type RenderConfig struct {
	// Mode is one of "lines", "triangle_strips" or "halo".
	Mode                  string        `yaml:"mode"`
	Presets               PresetsConfig `yaml:"presets"`
	LargeDatasetThreshold int           `yaml:"large_dataset_threshold"`
	EnableClipping        bool          `yaml:"enable_clipping"`
	// ClipSlider is the initial clip distance control position in [0, 100].
	ClipSlider      int        `yaml:"clip_slider"`
	BackgroundColor [4]float32 `yaml:"background_color"`
	ShowBoundingBox bool       `yaml:"show_bounding_box"`
}

// GeneratorConfig holds synthetic test data settings.
type GeneratorConfig struct {
	// StripVertices is the vertex count after duplication; half as many points are generated.
	StripVertices int `yaml:"strip_vertices"`
	// Seed 0 picks a wall-clock seed.
	Seed                    uint64     `yaml:"seed"`
	StepSize                float32    `yaml:"step_size"`
	Curviness               float32    `yaml:"curviness"`
	TargetChangeProbability float32    `yaml:"target_change_probability"`
	MinDistanceToTarget     float32    `yaml:"min_distance_to_target"`
	BoxMin                  [3]float32 `yaml:"box_min"`
	BoxMax                  [3]float32 `yaml:"box_max"`
}

// LoaderConfig holds track file loading settings.
type LoaderConfig struct {
	// ClearOnFailure empties the dataset when a load fails instead of keeping the previous one.
	ClearOnFailure bool `yaml:"clear_on_failure"`
	// LegacySentinel also writes the strip break marker into track end z coordinates.
	LegacySentinel bool    `yaml:"legacy_sentinel"`
	Sentinel       float32 `yaml:"sentinel"`
	// InitialFile is loaded at startup when set.
	InitialFile string `yaml:"initial_file"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// SnapshotConfig holds offscreen render settings for trktool render and the viewer's save image action.
type SnapshotConfig struct {
	Dir    string `yaml:"dir"`
	Format string `yaml:"format"` // "png" or "bmp"
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// Default returns a Config with the stock values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Width:       1280,
			Height:      800,
			VSync:       true,
			MSAASamples: 4,
		},
		Render: RenderConfig{
			Mode: "triangle_strips",
			Presets: PresetsConfig{
				Synthetic:  RenderPreset{StripWidth: 0.03, PercentageBlack: 0.3, DepthCueingFactor: 1.0, HaloMaxDepth: 0.02},
				TrackSmall: RenderPreset{StripWidth: 0.01, PercentageBlack: 0.4, DepthCueingFactor: 1.0, HaloMaxDepth: 0.05},
				TrackLarge: RenderPreset{StripWidth: 0.001, PercentageBlack: 0.4, DepthCueingFactor: 1.0, HaloMaxDepth: 0.1},
			},
			LargeDatasetThreshold: 200000,
			ClipSlider:            50,
			BackgroundColor:       [4]float32{1, 1, 1, 1},
			ShowBoundingBox:       true,
		},
		Generator: GeneratorConfig{
			StripVertices:           20000,
			StepSize:                0.01,
			Curviness:               0.8,
			TargetChangeProbability: 0.07,
			MinDistanceToTarget:     0.06,
			BoxMin:                  [3]float32{-1, -1, -1},
			BoxMax:                  [3]float32{1, 1, 1},
		},
		Loader: LoaderConfig{
			Sentinel: 1000,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Snapshot: SnapshotConfig{
			Dir:    "snapshots",
			Format: "png",
			Width:  1024,
			Height: 1024,
		},
	}
}
