package config

import "flag"

var (
	flagConfig         = flag.String("config", "", "Path to config file")
	flagDebug          = flag.Bool("debug", false, "Enable debug logging")
	flagTRK            = flag.String("trk", "", "TrackVis file to load at startup")
	flagGenerate       = flag.Int("generate", 0, "Strip vertex count for startup test data")
	flagSeed           = flag.Uint64("seed", 0, "Test data seed (0 = wall clock)")
	flagWidth          = flag.Int("width", 0, "Window width")
	flagHeight         = flag.Int("height", 0, "Window height")
	flagClearOnFailure = flag.Bool("clear-on-failure", false, "Empty the dataset when a load fails")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagTRK != "" {
		cfg.Loader.InitialFile = *flagTRK
	}
	if *flagGenerate > 0 {
		cfg.Generator.StripVertices = *flagGenerate
	}
	if *flagSeed != 0 {
		cfg.Generator.Seed = *flagSeed
	}
	if *flagWidth > 0 {
		cfg.Window.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Window.Height = *flagHeight
	}
	if *flagClearOnFailure {
		cfg.Loader.ClearOnFailure = true
	}
}
