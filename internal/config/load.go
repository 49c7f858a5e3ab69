package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"

	"github.com/mangostaniko/Visualization2-17s/internal/lines"
)

// ErrInvalid is returned when a loaded config holds values the viewer cannot use.
var ErrInvalid = errors.New("invalid config")

// Load loads configuration with priority: defaults < file < flags.
func Load() (*Config, error) {
	cfg := Default()

	configPath := ConfigPath()
	if configPath == "" {
		configPath = findConfigFile()
	}

	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
		}
	}

	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile loads defaults overlaid with path, ignoring command-line flags.
// An empty path falls back to the standard locations.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		path = findConfigFile()
	}
	if path != "" {
		if err := loadFromFile(cfg, path); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", path, err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks ranges and enumerations.
func (c *Config) Validate() error {
	switch c.Render.Mode {
	case "lines", "triangle_strips", "halo":
	default:
		return fmt.Errorf("%w: render.mode %q", ErrInvalid, c.Render.Mode)
	}
	if c.Render.ClipSlider < 0 || c.Render.ClipSlider > 100 {
		return fmt.Errorf("%w: render.clip_slider %d outside [0, 100]", ErrInvalid, c.Render.ClipSlider)
	}
	if c.Render.LargeDatasetThreshold < 0 {
		return fmt.Errorf("%w: render.large_dataset_threshold %d", ErrInvalid, c.Render.LargeDatasetThreshold)
	}
	if c.Generator.StripVertices < 0 {
		return fmt.Errorf("%w: generator.strip_vertices %d", ErrInvalid, c.Generator.StripVertices)
	}
	if c.Generator.StepSize <= 0 {
		return fmt.Errorf("%w: generator.step_size must be positive", ErrInvalid)
	}
	if !lines.UsableSentinel(c.Loader.Sentinel) {
		return fmt.Errorf("%w: loader.sentinel %v must be finite and outside [-1, 1]", ErrInvalid, c.Loader.Sentinel)
	}
	switch c.Snapshot.Format {
	case "png", "bmp":
	default:
		return fmt.Errorf("%w: snapshot.format %q", ErrInvalid, c.Snapshot.Format)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	}
	return nil
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		"./config.yaml",
		filepath.Join(ConfigDir(), "config.yaml"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "Tractview")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "Tractview")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "tractview")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "tractview")
	}
}

// loadFromFile merges a YAML file over cfg.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}
