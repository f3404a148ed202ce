// Package config holds the editor and rendering defaults.
//
// Values come from, in increasing priority: built-in defaults, a TOML file,
// GOFRAME_* environment variables (optionally loaded from a .env file), and
// finally command-line flags applied by the caller.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// Config is the complete set of tunables
type Config struct {
	View        ViewConfig        `toml:"view"`
	Snap        SnapConfig        `toml:"snap"`
	Diagram     DiagramConfig     `toml:"diagram"`
	Deformation DeformationConfig `toml:"deformation"`
	Render      RenderConfig      `toml:"render"`
	Solver      SolverConfig      `toml:"solver"`
}

// ViewConfig bounds the zoom level (pixels per meter)
type ViewConfig struct {
	MinScale float64 `toml:"min_scale"`
	MaxScale float64 `toml:"max_scale"`
	ZoomStep float64 `toml:"zoom_step"` // multiplier per wheel notch
}

// SnapConfig sets hit radii in pixels and the drawing grid in meters
type SnapConfig struct {
	NodePixels    float64 `toml:"node_pixels"`
	ElementPixels float64 `toml:"element_pixels"`
	Grid          float64 `toml:"grid"`
}

// DiagramConfig controls force diagram size and side
type DiagramConfig struct {
	TargetPixels float64 `toml:"target_pixels"`
	Flip         bool    `toml:"flip"`
}

// DeformationConfig controls the deformed shape magnification
type DeformationConfig struct {
	Scale float64 `toml:"scale"`
}

// RenderConfig is the exported image size
type RenderConfig struct {
	WidthPixels  float64 `toml:"width_pixels"`
	HeightPixels float64 `toml:"height_pixels"`
	DPI          float64 `toml:"dpi"`
	Padding      float64 `toml:"padding"`
}

// SolverConfig locates the external solver
type SolverConfig struct {
	URL            string `toml:"url"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Default returns the built-in defaults.
func Default() Config {
	return Config{
		View:        ViewConfig{MinScale: 5, MaxScale: 2000, ZoomStep: 1.1},
		Snap:        SnapConfig{NodePixels: 10, ElementPixels: 6, Grid: 0.5},
		Diagram:     DiagramConfig{TargetPixels: 50},
		Deformation: DeformationConfig{Scale: 1},
		Render:      RenderConfig{WidthPixels: 800, HeightPixels: 800, DPI: 96, Padding: 60},
		Solver:      SolverConfig{URL: "ws://localhost:8090/solver", TimeoutSeconds: 60},
	}
}

// Load returns the defaults overlaid with the TOML file at path, when path is
// not empty, and then with the environment.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, err
		}
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// LoadEnv loads variables from the given .env files into the process
// environment. Missing files are ignored; existing variables are kept.
func LoadEnv(files ...string) error {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// ApplyEnv overrides fields from GOFRAME_* variables looked up with lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	floats := map[string]*float64{
		"GOFRAME_VIEW_MIN_SCALE":        &c.View.MinScale,
		"GOFRAME_VIEW_MAX_SCALE":        &c.View.MaxScale,
		"GOFRAME_SNAP_NODE_PIXELS":      &c.Snap.NodePixels,
		"GOFRAME_SNAP_ELEMENT_PIXELS":   &c.Snap.ElementPixels,
		"GOFRAME_SNAP_GRID":             &c.Snap.Grid,
		"GOFRAME_DIAGRAM_TARGET_PIXELS": &c.Diagram.TargetPixels,
		"GOFRAME_DEFORMATION_SCALE":     &c.Deformation.Scale,
	}
	for name, dst := range floats {
		v, ok := lookup(name)
		if !ok || v == "" {
			continue
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		*dst = f
	}

	if v, ok := lookup("GOFRAME_SOLVER_URL"); ok && v != "" {
		c.Solver.URL = v
	}
	if v, ok := lookup("GOFRAME_SOLVER_TIMEOUT_SECONDS"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("GOFRAME_SOLVER_TIMEOUT_SECONDS: %w", err)
		}
		c.Solver.TimeoutSeconds = n
	}
	return nil
}

// Validate rejects settings the engines cannot work with.
func (c Config) Validate() error {
	if c.View.MinScale <= 0 || c.View.MaxScale < c.View.MinScale {
		return fmt.Errorf("invalid zoom range [%g, %g]", c.View.MinScale, c.View.MaxScale)
	}
	if c.Diagram.TargetPixels < 0 {
		return fmt.Errorf("diagram target pixels must not be negative")
	}
	if c.Render.WidthPixels <= 0 || c.Render.HeightPixels <= 0 || c.Render.DPI <= 0 {
		return fmt.Errorf("render size and dpi must be positive")
	}
	return nil
}
