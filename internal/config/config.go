// Package config holds avlgen configuration: geometry compilation
// parameters, sweep defaults, and solver location. Configuration is an
// explicit value passed into the pipeline; there is no module-level
// mutable state.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all avlgen configuration.
type Config struct {
	// Geometry compilation parameters
	Geometry GeometryConfig `yaml:"geometry"`

	// Flight-envelope sweep defaults
	Sweep SweepConfig `yaml:"sweep"`

	// External AVL solver
	Solver SolverConfig `yaml:"solver"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// GeometryConfig configures the point-cloud to AVL model compilation.
type GeometryConfig struct {
	Name          string  `yaml:"name"`
	Surface       string  `yaml:"surface"`
	Mach          float64 `yaml:"mach"`
	HalfModel     bool    `yaml:"half_model"`
	Nchordwise    int     `yaml:"nchordwise"`
	ChordSpacing  float64 `yaml:"chord_spacing"`
	SpanSpacing   float64 `yaml:"span_spacing"`
	Airfoil       string  `yaml:"airfoil"`
	MinSpanPanels int     `yaml:"min_span_panels"`
	PanelsPerUnit float64 `yaml:"panels_per_unit"`

	// Scale multiplies raw export coordinates before compilation.
	// nTop exports inches; the AVL models here run in feet (1/12).
	Scale float64 `yaml:"scale"`
}

// SweepConfig configures the default flight-envelope sweep.
type SweepConfig struct {
	AlphaMin  float64 `yaml:"alpha_min"`
	AlphaMax  float64 `yaml:"alpha_max"`
	AlphaStep float64 `yaml:"alpha_step"`
	Mach      float64 `yaml:"mach"`
}

// SolverConfig configures the external AVL executable.
type SolverConfig struct {
	Executable  string   `yaml:"executable"`
	SearchPaths []string `yaml:"search_paths"`
	Timeout     string   `yaml:"timeout"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, console
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Geometry: GeometryConfig{
			Name:          "nTop Geometry",
			Surface:       "WING",
			Mach:          0.0,
			Nchordwise:    8,
			ChordSpacing:  1.0,
			SpanSpacing:   1.0,
			Airfoil:       "NACA 2412",
			MinSpanPanels: 3,
			PanelsPerUnit: 2.0,
			Scale:         1.0 / 12.0,
		},

		Sweep: SweepConfig{
			AlphaMin:  -5.0,
			AlphaMax:  15.0,
			AlphaStep: 1.0,
			Mach:      0.0,
		},

		Solver: SolverConfig{
			SearchPaths: []string{
				"binw32/avl3.51-32.exe",
				"bin/avl.exe",
				"avl.exe",
				"avl",
			},
			Timeout: "120s",
		},

		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load loads configuration from a YAML file, returning defaults when the
// file does not exist. Environment variables override file values.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// applyEnvOverrides applies AVLGEN_* environment variables on top of the
// loaded values.
func (c *Config) applyEnvOverrides() {
	if exe := os.Getenv("AVLGEN_AVL_EXE"); exe != "" {
		c.Solver.Executable = exe
	}
	if level := os.Getenv("AVLGEN_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
	if timeout := os.Getenv("AVLGEN_SOLVER_TIMEOUT"); timeout != "" {
		c.Solver.Timeout = timeout
	}
}

// Validate checks the configuration for values the pipeline cannot use.
func (c *Config) Validate() error {
	if c.Geometry.Scale <= 0 {
		return fmt.Errorf("geometry.scale must be positive, have %g", c.Geometry.Scale)
	}
	if c.Geometry.Nchordwise <= 0 {
		return fmt.Errorf("geometry.nchordwise must be positive, have %d", c.Geometry.Nchordwise)
	}
	if c.Geometry.Mach < 0 || c.Geometry.Mach >= 1.0 {
		return fmt.Errorf("geometry.mach must be in [0, 1), have %g", c.Geometry.Mach)
	}
	if c.Sweep.AlphaStep <= 0 {
		return fmt.Errorf("sweep.alpha_step must be positive, have %g", c.Sweep.AlphaStep)
	}
	if c.Sweep.AlphaMax < c.Sweep.AlphaMin {
		return fmt.Errorf("sweep.alpha_max %g is below sweep.alpha_min %g", c.Sweep.AlphaMax, c.Sweep.AlphaMin)
	}
	if _, err := c.SolverTimeout(); err != nil {
		return fmt.Errorf("solver.timeout: %w", err)
	}
	return nil
}

// SolverTimeout parses the solver timeout duration.
func (c *Config) SolverTimeout() (time.Duration, error) {
	if c.Solver.Timeout == "" {
		return 2 * time.Minute, nil
	}
	return time.ParseDuration(c.Solver.Timeout)
}
