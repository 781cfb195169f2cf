package config

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/banshee-data/consequential-regions/internal/regions"
	"gopkg.in/yaml.v3"
)

// DefaultConfigPath is the path to the canonical simulation defaults file.
const DefaultConfigPath = "config/shepard.defaults.json"

// Built-in defaults. These reproduce the published figure when no config
// file is given.
const (
	DefaultSamples     = 50000
	DefaultRange       = 7.5
	DefaultSeed        = 2014
	DefaultGridPoints  = 1000
	DefaultWidthShape  = 2.0
	DefaultWidthRate   = 0.5
	DefaultHeightShape = 2.0
	DefaultHeightRate  = 0.5
	DefaultOutputPath  = "figures/consequential_regions.png"
	DefaultDPI         = 96
)

// SimConfig holds the simulation and figure parameters. Fields omitted from
// a config file stay nil and the Get* accessors fall back to the built-in
// defaults, so partial configs are safe.
type SimConfig struct {
	Samples    *int     `json:"samples,omitempty" yaml:"samples,omitempty"`
	Range      *float64 `json:"range,omitempty" yaml:"range,omitempty"`
	Seed       *uint64  `json:"seed,omitempty" yaml:"seed,omitempty"`
	GridPoints *int     `json:"grid_points,omitempty" yaml:"grid_points,omitempty"`

	// Gamma priors on region extent, shape/rate form.
	WidthShape  *float64 `json:"width_shape,omitempty" yaml:"width_shape,omitempty"`
	WidthRate   *float64 `json:"width_rate,omitempty" yaml:"width_rate,omitempty"`
	HeightShape *float64 `json:"height_shape,omitempty" yaml:"height_shape,omitempty"`
	HeightRate  *float64 `json:"height_rate,omitempty" yaml:"height_rate,omitempty"`

	// Output
	OutputPath *string `json:"output_path,omitempty" yaml:"output_path,omitempty"`
	DPI        *int    `json:"dpi,omitempty" yaml:"dpi,omitempty"`
}

// EmptySimConfig returns a SimConfig with all fields nil.
func EmptySimConfig() *SimConfig {
	return &SimConfig{}
}

// LoadSimConfig loads a SimConfig from a JSON or YAML file, chosen by
// extension (.json, .yaml or .yml). The file must be under 1MB.
func LoadSimConfig(path string) (*SimConfig, error) {
	cleanPath := filepath.Clean(path)
	ext := filepath.Ext(cleanPath)
	var unmarshal func([]byte, any) error
	switch ext {
	case ".json":
		unmarshal = json.Unmarshal
	case ".yaml", ".yml":
		unmarshal = yaml.Unmarshal
	default:
		return nil, fmt.Errorf("config file must have .json, .yaml or .yml extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptySimConfig()
	if err := unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", ext[1:], err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// MustLoadDefaultConfig loads DefaultConfigPath, searching the current
// directory and its parents up to the repository root.
// Panics if the file cannot be loaded, intended for test setup.
func MustLoadDefaultConfig() *SimConfig {
	candidates := []string{
		DefaultConfigPath,
		"../" + DefaultConfigPath,       // from cmd/shepard/
		"../../" + DefaultConfigPath,    // from internal/config/
		"../../../" + DefaultConfigPath, // deeper packages
	}
	for _, path := range candidates {
		if cfg, err := LoadSimConfig(path); err == nil {
			return cfg
		}
	}
	panic("cannot find " + DefaultConfigPath + " - run tests from repository root")
}

// Validate checks that any set values are usable.
func (c *SimConfig) Validate() error {
	if c.Samples != nil && *c.Samples < 0 {
		return fmt.Errorf("samples must be non-negative, got %d", *c.Samples)
	}
	if c.GridPoints != nil && *c.GridPoints < 2 {
		return fmt.Errorf("grid_points must be at least 2, got %d", *c.GridPoints)
	}
	if c.DPI != nil && *c.DPI <= 0 {
		return fmt.Errorf("dpi must be positive, got %d", *c.DPI)
	}
	if c.OutputPath != nil && *c.OutputPath == "" {
		return fmt.Errorf("output_path must not be empty")
	}

	positive := []struct {
		name string
		v    *float64
	}{
		{"range", c.Range},
		{"width_shape", c.WidthShape},
		{"width_rate", c.WidthRate},
		{"height_shape", c.HeightShape},
		{"height_rate", c.HeightRate},
	}
	for _, p := range positive {
		if p.v == nil {
			continue
		}
		if v := *p.v; math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
			return fmt.Errorf("%s must be a positive finite number, got %v", p.name, v)
		}
	}
	return nil
}

// GetSamples returns the samples value or the default.
func (c *SimConfig) GetSamples() int {
	if c.Samples == nil {
		return DefaultSamples
	}
	return *c.Samples
}

// GetRange returns the range value or the default.
func (c *SimConfig) GetRange() float64 {
	if c.Range == nil {
		return DefaultRange
	}
	return *c.Range
}

// GetSeed returns the seed value or the default.
func (c *SimConfig) GetSeed() uint64 {
	if c.Seed == nil {
		return DefaultSeed
	}
	return *c.Seed
}

// GetGridPoints returns the grid_points value or the default.
func (c *SimConfig) GetGridPoints() int {
	if c.GridPoints == nil {
		return DefaultGridPoints
	}
	return *c.GridPoints
}

// GetOutputPath returns the output_path value or the default.
func (c *SimConfig) GetOutputPath() string {
	if c.OutputPath == nil {
		return DefaultOutputPath
	}
	return *c.OutputPath
}

// GetDPI returns the dpi value or the default.
func (c *SimConfig) GetDPI() int {
	if c.DPI == nil {
		return DefaultDPI
	}
	return *c.DPI
}

// Prior assembles the region prior from the range and gamma parameters.
func (c *SimConfig) Prior() regions.Prior {
	return regions.Prior{
		Range:       c.GetRange(),
		WidthShape:  orDefault(c.WidthShape, DefaultWidthShape),
		WidthRate:   orDefault(c.WidthRate, DefaultWidthRate),
		HeightShape: orDefault(c.HeightShape, DefaultHeightShape),
		HeightRate:  orDefault(c.HeightRate, DefaultHeightRate),
	}
}

func orDefault(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}
