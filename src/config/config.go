// Package config holds the explicit rendering configuration. Everything the
// charts used to get from ambient defaults (palette, sizes, output location)
// lives here and is passed down explicitly.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/iafilius/ParadoxPlot/src/render"
)

const (
	DefaultOutputDir       = "out"
	DefaultChartWidth      = 640
	DefaultChartHeight     = 480
	DefaultCompositeWidth  = 1280
	DefaultCompositeHeight = 540
)

// Config is the YAML-backed tool configuration.
type Config struct {
	OutputDir       string   `yaml:"output_dir"`
	ChartWidth      int      `yaml:"chart_width"`
	ChartHeight     int      `yaml:"chart_height"`
	CompositeWidth  int      `yaml:"composite_width"`
	CompositeHeight int      `yaml:"composite_height"`
	Palette         []string `yaml:"palette"` // RRGGBB hex, assigned to species alphabetically
	LogLevel        string   `yaml:"log_level"`
}

// Default returns the stock configuration.
func Default() *Config {
	return &Config{
		OutputDir:       DefaultOutputDir,
		ChartWidth:      DefaultChartWidth,
		ChartHeight:     DefaultChartHeight,
		CompositeWidth:  DefaultCompositeWidth,
		CompositeHeight: DefaultCompositeHeight,
		Palette:         []string{"1f77b4", "ff7f0e", "2ca02c", "d62728", "9467bd", "8c564b"},
		LogLevel:        "info",
	}
}

// Load reads a YAML config file over the defaults. An empty path returns the
// defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks dimensions and palette colors.
func (c *Config) Validate() error {
	if c.OutputDir == "" {
		return fmt.Errorf("output_dir must not be empty")
	}
	for name, v := range map[string]int{
		"chart_width": c.ChartWidth, "chart_height": c.ChartHeight,
		"composite_width": c.CompositeWidth, "composite_height": c.CompositeHeight,
	} {
		if v <= 0 {
			return fmt.Errorf("%s must be positive, got %d", name, v)
		}
	}
	// One parser owns the hex rules; validate by parsing.
	if _, err := render.ParsePalette(c.Palette); err != nil {
		return err
	}
	return nil
}
