package config

import (
	"encoding/json"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Config holds the application configuration
type Config struct {
	Output Output `json:"output"`
	Fit    Fit    `json:"fit"`
	Mosaic Mosaic `json:"mosaic"`
}

// Output holds configuration for writing results
type Output struct {
	Dir string `json:"dir"`
	// Format overrides the source format when non-empty (jpg|png|webp|bmp|tiff|gif)
	Format   string `json:"format"`
	Quality  int    `json:"quality"`
	Lossless bool   `json:"lossless"`
}

// Fit holds configuration for the ratio fitting step
type Fit struct {
	// Background is the pad fill color as #RRGGBB hex
	Background   string `json:"background"`
	DefaultRatio string `json:"default_ratio"`
}

// Mosaic holds configuration for mosaic building
type Mosaic struct {
	CellHeight int `json:"cell_height"`
}

// Default returns a configuration with default values
func Default() *Config {
	return &Config{
		Output: Output{
			Dir:     "output",
			Quality: 95,
		},
		Fit: Fit{
			Background:   "#000000",
			DefaultRatio: "16:9",
		},
		Mosaic: Mosaic{
			CellHeight: 300,
		},
	}
}

// LoadFromFile loads configuration from a JSON file
func LoadFromFile(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SaveToFile saves configuration to a JSON file
func (c *Config) SaveToFile(filename string) error {
	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Output.Quality < 1 || c.Output.Quality > 100 {
		return fmt.Errorf("output.quality must be between 1 and 100")
	}

	if c.Output.Format != "" {
		switch strings.ToLower(c.Output.Format) {
		case "jpg", "jpeg", "png", "gif", "webp", "bmp", "tif", "tiff":
		default:
			return fmt.Errorf("output.format %q is not a supported image format", c.Output.Format)
		}
	}

	if _, err := c.BackgroundColor(); err != nil {
		return err
	}

	if c.Mosaic.CellHeight < 1 {
		return fmt.Errorf("mosaic.cell_height must be positive")
	}

	return nil
}

// BackgroundColor parses the configured pad fill color
func (c *Config) BackgroundColor() (color.NRGBA, error) {
	s := strings.TrimPrefix(c.Fit.Background, "#")
	if len(s) != 6 {
		return color.NRGBA{}, fmt.Errorf("fit.background %q must be #RRGGBB hex", c.Fit.Background)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("fit.background %q must be #RRGGBB hex", c.Fit.Background)
	}
	return color.NRGBA{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
		A: 255,
	}, nil
}

// GetConfigPath returns the default configuration file path
func GetConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "./config.json"
	}
	return filepath.Join(home, ".config", "img-boxer", "config.json")
}
