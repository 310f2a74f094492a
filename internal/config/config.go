// Package config holds runtime configuration for both assetkit tools:
// defaults, config file loading, CLI flag binding, and validation.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// --- Enum types for validated string fields ---

// Engine selects the imaging backend used by the optimizer.
type Engine string

const (
	EngineNative Engine = "native" // Go decoders + x/image resampling (default).
	EngineMagick Engine = "magick" // ImageMagick CLI.
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// Config holds all runtime settings. It is populated by [DefaultConfig],
// optionally overlaid by [LoadFile], and finally by changed CLI flags.
// Each tool only reads its own section plus the shared display fields.
type Config struct {
	Images   ImageConfig   `toml:"images" yaml:"images"`
	Products ProductConfig `toml:"products" yaml:"products"`

	// Display and logging.
	Verbose   bool      `toml:"verbose" yaml:"verbose"`
	ColorMode ColorMode `toml:"color" yaml:"color"`       // Default: "auto".
	LogFile   string    `toml:"log_file" yaml:"log_file"` // Optional log file path.
	CheckOnly bool      `toml:"-" yaml:"-"`               // Run --check diagnostics and exit.
}

// ImageConfig configures the image optimizer.
type ImageConfig struct {
	Root      string `toml:"root" yaml:"root"`             // Default: "frontend/assets".
	MaxKB     int    `toml:"max_kb" yaml:"max_kb"`         // Default: 120.
	Quality   int    `toml:"quality" yaml:"quality"`       // Default: 80. JPEG/WEBP only.
	MaxWidth  int    `toml:"max_width" yaml:"max_width"`   // Default: 1920.
	MaxHeight int    `toml:"max_height" yaml:"max_height"` // Default: 1920.
	Write     bool   `toml:"write" yaml:"write"`           // Default: false (dry-run).
	Engine    Engine `toml:"engine" yaml:"engine"`         // Default: "native".
}

// ProductConfig configures the product validator.
type ProductConfig struct {
	File      string `toml:"file" yaml:"file"`             // Default: "frontend/data/products.json".
	AssetRoot string `toml:"asset_root" yaml:"asset_root"` // Default: "frontend".
}

// DefaultConfig returns a Config with the storefront's standard layout:
// assets under frontend/assets, products in frontend/data/products.json.
func DefaultConfig() Config {
	return Config{
		Images: ImageConfig{
			Root:      "frontend/assets",
			MaxKB:     120,
			Quality:   80,
			MaxWidth:  1920,
			MaxHeight: 1920,
			Write:     false,
			Engine:    EngineNative,
		},
		Products: ProductConfig{
			File:      "frontend/data/products.json",
			AssetRoot: "frontend",
		},
		Verbose:   false,
		ColorMode: ColorAuto,
	}
}

// TargetBytes is the size threshold at or below which a file is left alone.
func (c *ImageConfig) TargetBytes() int64 {
	return int64(c.MaxKB) * 1024
}

// NormalizeDirArg strips trailing slashes from a directory path.
// The filesystem root "/" is returned unchanged so we don't produce an empty string.
func NormalizeDirArg(path string) string {
	if path == "/" {
		return "/"
	}
	return strings.TrimRight(path, "/")
}

// ValidateImages checks the optimizer section and the shared color mode.
func (c *Config) ValidateImages() error {
	if err := c.validateShared(); err != nil {
		return err
	}
	img := &c.Images
	switch img.Engine {
	case EngineNative, EngineMagick:
		// valid
	default:
		return fmt.Errorf("invalid engine %q (use 'native' or 'magick')", img.Engine)
	}
	if img.Root == "" {
		return errors.New("root directory must not be empty")
	}
	if img.MaxKB < 0 {
		return fmt.Errorf("max-kb must not be negative (got %d)", img.MaxKB)
	}
	if img.Quality < 0 || img.Quality > 100 {
		return fmt.Errorf("quality must be between 0 and 100 (got %d)", img.Quality)
	}
	if img.MaxWidth < 1 || img.MaxHeight < 1 {
		return fmt.Errorf("max-width and max-height must be positive (got %dx%d)", img.MaxWidth, img.MaxHeight)
	}
	img.Root = NormalizeDirArg(img.Root)
	return nil
}

// ValidateProducts checks the validator section and the shared color mode.
func (c *Config) ValidateProducts() error {
	if err := c.validateShared(); err != nil {
		return err
	}
	if c.Products.File == "" {
		return errors.New("product file path must not be empty")
	}
	if c.Products.AssetRoot == "" {
		return errors.New("asset root must not be empty")
	}
	c.Products.AssetRoot = NormalizeDirArg(c.Products.AssetRoot)
	return nil
}

func (c *Config) validateShared() error {
	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		return nil
	default:
		return fmt.Errorf("invalid color mode %q (use 'auto', 'always' or 'never')", c.ColorMode)
	}
}

// ResolvePath makes path absolute against base unless it already is.
// The optimizer and validator both resolve their inputs against the
// working directory this way.
func ResolvePath(base, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(base, path)
}
