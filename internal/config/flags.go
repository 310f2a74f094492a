package config

// This file binds CLI flags for both tools. Flags are parsed into a shadow
// Config and only copied onto the effective Config when the user actually
// set them, so precedence is: flags > config file > defaults.

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

// Flags holds parsed flag values until [Flags.Resolve] merges them.
type Flags struct {
	values     Config
	configPath string
	forceColor bool
	noColor    bool

	// apply maps a flag name to the assignment it performs on a Config.
	apply map[string]func(dst *Config)
}

// BindImageFlags registers the optimizer flags on fs.
func BindImageFlags(fs *pflag.FlagSet) *Flags {
	f := newFlags()
	v := &f.values.Images

	fs.StringVar(&v.Root, "root", v.Root, "Assets directory")
	fs.IntVar(&v.MaxKB, "max-kb", v.MaxKB, "Target max size in KB")
	fs.IntVar(&v.Quality, "quality", v.Quality, "JPEG/WEBP quality (0-100)")
	fs.IntVar(&v.MaxWidth, "max-width", v.MaxWidth, "Max output width")
	fs.IntVar(&v.MaxHeight, "max-height", v.MaxHeight, "Max output height")
	fs.BoolVar(&v.Write, "write", v.Write, "Apply changes in-place")
	fs.Var(&engineValue{&v.Engine}, "engine", "Imaging engine: native | magick")
	fs.BoolVar(&f.values.CheckOnly, "check", false, "Print imaging diagnostics and exit")

	f.on("root", func(c *Config) { c.Images.Root = v.Root })
	f.on("max-kb", func(c *Config) { c.Images.MaxKB = v.MaxKB })
	f.on("quality", func(c *Config) { c.Images.Quality = v.Quality })
	f.on("max-width", func(c *Config) { c.Images.MaxWidth = v.MaxWidth })
	f.on("max-height", func(c *Config) { c.Images.MaxHeight = v.MaxHeight })
	f.on("write", func(c *Config) { c.Images.Write = v.Write })
	f.on("engine", func(c *Config) { c.Images.Engine = v.Engine })
	f.on("check", func(c *Config) { c.CheckOnly = f.values.CheckOnly })

	f.bindShared(fs)
	return f
}

// BindProductFlags registers the validator flags on fs.
func BindProductFlags(fs *pflag.FlagSet) *Flags {
	f := newFlags()
	v := &f.values.Products

	fs.StringVar(&v.File, "file", v.File, "Path to products JSON file")
	fs.StringVar(&v.AssetRoot, "asset-root", v.AssetRoot, "Directory local image references resolve against")

	f.on("file", func(c *Config) { c.Products.File = v.File })
	f.on("asset-root", func(c *Config) { c.Products.AssetRoot = v.AssetRoot })

	f.bindShared(fs)
	return f
}

func newFlags() *Flags {
	return &Flags{
		values: DefaultConfig(),
		apply:  make(map[string]func(dst *Config)),
	}
}

func (f *Flags) on(name string, fn func(dst *Config)) {
	f.apply[name] = fn
}

// bindShared registers --config, --log, --verbose, --color and --no-color.
func (f *Flags) bindShared(fs *pflag.FlagSet) {
	fs.StringVarP(&f.configPath, "config", "c", "", "Path to a TOML or YAML config file")
	fs.StringVarP(&f.values.LogFile, "log", "l", "", "Append logs to file")
	fs.BoolVarP(&f.values.Verbose, "verbose", "v", false, "Verbose output")
	fs.BoolVar(&f.forceColor, "color", false, "Force colored logs")
	fs.BoolVar(&f.noColor, "no-color", false, "Disable colored logs")

	f.on("log", func(c *Config) { c.LogFile = f.values.LogFile })
	f.on("verbose", func(c *Config) { c.Verbose = f.values.Verbose })
}

// Resolve builds the effective Config: defaults, then the config file named
// by --config (if any), then every flag the user set explicitly.
func (f *Flags) Resolve(fs *pflag.FlagSet) (Config, error) {
	cfg := DefaultConfig()
	if f.configPath != "" {
		if err := LoadFile(f.configPath, &cfg); err != nil {
			return cfg, err
		}
	}

	fs.Visit(func(fl *pflag.Flag) {
		if fn, ok := f.apply[fl.Name]; ok {
			fn(&cfg)
		}
	})

	if f.noColor {
		cfg.ColorMode = ColorNever
	} else if f.forceColor {
		cfg.ColorMode = ColorAlways
	}
	return cfg, nil
}

// pflag.Value adapter so the Engine enum can be used with fs.Var.

type engineValue struct{ p *Engine }

func (e *engineValue) String() string { return string(*e.p) }
func (e *engineValue) Type() string   { return "engine" }
func (e *engineValue) Set(s string) error {
	switch strings.ToLower(s) {
	case "native":
		*e.p = EngineNative
	case "magick", "imagemagick":
		*e.p = EngineMagick
	default:
		return fmt.Errorf("invalid engine %q (use 'native' or 'magick')", s)
	}
	return nil
}
