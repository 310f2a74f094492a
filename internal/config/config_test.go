package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDirArg(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no trailing slash", "frontend/assets", "frontend/assets"},
		{"single trailing slash", "frontend/assets/", "frontend/assets"},
		{"multiple trailing slashes", "frontend/assets///", "frontend/assets"},
		{"root path", "/", "/"},
		{"empty string", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeDirArg(tt.in))
		})
	}
}

func TestDefaultConfig_SaneDefaults(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "frontend/assets", cfg.Images.Root)
	assert.Equal(t, 120, cfg.Images.MaxKB)
	assert.Equal(t, 80, cfg.Images.Quality)
	assert.Equal(t, 1920, cfg.Images.MaxWidth)
	assert.Equal(t, 1920, cfg.Images.MaxHeight)
	assert.False(t, cfg.Images.Write, "default mode should be dry-run")
	assert.Equal(t, EngineNative, cfg.Images.Engine)
	assert.Equal(t, "frontend/data/products.json", cfg.Products.File)
	assert.Equal(t, "frontend", cfg.Products.AssetRoot)
	assert.Equal(t, ColorAuto, cfg.ColorMode)
	assert.Equal(t, int64(120*1024), cfg.Images.TargetBytes())
}

func TestValidateImages(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"defaults are valid", func(c *Config) {}, false},
		{"magick engine is valid", func(c *Config) { c.Images.Engine = EngineMagick }, false},
		{"unknown engine", func(c *Config) { c.Images.Engine = "pillow" }, true},
		{"empty root", func(c *Config) { c.Images.Root = "" }, true},
		{"negative max-kb", func(c *Config) { c.Images.MaxKB = -1 }, true},
		{"zero max-kb is allowed", func(c *Config) { c.Images.MaxKB = 0 }, false},
		{"quality above 100", func(c *Config) { c.Images.Quality = 101 }, true},
		{"quality below 0", func(c *Config) { c.Images.Quality = -5 }, true},
		{"zero width", func(c *Config) { c.Images.MaxWidth = 0 }, true},
		{"bad color mode", func(c *Config) { c.ColorMode = "rainbow" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.ValidateImages()
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestValidateProducts(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.ValidateProducts())

	cfg.Products.File = ""
	require.Error(t, cfg.ValidateProducts())

	cfg = DefaultConfig()
	cfg.Products.AssetRoot = "public/"
	require.NoError(t, cfg.ValidateProducts())
	assert.Equal(t, "public", cfg.Products.AssetRoot)
}

func TestResolvePath(t *testing.T) {
	assert.Equal(t, filepath.Join("/repo", "frontend/assets"), ResolvePath("/repo", "frontend/assets"))
	assert.Equal(t, "/abs/assets", ResolvePath("/repo", "/abs/assets/"))
}

func TestLoadFile_TOML(t *testing.T) {
	path := writeFile(t, "assetkit.toml", `
verbose = true
color = "never"

[images]
root = "public/img"
max_kb = 200
engine = "magick"

[products]
asset_root = "public"
`)
	cfg := DefaultConfig()
	require.NoError(t, LoadFile(path, &cfg))

	assert.True(t, cfg.Verbose)
	assert.Equal(t, ColorNever, cfg.ColorMode)
	assert.Equal(t, "public/img", cfg.Images.Root)
	assert.Equal(t, 200, cfg.Images.MaxKB)
	assert.Equal(t, EngineMagick, cfg.Images.Engine)
	assert.Equal(t, 80, cfg.Images.Quality, "keys absent from the file keep defaults")
	assert.Equal(t, "public", cfg.Products.AssetRoot)
	assert.Equal(t, "frontend/data/products.json", cfg.Products.File)
}

func TestLoadFile_YAML(t *testing.T) {
	path := writeFile(t, "assetkit.yaml", `
images:
  quality: 70
  max_width: 1200
products:
  file: data/catalog.json
`)
	cfg := DefaultConfig()
	require.NoError(t, LoadFile(path, &cfg))

	assert.Equal(t, 70, cfg.Images.Quality)
	assert.Equal(t, 1200, cfg.Images.MaxWidth)
	assert.Equal(t, 1920, cfg.Images.MaxHeight)
	assert.Equal(t, "data/catalog.json", cfg.Products.File)
}

func TestLoadFile_EmptyYAML(t *testing.T) {
	path := writeFile(t, "empty.yml", "")
	cfg := DefaultConfig()
	require.NoError(t, LoadFile(path, &cfg))
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadFile_RejectsUnknownKeys(t *testing.T) {
	cfg := DefaultConfig()

	tomlPath := writeFile(t, "bad.toml", "[images]\nmaxkb = 10\n")
	require.Error(t, LoadFile(tomlPath, &cfg))

	yamlPath := writeFile(t, "bad.yaml", "images:\n  maxkb: 10\n")
	require.Error(t, LoadFile(yamlPath, &cfg))
}

func TestLoadFile_UnsupportedExtension(t *testing.T) {
	path := writeFile(t, "assetkit.ini", "root=x")
	cfg := DefaultConfig()
	err := LoadFile(path, &cfg)
	require.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestLoadFile_Missing(t *testing.T) {
	cfg := DefaultConfig()
	require.Error(t, LoadFile(filepath.Join(t.TempDir(), "nope.toml"), &cfg))
}

func TestFlags_ImagePrecedence(t *testing.T) {
	path := writeFile(t, "assetkit.toml", "[images]\nmax_kb = 200\nquality = 60\n")

	fs := pflag.NewFlagSet("optimize-images", pflag.ContinueOnError)
	flags := BindImageFlags(fs)
	require.NoError(t, fs.Parse([]string{"--config", path, "--max-kb", "90", "--write", "--engine", "MAGICK", "--no-color"}))

	cfg, err := flags.Resolve(fs)
	require.NoError(t, err)

	assert.Equal(t, 90, cfg.Images.MaxKB, "flag beats file")
	assert.Equal(t, 60, cfg.Images.Quality, "file beats default")
	assert.Equal(t, 1920, cfg.Images.MaxWidth, "default when neither is set")
	assert.True(t, cfg.Images.Write)
	assert.Equal(t, EngineMagick, cfg.Images.Engine)
	assert.Equal(t, ColorNever, cfg.ColorMode)
}

func TestFlags_UnsetFlagsDoNotOverrideFile(t *testing.T) {
	path := writeFile(t, "assetkit.yaml", "images:\n  write: true\n  root: public\n")

	fs := pflag.NewFlagSet("optimize-images", pflag.ContinueOnError)
	flags := BindImageFlags(fs)
	require.NoError(t, fs.Parse([]string{"-c", path}))

	cfg, err := flags.Resolve(fs)
	require.NoError(t, err)
	assert.True(t, cfg.Images.Write)
	assert.Equal(t, "public", cfg.Images.Root)
}

func TestFlags_InvalidEngine(t *testing.T) {
	fs := pflag.NewFlagSet("optimize-images", pflag.ContinueOnError)
	BindImageFlags(fs)
	require.Error(t, fs.Parse([]string{"--engine", "pillow"}))
}

func TestFlags_Products(t *testing.T) {
	fs := pflag.NewFlagSet("validate-products", pflag.ContinueOnError)
	flags := BindProductFlags(fs)
	require.NoError(t, fs.Parse([]string{"--file", "catalog.json", "--color", "-v"}))

	cfg, err := flags.Resolve(fs)
	require.NoError(t, err)
	assert.Equal(t, "catalog.json", cfg.Products.File)
	assert.Equal(t, "frontend", cfg.Products.AssetRoot)
	assert.Equal(t, ColorAlways, cfg.ColorMode)
	assert.True(t, cfg.Verbose)
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}
