package config

// This file loads optional config files. The format is chosen by extension;
// unknown keys are rejected so typos surface instead of silently falling
// back to defaults.

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned by [LoadFile] for extensions other than
// .toml, .yaml and .yml.
var ErrUnsupportedFormat = errors.New("unsupported config file format")

type decoder interface {
	Decode(value any) error
}

type decoderFactory func(r io.Reader) decoder

// LoadFile decodes the config file at path on top of cfg. Fields absent
// from the file keep their current values.
func LoadFile(path string, cfg *Config) error {
	var newDecoder decoderFactory
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		newDecoder = newTOMLDecoder
	case ".yaml", ".yml":
		newDecoder = newYAMLDecoder
	default:
		return fmt.Errorf("%w: %q (use .toml, .yaml or .yml)", ErrUnsupportedFormat, filepath.Ext(path))
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("could not open config file: %w", err)
	}
	defer f.Close()

	if err := newDecoder(f).Decode(cfg); err != nil {
		return fmt.Errorf("could not decode config file %s: %w", path, err)
	}
	return nil
}

type tomlDecoder struct {
	*toml.Decoder
}

func newTOMLDecoder(r io.Reader) decoder {
	d := toml.NewDecoder(r)
	d.DisallowUnknownFields()
	return &tomlDecoder{d}
}

func (d *tomlDecoder) Decode(value any) error {
	err := d.Decoder.Decode(value)
	var details *toml.StrictMissingError
	if errors.As(err, &details) {
		return fmt.Errorf("unknown configuration options: %w: %s", err, details.String())
	}
	return err
}

type yamlDecoder struct {
	*yaml.Decoder
}

func newYAMLDecoder(r io.Reader) decoder {
	d := yaml.NewDecoder(r)
	d.KnownFields(true)
	return &yamlDecoder{d}
}

func (d *yamlDecoder) Decode(value any) error {
	err := d.Decoder.Decode(value)
	if errors.Is(err, io.EOF) {
		// Empty file: nothing to overlay.
		return nil
	}
	return err
}
