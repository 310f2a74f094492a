// Package check resolves the imaging capability for the configured engine
// (Capability) and prints helper diagnostics for --check mode (RunCheck).
package check

import (
	"errors"
	"os/exec"
	"strings"

	"github.com/backmassage/assetkit/internal/config"
	"github.com/backmassage/assetkit/internal/imaging"
)

// ErrMagickNotFound is returned by Capability when the magick engine is
// selected but neither "magick" nor "convert" is on PATH.
var ErrMagickNotFound = errors.New("ImageMagick (magick or convert) not found on PATH")

// Logger is the minimal logging interface needed by RunCheck.
// Defined here (rather than importing the logging package) so that check
// remains dependency-light and testable with a mock logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
	Debug(bool, string, ...interface{})
}

// Capability returns the codec for cfg's engine. The native engine is
// always available (its WebP helper is checked per file); the magick engine
// needs its binary. A nil codec with ErrMagickNotFound means "unavailable":
// callers keep going and every file is recorded as skipped.
func Capability(cfg *config.Config, tools imaging.Tools) (imaging.Codec, error) {
	switch cfg.Images.Engine {
	case config.EngineMagick:
		if tools.Magick == "" {
			return nil, ErrMagickNotFound
		}
		return imaging.NewMagick(tools.Magick), nil
	default:
		return imaging.NewNative(tools), nil
	}
}

// RunCheck prints which decoders and helpers are available and whether the
// selected engine can run. Informational only; returns true when the
// selected engine is usable.
func RunCheck(cfg *config.Config, tools imaging.Tools, log Logger) bool {
	log.Info("=== Imaging Check ===")
	log.Success("Go decoders: jpeg, png, webp")
	log.Success("Go encoders: jpeg, png")

	if tools.Cwebp != "" {
		log.Success("cwebp: %s", versionLine(tools.Cwebp, "-version"))
	} else {
		log.Warn("cwebp not found (WebP files cannot be re-encoded by the native engine)")
	}
	if tools.Jpegtran != "" {
		log.Success("jpegtran: %s", tools.Jpegtran)
	} else {
		log.Warn("jpegtran not found (JPEG output will be baseline, not progressive)")
	}
	if tools.Magick != "" {
		log.Success("ImageMagick: %s", versionLine(tools.Magick, "-version"))
	} else {
		log.Warn("ImageMagick not found (--engine magick unavailable)")
	}

	_, err := Capability(cfg, tools)
	if err != nil {
		log.Error("Engine %s unavailable: %v", cfg.Images.Engine, err)
		return false
	}
	log.Success("Engine %s ready", cfg.Images.Engine)
	return true
}

// versionLine runs bin with args and returns the first line of its output,
// or bin itself when the command fails.
func versionLine(bin string, args ...string) string {
	out, err := exec.Command(bin, args...).CombinedOutput()
	if err != nil {
		return bin
	}
	first := strings.TrimSpace(string(out))
	if idx := strings.Index(first, "\n"); idx > 0 {
		first = first[:idx]
	}
	if first == "" {
		return bin
	}
	return first
}
