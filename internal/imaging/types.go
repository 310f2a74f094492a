package imaging

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
)

// ErrUnsupported is returned by a Codec when it declines to produce output
// for a format.
var ErrUnsupported = errors.New("unsupported format")

// Format is an image container the optimizer knows how to re-encode.
type Format string

const (
	FormatJPEG Format = "jpeg"
	FormatPNG  Format = "png"
	FormatWEBP Format = "webp"
)

// extensionFormats maps lowercase extensions (with leading dot) to formats.
var extensionFormats = map[string]Format{
	".jpg":  FormatJPEG,
	".jpeg": FormatJPEG,
	".png":  FormatPNG,
	".webp": FormatWEBP,
}

// FormatFromPath returns the format implied by path's extension
// (case-insensitive), or "" when the extension is not supported.
func FormatFromPath(path string) Format {
	return extensionFormats[strings.ToLower(filepath.Ext(path))]
}

// IsSupportedExt reports whether ext (with leading dot, any case) is one of
// the re-encodable extensions.
func IsSupportedExt(ext string) bool {
	_, ok := extensionFormats[strings.ToLower(ext)]
	return ok
}

// Lossy reports whether the quality setting applies to f.
func (f Format) Lossy() bool {
	return f == FormatJPEG || f == FormatWEBP
}

// Options are the encode parameters shared by every engine.
type Options struct {
	Quality   int // 0-100, lossy formats only.
	MaxWidth  int
	MaxHeight int
}

// Codec re-encodes one image. Implementations return ErrUnsupported (or an
// empty buffer) when no candidate can be produced, and a descriptive error
// for decode/encode failures. They must not write to disk outside their own
// temp files.
type Codec interface {
	Name() string
	Encode(ctx context.Context, src []byte, format Format, opts Options) ([]byte, error)
}
