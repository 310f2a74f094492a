package imaging

import (
	"context"
	"fmt"
	"strconv"
)

// Magick re-encodes by piping the source through the ImageMagick CLI.
// Arguments are built in Go from the probed header so the resize target and
// format policy match the native engine exactly.
type Magick struct {
	bin string
}

// NewMagick returns a codec that runs bin ("magick" or legacy "convert").
func NewMagick(bin string) *Magick {
	return &Magick{bin: bin}
}

// Name implements Codec.
func (m *Magick) Name() string { return "magick" }

// Encode implements Codec.
func (m *Magick) Encode(ctx context.Context, src []byte, format Format, opts Options) ([]byte, error) {
	switch format {
	case FormatJPEG, FormatPNG, FormatWEBP:
	default:
		return nil, ErrUnsupported
	}
	info, err := Probe(src)
	if err != nil {
		return nil, err
	}
	return runTool(ctx, src, m.bin, BuildMagickArgs(info, format, opts)...)
}

// BuildMagickArgs constructs the argument list (without the binary) that
// reads the source from stdin and writes the re-encoded image to stdout.
//
// Flow:
//  1. Input from stdin, typed by the probed decoder name
//  2. Strip metadata; Lanczos resize to the Go-computed target size
//  3. Format policy (color mode, interlace, compression effort, quality)
//  4. Output to stdout, typed by the target format
func BuildMagickArgs(info Info, format Format, opts Options) []string {
	args := make([]string, 0, 16)

	// --- Input ---
	args = append(args, info.Format+":-", "-strip")

	// --- Resize ---
	if w, h, ok := TargetSize(info.Width, info.Height, opts.MaxWidth, opts.MaxHeight); ok {
		args = append(args, "-filter", "Lanczos", "-resize", fmt.Sprintf("%dx%d!", w, h))
	}

	// --- Format policy ---
	switch format {
	case FormatJPEG:
		args = append(args,
			"-alpha", "off",
			"-interlace", "JPEG",
			"-define", "jpeg:optimize-coding=true",
		)
		if !info.Gray {
			args = append(args, "-colorspace", "sRGB")
		}
	case FormatPNG:
		args = append(args, "-define", "png:compression-level=9")
		if info.Paletted {
			args = append(args, "-define", "png:color-type=6")
		}
	case FormatWEBP:
		if !info.Alpha {
			args = append(args, "-alpha", "off")
		}
		args = append(args, "-define", "webp:method=6")
	}
	if format.Lossy() {
		args = append(args, "-quality", strconv.Itoa(opts.Quality))
	}

	// --- Output ---
	args = append(args, string(format)+":-")
	return args
}
