package imaging

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"strconv"

	"golang.org/x/image/draw"
)

// ErrCwebpNotFound is returned when a WebP file needs re-encoding but the
// cwebp helper is not installed. Go ships a WebP decoder but no encoder.
var ErrCwebpNotFound = errors.New("cwebp not found on PATH")

// Native re-encodes with the Go image decoders and x/image resampling.
// JPEG and PNG are fully in-process; jpegtran (optional) makes JPEG output
// progressive, and cwebp (required for WebP) does the WebP encode.
type Native struct {
	tools Tools
}

// NewNative returns a native codec using the given helper paths.
func NewNative(tools Tools) *Native {
	return &Native{tools: tools}
}

// Name implements Codec.
func (n *Native) Name() string { return "native" }

// Encode implements Codec.
func (n *Native) Encode(ctx context.Context, src []byte, format Format, opts Options) ([]byte, error) {
	switch format {
	case FormatJPEG, FormatPNG, FormatWEBP:
	default:
		return nil, ErrUnsupported
	}
	if format == FormatWEBP && n.tools.Cwebp == "" {
		return nil, ErrCwebpNotFound
	}

	img, _, err := image.Decode(bytes.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	// Transparency is judged on the source, before any conversion.
	alpha := HasAlpha(img.ColorModel())
	img = Resize(img, opts.MaxWidth, opts.MaxHeight)

	switch format {
	case FormatJPEG:
		return n.encodeJPEG(ctx, img, opts.Quality)
	case FormatPNG:
		return encodePNG(img)
	default:
		return n.encodeWebP(ctx, img, alpha, opts.Quality)
	}
}

// Resize downscales img to fit maxW×maxH using the Catmull-Rom kernel.
// Grayscale sources stay grayscale; everything else becomes NRGBA so alpha
// survives. Images that already fit are returned unchanged.
func Resize(img image.Image, maxW, maxH int) image.Image {
	b := img.Bounds()
	w, h, ok := TargetSize(b.Dx(), b.Dy(), maxW, maxH)
	if !ok {
		return img
	}
	var dst draw.Image
	if isGray(img) {
		dst = image.NewGray(image.Rect(0, 0, w, h))
	} else {
		dst = image.NewNRGBA(image.Rect(0, 0, w, h))
	}
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// encodeJPEG writes a baseline JPEG at quality, then, when jpegtran is
// available, rewrites it as an optimized progressive stream.
func (n *Native) encodeJPEG(ctx context.Context, img image.Image, quality int) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, FlattenRGB(img), &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	if n.tools.Jpegtran == "" {
		return buf.Bytes(), nil
	}

	out, err := runTool(ctx, buf.Bytes(), n.tools.Jpegtran, "-copy", "none", "-optimize", "-progressive")
	if err != nil || len(out) == 0 {
		return buf.Bytes(), nil
	}
	if _, err := jpeg.DecodeConfig(bytes.NewReader(out)); err != nil {
		return buf.Bytes(), nil
	}
	return out, nil
}

// encodePNG writes img with maximum deflate effort. Paletted images are
// expanded to NRGBA first.
func encodePNG(img image.Image) ([]byte, error) {
	if p, ok := img.(*image.Paletted); ok {
		img = toNRGBA(p)
	}
	var buf bytes.Buffer
	enc := png.Encoder{CompressionLevel: png.BestCompression}
	if err := enc.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// encodeWebP hands the prepared image to cwebp through a lossless temp PNG.
// Sources with alpha keep it; opaque sources are flattened and encoded
// without an alpha plane.
func (n *Native) encodeWebP(ctx context.Context, img image.Image, alpha bool, quality int) ([]byte, error) {
	if !alpha {
		img = FlattenRGB(img)
	}

	in, err := os.CreateTemp("", "assetkit-*.png")
	if err != nil {
		return nil, err
	}
	inPath := in.Name()
	outPath := inPath + ".webp"
	defer os.Remove(inPath)
	defer os.Remove(outPath)

	enc := png.Encoder{CompressionLevel: png.BestSpeed}
	if err := enc.Encode(in, img); err != nil {
		in.Close()
		return nil, fmt.Errorf("write intermediate png: %w", err)
	}
	if err := in.Close(); err != nil {
		return nil, err
	}

	args := []string{"-quiet", "-q", strconv.Itoa(quality), "-m", "6"}
	if alpha {
		args = append(args, "-alpha_q", "100")
	} else {
		args = append(args, "-noalpha")
	}
	args = append(args, inPath, "-o", outPath)

	if _, err := runTool(ctx, nil, n.tools.Cwebp, args...); err != nil {
		return nil, err
	}
	return os.ReadFile(outPath)
}

// FlattenRGB drops the alpha channel without compositing, keeping grayscale
// and YCbCr images as they are.
func FlattenRGB(img image.Image) image.Image {
	switch img.(type) {
	case *image.Gray, *image.YCbCr:
		return img
	}
	b := img.Bounds()
	dst := image.NewRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			dst.SetRGBA(x, y, color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff})
		}
	}
	return dst
}

func toNRGBA(img image.Image) *image.NRGBA {
	b := img.Bounds()
	dst := image.NewNRGBA(b)
	draw.Draw(dst, b, img, b.Min, draw.Src)
	return dst
}

func isGray(img image.Image) bool {
	switch img.(type) {
	case *image.Gray, *image.Gray16:
		return true
	}
	return false
}
