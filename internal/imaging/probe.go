package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/color"

	// Decoders registered for image.Decode / image.DecodeConfig.
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

// Info is the header-level description of an image.
type Info struct {
	Format   string // Decoder name: "jpeg", "png" or "webp".
	Width    int
	Height   int
	Alpha    bool // Alpha channel or transparent palette entry.
	Paletted bool
	Gray     bool
}

// Probe reads only the image header. It is the cheap first step for both
// engines: the native codec uses it to reject undecodable input early and
// the ImageMagick codec uses it to pick per-format arguments.
func Probe(src []byte) (Info, error) {
	cfg, name, err := image.DecodeConfig(bytes.NewReader(src))
	if err != nil {
		return Info{}, fmt.Errorf("read image header: %w", err)
	}
	_, paletted := cfg.ColorModel.(color.Palette)
	return Info{
		Format:   name,
		Width:    cfg.Width,
		Height:   cfg.Height,
		Alpha:    HasAlpha(cfg.ColorModel),
		Paletted: paletted,
		Gray:     cfg.ColorModel == color.GrayModel || cfg.ColorModel == color.Gray16Model,
	}, nil
}

// HasAlpha reports whether images in model m can carry real transparency.
// Non-premultiplied models (what decoders return for RGBA/LA sources) and
// palettes containing a non-opaque entry count; premultiplied RGBA models
// do not, since the PNG decoder uses them for opaque truecolor files.
func HasAlpha(m color.Model) bool {
	if p, ok := m.(color.Palette); ok {
		for _, c := range p {
			if _, _, _, a := c.RGBA(); a != 0xffff {
				return true
			}
		}
		return false
	}
	switch m {
	case color.NRGBAModel, color.NRGBA64Model, color.NYCbCrAModel,
		color.AlphaModel, color.Alpha16Model:
		return true
	}
	return false
}
