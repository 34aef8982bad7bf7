// Package brand stamps a client's logo onto generated marketing images. The
// generative edit model is tried first when available; any failure falls back
// to a deterministic raster composite, and any failure there returns the
// unbranded base. Branding never fails the pipeline.
package brand

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"log/slog"

	xdraw "golang.org/x/image/draw"

	"github.com/drbusiness/platform/internal/imagegen"

	_ "image/gif"
	_ "image/jpeg"
)

// watermarkInstruction is the edit-model prompt for the generative path.
const watermarkInstruction = `Place the second image (the logo) as a small, professional watermark in the top-right corner of the first image. Ensure it is tastefully sized and does not obscure any important details of the main image.`

// Editor is the generative edit capability, satisfied by imagegen.Client.
type Editor interface {
	Edit(ctx context.Context, base imagegen.Image, aux []imagegen.Image, instruction string) (imagegen.Image, error)
}

// Options control the deterministic composite geometry.
type Options struct {
	// LogoWidthFraction is the logo width as a fraction of the base width.
	LogoWidthFraction float64
	// PaddingFraction is the margin from the edges as a fraction of the base width.
	PaddingFraction float64
	// Opacity applied to the logo, 0..1.
	Opacity float64
}

// DefaultOptions matches the canvas composite the dashboards expect:
// logo at 15% of base width, 2% padding, top-right, 90% opaque.
func DefaultOptions() Options {
	return Options{
		LogoWidthFraction: 0.15,
		PaddingFraction:   0.02,
		Opacity:           0.9,
	}
}

// Brander applies logos to images.
type Brander struct {
	editor Editor
	opts   Options
}

// New builds a Brander. editor may be nil, in which case only the
// deterministic composite runs.
func New(editor Editor, opts Options) *Brander {
	return &Brander{editor: editor, opts: opts}
}

// Brand returns base with the logo applied. An empty logo returns base
// unchanged. Errors on either branding path are logged and absorbed; the
// worst outcome is the unbranded base image.
func (b *Brander) Brand(ctx context.Context, base, logo imagegen.Image) imagegen.Image {
	if base.Empty() || logo.Empty() {
		return base
	}

	if b.editor != nil {
		branded, err := b.editor.Edit(ctx, base, []imagegen.Image{logo}, watermarkInstruction)
		if err == nil && !branded.Empty() {
			return branded
		}
		slog.Warn("generative branding failed, falling back to composite", "error", err)
	}

	branded, err := Composite(base, logo, b.opts)
	if err != nil {
		slog.Warn("composite branding failed, keeping unbranded image", "error", err)
		return base
	}
	return branded
}

// Composite draws the logo into the top-right corner of base and re-encodes
// as PNG. The output is byte-reproducible for fixed inputs and options.
func Composite(base, logo imagegen.Image, opts Options) (imagegen.Image, error) {
	baseImg, _, err := image.Decode(bytes.NewReader(base.Bytes))
	if err != nil {
		return imagegen.Image{}, fmt.Errorf("decode base image: %w", err)
	}
	logoImg, _, err := image.Decode(bytes.NewReader(logo.Bytes))
	if err != nil {
		return imagegen.Image{}, fmt.Errorf("decode logo image: %w", err)
	}

	bounds := baseImg.Bounds()
	canvas := image.NewRGBA(bounds)
	draw.Draw(canvas, bounds, baseImg, bounds.Min, draw.Src)

	logoW := int(float64(bounds.Dx()) * opts.LogoWidthFraction)
	if logoW < 1 {
		logoW = 1
	}
	logoH := logoW * logoImg.Bounds().Dy() / logoImg.Bounds().Dx()
	if logoH < 1 {
		logoH = 1
	}
	scaled := image.NewRGBA(image.Rect(0, 0, logoW, logoH))
	xdraw.ApproxBiLinear.Scale(scaled, scaled.Bounds(), logoImg, logoImg.Bounds(), xdraw.Over, nil)

	pad := int(float64(bounds.Dx()) * opts.PaddingFraction)
	pos := image.Rect(
		bounds.Max.X-pad-logoW,
		bounds.Min.Y+pad,
		bounds.Max.X-pad,
		bounds.Min.Y+pad+logoH,
	)

	alpha := image.NewUniform(color.Alpha{A: uint8(opts.Opacity * 255)})
	draw.DrawMask(canvas, pos, scaled, image.Point{}, alpha, image.Point{}, draw.Over)

	var buf bytes.Buffer
	if err := png.Encode(&buf, canvas); err != nil {
		return imagegen.Image{}, fmt.Errorf("encode branded image: %w", err)
	}
	return imagegen.Image{Bytes: buf.Bytes(), MimeType: "image/png"}, nil
}
