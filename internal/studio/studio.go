// Package studio renders deterministic branded design cards. The card is the
// fallback visual for posts whose AI image never materialized: a gradient
// background picked from the business field, the business name, and the logo.
package studio

import (
	"bytes"
	"fmt"
	"hash/fnv"
	"image"
	"image/png"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/drbusiness/platform/internal/imagegen"

	_ "image/gif"
	_ "image/jpeg"
)

const cardSize = 1080

// palette entries are top/bottom gradient stops. The business field hashes to
// a fixed entry, so the same business always gets the same card.
var palette = [][2][3]float64{
	{{0.11, 0.15, 0.34}, {0.33, 0.18, 0.55}}, // midnight violet
	{{0.05, 0.29, 0.33}, {0.10, 0.55, 0.45}}, // deep teal
	{{0.45, 0.14, 0.19}, {0.78, 0.32, 0.18}}, // warm ember
	{{0.10, 0.22, 0.40}, {0.15, 0.45, 0.66}}, // ocean blue
	{{0.24, 0.16, 0.10}, {0.55, 0.38, 0.16}}, // roasted gold
}

// Card describes one design card to render.
type Card struct {
	BusinessName string
	Field        string
	Logo         imagegen.Image
}

// Render produces the PNG card. Output is byte-reproducible for equal input.
func Render(card Card) (imagegen.Image, error) {
	if card.BusinessName == "" {
		return imagegen.Image{}, fmt.Errorf("render card: empty business name")
	}

	dc := gg.NewContext(cardSize, cardSize)

	// vertical gradient painted as 1px bands
	top, bottom := pickColors(card.Field)
	for y := 0; y < cardSize; y++ {
		t := float64(y) / float64(cardSize-1)
		r := top[0] + (bottom[0]-top[0])*t
		g := top[1] + (bottom[1]-top[1])*t
		b := top[2] + (bottom[2]-top[2])*t
		dc.SetRGB(r, g, b)
		dc.DrawLine(0, float64(y), cardSize, float64(y))
		dc.Stroke()
	}

	font, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return imagegen.Image{}, fmt.Errorf("parse font: %w", err)
	}
	face := truetype.NewFace(font, &truetype.Options{Size: 64})
	dc.SetFontFace(face)
	dc.SetRGB(1, 1, 1)
	dc.DrawStringAnchored(truncate(card.BusinessName, 30), cardSize/2, cardSize*0.82, 0.5, 0.5)

	if !card.Logo.Empty() {
		logoImg, _, err := image.Decode(bytes.NewReader(card.Logo.Bytes))
		if err == nil {
			drawLogo(dc, logoImg)
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, dc.Image()); err != nil {
		return imagegen.Image{}, fmt.Errorf("encode card: %w", err)
	}
	return imagegen.Image{Bytes: buf.Bytes(), MimeType: "image/png"}, nil
}

func drawLogo(dc *gg.Context, logo image.Image) {
	maxW := float64(cardSize) * 0.3
	scale := maxW / float64(logo.Bounds().Dx())
	dc.Push()
	dc.Translate(cardSize/2-maxW/2, cardSize*0.25)
	dc.Scale(scale, scale)
	dc.DrawImage(logo, 0, 0)
	dc.Pop()
}

func pickColors(field string) ([3]float64, [3]float64) {
	h := fnv.New32a()
	h.Write([]byte(field))
	entry := palette[int(h.Sum32())%len(palette)]
	return entry[0], entry[1]
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
