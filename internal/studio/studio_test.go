package studio

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/drbusiness/platform/internal/imagegen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogo(t *testing.T) imagegen.Image {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 40, 40))
	for y := 0; y < 40; y++ {
		for x := 0; x < 40; x++ {
			img.SetRGBA(x, y, color.RGBA{R: 240, G: 240, B: 240, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return imagegen.Image{Bytes: buf.Bytes(), MimeType: "image/png"}
}

func TestRender(t *testing.T) {
	out, err := Render(Card{BusinessName: "Lotus Bakery", Field: "artisan bakery", Logo: testLogo(t)})
	require.NoError(t, err)
	require.False(t, out.Empty())
	assert.Equal(t, "image/png", out.MimeType)

	decoded, _, err := image.Decode(bytes.NewReader(out.Bytes))
	require.NoError(t, err)
	assert.Equal(t, 1080, decoded.Bounds().Dx())
	assert.Equal(t, 1080, decoded.Bounds().Dy())
}

func TestRenderDeterministic(t *testing.T) {
	card := Card{BusinessName: "Nile Fitness", Field: "gym"}
	first, err := Render(card)
	require.NoError(t, err)
	second, err := Render(card)
	require.NoError(t, err)
	assert.Equal(t, first.Bytes, second.Bytes)
}

func TestRenderFieldPicksPalette(t *testing.T) {
	a, err := Render(Card{BusinessName: "Same Name", Field: "bakery"})
	require.NoError(t, err)
	b, err := Render(Card{BusinessName: "Same Name", Field: "law firm"})
	require.NoError(t, err)
	// different fields can collide on the palette, but these two do not
	assert.NotEqual(t, a.Bytes, b.Bytes)
}

func TestRenderRequiresName(t *testing.T) {
	_, err := Render(Card{Field: "bakery"})
	assert.Error(t, err)
}

func TestRenderIgnoresBadLogo(t *testing.T) {
	out, err := Render(Card{
		BusinessName: "Lotus Bakery",
		Field:        "artisan bakery",
		Logo:         imagegen.Image{Bytes: []byte("not an image"), MimeType: "image/png"},
	})
	require.NoError(t, err)
	assert.False(t, out.Empty())
}
