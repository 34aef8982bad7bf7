package brand

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/drbusiness/platform/internal/imagegen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, img image.Image) imagegen.Image {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return imagegen.Image{Bytes: buf.Bytes(), MimeType: "image/png"}
}

func solidImage(t *testing.T, w, h int, c color.RGBA) imagegen.Image {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return encodePNG(t, img)
}

type stubEditor struct {
	img  imagegen.Image
	err  error
	call int
}

func (s *stubEditor) Edit(_ context.Context, _ imagegen.Image, _ []imagegen.Image, _ string) (imagegen.Image, error) {
	s.call++
	return s.img, s.err
}

func TestCompositeGeometry(t *testing.T) {
	base := solidImage(t, 200, 200, color.RGBA{R: 10, G: 20, B: 30, A: 255})
	logo := solidImage(t, 50, 50, color.RGBA{R: 250, G: 250, B: 250, A: 255})

	out, err := Composite(base, logo, DefaultOptions())
	require.NoError(t, err)

	decoded, _, err := image.Decode(bytes.NewReader(out.Bytes))
	require.NoError(t, err)
	require.Equal(t, 200, decoded.Bounds().Dx())
	require.Equal(t, 200, decoded.Bounds().Dy())

	// logo: 15% of 200 = 30px wide, square; padding 2% of 200 = 4px.
	// Logo region is x [166,196), y [4,34). Sample its center and a far corner.
	inLogo := decoded.At(181, 19)
	outside := decoded.At(20, 180)

	lr, lg, lb, _ := inLogo.RGBA()
	or, og, ob, _ := outside.RGBA()

	// Bright logo over a dark base at 0.9 alpha must read much brighter.
	assert.Greater(t, lr, or)
	assert.Greater(t, lg, og)
	assert.Greater(t, lb, ob)

	// Outside the logo region the base is untouched.
	assert.InDelta(t, 10<<8, or, 300)
	assert.InDelta(t, 20<<8, og, 300)
	assert.InDelta(t, 30<<8, ob, 300)
}

func TestCompositeDeterministic(t *testing.T) {
	base := solidImage(t, 120, 90, color.RGBA{R: 40, G: 60, B: 80, A: 255})
	logo := solidImage(t, 30, 30, color.RGBA{R: 200, G: 10, B: 10, A: 255})

	first, err := Composite(base, logo, DefaultOptions())
	require.NoError(t, err)
	second, err := Composite(base, logo, DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, first.Bytes, second.Bytes)
}

func TestCompositeBadInput(t *testing.T) {
	good := solidImage(t, 10, 10, color.RGBA{A: 255})
	bad := imagegen.Image{Bytes: []byte("not an image"), MimeType: "image/png"}

	_, err := Composite(bad, good, DefaultOptions())
	assert.Error(t, err)
	_, err = Composite(good, bad, DefaultOptions())
	assert.Error(t, err)
}

func TestBrandNoLogo(t *testing.T) {
	base := solidImage(t, 10, 10, color.RGBA{A: 255})
	b := New(&stubEditor{err: errors.New("should not be called")}, DefaultOptions())

	out := b.Brand(context.Background(), base, imagegen.Image{})
	assert.Equal(t, base, out)
}

func TestBrandGenerativePath(t *testing.T) {
	base := solidImage(t, 10, 10, color.RGBA{A: 255})
	logo := solidImage(t, 4, 4, color.RGBA{R: 255, A: 255})
	want := imagegen.Image{Bytes: []byte("edited"), MimeType: "image/png"}

	ed := &stubEditor{img: want}
	out := New(ed, DefaultOptions()).Brand(context.Background(), base, logo)
	assert.Equal(t, want, out)
	assert.Equal(t, 1, ed.call)
}

func TestBrandFallsBackToComposite(t *testing.T) {
	base := solidImage(t, 40, 40, color.RGBA{R: 5, G: 5, B: 5, A: 255})
	logo := solidImage(t, 8, 8, color.RGBA{R: 255, G: 255, B: 255, A: 255})

	ed := &stubEditor{err: errors.New("model unavailable")}
	out := New(ed, DefaultOptions()).Brand(context.Background(), base, logo)

	require.False(t, out.Empty())
	assert.NotEqual(t, base.Bytes, out.Bytes)

	want, err := Composite(base, logo, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, want.Bytes, out.Bytes)
}

func TestBrandReturnsBaseWhenEverythingFails(t *testing.T) {
	base := imagegen.Image{Bytes: []byte("not decodable"), MimeType: "image/png"}
	logo := solidImage(t, 4, 4, color.RGBA{A: 255})

	ed := &stubEditor{err: errors.New("model unavailable")}
	out := New(ed, DefaultOptions()).Brand(context.Background(), base, logo)
	assert.Equal(t, base, out)
}

func TestBrandNilEditorUsesComposite(t *testing.T) {
	base := solidImage(t, 40, 40, color.RGBA{R: 5, G: 5, B: 5, A: 255})
	logo := solidImage(t, 8, 8, color.RGBA{R: 255, G: 255, B: 255, A: 255})

	out := New(nil, DefaultOptions()).Brand(context.Background(), base, logo)
	want, err := Composite(base, logo, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, want.Bytes, out.Bytes)
}
