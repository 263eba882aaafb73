package cadmtl

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/ftrvxmtrx/tga"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
)

func solidImage(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func writePNG(t *testing.T, dir, name string, c color.NRGBA) string {
	t.Helper()
	buf := bytes.NewBuffer(nil)
	require.NoError(t, png.Encode(buf, solidImage(2, 2, c)))
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

func writeBMP(t *testing.T, dir, name string, c color.NRGBA) string {
	t.Helper()
	buf := bytes.NewBuffer(nil)
	require.NoError(t, bmp.Encode(buf, solidImage(2, 2, c)))
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

func writeTGA(t *testing.T, dir, name string, c color.NRGBA) string {
	t.Helper()
	buf := bytes.NewBuffer(nil)
	require.NoError(t, tga.Encode(buf, solidImage(2, 2, c)))
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

func TestBitmapMimeType(t *testing.T) {
	tests := map[string]string{
		".png":  MIME_PNG,
		".jpg":  MIME_JPEG,
		".jpeg": MIME_JPEG,
		".bmp":  "",
		".tga":  "",
	}
	for ext, want := range tests {
		b := &Bitmap{Ext: ext}
		assert.Equal(t, want, b.MimeType(), ext)
		assert.Equal(t, want != "", b.Native(), ext)
	}
}

func TestReadBitmapAndTranscode(t *testing.T) {
	dir := t.TempDir()
	c := color.NRGBA{R: 200, G: 100, B: 50, A: 255}

	for _, path := range []string{
		writeBMP(t, dir, "wood.BMP", c),
		writeTGA(t, dir, "wood.tga", c),
	} {
		bm, err := ReadBitmap(path)
		require.NoError(t, err)
		assert.False(t, bm.Native())

		data, mime, err := bm.EncodedForGltf()
		require.NoError(t, err, path)
		assert.Equal(t, MIME_PNG, mime)

		img, err := png.Decode(bytes.NewReader(data))
		require.NoError(t, err)
		avg, ok := AverageColor(img)
		require.True(t, ok)
		assert.InDelta(t, 200.0/255, avg[0], 1e-3, path)
		assert.InDelta(t, 100.0/255, avg[1], 1e-3, path)
		assert.InDelta(t, 50.0/255, avg[2], 1e-3, path)
	}
}

func TestNativeBitmapIsPassedThrough(t *testing.T) {
	path := writePNG(t, t.TempDir(), "brick.png", color.NRGBA{R: 10, G: 20, B: 30, A: 255})
	bm, err := ReadBitmap(path)
	require.NoError(t, err)

	data, mime, err := bm.EncodedForGltf()
	require.NoError(t, err)
	assert.Equal(t, MIME_PNG, mime)
	assert.Equal(t, bm.Data, data)
}

func TestDecodeUnsupported(t *testing.T) {
	bm := &Bitmap{Name: "x.psd", Ext: ".psd"}
	_, err := bm.Decode()
	assert.Equal(t, ErrUnsupportedImage, errors.Cause(err))
}

func TestAverageColorIgnoresTransparent(t *testing.T) {
	img := solidImage(2, 1, color.NRGBA{})
	img.SetNRGBA(0, 0, color.NRGBA{R: 255, A: 255})
	avg, ok := AverageColor(img)
	require.True(t, ok)
	assert.InDelta(t, 1, avg[0], 1e-6)

	_, ok = AverageColor(solidImage(1, 1, color.NRGBA{}))
	assert.False(t, ok)
}

func TestDecodeTGA(t *testing.T) {
	path := writeTGA(t, t.TempDir(), "roof.tga", color.NRGBA{R: 30, G: 60, B: 90, A: 255})
	bm, err := ReadBitmap(path)
	require.NoError(t, err)
	assert.Equal(t, ".tga", bm.Ext)

	img, err := bm.Decode()
	require.NoError(t, err)
	assert.Equal(t, 2, img.Bounds().Dx())
	assert.Equal(t, 2, img.Bounds().Dy())

	r, g, b, a := img.At(1, 1).RGBA()
	assert.Equal(t, uint32(30), r>>8)
	assert.Equal(t, uint32(60), g>>8)
	assert.Equal(t, uint32(90), b>>8)
	assert.Equal(t, uint32(255), a>>8)
}
