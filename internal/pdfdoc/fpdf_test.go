package pdfdoc

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestFpdfWriter_MultiplePagesShareOneImage(t *testing.T) {
	w := NewWriter(A4, Options{Title: "Jane Doe CV", Creator: "cv-builder"})
	require.NoError(t, w.RegisterPNG("cv", bytes.NewReader(testPNG(t, 40, 120))))

	mapped := 120.0 * A4.Width / 40.0
	for i, y := range []float64{0, -297, -594} {
		require.NoError(t, w.AddPage(), "page %d", i)
		require.NoError(t, w.DrawImage("cv", 0, y, A4.Width, mapped))
	}
	assert.Equal(t, 3, w.PageCount())

	var out bytes.Buffer
	n, err := w.WriteTo(&out)
	require.NoError(t, err)
	assert.Equal(t, int64(out.Len()), n)
	assert.True(t, strings.HasPrefix(out.String(), "%PDF-"))
	assert.Equal(t, 1, bytes.Count(out.Bytes(), []byte("/Subtype /Image")), "image data embedded once")
}

func TestFpdfWriter_Errors(t *testing.T) {
	t.Run("draw before register", func(t *testing.T) {
		w := NewWriter(A4, Options{})
		require.NoError(t, w.AddPage())
		err := w.DrawImage("missing", 0, 0, 10, 10)
		var werr *WriteError
		require.ErrorAs(t, err, &werr)
		assert.Equal(t, "draw image", werr.Op)
	})

	t.Run("draw without page", func(t *testing.T) {
		w := NewWriter(A4, Options{})
		require.NoError(t, w.RegisterPNG("cv", bytes.NewReader(testPNG(t, 2, 2))))
		assert.Error(t, w.DrawImage("cv", 0, 0, 10, 10))
	})

	t.Run("empty name", func(t *testing.T) {
		w := NewWriter(A4, Options{})
		assert.Error(t, w.RegisterPNG("", bytes.NewReader(testPNG(t, 2, 2))))
	})

	t.Run("corrupt image", func(t *testing.T) {
		w := NewWriter(A4, Options{})
		err := w.RegisterPNG("cv", strings.NewReader("not a png"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "pdf register image")
	})
}

func TestPaperSize(t *testing.T) {
	w := NewWriter(A4, Options{})
	assert.Equal(t, A4, w.PaperSize())
	assert.Equal(t, 210.0, A4.Width)
	assert.Equal(t, 297.0, A4.Height)
}
