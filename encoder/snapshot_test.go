package encoder

import (
	"bytes"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
)

// two rows, bottom row red, top row white, as GL reads them back
var glPixels = []byte{
	255, 0, 0, 255, 255, 0, 0, 255,
	255, 255, 255, 255, 255, 255, 255, 255,
}

func TestImageFromPixelsFlips(t *testing.T) {
	img, err := ImageFromPixels(2, 2, glPixels)
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{255, 255, 255, 255}, img.NRGBAAt(0, 0))
	assert.Equal(t, color.NRGBA{255, 0, 0, 255}, img.NRGBAAt(1, 1))

	_, err = ImageFromPixels(3, 2, glPixels)
	assert.Error(t, err)
}

func TestFormatFromPath(t *testing.T) {
	for path, want := range map[string]string{
		"a.png":      "png",
		"b.BMP":      "bmp",
		"dir/c.webp": "webp",
	} {
		got, err := FormatFromPath(path)
		require.NoError(t, err, path)
		assert.Equal(t, want, got)
	}
	_, err := FormatFromPath("d.gif")
	assert.Error(t, err)
}

func TestWriteSnapshotPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "square.png")
	require.NoError(t, WriteSnapshot(path, 2, 2, glPixels))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 2, img.Bounds().Dx())
	r, g, b, _ := img.At(0, 1).RGBA()
	assert.Equal(t, uint32(0xffff), r)
	assert.Zero(t, g)
	assert.Zero(t, b)
}

func TestEncodeFormats(t *testing.T) {
	img, err := ImageFromPixels(2, 2, glPixels)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, img, "bmp"))
	decoded, err := bmp.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, img.Bounds(), decoded.Bounds())

	buf.Reset()
	require.NoError(t, Encode(&buf, img, "webp"))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("RIFF")))

	assert.Error(t, Encode(&buf, img, "gif"))
}
