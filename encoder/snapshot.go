package encoder

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"golang.org/x/image/bmp"
)

// ImageFromPixels builds an image from bottom-up RGBA8 rows.
func ImageFromPixels(width, height int, pixels []byte) (*image.NRGBA, error) {
	stride := width * 4
	if len(pixels) != stride*height {
		return nil, fmt.Errorf("got %d bytes for a %dx%d image, expected %d", len(pixels), width, height, stride*height)
	}
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		src := pixels[(height-1-y)*stride : (height-y)*stride]
		copy(img.Pix[y*img.Stride:y*img.Stride+stride], src)
	}
	return img, nil
}

// Encode writes img in the given format: "png", "bmp" or "webp".
func Encode(w io.Writer, img image.Image, format string) error {
	switch format {
	case "png":
		return png.Encode(w, img)
	case "bmp":
		return bmp.Encode(w, img)
	case "webp":
		return nativewebp.Encode(w, img, nil)
	}
	return fmt.Errorf("unsupported image format %q", format)
}

// FormatFromPath picks the image format from the file extension.
func FormatFromPath(path string) (string, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	switch ext {
	case "png", "bmp", "webp":
		return ext, nil
	}
	return "", fmt.Errorf("unsupported snapshot extension %q", filepath.Ext(path))
}

// WriteSnapshot saves one frame of read-back pixels to path.
func WriteSnapshot(path string, width, height int, pixels []byte) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	img, err := ImageFromPixels(width, height, pixels)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := Encode(f, img, format); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return f.Close()
}
