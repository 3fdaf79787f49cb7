package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
)

// CloneColor returns an 8-bit colour copy of img whose bounds start at (0,0).
//
// Grayscale, paletted and 16-bit inputs are all converted, so the pipeline
// always works on a 3-channel (plus opaque alpha) raster.
func CloneColor(img image.Image) *image.NRGBA {
	return imaging.Clone(img)
}

// SaveImage encodes img to path, choosing the format from the file extension
// (jpg, jpeg, png, gif, tif, tiff, bmp). Missing parent directories are created.
func SaveImage(img image.Image, path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := imaging.Save(img, path, imaging.JPEGQuality(95)); err != nil {
		return fmt.Errorf("failed to save image %s: %w", path, err)
	}
	return nil
}

// CheckImageFormat reports an error when path has an extension SaveImage
// cannot encode.
func CheckImageFormat(path string) error {
	if _, err := imaging.FormatFromFilename(path); err != nil {
		return fmt.Errorf("unsupported output image format %q: %w", filepath.Ext(path), err)
	}
	return nil
}

// EncodePNGBase64 encodes img as PNG and returns it base64 encoded.
func EncodePNGBase64(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("failed to encode image: %w", err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
