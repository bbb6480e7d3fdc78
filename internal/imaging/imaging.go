// Package imaging serializes decoded frame buffers as TIFF still images.
// The core guarantees the buffer's numeric content and shape; this package
// only adapts it to the image codec.
package imaging

import (
	"fmt"
	"image"
	"os"

	"golang.org/x/image/tiff"

	"github.com/backmassage/binframe/internal/frame"
)

// ToImage wraps a decoded frame buffer in the stdlib image type matching its
// channel width: NRGBA for 8-bit frames, NRGBA64 for 10-bit frames already
// widened to full-range 16-bit. Alpha is fully opaque.
func ToImage(img *frame.Image) (image.Image, error) {
	w, h := img.Geom.Width, img.Geom.Height

	if img.Pix8 != nil {
		if len(img.Pix8) != w*h*3 {
			return nil, fmt.Errorf("frame buffer has %d values, expected %d", len(img.Pix8), w*h*3)
		}
		out := image.NewNRGBA(image.Rect(0, 0, w, h))
		for i, j := 0, 0; i < len(img.Pix8); i, j = i+3, j+4 {
			out.Pix[j] = img.Pix8[i]
			out.Pix[j+1] = img.Pix8[i+1]
			out.Pix[j+2] = img.Pix8[i+2]
			out.Pix[j+3] = 0xFF
		}
		return out, nil
	}

	if len(img.Pix16) != w*h*3 {
		return nil, fmt.Errorf("frame buffer has %d values, expected %d", len(img.Pix16), w*h*3)
	}
	out := image.NewNRGBA64(image.Rect(0, 0, w, h))
	// NRGBA64 stores big-endian 16-bit RGBA.
	for i, j := 0, 0; i < len(img.Pix16); i, j = i+3, j+8 {
		out.Pix[j] = uint8(img.Pix16[i] >> 8)
		out.Pix[j+1] = uint8(img.Pix16[i])
		out.Pix[j+2] = uint8(img.Pix16[i+1] >> 8)
		out.Pix[j+3] = uint8(img.Pix16[i+1])
		out.Pix[j+4] = uint8(img.Pix16[i+2] >> 8)
		out.Pix[j+5] = uint8(img.Pix16[i+2])
		out.Pix[j+6] = 0xFF
		out.Pix[j+7] = 0xFF
	}
	return out, nil
}

// WriteTIFF encodes a decoded frame as a deflate-compressed TIFF at path.
func WriteTIFF(path string, img *frame.Image) error {
	m, err := ToImage(img)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	opts := &tiff.Options{Compression: tiff.Deflate}
	if err := tiff.Encode(f, m, opts); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
