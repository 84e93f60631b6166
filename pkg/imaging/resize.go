// Package imaging recompresses uploaded photos to bound storage and transfer cost.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"

	"golang.org/x/image/draw"
)

const (
	// MaxEdge is the longest allowed edge of a stored photo in pixels.
	MaxEdge = 1200
	// MaxBytes is the size budget for a stored photo (1MB).
	MaxBytes = 1 << 20

	startQuality = 85
	minQuality   = 30
)

// Recompress decodes an uploaded image, downscales it so its longest edge is
// at most MaxEdge, and re-encodes it as JPEG, stepping quality down until the
// result fits MaxBytes. The returned bytes are always JPEG.
func Recompress(data []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	img = downscale(img, MaxEdge)

	for q := startQuality; q >= minQuality; q -= 10 {
		var buf bytes.Buffer
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: q}); err != nil {
			return nil, fmt.Errorf("encode jpeg: %w", err)
		}
		if buf.Len() <= MaxBytes {
			return buf.Bytes(), nil
		}
	}
	return nil, fmt.Errorf("image exceeds %d bytes at minimum quality", MaxBytes)
}

// downscale returns img scaled so its longest edge is at most maxEdge,
// preserving aspect ratio. Images already within bounds are returned as-is.
func downscale(img image.Image, maxEdge int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	longest := w
	if h > longest {
		longest = h
	}
	if longest <= maxEdge {
		return img
	}

	scale := float64(maxEdge) / float64(longest)
	nw := int(float64(w)*scale + 0.5)
	nh := int(float64(h)*scale + 0.5)
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}
