// Package thumbnail normalizes raw image bytes to a fixed square PNG.
package thumbnail

import (
	"bytes"
	"fmt"
	"image"

	// Register decoders for the formats a provider may return.
	_ "image/gif"
	_ "image/jpeg"
	"image/png"

	"golang.org/x/image/draw"
)

// DefaultSize is the edge length of generated icons.
const DefaultSize = 256

// Normalize decodes raw image bytes, scales them to exactly size x size using
// Catmull-Rom resampling, and re-encodes the result as PNG. The output is
// fully encoded in memory so callers can write it in a single operation.
func Normalize(raw []byte, size int) ([]byte, error) {
	if size <= 0 {
		return nil, fmt.Errorf("invalid thumbnail size: %d", size)
	}

	src, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return buf.Bytes(), nil
}
