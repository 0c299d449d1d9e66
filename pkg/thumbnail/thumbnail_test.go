package thumbnail

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode test PNG: %v", err)
	}
	return buf.Bytes()
}

func encodeJPEG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatalf("failed to encode test JPEG: %v", err)
	}
	return buf.Bytes()
}

func TestNormalizeOutputShape(t *testing.T) {
	tests := []struct {
		name string
		raw  []byte
	}{
		{"downscale large PNG", nil}, // filled below
		{"upscale small PNG", nil},
		{"non-square PNG", nil},
		{"JPEG input", nil},
	}
	tests[0].raw = encodePNG(t, 1024, 1024)
	tests[1].raw = encodePNG(t, 37, 81)
	tests[2].raw = encodePNG(t, 640, 200)
	tests[3].raw = encodeJPEG(t, 300, 500)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Normalize(tt.raw, DefaultSize)
			if err != nil {
				t.Fatalf("Normalize() error = %v", err)
			}

			cfg, format, err := image.DecodeConfig(bytes.NewReader(out))
			if err != nil {
				t.Fatalf("output does not decode: %v", err)
			}
			if format != "png" {
				t.Errorf("output format = %q, want png", format)
			}
			if cfg.Width != DefaultSize || cfg.Height != DefaultSize {
				t.Errorf("output dimensions = %dx%d, want %dx%d", cfg.Width, cfg.Height, DefaultSize, DefaultSize)
			}
		})
	}
}

func TestNormalizeRejectsGarbage(t *testing.T) {
	if _, err := Normalize([]byte("definitely not an image"), DefaultSize); err == nil {
		t.Fatal("Normalize() on garbage = nil error, want decode failure")
	}
}

func TestNormalizeRejectsBadSize(t *testing.T) {
	if _, err := Normalize(encodePNG(t, 10, 10), 0); err == nil {
		t.Fatal("Normalize() with size 0 = nil error, want failure")
	}
}
