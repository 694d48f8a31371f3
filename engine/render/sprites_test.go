package render

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"
)

func testImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 128, 64))
	img.Set(70, 10, color.RGBA{255, 0, 0, 255})
	return img
}

func TestDecodeAtlasFormats(t *testing.T) {
	encoders := map[string]func(*bytes.Buffer, image.Image) error{
		"png": func(b *bytes.Buffer, m image.Image) error { return png.Encode(b, m) },
		"bmp": func(b *bytes.Buffer, m image.Image) error { return bmp.Encode(b, m) },
	}
	for name, enc := range encoders {
		var buf bytes.Buffer
		if err := enc(&buf, testImage()); err != nil {
			t.Fatalf("%s encode: %v", name, err)
		}
		img, format, err := DecodeAtlas(&buf)
		if err != nil {
			t.Fatalf("%s: DecodeAtlas: %v", name, err)
		}
		if format != name {
			t.Errorf("format = %q, want %q", format, name)
		}
		if img.Bounds() != image.Rect(0, 0, 128, 64) {
			t.Errorf("%s bounds = %v", name, img.Bounds())
		}
		r, _, _, _ := img.At(70, 10).RGBA()
		if r>>8 != 255 {
			t.Errorf("%s pixel lost: r = %d", name, r>>8)
		}
	}
}

func TestDecodeAtlasRejectsGarbage(t *testing.T) {
	if _, _, err := DecodeAtlas(bytes.NewReader([]byte("not an image"))); err == nil {
		t.Error("DecodeAtlas accepted garbage")
	}
}

func TestOpenAtlasImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "atlas.png")
	var buf bytes.Buffer
	if err := png.Encode(&buf, testImage()); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}

	atlas, err := OpenAtlasImage(path)
	if err != nil {
		t.Fatalf("OpenAtlasImage: %v", err)
	}
	if atlas.Bounds().Dx() != 128 {
		t.Errorf("bounds = %v", atlas.Bounds())
	}

	if _, err := OpenAtlasImage(filepath.Join(t.TempDir(), "missing.png")); !os.IsNotExist(err) {
		t.Errorf("missing file err = %v", err)
	}
}
