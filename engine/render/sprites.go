package render

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	"github.com/1siamBot/iso-tiles/engine/maplib"
	"github.com/hajimehoshi/ebiten/v2"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// DecodeAtlas decodes a PNG, JPEG, GIF, BMP or WebP atlas
func DecodeAtlas(r io.Reader) (image.Image, string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, "", fmt.Errorf("decode atlas: %w", err)
	}
	return img, format, nil
}

// LoadAtlas reads an atlas from disk into a GPU image
func LoadAtlas(path string) (*ebiten.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := DecodeAtlas(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ebiten.NewImageFromImage(img), nil
}

// OpenAtlas is a maplib.AtlasOpener backed by LoadAtlas
func OpenAtlas(path string) (maplib.Atlas, error) {
	img, err := LoadAtlas(path)
	if err != nil {
		return nil, err
	}
	return img, nil
}

// OpenAtlasImage is a maplib.AtlasOpener that keeps the decoded image on the
// CPU, for tools that never open a window
func OpenAtlasImage(path string) (maplib.Atlas, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := DecodeAtlas(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return img, nil
}
