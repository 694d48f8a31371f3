package maplib

import (
	"errors"
	"image"
	"slices"
	"testing"

	"github.com/1siamBot/iso-tiles/engine/iso"
)

func TestRegistryResolve(t *testing.T) {
	atlas := image.NewRGBA(image.Rect(0, 0, 128, 128))
	reg := NewRegistry(atlas)
	floor := TileDefinition{Clip: Rect{0, 0, 64, 64}}
	reg.Register(0, floor)

	def, err := reg.Resolve(0)
	if err != nil {
		t.Fatalf("Resolve(0): %v", err)
	}
	if def != floor {
		t.Errorf("Resolve(0) = %+v, want %+v", def, floor)
	}

	_, err = reg.Resolve(9)
	if !errors.Is(err, ErrUnknownTileCode) {
		t.Fatalf("Resolve(9) error = %v, want ErrUnknownTileCode", err)
	}
	var ue *UnknownTileCodeError
	if !errors.As(err, &ue) || ue.Code != 9 {
		t.Errorf("Resolve(9) error = %#v, want code 9", err)
	}
}

func TestRegistryLastWriteWins(t *testing.T) {
	reg := NewRegistry(image.NewRGBA(image.Rect(0, 0, 256, 256)))
	reg.Register(3, TileDefinition{Clip: Rect{0, 0, 64, 64}})
	tree := TileDefinition{Clip: Rect{128, 0, 64, 128}, Origin: iso.Point{X: 0, Y: 64}}
	reg.Register(3, tree)

	def, err := reg.Resolve(3)
	if err != nil {
		t.Fatal(err)
	}
	if def != tree {
		t.Errorf("Resolve(3) = %+v, want %+v", def, tree)
	}
	if reg.Len() != 1 {
		t.Errorf("Len() = %d, want 1", reg.Len())
	}
}

func TestRegistrySharesAtlas(t *testing.T) {
	atlas := image.NewRGBA(image.Rect(0, 0, 64, 64))
	reg := NewRegistry(atlas)
	if reg.Atlas() != Atlas(atlas) {
		t.Error("Atlas() did not return the registry's image")
	}
}

func TestRegistryCodesSorted(t *testing.T) {
	reg := NewRegistry(image.NewRGBA(image.Rect(0, 0, 1, 1)))
	for _, c := range []int{5, -1, 3, 0} {
		reg.Register(c, TileDefinition{})
	}
	want := []int{-1, 0, 3, 5}
	if got := reg.Codes(); !slices.Equal(got, want) {
		t.Errorf("Codes() = %v, want %v", got, want)
	}
}

func TestRectImage(t *testing.T) {
	r := Rect{X: 448, Y: 192, Width: 64, Height: 64}
	if got, want := r.Image(), image.Rect(448, 192, 512, 256); got != want {
		t.Errorf("Image() = %v, want %v", got, want)
	}
}
