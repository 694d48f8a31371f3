package maplib

import (
	"image"
	"slices"

	"github.com/1siamBot/iso-tiles/engine/iso"
)

// Atlas is the single source image every tile clips from.
// *ebiten.Image and image.Image both satisfy it.
type Atlas interface {
	Bounds() image.Rectangle
}

// Rect is a source rectangle in atlas pixel space
type Rect struct {
	X, Y, Width, Height float64
}

// Image returns the rectangle as an image.Rectangle, truncating fractions
func (r Rect) Image() image.Rectangle {
	return image.Rect(int(r.X), int(r.Y), int(r.X+r.Width), int(r.Y+r.Height))
}

// TileDefinition is the drawable region for one tile code
type TileDefinition struct {
	Clip   Rect
	Origin iso.Point // subtracted from the draw position, anchors tall art
}

// Registry maps tile codes to definitions over one shared atlas
type Registry struct {
	atlas Atlas
	defs  map[int]TileDefinition
}

// NewRegistry creates an empty registry over atlas
func NewRegistry(atlas Atlas) *Registry {
	return &Registry{
		atlas: atlas,
		defs:  make(map[int]TileDefinition),
	}
}

// Atlas returns the shared source image
func (r *Registry) Atlas() Atlas {
	return r.atlas
}

// Register inserts or replaces the definition for code
func (r *Registry) Register(code int, def TileDefinition) {
	r.defs[code] = def
}

// Resolve returns the definition for code
func (r *Registry) Resolve(code int) (TileDefinition, error) {
	def, ok := r.defs[code]
	if !ok {
		return TileDefinition{}, &UnknownTileCodeError{Code: code, Layer: -1, Row: -1, Col: -1}
	}
	return def, nil
}

// Has reports whether code is registered
func (r *Registry) Has(code int) bool {
	_, ok := r.defs[code]
	return ok
}

// Len returns the number of registered codes
func (r *Registry) Len() int {
	return len(r.defs)
}

// Codes returns the registered codes in ascending order
func (r *Registry) Codes() []int {
	codes := make([]int, 0, len(r.defs))
	for c := range r.defs {
		codes = append(codes, c)
	}
	slices.Sort(codes)
	return codes
}
