package maplib

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"

	"github.com/1siamBot/iso-tiles/engine/iso"
)

// Clip units accepted in a description
const (
	ClipUnitPixels = "px"
	ClipUnitCells  = "cell"
)

// DefaultCellSize is the atlas cell edge used when clip_unit is "cell"
// and the description names no cell_size
const DefaultCellSize = 64

// Description is the on-disk map format
type Description struct {
	Image      string              `json:"image"`
	ClipUnit   string              `json:"clip_unit,omitempty"`
	CellSize   *SizeSpec           `json:"cell_size,omitempty"`
	Width      *int                `json:"width,omitempty"`
	Height     *int                `json:"height,omitempty"`
	SparseBase bool                `json:"sparse_base,omitempty"`
	Tiles      map[string]TileSpec `json:"tiles"`

	// Layer sources, first non-empty wins: Layers, then Low/Mid/High, then Map
	Layers []LayerDesc `json:"layers,omitempty"`
	Low    [][]int     `json:"low,omitempty"`
	Mid    [][]int     `json:"mid,omitempty"`
	High   [][]int     `json:"high,omitempty"`
	Map    [][]int     `json:"map,omitempty"`
}

// SizeSpec is a width/height pair
type SizeSpec struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// RectSpec is a clip rectangle as written in a description
type RectSpec struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// PointSpec is an origin as written in a description (always pixels)
type PointSpec struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// TileSpec is one entry of the tiles mapping
type TileSpec struct {
	Clip   RectSpec  `json:"clip"`
	Origin PointSpec `json:"origin"`
}

// LayerDesc is a named layer
type LayerDesc struct {
	Name  string  `json:"name"`
	Cells [][]int `json:"cells"`
}

// Map is a fully loaded, validated map
type Map struct {
	Path        string
	ImagePath   string
	Description *Description
	Registry    *Registry
	Grid        *LayeredGrid
}

// AtlasOpener loads the image a description refers to
type AtlasOpener func(path string) (Atlas, error)

// ParseDescription decodes a JSON map description
func ParseDescription(r io.Reader) (*Description, error) {
	var d Description
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return nil, &LoadError{Kind: ErrMalformedDescription, Err: err}
	}
	return &d, nil
}

// ReadDescription reads and decodes a description file
func ReadDescription(path string) (*Description, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Kind: ErrUnreadable, Err: err}
	}
	defer f.Close()

	d, err := ParseDescription(f)
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			le.Path = path
		}
		return nil, err
	}
	return d, nil
}

// ResolveImagePath returns the atlas path relative to the description file
func ResolveImagePath(descPath, image string) string {
	if filepath.IsAbs(image) {
		return image
	}
	return filepath.Join(filepath.Dir(descPath), image)
}

// Load reads the description at path, opens its atlas and builds the map
func Load(path string, open AtlasOpener) (*Map, error) {
	desc, err := ReadDescription(path)
	if err != nil {
		return nil, err
	}
	if desc.Image == "" {
		return nil, &LoadError{Path: path, Kind: ErrMissingImage, Err: errors.New("description names no image")}
	}

	imgPath := ResolveImagePath(path, desc.Image)
	atlas, err := open(imgPath)
	if err != nil {
		return nil, &LoadError{Path: path, Kind: ErrMissingImage, Err: fmt.Errorf("open %s: %w", imgPath, err)}
	}

	reg, grid, err := Build(atlas, desc)
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			le.Path = path
			return nil, le
		}
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return &Map{
		Path:        path,
		ImagePath:   imgPath,
		Description: desc,
		Registry:    reg,
		Grid:        grid,
	}, nil
}

// Build turns a loaded atlas and description into a registry and grid.
// Every code used by the grid is checked against the registry before returning.
func Build(atlas Atlas, desc *Description) (*Registry, *LayeredGrid, error) {
	if desc == nil {
		return nil, nil, loadErr(ErrMalformedDescription, "nil description")
	}
	if atlas == nil || desc.Image == "" {
		return nil, nil, loadErr(ErrMissingImage, "no atlas for %q", desc.Image)
	}

	grid, err := buildGrid(desc)
	if err != nil {
		return nil, nil, err
	}
	reg, err := buildRegistry(atlas, desc)
	if err != nil {
		return nil, nil, err
	}
	if err := Validate(reg, grid); err != nil {
		return nil, nil, err
	}
	return reg, grid, nil
}

// Validate checks that every drawable cell resolves. The first dangling code
// found in draw order is reported.
func Validate(reg *Registry, grid *LayeredGrid) error {
	for li, l := range grid.layers {
		for i, code := range l.cells {
			if grid.IsEmpty(li, code) || reg.Has(code) {
				continue
			}
			return &UnknownTileCodeError{Code: code, Layer: li, Row: i / grid.cols, Col: i % grid.cols}
		}
	}
	return nil
}

func (d *Description) layerSpecs() []LayerSpec {
	var specs []LayerSpec
	switch {
	case len(d.Layers) > 0:
		for i, l := range d.Layers {
			name := l.Name
			if name == "" {
				name = "layer" + strconv.Itoa(i)
			}
			specs = append(specs, LayerSpec{Name: name, Cells: l.Cells})
		}
	case d.Low != nil || d.Mid != nil || d.High != nil:
		for _, l := range []struct {
			name  string
			cells [][]int
		}{{"low", d.Low}, {"mid", d.Mid}, {"high", d.High}} {
			if l.cells != nil {
				specs = append(specs, LayerSpec{Name: l.name, Cells: l.cells})
			}
		}
	case d.Map != nil:
		specs = append(specs, LayerSpec{Name: "map", Cells: d.Map})
	}

	for i := range specs {
		specs[i].Sparse = i > 0 || d.SparseBase
	}
	return specs
}

func buildGrid(d *Description) (*LayeredGrid, error) {
	specs := d.layerSpecs()
	if len(specs) == 0 {
		return nil, loadErr(ErrMalformedDescription, "no layers")
	}

	rows := len(specs[0].Cells)
	if rows == 0 || len(specs[0].Cells[0]) == 0 {
		return nil, loadErr(ErrDimensionMismatch, "layer %q is empty", specs[0].Name)
	}
	cols := len(specs[0].Cells[0])

	if d.Width != nil && *d.Width != cols {
		return nil, loadErr(ErrDimensionMismatch, "width %d but layers have %d columns", *d.Width, cols)
	}
	if d.Height != nil && *d.Height != rows {
		return nil, loadErr(ErrDimensionMismatch, "height %d but layers have %d rows", *d.Height, rows)
	}

	grid, err := NewLayeredGrid(rows, cols, specs...)
	if err != nil {
		kind := ErrDimensionMismatch
		if errors.Is(err, ErrMalformedDescription) {
			kind = ErrMalformedDescription
		}
		return nil, &LoadError{Kind: kind, Err: err}
	}
	return grid, nil
}

func buildRegistry(atlas Atlas, d *Description) (*Registry, error) {
	scaleX, scaleY := 1.0, 1.0
	switch d.ClipUnit {
	case "", ClipUnitPixels:
	case ClipUnitCells:
		scaleX, scaleY = DefaultCellSize, DefaultCellSize
		if d.CellSize != nil {
			if d.CellSize.Width <= 0 || d.CellSize.Height <= 0 {
				return nil, loadErr(ErrMalformedDescription, "cell_size %vx%v", d.CellSize.Width, d.CellSize.Height)
			}
			scaleX, scaleY = d.CellSize.Width, d.CellSize.Height
		}
	default:
		return nil, loadErr(ErrMalformedDescription, "unknown clip_unit %q", d.ClipUnit)
	}

	keys := make([]string, 0, len(d.Tiles))
	for k := range d.Tiles {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	bounds := atlas.Bounds()
	reg := NewRegistry(atlas)
	for _, key := range keys {
		code, err := strconv.Atoi(key)
		if err != nil {
			return nil, loadErr(ErrMalformedDescription, "tile key %q is not an integer", key)
		}
		spec := d.Tiles[key]
		clip := Rect{
			X:      spec.Clip.X * scaleX,
			Y:      spec.Clip.Y * scaleY,
			Width:  spec.Clip.Width * scaleX,
			Height: spec.Clip.Height * scaleY,
		}
		if clip.Width <= 0 || clip.Height <= 0 {
			return nil, loadErr(ErrMalformedDescription, "tile %d has empty clip %+v", code, clip)
		}
		if !clip.Image().In(bounds) {
			return nil, loadErr(ErrMalformedDescription, "tile %d clip %v outside atlas %v", code, clip.Image(), bounds)
		}
		reg.Register(code, TileDefinition{
			Clip:   clip,
			Origin: iso.Point{X: spec.Origin.X, Y: spec.Origin.Y},
		})
	}
	return reg, nil
}
