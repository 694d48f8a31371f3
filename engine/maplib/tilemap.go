package maplib

import "fmt"

// EmptyCode marks a cell with nothing to draw on a sparse layer
const EmptyCode = 0

// LayerSpec describes one layer handed to NewLayeredGrid
type LayerSpec struct {
	Name   string
	Sparse bool    // EmptyCode cells are skipped
	Cells  [][]int // [row][col]
}

// Layer is one draw-priority slice of the grid
type Layer struct {
	Name   string
	Sparse bool
	cells  []int // row-major
}

// LayeredGrid holds same-shaped layers of tile codes, bottom layer first
type LayeredGrid struct {
	rows   int
	cols   int
	layers []Layer
}

// NewLayeredGrid copies the given layers into a grid of rows x cols.
// Every layer must have exactly that shape.
func NewLayeredGrid(rows, cols int, specs ...LayerSpec) (*LayeredGrid, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: grid %dx%d", ErrDimensionMismatch, rows, cols)
	}
	if len(specs) == 0 {
		return nil, fmt.Errorf("%w: no layers", ErrMalformedDescription)
	}

	g := &LayeredGrid{
		rows:   rows,
		cols:   cols,
		layers: make([]Layer, 0, len(specs)),
	}
	for i, spec := range specs {
		if len(spec.Cells) != rows {
			return nil, fmt.Errorf("%w: layer %d (%q) has %d rows, want %d",
				ErrDimensionMismatch, i, spec.Name, len(spec.Cells), rows)
		}
		cells := make([]int, 0, rows*cols)
		for r, row := range spec.Cells {
			if len(row) != cols {
				return nil, fmt.Errorf("%w: layer %d (%q) row %d has %d columns, want %d",
					ErrDimensionMismatch, i, spec.Name, r, len(row), cols)
			}
			cells = append(cells, row...)
		}
		g.layers = append(g.layers, Layer{Name: spec.Name, Sparse: spec.Sparse, cells: cells})
	}
	return g, nil
}

// Rows returns the grid height in cells
func (g *LayeredGrid) Rows() int { return g.rows }

// Cols returns the grid width in cells
func (g *LayeredGrid) Cols() int { return g.cols }

// LayerCount returns the number of layers
func (g *LayeredGrid) LayerCount() int { return len(g.layers) }

// Layer returns layer metadata by index
func (g *LayeredGrid) Layer(i int) (Layer, error) {
	if i < 0 || i >= len(g.layers) {
		return Layer{}, fmt.Errorf("%w: layer %d of %d", ErrOutOfBounds, i, len(g.layers))
	}
	return g.layers[i], nil
}

// InBounds checks if coordinates are within grid bounds
func (g *LayeredGrid) InBounds(row, col int) bool {
	return row >= 0 && col >= 0 && row < g.rows && col < g.cols
}

// Cell returns the tile code at (layer, row, col)
func (g *LayeredGrid) Cell(layer, row, col int) (int, error) {
	if layer < 0 || layer >= len(g.layers) || !g.InBounds(row, col) {
		return 0, fmt.Errorf("%w: layer %d row %d col %d (grid %d layers %dx%d)",
			ErrOutOfBounds, layer, row, col, len(g.layers), g.rows, g.cols)
	}
	return g.layers[layer].cells[row*g.cols+col], nil
}

// IsEmpty reports whether code means "draw nothing" on the given layer
func (g *LayeredGrid) IsEmpty(layer, code int) bool {
	if layer < 0 || layer >= len(g.layers) {
		return false
	}
	return g.layers[layer].Sparse && code == EmptyCode
}

// Codes returns every distinct drawable code in first-seen order
// (layers bottom to top, row-major within a layer)
func (g *LayeredGrid) Codes() []int {
	seen := make(map[int]bool)
	var codes []int
	for li, l := range g.layers {
		for _, c := range l.cells {
			if g.IsEmpty(li, c) || seen[c] {
				continue
			}
			seen[c] = true
			codes = append(codes, c)
		}
	}
	return codes
}
