package render

import (
	"math"

	"github.com/gdamore/tcell/v2"
)

const glyphs = "0123456789abcdefghijklmnopqrstuvwxyz"

var layerColors = []tcell.Color{
	tcell.ColorGreen,
	tcell.ColorYellow,
	tcell.ColorWhite,
	tcell.ColorAqua,
	tcell.ColorFuchsia,
}

// TermPreview plots a frame onto a terminal, one glyph per draw command.
// Commands are placed by their projected cell position, so anchors are
// ignored and later commands overwrite earlier ones the same way tiles do.
type TermPreview struct {
	CellW float64 // local units per terminal column
	CellH float64 // local units per terminal row
}

// NewTermPreview sizes terminal cells for the given stride
func NewTermPreview(stride int) TermPreview {
	s := float64(stride)
	return TermPreview{CellW: s / 2, CellH: s / 2}
}

// Glyph returns the rune used for a tile code
func Glyph(code int) rune {
	n := len(glyphs)
	return rune(glyphs[((code%n)+n)%n])
}

// Place returns the terminal cell of every command, relative to the
// top-left-most command position
func (p TermPreview) Place(f *Frame) [][2]int {
	if len(f.Commands) == 0 {
		return nil
	}
	minX, minY := math.Inf(1), math.Inf(1)
	for _, c := range f.Commands {
		minX = math.Min(minX, c.Position.X)
		minY = math.Min(minY, c.Position.Y)
	}
	out := make([][2]int, len(f.Commands))
	for i, c := range f.Commands {
		out[i] = [2]int{
			int(math.Floor((c.Position.X - minX) / p.CellW)),
			int(math.Floor((c.Position.Y - minY) / p.CellH)),
		}
	}
	return out
}

// Plot clears s and draws f; returns how many commands landed on screen
func (p TermPreview) Plot(s tcell.Screen, f *Frame) int {
	s.Clear()
	w, h := s.Size()
	drawn := 0
	for i, pos := range p.Place(f) {
		x, y := pos[0], pos[1]
		if x < 0 || y < 0 || x >= w || y >= h {
			continue
		}
		cmd := f.Commands[i]
		style := tcell.StyleDefault.Foreground(layerColors[cmd.Layer%len(layerColors)])
		s.SetContent(x, y, Glyph(cmd.Code), nil, style)
		drawn++
	}
	s.Show()
	return drawn
}
