package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Drawer executes frames against an ebiten screen using one shared atlas
type Drawer struct {
	atlas *ebiten.Image
	cache map[int]*ebiten.Image // sub-image per tile code
}

// NewDrawer creates a drawer over atlas
func NewDrawer(atlas *ebiten.Image) *Drawer {
	return &Drawer{
		atlas: atlas,
		cache: make(map[int]*ebiten.Image),
	}
}

func (d *Drawer) tileImage(cmd DrawCommand) *ebiten.Image {
	if img, ok := d.cache[cmd.Code]; ok {
		return img
	}
	img := d.atlas.SubImage(cmd.Clip.Image()).(*ebiten.Image)
	d.cache[cmd.Code] = img
	return img
}

// Draw clears screen and paints every command in order
func (d *Drawer) Draw(screen *ebiten.Image, f *Frame) {
	screen.Fill(f.Background)

	for _, cmd := range f.Commands {
		dest := cmd.Dest()
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(dest.X, dest.Y)
		op.GeoM.Concat(f.Transform)
		screen.DrawImage(d.tileImage(cmd), op)
	}
}

// HoverOutline returns the screen-space corners (top, right, bottom, left) of
// the ground diamond for a cell
func HoverOutline(f *Frame, row, col, stride int) [4][2]float32 {
	s := float64(stride)
	base := cellPosition(row, col, stride)
	local := [4][2]float64{
		{base.X + s, base.Y},
		{base.X + 2*s, base.Y + s/2},
		{base.X + s, base.Y + s},
		{base.X, base.Y + s/2},
	}
	var out [4][2]float32
	for i, p := range local {
		x, y := f.Transform.Apply(p[0], p[1])
		out[i] = [2]float32{float32(x), float32(y)}
	}
	return out
}

// DrawHover outlines the ground diamond of a cell
func DrawHover(screen *ebiten.Image, f *Frame, row, col, stride int) {
	pts := HoverOutline(f, row, col, stride)
	hoverColor := color.RGBA{255, 255, 0, 160}
	for i := range pts {
		a, b := pts[i], pts[(i+1)%len(pts)]
		vector.StrokeLine(screen, a[0], a[1], b[0], b[1], 2, hoverColor, false)
	}
}
