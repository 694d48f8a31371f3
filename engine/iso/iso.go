// Package iso implements the 2:1 isometric projection between grid space and
// local screen space. Cell spacing is applied by callers, never in here.
package iso

import "math"

// Point is a position in local (pre-camera) screen space
type Point struct {
	X, Y float64
}

// Add returns p+q
func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y}
}

// Sub returns p-q
func (p Point) Sub(q Point) Point {
	return Point{p.X - q.X, p.Y - q.Y}
}

// ToScreen projects grid coordinates onto the isometric plane
func ToScreen(gx, gy int) (sx, sy float64) {
	sx = float64(gx - gy)
	sy = float64(gx+gy) / 2
	return
}

// ToGrid is the inverse of ToScreen. Both components are floored, so points
// inside a unit cell map to its top corner and negative inputs stay consistent.
func ToGrid(sx, sy float64) (gx, gy int) {
	gx = int(math.Floor((2*sy + sx) / 2))
	gy = int(math.Floor((2*sy - sx) / 2))
	return
}

// ToScreenPoint is ToScreen returning a Point
func ToScreenPoint(gx, gy int) Point {
	x, y := ToScreen(gx, gy)
	return Point{x, y}
}

// CellAt returns the (row, col) whose ground diamond contains the local point.
// A cell's draw position is the top-left of its art; the diamond's top vertex
// sits stride units to the right of it.
func CellAt(sx, sy float64, stride int) (row, col int) {
	gx, gy := ToGrid(sx-float64(stride), sy)
	col = floorDiv(gx, stride)
	row = floorDiv(gy, stride)
	return
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
