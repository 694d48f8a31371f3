package render

import (
	"errors"
	"image"
	"reflect"
	"testing"

	"github.com/1siamBot/iso-tiles/engine/iso"
	"github.com/1siamBot/iso-tiles/engine/maplib"
)

var outsideMap = [][]int{
	{3, 1, 1, 1, 1, 4},
	{2, 0, 0, 0, 0, 2},
	{2, 0, 0, 0, 0, 2},
	{2, 0, 0, 0, 0, 2},
	{2, 0, 0, 0, 0, 2},
	{6, 1, 1, 1, 1, 5},
}

func grid(rows, cols, code int) [][]int {
	cells := make([][]int, rows)
	for r := range cells {
		cells[r] = make([]int, cols)
		for c := range cells[r] {
			cells[r][c] = code
		}
	}
	return cells
}

func outsideScene(t *testing.T) (*maplib.Registry, *maplib.LayeredGrid) {
	t.Helper()
	reg := maplib.NewRegistry(image.NewRGBA(image.Rect(0, 0, 1024, 1024)))
	for code := 0; code <= 6; code++ {
		reg.Register(code, maplib.TileDefinition{Clip: maplib.Rect{X: float64(code) * 64, Width: 64, Height: 64}})
	}
	g, err := maplib.NewLayeredGrid(6, 6, maplib.LayerSpec{Name: "map", Cells: outsideMap})
	if err != nil {
		t.Fatal(err)
	}
	return reg, g
}

func forestScene(t *testing.T) (*maplib.Registry, *maplib.LayeredGrid) {
	t.Helper()
	reg := maplib.NewRegistry(image.NewRGBA(image.Rect(0, 0, 1024, 1024)))
	reg.Register(1, maplib.TileDefinition{Clip: maplib.Rect{Width: 64, Height: 64}})
	reg.Register(7, maplib.TileDefinition{Clip: maplib.Rect{X: 64, Width: 64, Height: 64}})
	reg.Register(9, maplib.TileDefinition{
		Clip:   maplib.Rect{X: 128, Width: 64, Height: 128},
		Origin: iso.Point{X: 0, Y: 64},
	})

	low, mid, high := grid(10, 10, 1), grid(10, 10, 0), grid(10, 10, 0)
	low[3][4] = 7
	mid[3][4] = 0
	mid[2][2] = 9
	high[2][2] = 7

	g, err := maplib.NewLayeredGrid(10, 10,
		maplib.LayerSpec{Name: "low", Cells: low},
		maplib.LayerSpec{Name: "mid", Sparse: true, Cells: mid},
		maplib.LayerSpec{Name: "high", Sparse: true, Cells: high},
	)
	if err != nil {
		t.Fatal(err)
	}
	return reg, g
}

func TestRenderSingleLayer(t *testing.T) {
	reg, g := outsideScene(t)
	r := NewIsoRenderer(32, DefaultBackground)
	f, err := r.Render(NewCamera(640, 480), reg, g)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if len(f.Commands) != 36 {
		t.Fatalf("got %d commands, want 36", len(f.Commands))
	}
	for i, cmd := range f.Commands {
		row, col := i/6, i%6
		if cmd.Row != row || cmd.Col != col || cmd.Layer != 0 {
			t.Fatalf("command %d at layer %d %d,%d; want row-major 0 %d,%d", i, cmd.Layer, cmd.Row, cmd.Col, row, col)
		}
		if cmd.Code != outsideMap[row][col] {
			t.Errorf("command %d code %d, want %d", i, cmd.Code, outsideMap[row][col])
		}
		x, y := iso.ToScreen(col*32, row*32)
		if cmd.Position != (iso.Point{X: x, Y: y}) {
			t.Errorf("cell %d,%d at %+v, want (%v, %v)", row, col, cmd.Position, x, y)
		}
		if cmd.Dest() != cmd.Position {
			t.Errorf("cell %d,%d has anchor offset %+v", row, col, cmd.Origin)
		}
	}
}

func TestRenderLayersAndEmptyCells(t *testing.T) {
	reg, g := forestScene(t)
	f, err := NewIsoRenderer(32, DefaultBackground).Render(NewCamera(640, 480), reg, g)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	// 100 ground tiles, a tree on mid at 2,2 and a log on high at 2,2
	if len(f.Commands) != 102 {
		t.Fatalf("got %d commands, want 102", len(f.Commands))
	}

	var at34, at22 []DrawCommand
	for _, cmd := range f.Commands {
		switch {
		case cmd.Row == 3 && cmd.Col == 4:
			at34 = append(at34, cmd)
		case cmd.Row == 2 && cmd.Col == 2:
			at22 = append(at22, cmd)
		}
	}
	if len(at34) != 1 || at34[0].Layer != 0 || at34[0].Code != 7 {
		t.Errorf("cell 3,4 commands = %+v, want only low code 7", at34)
	}
	if len(at22) != 3 {
		t.Fatalf("cell 2,2 commands = %+v", at22)
	}
	for i, cmd := range at22 {
		if cmd.Layer != i {
			t.Errorf("cell 2,2 command %d is layer %d; layers must go bottom to top", i, cmd.Layer)
		}
	}
	tree := at22[1]
	if want := tree.Position.Sub(iso.Point{X: 0, Y: 64}); tree.Dest() != want {
		t.Errorf("tree dest %+v, want %+v", tree.Dest(), want)
	}
}

func TestRenderIsDeterministic(t *testing.T) {
	reg, g := forestScene(t)
	r := NewIsoRenderer(32, DefaultBackground)
	cam := NewCamera(640, 480)
	a, err := r.Render(cam, reg, g)
	if err != nil {
		t.Fatal(err)
	}
	b, err := r.Render(cam, reg, g)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("two renders of the same scene differ")
	}
}

func TestRenderBackRowsFirst(t *testing.T) {
	reg, g := outsideScene(t)
	f, err := NewIsoRenderer(32, DefaultBackground).Render(NewCamera(640, 480), reg, g)
	if err != nil {
		t.Fatal(err)
	}
	// a cell is never painted after one that sits in front of it
	for i := 1; i < len(f.Commands); i++ {
		prev, cur := f.Commands[i-1], f.Commands[i]
		if cur.Row < prev.Row {
			t.Fatalf("row %d painted after row %d", cur.Row, prev.Row)
		}
	}
}

func TestRenderUnknownCodeAbortsFrame(t *testing.T) {
	reg := maplib.NewRegistry(image.NewRGBA(image.Rect(0, 0, 64, 64)))
	reg.Register(1, maplib.TileDefinition{Clip: maplib.Rect{Width: 64, Height: 64}})
	g, err := maplib.NewLayeredGrid(2, 2, maplib.LayerSpec{Cells: [][]int{{1, 1}, {1, 8}}})
	if err != nil {
		t.Fatal(err)
	}

	f, err := NewIsoRenderer(32, DefaultBackground).Render(NewCamera(640, 480), reg, g)
	if f != nil {
		t.Error("partial frame returned")
	}
	var ue *maplib.UnknownTileCodeError
	if !errors.As(err, &ue) || ue.Code != 8 || ue.Row != 1 || ue.Col != 1 {
		t.Errorf("err = %v, want unknown code 8 at 1,1", err)
	}
}

func TestResizeOnlyMovesCamera(t *testing.T) {
	reg, g := outsideScene(t)
	r := NewIsoRenderer(32, DefaultBackground)
	cam := NewCamera(640, 480)
	cam.X, cam.Y = 32, 48

	before, err := r.Render(cam, reg, g)
	if err != nil {
		t.Fatal(err)
	}
	if !cam.Resize(800, 600) {
		t.Fatal("Resize reported no change")
	}
	after, err := r.Render(cam, reg, g)
	if err != nil {
		t.Fatal(err)
	}

	if after.ViewportW != 800 || after.ViewportH != 600 {
		t.Errorf("viewport %dx%d, want 800x600", after.ViewportW, after.ViewportH)
	}
	if !reflect.DeepEqual(before.Commands, after.Commands) {
		t.Error("resize changed grid-to-screen positions")
	}
	x, y := after.Transform.Apply(32, 48)
	if x != 400 || y != 300 {
		t.Errorf("camera position maps to (%v, %v), want viewport centre (400, 300)", x, y)
	}
}

func TestNewIsoRendererDefaultsStride(t *testing.T) {
	if r := NewIsoRenderer(0, DefaultBackground); r.Stride != DefaultStride {
		t.Errorf("Stride = %d, want %d", r.Stride, DefaultStride)
	}
}

func TestRendererCellAtInvertsPositions(t *testing.T) {
	r := NewIsoRenderer(32, DefaultBackground)
	for row := 0; row < 6; row++ {
		for col := 0; col < 6; col++ {
			p := cellPosition(row, col, r.Stride)
			gotRow, gotCol := r.CellAt(p.X+32, p.Y+16)
			if gotRow != row || gotCol != col {
				t.Errorf("CellAt(centre of %d,%d) = %d,%d", row, col, gotRow, gotCol)
			}
		}
	}
}
