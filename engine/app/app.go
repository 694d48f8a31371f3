// Package app wires a loaded map, camera and renderer into an ebiten game.
package app

import (
	"fmt"
	"image"

	"github.com/1siamBot/iso-tiles/engine/config"
	"github.com/1siamBot/iso-tiles/engine/input"
	"github.com/1siamBot/iso-tiles/engine/logger"
	"github.com/1siamBot/iso-tiles/engine/maplib"
	"github.com/1siamBot/iso-tiles/engine/render"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/sirupsen/logrus"
)

// App is the top-level viewer state. It owns the map for the whole run;
// nothing mutates the registry or grid after New.
type App struct {
	cfg      config.Config
	m        *maplib.Map
	camera   *render.Camera
	renderer *render.IsoRenderer
	input    *input.InputState
	drawer   *render.Drawer

	hoverRow, hoverCol int
	hoverOK            bool
	showHover          bool
	showHUD            bool

	drawErr error
}

// LoadMap loads and validates the map at path, logging the outcome
func LoadMap(path string, open maplib.AtlasOpener) (*maplib.Map, error) {
	m, err := maplib.Load(path, open)
	if err != nil {
		return nil, err
	}
	logger.Log.WithFields(logrus.Fields{
		"map":    m.Path,
		"image":  m.ImagePath,
		"rows":   m.Grid.Rows(),
		"cols":   m.Grid.Cols(),
		"layers": m.Grid.LayerCount(),
		"tiles":  m.Registry.Len(),
	}).Info("map loaded")
	return m, nil
}

// New creates the viewer for a loaded map
func New(cfg config.Config, m *maplib.Map) *App {
	cam := render.NewCamera(cfg.WindowWidth, cfg.WindowHeight)
	cam.X, cam.Y = cfg.CameraX, cfg.CameraY
	cam.SetZoom(cfg.Zoom)

	return &App{
		cfg:       cfg,
		m:         m,
		camera:    cam,
		renderer:  render.NewIsoRenderer(cfg.Stride, cfg.Background),
		input:     input.NewInputState(),
		showHover: cfg.ShowHover,
	}
}

// Camera returns the viewer camera
func (a *App) Camera() *render.Camera {
	return a.camera
}

// Hover returns the cell under the cursor, if it is on the grid
func (a *App) Hover() (row, col int, ok bool) {
	return a.hoverRow, a.hoverCol, a.hoverOK
}

// OnViewportResized updates the camera viewport used by the next frame
func (a *App) OnViewportResized(w, h int) {
	if !a.camera.Resize(w, h) {
		return
	}
	logger.Log.WithFields(logrus.Fields{"width": w, "height": h}).Debug("viewport resized")
}

// Frame renders the current frame
func (a *App) Frame() (*render.Frame, error) {
	return a.renderer.Render(a.camera, a.m.Registry, a.m.Grid)
}

// Update implements ebiten.Game
func (a *App) Update() error {
	a.input.Update()
	return a.step(a.input, ebiten.TPS())
}

func (a *App) step(in *input.InputState, tps int) error {
	if a.drawErr != nil {
		return a.drawErr
	}
	if a.cfg.QuitOnEscape && in.IsKeyJustPressed(ebiten.KeyEscape) {
		logger.Log.Info("quit requested")
		return ebiten.Termination
	}
	if in.IsKeyJustPressed(ebiten.KeyH) {
		a.showHover = !a.showHover
	}
	if in.IsKeyJustPressed(ebiten.KeyF1) {
		a.showHUD = !a.showHUD
	}

	if tps <= 0 {
		tps = ebiten.DefaultTPS
	}
	speed := a.camera.Speed / float64(tps)
	if dx, dy := in.PanDirection(); dx != 0 || dy != 0 {
		a.camera.Pan(dx*speed, dy*speed)
	}
	if in.ScrollY != 0 {
		a.camera.ZoomAt(in.ScrollY*0.1, in.MouseX, in.MouseY)
	}
	if in.MiddlePressed {
		a.camera.Pan(float64(-in.MouseDX), float64(-in.MouseDY))
	}

	lx, ly := a.camera.ScreenToLocal(in.MouseX, in.MouseY)
	a.hoverRow, a.hoverCol = a.renderer.CellAt(lx, ly)
	a.hoverOK = a.m.Grid.InBounds(a.hoverRow, a.hoverCol)
	return nil
}

func (a *App) atlasDrawer() *render.Drawer {
	if a.drawer != nil {
		return a.drawer
	}
	var atlas *ebiten.Image
	switch img := a.m.Registry.Atlas().(type) {
	case *ebiten.Image:
		atlas = img
	case image.Image:
		atlas = ebiten.NewImageFromImage(img)
	}
	a.drawer = render.NewDrawer(atlas)
	return a.drawer
}

// Draw implements ebiten.Game
func (a *App) Draw(screen *ebiten.Image) {
	f, err := a.Frame()
	if err != nil {
		// surfaced by the next Update
		logger.Log.WithError(err).Error("render failed")
		a.drawErr = err
		return
	}
	a.atlasDrawer().Draw(screen, f)

	if a.showHover && a.hoverOK {
		render.DrawHover(screen, f, a.hoverRow, a.hoverCol, a.renderer.Stride)
	}
	if a.showHUD {
		ebitenutil.DebugPrint(screen, a.hud(len(f.Commands)))
	}
}

func (a *App) hud(commands int) string {
	cell := "-"
	if a.hoverOK {
		cell = fmt.Sprintf("(%d, %d)", a.hoverRow, a.hoverCol)
		for l := 0; l < a.m.Grid.LayerCount(); l++ {
			code, _ := a.m.Grid.Cell(l, a.hoverRow, a.hoverCol)
			cell += fmt.Sprintf(" %d", code)
		}
	}
	return fmt.Sprintf("FPS: %.0f | Draws: %d | Zoom: %.2fx\nCell: %s\n[WASD] Pan [Scroll] Zoom [H] Hover [F1] HUD",
		ebiten.ActualFPS(), commands, a.camera.Zoom, cell)
}

// Layout implements ebiten.Game. The outside size is used as-is so a window
// resize becomes a viewport resize.
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	a.OnViewportResized(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}
