package input

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// watchedKeys are polled every frame
var watchedKeys = []ebiten.Key{
	ebiten.KeyW, ebiten.KeyA, ebiten.KeyS, ebiten.KeyD,
	ebiten.KeyUp, ebiten.KeyDown, ebiten.KeyLeft, ebiten.KeyRight,
	ebiten.KeyEscape, ebiten.KeyH, ebiten.KeyF1,
}

// Snapshot is the raw device state for one frame
type Snapshot struct {
	MouseX, MouseY int
	ScrollY        float64
	MiddlePressed  bool
	Pressed        map[ebiten.Key]bool
	JustPressed    map[ebiten.Key]bool
}

// InputState tracks mouse and keyboard state per frame
type InputState struct {
	MouseX, MouseY   int
	MouseDX, MouseDY int // delta since last frame
	ScrollY          float64
	MiddlePressed    bool

	pressed     map[ebiten.Key]bool
	justPressed map[ebiten.Key]bool
	seen        bool
}

func NewInputState() *InputState {
	return &InputState{
		pressed:     make(map[ebiten.Key]bool),
		justPressed: make(map[ebiten.Key]bool),
	}
}

// Update should be called every frame
func (s *InputState) Update() {
	snap := Snapshot{
		Pressed:       make(map[ebiten.Key]bool, len(watchedKeys)),
		JustPressed:   make(map[ebiten.Key]bool, len(watchedKeys)),
		MiddlePressed: ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle),
	}
	snap.MouseX, snap.MouseY = ebiten.CursorPosition()
	_, snap.ScrollY = ebiten.Wheel()
	for _, k := range watchedKeys {
		snap.Pressed[k] = ebiten.IsKeyPressed(k)
		snap.JustPressed[k] = inpututil.IsKeyJustPressed(k)
	}
	s.Apply(snap)
}

// Apply folds one frame of device state into s
func (s *InputState) Apply(snap Snapshot) {
	if s.seen {
		s.MouseDX = snap.MouseX - s.MouseX
		s.MouseDY = snap.MouseY - s.MouseY
	}
	s.seen = true
	s.MouseX, s.MouseY = snap.MouseX, snap.MouseY
	s.ScrollY = snap.ScrollY
	s.MiddlePressed = snap.MiddlePressed

	clear(s.pressed)
	clear(s.justPressed)
	for k, v := range snap.Pressed {
		s.pressed[k] = v
	}
	for k, v := range snap.JustPressed {
		s.justPressed[k] = v
	}
}

// IsKeyPressed reports whether key is held this frame
func (s *InputState) IsKeyPressed(key ebiten.Key) bool {
	return s.pressed[key]
}

// IsKeyJustPressed returns true if key was just pressed this frame
func (s *InputState) IsKeyJustPressed(key ebiten.Key) bool {
	return s.justPressed[key]
}

// PanDirection returns the WASD/arrow direction as -1, 0 or 1 per axis
func (s *InputState) PanDirection() (dx, dy float64) {
	if s.pressed[ebiten.KeyW] || s.pressed[ebiten.KeyUp] {
		dy--
	}
	if s.pressed[ebiten.KeyS] || s.pressed[ebiten.KeyDown] {
		dy++
	}
	if s.pressed[ebiten.KeyA] || s.pressed[ebiten.KeyLeft] {
		dx--
	}
	if s.pressed[ebiten.KeyD] || s.pressed[ebiten.KeyRight] {
		dx++
	}
	return
}
