package ui

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/hailam/chessdrop/internal/scene"
)

// InputHandler samples mouse state once per frame in logical (unscaled)
// coordinates.
type InputHandler struct {
	x, y             float64
	leftPressed      bool
	leftJustPressed  bool
	leftJustReleased bool
}

// NewInputHandler creates an input handler.
func NewInputHandler() *InputHandler {
	return &InputHandler{}
}

// Update samples the devices. Call it once per frame.
func (ih *InputHandler) Update() {
	rawX, rawY := ebiten.CursorPosition()
	scale := max(UIScale, 1.0)
	ih.x = float64(rawX) / scale
	ih.y = float64(rawY) / scale

	ih.leftJustPressed = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	ih.leftJustReleased = inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft)
	ih.leftPressed = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
}

// Point returns the pointer position for the board controller.
func (ih *InputHandler) Point() scene.Point {
	return scene.Point{X: ih.x, Y: ih.y}
}

// MousePosition returns the pointer position rounded down to whole pixels.
func (ih *InputHandler) MousePosition() (int, int) {
	return int(ih.x), int(ih.y)
}

// IsLeftJustPressed reports a press this frame.
func (ih *InputHandler) IsLeftJustPressed() bool {
	return ih.leftJustPressed
}

// IsLeftJustReleased reports a release this frame.
func (ih *InputHandler) IsLeftJustReleased() bool {
	return ih.leftJustReleased
}

// IsLeftPressed reports whether the button is held.
func (ih *InputHandler) IsLeftPressed() bool {
	return ih.leftPressed
}

// IsKeyJustPressed returns true if key went down this frame.
func IsKeyJustPressed(key ebiten.Key) bool {
	return inpututil.IsKeyJustPressed(key)
}
