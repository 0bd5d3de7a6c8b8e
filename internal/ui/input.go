package ui

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// InputHandler samples mouse and keyboard state once per frame.
type InputHandler struct {
	mouseX, mouseY   int // logical, unscaled
	leftPressed      bool
	leftJustPressed  bool
	leftJustReleased bool
	keys             []ebiten.Key
}

// NewInputHandler creates a new input handler.
func NewInputHandler() *InputHandler {
	return &InputHandler{}
}

// Update reads this frame's input. Call it once at the start of Game.Update.
func (ih *InputHandler) Update() {
	rawX, rawY := ebiten.CursorPosition()
	scale := max(UIScale, 1.0)
	ih.mouseX = int(float64(rawX) / scale)
	ih.mouseY = int(float64(rawY) / scale)

	ih.leftJustPressed = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	ih.leftJustReleased = inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft)
	ih.leftPressed = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	ih.keys = inpututil.AppendJustPressedKeys(ih.keys[:0])
}

// MousePosition returns the cursor in logical coordinates.
func (ih *InputHandler) MousePosition() (int, int) {
	return ih.mouseX, ih.mouseY
}

func (ih *InputHandler) IsLeftJustPressed() bool  { return ih.leftJustPressed }
func (ih *InputHandler) IsLeftJustReleased() bool { return ih.leftJustReleased }
func (ih *InputHandler) IsLeftPressed() bool      { return ih.leftPressed }

// KeyJustPressed reports whether key went down this frame.
func (ih *InputHandler) KeyJustPressed(key ebiten.Key) bool {
	for _, k := range ih.keys {
		if k == key {
			return true
		}
	}
	return false
}

// IsInBounds reports whether the cursor is inside the rectangle.
func (ih *InputHandler) IsInBounds(x, y, w, h int) bool {
	return ih.mouseX >= x && ih.mouseX < x+w && ih.mouseY >= y && ih.mouseY < y+h
}

// ClickedInBounds reports a press inside the rectangle this frame.
func (ih *InputHandler) ClickedInBounds(x, y, w, h int) bool {
	return ih.leftJustPressed && ih.IsInBounds(x, y, w, h)
}
