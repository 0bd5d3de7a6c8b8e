package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/hailam/chessrules/internal/board"
)

var promotionChoices = [...]board.PieceType{board.Queen, board.Knight, board.Rook, board.Bishop}

// PromotionPicker asks which piece a pawn promotes to. It opens as a
// column of choices over the promotion square, growing toward the center.
type PromotionPicker struct {
	from, to board.Square
	color    board.Color
	visible  bool
}

// Show opens the picker for the move from-to by side c.
func (pp *PromotionPicker) Show(from, to board.Square, c board.Color) {
	pp.from, pp.to, pp.color, pp.visible = from, to, c, true
}

// Hide closes the picker.
func (pp *PromotionPicker) Hide() {
	pp.visible = false
}

// IsVisible reports whether the picker is open.
func (pp *PromotionPicker) IsVisible() bool {
	return pp.visible
}

// Move returns the squares of the pending promotion.
func (pp *PromotionPicker) Move() (from, to board.Square) {
	return pp.from, pp.to
}

// slot returns the logical top-left of choice i.
func (pp *PromotionPicker) slot(r *Renderer, i int) (int, int) {
	x, y := r.SquareToScreen(pp.to)
	size := r.SquareSize()
	if y == 0 {
		return x, i * size
	}
	return x, y - i*size
}

// HandleInput returns the chosen piece, or ok=false while undecided.
// A click outside the choices cancels with NoPieceType.
func (pp *PromotionPicker) HandleInput(input *InputHandler, r *Renderer) (choice board.PieceType, ok bool) {
	if input.KeyJustPressed(ebiten.KeyEscape) {
		pp.Hide()
		return board.NoPieceType, true
	}
	if !input.IsLeftJustPressed() {
		return board.NoPieceType, false
	}
	size := r.SquareSize()
	for i, pt := range promotionChoices {
		x, y := pp.slot(r, i)
		if input.IsInBounds(x, y, size, size) {
			pp.Hide()
			return pt, true
		}
	}
	pp.Hide()
	return board.NoPieceType, true
}

// Draw dims the board and draws the choices.
func (pp *PromotionPicker) Draw(screen *ebiten.Image, r *Renderer) {
	if !pp.visible {
		return
	}
	vector.DrawFilledRect(screen, 0, 0, r.s(BoardSize), r.s(BoardSize), color.RGBA{0, 0, 0, 110}, false)
	size := r.SquareSize()
	for i, pt := range promotionChoices {
		x, y := pp.slot(r, i)
		vector.DrawFilledRect(screen, r.s(x), r.s(y), r.s(size), r.s(size), color.RGBA{235, 235, 240, 255}, false)
		vector.StrokeRect(screen, r.s(x), r.s(y), r.s(size), r.s(size), 2, accentColor, false)
		r.sprites.DrawPiece(screen, board.NewPiece(pt, pp.color), float64(x)*UIScale, float64(y)*UIScale, UIScale)
	}
}
