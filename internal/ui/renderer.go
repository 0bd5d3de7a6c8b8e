package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/hailam/chessrules/internal/board"
)

// Theme defines the board colors.
type Theme struct {
	LightSquare    color.RGBA
	DarkSquare     color.RGBA
	SelectedSquare color.RGBA
	TargetColor    color.RGBA
	LastMoveColor  color.RGBA
	CheckColor     color.RGBA
	Background     color.RGBA
}

// DefaultTheme returns the default color theme.
func DefaultTheme() *Theme {
	return &Theme{
		LightSquare:    color.RGBA{240, 217, 181, 255},
		DarkSquare:     color.RGBA{181, 136, 99, 255},
		SelectedSquare: color.RGBA{247, 247, 105, 180},
		TargetColor:    color.RGBA{130, 151, 105, 200},
		LastMoveColor:  color.RGBA{180, 190, 100, 90},
		CheckColor:     color.RGBA{255, 100, 100, 180},
		Background:     color.RGBA{40, 44, 52, 255},
	}
}

// Renderer draws the board and pieces. Coordinates passed in and out are
// logical pixels; UIScale is applied when drawing.
type Renderer struct {
	sprites    *SpriteManager
	theme      *Theme
	boardSize  int
	squareSize int
	flipped    bool
}

// NewRenderer creates a new renderer.
func NewRenderer(boardSize, squareSize int) *Renderer {
	return &Renderer{
		sprites:    NewSpriteManager(squareSize),
		theme:      DefaultTheme(),
		boardSize:  boardSize,
		squareSize: squareSize,
	}
}

// SetFlipped puts Black at the bottom when true.
func (r *Renderer) SetFlipped(flipped bool) {
	r.flipped = flipped
}

// Flipped reports whether Black is at the bottom.
func (r *Renderer) Flipped() bool {
	return r.flipped
}

func (r *Renderer) s(v int) float32 {
	return float32(float64(v) * UIScale)
}

// DrawBoard draws the squares and the file and rank labels.
func (r *Renderer) DrawBoard(screen *ebiten.Image) {
	labels := face(boldSource, 11)
	for sq := board.A1; sq <= board.H8; sq++ {
		x, y := r.SquareToScreen(sq)
		c, ink := r.theme.DarkSquare, r.theme.LightSquare
		if sq.IsLight() {
			c, ink = r.theme.LightSquare, r.theme.DarkSquare
		}
		vector.DrawFilledRect(screen, r.s(x), r.s(y), r.s(r.squareSize), r.s(r.squareSize), c, false)

		if y == r.boardSize-r.squareSize {
			drawText(screen, string(rune('a'+sq.File())), labels,
				float64(x+r.squareSize-10), float64(y+r.squareSize-16), ink)
		}
		if x == 0 {
			drawText(screen, string(rune('1'+sq.Rank())), labels, float64(x+3), float64(y+2), ink)
		}
	}
}

// DrawHighlights marks the last move, the selection and its targets.
func (r *Renderer) DrawHighlights(screen *ebiten.Image, selected board.Square, targets []board.Square, last board.Move, hasLast bool) {
	if hasLast {
		r.highlightSquare(screen, last.From(), r.theme.LastMoveColor)
		r.highlightSquare(screen, last.To(), r.theme.LastMoveColor)
	}
	if selected != board.NoSquare {
		r.highlightSquare(screen, selected, r.theme.SelectedSquare)
	}
	for _, sq := range targets {
		x, y := r.SquareToScreen(sq)
		half := r.s(r.squareSize) / 2
		vector.DrawFilledCircle(screen, r.s(x)+half, r.s(y)+half, half*0.3, r.theme.TargetColor, true)
	}
}

// DrawCheck highlights the king in check.
func (r *Renderer) DrawCheck(screen *ebiten.Image, kingSq board.Square) {
	r.highlightSquare(screen, kingSq, r.theme.CheckColor)
}

func (r *Renderer) highlightSquare(screen *ebiten.Image, sq board.Square, c color.RGBA) {
	if sq == board.NoSquare {
		return
	}
	x, y := r.SquareToScreen(sq)
	vector.DrawFilledRect(screen, r.s(x), r.s(y), r.s(r.squareSize), r.s(r.squareSize), c, false)
}

// DrawPieces draws every piece of grid except the one being dragged.
func (r *Renderer) DrawPieces(screen *ebiten.Image, grid *board.Grid, dragSquare board.Square, anims *AnimationManager) {
	for sq := board.A1; sq <= board.H8; sq++ {
		if sq == dragSquare {
			continue
		}
		p := grid.At(sq)
		if p == board.NoPiece {
			continue
		}
		x, y := r.SquareToScreen(sq)
		dx, _ := anims.ShakeOffset(sq)
		r.sprites.DrawPiece(screen, p, (float64(x)+dx)*UIScale, float64(y)*UIScale, UIScale)
	}
}

// DrawDraggedPiece draws p centered under the cursor.
func (r *Renderer) DrawDraggedPiece(screen *ebiten.Image, p board.Piece, mouseX, mouseY int) {
	half := r.squareSize / 2
	r.sprites.DrawPiece(screen, p, float64(mouseX-half)*UIScale, float64(mouseY-half)*UIScale, UIScale)
}

// SquareToScreen returns the logical top-left corner of sq.
func (r *Renderer) SquareToScreen(sq board.Square) (int, int) {
	file, rank := sq.File(), sq.Rank()
	if r.flipped {
		file, rank = 7-file, 7-rank
	}
	return file * r.squareSize, (7 - rank) * r.squareSize
}

// ScreenToSquare maps a logical point to a square, or NoSquare off the board.
func (r *Renderer) ScreenToSquare(x, y int) board.Square {
	if x < 0 || x >= r.boardSize || y < 0 || y >= r.boardSize {
		return board.NoSquare
	}
	file, rank := x/r.squareSize, 7-y/r.squareSize
	if r.flipped {
		file, rank = 7-file, 7-rank
	}
	return board.NewSquare(file, rank)
}

// SquareSize returns the logical size of one square.
func (r *Renderer) SquareSize() int {
	return r.squareSize
}

// Theme returns the current theme.
func (r *Renderer) Theme() *Theme {
	return r.theme
}

// Sprites returns the sprite manager.
func (r *Renderer) Sprites() *SpriteManager {
	return r.sprites
}
