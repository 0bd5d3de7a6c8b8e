// Package ui implements the chess board window using Ebitengine.
package ui

import (
	"fmt"
	"image"
	"log"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	"github.com/hailam/chessrules/internal/board"
)

// pieceShapes holds the body of each piece drawn on a 45x45 canvas.
var pieceShapes = [...]string{
	board.Pawn: `<circle cx="22.5" cy="14" r="5.5"/>
<path d="M18 21 L27 21 L29.5 33 L15.5 33 Z"/>
<path d="M11 39 L34 39 L34 34 Q22.5 31 11 34 Z"/>`,
	board.Knight: `<path d="M14 39 L33 39 L33 35 L31 35 C31 27 31 17 24 11 L22 8 L20 11 C15 13 11 19 10 25 L13 27 L17 23 L20 23 L15 35 L14 35 Z"/>
<circle cx="19" cy="16" r="1.3" fill="%[2]s" stroke="none"/>`,
	board.Bishop: `<circle cx="22.5" cy="8" r="2.5"/>
<path d="M22.5 11 C15 16 14 24 17 30 L28 30 C31 24 30 16 22.5 11 Z"/>
<path d="M22.5 16 L22.5 24 M18.5 20 L26.5 20" fill="none" stroke="%[2]s"/>
<path d="M10 39 L35 39 L35 35 Q22.5 31 10 35 Z"/>`,
	board.Rook: `<path d="M12 9 L16 9 L16 12 L20 12 L20 9 L25 9 L25 12 L29 12 L29 9 L33 9 L33 15 L12 15 Z"/>
<path d="M15 15 L30 15 L29 32 L16 32 Z"/>
<path d="M11 39 L34 39 L34 33 L11 33 Z"/>`,
	board.Queen: `<path d="M9 16 L14 30 L31 30 L36 16 L29 25 L27 11 L22.5 24 L18 11 L16 25 Z"/>
<circle cx="9" cy="14" r="2"/><circle cx="18" cy="9.5" r="2"/><circle cx="27" cy="9.5" r="2"/><circle cx="36" cy="14" r="2"/>
<path d="M12 39 L33 39 L33 34 Q22.5 30 12 34 Z"/>`,
	board.King: `<path d="M22.5 4 L22.5 11 M19 7.5 L26 7.5" fill="none"/>
<path d="M22.5 13 C19 13 18 17 22.5 23 C27 17 26 13 22.5 13 Z"/>
<path d="M12 31 C6 24 12 16 18 20 L22.5 24 L27 20 C33 16 39 24 33 31 Z"/>
<path d="M11 39 L34 39 L34 33 Q22.5 29 11 33 Z"/>`,
}

// pieceSVG returns the SVG document for p.
func pieceSVG(p board.Piece) string {
	fill, detail := "#f8f8f8", "#1a1a1a"
	if p.Color() == board.Black {
		fill, detail = "#1a1a1a", "#f8f8f8"
	}
	body := pieceShapes[p.Type()]
	if strings.Contains(body, "%[2]s") {
		body = fmt.Sprintf(body, fill, detail)
	}
	return `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 45 45" width="45" height="45">` +
		`<g fill="` + fill + `" stroke="#1a1a1a" stroke-width="1.5" stroke-linejoin="round" stroke-linecap="round">` +
		body + `</g></svg>`
}

// SpriteManager rasterizes the piece set once and draws it scaled.
type SpriteManager struct {
	pieces      [board.NoPiece]*ebiten.Image
	size        int
	renderScale float64
}

// NewSpriteManager creates sprites for squares of the given size.
func NewSpriteManager(size int) *SpriteManager {
	sm := &SpriteManager{
		size:        size,
		renderScale: 3.0,
	}
	sm.loadPieces()
	return sm
}

func (sm *SpriteManager) loadPieces() {
	renderSize := int(float64(sm.size) * sm.renderScale)

	for p := board.Piece(0); p < board.NoPiece; p++ {
		icon, err := oksvg.ReadIconStream(strings.NewReader(pieceSVG(p)))
		if err != nil {
			log.Printf("[UI] failed to parse sprite %s: %v", p, err)
			continue
		}
		icon.SetTarget(0, 0, float64(renderSize), float64(renderSize))

		rgba := image.NewRGBA(image.Rect(0, 0, renderSize, renderSize))
		scanner := rasterx.NewScannerGV(renderSize, renderSize, rgba, rgba.Bounds())
		raster := rasterx.NewDasher(renderSize, renderSize, scanner)
		icon.Draw(raster, 1.0)

		sm.pieces[p] = ebiten.NewImageFromImage(rgba)
	}
}

// DrawPiece draws p with its top-left corner at x, y, scaled by size/squareSize.
func (sm *SpriteManager) DrawPiece(screen *ebiten.Image, p board.Piece, x, y, scale float64) {
	if p == board.NoPiece || sm.pieces[p] == nil {
		return
	}
	op := &ebiten.DrawImageOptions{}
	s := scale / sm.renderScale
	op.GeoM.Scale(s, s)
	op.GeoM.Translate(x, y)
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(sm.pieces[p], op)
}

// Size returns the unscaled sprite size.
func (sm *SpriteManager) Size() int {
	return sm.size
}
