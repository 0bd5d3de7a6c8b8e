package ui

import (
	"log"
	"slices"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/hailam/chessrules/internal/board"
	"github.com/hailam/chessrules/internal/engine"
	"github.com/hailam/chessrules/internal/session"
	"github.com/hailam/chessrules/internal/storage"
)

// Window layout in logical pixels.
const (
	ScreenWidth  = 960
	ScreenHeight = 640
	BoardSize    = 640
	SquareSize   = BoardSize / 8
	PanelWidth   = ScreenWidth - BoardSize
)

// UIScale is the HiDPI factor set by Game.Layout.
var UIScale = 1.0

// Game implements ebiten.Game on top of a session. All rules live in the
// session; the window only tracks selection and drag state.
type Game struct {
	sess  *session.Session
	store *storage.Storage
	prefs *storage.UserPreferences
	view  session.View

	selected   board.Square
	targets    []board.Square
	dragging   bool
	dragSquare board.Square
	wasOver    bool

	renderer  *Renderer
	input     *InputHandler
	panel     *Panel
	feedback  *FeedbackManager
	promotion *PromotionPicker
	settings  *SettingsModal
}

// NewGame creates the window state. store may be nil.
func NewGame(sess *session.Session, store *storage.Storage, prefs *storage.UserPreferences) *Game {
	g := &Game{
		sess:       sess,
		store:      store,
		prefs:      prefs,
		selected:   board.NoSquare,
		dragSquare: board.NoSquare,
		renderer:   NewRenderer(BoardSize, SquareSize),
		input:      NewInputHandler(),
		feedback:   NewFeedbackManager(prefs.SoundEnabled),
		promotion:  &PromotionPicker{},
		settings:   NewSettingsModal(),
	}
	g.renderer.SetFlipped(prefs.FlipBoard)
	g.panel = NewPanel(g)
	g.view = sess.Snapshot()
	return g
}

// Update handles one frame of input.
func (g *Game) Update() error {
	g.input.Update()
	g.feedback.Update()
	g.refresh()

	if g.settings.IsVisible() {
		g.settings.Update(g.input)
		g.updateCursor(g.settings.AnyButtonHovered())
		return nil
	}

	switch {
	case g.input.KeyJustPressed(ebiten.KeySpace):
		g.TogglePlayAction()
	case g.input.KeyJustPressed(ebiten.KeyN):
		g.NewGameAction()
	case g.input.KeyJustPressed(ebiten.KeyF):
		g.FlipAction()
	}

	if g.promotion.IsVisible() {
		if pt, ok := g.promotion.HandleInput(g.input, g.renderer); ok && pt != board.NoPieceType {
			from, to := g.promotion.Move()
			g.applyMove(from, to, pt)
		} else if ok {
			g.clearSelection()
		}
		return nil
	}

	if !g.panel.HandleInput(g.input) {
		g.handleBoardInput()
	}

	g.updateCursor(g.panel.AnyButtonHovered())
	return nil
}

func (g *Game) updateCursor(pointer bool) {
	if pointer {
		ebiten.SetCursorShape(ebiten.CursorShapePointer)
	} else {
		ebiten.SetCursorShape(ebiten.CursorShapeDefault)
	}
}

// refresh takes a new snapshot and reports a game that just ended,
// including a flag fall noticed by the session.
func (g *Game) refresh() {
	g.view = g.sess.Snapshot()
	if g.view.Outcome.Over && !g.wasOver {
		g.feedback.OnGameOver(g.view.Outcome)
		g.clearSelection()
		g.promotion.Hide()
	}
	g.wasOver = g.view.Outcome.Over
}

// Draw renders the frame.
func (g *Game) Draw(screen *ebiten.Image) {
	v := &g.view
	screen.Fill(g.renderer.Theme().Background)

	g.renderer.DrawBoard(screen)
	if v.Check {
		for sq := board.A1; sq <= board.H8; sq++ {
			if v.Board.At(sq) == board.NewPiece(board.King, v.SideToMove) {
				g.renderer.DrawCheck(screen, sq)
			}
		}
	}
	g.renderer.DrawHighlights(screen, g.selected, g.targets, v.LastMove, len(v.Moves) > 0)

	dragSquare := board.NoSquare
	if g.dragging {
		dragSquare = g.dragSquare
	}
	g.renderer.DrawPieces(screen, &v.Board, dragSquare, g.feedback.Animations())
	if g.dragging {
		mx, my := g.input.MousePosition()
		g.renderer.DrawDraggedPiece(screen, v.Board.At(g.dragSquare), mx, my)
	}

	g.promotion.Draw(screen, g.renderer)
	g.feedback.Draw(screen, g.renderer)
	g.panel.Draw(screen, v)
	g.settings.Draw(screen, g.panel)
}

// Layout scales the logical screen by the monitor's device scale factor.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	UIScale = max(ebiten.Monitor().DeviceScaleFactor(), 1.0)
	return int(ScreenWidth * UIScale), int(ScreenHeight * UIScale)
}

func (g *Game) handleBoardInput() {
	mx, my := g.input.MousePosition()

	if g.input.IsLeftJustPressed() {
		sq := g.renderer.ScreenToSquare(mx, my)
		if sq == board.NoSquare {
			g.clearSelection()
			return
		}
		g.pressSquare(sq)
		return
	}

	if g.dragging && g.input.IsLeftJustReleased() {
		from := g.dragSquare
		g.dragging = false
		to := g.renderer.ScreenToSquare(mx, my)
		if to != board.NoSquare && to != from {
			g.tryMove(from, to)
		}
	}
}

// pressSquare selects own pieces and moves the selection elsewhere.
func (g *Game) pressSquare(sq board.Square) {
	p := g.view.Board.At(sq)
	own := p != board.NoPiece && p.Color() == g.view.SideToMove

	if g.selected != board.NoSquare && sq != g.selected {
		if !own || g.castleTarget(g.selected, sq) != sq {
			g.tryMove(g.selected, sq)
			return
		}
	}
	switch {
	case own && !g.view.Outcome.Over:
		g.selectSquare(sq)
		g.dragging = true
		g.dragSquare = sq
	case p != board.NoPiece && !g.view.Outcome.Over:
		g.feedback.OnRejected(sq, board.NoSquare, engine.ErrWrongTurn)
		g.clearSelection()
	default:
		g.clearSelection()
	}
}

func (g *Game) selectSquare(sq board.Square) {
	targets, err := g.sess.LegalTargets(sq.String())
	if err != nil {
		log.Printf("[UI] legal targets from %s: %v", sq, err)
	}
	g.selected = sq
	g.targets = targets
}

func (g *Game) clearSelection() {
	g.selected = board.NoSquare
	g.targets = nil
	g.dragging = false
	g.dragSquare = board.NoSquare
}

// castleTarget lets a king be dropped on its own rook to castle.
func (g *Game) castleTarget(from, to board.Square) board.Square {
	if g.view.Board.At(from).Type() != board.King || g.view.Board.At(to).Type() != board.Rook ||
		from.Rank() != to.Rank() {
		return to
	}
	dest := board.NewSquare(6, from.Rank())
	if to.File() < from.File() {
		dest = board.NewSquare(2, from.Rank())
	}
	if slices.Contains(g.targets, dest) {
		return dest
	}
	return to
}

// tryMove sends from-to to the session, asking for a piece first when the
// move promotes and auto-queen is off.
func (g *Game) tryMove(from, to board.Square) {
	to = g.castleTarget(from, to)
	if !g.prefs.AutoQueen && g.sess.IsPromotion(from.String(), to.String()) {
		g.promotion.Show(from, to, g.view.SideToMove)
		g.dragging = false
		return
	}
	g.applyMove(from, to, board.NoPieceType)
}

func (g *Game) applyMove(from, to board.Square, promo board.PieceType) {
	res, err := g.sess.Move(from.String(), to.String(), promo)
	g.clearSelection()
	if err != nil {
		g.feedback.OnRejected(from, to, err)
		return
	}
	g.feedback.OnMove(res)
	g.panel.ScrollToEnd()
	g.refresh()
}

// TogglePlayAction starts or pauses the game.
func (g *Game) TogglePlayAction() {
	if _, err := g.sess.TogglePlay(); err != nil {
		g.feedback.OnRejected(board.NoSquare, board.NoSquare, err)
	}
}

// NewGameAction abandons the current game and sets up a new one.
func (g *Game) NewGameAction() {
	g.sess.Reset()
	g.clearSelection()
	g.promotion.Hide()
	g.wasOver = false
	g.panel.scrollY = 0
	g.feedback.OnInfo("New game")
}

// FlipAction turns the board around.
func (g *Game) FlipAction() {
	g.renderer.SetFlipped(!g.renderer.Flipped())
	g.prefs.FlipBoard = g.renderer.Flipped()
}

// ShowSettings opens the preferences dialog. Saved changes are stored at
// once; a new time control restarts the game only if it has not begun.
func (g *Game) ShowSettings() {
	g.settings.Show(g.prefs, func(p *storage.UserPreferences) {
		*g.prefs = *p
		g.feedback.Audio().SetEnabled(p.SoundEnabled)
		if !g.sess.Configure(session.ConfigFromPreferences(p)) {
			g.feedback.OnInfo("New time control applies from the next game")
		}
		g.savePreferences()
	})
}

// Username returns the player name shown in the panel.
func (g *Game) Username() string {
	return g.prefs.Username
}

func (g *Game) savePreferences() {
	if g.store == nil {
		return
	}
	if err := g.store.SavePreferences(g.prefs); err != nil {
		log.Printf("[UI] failed to save preferences: %v", err)
	}
}

// Close saves preferences changed from the window.
func (g *Game) Close() {
	g.prefs.LastPlayed = time.Now()
	g.savePreferences()
}
