package ui

import (
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/hailam/chessrules/internal/board"
	"github.com/hailam/chessrules/internal/clock"
	"github.com/hailam/chessrules/internal/session"
)

// Panel layout
const (
	PanelPadding  = 20
	ButtonHeight  = 40
	ButtonGap     = 8
	ClockHeight   = 56
	SectionLabelH = 20
	rowHeight     = 22
	lowTime       = 10 * time.Second
)

var (
	panelBg         = color.RGBA{38, 40, 45, 255}
	sectionBg       = color.RGBA{48, 52, 58, 255}
	buttonBg        = color.RGBA{50, 54, 60, 255}
	buttonHoverBg   = color.RGBA{65, 70, 78, 255}
	buttonPressedBg = color.RGBA{40, 44, 50, 255}
	buttonBorder    = color.RGBA{70, 75, 82, 255}
	accentColor     = color.RGBA{76, 175, 120, 255}
	accentHover     = color.RGBA{96, 195, 140, 255}
	accentPressed   = color.RGBA{56, 155, 100, 255}
	textPrimary     = color.RGBA{240, 240, 245, 255}
	textSecondary   = color.RGBA{160, 165, 175, 255}
	textMuted       = color.RGBA{120, 125, 135, 255}
	dividerColor    = color.RGBA{60, 65, 72, 255}
	moveRowAlt      = color.RGBA{44, 48, 54, 255}
	clockActiveBg   = color.RGBA{230, 230, 235, 255}
	clockActiveText = color.RGBA{30, 32, 36, 255}
	clockLowBg      = color.RGBA{200, 60, 60, 255}
	statusGameOver  = color.RGBA{255, 200, 80, 255}
)

// Button is a clickable panel element.
type Button struct {
	X, Y, W, H int
	Label      func() string
	OnClick    func()
	Primary    bool
	hovered    bool
	pressed    bool
}

// Panel is the side panel with clocks, controls and the move list.
type Panel struct {
	game    *Game
	buttons []*Button

	scrollY    int
	maxScrollY int
}

// NewPanel creates the panel for g.
func NewPanel(g *Game) *Panel {
	p := &Panel{game: g}

	x := BoardSize + PanelPadding
	w := (PanelWidth - PanelPadding*2 - ButtonGap) / 2
	row1 := PanelPadding + 36 + ClockHeight + 12
	row2 := row1 + ButtonHeight + ButtonGap
	p.buttons = []*Button{
		{X: x, Y: row1, W: w, H: ButtonHeight, Primary: true, OnClick: g.TogglePlayAction,
			Label: func() string {
				if g.view.Playing {
					return "Pause"
				}
				return "Play"
			}},
		{X: x + w + ButtonGap, Y: row1, W: w, H: ButtonHeight, OnClick: g.NewGameAction,
			Label: func() string { return "New Game" }},
		{X: x, Y: row2, W: w, H: ButtonHeight - 6, OnClick: g.FlipAction,
			Label: func() string { return "Flip Board" }},
		{X: x + w + ButtonGap, Y: row2, W: w, H: ButtonHeight - 6, OnClick: g.ShowSettings,
			Label: func() string { return "Settings" }},
	}
	return p
}

func (p *Panel) historyTop() int {
	last := p.buttons[len(p.buttons)-1]
	return last.Y + last.H + 16
}

func (p *Panel) historyBottom() int {
	return ScreenHeight - PanelPadding - ClockHeight - 44
}

// HandleInput processes panel input and reports whether it consumed it.
func (p *Panel) HandleInput(input *InputHandler) bool {
	mx, my := input.MousePosition()
	if mx < BoardSize {
		for _, b := range p.buttons {
			b.hovered, b.pressed = false, false
		}
		return false
	}

	if _, wheelY := ebiten.Wheel(); wheelY != 0 && my >= p.historyTop() && my < p.historyBottom() {
		p.scrollY = max(0, min(p.maxScrollY, p.scrollY-int(wheelY*30)))
	}

	for _, b := range p.buttons {
		b.hovered = input.IsInBounds(b.X, b.Y, b.W, b.H)
		b.pressed = b.hovered && input.IsLeftPressed()
		if b.hovered && input.IsLeftJustPressed() {
			b.OnClick()
			return true
		}
	}
	return input.IsLeftJustPressed()
}

// AnyButtonHovered reports whether the cursor is over a button.
func (p *Panel) AnyButtonHovered() bool {
	for _, b := range p.buttons {
		if b.hovered {
			return true
		}
	}
	return false
}

// ScrollToEnd shows the latest moves.
func (p *Panel) ScrollToEnd() {
	p.scrollY = 1 << 30
}

// Draw renders the panel for the current view.
func (p *Panel) Draw(screen *ebiten.Image, v *session.View) {
	sc := func(n int) float32 { return float32(float64(n) * UIScale) }
	vector.DrawFilledRect(screen, sc(BoardSize), 0, sc(PanelWidth), sc(ScreenHeight), panelBg, false)

	x := float64(BoardSize + PanelPadding)
	drawText(screen, p.game.Username(), face(boldSource, 16), x, PanelPadding, textPrimary)
	drawText(screen, "Game "+v.ID.String()[:8], face(regularSource, 12), x, PanelPadding+20, textMuted)

	top, bottom := board.Black, board.White
	if p.game.renderer.Flipped() {
		top, bottom = board.White, board.Black
	}
	p.drawClock(screen, v, top, PanelPadding+36)
	p.drawClock(screen, v, bottom, ScreenHeight-PanelPadding-ClockHeight)

	for _, b := range p.buttons {
		p.drawButton(screen, b)
	}

	hy := p.historyTop()
	drawText(screen, "Moves", face(regularSource, 13), x, float64(hy), textMuted)
	p.drawMoveHistory(screen, v.SAN, hy+SectionLabelH+4)

	statusY := ScreenHeight - PanelPadding - ClockHeight - 34
	vector.DrawFilledRect(screen, sc(BoardSize+PanelPadding), sc(statusY-6),
		sc(PanelWidth-PanelPadding*2), sc(1), dividerColor, false)
	status, c := statusText(v), textPrimary
	if v.Outcome.Over {
		c = statusGameOver
	}
	drawText(screen, status, face(regularSource, 14), x, float64(statusY), c)
}

// statusText is the one-line game state shown under the move list.
func statusText(v *session.View) string {
	switch {
	case v.Outcome.Over:
		return capitalize(v.Outcome.String())
	case !v.Playing && len(v.Moves) == 0:
		return "Press Play to start"
	case !v.Playing:
		return "Paused"
	case v.Check:
		return fmt.Sprintf("%s to move, check", v.SideToMove)
	}
	return fmt.Sprintf("%s to move", v.SideToMove)
}

func (p *Panel) drawClock(screen *ebiten.Image, v *session.View, side board.Color, y int) {
	x := BoardSize + PanelPadding
	w := PanelWidth - PanelPadding*2
	left := v.Remaining[side]
	active := v.Playing && v.SideToMove == side

	bg, fg := sectionBg, textSecondary
	switch {
	case active && left <= lowTime:
		bg, fg = clockLowBg, textPrimary
	case active:
		bg, fg = clockActiveBg, clockActiveText
	}
	s := func(n int) float32 { return float32(float64(n) * UIScale) }
	vector.DrawFilledRect(screen, s(x), s(y), s(w), s(ClockHeight), bg, false)

	drawText(screen, side.String(), face(regularSource, 14), float64(x+14), float64(y+ClockHeight/2-9), fg)
	tf := face(monoSource, 28)
	tw, th := measure(clock.Format(left), tf)
	drawText(screen, clock.Format(left), tf, float64(x+w-14)-tw, float64(y)+(ClockHeight-th)/2, fg)
}

func (p *Panel) drawButton(screen *ebiten.Image, b *Button) {
	bg, border, fg := buttonBg, buttonBorder, textSecondary
	switch {
	case b.Primary && b.pressed:
		bg, border, fg = accentPressed, accentPressed, textPrimary
	case b.Primary && b.hovered:
		bg, border, fg = accentHover, accentHover, textPrimary
	case b.Primary:
		bg, border, fg = accentColor, accentPressed, textPrimary
	case b.pressed:
		bg = buttonPressedBg
	case b.hovered:
		bg, border = buttonHoverBg, accentColor
	}
	s := func(n int) float32 { return float32(float64(n) * UIScale) }
	vector.DrawFilledRect(screen, s(b.X), s(b.Y), s(b.W), s(b.H), bg, false)
	vector.StrokeRect(screen, s(b.X), s(b.Y), s(b.W), s(b.H), 1, border, false)
	drawTextCentered(screen, b.Label(), face(regularSource, 14),
		float64(b.X), float64(b.Y), float64(b.W), float64(b.H), fg)
}

func (p *Panel) drawMoveHistory(screen *ebiten.Image, moves []string, startY int) {
	f := face(monoSource, 13)
	x := float64(BoardSize + PanelPadding)
	if len(moves) == 0 {
		drawText(screen, "No moves yet", f, x, float64(startY+5), textMuted)
		return
	}

	maxY := p.historyBottom()
	visible := maxY - startY
	rows := (len(moves) + 1) / 2
	p.maxScrollY = max(0, rows*rowHeight-visible)
	p.scrollY = min(p.scrollY, p.maxScrollY)

	first := p.scrollY / rowHeight
	y := startY - p.scrollY%rowHeight
	for row := first; row < rows && y <= maxY-rowHeight; row++ {
		if y >= startY {
			if row%2 == 1 {
				vector.DrawFilledRect(screen, float32((x-4)*UIScale), float32(float64(y-2)*UIScale),
					float32(float64(PanelWidth-PanelPadding*2+8)*UIScale), float32(rowHeight*UIScale), moveRowAlt, false)
			}
			drawText(screen, fmt.Sprintf("%d.", row+1), f, x, float64(y), textMuted)
			drawText(screen, moves[row*2], f, x+40, float64(y), textPrimary)
			if row*2+1 < len(moves) {
				drawText(screen, moves[row*2+1], f, x+120, float64(y), textPrimary)
			}
		}
		y += rowHeight
	}
}
