package ui

import (
	"errors"
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/hailam/chessrules/internal/board"
	"github.com/hailam/chessrules/internal/engine"
	"github.com/hailam/chessrules/internal/session"
)

// ToastType selects the toast color.
type ToastType int

const (
	ToastInfo ToastType = iota
	ToastWarning
	ToastSuccess
)

// Toast is a short message shown over the board.
type Toast struct {
	Message   string
	Type      ToastType
	StartTime time.Time
	Duration  time.Duration
}

// ToastManager keeps the most recent toasts.
type ToastManager struct {
	toasts   []*Toast
	maxStack int
}

// NewToastManager creates a new toast manager.
func NewToastManager() *ToastManager {
	return &ToastManager{maxStack: 3}
}

// Show queues a toast, dropping the oldest past maxStack.
func (tm *ToastManager) Show(message string, typ ToastType, d time.Duration) {
	tm.toasts = append(tm.toasts, &Toast{Message: message, Type: typ, StartTime: time.Now(), Duration: d})
	if len(tm.toasts) > tm.maxStack {
		tm.toasts = tm.toasts[1:]
	}
}

// Update removes expired toasts.
func (tm *ToastManager) Update() {
	now := time.Now()
	active := tm.toasts[:0]
	for _, t := range tm.toasts {
		if now.Sub(t.StartTime) < t.Duration {
			active = append(active, t)
		}
	}
	tm.toasts = active
}

// Draw renders the toasts centered over the board, fading at both ends.
func (tm *ToastManager) Draw(screen *ebiten.Image) {
	f := face(regularSource, 14)
	if f == nil {
		return
	}
	y := 50.0
	for _, t := range tm.toasts {
		elapsed := time.Since(t.StartTime).Seconds()
		alpha := 1.0
		const fade = 0.2
		if elapsed < fade {
			alpha = elapsed / fade
		} else if rest := t.Duration.Seconds() - elapsed; rest < fade {
			alpha = max(rest, 0) / fade
		}

		bg := color.RGBA{50, 100, 150, uint8(220 * alpha)}
		switch t.Type {
		case ToastWarning:
			bg = color.RGBA{180, 140, 20, uint8(220 * alpha)}
		case ToastSuccess:
			bg = color.RGBA{50, 150, 50, uint8(220 * alpha)}
		}
		fg := color.RGBA{255, 255, 255, uint8(255 * alpha)}

		w, h := measure(t.Message, f)
		const pad = 12.0
		boxW, boxH := w+pad*2, h+pad*2
		x := float64(BoardSize)/2 - boxW/2
		vector.DrawFilledRect(screen, float32(x*UIScale), float32(y*UIScale),
			float32(boxW*UIScale), float32(boxH*UIScale), bg, false)
		drawText(screen, t.Message, f, x+pad, y+pad, fg)
		y += boxH + 8
	}
}

// ShakeAnimation wiggles the piece on a square after a rejected move.
type ShakeAnimation struct {
	Square    board.Square
	StartTime time.Time
	Duration  time.Duration
	Intensity float64
}

// FlashAnimation fades a colored overlay on a square.
type FlashAnimation struct {
	Square    board.Square
	StartTime time.Time
	Duration  time.Duration
	Color     color.RGBA
}

// AnimationManager tracks running board animations.
type AnimationManager struct {
	shakes  []*ShakeAnimation
	flashes []*FlashAnimation
}

// NewAnimationManager creates a new animation manager.
func NewAnimationManager() *AnimationManager {
	return &AnimationManager{}
}

// StartShake shakes the piece on sq.
func (am *AnimationManager) StartShake(sq board.Square) {
	am.shakes = append(am.shakes, &ShakeAnimation{
		Square: sq, StartTime: time.Now(), Duration: 300 * time.Millisecond, Intensity: 8,
	})
}

// StartFlash flashes sq in c.
func (am *AnimationManager) StartFlash(sq board.Square, c color.RGBA) {
	am.flashes = append(am.flashes, &FlashAnimation{
		Square: sq, StartTime: time.Now(), Duration: 400 * time.Millisecond, Color: c,
	})
}

// Update removes finished animations.
func (am *AnimationManager) Update() {
	now := time.Now()
	shakes := am.shakes[:0]
	for _, s := range am.shakes {
		if now.Sub(s.StartTime) < s.Duration {
			shakes = append(shakes, s)
		}
	}
	am.shakes = shakes

	flashes := am.flashes[:0]
	for _, f := range am.flashes {
		if now.Sub(f.StartTime) < f.Duration {
			flashes = append(flashes, f)
		}
	}
	am.flashes = flashes
}

// ShakeOffset returns the logical offset for the piece on sq.
func (am *AnimationManager) ShakeOffset(sq board.Square) (float64, float64) {
	for _, s := range am.shakes {
		if s.Square != sq {
			continue
		}
		progress := time.Since(s.StartTime).Seconds() / s.Duration.Seconds()
		if progress >= 1 {
			return 0, 0
		}
		// damped sine
		return s.Intensity * math.Exp(-5*progress) * math.Sin(40*progress), 0
	}
	return 0, 0
}

// DrawFlashes renders flash overlays.
func (am *AnimationManager) DrawFlashes(screen *ebiten.Image, r *Renderer) {
	for _, f := range am.flashes {
		progress := time.Since(f.StartTime).Seconds() / f.Duration.Seconds()
		if progress >= 1 {
			continue
		}
		c := f.Color
		c.A = uint8(float64(c.A) * (1 - progress))
		x, y := r.SquareToScreen(f.Square)
		size := r.s(r.SquareSize())
		vector.DrawFilledRect(screen, r.s(x), r.s(y), size, size, c, false)
	}
}

// FeedbackManager turns game events into toasts, animations and sounds.
type FeedbackManager struct {
	toasts     *ToastManager
	animations *AnimationManager
	audio      *AudioManager
}

// NewFeedbackManager creates a new feedback manager.
func NewFeedbackManager(sound bool) *FeedbackManager {
	return &FeedbackManager{
		toasts:     NewToastManager(),
		animations: NewAnimationManager(),
		audio:      NewAudioManager(sound),
	}
}

// Update advances toasts and animations.
func (fm *FeedbackManager) Update() {
	fm.toasts.Update()
	fm.animations.Update()
}

// Draw renders flashes and toasts.
func (fm *FeedbackManager) Draw(screen *ebiten.Image, r *Renderer) {
	fm.animations.DrawFlashes(screen, r)
	fm.toasts.Draw(screen)
}

// Animations returns the animation manager for the renderer.
func (fm *FeedbackManager) Animations() *AnimationManager {
	return fm.animations
}

// Audio returns the audio manager.
func (fm *FeedbackManager) Audio() *AudioManager {
	return fm.audio
}

// rejectionMessage explains a refused move.
func rejectionMessage(err error) string {
	switch {
	case errors.Is(err, session.ErrPaused):
		return "Press Play to start the game"
	case errors.Is(err, engine.ErrGameOver):
		return "The game is over"
	case errors.Is(err, engine.ErrWrongTurn):
		return "Not your turn"
	case errors.Is(err, engine.ErrPromotionRequired):
		return "Choose a promotion piece"
	case errors.Is(err, engine.ErrIllegalMove):
		return "Illegal move"
	}
	return "Invalid move"
}

// OnRejected reports a refused move from one square to another.
func (fm *FeedbackManager) OnRejected(from, to board.Square, err error) {
	fm.toasts.Show(rejectionMessage(err), ToastWarning, 2*time.Second)
	fm.animations.StartShake(from)
	if to != board.NoSquare && to != from {
		fm.animations.StartFlash(to, color.RGBA{255, 80, 80, 150})
	}
	fm.audio.Play(SoundInvalid)
}

// OnMove reports an applied move.
func (fm *FeedbackManager) OnMove(res engine.Result) {
	switch {
	case res.Status.IsTerminal():
		// OnGameOver follows
	case res.Check:
		fm.toasts.Show("Check!", ToastWarning, 2*time.Second)
		fm.audio.Play(SoundCheck)
	case res.Move.IsCastling():
		fm.audio.Play(SoundCastle)
	case res.Captured != board.NoPiece:
		fm.audio.Play(SoundCapture)
	default:
		fm.audio.Play(SoundMove)
	}
}

// OnGameOver announces the final outcome.
func (fm *FeedbackManager) OnGameOver(out session.Outcome) {
	typ := ToastInfo
	if out.Winner != board.NoColor {
		typ = ToastSuccess
	}
	fm.toasts.Show(capitalize(out.String()), typ, 5*time.Second)
	fm.audio.Play(SoundGameEnd)
}

// OnInfo shows a neutral message.
func (fm *FeedbackManager) OnInfo(message string) {
	fm.toasts.Show(message, ToastInfo, 2*time.Second)
}

func capitalize(s string) string {
	if s == "" || s[0] < 'a' || s[0] > 'z' {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}
