// Package session runs one game at a time: it owns the rules engine and
// the clock, serializes every call into them and records finished games.
package session

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hailam/chessrules/internal/board"
	"github.com/hailam/chessrules/internal/clock"
	"github.com/hailam/chessrules/internal/engine"
	"github.com/hailam/chessrules/internal/storage"
)

// ErrPaused is returned when a move is attempted while the game is paused.
var ErrPaused = errors.New("game is paused")

// Timeout is the termination reason when a player runs out of time.
const Timeout = "timeout"

// Config selects the time control and promotion behavior of new games.
type Config struct {
	TimeControl     time.Duration
	Increment       time.Duration
	StrictPromotion bool
}

// DefaultConfig is ten minutes a side with no increment.
func DefaultConfig() Config {
	return Config{TimeControl: 10 * time.Minute}
}

// ConfigFromPreferences builds the game config a player saved. Turning off
// auto-queen makes the promotion piece mandatory.
func ConfigFromPreferences(p *storage.UserPreferences) Config {
	initial, increment := p.TimeControl()
	return Config{TimeControl: initial, Increment: increment, StrictPromotion: !p.AutoQueen}
}

// Recorder receives every finished game. storage.Storage satisfies it.
type Recorder interface {
	RecordGame(storage.GameResult) error
}

// Outcome describes how the game ended. Over is false while it is in play.
type Outcome struct {
	Over        bool
	Winner      board.Color
	Termination string
}

func (o Outcome) String() string {
	switch {
	case !o.Over:
		return "in progress"
	case o.Winner == board.NoColor:
		return "draw by " + o.Termination
	}
	return fmt.Sprintf("%s wins by %s", o.Winner, o.Termination)
}

// Session is safe for concurrent use. Timer goroutines and input handlers
// may call it at the same time; each call holds the lock for its duration.
type Session struct {
	mu       sync.Mutex
	cfg      Config
	id       uuid.UUID
	engine   *engine.Engine
	clock    *clock.Clock
	recorder Recorder
	playing  bool
	started  time.Time
	outcome  Outcome
}

// New creates a paused session. rec may be nil.
func New(cfg Config, rec Recorder) *Session {
	e := engine.NewEngine()
	e.SetStrictPromotion(cfg.StrictPromotion)
	return &Session{
		cfg:      cfg,
		id:       uuid.New(),
		engine:   e,
		clock:    clock.New(cfg.TimeControl, cfg.Increment),
		recorder: rec,
	}
}

// ID identifies the current game. It changes on Reset.
func (s *Session) ID() uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.id
}

// Clock exposes the game clock for display.
func (s *Session) Clock() *clock.Clock {
	return s.clock
}

// Playing reports whether the game is running.
func (s *Session) Playing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.playing
}

// Play starts or resumes the game and the clock of the side to move.
func (s *Session) Play() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.outcome.Over {
		return fmt.Errorf("%w: %s", engine.ErrGameOver, s.outcome)
	}
	if s.playing {
		return nil
	}
	if s.started.IsZero() {
		s.started = s.clock.Now()
	}
	s.playing = true
	s.clock.Start(s.engine.SideToMove())
	log.Printf("[SESSION] %s playing, %s to move", s.id, s.engine.SideToMove())
	return nil
}

// Pause stops the clock. Moves are refused until Play is called again.
func (s *Session) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.playing {
		return
	}
	s.playing = false
	s.clock.Pause()
	log.Printf("[SESSION] %s paused", s.id)
}

// TogglePlay flips between playing and paused and reports the new state.
func (s *Session) TogglePlay() (bool, error) {
	if s.Playing() {
		s.Pause()
		return false, nil
	}
	if err := s.Play(); err != nil {
		return false, err
	}
	return true, nil
}

// Move plays from-to for the side to move. See engine.Engine.ApplyMove for
// the meaning of promo and the errors returned.
func (s *Session) Move(from, to string, promo board.PieceType) (engine.Result, error) {
	return s.apply(engine.MoveError{From: from, To: to, Promotion: promo}, func() (engine.Result, error) {
		return s.engine.ApplyMove(from, to, promo)
	})
}

// MoveSAN plays a move written in algebraic notation.
func (s *Session) MoveSAN(san string) (engine.Result, error) {
	return s.apply(engine.MoveError{From: san, Promotion: board.NoPieceType}, func() (engine.Result, error) {
		return s.engine.ApplySAN(san)
	})
}

// apply runs play under the lock once the game is known to be running.
// rejected describes the move if the game is already over.
func (s *Session) apply(rejected engine.MoveError, play func() (engine.Result, error)) (engine.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.checkTimeout()
	if s.outcome.Over {
		rejected.Err = fmt.Errorf("%w: %s", engine.ErrGameOver, s.outcome)
		return engine.Result{}, &rejected
	}
	if !s.playing {
		return engine.Result{}, ErrPaused
	}

	res, err := play()
	if err != nil {
		log.Printf("[MOVE] rejected: %v", err)
		return res, err
	}
	log.Printf("[MOVE] %s %s (%s)", res.SideToMove.Other(), res.SAN, s.engine.FEN())

	if res.Status.IsTerminal() {
		s.finish(res.Winner(), res.Status.String())
	} else {
		s.clock.Switch()
	}
	return res, nil
}

// Tick checks the clock and ends the game when the side to move has no
// time left. Callers poll it from their timer loop.
func (s *Session) Tick() Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.checkTimeout()
	return s.outcome
}

// checkTimeout flags the side to move when its time is up. The opponent
// wins unless it lacks mating material, which makes it a draw. The caller
// holds mu.
func (s *Session) checkTimeout() {
	if s.outcome.Over || !s.playing {
		return
	}
	side := s.engine.SideToMove()
	if s.clock.Remaining(side) > 0 {
		return
	}
	winner := side.Other()
	pos := s.engine.Position()
	if !pos.HasMatingMaterial(winner) {
		winner = board.NoColor
	}
	s.finish(winner, Timeout)
}

// finish stops the game and hands it to the recorder. The caller holds mu.
func (s *Session) finish(winner board.Color, termination string) {
	s.outcome = Outcome{Over: true, Winner: winner, Termination: termination}
	s.playing = false
	s.clock.Pause()
	log.Printf("[SESSION] %s finished: %s", s.id, s.outcome)

	if s.recorder == nil {
		return
	}
	result := storage.GameResult{
		ID:          s.id,
		Winner:      winner,
		Termination: termination,
		Plies:       len(s.engine.History()),
		Duration:    s.clock.Now().Sub(s.started),
		FinishedAt:  s.clock.Now(),
	}
	if err := s.recorder.RecordGame(result); err != nil {
		log.Printf("[SESSION] failed to record game %s: %v", s.id, err)
	}
}

// Configure changes the time control and promotion rule. The current game
// is restarted only if it has not begun; otherwise the change applies from
// the next Reset. It reports whether the game was restarted.
func (s *Session) Configure(cfg Config) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cfg = cfg
	fresh := len(s.engine.History()) == 0 && !s.playing && !s.outcome.Over
	if fresh {
		s.resetLocked()
	}
	return fresh
}

// Reset starts a new paused game with a fresh id and full clocks.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetLocked()
}

func (s *Session) resetLocked() {
	s.engine.Reset()
	s.engine.SetStrictPromotion(s.cfg.StrictPromotion)
	s.clock.SetTimeControl(s.cfg.TimeControl, s.cfg.Increment)
	s.id = uuid.New()
	s.playing = false
	s.started = time.Time{}
	s.outcome = Outcome{}
	log.Printf("[SESSION] new game %s", s.id)
}

// LegalMoves lists every legal move in the current position.
func (s *Session) LegalMoves() []board.Move {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.outcome.Over {
		return nil
	}
	return s.engine.LegalMoves()
}

// LegalTargets returns the squares the piece on from can move to.
func (s *Session) LegalTargets(from string) ([]board.Square, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.outcome.Over {
		return nil, nil
	}
	moves, err := s.engine.LegalMovesFrom(from)
	if err != nil {
		return nil, err
	}
	var targets []board.Square
	for _, m := range moves {
		if len(targets) == 0 || targets[len(targets)-1] != m.To() {
			targets = append(targets, m.To())
		}
	}
	return targets, nil
}

// IsPromotion reports whether from-to is a legal pawn promotion, so a front
// end knows to ask for the piece.
func (s *Session) IsPromotion(from, to string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	moves, err := s.engine.LegalMovesFrom(from)
	if err != nil {
		return false
	}
	for _, m := range moves {
		if m.To().String() == to && m.IsPromotion() {
			return true
		}
	}
	return false
}

// View is a consistent snapshot of everything a front end draws.
type View struct {
	ID         uuid.UUID
	Board      board.Grid
	SideToMove board.Color
	Check      bool
	Status     engine.Status
	Playing    bool
	Outcome    Outcome
	Remaining  [2]time.Duration
	Moves      []string
	SAN        []string
	LastMove   board.Move
	FEN        string
}

// Snapshot returns the current view of the game.
func (s *Session) Snapshot() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.checkTimeout()
	history := s.engine.History()
	v := View{
		ID:         s.id,
		Board:      s.engine.Board(),
		SideToMove: s.engine.SideToMove(),
		Check:      s.engine.IsCheck(),
		Status:     s.engine.Status(),
		Playing:    s.playing,
		Outcome:    s.outcome,
		Moves:      make([]string, len(history)),
		SAN:        s.engine.SANHistory(),
		FEN:        s.engine.FEN(),
	}
	v.Remaining[board.White] = s.clock.Remaining(board.White)
	v.Remaining[board.Black] = s.clock.Remaining(board.Black)
	for i, m := range history {
		v.Moves[i] = m.String()
	}
	if len(history) > 0 {
		v.LastMove = history[len(history)-1]
	}
	return v
}
