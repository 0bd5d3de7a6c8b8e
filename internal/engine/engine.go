// Package engine is the stateful rules engine for one game of chess. It
// validates and applies moves, tracks the repetition history and reports
// check, mate and draw conditions.
//
// An Engine is not safe for concurrent use; callers that drive it from
// several goroutines must serialize access.
package engine

import (
	"fmt"

	"github.com/hailam/chessrules/internal/board"
)

// seen is one entry of the repetition history. The Zobrist hash is compared
// before the full key.
type seen struct {
	hash uint64
	key  board.Key
}

// Engine owns the current position and the history of the game.
type Engine struct {
	pos     board.Position
	history []seen
	moves   []board.Move
	san     []string
	status  Status

	strictPromotion bool
}

// NewEngine returns an engine set to the standard initial position.
func NewEngine() *Engine {
	e := &Engine{}
	e.Reset()
	return e
}

// NewEngineFrom returns an engine continuing from pos, which must hold a
// playable position (see board.Position.Validate).
func NewEngineFrom(pos board.Position) (*Engine, error) {
	if err := pos.Validate(); err != nil {
		return nil, err
	}
	e := &Engine{}
	e.load(pos)
	return e, nil
}

// SetStrictPromotion controls what ApplyMove does with a promoting move
// that names no piece: queen when off, ErrPromotionRequired when on.
func (e *Engine) SetStrictPromotion(strict bool) {
	e.strictPromotion = strict
}

// Reset restores the initial position and clears the history.
func (e *Engine) Reset() {
	e.load(board.NewPosition())
}

func (e *Engine) load(pos board.Position) {
	e.pos = pos
	e.history = append(e.history[:0], seen{pos.Hash, pos.Key()})
	e.moves = e.moves[:0]
	e.san = e.san[:0]
	e.status = e.evaluate()
}

// Board returns a snapshot of the 64 squares.
func (e *Engine) Board() board.Grid {
	return e.pos.Grid()
}

// Position returns a copy of the full position.
func (e *Engine) Position() board.Position {
	return e.pos
}

// FEN describes the current position, mostly for logging.
func (e *Engine) FEN() string {
	return e.pos.FEN()
}

// SideToMove returns the color whose turn it is.
func (e *Engine) SideToMove() board.Color {
	return e.pos.SideToMove
}

// PieceAt returns the piece on the named square, or board.NoPiece.
func (e *Engine) PieceAt(square string) (board.Piece, error) {
	sq, err := board.ParseSquare(square)
	if err != nil {
		return board.NoPiece, err
	}
	return e.pos.PieceAt(sq), nil
}

// History returns the moves played since the last reset.
func (e *Engine) History() []board.Move {
	return append([]board.Move(nil), e.moves...)
}

// SANHistory returns the moves played since the last reset in algebraic
// notation.
func (e *Engine) SANHistory() []string {
	return append([]string(nil), e.san...)
}

// Status returns the game state.
func (e *Engine) Status() Status {
	return e.status
}

// IsCheck reports whether the side to move is in check.
func (e *Engine) IsCheck() bool { return e.pos.InCheck() }

// IsCheckmate reports whether the side to move has been mated.
func (e *Engine) IsCheckmate() bool { return e.status == Checkmate }

// IsStalemate reports whether the side to move has no legal move and is not
// in check.
func (e *Engine) IsStalemate() bool { return e.status == Stalemate }

// IsDraw reports whether the game ended without a winner, stalemate included.
func (e *Engine) IsDraw() bool { return e.status.IsDraw() }

// IsGameOver reports whether no further move will be accepted until Reset.
func (e *Engine) IsGameOver() bool { return e.status.IsTerminal() }

// IsInsufficientMaterial reports whether neither side can ever mate.
func (e *Engine) IsInsufficientMaterial() bool {
	return e.pos.IsInsufficientMaterial()
}

// IsFiftyMoveRule reports whether fifty moves passed without a pawn move or capture.
func (e *Engine) IsFiftyMoveRule() bool {
	return e.pos.IsFiftyMoveRule()
}

// IsThreefoldRepetition reports whether the current position occurred at
// least three times.
func (e *Engine) IsThreefoldRepetition() bool {
	return e.repetitions() >= 3
}

func (e *Engine) repetitions() int {
	key := e.pos.Key()
	n := 0
	for _, h := range e.history {
		if h.hash == e.pos.Hash && h.key == key {
			n++
		}
	}
	return n
}

// LegalMoves returns every legal move for the side to move. It is empty
// once the game is over.
func (e *Engine) LegalMoves() []board.Move {
	if e.status.IsTerminal() {
		return nil
	}
	return e.pos.GenerateLegalMoves()
}

// LegalMovesFrom returns the legal moves starting on the named square.
func (e *Engine) LegalMovesFrom(square string) ([]board.Move, error) {
	sq, err := board.ParseSquare(square)
	if err != nil {
		return nil, err
	}
	var moves []board.Move
	for _, m := range e.LegalMoves() {
		if m.From() == sq {
			moves = append(moves, m)
		}
	}
	return moves, nil
}

// ApplyMove plays from-to if it is legal. promo selects the promotion
// piece; board.NoPieceType leaves the choice to the engine. On error the
// position is unchanged and the error wraps one of the package sentinels.
func (e *Engine) ApplyMove(from, to string, promo board.PieceType) (Result, error) {
	fail := func(err error) (Result, error) {
		return Result{}, &MoveError{From: from, To: to, Promotion: promo, Err: err}
	}

	fromSq, err := board.ParseSquare(from)
	if err != nil {
		return fail(err)
	}
	toSq, err := board.ParseSquare(to)
	if err != nil {
		return fail(err)
	}
	if e.status.IsTerminal() {
		return fail(fmt.Errorf("%w: %s", ErrGameOver, e.status))
	}

	piece := e.pos.PieceAt(fromSq)
	if piece == board.NoPiece {
		return fail(fmt.Errorf("%w: no piece on %s", ErrIllegalMove, fromSq))
	}
	if piece.Color() != e.pos.SideToMove {
		return fail(fmt.Errorf("%w: %s to move", ErrWrongTurn, e.pos.SideToMove))
	}

	m, err := e.match(fromSq, toSq, promo)
	if err != nil {
		return fail(err)
	}

	san := e.pos.SAN(m)
	captured := e.pos.MakeMove(m)
	e.history = append(e.history, seen{e.pos.Hash, e.pos.Key()})
	e.moves = append(e.moves, m)
	e.san = append(e.san, san)
	e.status = e.evaluate()

	res := e.result(m, captured)
	res.SAN = san
	return res, nil
}

// ApplySAN plays a move written in algebraic notation, such as "Nf3",
// "exd5" or "e8=N". Errors are reported as for ApplyMove.
func (e *Engine) ApplySAN(s string) (Result, error) {
	if e.status.IsTerminal() {
		return Result{}, &MoveError{From: s, Promotion: board.NoPieceType,
			Err: fmt.Errorf("%w: %s", ErrGameOver, e.status)}
	}
	m, err := e.pos.ParseSAN(s)
	if err != nil {
		return Result{}, &MoveError{From: s, Promotion: board.NoPieceType,
			Err: fmt.Errorf("%w: %w", ErrIllegalMove, err)}
	}
	return e.ApplyMove(m.From().String(), m.To().String(), m.Promotion())
}

// match finds the generated move for from-to with the requested promotion.
func (e *Engine) match(from, to board.Square, promo board.PieceType) (board.Move, error) {
	var candidates []board.Move
	for _, m := range e.pos.GenerateLegalMoves() {
		if m.From() == from && m.To() == to {
			candidates = append(candidates, m)
		}
	}
	if len(candidates) == 0 {
		return board.NoMove, fmt.Errorf("%w: %s cannot reach %s", ErrIllegalMove, from, to)
	}
	if !candidates[0].IsPromotion() {
		return candidates[0], nil
	}

	if promo == board.NoPieceType {
		if e.strictPromotion {
			return board.NoMove, ErrPromotionRequired
		}
		promo = board.Queen
	}
	for _, m := range candidates {
		if m.Promotion() == promo {
			return m, nil
		}
	}
	return board.NoMove, fmt.Errorf("%w: cannot promote to %s", ErrIllegalMove, promo)
}

// evaluate derives the game status. Mate and stalemate take precedence
// over the draw rules.
func (e *Engine) evaluate() Status {
	switch {
	case !e.pos.HasLegalMoves():
		if e.pos.InCheck() {
			return Checkmate
		}
		return Stalemate
	case e.pos.IsInsufficientMaterial():
		return InsufficientMaterial
	case e.pos.IsFiftyMoveRule():
		return FiftyMoveRule
	case e.repetitions() >= 3:
		return ThreefoldRepetition
	}
	return InProgress
}

func (e *Engine) result(m board.Move, captured board.Piece) Result {
	return Result{
		Move:       m,
		Captured:   captured,
		Board:      e.pos.Grid(),
		SideToMove: e.pos.SideToMove,
		Position:   e.pos,
		Check:      e.pos.InCheck(),
		Checkmate:  e.status == Checkmate,
		Stalemate:  e.status == Stalemate,
		Draw:       e.status.IsDraw(),
		Status:     e.status,
	}
}
