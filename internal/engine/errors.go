package engine

import (
	"errors"
	"fmt"

	"github.com/hailam/chessrules/internal/board"
)

// Sentinel errors returned (wrapped in *MoveError) by ApplyMove.
var (
	// ErrInvalidSquare indicates a coordinate that is not on the board.
	ErrInvalidSquare = board.ErrInvalidSquare

	// ErrWrongTurn indicates the piece on the origin belongs to the side not to move.
	ErrWrongTurn = errors.New("wrong turn")

	// ErrIllegalMove indicates the move is not in the legal move set.
	ErrIllegalMove = errors.New("illegal move")

	// ErrPromotionRequired indicates a promoting move without a piece choice
	// while strict promotion is enabled. It is also an ErrIllegalMove.
	ErrPromotionRequired = fmt.Errorf("%w: promotion piece required", ErrIllegalMove)

	// ErrGameOver indicates a move attempt after the game ended.
	ErrGameOver = errors.New("game over")
)

// MoveError carries the rejected move along with the reason.
type MoveError struct {
	From      string
	To        string
	Promotion board.PieceType
	Err       error
}

func (e *MoveError) Error() string {
	move := e.From + e.To
	if e.Promotion < board.NoPieceType {
		move += string(e.Promotion.Char())
	}
	return fmt.Sprintf("move %q: %v", move, e.Err)
}

func (e *MoveError) Unwrap() error {
	return e.Err
}
