package engine

import "github.com/hailam/chessrules/internal/board"

// Status is the state of the game as a whole.
type Status int

const (
	InProgress Status = iota
	Checkmate
	Stalemate
	InsufficientMaterial
	FiftyMoveRule
	ThreefoldRepetition
)

var statusNames = [...]string{
	InProgress:           "in progress",
	Checkmate:            "checkmate",
	Stalemate:            "stalemate",
	InsufficientMaterial: "insufficient material",
	FiftyMoveRule:        "fifty-move rule",
	ThreefoldRepetition:  "threefold repetition",
}

func (s Status) String() string {
	if s < 0 || int(s) >= len(statusNames) {
		return "unknown"
	}
	return statusNames[s]
}

// IsTerminal reports whether no further moves may be played.
func (s Status) IsTerminal() bool {
	return s != InProgress
}

// IsDraw reports whether the game ended without a winner.
func (s Status) IsDraw() bool {
	return s >= Stalemate
}

// Result is what a successful ApplyMove returns.
type Result struct {
	Move     board.Move
	SAN      string
	Captured board.Piece

	Board      board.Grid
	SideToMove board.Color
	Position   board.Position

	Check     bool
	Checkmate bool
	Stalemate bool
	Draw      bool
	Status    Status
}

// Winner returns the side that delivered mate, or NoColor.
func (r Result) Winner() board.Color {
	if r.Status == Checkmate {
		return r.SideToMove.Other()
	}
	return board.NoColor
}
