package board

import (
	"fmt"
	"strings"
)

// CastlingRights is a bit set of the four castling options.
type CastlingRights uint8

const (
	WhiteKingSide CastlingRights = 1 << iota
	WhiteQueenSide
	BlackKingSide
	BlackQueenSide
	NoCastling  CastlingRights = 0
	AllCastling                = WhiteKingSide | WhiteQueenSide | BlackKingSide | BlackQueenSide
)

// String returns the FEN castling field.
func (cr CastlingRights) String() string {
	if cr == NoCastling {
		return "-"
	}
	var sb strings.Builder
	for i, c := range "KQkq" {
		if cr&(1<<i) != 0 {
			sb.WriteRune(c)
		}
	}
	return sb.String()
}

// Has reports whether color c may still castle on the given wing.
func (cr CastlingRights) Has(c Color, kingSide bool) bool {
	return cr&castleRight(c, kingSide) != 0
}

func castleRight(c Color, kingSide bool) CastlingRights {
	r := WhiteQueenSide
	if kingSide {
		r = WhiteKingSide
	}
	if c == Black {
		r <<= 2
	}
	return r
}

// rightsLost maps a square to the castling rights that vanish once a
// piece leaves or lands on it.
var rightsLost = func() (t [64]CastlingRights) {
	t[E1] = WhiteKingSide | WhiteQueenSide
	t[H1] = WhiteKingSide
	t[A1] = WhiteQueenSide
	t[E8] = BlackKingSide | BlackQueenSide
	t[H8] = BlackKingSide
	t[A8] = BlackQueenSide
	return t
}()

// Position is a complete game state. It holds only arrays and scalars so a
// plain assignment is a deep copy.
type Position struct {
	Pieces      [2][6]Bitboard
	Occupied    [2]Bitboard
	AllOccupied Bitboard

	SideToMove     Color
	CastlingRights CastlingRights
	EnPassant      Square // NoSquare when the last move was not a double push
	HalfMoveClock  int
	FullMoveNumber int

	Hash uint64
}

// NewPosition returns the standard starting position.
func NewPosition() Position {
	pos, err := ParseFEN(StartFEN)
	if err != nil {
		panic(err)
	}
	return pos
}

// PieceAt returns the piece on sq, or NoPiece.
func (p *Position) PieceAt(sq Square) Piece {
	bb := SquareBB(sq)
	if p.AllOccupied&bb == 0 {
		return NoPiece
	}
	c := White
	if p.Occupied[Black]&bb != 0 {
		c = Black
	}
	for pt := Pawn; pt <= King; pt++ {
		if p.Pieces[c][pt]&bb != 0 {
			return NewPiece(pt, c)
		}
	}
	return NoPiece
}

// KingSquare returns the square of c's king, or NoSquare if it has none.
func (p *Position) KingSquare(c Color) Square {
	return p.Pieces[c][King].LSB()
}

// InCheck reports whether the side to move is in check.
func (p *Position) InCheck() bool {
	ksq := p.KingSquare(p.SideToMove)
	return ksq != NoSquare && p.IsSquareAttacked(ksq, p.SideToMove.Other())
}

func (p *Position) put(pc Piece, sq Square) {
	c, pt := pc.Color(), pc.Type()
	bb := SquareBB(sq)
	p.Pieces[c][pt] |= bb
	p.Occupied[c] |= bb
	p.AllOccupied |= bb
	p.Hash ^= zobristPiece[c][pt][sq]
}

func (p *Position) remove(sq Square) Piece {
	pc := p.PieceAt(sq)
	if pc == NoPiece {
		return NoPiece
	}
	c, pt := pc.Color(), pc.Type()
	bb := SquareBB(sq)
	p.Pieces[c][pt] &^= bb
	p.Occupied[c] &^= bb
	p.AllOccupied &^= bb
	p.Hash ^= zobristPiece[c][pt][sq]
	return pc
}

// Grid is a snapshot of the board indexed [rank][file], rank 0 being the
// first rank.
type Grid [8][8]Piece

// At returns the piece on sq.
func (g *Grid) At(sq Square) Piece {
	return g[sq.Rank()][sq.File()]
}

// Grid copies the piece layout out of the position.
func (p *Position) Grid() Grid {
	var g Grid
	for sq := A1; sq <= H8; sq++ {
		g[sq.Rank()][sq.File()] = p.PieceAt(sq)
	}
	return g
}

// Key identifies a position for repetition purposes: two positions repeat
// iff placement, side to move, castling rights and en passant square agree.
// The en passant square only counts when a pawn can capture onto it.
type Key struct {
	Pieces         [2][6]Bitboard
	SideToMove     Color
	CastlingRights CastlingRights
	EnPassant      Square
}

// Key returns the repetition key of the position.
func (p *Position) Key() Key {
	return Key{
		Pieces:         p.Pieces,
		SideToMove:     p.SideToMove,
		CastlingRights: p.CastlingRights,
		EnPassant:      p.capturableEnPassant(),
	}
}

// capturableEnPassant returns the en passant square if a pawn of the side to
// move attacks it, NoSquare otherwise.
func (p *Position) capturableEnPassant() Square {
	if p.EnPassant == NoSquare {
		return NoSquare
	}
	us := p.SideToMove
	if pawnAttacks[us.Other()][p.EnPassant]&p.Pieces[us][Pawn] == 0 {
		return NoSquare
	}
	return p.EnPassant
}

// Validate checks the structural invariants a playable position must hold.
func (p *Position) Validate() error {
	for c := White; c <= Black; c++ {
		if n := p.Pieces[c][King].PopCount(); n != 1 {
			return fmt.Errorf("%s has %d kings, want 1", c, n)
		}
	}
	if (p.Pieces[White][Pawn]|p.Pieces[Black][Pawn])&(Rank1|Rank8) != 0 {
		return fmt.Errorf("pawn on first or last rank")
	}
	if p.IsSquareAttacked(p.KingSquare(p.SideToMove.Other()), p.SideToMove) {
		return fmt.Errorf("side not to move is in check")
	}
	return nil
}

// String draws the board from White's side followed by the FEN.
func (p *Position) String() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		fmt.Fprintf(&sb, "%d ", rank+1)
		for file := 0; file < 8; file++ {
			sb.WriteString(" " + p.PieceAt(NewSquare(file, rank)).String())
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("   a b c d e f g h\n")
	sb.WriteString(p.FEN())
	return sb.String()
}
