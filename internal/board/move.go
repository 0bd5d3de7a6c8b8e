package board

import "fmt"

// Move packs a move and its derived flags:
//
//	bits 0-5   from square
//	bits 6-11  to square
//	bits 12-14 promotion piece type (NoPieceType when none)
//	bits 15-19 flags
type Move uint32

const (
	FlagCapture Move = 1 << (15 + iota)
	FlagEnPassant
	FlagCastling
	FlagDoublePush
	FlagPromotion
)

// NoMove is the zero move.
const NoMove Move = 0

func newMove(from, to Square, flags Move) Move {
	return Move(from) | Move(to)<<6 | Move(NoPieceType)<<12 | flags
}

func newPromotion(from, to Square, promo PieceType, flags Move) Move {
	return Move(from) | Move(to)<<6 | Move(promo)<<12 | flags | FlagPromotion
}

// From returns the origin square.
func (m Move) From() Square {
	return Square(m & 0x3F)
}

// To returns the destination square.
func (m Move) To() Square {
	return Square(m >> 6 & 0x3F)
}

// Promotion returns the piece a pawn becomes, or NoPieceType.
func (m Move) Promotion() PieceType {
	return PieceType(m >> 12 & 0x7)
}

// IsCapture reports whether m takes a piece, en passant included.
func (m Move) IsCapture() bool { return m&FlagCapture != 0 }

// IsEnPassant reports whether m is an en passant capture.
func (m Move) IsEnPassant() bool { return m&FlagEnPassant != 0 }

// IsCastling reports whether m is a king move that also relocates a rook.
func (m Move) IsCastling() bool { return m&FlagCastling != 0 }

// IsDoublePush reports whether m advances a pawn two squares.
func (m Move) IsDoublePush() bool { return m&FlagDoublePush != 0 }

// IsPromotion reports whether m turns a pawn into another piece.
func (m Move) IsPromotion() bool { return m&FlagPromotion != 0 }

// String returns UCI long algebraic notation, e.g. "e2e4" or "e7e8q".
func (m Move) String() string {
	if m == NoMove {
		return "0000"
	}
	s := m.From().String() + m.To().String()
	if m.IsPromotion() {
		s += string(m.Promotion().Char())
	}
	return s
}

// ParseUCI splits a UCI move such as "e7e8q" into its parts. The
// promotion is NoPieceType when the suffix is absent.
func ParseUCI(s string) (from, to Square, promo PieceType, err error) {
	promo = NoPieceType
	if len(s) != 4 && len(s) != 5 {
		return NoSquare, NoSquare, promo, fmt.Errorf("invalid move %q", s)
	}
	if from, err = ParseSquare(s[0:2]); err != nil {
		return NoSquare, NoSquare, promo, err
	}
	if to, err = ParseSquare(s[2:4]); err != nil {
		return NoSquare, NoSquare, promo, err
	}
	if len(s) == 5 {
		if promo = PromotionFromChar(s[4]); promo == NoPieceType {
			return NoSquare, NoSquare, promo, fmt.Errorf("invalid promotion piece %q", s[4])
		}
	}
	return from, to, promo, nil
}
