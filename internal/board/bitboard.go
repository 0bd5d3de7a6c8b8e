package board

import "math/bits"

// Bitboard is a set of squares, bit n standing for Square(n).
type Bitboard uint64

const (
	FileA Bitboard = 0x0101010101010101
	FileH Bitboard = 0x8080808080808080
	Rank1 Bitboard = 0x00000000000000FF
	Rank3 Bitboard = 0x0000000000FF0000
	Rank6 Bitboard = 0x0000FF0000000000
	Rank8 Bitboard = 0xFF00000000000000

	LightSquares Bitboard = 0x55AA55AA55AA55AA
	DarkSquares  Bitboard = ^LightSquares
)

// SquareBB returns the set containing only sq.
func SquareBB(sq Square) Bitboard {
	return 1 << sq
}

// Has reports whether sq is in the set.
func (b Bitboard) Has(sq Square) bool {
	return b&(1<<sq) != 0
}

// PopCount returns the number of squares in the set.
func (b Bitboard) PopCount() int {
	return bits.OnesCount64(uint64(b))
}

// LSB returns the lowest square in the set, or NoSquare when empty.
func (b Bitboard) LSB() Square {
	if b == 0 {
		return NoSquare
	}
	return Square(bits.TrailingZeros64(uint64(b)))
}

// MSB returns the highest square in the set, or NoSquare when empty.
func (b Bitboard) MSB() Square {
	if b == 0 {
		return NoSquare
	}
	return Square(63 - bits.LeadingZeros64(uint64(b)))
}

// PopLSB removes and returns the lowest square.
func (b *Bitboard) PopLSB() Square {
	sq := b.LSB()
	*b &= *b - 1
	return sq
}

func (b Bitboard) north() Bitboard { return b << 8 }
func (b Bitboard) south() Bitboard { return b >> 8 }
func (b Bitboard) east() Bitboard  { return (b << 1) &^ FileA }
func (b Bitboard) west() Bitboard  { return (b >> 1) &^ FileH }
