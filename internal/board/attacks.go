package board

// Ray directions. The first four grow toward higher square indexes.
const (
	dirN = iota
	dirE
	dirNE
	dirNW
	dirS
	dirW
	dirSE
	dirSW
)

var (
	knightAttacks [64]Bitboard
	kingAttacks   [64]Bitboard
	pawnAttacks   [2][64]Bitboard
	rays          [8][64]Bitboard
)

var rayStep = [8][2]int{
	dirN: {0, 1}, dirE: {1, 0}, dirNE: {1, 1}, dirNW: {-1, 1},
	dirS: {0, -1}, dirW: {-1, 0}, dirSE: {1, -1}, dirSW: {-1, -1},
}

func init() {
	knightSteps := [8][2]int{{1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}, {-2, 1}, {-1, 2}}
	for sq := A1; sq <= H8; sq++ {
		f, r := sq.File(), sq.Rank()
		for _, d := range knightSteps {
			knightAttacks[sq] |= offset(f+d[0], r+d[1])
		}
		for dir, d := range rayStep {
			kingAttacks[sq] |= offset(f+d[0], r+d[1])
			for nf, nr := f+d[0], r+d[1]; onBoard(nf, nr); nf, nr = nf+d[0], nr+d[1] {
				rays[dir][sq] |= SquareBB(NewSquare(nf, nr))
			}
		}
		pawnAttacks[White][sq] = offset(f-1, r+1) | offset(f+1, r+1)
		pawnAttacks[Black][sq] = offset(f-1, r-1) | offset(f+1, r-1)
	}
}

func onBoard(f, r int) bool {
	return f >= 0 && f < 8 && r >= 0 && r < 8
}

func offset(f, r int) Bitboard {
	if !onBoard(f, r) {
		return 0
	}
	return SquareBB(NewSquare(f, r))
}

// slide returns the ray from sq in dir, cut after the first occupied square.
func slide(dir int, sq Square, occupied Bitboard) Bitboard {
	ray := rays[dir][sq]
	blockers := ray & occupied
	if blockers == 0 {
		return ray
	}
	var first Square
	if dir < dirS {
		first = blockers.LSB()
	} else {
		first = blockers.MSB()
	}
	return ray &^ rays[dir][first]
}

// KnightAttacks returns the squares a knight on sq attacks.
func KnightAttacks(sq Square) Bitboard {
	return knightAttacks[sq]
}

// KingAttacks returns the squares a king on sq attacks.
func KingAttacks(sq Square) Bitboard {
	return kingAttacks[sq]
}

// PawnAttacks returns the diagonal capture squares of a c pawn on sq.
func PawnAttacks(sq Square, c Color) Bitboard {
	return pawnAttacks[c][sq]
}

// BishopAttacks returns diagonal attacks from sq given the board occupancy.
func BishopAttacks(sq Square, occupied Bitboard) Bitboard {
	return slide(dirNE, sq, occupied) | slide(dirNW, sq, occupied) |
		slide(dirSE, sq, occupied) | slide(dirSW, sq, occupied)
}

// RookAttacks returns orthogonal attacks from sq given the board occupancy.
func RookAttacks(sq Square, occupied Bitboard) Bitboard {
	return slide(dirN, sq, occupied) | slide(dirE, sq, occupied) |
		slide(dirS, sq, occupied) | slide(dirW, sq, occupied)
}

// QueenAttacks is the union of bishop and rook attacks.
func QueenAttacks(sq Square, occupied Bitboard) Bitboard {
	return BishopAttacks(sq, occupied) | RookAttacks(sq, occupied)
}

// AttackersByColor returns the pieces of color c that attack sq.
func (p *Position) AttackersByColor(sq Square, c Color) Bitboard {
	occ := p.AllOccupied
	diag := p.Pieces[c][Bishop] | p.Pieces[c][Queen]
	line := p.Pieces[c][Rook] | p.Pieces[c][Queen]
	return pawnAttacks[c.Other()][sq]&p.Pieces[c][Pawn] |
		knightAttacks[sq]&p.Pieces[c][Knight] |
		kingAttacks[sq]&p.Pieces[c][King] |
		BishopAttacks(sq, occ)&diag |
		RookAttacks(sq, occ)&line
}

// IsSquareAttacked reports whether any piece of byColor attacks sq.
func (p *Position) IsSquareAttacked(sq Square, byColor Color) bool {
	return p.AttackersByColor(sq, byColor) != 0
}
