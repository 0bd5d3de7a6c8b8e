package board

import (
	"cmp"
	"slices"
)

// castling describes one castling option: where the king and rook start
// and end, which squares must be empty and which must not be attacked.
type castling struct {
	right            CastlingRights
	kingFrom, kingTo Square
	rookFrom, rookTo Square
	empty            Bitboard
	safe             [2]Square
}

var castlings = [2][2]castling{
	White: {
		{WhiteKingSide, E1, G1, H1, F1, SquareBB(F1) | SquareBB(G1), [2]Square{F1, G1}},
		{WhiteQueenSide, E1, C1, A1, D1, SquareBB(B1) | SquareBB(C1) | SquareBB(D1), [2]Square{D1, C1}},
	},
	Black: {
		{BlackKingSide, E8, G8, H8, F8, SquareBB(F8) | SquareBB(G8), [2]Square{F8, G8}},
		{BlackQueenSide, E8, C8, A8, D8, SquareBB(B8) | SquareBB(C8) | SquareBB(D8), [2]Square{D8, C8}},
	},
}

// GeneratePseudoLegalMoves returns every move that follows the piece
// movement rules, including ones that leave the mover's king attacked.
// Castling is fully checked here since it depends on attacked squares.
func (p *Position) GeneratePseudoLegalMoves() []Move {
	moves := make([]Move, 0, 64)
	us := p.SideToMove
	them := us.Other()
	own := p.Occupied[us]

	moves = p.appendPawnMoves(moves)

	for pt := Knight; pt <= King; pt++ {
		for pieces := p.Pieces[us][pt]; pieces != 0; {
			from := pieces.PopLSB()
			var targets Bitboard
			switch pt {
			case Knight:
				targets = KnightAttacks(from)
			case Bishop:
				targets = BishopAttacks(from, p.AllOccupied)
			case Rook:
				targets = RookAttacks(from, p.AllOccupied)
			case Queen:
				targets = QueenAttacks(from, p.AllOccupied)
			case King:
				targets = KingAttacks(from)
			}
			for targets &^= own; targets != 0; {
				to := targets.PopLSB()
				var flags Move
				if p.Occupied[them].Has(to) {
					flags = FlagCapture
				}
				moves = append(moves, newMove(from, to, flags))
			}
		}
	}

	for _, c := range castlings[us] {
		if p.canCastle(c) {
			moves = append(moves, newMove(c.kingFrom, c.kingTo, FlagCastling))
		}
	}
	return moves
}

func (p *Position) appendPawnMoves(moves []Move) []Move {
	us := p.SideToMove
	them := us.Other()
	forward, startRank, lastRank := 8, 1, 7
	if us == Black {
		forward, startRank, lastRank = -8, 6, 0
	}

	add := func(from, to Square, flags Move) {
		if to.Rank() != lastRank {
			moves = append(moves, newMove(from, to, flags))
			return
		}
		for _, promo := range [...]PieceType{Knight, Bishop, Rook, Queen} {
			moves = append(moves, newPromotion(from, to, promo, flags))
		}
	}

	for pawns := p.Pieces[us][Pawn]; pawns != 0; {
		from := pawns.PopLSB()
		one := Square(int(from) + forward)
		if !p.AllOccupied.Has(one) {
			add(from, one, 0)
			two := Square(int(one) + forward)
			if from.Rank() == startRank && !p.AllOccupied.Has(two) {
				moves = append(moves, newMove(from, two, FlagDoublePush))
			}
		}
		for caps := PawnAttacks(from, us) & p.Occupied[them]; caps != 0; {
			add(from, caps.PopLSB(), FlagCapture)
		}
		if ep := p.EnPassant; ep != NoSquare && PawnAttacks(from, us).Has(ep) &&
			p.Pieces[them][Pawn].Has(Square(int(ep)-forward)) {
			moves = append(moves, newMove(from, ep, FlagCapture|FlagEnPassant))
		}
	}
	return moves
}

func (p *Position) canCastle(c castling) bool {
	us := p.SideToMove
	them := us.Other()
	if p.CastlingRights&c.right == 0 ||
		!p.Pieces[us][King].Has(c.kingFrom) ||
		!p.Pieces[us][Rook].Has(c.rookFrom) ||
		p.AllOccupied&c.empty != 0 {
		return false
	}
	if p.IsSquareAttacked(c.kingFrom, them) {
		return false
	}
	for _, sq := range c.safe {
		if p.IsSquareAttacked(sq, them) {
			return false
		}
	}
	return true
}

// MakeMove applies m, which must come from the move generator, and returns
// the captured piece or NoPiece. It does not check legality.
func (p *Position) MakeMove(m Move) Piece {
	us := p.SideToMove
	from, to := m.From(), m.To()

	p.Hash ^= p.stateHash()

	moving := p.remove(from)
	var captured Piece
	if m.IsEnPassant() {
		captured = p.remove(NewSquare(to.File(), from.Rank()))
	} else {
		captured = p.remove(to)
	}
	if m.IsPromotion() {
		moving = NewPiece(m.Promotion(), us)
	}
	p.put(moving, to)

	if m.IsCastling() {
		for _, c := range castlings[us] {
			if c.kingTo == to {
				p.put(p.remove(c.rookFrom), c.rookTo)
			}
		}
	}

	p.CastlingRights &^= rightsLost[from] | rightsLost[to]

	p.EnPassant = NoSquare
	if m.IsDoublePush() {
		p.EnPassant = Square((int(from) + int(to)) / 2)
	}

	if moving.Type() == Pawn || m.IsPromotion() || captured != NoPiece {
		p.HalfMoveClock = 0
	} else {
		p.HalfMoveClock++
	}
	if us == Black {
		p.FullMoveNumber++
	}
	p.SideToMove = us.Other()

	p.Hash ^= p.stateHash()
	return captured
}

// IsLegal plays m on a copy and reports whether the mover's king is safe.
func (p *Position) IsLegal(m Move) bool {
	next := *p
	next.MakeMove(m)
	ksq := next.KingSquare(p.SideToMove)
	return ksq != NoSquare && !next.IsSquareAttacked(ksq, next.SideToMove)
}

// GenerateLegalMoves returns the legal moves ordered by origin, destination
// and promotion piece.
func (p *Position) GenerateLegalMoves() []Move {
	moves := slices.DeleteFunc(p.GeneratePseudoLegalMoves(), func(m Move) bool {
		return !p.IsLegal(m)
	})
	slices.SortFunc(moves, compareMoves)
	return moves
}

func compareMoves(a, b Move) int {
	if c := cmp.Compare(a.From(), b.From()); c != 0 {
		return c
	}
	if c := cmp.Compare(a.To(), b.To()); c != 0 {
		return c
	}
	return cmp.Compare(a.Promotion(), b.Promotion())
}

// HasLegalMoves reports whether the side to move has at least one legal move.
func (p *Position) HasLegalMoves() bool {
	for _, m := range p.GeneratePseudoLegalMoves() {
		if p.IsLegal(m) {
			return true
		}
	}
	return false
}

// IsCheckmate reports whether the side to move is in check with no legal move.
func (p *Position) IsCheckmate() bool {
	return p.InCheck() && !p.HasLegalMoves()
}

// IsStalemate reports whether the side to move has no legal move but is not in check.
func (p *Position) IsStalemate() bool {
	return !p.InCheck() && !p.HasLegalMoves()
}

// IsFiftyMoveRule reports whether fifty full moves passed without a pawn
// move or capture.
func (p *Position) IsFiftyMoveRule() bool {
	return p.HalfMoveClock >= 100
}

// IsInsufficientMaterial reports whether no sequence of legal moves can
// mate: bare kings, a single minor piece, or only bishops all standing on
// squares of one color.
func (p *Position) IsInsufficientMaterial() bool {
	for c := White; c <= Black; c++ {
		if p.Pieces[c][Pawn]|p.Pieces[c][Rook]|p.Pieces[c][Queen] != 0 {
			return false
		}
	}
	knights := p.Pieces[White][Knight] | p.Pieces[Black][Knight]
	bishops := p.Pieces[White][Bishop] | p.Pieces[Black][Bishop]
	if (knights | bishops).PopCount() <= 1 {
		return true
	}
	return knights == 0 && (bishops&LightSquares == 0 || bishops&DarkSquares == 0)
}

// HasMatingMaterial reports whether color c alone has enough pieces to
// mate a bare king in principle.
func (p *Position) HasMatingMaterial(c Color) bool {
	if p.Pieces[c][Pawn]|p.Pieces[c][Rook]|p.Pieces[c][Queen] != 0 {
		return true
	}
	minors := p.Pieces[c][Knight] | p.Pieces[c][Bishop]
	if minors.PopCount() < 2 {
		return false
	}
	bishops := p.Pieces[c][Bishop]
	return p.Pieces[c][Knight] != 0 || (bishops&LightSquares != 0 && bishops&DarkSquares != 0)
}
