package board

// Zobrist keys, generated from a fixed seed so hashes are stable across runs.
var (
	zobristPiece      [2][6][64]uint64
	zobristEnPassant  [8]uint64
	zobristCastling   [16]uint64
	zobristSideToMove uint64
)

func init() {
	// xorshift64*
	state := uint64(0x98F107A2BEEF1234)
	next := func() uint64 {
		state ^= state >> 12
		state ^= state << 25
		state ^= state >> 27
		return state * 0x2545F4914F6CDD1D
	}
	for c := range zobristPiece {
		for pt := range zobristPiece[c] {
			for sq := range zobristPiece[c][pt] {
				zobristPiece[c][pt][sq] = next()
			}
		}
	}
	for i := range zobristEnPassant {
		zobristEnPassant[i] = next()
	}
	for i := range zobristCastling {
		zobristCastling[i] = next()
	}
	zobristSideToMove = next()
}

// stateHash covers everything but piece placement.
func (p *Position) stateHash() uint64 {
	h := zobristCastling[p.CastlingRights]
	if p.SideToMove == Black {
		h ^= zobristSideToMove
	}
	if ep := p.capturableEnPassant(); ep != NoSquare {
		h ^= zobristEnPassant[ep.File()]
	}
	return h
}

// ComputeHash rebuilds the Zobrist hash from scratch.
func (p *Position) ComputeHash() uint64 {
	h := p.stateHash()
	for c := White; c <= Black; c++ {
		for pt := Pawn; pt <= King; pt++ {
			for bb := p.Pieces[c][pt]; bb != 0; {
				h ^= zobristPiece[c][pt][bb.PopLSB()]
			}
		}
	}
	return h
}
