package board

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

const kiwipete = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"

func mustFEN(t *testing.T, fen string) Position {
	t.Helper()
	pos, err := ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN(%q): %v", fen, err)
	}
	return pos
}

func moveStrings(moves []Move) []string {
	out := make([]string, len(moves))
	for i, m := range moves {
		out[i] = m.String()
	}
	return out
}

func find(moves []Move, uci string) (Move, bool) {
	for _, m := range moves {
		if m.String() == uci {
			return m, true
		}
	}
	return NoMove, false
}

func TestCastlingGeneration(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		want map[string]bool
	}{
		{
			name: "both wings open",
			fen:  "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1",
			want: map[string]bool{"e1g1": true, "e1c1": true},
		},
		{
			name: "in check",
			fen:  "r3k2r/8/8/8/8/8/4r3/R3K2R w KQkq - 0 1",
			want: map[string]bool{"e1g1": false, "e1c1": false},
		},
		{
			name: "passes through attacked f1",
			fen:  "r3k2r/8/8/8/8/8/5r2/R3K2R w KQkq - 0 1",
			want: map[string]bool{"e1g1": false, "e1c1": true},
		},
		{
			name: "b1 attacked does not stop queenside",
			fen:  "r3k2r/8/8/8/8/8/1r6/R3K2R w KQkq - 0 1",
			want: map[string]bool{"e1g1": true, "e1c1": true},
		},
		{
			name: "blocked by knight",
			fen:  "r3k2r/8/8/8/8/8/8/RN2K1NR w KQkq - 0 1",
			want: map[string]bool{"e1g1": false, "e1c1": false},
		},
		{
			name: "right lost",
			fen:  "r3k2r/8/8/8/8/8/8/R3K2R w Qkq - 0 1",
			want: map[string]bool{"e1g1": false, "e1c1": true},
		},
		{
			name: "rook missing",
			fen:  "r3k2r/8/8/8/8/8/8/R3K3 w KQkq - 0 1",
			want: map[string]bool{"e1g1": false, "e1c1": true},
		},
		{
			name: "black kingside",
			fen:  "r3k2r/8/8/8/8/8/8/R3K2R b KQkq - 0 1",
			want: map[string]bool{"e8g8": true, "e8c8": true},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pos := mustFEN(t, tc.fen)
			moves := pos.GenerateLegalMoves()
			for uci, want := range tc.want {
				m, got := find(moves, uci)
				if got != want {
					t.Errorf("%s legal = %v, want %v", uci, got, want)
				}
				if got && !m.IsCastling() {
					t.Errorf("%s not flagged as castling", uci)
				}
			}
		})
	}
}

func TestMakeMoveCastlingRelocatesRook(t *testing.T) {
	pos := mustFEN(t, "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	m, ok := find(pos.GenerateLegalMoves(), "e1c1")
	if !ok {
		t.Fatal("e1c1 not generated")
	}
	pos.MakeMove(m)

	if got := pos.PieceAt(D1); got != NewPiece(Rook, White) {
		t.Errorf("d1 = %v, want R", got)
	}
	if got := pos.PieceAt(A1); got != NoPiece {
		t.Errorf("a1 = %v, want empty", got)
	}
	if pos.CastlingRights != BlackKingSide|BlackQueenSide {
		t.Errorf("castling = %v, want kq", pos.CastlingRights)
	}
	if pos.Hash != pos.ComputeHash() {
		t.Errorf("incremental hash %x != computed %x", pos.Hash, pos.ComputeHash())
	}
}

func TestCaptureOnRookHomeClearsRight(t *testing.T) {
	pos := mustFEN(t, "r3k2r/8/8/8/8/8/6b1/R3K2R b KQkq - 0 1")
	m, ok := find(pos.GenerateLegalMoves(), "g2h1")
	if !ok {
		t.Fatal("g2h1 not generated")
	}
	if !m.IsCapture() {
		t.Error("g2h1 not flagged as capture")
	}
	pos.MakeMove(m)
	if pos.CastlingRights.Has(White, true) {
		t.Error("white kingside right survived rook capture")
	}
	if !pos.CastlingRights.Has(White, false) {
		t.Error("white queenside right lost")
	}
}

func TestEnPassant(t *testing.T) {
	pos := NewPosition()
	for _, uci := range []string{"e2e4", "a7a6", "e4e5", "d7d5"} {
		m, ok := find(pos.GenerateLegalMoves(), uci)
		if !ok {
			t.Fatalf("%s not legal", uci)
		}
		pos.MakeMove(m)
	}
	if pos.EnPassant != D6 {
		t.Fatalf("en passant = %v, want d6", pos.EnPassant)
	}

	m, ok := find(pos.GenerateLegalMoves(), "e5d6")
	if !ok {
		t.Fatal("e5d6 not legal")
	}
	if !m.IsEnPassant() || !m.IsCapture() {
		t.Errorf("e5d6 flags: ep=%v capture=%v", m.IsEnPassant(), m.IsCapture())
	}
	captured := pos.MakeMove(m)
	if captured != NewPiece(Pawn, Black) {
		t.Errorf("captured %v, want p", captured)
	}
	if pos.PieceAt(D5) != NoPiece {
		t.Error("d5 pawn still on board")
	}
	if pos.PieceAt(D6) != NewPiece(Pawn, White) {
		t.Error("d6 should hold the white pawn")
	}
	if pos.EnPassant != NoSquare {
		t.Errorf("en passant not cleared: %v", pos.EnPassant)
	}
}

func TestEnPassantPinnedAlongRank(t *testing.T) {
	// Capturing would remove both pawns from the fifth rank and expose the king.
	pos := mustFEN(t, "8/8/8/KPp4r/8/8/8/7k w - c6 0 1")
	if _, ok := find(pos.GenerateLegalMoves(), "b5c6"); ok {
		t.Error("b5c6 should be illegal")
	}
}

func TestPromotions(t *testing.T) {
	pos := mustFEN(t, "1n5k/P7/8/8/8/8/8/K7 w - - 0 1")
	var got []string
	for _, m := range pos.GenerateLegalMoves() {
		if m.From() == A7 {
			got = append(got, m.String())
		}
	}
	want := []string{"a7a8n", "a7a8b", "a7a8r", "a7a8q", "a7b8n", "a7b8b", "a7b8r", "a7b8q"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("promotions mismatch (-want +got):\n%s", diff)
	}

	m, _ := find(pos.GenerateLegalMoves(), "a7b8n")
	pos.MakeMove(m)
	if got := pos.PieceAt(B8); got != NewPiece(Knight, White) {
		t.Errorf("b8 = %v, want N", got)
	}
	if pos.HalfMoveClock != 0 {
		t.Errorf("half-move clock = %d, want 0", pos.HalfMoveClock)
	}
}

func TestLegalMovesNeverLeaveKingInCheck(t *testing.T) {
	for _, fen := range []string{StartFEN, kiwipete, "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1"} {
		pos := mustFEN(t, fen)
		for _, m := range pos.GenerateLegalMoves() {
			next := pos
			next.MakeMove(m)
			if next.IsSquareAttacked(next.KingSquare(pos.SideToMove), next.SideToMove) {
				t.Errorf("%s: %v leaves own king attacked", fen, m)
			}
		}
	}
}

func TestTerminalPositions(t *testing.T) {
	tests := []struct {
		name         string
		fen          string
		checkmate    bool
		stalemate    bool
		insufficient bool
	}{
		{"back rank mate", "R6k/6pp/8/8/8/8/8/K7 b - - 0 1", true, false, false},
		{"king takes rook", "6Rk/8/8/8/8/8/8/K7 b - - 0 1", false, false, false},
		{"stalemate", "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1", false, true, false},
		{"bare kings", "8/8/8/4k3/8/8/8/4K3 w - - 0 1", false, false, true},
		{"king and knight", "8/8/8/4k3/8/8/8/4KN2 w - - 0 1", false, false, true},
		{"same colored bishops", "8/8/8/3bk3/8/8/8/4KB2 w - - 0 1", false, false, true},
		{"opposite colored bishops", "8/8/8/2b1k3/8/8/8/4KB2 w - - 0 1", false, false, false},
		{"knight and bishop", "8/8/8/4k3/8/8/8/3NKB2 w - - 0 1", false, false, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pos := mustFEN(t, tc.fen)
			if got := pos.IsCheckmate(); got != tc.checkmate {
				t.Errorf("IsCheckmate() = %v, want %v", got, tc.checkmate)
			}
			if got := pos.IsStalemate(); got != tc.stalemate {
				t.Errorf("IsStalemate() = %v, want %v", got, tc.stalemate)
			}
			if got := pos.IsInsufficientMaterial(); got != tc.insufficient {
				t.Errorf("IsInsufficientMaterial() = %v, want %v", got, tc.insufficient)
			}
		})
	}
}

func TestHasMatingMaterial(t *testing.T) {
	pos := mustFEN(t, "8/8/8/3bk3/8/8/8/3NKB2 w - - 0 1")
	if !pos.HasMatingMaterial(White) {
		t.Error("white with knight and bishop should have mating material")
	}
	if pos.HasMatingMaterial(Black) {
		t.Error("black with a lone bishop should not have mating material")
	}
}

func TestGenerateLegalMovesIsStable(t *testing.T) {
	pos := mustFEN(t, kiwipete)
	first := moveStrings(pos.GenerateLegalMoves())
	second := moveStrings(pos.GenerateLegalMoves())
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("move order changed between calls (-first +second):\n%s", diff)
	}
}

func TestRepetitionKeyEnPassant(t *testing.T) {
	tests := []struct {
		name       string
		fen        string
		push       string
		without    string
		capturable bool
	}{
		{
			name:    "no pawn can take",
			fen:     StartFEN,
			push:    "e2e4",
			without: "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq - 0 1",
		},
		{
			name:       "adjacent pawn can take",
			fen:        "4k3/8/8/8/3p4/8/4P3/4K3 w - - 0 1",
			push:       "e2e4",
			without:    "4k3/8/8/8/3pP3/8/8/4K3 b - - 0 1",
			capturable: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos := mustFEN(t, tt.fen)
			m, ok := find(pos.GenerateLegalMoves(), tt.push)
			if !ok {
				t.Fatalf("%s not generated", tt.push)
			}
			pos.MakeMove(m)
			if pos.EnPassant != E3 {
				t.Fatalf("en passant = %v, want e3", pos.EnPassant)
			}
			if pos.Hash != pos.ComputeHash() {
				t.Errorf("incremental hash %x != computed %x", pos.Hash, pos.ComputeHash())
			}

			plain := mustFEN(t, tt.without)
			sameKey := pos.Key() == plain.Key()
			sameHash := pos.Hash == plain.Hash
			if sameKey == tt.capturable || sameHash == tt.capturable {
				t.Errorf("key equal = %v, hash equal = %v, want %v", sameKey, sameHash, !tt.capturable)
			}
		})
	}
}
