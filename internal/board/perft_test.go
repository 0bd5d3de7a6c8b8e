package board

import "testing"

// perft counts leaf nodes of the legal move tree to the given depth.
func perft(p Position, depth int) int64 {
	moves := p.GenerateLegalMoves()
	if depth == 1 {
		return int64(len(moves))
	}
	var nodes int64
	for _, m := range moves {
		next := p
		next.MakeMove(m)
		nodes += perft(next, depth-1)
	}
	return nodes
}

func TestPerft(t *testing.T) {
	tests := []struct {
		name  string
		fen   string
		depth int
		want  int64
	}{
		{"start/1", StartFEN, 1, 20},
		{"start/2", StartFEN, 2, 400},
		{"start/3", StartFEN, 3, 8902},
		{"kiwipete/1", kiwipete, 1, 48},
		{"kiwipete/2", kiwipete, 2, 2039},
		{"endgame/3", "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1", 3, 2812},
		{"promotions/2", "r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1", 2, 264},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pos, err := ParseFEN(tc.fen)
			if err != nil {
				t.Fatalf("ParseFEN: %v", err)
			}
			if got := perft(pos, tc.depth); got != tc.want {
				t.Errorf("perft(%d) = %d, want %d", tc.depth, got, tc.want)
			}
		})
	}
}

func TestPerftDeep(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping deep perft in short mode")
	}
	if got := perft(NewPosition(), 4); got != 197281 {
		t.Errorf("perft(4) = %d, want 197281", got)
	}
	pos, err := ParseFEN(kiwipete)
	if err != nil {
		t.Fatal(err)
	}
	if got := perft(pos, 3); got != 97862 {
		t.Errorf("kiwipete perft(3) = %d, want 97862", got)
	}
}
