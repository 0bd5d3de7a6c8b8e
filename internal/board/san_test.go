package board

import (
	"errors"
	"testing"
)

func TestSAN(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		uci  string
		want string
	}{
		{"pawn push", StartFEN, "e2e4", "e4"},
		{"knight", StartFEN, "g1f3", "Nf3"},
		{"file disambiguation", "7k/8/8/8/8/8/8/R4R1K w - - 0 1", "a1c1", "Rac1"},
		{"rank disambiguation", "7k/8/8/R7/8/8/8/R6K w - - 0 1", "a1a3", "R1a3"},
		{"square disambiguation", "k7/8/3Q4/8/3Q1Q2/8/8/7K w - - 0 1", "d4e5", "Qd4e5"},
		{"kingside castling", "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", "e1g1", "O-O"},
		{"queenside castling", "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", "e1c1", "O-O-O"},
		{"promotion with check", "k7/4P3/8/8/8/8/8/4K3 w - - 0 1", "e7e8q", "e8=Q+"},
		{"underpromotion", "k7/4P3/8/8/8/8/8/4K3 w - - 0 1", "e7e8n", "e8=N"},
		{"en passant", "4k3/8/8/3pP3/8/8/8/4K3 w - d6 0 1", "e5d6", "exd6"},
		{"mate", "rnbqkbnr/pppp1ppp/8/4p3/6P1/5P2/PPPPP2P/RNBQKBNR b KQkq g3 0 2", "d8h4", "Qh4#"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos := mustFEN(t, tt.fen)
			m, ok := find(pos.GenerateLegalMoves(), tt.uci)
			if !ok {
				t.Fatalf("%s not legal", tt.uci)
			}
			if got := pos.SAN(m); got != tt.want {
				t.Errorf("SAN(%s) = %q, want %q", tt.uci, got, tt.want)
			}
		})
	}
}

func TestParseSAN(t *testing.T) {
	tests := []struct {
		fen  string
		san  string
		want string
	}{
		{StartFEN, "Nf3", "g1f3"},
		{StartFEN, "e4!?", "e2e4"},
		{"r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", "0-0", "e1g1"},
		{"r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", "O-O-O", "e1c1"},
		{"k7/4P3/8/8/8/8/8/4K3 w - - 0 1", "e8=R", "e7e8r"},
		{"k7/4P3/8/8/8/8/8/4K3 w - - 0 1", "e8=Q", "e7e8q"},
		{"7k/8/8/8/8/8/8/R4R1K w - - 0 1", "Rfc1", "f1c1"},
	}
	for _, tt := range tests {
		pos := mustFEN(t, tt.fen)
		m, err := pos.ParseSAN(tt.san)
		if err != nil {
			t.Errorf("ParseSAN(%q): %v", tt.san, err)
			continue
		}
		if m.String() != tt.want {
			t.Errorf("ParseSAN(%q) = %s, want %s", tt.san, m, tt.want)
		}
	}

	for _, bad := range []string{"", "Rc1", "Ke3", "Nf6", "xyz"} {
		pos := mustFEN(t, "7k/8/8/8/8/8/8/R4R1K w - - 0 1")
		if _, err := pos.ParseSAN(bad); !errors.Is(err, ErrInvalidSAN) {
			t.Errorf("ParseSAN(%q) = %v, want ErrInvalidSAN", bad, err)
		}
	}
}
