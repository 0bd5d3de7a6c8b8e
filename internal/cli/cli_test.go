package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/hailam/chessrules/internal/session"
	"github.com/hailam/chessrules/internal/storage"
)

func init() {
	color.NoColor = true
}

func run(t *testing.T, cfg session.Config, script ...string) (string, *session.Session) {
	t.Helper()
	sess := session.New(cfg, nil)
	var out bytes.Buffer
	c := New(sess, strings.NewReader(strings.Join(script, "\n")+"\n"), &out)
	if err := c.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	return out.String(), sess
}

func TestRenderStartingBoard(t *testing.T) {
	out, _ := run(t, session.DefaultConfig())

	lines := strings.Split(out, "\n")
	if !strings.HasPrefix(lines[0], "8 ") || !strings.Contains(lines[0], "♜") {
		t.Errorf("first rank line = %q, want black back rank", lines[0])
	}
	if !strings.HasPrefix(lines[7], "1 ") || !strings.Contains(lines[7], "♔") {
		t.Errorf("last rank line = %q, want white back rank", lines[7])
	}
	if !strings.Contains(out, "White to move (paused)") {
		t.Errorf("missing status line in:\n%s", out)
	}
}

func TestFlip(t *testing.T) {
	out, _ := run(t, session.DefaultConfig(), "flip", "quit")

	var flipped string
	for _, l := range strings.Split(out, "\n") {
		if strings.Contains(l, "h  g  f") {
			flipped = l
		}
	}
	if flipped == "" {
		t.Errorf("flipped board has no reversed file labels:\n%s", out)
	}
}

func TestMoveRequiresPlay(t *testing.T) {
	out, sess := run(t, session.DefaultConfig(), "e2e4")

	if !strings.Contains(out, "game is paused") {
		t.Errorf("output = %q, want paused message", out)
	}
	if got := len(sess.Snapshot().Moves); got != 0 {
		t.Errorf("moves played = %d, want 0", got)
	}
}

func TestPlayMoves(t *testing.T) {
	out, sess := run(t, session.DefaultConfig(), "play", "e2e4", "move e7e5", "fen")

	v := sess.Snapshot()
	if len(v.Moves) != 2 || v.Moves[0] != "e2e4" || v.Moves[1] != "e7e5" {
		t.Fatalf("moves = %v, want [e2e4 e7e5]", v.Moves)
	}
	if !strings.Contains(out, "rnbqkbnr/pppp1ppp/8/4p3/4P3/8/PPPP1PPP/RNBQKBNR w KQkq e6 0 2") {
		t.Errorf("fen not printed:\n%s", out)
	}
}

func TestIllegalMove(t *testing.T) {
	out, sess := run(t, session.DefaultConfig(), "play", "e2e5", "e7e5")

	if !strings.Contains(out, "illegal move") {
		t.Errorf("missing illegal move error:\n%s", out)
	}
	if !strings.Contains(out, "wrong turn") {
		t.Errorf("missing turn error:\n%s", out)
	}
	if got := len(sess.Snapshot().Moves); got != 0 {
		t.Errorf("moves played = %d, want 0", got)
	}
}

func TestCheckmateOutcome(t *testing.T) {
	out, _ := run(t, session.DefaultConfig(), "play", "f2f3", "e7e5", "g2g4", "d8h4", "moves", "h2h3")

	if !strings.Contains(out, "Black wins by checkmate") {
		t.Errorf("missing outcome:\n%s", out)
	}
	if !strings.Contains(out, "(none)") {
		t.Errorf("moves after mate should be empty:\n%s", out)
	}
	if !strings.Contains(out, "game over") {
		t.Errorf("move after mate should be refused:\n%s", out)
	}
}

func TestMovesCommand(t *testing.T) {
	out, _ := run(t, session.DefaultConfig(), "moves", "moves g1", "moves z9")

	if !strings.Contains(out, "20 moves:") {
		t.Errorf("missing full move list:\n%s", out)
	}
	if !strings.Contains(out, "g1: f3 h3") {
		t.Errorf("missing knight targets:\n%s", out)
	}
	if !strings.Contains(out, "invalid square") {
		t.Errorf("missing square error:\n%s", out)
	}
}

func TestStrictPromotionPrompt(t *testing.T) {
	cfg := session.DefaultConfig()
	cfg.StrictPromotion = true
	out, _ := run(t, cfg, "play", "a2a4", "b7b5", "a4b5", "a7a6", "b5a6", "h7h6", "a6a7", "h6h5", "a7b8")

	if !strings.Contains(out, "a7b8 promotes") {
		t.Errorf("missing promotion prompt:\n%s", out)
	}
}

func TestClockAndStatus(t *testing.T) {
	out, _ := run(t, session.DefaultConfig(), "clock", "status", "pause", "new", "bogus")

	for _, want := range []string{"White 10:00", "Black 10:00", "paused", `unknown command "bogus"`} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestSANMovesAndHistory(t *testing.T) {
	out, sess := run(t, session.DefaultConfig(), "play", "e4", "move e5", "Nf3", "Nc6", "Bb5", "history")

	v := sess.Snapshot()
	if len(v.Moves) != 5 {
		t.Fatalf("moves = %v, want 5 plies", v.Moves)
	}
	if !strings.Contains(out, "1. e4 e5 2. Nf3 Nc6 3. Bb5") {
		t.Errorf("history not printed:\n%s", out)
	}
}

func TestFormatHistory(t *testing.T) {
	if got := formatHistory(nil); got != "(no moves)" {
		t.Errorf("empty history = %q", got)
	}
	if got := formatHistory([]string{"e4", "e5", "Qh5"}); got != "1. e4 e5 2. Qh5" {
		t.Errorf("history = %q", got)
	}
}

func TestResults(t *testing.T) {
	store, err := storage.OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory: %v", err)
	}
	defer store.Close()

	sess := session.New(session.DefaultConfig(), store)
	script := []string{"results", "play", "f2f3", "e7e5", "g2g4", "d8h4", "results"}
	var out bytes.Buffer
	c := New(sess, strings.NewReader(strings.Join(script, "\n")+"\n"), &out)
	c.SetResults(store)
	if err := c.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}

	for _, want := range []string{"(no finished games)", "Black wins by checkmate", "4 plies"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}

func TestResultsWithoutStore(t *testing.T) {
	out, _ := run(t, session.DefaultConfig(), "results")
	if !strings.Contains(out, "no game records") {
		t.Errorf("missing error:\n%s", out)
	}
}
