// Package cli drives a game session from a line-oriented text stream.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/hailam/chessrules/internal/board"
	"github.com/hailam/chessrules/internal/clock"
	"github.com/hailam/chessrules/internal/engine"
	"github.com/hailam/chessrules/internal/session"
	"github.com/hailam/chessrules/internal/storage"
)

// recentResults caps the results listing.
const recentResults = 10

var glyphs = [...]string{"♙", "♘", "♗", "♖", "♕", "♔", "♟", "♞", "♝", "♜", "♛", "♚"}

var (
	lightSquare = color.New(color.BgHiWhite, color.FgBlack)
	darkSquare  = color.New(color.BgGreen, color.FgBlack)
	lastSquare  = color.New(color.BgYellow, color.FgBlack)
	checkSquare = color.New(color.BgRed, color.FgHiWhite)
	errText     = color.New(color.FgRed)
)

const helpText = `commands:
  board, d          show the board
  moves [square]    list legal moves, optionally from one square
  move <move>       play a move in UCI (e2e4, e7e8n) or SAN (Nf3, O-O)
  <move>            same as move <move>
  history           list the moves played
  results           show recently finished games
  play, pause       start or pause the game and clock
  new               start a new game
  status            show whose turn it is and the game state
  clock             show remaining time
  fen               print the position as FEN
  flip              view the board from the other side
  quit              leave`

// ResultLister lists finished games, most recent first. storage.Storage
// satisfies it.
type ResultLister interface {
	Results() ([]storage.GameResult, error)
}

// CLI reads commands from in and writes responses to out.
type CLI struct {
	sess    *session.Session
	results ResultLister
	in      io.Reader
	out     io.Writer
	flip    bool
}

// New creates a command loop over sess.
func New(sess *session.Session, in io.Reader, out io.Writer) *CLI {
	return &CLI{sess: sess, in: in, out: out}
}

// SetFlip shows the board with Black at the bottom.
func (c *CLI) SetFlip(flip bool) {
	c.flip = flip
}

// SetResults enables the results command.
func (c *CLI) SetResults(r ResultLister) {
	c.results = r
}

// Run processes commands until quit or end of input.
func (c *CLI) Run() error {
	scanner := bufio.NewScanner(c.in)
	c.printBoard()
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if !c.handle(line) {
			return nil
		}
	}
	return scanner.Err()
}

// handle executes one command and reports whether to keep going.
func (c *CLI) handle(line string) bool {
	parts := strings.Fields(line)
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "quit", "exit":
		return false
	case "help", "?":
		fmt.Fprintln(c.out, helpText)
	case "board", "d":
		c.printBoard()
	case "moves":
		c.handleMoves(args)
	case "move":
		if len(args) != 1 {
			c.errorf("usage: move <move>")
			break
		}
		c.handleMove(args[0])
	case "history":
		fmt.Fprintln(c.out, formatHistory(c.sess.Snapshot().SAN))
	case "results":
		c.printResults()
	case "play":
		if err := c.sess.Play(); err != nil {
			c.errorf("%v", err)
			break
		}
		fmt.Fprintln(c.out, "playing")
	case "pause":
		c.sess.Pause()
		fmt.Fprintln(c.out, "paused")
	case "new", "reset":
		c.sess.Reset()
		c.printBoard()
	case "status":
		fmt.Fprintln(c.out, statusLine(c.sess.Snapshot()))
	case "clock":
		c.printClock(c.sess.Snapshot())
	case "fen":
		fmt.Fprintln(c.out, c.sess.Snapshot().FEN)
	case "flip":
		c.flip = !c.flip
		c.printBoard()
	default:
		if len(args) == 0 && looksLikeMove(parts[0]) {
			c.handleMove(parts[0])
			break
		}
		c.errorf("unknown command %q, try help", parts[0])
	}
	return true
}

// looksLikeMove accepts UCI moves and anything starting like SAN.
func looksLikeMove(s string) bool {
	if _, _, _, err := board.ParseUCI(strings.ToLower(s)); err == nil {
		return true
	}
	return strings.ContainsRune("KQRBNO0abcdefgh", rune(s[0])) && strings.ContainsAny(s, "12345678-")
}

func (c *CLI) handleMove(move string) {
	var (
		res engine.Result
		err error
	)
	if from, to, promo, perr := board.ParseUCI(strings.ToLower(move)); perr == nil {
		res, err = c.sess.Move(from.String(), to.String(), promo)
	} else {
		res, err = c.sess.MoveSAN(move)
	}
	switch {
	case errors.Is(err, session.ErrPaused):
		c.errorf("game is paused, type play to start")
		return
	case errors.Is(err, engine.ErrPromotionRequired):
		c.errorf("%s promotes: append q, r, b or n", move)
		return
	case err != nil:
		c.errorf("%v", err)
		return
	}

	c.printBoard()
	if res.Status.IsTerminal() {
		fmt.Fprintln(c.out, c.sess.Snapshot().Outcome)
	}
}

func (c *CLI) handleMoves(args []string) {
	v := c.sess.Snapshot()
	if v.Outcome.Over {
		fmt.Fprintln(c.out, "(none)")
		return
	}
	if len(args) > 0 {
		sq, err := board.ParseSquare(strings.ToLower(args[0]))
		if err != nil {
			c.errorf("%v", err)
			return
		}
		targets, err := c.sess.LegalTargets(sq.String())
		if err != nil {
			c.errorf("%v", err)
			return
		}
		names := make([]string, len(targets))
		for i, t := range targets {
			names[i] = t.String()
		}
		fmt.Fprintf(c.out, "%s: %s\n", sq, strings.Join(names, " "))
		return
	}
	moves := c.sess.LegalMoves()
	names := make([]string, len(moves))
	for i, m := range moves {
		names[i] = m.String()
	}
	fmt.Fprintf(c.out, "%d moves: %s\n", len(moves), strings.Join(names, " "))
}

func (c *CLI) printBoard() {
	v := c.sess.Snapshot()
	fmt.Fprint(c.out, renderBoard(v, c.flip))
	fmt.Fprintln(c.out, statusLine(v))
}

func (c *CLI) printClock(v session.View) {
	for _, side := range []board.Color{board.White, board.Black} {
		marker := " "
		if v.Playing && v.SideToMove == side {
			marker = "*"
		}
		fmt.Fprintf(c.out, "%s %-5s %s\n", marker, side, clock.Format(v.Remaining[side]))
	}
}

func (c *CLI) printResults() {
	if c.results == nil {
		c.errorf("no game records")
		return
	}
	results, err := c.results.Results()
	if err != nil {
		c.errorf("%v", err)
		return
	}
	if len(results) == 0 {
		fmt.Fprintln(c.out, "(no finished games)")
		return
	}
	for _, r := range results[:min(len(results), recentResults)] {
		fmt.Fprintln(c.out, formatResult(r))
	}
}

func formatResult(r storage.GameResult) string {
	verdict := "draw"
	if !r.Draw() {
		verdict = r.Winner.String() + " wins"
	}
	return fmt.Sprintf("%s  %-10s by %-22s %3d plies  %s",
		r.FinishedAt.Local().Format(time.DateTime), verdict, r.Termination, r.Plies, clock.Format(r.Duration))
}

func (c *CLI) errorf(format string, args ...any) {
	fmt.Fprintln(c.out, errText.Sprintf(format, args...))
}

func renderBoard(v session.View, flip bool) string {
	var sb strings.Builder
	checked := board.NoSquare
	if v.Check {
		for sq := board.A1; sq <= board.H8; sq++ {
			if v.Board.At(sq) == board.NewPiece(board.King, v.SideToMove) {
				checked = sq
			}
		}
	}

	for row := 0; row < 8; row++ {
		rank := 7 - row
		if flip {
			rank = row
		}
		fmt.Fprintf(&sb, "%d ", rank+1)
		for col := 0; col < 8; col++ {
			file := col
			if flip {
				file = 7 - col
			}
			sq := board.NewSquare(file, rank)
			cell := " "
			if p := v.Board.At(sq); p != board.NoPiece {
				cell = glyphs[p]
			}
			style := darkSquare
			switch {
			case sq == checked:
				style = checkSquare
			case len(v.Moves) > 0 && (sq == v.LastMove.From() || sq == v.LastMove.To()):
				style = lastSquare
			case sq.IsLight():
				style = lightSquare
			}
			sb.WriteString(style.Sprint(" " + cell + " "))
		}
		sb.WriteByte('\n')
	}
	files := " a  b  c  d  e  f  g  h "
	if flip {
		files = " h  g  f  e  d  c  b  a "
	}
	sb.WriteString("  " + files + "\n")
	return sb.String()
}

func formatHistory(san []string) string {
	if len(san) == 0 {
		return "(no moves)"
	}
	var sb strings.Builder
	for i := 0; i < len(san); i += 2 {
		fmt.Fprintf(&sb, "%d. %s", i/2+1, san[i])
		if i+1 < len(san) {
			sb.WriteString(" " + san[i+1])
		}
		if i+2 < len(san) {
			sb.WriteByte(' ')
		}
	}
	return sb.String()
}

func statusLine(v session.View) string {
	if v.Outcome.Over {
		return v.Outcome.String()
	}
	s := fmt.Sprintf("%s to move", v.SideToMove)
	if v.Check {
		s += ", check"
	}
	if !v.Playing {
		s += " (paused)"
	}
	return s
}
