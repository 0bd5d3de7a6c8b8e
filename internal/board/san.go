package board

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidSAN is returned when a SAN string matches no legal move.
var ErrInvalidSAN = errors.New("invalid SAN move")

// SAN renders m, which must be legal in p, in Standard Algebraic Notation
// with a check or mate suffix.
func (p *Position) SAN(m Move) string {
	return p.san(m, p.GenerateLegalMoves())
}

func (p *Position) san(m Move, legal []Move) string {
	var sb strings.Builder
	from, to := m.From(), m.To()
	pt := p.PieceAt(from).Type()

	switch {
	case m.IsCastling() && to > from:
		sb.WriteString("O-O")
	case m.IsCastling():
		sb.WriteString("O-O-O")
	default:
		if pt != Pawn {
			sb.WriteByte("PNBRQK"[pt])
			sb.WriteString(disambiguation(p, m, pt, legal))
		}
		if m.IsCapture() {
			if pt == Pawn {
				sb.WriteByte('a' + byte(from.File()))
			}
			sb.WriteByte('x')
		}
		sb.WriteString(to.String())
		if m.IsPromotion() {
			sb.WriteByte('=')
			sb.WriteByte("PNBRQK"[m.Promotion()])
		}
	}

	next := *p
	next.MakeMove(m)
	if next.InCheck() {
		if next.HasLegalMoves() {
			sb.WriteByte('+')
		} else {
			sb.WriteByte('#')
		}
	}
	return sb.String()
}

// disambiguation returns the origin file, rank or square needed when
// another piece of the same kind can reach the same square.
func disambiguation(p *Position, m Move, pt PieceType, legal []Move) string {
	from := m.From()
	var others []Square
	for _, o := range legal {
		if o.To() == m.To() && o.From() != from && p.PieceAt(o.From()).Type() == pt {
			others = append(others, o.From())
		}
	}
	if len(others) == 0 {
		return ""
	}

	sameFile, sameRank := false, false
	for _, sq := range others {
		sameFile = sameFile || sq.File() == from.File()
		sameRank = sameRank || sq.Rank() == from.Rank()
	}
	switch {
	case !sameFile:
		return string(rune('a' + from.File()))
	case !sameRank:
		return string(rune('1' + from.Rank()))
	}
	return from.String()
}

// ParseSAN finds the legal move written as s. Check marks, annotations and
// zeros in castling are accepted.
func (p *Position) ParseSAN(s string) (Move, error) {
	want := strings.TrimRight(strings.TrimSpace(s), "+#!?")
	want = strings.ReplaceAll(want, "0", "O")
	if want == "" {
		return NoMove, fmt.Errorf("%w: %q", ErrInvalidSAN, s)
	}

	legal := p.GenerateLegalMoves()
	for _, m := range legal {
		if strings.TrimRight(p.san(m, legal), "+#") == want {
			return m, nil
		}
	}
	return NoMove, fmt.Errorf("%w: %q", ErrInvalidSAN, s)
}
