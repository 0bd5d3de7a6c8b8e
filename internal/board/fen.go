package board

import (
	"fmt"
	"strconv"
	"strings"
)

// StartFEN is the standard initial setup.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// ParseFEN reads a position in Forsyth-Edwards Notation. The move counters
// are optional and default to 0 and 1.
func ParseFEN(fen string) (Position, error) {
	pos := Position{EnPassant: NoSquare, FullMoveNumber: 1}
	fields := strings.Fields(fen)
	if len(fields) < 4 {
		return pos, fmt.Errorf("invalid FEN %q: need at least 4 fields, got %d", fen, len(fields))
	}

	ranks := strings.Split(fields[0], "/")
	if len(ranks) != 8 {
		return pos, fmt.Errorf("invalid FEN placement: need 8 ranks, got %d", len(ranks))
	}
	for i, row := range ranks {
		rank, file := 7-i, 0
		for j := 0; j < len(row); j++ {
			c := row[j]
			if c >= '1' && c <= '8' {
				file += int(c - '0')
				continue
			}
			pc := pieceFromChar(c)
			if pc == NoPiece {
				return pos, fmt.Errorf("invalid FEN piece %q", c)
			}
			if file > 7 {
				return pos, fmt.Errorf("invalid FEN: rank %d overflows", rank+1)
			}
			pos.put(pc, NewSquare(file, rank))
			file++
		}
		if file != 8 {
			return pos, fmt.Errorf("invalid FEN: rank %d has %d squares", rank+1, file)
		}
	}

	switch fields[1] {
	case "w":
		pos.SideToMove = White
	case "b":
		pos.SideToMove = Black
	default:
		return pos, fmt.Errorf("invalid FEN side to move %q", fields[1])
	}

	if fields[2] != "-" {
		for _, c := range fields[2] {
			i := strings.IndexRune("KQkq", c)
			if i < 0 {
				return pos, fmt.Errorf("invalid FEN castling %q", fields[2])
			}
			pos.CastlingRights |= 1 << i
		}
	}

	if fields[3] != "-" {
		sq, err := ParseSquare(fields[3])
		if err != nil {
			return pos, fmt.Errorf("invalid FEN en passant: %w", err)
		}
		pos.EnPassant = sq
	}

	if len(fields) > 4 {
		n, err := strconv.Atoi(fields[4])
		if err != nil || n < 0 {
			return pos, fmt.Errorf("invalid FEN half-move clock %q", fields[4])
		}
		pos.HalfMoveClock = n
	}
	if len(fields) > 5 {
		n, err := strconv.Atoi(fields[5])
		if err != nil || n < 1 {
			return pos, fmt.Errorf("invalid FEN full-move number %q", fields[5])
		}
		pos.FullMoveNumber = n
	}

	pos.Hash ^= pos.stateHash()
	if err := pos.Validate(); err != nil {
		return pos, fmt.Errorf("invalid FEN position: %w", err)
	}
	return pos, nil
}

// FEN renders the position in Forsyth-Edwards Notation.
func (p *Position) FEN() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			pc := p.PieceAt(NewSquare(file, rank))
			if pc == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteString(pc.String())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}
	side := "w"
	if p.SideToMove == Black {
		side = "b"
	}
	fmt.Fprintf(&sb, " %s %s %s %d %d", side, p.CastlingRights, p.EnPassant, p.HalfMoveClock, p.FullMoveNumber)
	return sb.String()
}
