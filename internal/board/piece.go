package board

// Color is the side a piece belongs to.
type Color uint8

const (
	White Color = iota
	Black
	NoColor
)

// Other returns the opponent.
func (c Color) Other() Color {
	return c ^ 1
}

func (c Color) String() string {
	switch c {
	case White:
		return "White"
	case Black:
		return "Black"
	}
	return "None"
}

// PieceType is the kind of a piece regardless of color.
type PieceType uint8

const (
	Pawn PieceType = iota
	Knight
	Bishop
	Rook
	Queen
	King
	NoPieceType
)

var pieceTypeNames = [...]string{"Pawn", "Knight", "Bishop", "Rook", "Queen", "King", "None"}

func (pt PieceType) String() string {
	if pt > NoPieceType {
		return "None"
	}
	return pieceTypeNames[pt]
}

// Char returns the lowercase letter used in FEN and UCI promotion suffixes.
func (pt PieceType) Char() byte {
	if pt >= NoPieceType {
		return ' '
	}
	return "pnbrqk"[pt]
}

// PromotionFromChar maps a UCI promotion suffix to a piece type.
// Anything other than n, b, r or q yields NoPieceType.
func PromotionFromChar(c byte) PieceType {
	switch c {
	case 'n', 'N':
		return Knight
	case 'b', 'B':
		return Bishop
	case 'r', 'R':
		return Rook
	case 'q', 'Q':
		return Queen
	}
	return NoPieceType
}

// Piece packs a type and a color: white pieces 0-5, black pieces 6-11.
type Piece uint8

const NoPiece Piece = 12

// NewPiece combines a type and a color.
func NewPiece(pt PieceType, c Color) Piece {
	if pt >= NoPieceType || c >= NoColor {
		return NoPiece
	}
	return Piece(c)*6 + Piece(pt)
}

// Type returns the piece kind, or NoPieceType for NoPiece.
func (p Piece) Type() PieceType {
	if p >= NoPiece {
		return NoPieceType
	}
	return PieceType(p % 6)
}

// Color returns the owning side, or NoColor for NoPiece.
func (p Piece) Color() Color {
	if p >= NoPiece {
		return NoColor
	}
	return Color(p / 6)
}

// String returns the FEN letter: uppercase for White, lowercase for Black.
func (p Piece) String() string {
	if p >= NoPiece {
		return "."
	}
	return string("PNBRQKpnbrqk"[p])
}

func pieceFromChar(c byte) Piece {
	for i := Piece(0); i < NoPiece; i++ {
		if "PNBRQKpnbrqk"[i] == c {
			return i
		}
	}
	return NoPiece
}
