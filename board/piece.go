package board

// Piece is a signed tag: the sign encodes the colour (positive = White,
// negative = Black) and the magnitude encodes the type. Zero is an empty square.
type Piece int8

const (
	NoPiece     Piece = 0
	WhitePawn   Piece = 1
	WhiteKnight Piece = 2
	WhiteBishop Piece = 3
	WhiteRook   Piece = 4
	WhiteQueen  Piece = 5
	WhiteKing   Piece = 6

	BlackPawn   Piece = -1
	BlackKnight Piece = -2
	BlackBishop Piece = -3
	BlackRook   Piece = -4
	BlackQueen  Piece = -5
	BlackKing   Piece = -6
)

// PieceType is a colorless representation of a chess piece used for table lookups.
type PieceType int8

const (
	PieceTypeNone   PieceType = 0
	PieceTypePawn   PieceType = 1
	PieceTypeKnight PieceType = 2
	PieceTypeBishop PieceType = 3
	PieceTypeRook   PieceType = 4
	PieceTypeQueen  PieceType = 5
	PieceTypeKing   PieceType = 6
)

// PromotionTypes lists the promotion choices in generation order.
var PromotionTypes = [4]PieceType{PieceTypeQueen, PieceTypeRook, PieceTypeBishop, PieceTypeKnight}

type Color uint8

const (
	White Color = 0
	Black Color = 1
)

// Other returns the opposing side.
func (c Color) Other() Color { return c ^ 1 }

// Sign returns +1 for White and -1 for Black.
func (c Color) Sign() int {
	if c == White {
		return 1
	}
	return -1
}

func (c Color) String() string {
	if c == White {
		return "White"
	}
	return "Black"
}

// Type returns the colorless type of the piece (ignores side).
func (p Piece) Type() PieceType {
	if p < 0 {
		return PieceType(-p)
	}
	return PieceType(p)
}

// Color returns the side that owns the piece. NoPiece defaults to White.
func (p Piece) Color() Color {
	if p < 0 {
		return Black
	}
	return White
}

func (p Piece) IsWhite() bool { return p > 0 }
func (p Piece) IsBlack() bool { return p < 0 }

// NewPiece combines a colorless type with a side to produce a concrete Piece.
func NewPiece(c Color, pt PieceType) Piece {
	if c == Black {
		return -Piece(pt)
	}
	return Piece(pt)
}

// Char returns the FEN letter for the piece, or '.' for an empty square.
func (p Piece) Char() byte {
	const letters = ".pnbrqk"
	t := p.Type()
	if t < PieceTypePawn || t > PieceTypeKing {
		return '.'
	}
	ch := letters[t]
	if p.IsWhite() {
		ch -= 'a' - 'A'
	}
	return ch
}

// Char returns the lower-case letter of the piece type ('q', 'n', ...).
func (pt PieceType) Char() byte {
	return NewPiece(Black, pt).Char()
}

// PieceFromChar maps a FEN letter to a piece; unknown letters return NoPiece.
func PieceFromChar(ch byte) Piece {
	switch ch {
	case 'P':
		return WhitePawn
	case 'N':
		return WhiteKnight
	case 'B':
		return WhiteBishop
	case 'R':
		return WhiteRook
	case 'Q':
		return WhiteQueen
	case 'K':
		return WhiteKing
	case 'p':
		return BlackPawn
	case 'n':
		return BlackKnight
	case 'b':
		return BlackBishop
	case 'r':
		return BlackRook
	case 'q':
		return BlackQueen
	case 'k':
		return BlackKing
	default:
		return NoPiece
	}
}
