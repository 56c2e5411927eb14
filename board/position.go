package board

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingKing is returned when a side has no king (or more than one).
	ErrMissingKing = errors.New("board: side must have exactly one king")
	// ErrInvalidPosition is returned for structurally impossible positions.
	ErrInvalidPosition = errors.New("board: invalid position")
)

// Castling rights bit flags
type CastlingRights uint8

const (
	// White king-side (short) castling
	WhiteKingside CastlingRights = 1 << iota
	// White queen-side (long) castling
	WhiteQueenside
	// Black king-side castling
	BlackKingside
	// Black queen-side castling
	BlackQueenside

	AllCastling = WhiteKingside | WhiteQueenside | BlackKingside | BlackQueenside
)

// Has reports whether every right in r is present.
func (cr CastlingRights) Has(r CastlingRights) bool { return cr&r == r }

// rightsOf returns both castling rights belonging to c.
func rightsOf(c Color) CastlingRights {
	if c == White {
		return WhiteKingside | WhiteQueenside
	}
	return BlackKingside | BlackQueenside
}

// cornerRight returns the right tied to a rook's original corner square.
func cornerRight(sq Square) CastlingRights {
	switch sq {
	case H1:
		return WhiteKingside
	case A1:
		return WhiteQueenside
	case H8:
		return BlackKingside
	case A8:
		return BlackQueenside
	}
	return 0
}

// Position is the complete game state the engine operates on. It is a plain
// value: assigning it copies the board, so every search branch owns its own copy.
type Position struct {
	Board       [64]Piece
	WhiteToMove bool
	Castling    CastlingRights
	// EnPassant is the square passed over by a double pawn push on the
	// previous move, or NoSquare.
	EnPassant Square
}

// NewPosition returns an empty board with White to move and no rights.
func NewPosition() Position {
	return Position{WhiteToMove: true, EnPassant: NoSquare}
}

// StartPosition returns the standard initial position.
func StartPosition() Position {
	p := NewPosition()
	back := [8]PieceType{
		PieceTypeRook, PieceTypeKnight, PieceTypeBishop, PieceTypeQueen,
		PieceTypeKing, PieceTypeBishop, PieceTypeKnight, PieceTypeRook,
	}
	for f := 0; f < 8; f++ {
		p.Board[SquareAt(0, f)] = NewPiece(Black, back[f])
		p.Board[SquareAt(1, f)] = BlackPawn
		p.Board[SquareAt(6, f)] = WhitePawn
		p.Board[SquareAt(7, f)] = NewPiece(White, back[f])
	}
	p.Castling = AllCastling
	return p
}

// Clone returns an independent copy of the position.
func (p Position) Clone() Position { return p }

// SideToMove reports which side is to play.
func (p Position) SideToMove() Color {
	if p.WhiteToMove {
		return White
	}
	return Black
}

// PieceAt returns the piece on a square.
func (p Position) PieceAt(sq Square) Piece { return p.Board[sq] }

// KingSquare locates the king of c. ok is false if there is none.
func (p Position) KingSquare(c Color) (sq Square, ok bool) {
	king := NewPiece(c, PieceTypeKing)
	for i, pc := range p.Board {
		if pc == king {
			return Square(i), true
		}
	}
	return NoSquare, false
}

// Mirror returns the colour-mirrored position: the board is flipped
// vertically with piece colours swapped, castling rights and the en-passant
// square follow, and the side to move flips.
func (p Position) Mirror() Position {
	m := NewPosition()
	for i, pc := range p.Board {
		m.Board[Square(i).Mirror()] = -pc
	}
	m.WhiteToMove = !p.WhiteToMove
	if p.Castling.Has(WhiteKingside) {
		m.Castling |= BlackKingside
	}
	if p.Castling.Has(WhiteQueenside) {
		m.Castling |= BlackQueenside
	}
	if p.Castling.Has(BlackKingside) {
		m.Castling |= WhiteKingside
	}
	if p.Castling.Has(BlackQueenside) {
		m.Castling |= WhiteQueenside
	}
	if p.EnPassant != NoSquare {
		m.EnPassant = p.EnPassant.Mirror()
	}
	return m
}

// Validate checks the structural requirements the move generator relies on:
// exactly one king per side and an en-passant square that could have been
// produced by the opponent's last double push.
func (p Position) Validate() error {
	var kings [2]int
	for _, pc := range p.Board {
		if pc.Type() > PieceTypeKing {
			return fmt.Errorf("%w: unknown piece tag %d", ErrInvalidPosition, pc)
		}
		if pc.Type() == PieceTypeKing {
			kings[pc.Color()]++
		}
	}
	if kings[White] != 1 {
		return fmt.Errorf("%w: white has %d", ErrMissingKing, kings[White])
	}
	if kings[Black] != 1 {
		return fmt.Errorf("%w: black has %d", ErrMissingKing, kings[Black])
	}
	if p.EnPassant != NoSquare {
		if !p.EnPassant.Valid() {
			return fmt.Errorf("%w: en passant square %d", ErrInvalidPosition, p.EnPassant)
		}
		want := 2 // black just pushed: target on the sixth rank
		if !p.WhiteToMove {
			want = 5
		}
		if p.EnPassant.Rank() != want {
			return fmt.Errorf("%w: en passant square %s on wrong rank", ErrInvalidPosition, p.EnPassant)
		}
	}
	return nil
}

// String renders the board as eight text rows, White pieces upper case.
func (p Position) String() string {
	buf := make([]byte, 0, 8*18+32)
	for r := 0; r < 8; r++ {
		buf = append(buf, byte('8'-r), ' ')
		for f := 0; f < 8; f++ {
			buf = append(buf, p.Board[SquareAt(r, f)].Char(), ' ')
		}
		buf = append(buf, '\n')
	}
	buf = append(buf, "  a b c d e f g h\n"...)
	return string(buf)
}
