// Package notation adapts external text formats (FEN, coordinate moves, PGN)
// to and from the mailbox board representation.
package notation

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/notnil/chess"

	"mailbox-engine/board"
)

// StartFEN is the FEN string for the standard initial chess position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// ErrInvalidFEN wraps every rejected position string.
var ErrInvalidFEN = errors.New("notation: invalid FEN")

// ParseFEN decodes a FEN string into a Position. The text is parsed by
// notnil/chess and the result must pass board.Position.Validate; there is no
// partial recovery of malformed input.
func ParseFEN(fen string) (board.Position, error) {
	var cp chess.Position
	if err := cp.UnmarshalText([]byte(strings.TrimSpace(fen))); err != nil {
		return board.Position{}, fmt.Errorf("%w: %v", ErrInvalidFEN, err)
	}
	p := FromChess(&cp)
	if err := p.Validate(); err != nil {
		return board.Position{}, fmt.Errorf("%w: %w", ErrInvalidFEN, err)
	}
	return p, nil
}

// MustParseFEN is ParseFEN for constant inputs; it panics on error.
func MustParseFEN(fen string) board.Position {
	p, err := ParseFEN(fen)
	if err != nil {
		panic(err)
	}
	return p
}

// FromChess converts a notnil/chess position into the mailbox layout.
func FromChess(cp *chess.Position) board.Position {
	p := board.NewPosition()
	cb := cp.Board()
	for sq := chess.A1; sq <= chess.H8; sq++ {
		pc := cb.Piece(sq)
		if pc == chess.NoPiece {
			continue
		}
		color := board.White
		if pc.Color() == chess.Black {
			color = board.Black
		}
		p.Board[fromChessSquare(sq)] = board.NewPiece(color, fromChessType(pc.Type()))
	}

	p.WhiteToMove = cp.Turn() == chess.White

	cr := cp.CastleRights()
	if cr.CanCastle(chess.White, chess.KingSide) {
		p.Castling |= board.WhiteKingside
	}
	if cr.CanCastle(chess.White, chess.QueenSide) {
		p.Castling |= board.WhiteQueenside
	}
	if cr.CanCastle(chess.Black, chess.KingSide) {
		p.Castling |= board.BlackKingside
	}
	if cr.CanCastle(chess.Black, chess.QueenSide) {
		p.Castling |= board.BlackQueenside
	}

	if ep := cp.EnPassantSquare(); ep != chess.NoSquare {
		p.EnPassant = fromChessSquare(ep)
	}
	return p
}

// notnil/chess numbers squares from a1 = 0; the mailbox board starts at a8.
func fromChessSquare(sq chess.Square) board.Square {
	return board.SquareAt(7-int(sq.Rank()), int(sq.File()))
}

func fromChessType(pt chess.PieceType) board.PieceType {
	switch pt {
	case chess.Pawn:
		return board.PieceTypePawn
	case chess.Knight:
		return board.PieceTypeKnight
	case chess.Bishop:
		return board.PieceTypeBishop
	case chess.Rook:
		return board.PieceTypeRook
	case chess.Queen:
		return board.PieceTypeQueen
	case chess.King:
		return board.PieceTypeKing
	}
	return board.PieceTypeNone
}

// FormatFEN produces the FEN string of p. Move clocks are not tracked by the
// core, so the last two fields are always "0 1".
func FormatFEN(p board.Position) string {
	var sb strings.Builder

	for rank := 0; rank < 8; rank++ {
		empty := 0
		for file := 0; file < 8; file++ {
			pc := p.Board[board.SquareAt(rank, file)]
			if pc == board.NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteByte(pc.Char())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if rank < 7 {
			sb.WriteByte('/')
		}
	}

	if p.WhiteToMove {
		sb.WriteString(" w ")
	} else {
		sb.WriteString(" b ")
	}

	if p.Castling == 0 {
		sb.WriteByte('-')
	} else {
		for _, c := range []struct {
			right board.CastlingRights
			ch    byte
		}{
			{board.WhiteKingside, 'K'},
			{board.WhiteQueenside, 'Q'},
			{board.BlackKingside, 'k'},
			{board.BlackQueenside, 'q'},
		} {
			if p.Castling.Has(c.right) {
				sb.WriteByte(c.ch)
			}
		}
	}

	sb.WriteByte(' ')
	sb.WriteString(p.EnPassant.String())
	sb.WriteString(" 0 1")
	return sb.String()
}
