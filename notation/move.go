package notation

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"mailbox-engine/board"
)

var (
	// ErrInvalidSquare is returned for square names outside a1..h8.
	ErrInvalidSquare = errors.New("notation: invalid square")
	// ErrIllegalMove is returned when text does not name a legal move.
	ErrIllegalMove = errors.New("notation: illegal move")
)

// SquareName returns the algebraic name of sq ("e4").
func SquareName(sq board.Square) string { return sq.String() }

// ParseSquare converts an algebraic square name into a Square.
func ParseSquare(s string) (board.Square, error) {
	if len(s) != 2 {
		return board.NoSquare, fmt.Errorf("%w: %q", ErrInvalidSquare, s)
	}
	file := int(s[0]) - 'a'
	rank := int(s[1]) - '1'
	if file < 0 || file > 7 || rank < 0 || rank > 7 {
		return board.NoSquare, fmt.Errorf("%w: %q", ErrInvalidSquare, s)
	}
	return board.SquareAt(7-rank, file), nil
}

// FindMove resolves user text against the legal moves of p. It accepts
// coordinate notation ("e2e4", "e7e8n") and the numeric form "from to" with
// square indices ("52 36"). An omitted promotion letter selects the queen.
func FindMove(p board.Position, text string) (board.Move, error) {
	from, to, promo, err := parseMoveText(text)
	if err != nil {
		return board.Move{}, err
	}
	for _, m := range p.LegalMoves() {
		if m.From != from || m.To != to {
			continue
		}
		if m.Promotion == promo || (promo == board.PieceTypeNone && m.Promotion == board.PieceTypeQueen) {
			return m, nil
		}
	}
	return board.Move{}, fmt.Errorf("%w: %s", ErrIllegalMove, strings.TrimSpace(text))
}

func parseMoveText(text string) (from, to board.Square, promo board.PieceType, err error) {
	fields := strings.Fields(strings.ToLower(text))
	switch len(fields) {
	case 2:
		a, errA := strconv.Atoi(fields[0])
		b, errB := strconv.Atoi(fields[1])
		if errA != nil || errB != nil || a < 0 || a > 63 || b < 0 || b > 63 {
			break
		}
		return board.Square(a), board.Square(b), board.PieceTypeNone, nil
	case 1:
		s := fields[0]
		if len(s) != 4 && len(s) != 5 {
			break
		}
		if from, err = ParseSquare(s[0:2]); err != nil {
			return from, to, promo, fmt.Errorf("%w: %w", ErrIllegalMove, err)
		}
		if to, err = ParseSquare(s[2:4]); err != nil {
			return from, to, promo, fmt.Errorf("%w: %w", ErrIllegalMove, err)
		}
		if len(s) == 5 {
			switch s[4] {
			case 'q':
				promo = board.PieceTypeQueen
			case 'r':
				promo = board.PieceTypeRook
			case 'b':
				promo = board.PieceTypeBishop
			case 'n':
				promo = board.PieceTypeKnight
			default:
				return from, to, promo, fmt.Errorf("%w: bad promotion in %q", ErrIllegalMove, s)
			}
		}
		return from, to, promo, nil
	}
	return board.NoSquare, board.NoSquare, board.PieceTypeNone,
		fmt.Errorf("%w: cannot parse %q", ErrIllegalMove, strings.TrimSpace(text))
}
