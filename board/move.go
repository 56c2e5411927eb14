package board

// Move is a from/to pair plus the special-move flags. CaptureValue is an
// ordering hint filled in by the generator and is not part of move identity.
type Move struct {
	From      Square
	To        Square
	Promotion PieceType // PieceTypeNone unless a pawn reaches the last rank
	EnPassant bool
	Castling  bool

	CaptureValue int
}

// captureValues is the per-type victim value used to order captures.
var captureValues = [7]int{
	PieceTypeNone:   0,
	PieceTypePawn:   1,
	PieceTypeKnight: 3,
	PieceTypeBishop: 3,
	PieceTypeRook:   5,
	PieceTypeQueen:  9,
	PieceTypeKing:   1000,
}

// CaptureValueOf returns the ordering value of capturing a piece of type pt.
func CaptureValueOf(pt PieceType) int {
	if pt < 0 || int(pt) >= len(captureValues) {
		return 0
	}
	return captureValues[pt]
}

// Equal reports whether two moves are the same move. The ordering hint is ignored.
func (m Move) Equal(o Move) bool {
	return m.From == o.From && m.To == o.To && m.Promotion == o.Promotion &&
		m.EnPassant == o.EnPassant && m.Castling == o.Castling
}

// IsZero reports whether m is the zero Move (used as "no move").
func (m Move) IsZero() bool { return m.Equal(Move{}) }

// String produces coordinate notation ("e2e4", "e7e8q").
func (m Move) String() string {
	if m.IsZero() {
		return "0000"
	}
	s := m.From.String() + m.To.String()
	if m.Promotion != PieceTypeNone {
		s += string(m.Promotion.Char())
	}
	return s
}
