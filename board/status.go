package board

// Status classifies a position for end-of-game detection.
type Status int

const (
	Ongoing Status = iota
	Checkmate
	Stalemate
	InsufficientMaterial
)

func (s Status) String() string {
	switch s {
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	case InsufficientMaterial:
		return "insufficient material"
	default:
		return "ongoing"
	}
}

// Status reports whether the game is over and why.
func (p Position) Status() Status {
	if !p.HasLegalMoves() {
		if p.InCheck() {
			return Checkmate
		}
		return Stalemate
	}
	if p.InsufficientMaterial() {
		return InsufficientMaterial
	}
	return Ongoing
}

// IsGameOver reports whether the side to move has no legal moves or neither
// side can force mate.
func (p Position) IsGameOver() bool { return p.Status() != Ongoing }

// InCheckmate reports whether the side to move is checkmated.
func (p Position) InCheckmate() bool { return p.InCheck() && !p.HasLegalMoves() }

// InStalemate reports whether the side to move is stalemated.
func (p Position) InStalemate() bool { return !p.InCheck() && !p.HasLegalMoves() }

// InsufficientMaterial reports the dead-draw material configurations: lone
// kings, king and a minor piece against a lone king, and king and bishop
// against king and bishop with both bishops on the same square colour.
func (p Position) InsufficientMaterial() bool {
	var pieces, bishops, knights [2]int
	var bishopSq [2]Square
	for i, pc := range p.Board {
		if pc == NoPiece {
			continue
		}
		c := pc.Color()
		pieces[c]++
		switch pc.Type() {
		case PieceTypePawn, PieceTypeRook, PieceTypeQueen:
			return false
		case PieceTypeBishop:
			bishops[c]++
			bishopSq[c] = Square(i)
		case PieceTypeKnight:
			knights[c]++
		}
	}

	w, b := pieces[White], pieces[Black]
	switch {
	case w == 1 && b == 1:
		return true
	case w == 2 && b == 1:
		return bishops[White] == 1 || knights[White] == 1
	case b == 2 && w == 1:
		return bishops[Black] == 1 || knights[Black] == 1
	case w == 2 && b == 2 && bishops[White] == 1 && bishops[Black] == 1:
		return bishopSq[White].IsLight() == bishopSq[Black].IsLight()
	}
	return false
}
