package board

import "mailbox-engine/internal/xmath"

// ApplyMove plays m on p in place. The caller must own p exclusively (take a
// copy first when branching). No legality is checked here; LegalMoves layers
// king safety on top.
func (p *Position) ApplyMove(m Move) {
	us := p.SideToMove()
	them := us.Other()
	moving := p.Board[m.From]

	// The en passant victim sits behind the destination, one rank back from
	// the mover's point of view.
	captureSq := m.To
	if m.EnPassant {
		captureSq = m.To + Square(8*us.Sign())
	}
	captured := p.Board[captureSq]
	p.Board[captureSq] = NoPiece

	// Castling rights: king moves forfeit both, a rook leaving its corner
	// forfeits that side, and a rook captured on its corner forfeits the
	// opponent's right whatever piece captured it.
	switch moving.Type() {
	case PieceTypeKing:
		p.Castling &^= rightsOf(us)
	case PieceTypeRook:
		p.Castling &^= cornerRight(m.From) & rightsOf(us)
	}
	if captured.Type() == PieceTypeRook && captured.Color() == them {
		p.Castling &^= cornerRight(captureSq) & rightsOf(them)
	}

	p.Board[m.To] = moving
	p.Board[m.From] = NoPiece

	if m.Promotion != PieceTypeNone {
		p.Board[m.To] = NewPiece(us, m.Promotion)
	}

	if m.Castling {
		var rookFrom, rookTo Square
		if m.To > m.From { // kingside
			rookFrom, rookTo = m.To+1, m.To-1
		} else {
			rookFrom, rookTo = m.To-2, m.To+1
		}
		p.Board[rookTo] = p.Board[rookFrom]
		p.Board[rookFrom] = NoPiece
	}

	p.EnPassant = NoSquare
	if moving.Type() == PieceTypePawn && xmath.Abs(m.From.Rank()-m.To.Rank()) == 2 {
		p.EnPassant = (m.From + m.To) / 2
	}

	p.WhiteToMove = !p.WhiteToMove
}

// Apply returns the position after m, leaving p untouched.
func Apply(p Position, m Move) Position {
	p.ApplyMove(m)
	return p
}
