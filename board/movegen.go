package board

import "golang.org/x/exp/slices"

// GenerateLegalMoves returns every fully legal move for the side to move,
// ordered by descending capture value.
func GenerateLegalMoves(p Position) []Move { return p.LegalMoves() }

// LegalMoves returns the pseudo-legal moves that do not leave the mover's king
// attacked, ordered by descending capture value. Ordering is stable so equal
// values keep generation order.
func (p Position) LegalMoves() []Move {
	pseudo := p.PseudoLegalMoves()
	legal := pseudo[:0]
	us := p.SideToMove()
	for _, m := range pseudo {
		if p.leavesKingSafe(m, us) {
			legal = append(legal, m)
		}
	}
	slices.SortStableFunc(legal, func(a, b Move) bool {
		return a.CaptureValue > b.CaptureValue
	})
	return legal
}

// HasLegalMoves reports whether the side to move has any legal move.
func (p Position) HasLegalMoves() bool {
	us := p.SideToMove()
	for _, m := range p.PseudoLegalMoves() {
		if p.leavesKingSafe(m, us) {
			return true
		}
	}
	return false
}

// leavesKingSafe plays m on a copy and tests the mover's king. A king that
// cannot be found afterwards makes the move illegal.
func (p *Position) leavesKingSafe(m Move, us Color) bool {
	next := *p
	next.ApplyMove(m)
	ksq, ok := next.KingSquare(us)
	if !ok {
		return false
	}
	return !next.attacked(ksq, us.Other())
}

// PseudoLegalMoves generates moves by piece geometry and occupancy only.
func (p Position) PseudoLegalMoves() []Move {
	moves := make([]Move, 0, 64)
	us := p.SideToMove()
	for i, pc := range p.Board {
		if pc == NoPiece || pc.Color() != us {
			continue
		}
		from := Square(i)
		switch pc.Type() {
		case PieceTypePawn:
			moves = p.genPawnMoves(moves, from, us)
		case PieceTypeKnight:
			moves = p.genJumps(moves, from, us, knightAttacks[from])
		case PieceTypeBishop:
			moves = p.genSlides(moves, from, us, bishopDirections[:])
		case PieceTypeRook:
			moves = p.genSlides(moves, from, us, rookDirections[:])
		case PieceTypeQueen:
			moves = p.genSlides(moves, from, us, queenDirections[:])
		case PieceTypeKing:
			moves = p.genJumps(moves, from, us, kingAttacks[from])
			moves = p.genCastling(moves, from, us)
		}
	}
	return moves
}

func (p *Position) genPawnMoves(moves []Move, from Square, us Color) []Move {
	dir, startRank, promoRank := -1, 6, 0
	if us == Black {
		dir, startRank, promoRank = 1, 1, 7
	}
	rank, file := from.Rank(), from.File()
	next := rank + dir
	if next < 0 || next > 7 {
		return moves
	}

	// Pushes
	to := SquareAt(next, file)
	if p.Board[to] == NoPiece {
		moves = addPawnMove(moves, Move{From: from, To: to}, next == promoRank)
		if rank == startRank {
			to2 := SquareAt(rank+2*dir, file)
			if p.Board[to2] == NoPiece {
				moves = append(moves, Move{From: from, To: to2})
			}
		}
	}

	// Captures, including en passant
	for _, df := range [2]int{-1, 1} {
		f := file + df
		if f < 0 || f > 7 {
			continue
		}
		to := SquareAt(next, f)
		target := p.Board[to]
		switch {
		case target != NoPiece && target.Color() != us:
			m := Move{From: from, To: to, CaptureValue: CaptureValueOf(target.Type())}
			moves = addPawnMove(moves, m, next == promoRank)
		case target == NoPiece && to == p.EnPassant:
			moves = append(moves, Move{
				From: from, To: to, EnPassant: true,
				CaptureValue: CaptureValueOf(PieceTypePawn),
			})
		}
	}
	return moves
}

// addPawnMove appends m, expanded into the four promotion choices when the
// pawn arrives on the last rank.
func addPawnMove(moves []Move, m Move, promotes bool) []Move {
	if !promotes {
		return append(moves, m)
	}
	for _, pt := range PromotionTypes {
		m.Promotion = pt
		moves = append(moves, m)
	}
	return moves
}

func (p *Position) genJumps(moves []Move, from Square, us Color, mask uint64) []Move {
	for mask != 0 {
		to := popLSB(&mask)
		target := p.Board[to]
		if target == NoPiece {
			moves = append(moves, Move{From: from, To: to})
		} else if target.Color() != us {
			moves = append(moves, Move{From: from, To: to, CaptureValue: CaptureValueOf(target.Type())})
		}
	}
	return moves
}

func (p *Position) genSlides(moves []Move, from Square, us Color, dirs [][2]int) []Move {
	rank, file := from.Rank(), from.File()
	for _, d := range dirs {
		for r, f := rank+d[0], file+d[1]; onBoard(r, f); r, f = r+d[0], f+d[1] {
			to := SquareAt(r, f)
			target := p.Board[to]
			if target == NoPiece {
				moves = append(moves, Move{From: from, To: to})
				continue
			}
			if target.Color() != us {
				moves = append(moves, Move{From: from, To: to, CaptureValue: CaptureValueOf(target.Type())})
			}
			break
		}
	}
	return moves
}

// castleSpec describes one castling option: the right it needs, where king and
// rook start, the squares that must be empty and the squares the king may not
// stand on or cross while attacked.
type castleSpec struct {
	right   CastlingRights
	king    Square
	kingTo  Square
	rook    Square
	empty   []Square
	transit []Square
}

var castleSpecs = [2][2]castleSpec{
	White: {
		{WhiteKingside, E1, G1, H1, []Square{F1, G1}, []Square{E1, F1, G1}},
		{WhiteQueenside, E1, C1, A1, []Square{B1, C1, D1}, []Square{E1, D1, C1}},
	},
	Black: {
		{BlackKingside, E8, G8, H8, []Square{F8, G8}, []Square{E8, F8, G8}},
		{BlackQueenside, E8, C8, A8, []Square{B8, C8, D8}, []Square{E8, D8, C8}},
	},
}

func (p *Position) genCastling(moves []Move, from Square, us Color) []Move {
	rook := NewPiece(us, PieceTypeRook)
	them := us.Other()
	for _, cs := range castleSpecs[us] {
		if !p.Castling.Has(cs.right) || from != cs.king || p.Board[cs.rook] != rook {
			continue
		}
		if !p.allEmpty(cs.empty) || p.anyAttacked(cs.transit, them) {
			continue
		}
		moves = append(moves, Move{From: from, To: cs.kingTo, Castling: true})
	}
	return moves
}

func (p *Position) allEmpty(squares []Square) bool {
	for _, sq := range squares {
		if p.Board[sq] != NoPiece {
			return false
		}
	}
	return true
}

func (p *Position) anyAttacked(squares []Square, by Color) bool {
	for _, sq := range squares {
		if p.attacked(sq, by) {
			return true
		}
	}
	return false
}
