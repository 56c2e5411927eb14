package board

import "math/bits"

// Precomputed attack masks for knights and kings from each square. Bit i is
// set when square i is reachable.
var knightAttacks [64]uint64
var kingAttacks [64]uint64

// Ray directions as (rank delta, file delta).
var rookDirections = [4][2]int{{-1, 0}, {1, 0}, {0, 1}, {0, -1}}
var bishopDirections = [4][2]int{{-1, 1}, {-1, -1}, {1, 1}, {1, -1}}
var queenDirections = [8][2]int{
	{-1, 0}, {1, 0}, {0, 1}, {0, -1},
	{-1, 1}, {-1, -1}, {1, 1}, {1, -1},
}

func init() {
	initAttackTables()
}

// initAttackTables precomputes the knight and king masks. Offsets are applied
// to rank and file separately so a jump can never wrap around an edge.
func initAttackTables() {
	knightOffsets := [8][2]int{
		{2, 1}, {2, -1}, {-2, 1}, {-2, -1},
		{1, 2}, {1, -2}, {-1, 2}, {-1, -2},
	}
	kingOffsets := [8][2]int{
		{1, 0}, {-1, 0}, {0, 1}, {0, -1},
		{1, 1}, {1, -1}, {-1, 1}, {-1, -1},
	}
	for sq := 0; sq < 64; sq++ {
		knightAttacks[sq] = offsetMask(Square(sq), knightOffsets[:])
		kingAttacks[sq] = offsetMask(Square(sq), kingOffsets[:])
	}
}

func offsetMask(sq Square, offsets [][2]int) uint64 {
	var mask uint64
	rank, file := sq.Rank(), sq.File()
	for _, off := range offsets {
		r, f := rank+off[0], file+off[1]
		if onBoard(r, f) {
			mask |= uint64(1) << uint(SquareAt(r, f))
		}
	}
	return mask
}

func onBoard(rank, file int) bool {
	return rank >= 0 && rank < 8 && file >= 0 && file < 8
}

// popLSB removes and returns the least significant set bit from the mask.
func popLSB(mask *uint64) Square {
	idx := bits.TrailingZeros64(*mask)
	*mask &= *mask - 1
	return Square(idx)
}

// IsAttacked reports whether sq is attacked by any piece of colour by.
func IsAttacked(p Position, sq Square, by Color) bool {
	return p.attacked(sq, by)
}

func (p *Position) attacked(sq Square, by Color) bool {
	rank, file := sq.Rank(), sq.File()

	// Pawns: a white pawn attacks towards rank 0, so a white attacker stands one
	// rank further from rank 0 than its target.
	pawn := NewPiece(by, PieceTypePawn)
	pr := rank + by.Sign()
	for _, df := range [2]int{-1, 1} {
		if onBoard(pr, file+df) && p.Board[SquareAt(pr, file+df)] == pawn {
			return true
		}
	}

	knight := NewPiece(by, PieceTypeKnight)
	for mask := knightAttacks[sq]; mask != 0; {
		if p.Board[popLSB(&mask)] == knight {
			return true
		}
	}

	king := NewPiece(by, PieceTypeKing)
	for mask := kingAttacks[sq]; mask != 0; {
		if p.Board[popLSB(&mask)] == king {
			return true
		}
	}

	queen := NewPiece(by, PieceTypeQueen)
	rook := NewPiece(by, PieceTypeRook)
	for _, d := range rookDirections {
		if hit := p.firstPiece(rank, file, d); hit == rook || hit == queen {
			return true
		}
	}
	bishop := NewPiece(by, PieceTypeBishop)
	for _, d := range bishopDirections {
		if hit := p.firstPiece(rank, file, d); hit == bishop || hit == queen {
			return true
		}
	}
	return false
}

// firstPiece walks from (rank, file) along d and returns the first piece met,
// or NoPiece when the edge is reached first.
func (p *Position) firstPiece(rank, file int, d [2]int) Piece {
	for r, f := rank+d[0], file+d[1]; onBoard(r, f); r, f = r+d[0], f+d[1] {
		if pc := p.Board[SquareAt(r, f)]; pc != NoPiece {
			return pc
		}
	}
	return NoPiece
}

// InCheck reports whether the side to move has its king attacked. A missing
// king is reported as not in check.
func (p Position) InCheck() bool {
	us := p.SideToMove()
	ksq, ok := p.KingSquare(us)
	if !ok {
		return false
	}
	return p.attacked(ksq, us.Other())
}
