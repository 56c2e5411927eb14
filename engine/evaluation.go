package engine

import (
	"mailbox-engine/board"
	"mailbox-engine/internal/xmath"
)

// =============================================================================
// SCORE CONSTANTS
// =============================================================================

// MateScore is returned, negated, for a side to move that is checkmated.
const MateScore = 30000

// endgameMaterial is the non-pawn, non-king material (both sides together)
// below which the king switches to its endgame table.
const endgameMaterial = 1300

const (
	BishopPairBonus         = 30
	DoubledPawnPenalty      = -10
	IsolatedPawnPenalty     = -15
	PassedPawnBonus         = 20
	RookOnOpenFileBonus     = 15
	RookOnSemiOpenFileBonus = 10
)

// PieceValues is indexed by board.PieceType.
var PieceValues = [7]int{
	board.PieceTypeNone:   0,
	board.PieceTypePawn:   100,
	board.PieceTypeKnight: 320,
	board.PieceTypeBishop: 330,
	board.PieceTypeRook:   500,
	board.PieceTypeQueen:  900,
	board.PieceTypeKing:   20000,
}

// =============================================================================
// PIECE-SQUARE TABLES
// =============================================================================
// Tables are written from White's point of view with a8 first, which is the
// board's own index order. Black pieces read the vertically mirrored square.

var pawnTable = [64]int{
	0, 0, 0, 0, 0, 0, 0, 0,
	50, 50, 50, 50, 50, 50, 50, 50,
	10, 10, 20, 30, 30, 20, 10, 10,
	5, 5, 10, 25, 25, 10, 5, 5,
	0, 0, 0, 20, 20, 0, 0, 0,
	5, -5, -10, 0, 0, -10, -5, 5,
	5, 10, 10, -20, -20, 10, 10, 5,
	0, 0, 0, 0, 0, 0, 0, 0,
}

var knightTable = [64]int{
	-50, -40, -30, -30, -30, -30, -40, -50,
	-40, -20, 0, 0, 0, 0, -20, -40,
	-30, 0, 10, 15, 15, 10, 0, -30,
	-30, 5, 15, 20, 20, 15, 5, -30,
	-30, 0, 15, 20, 20, 15, 0, -30,
	-30, 5, 10, 15, 15, 10, 5, -30,
	-40, -20, 0, 5, 5, 0, -20, -40,
	-50, -40, -30, -30, -30, -30, -40, -50,
}

var bishopTable = [64]int{
	-20, -10, -10, -10, -10, -10, -10, -20,
	-10, 0, 0, 0, 0, 0, 0, -10,
	-10, 0, 5, 10, 10, 5, 0, -10,
	-10, 5, 5, 10, 10, 5, 5, -10,
	-10, 0, 10, 10, 10, 10, 0, -10,
	-10, 10, 10, 10, 10, 10, 10, -10,
	-10, 5, 0, 0, 0, 0, 5, -10,
	-20, -10, -10, -10, -10, -10, -10, -20,
}

var rookTable = [64]int{
	0, 0, 0, 0, 0, 0, 0, 0,
	5, 10, 10, 10, 10, 10, 10, 5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	0, 0, 0, 5, 5, 0, 0, 0,
}

var queenTable = [64]int{
	-20, -10, -10, -5, -5, -10, -10, -20,
	-10, 0, 0, 0, 0, 0, 0, -10,
	-10, 0, 5, 5, 5, 5, 0, -10,
	-5, 0, 5, 5, 5, 5, 0, -5,
	0, 0, 5, 5, 5, 5, 0, -5,
	-10, 5, 5, 5, 5, 5, 0, -10,
	-10, 0, 5, 0, 0, 0, 0, -10,
	-20, -10, -10, -5, -5, -10, -10, -20,
}

var kingMiddlegameTable = [64]int{
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-20, -30, -30, -40, -40, -30, -30, -20,
	-10, -20, -20, -20, -20, -20, -20, -10,
	20, 20, 0, 0, 0, 0, 20, 20,
	20, 30, 10, 0, 0, 10, 30, 20,
}

var kingEndgameTable = [64]int{
	-50, -40, -30, -20, -20, -30, -40, -50,
	-30, -20, -10, 0, 0, -10, -20, -30,
	-30, -10, 20, 30, 30, 20, -10, -30,
	-30, -10, 30, 40, 40, 30, -10, -30,
	-30, -10, 30, 40, 40, 30, -10, -30,
	-30, -10, 20, 30, 30, 20, -10, -30,
	-30, -30, 0, 0, 0, 0, -30, -30,
	-50, -30, -30, -30, -30, -30, -30, -50,
}

var pieceSquareTables = [7]*[64]int{
	board.PieceTypePawn:   &pawnTable,
	board.PieceTypeKnight: &knightTable,
	board.PieceTypeBishop: &bishopTable,
	board.PieceTypeRook:   &rookTable,
	board.PieceTypeQueen:  &queenTable,
	board.PieceTypeKing:   &kingMiddlegameTable,
}

// =============================================================================
// STATIC EVALUATION
// =============================================================================

// Static returns the White-relative heuristic score of p: material,
// piece-square tables, pawn structure, rook files and the bishop pair.
// Terminal positions are not detected here.
func Static(p board.Position) int {
	endgame := IsEndgame(p)
	return materialAndPosition(p, endgame) +
		pawnStructure(p) +
		rookFiles(p) +
		bishopPair(p)
}

// IsEndgame reports whether the non-pawn, non-king material of both sides
// together is below the endgame threshold.
func IsEndgame(p board.Position) bool {
	total := 0
	for _, pc := range p.Board {
		switch pc.Type() {
		case board.PieceTypeKnight, board.PieceTypeBishop, board.PieceTypeRook, board.PieceTypeQueen:
			total += PieceValues[pc.Type()]
		}
	}
	return total < endgameMaterial
}

func materialAndPosition(p board.Position, endgame bool) int {
	score := 0
	for i, pc := range p.Board {
		if pc == board.NoPiece {
			continue
		}
		sq := board.Square(i)
		if pc.IsBlack() {
			sq = sq.Mirror()
		}
		pt := pc.Type()
		table := pieceSquareTables[pt]
		if pt == board.PieceTypeKing && endgame {
			table = &kingEndgameTable
		}
		v := PieceValues[pt] + table[sq]
		if pc.IsWhite() {
			score += v
		} else {
			score -= v
		}
	}
	return score
}

// pawnFiles collects, per colour and file, the pawn count and the rank
// indices of the most advanced (front) and least advanced (rear) pawn.
type pawnFiles struct {
	count [2][8]int
	front [2][8]int
	rear  [2][8]int
}

func collectPawns(p board.Position) pawnFiles {
	var pf pawnFiles
	for i, pc := range p.Board {
		if pc.Type() != board.PieceTypePawn {
			continue
		}
		sq := board.Square(i)
		c, f, r := pc.Color(), sq.File(), sq.Rank()
		if pf.count[c][f] == 0 {
			pf.front[c][f], pf.rear[c][f] = r, r
		}
		pf.count[c][f]++
		// White advances towards rank 0, Black towards rank 7.
		if c == board.White {
			pf.front[c][f] = xmath.Min(pf.front[c][f], r)
			pf.rear[c][f] = xmath.Max(pf.rear[c][f], r)
		} else {
			pf.front[c][f] = xmath.Max(pf.front[c][f], r)
			pf.rear[c][f] = xmath.Min(pf.rear[c][f], r)
		}
	}
	return pf
}

func pawnStructure(p board.Position) int {
	pf := collectPawns(p)
	return pawnStructureFor(&pf, board.White) - pawnStructureFor(&pf, board.Black)
}

// pawnStructureFor scores the pawns of c from c's own point of view.
func pawnStructureFor(pf *pawnFiles, c board.Color) int {
	score := 0
	for f := 0; f < 8; f++ {
		n := pf.count[c][f]
		if n == 0 {
			continue
		}
		if n > 1 {
			score += DoubledPawnPenalty * (n - 1)
		}
		if isolated(pf, c, f) {
			score += IsolatedPawnPenalty
		}
		front := pf.front[c][f]
		if passed(pf, c, f, front) {
			score += PassedPawnBonus * advancement(c, front)
		}
	}
	return score
}

func isolated(pf *pawnFiles, c board.Color, f int) bool {
	if f > 0 && pf.count[c][f-1] > 0 {
		return false
	}
	if f < 7 && pf.count[c][f+1] > 0 {
		return false
	}
	return true
}

// passed reports whether no enemy pawn on file f or an adjacent file stands
// in front of c's pawn on rank index front. The enemy's rear pawn on a file
// is the one closest to c's promotion rank, so it alone decides.
func passed(pf *pawnFiles, c board.Color, f, front int) bool {
	them := c.Other()
	for ff := xmath.Max(0, f-1); ff <= xmath.Min(7, f+1); ff++ {
		if pf.count[them][ff] == 0 {
			continue
		}
		rear := pf.rear[them][ff]
		if (c == board.White && rear < front) || (c == board.Black && rear > front) {
			return false
		}
	}
	return true
}

// advancement is the number of ranks a pawn of c on rank index r has moved
// beyond its starting rank.
func advancement(c board.Color, r int) int {
	if c == board.White {
		return 6 - r
	}
	return r - 1
}

func rookFiles(p board.Position) int {
	var pawns [2][8]bool
	for i, pc := range p.Board {
		if pc.Type() == board.PieceTypePawn {
			pawns[pc.Color()][board.Square(i).File()] = true
		}
	}
	score := 0
	for i, pc := range p.Board {
		if pc.Type() != board.PieceTypeRook {
			continue
		}
		c, f := pc.Color(), board.Square(i).File()
		bonus := 0
		switch {
		case !pawns[c][f] && !pawns[c.Other()][f]:
			bonus = RookOnOpenFileBonus
		case !pawns[c][f]:
			bonus = RookOnSemiOpenFileBonus
		}
		score += bonus * c.Sign()
	}
	return score
}

func bishopPair(p board.Position) int {
	var bishops [2]int
	for _, pc := range p.Board {
		if pc.Type() == board.PieceTypeBishop {
			bishops[pc.Color()]++
		}
	}
	score := 0
	if bishops[board.White] >= 2 {
		score += BishopPairBonus
	}
	if bishops[board.Black] >= 2 {
		score -= BishopPairBonus
	}
	return score
}
