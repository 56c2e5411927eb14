package board_test

import (
	"testing"

	"mailbox-engine/board"
	"mailbox-engine/notation"
)

func mustMove(t *testing.T, p board.Position, text string) board.Move {
	t.Helper()
	m, err := notation.FindMove(p, text)
	if err != nil {
		t.Fatalf("%s: %v", text, err)
	}
	return m
}

func hasMove(p board.Position, text string) bool {
	_, err := notation.FindMove(p, text)
	return err == nil
}

func TestStartPositionMoves(t *testing.T) {
	p := board.StartPosition()
	moves := board.GenerateLegalMoves(p)
	if len(moves) != 20 {
		t.Fatalf("start moves: got %d want 20", len(moves))
	}
	for _, m := range moves {
		if m.CaptureValue != 0 || m.Castling || m.EnPassant || m.Promotion != board.PieceTypeNone {
			t.Fatalf("unexpected flags on %v: %+v", m, m)
		}
	}
}

func TestDoublePushSetsEnPassant(t *testing.T) {
	p := board.StartPosition()
	p.ApplyMove(mustMove(t, p, "e2e4"))
	if p.EnPassant != 44 {
		t.Fatalf("ep square: got %s want e3", p.EnPassant)
	}
	if p.WhiteToMove {
		t.Fatalf("side to move did not flip")
	}
	p.ApplyMove(mustMove(t, p, "g8f6"))
	if p.EnPassant != board.NoSquare {
		t.Fatalf("ep square not cleared: %s", p.EnPassant)
	}
}

func TestEnPassantExpires(t *testing.T) {
	p := notation.MustParseFEN("4k3/3p4/8/4P3/8/8/P7/4K3 b - - 0 1")
	p.ApplyMove(mustMove(t, p, "d7d5"))

	m, err := notation.FindMove(p, "e5d6")
	if err != nil {
		t.Fatalf("ep capture missing: %v", err)
	}
	if !m.EnPassant || m.CaptureValue != 1 {
		t.Fatalf("ep flags: %+v", m)
	}
	after := board.Apply(p, m)
	if after.Board[board.SquareAt(3, 3)] != board.NoPiece {
		t.Fatalf("ep victim on d5 not removed")
	}
	if after.Board[board.SquareAt(2, 3)] != board.WhitePawn {
		t.Fatalf("capturing pawn not on d6")
	}

	p.ApplyMove(mustMove(t, p, "a2a3"))
	p.ApplyMove(mustMove(t, p, "e8e7"))
	if hasMove(p, "e5d6") {
		t.Fatalf("stale ep capture still generated")
	}
}

func TestCastlingTransitAttacked(t *testing.T) {
	p := notation.MustParseFEN("4kr2/8/8/8/8/8/8/4K2R w K - 0 1")
	if hasMove(p, "e1g1") {
		t.Fatalf("castled through attacked f1")
	}

	p = notation.MustParseFEN("4r1k1/8/8/8/8/8/8/4K2R w K - 0 1")
	if hasMove(p, "e1g1") {
		t.Fatalf("castled out of check")
	}

	// b1 may be attacked on the queenside; only the king's path matters.
	p = notation.MustParseFEN("1r2k3/8/8/8/8/8/8/R3K3 w Q - 0 1")
	m := mustMove(t, p, "e1c1")
	if !m.Castling {
		t.Fatalf("e1c1 not flagged as castling")
	}
	p.ApplyMove(m)
	if p.Board[board.D1] != board.WhiteRook || p.Board[board.A1] != board.NoPiece {
		t.Fatalf("queenside rook not relocated:\n%s", p)
	}
	if p.Castling != 0 {
		t.Fatalf("rights after castling: %b", p.Castling)
	}
}

func TestCastlingMovesRook(t *testing.T) {
	p := notation.MustParseFEN("r3k2r/8/8/8/8/8/8/R3K2R b KQkq - 0 1")
	p.ApplyMove(mustMove(t, p, "e8g8"))
	if p.Board[board.G8] != board.BlackKing || p.Board[board.F8] != board.BlackRook || p.Board[board.H8] != board.NoPiece {
		t.Fatalf("kingside castle:\n%s", p)
	}
	if p.Castling != board.WhiteKingside|board.WhiteQueenside {
		t.Fatalf("rights: got %b", p.Castling)
	}
}

func TestCastlingNeedsRookOnCorner(t *testing.T) {
	p := notation.MustParseFEN("4k3/8/8/8/8/8/8/4K3 w K - 0 1")
	if hasMove(p, "e1g1") {
		t.Fatalf("castled without a rook")
	}
}

func TestRookCaptureClearsRights(t *testing.T) {
	p := notation.MustParseFEN("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	p.ApplyMove(mustMove(t, p, "a1a8"))
	if want := board.WhiteKingside | board.BlackKingside; p.Castling != want {
		t.Fatalf("rights: got %b want %b", p.Castling, want)
	}

	// The capturer need not be a rook: only the victim's side loses a right.
	cases := []struct {
		name, fen, move string
		want            board.CastlingRights
	}{
		{"bishop takes a8", "r3k2r/1B6/8/8/8/8/8/R3K2R w KQkq - 0 1", "b7a8",
			board.WhiteKingside | board.WhiteQueenside | board.BlackKingside},
		{"knight takes h8", "r3k2r/8/6N1/8/8/8/8/R3K2R w KQkq - 0 1", "g6h8",
			board.WhiteKingside | board.WhiteQueenside | board.BlackQueenside},
		{"knight takes h1", "r3k2r/8/8/8/8/6n1/8/R3K2R b KQkq - 0 1", "g3h1",
			board.WhiteQueenside | board.BlackKingside | board.BlackQueenside},
		{"bishop takes a1", "r3k2r/8/8/8/8/8/1b6/R3K2R b KQkq - 0 1", "b2a1",
			board.WhiteKingside | board.BlackKingside | board.BlackQueenside},
	}
	for _, c := range cases {
		p := notation.MustParseFEN(c.fen)
		p.ApplyMove(mustMove(t, p, c.move))
		if p.Castling != c.want {
			t.Fatalf("%s: rights got %b want %b", c.name, p.Castling, c.want)
		}
	}
}

func TestPromotions(t *testing.T) {
	p := notation.MustParseFEN("1n5k/P7/8/8/8/8/8/7K w - - 0 1")
	moves := p.LegalMoves()
	if len(moves) != 11 {
		t.Fatalf("moves: got %d want 11", len(moves))
	}
	// Captures come first.
	for i := 0; i < 4; i++ {
		if moves[i].To != board.B8 || moves[i].CaptureValue != 3 {
			t.Fatalf("move %d: %+v", i, moves[i])
		}
	}
	for _, text := range []string{"a7a8q", "a7a8r", "a7a8b", "a7a8n", "a7b8q", "a7b8r", "a7b8b", "a7b8n"} {
		m := mustMove(t, p, text)
		after := board.Apply(p, m)
		want := board.NewPiece(board.White, m.Promotion)
		if after.Board[m.To] != want || after.Board[m.From] != board.NoPiece {
			t.Fatalf("%s: got %c on %s", text, after.Board[m.To].Char(), m.To)
		}
	}

	black := notation.MustParseFEN("k7/8/8/8/8/8/p7/2K5 b - - 0 1")
	after := board.Apply(black, mustMove(t, black, "a2a1"))
	if after.Board[board.A1] != board.BlackQueen {
		t.Fatalf("black promotion: got %c", after.Board[board.A1].Char())
	}
}

func TestMovesOrderedByCaptureValue(t *testing.T) {
	p := notation.MustParseFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	moves := p.LegalMoves()
	for i := 1; i < len(moves); i++ {
		if moves[i].CaptureValue > moves[i-1].CaptureValue {
			t.Fatalf("order broken at %d: %v(%d) after %v(%d)",
				i, moves[i], moves[i].CaptureValue, moves[i-1], moves[i-1].CaptureValue)
		}
	}
}

// TestPlayoutInvariants walks a deterministic game tree and checks the
// properties every applied legal move must keep.
func TestPlayoutInvariants(t *testing.T) {
	for _, tc := range perftCases {
		p := notation.MustParseFEN(tc.fen)
		for ply := 0; ply < 80; ply++ {
			moves := p.LegalMoves()
			if len(moves) == 0 {
				break
			}
			m := moves[(ply*7+3)%len(moves)]
			us := p.SideToMove()
			next := board.Apply(p, m)

			if next.WhiteToMove == p.WhiteToMove {
				t.Fatalf("%s ply %d: side to move did not flip", tc.name, ply)
			}
			if next.Castling&^p.Castling != 0 {
				t.Fatalf("%s ply %d: castling right re-enabled by %v", tc.name, ply, m)
			}
			ksq, ok := next.KingSquare(us)
			if !ok || board.IsAttacked(next, ksq, us.Other()) {
				t.Fatalf("%s ply %d: %v left the king attacked", tc.name, ply, m)
			}
			p = next
		}
	}
}

func TestMissingKingDoesNotPanic(t *testing.T) {
	p := board.NewPosition()
	p.Board[board.E8] = board.BlackKing
	p.Board[board.A1] = board.WhiteRook
	if moves := p.LegalMoves(); len(moves) != 0 {
		t.Fatalf("moves without a king: got %d want 0", len(moves))
	}
	if p.InCheck() {
		t.Fatalf("InCheck without a king")
	}
}

func TestIsAttacked(t *testing.T) {
	p := notation.MustParseFEN("4k3/8/8/3p4/8/5n2/8/R3K3 w - - 0 1")
	cases := []struct {
		sq   string
		by   board.Color
		want bool
	}{
		{"e4", board.Black, true},  // pawn d5
		{"c4", board.Black, true},  // pawn d5
		{"d4", board.Black, true},  // knight f3
		{"a5", board.Black, false},
		{"e1", board.Black, true},  // knight f3
		{"h1", board.Black, false},
		{"a8", board.White, true}, // rook a1 up the open file
		{"d1", board.White, true}, // rook and king
		{"f1", board.White, true}, // king
		{"h1", board.White, false},
	}
	for _, c := range cases {
		sq, _ := notation.ParseSquare(c.sq)
		if got := board.IsAttacked(p, sq, c.by); got != c.want {
			t.Fatalf("IsAttacked(%s, %s): got %v want %v", c.sq, c.by, got, c.want)
		}
	}

	// Pawns do not attack forward.
	lone := notation.MustParseFEN("4k3/8/8/3p4/8/8/8/4K3 w - - 0 1")
	if board.IsAttacked(lone, board.SquareAt(4, 3), board.Black) {
		t.Fatalf("d4 attacked by the pawn in front of it")
	}
	if !board.IsAttacked(lone, board.SquareAt(4, 2), board.Black) {
		t.Fatalf("c4 not attacked by pawn d5")
	}
}
