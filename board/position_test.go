package board_test

import (
	"errors"
	"strings"
	"testing"

	"mailbox-engine/board"
	"mailbox-engine/notation"
)

func TestSquareGeometry(t *testing.T) {
	if board.A8.String() != "a8" || board.H1.String() != "h1" || board.NoSquare.String() != "-" {
		t.Fatalf("square names: %s %s %s", board.A8, board.H1, board.NoSquare)
	}
	e2 := board.SquareAt(6, 4)
	if e2 != 52 || e2.Rank() != 6 || e2.File() != 4 {
		t.Fatalf("e2: got %d rank %d file %d", e2, e2.Rank(), e2.File())
	}
	if e2.Mirror().String() != "e7" {
		t.Fatalf("mirror of e2: got %s", e2.Mirror())
	}
	if !board.A8.IsLight() || board.A1.IsLight() {
		t.Fatalf("square colours: a8 light=%v a1 light=%v", board.A8.IsLight(), board.A1.IsLight())
	}
}

func TestPieceTags(t *testing.T) {
	for pt := board.PieceTypePawn; pt <= board.PieceTypeKing; pt++ {
		w := board.NewPiece(board.White, pt)
		b := board.NewPiece(board.Black, pt)
		if w != -b || w.Type() != pt || b.Type() != pt {
			t.Fatalf("type %d: white %d black %d", pt, w, b)
		}
		if !w.IsWhite() || !b.IsBlack() || w.Color() != board.White || b.Color() != board.Black {
			t.Fatalf("type %d: colour mismatch", pt)
		}
		if board.PieceFromChar(w.Char()) != w || board.PieceFromChar(b.Char()) != b {
			t.Fatalf("type %d: char round trip", pt)
		}
	}
	if board.PieceFromChar('x') != board.NoPiece {
		t.Fatalf("unknown letter mapped to a piece")
	}
}

func TestStartPositionLayout(t *testing.T) {
	p := board.StartPosition()
	if p.Board[board.E1] != board.WhiteKing || p.Board[board.E8] != board.BlackKing {
		t.Fatalf("kings misplaced:\n%s", p)
	}
	if p.Board[board.D1] != board.WhiteQueen || p.Board[board.D8] != board.BlackQueen {
		t.Fatalf("queens misplaced:\n%s", p)
	}
	if !p.WhiteToMove || p.Castling != board.AllCastling || p.EnPassant != board.NoSquare {
		t.Fatalf("start state: %+v", p)
	}
	if err := p.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if !strings.HasPrefix(p.String(), "8 r n b q k b n r") {
		t.Fatalf("String:\n%s", p)
	}
}

func TestApplyDoesNotAlias(t *testing.T) {
	p := board.StartPosition()
	clone := p.Clone()
	next := board.Apply(p, p.LegalMoves()[0])
	if p != clone {
		t.Fatalf("Apply modified its input")
	}
	if next == p {
		t.Fatalf("Apply returned the input unchanged")
	}
}

func TestValidate(t *testing.T) {
	p := board.StartPosition()
	p.Board[board.E1] = board.NoPiece
	if err := p.Validate(); !errors.Is(err, board.ErrMissingKing) {
		t.Fatalf("no white king: got %v", err)
	}

	p = board.StartPosition()
	p.Board[board.A1] = board.WhiteKing
	if err := p.Validate(); !errors.Is(err, board.ErrMissingKing) {
		t.Fatalf("two white kings: got %v", err)
	}

	p = board.StartPosition()
	p.Board[board.A1] = board.Piece(9)
	if err := p.Validate(); !errors.Is(err, board.ErrInvalidPosition) {
		t.Fatalf("bad tag: got %v", err)
	}

	p = board.StartPosition()
	p.EnPassant = board.SquareAt(5, 4) // e3 with White to move
	if err := p.Validate(); !errors.Is(err, board.ErrInvalidPosition) {
		t.Fatalf("ep on wrong rank: got %v", err)
	}
	p.EnPassant = board.SquareAt(2, 4) // e6
	if err := p.Validate(); err != nil {
		t.Fatalf("ep on e6: %v", err)
	}
}

func TestMirror(t *testing.T) {
	p := notation.MustParseFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w Kq - 0 1")
	m := p.Mirror()
	if m.Mirror() != p {
		t.Fatalf("mirror is not an involution")
	}
	if m.WhiteToMove || m.Castling != board.WhiteQueenside|board.BlackKingside {
		t.Fatalf("mirrored state: white=%v rights=%b", m.WhiteToMove, m.Castling)
	}
	if m.Board[board.E8] != board.BlackKing || m.Board[board.E1] != board.WhiteKing {
		t.Fatalf("mirrored kings:\n%s", m)
	}
	if got, want := len(m.LegalMoves()), len(p.LegalMoves()); got != want {
		t.Fatalf("mirrored move count: got %d want %d", got, want)
	}
}

func TestMoveString(t *testing.T) {
	cases := []struct {
		m    board.Move
		want string
	}{
		{board.Move{}, "0000"},
		{board.Move{From: 52, To: 36}, "e2e4"},
		{board.Move{From: 12, To: 4, Promotion: board.PieceTypeKnight}, "e7e8n"},
		{board.Move{From: board.E1, To: board.G1, Castling: true}, "e1g1"},
	}
	for _, c := range cases {
		if got := c.m.String(); got != c.want {
			t.Fatalf("String: got %q want %q", got, c.want)
		}
	}
	a := board.Move{From: 52, To: 36, CaptureValue: 5}
	if !a.Equal(board.Move{From: 52, To: 36}) {
		t.Fatalf("Equal must ignore the capture value")
	}
}
