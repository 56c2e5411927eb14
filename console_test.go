package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"mailbox-engine/engine"
)

func runScript(t *testing.T, script string, auto bool) string {
	t.Helper()
	opts := engine.DefaultOptions()
	opts.Depth = 2
	opts.CacheCapacity = 1 << 14
	var out bytes.Buffer
	c := newConsole(strings.NewReader(script), &out, engine.New(opts), zerolog.Nop())
	c.autoReply = auto
	if err := c.run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	return out.String()
}

func TestConsoleHumanMoveAndReply(t *testing.T) {
	out := runScript(t, "52 36\npgn\nquit\n", true)
	if !strings.Contains(out, "You played: e2e4") {
		t.Fatalf("human move not echoed:\n%s", out)
	}
	if !strings.Contains(out, "Engine plays: ") {
		t.Fatalf("engine did not reply:\n%s", out)
	}
	if !strings.Contains(out, "1. e2e4") && !strings.Contains(out, "1. e4") {
		t.Fatalf("pgn missing first move:\n%s", out)
	}
}

func TestConsoleRejectsIllegalMove(t *testing.T) {
	out := runScript(t, "e2e5\nquit\n", true)
	if !strings.Contains(out, "Illegal move. Try again.") {
		t.Fatalf("illegal move accepted:\n%s", out)
	}
}

func TestConsoleCommands(t *testing.T) {
	script := strings.Join([]string{
		"moves",
		"fen 7k/5Q2/6K1/8/8/8/8/8 b - - 0 1",
		"eval",
		"fen",
		"new",
		"go 1",
		"quit",
	}, "\n")
	out := runScript(t, script, false)
	for _, want := range []string{
		"20 legal moves:",
		"eval: 0 (Black to move, status stalemate)",
		"7k/5Q2/6K1/8/8/8/8/8 b - - 0 1",
		"Engine plays: ",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in output:\n%s", want, out)
		}
	}
}

func TestConsoleBadFEN(t *testing.T) {
	out := runScript(t, "fen nonsense\nquit\n", false)
	if !strings.Contains(out, "error: notation: invalid FEN") {
		t.Fatalf("bad FEN not reported:\n%s", out)
	}
}

func TestConsoleGoOnFinishedGame(t *testing.T) {
	out := runScript(t, "fen 8/8/4k3/8/8/3K4/8/8 w - - 0 1\ngo 1\nquit\n", false)
	if strings.Contains(out, "Engine plays: ") {
		t.Fatalf("engine moved in a drawn position:\n%s", out)
	}
	if !strings.Contains(out, "game over: insufficient material") {
		t.Fatalf("game over not reported:\n%s", out)
	}
}

func TestConsoleGoReportsMate(t *testing.T) {
	out := runScript(t, "fen 6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1\ngo 2\nquit\n", false)
	if !strings.Contains(out, "Engine plays: a1a8") {
		t.Fatalf("engine missed mate in one:\n%s", out)
	}
	if !strings.Contains(out, "Game over: checkmate") {
		t.Fatalf("mate not reported after go:\n%s", out)
	}
}

func TestConsoleBadSquareIsIllegalMove(t *testing.T) {
	out := runScript(t, "hello\nquit\n", true)
	if !strings.Contains(out, "Illegal move. Try again.") {
		t.Fatalf("bad square not reported as illegal move:\n%s", out)
	}
}
