package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"mailbox-engine/board"
	"mailbox-engine/engine"
	"mailbox-engine/notation"
)

// console plays a human against the engine over a line-oriented text stream.
type console struct {
	in  io.Reader
	out io.Writer
	log zerolog.Logger

	eng       *engine.Engine
	pos       board.Position
	startFEN  string
	record    *notation.Record
	autoReply bool
}

func newConsole(in io.Reader, out io.Writer, eng *engine.Engine, log zerolog.Logger) *console {
	return &console{in: in, out: out, eng: eng, log: log, autoReply: true}
}

// reset starts a new game from fen; an empty fen means the start position.
func (c *console) reset(fen string) error {
	pos := board.StartPosition()
	if fen != "" {
		var err error
		if pos, err = notation.ParseFEN(fen); err != nil {
			return err
		}
	}
	rec, err := notation.NewRecord(fen)
	if err != nil {
		return err
	}
	c.pos, c.startFEN, c.record = pos, fen, rec
	return nil
}

func (c *console) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

func (c *console) printBoard() {
	c.printf("\n%s\nTurn: %s\n", c.pos, c.pos.SideToMove())
}

func (c *console) printHelp() {
	c.printf("commands:\n" +
		"  <move>        play a move (e2e4, e7e8q or '52 36')\n" +
		"  move <move>   same as above\n" +
		"  moves         list legal moves\n" +
		"  go [depth]    let the engine move\n" +
		"  eval          static evaluation for the side to move\n" +
		"  fen [FEN]     print the position or load a new one\n" +
		"  new           restart from the initial position\n" +
		"  board         print the board\n" +
		"  pgn           print the game so far\n" +
		"  auto on|off   engine replies automatically after your move\n" +
		"  quit\n")
}

// run reads commands until quit or end of input.
func (c *console) run(ctx context.Context) error {
	if c.record == nil {
		if err := c.reset(""); err != nil {
			return err
		}
	}
	c.printf("Chess engine - human vs computer\n")
	c.printf("Enter moves as e2e4 or 'from to' square numbers (e.g. '52 36'); 'help' lists commands\n")
	c.printBoard()

	scanner := bufio.NewScanner(c.in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		tokens := strings.Fields(line)
		if len(tokens) == 0 { // ignore blank lines
			continue
		}
		switch strings.ToLower(tokens[0]) {
		case "quit", "exit":
			return nil
		case "help":
			c.printHelp()
		case "board":
			c.printBoard()
		case "new":
			if err := c.reset(""); err != nil {
				return err
			}
			c.printBoard()
		case "fen":
			if len(tokens) == 1 {
				c.printf("%s\n", notation.FormatFEN(c.pos))
				continue
			}
			fen := strings.TrimSpace(line[len(tokens[0]):])
			if err := c.reset(fen); err != nil {
				c.printf("error: %v\n", err)
				continue
			}
			c.printBoard()
		case "moves":
			moves := c.pos.LegalMoves()
			names := make([]string, len(moves))
			for i, m := range moves {
				names[i] = m.String()
			}
			c.printf("%d legal moves: %s\n", len(moves), strings.Join(names, " "))
		case "eval":
			score := c.eng.Evaluator().Score(c.pos)
			c.printf("eval: %d (%s to move, status %s)\n", score, c.pos.SideToMove(), c.pos.Status())
		case "pgn":
			c.printf("%s\n", c.record.PGN())
		case "auto":
			if len(tokens) > 1 {
				c.autoReply = strings.EqualFold(tokens[1], "on")
			}
			c.printf("auto reply: %v\n", c.autoReply)
		case "go":
			depth := c.eng.Depth()
			if len(tokens) > 1 {
				d, err := strconv.Atoi(tokens[1])
				if err != nil {
					c.printf("error: bad depth %q\n", tokens[1])
					continue
				}
				depth = d
			}
			if c.pos.IsGameOver() {
				c.printf("game over: %s\n", c.pos.Status())
				continue
			}
			if err := c.engineMove(ctx, depth); err != nil {
				c.printf("error: %v\n", err)
				continue
			}
			c.printBoard()
			c.reportGameOver()
		case "move":
			c.humanMove(ctx, strings.Join(tokens[1:], " "))
		default:
			c.humanMove(ctx, line)
		}
	}
	return scanner.Err()
}

func (c *console) humanMove(ctx context.Context, text string) {
	if c.pos.IsGameOver() {
		c.printf("game over: %s\n", c.pos.Status())
		return
	}
	m, err := notation.FindMove(c.pos, text)
	if err != nil {
		if errors.Is(err, notation.ErrIllegalMove) {
			c.printf("Illegal move. Try again.\n")
		} else {
			c.printf("error: %v\n", err)
		}
		return
	}
	if err := c.play(m); err != nil {
		c.printf("error: %v\n", err)
		return
	}
	c.printf("You played: %s\n", m)
	if c.autoReply && !c.pos.IsGameOver() {
		if err := c.engineMove(ctx, c.eng.Depth()); err != nil {
			c.printf("error: %v\n", err)
			return
		}
	}
	c.printBoard()
	c.reportGameOver()
}

func (c *console) engineMove(ctx context.Context, depth int) error {
	c.printf("Engine thinking...\n")
	res, err := c.eng.BestMove(ctx, c.pos, depth)
	if err != nil {
		return err
	}
	if err := c.play(res.Move); err != nil {
		return err
	}
	c.printf("Engine plays: %s (score %d, %d nodes, %s)\n", res.Move, res.Score, res.Nodes, res.Elapsed)
	return nil
}

func (c *console) play(m board.Move) error {
	if err := c.record.Add(m); err != nil {
		return err
	}
	c.pos.ApplyMove(m)
	c.log.Debug().Str("move", m.String()).Str("fen", notation.FormatFEN(c.pos)).Msg("move played")
	return nil
}

func (c *console) reportGameOver() {
	if st := c.pos.Status(); st != board.Ongoing {
		c.printf("Game over: %s\n", st)
	}
}
