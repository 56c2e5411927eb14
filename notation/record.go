package notation

import (
	"fmt"

	"github.com/notnil/chess"

	"mailbox-engine/board"
)

// Record keeps the moves of a game so it can be exported as PGN. Moves are
// replayed through notnil/chess, which also double checks their legality.
type Record struct {
	game *chess.Game
}

// NewRecord starts a record from startFEN; an empty string means the
// standard start position.
func NewRecord(startFEN string) (*Record, error) {
	opts := []func(*chess.Game){chess.UseNotation(chess.UCINotation{})}
	if startFEN != "" && startFEN != StartFEN {
		fenOpt, err := chess.FEN(startFEN)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidFEN, err)
		}
		opts = append(opts, fenOpt)
	}
	return &Record{game: chess.NewGame(opts...)}, nil
}

// Add appends m to the record.
func (r *Record) Add(m board.Move) error {
	if err := r.game.MoveStr(m.String()); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrIllegalMove, m, err)
	}
	return nil
}

// Len returns the number of recorded half-moves.
func (r *Record) Len() int { return len(r.game.Moves()) }

// PGN renders the recorded game.
func (r *Record) PGN() string { return r.game.String() }
