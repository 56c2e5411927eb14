package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"mailbox-engine/board"
	"mailbox-engine/internal/xmath"
)

// DefaultDepth is the search depth used when Options.Depth is not set.
const DefaultDepth = 3

// infinity bounds every reachable score, mate scores included.
const infinity = MateScore + 1000

var (
	// ErrNoLegalMoves is returned when the root position is already over.
	ErrNoLegalMoves = errors.New("engine: no legal moves")
	// ErrInvalidDepth is returned for depths below 1.
	ErrInvalidDepth = errors.New("engine: invalid depth")
)

// Options configures an Engine.
type Options struct {
	Depth         int
	CacheCapacity int
	// Cache, when set, is shared instead of allocating a new one.
	Cache  *Cache
	Logger zerolog.Logger
}

// DefaultOptions returns depth 3, a default sized cache and a silent logger.
func DefaultOptions() Options {
	return Options{
		Depth:         DefaultDepth,
		CacheCapacity: DefaultCacheCapacity,
		Logger:        zerolog.Nop(),
	}
}

// Result describes a finished (or interrupted) root search.
type Result struct {
	Move  board.Move
	Score int // White-relative
	Depth int
	Nodes uint64
	// Evaluations counts the leaf scores computed rather than read from cache.
	Evaluations uint64
	Elapsed     time.Duration
	// Completed is false when ctx was cancelled before every root move was
	// searched; Move is then the best among the searched ones.
	Completed bool
}

// Engine runs fixed-depth alpha-beta searches. White maximises and Black
// minimises a White-relative score. An Engine is not safe for concurrent use;
// run one per goroutine and share a Cache between them if needed.
type Engine struct {
	opts  Options
	eval  *Evaluator
	log   zerolog.Logger
	nodes uint64
}

// New builds an Engine from opts.
func New(opts Options) *Engine {
	if opts.Depth < 1 {
		opts.Depth = DefaultDepth
	}
	cache := opts.Cache
	if cache == nil {
		cache = NewCache(opts.CacheCapacity)
	}
	return &Engine{
		opts: opts,
		eval: NewEvaluator(cache),
		log:  opts.Logger,
	}
}

// Evaluator returns the evaluator used for leaf positions.
func (e *Engine) Evaluator() *Evaluator { return e.eval }

// Depth returns the configured default depth.
func (e *Engine) Depth() int { return e.opts.Depth }

// Search runs BestMove at the configured depth.
func (e *Engine) Search(ctx context.Context, p board.Position) (Result, error) {
	return e.BestMove(ctx, p, e.opts.Depth)
}

// BestMove searches p to depth plies and returns the chosen move. Root moves
// are tried in generation order and the first of equally scored moves wins.
func (e *Engine) BestMove(ctx context.Context, p board.Position, depth int) (Result, error) {
	if depth < 1 {
		return Result{}, fmt.Errorf("%w: %d", ErrInvalidDepth, depth)
	}
	moves := p.LegalMoves()
	if len(moves) == 0 {
		return Result{}, ErrNoLegalMoves
	}

	start := time.Now()
	e.nodes = 0
	evalsBefore := e.eval.Evaluations()

	maximizing := p.WhiteToMove
	alpha, beta := -infinity, infinity
	best, bestScore := moves[0], 0
	searched := 0
	for _, m := range moves {
		score, ok := e.alphaBeta(ctx, board.Apply(p, m), depth-1, 1, alpha, beta)
		if !ok {
			break
		}
		e.log.Debug().
			Str("move", m.String()).
			Int("score", score).
			Int("depth", depth).
			Msg("root move")
		if searched == 0 || (maximizing && score > bestScore) || (!maximizing && score < bestScore) {
			best, bestScore = m, score
		}
		searched++
		if maximizing {
			alpha = xmath.Max(alpha, score)
		} else {
			beta = xmath.Min(beta, score)
		}
	}

	res := Result{
		Move:        best,
		Score:       bestScore,
		Depth:       depth,
		Nodes:       e.nodes,
		Evaluations: e.eval.Evaluations() - evalsBefore,
		Elapsed:     time.Since(start),
		Completed:   searched == len(moves),
	}
	e.logResult(res)
	return res, nil
}

func (e *Engine) logResult(res Result) {
	ev := e.log.Info()
	if !res.Completed {
		ev = e.log.Warn()
	}
	if cache := e.eval.Cache(); cache != nil {
		st := cache.Stats()
		ev = ev.Uint64("cache_hits", st.Hits).Int("cache_len", st.Len)
	}
	nps := int64(0)
	if ms := res.Elapsed.Milliseconds(); ms > 0 {
		nps = int64(res.Nodes) * 1000 / ms
	}
	ev.Str("move", res.Move.String()).
		Int("score", res.Score).
		Int("depth", res.Depth).
		Uint64("nodes", res.Nodes).
		Uint64("evals", res.Evaluations).
		Int64("nps", nps).
		Dur("elapsed", res.Elapsed).
		Bool("completed", res.Completed).
		Msg("search finished")
}

// alphaBeta returns the White-relative value of p. ok is false when ctx was
// cancelled; the value is then meaningless.
func (e *Engine) alphaBeta(ctx context.Context, p board.Position, depth, ply, alpha, beta int) (int, bool) {
	select {
	case <-ctx.Done():
		return 0, false
	default:
	}
	e.nodes++

	if depth == 0 || p.InsufficientMaterial() {
		return e.leaf(p, ply), true
	}
	moves := p.LegalMoves()
	if len(moves) == 0 {
		return e.leaf(p, ply), true
	}

	if p.WhiteToMove {
		best := -infinity
		for _, m := range moves {
			score, ok := e.alphaBeta(ctx, board.Apply(p, m), depth-1, ply+1, alpha, beta)
			if !ok {
				return 0, false
			}
			best = xmath.Max(best, score)
			alpha = xmath.Max(alpha, score)
			if beta <= alpha {
				break
			}
		}
		return best, true
	}

	best := infinity
	for _, m := range moves {
		score, ok := e.alphaBeta(ctx, board.Apply(p, m), depth-1, ply+1, alpha, beta)
		if !ok {
			return 0, false
		}
		best = xmath.Min(best, score)
		beta = xmath.Min(beta, score)
		if beta <= alpha {
			break
		}
	}
	return best, true
}

// leaf converts the mover-relative evaluation into a White-relative score.
// Mates found closer to the root score higher for the mating side.
func (e *Engine) leaf(p board.Position, ply int) int {
	score := e.eval.Score(p)
	if score == -MateScore {
		score += ply
	}
	if !p.WhiteToMove {
		score = -score
	}
	return score
}

// Minimax searches without pruning. It selects the same move as BestMove
// and exists to check that pruning never changes the result.
func (e *Engine) Minimax(p board.Position, depth int) (board.Move, int) {
	moves := p.LegalMoves()
	if depth < 1 || len(moves) == 0 {
		return board.Move{}, e.leaf(p, 0)
	}
	var best board.Move
	bestScore := 0
	for i, m := range moves {
		score := e.minimax(board.Apply(p, m), depth-1, 1)
		if i == 0 || (p.WhiteToMove && score > bestScore) || (!p.WhiteToMove && score < bestScore) {
			best, bestScore = m, score
		}
	}
	return best, bestScore
}

func (e *Engine) minimax(p board.Position, depth, ply int) int {
	e.nodes++
	if depth == 0 || p.InsufficientMaterial() {
		return e.leaf(p, ply)
	}
	moves := p.LegalMoves()
	if len(moves) == 0 {
		return e.leaf(p, ply)
	}
	best := infinity
	if p.WhiteToMove {
		best = -infinity
	}
	for _, m := range moves {
		score := e.minimax(board.Apply(p, m), depth-1, ply+1)
		if p.WhiteToMove {
			best = xmath.Max(best, score)
		} else {
			best = xmath.Min(best, score)
		}
	}
	return best
}
