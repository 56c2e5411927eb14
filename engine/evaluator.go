package engine

import (
	"sync/atomic"

	"mailbox-engine/board"
)

// Evaluator scores positions from the side to move's point of view and
// memoises the results in a Cache.
type Evaluator struct {
	cache       *Cache
	evaluations atomic.Uint64
}

// NewEvaluator returns an evaluator backed by cache. A nil cache disables
// memoisation.
func NewEvaluator(cache *Cache) *Evaluator {
	return &Evaluator{cache: cache}
}

// Cache returns the backing cache, which may be nil.
func (e *Evaluator) Cache() *Cache { return e.cache }

// Score returns the mover-relative score of p. A checkmated mover scores
// -MateScore; stalemate and insufficient material score 0.
func (e *Evaluator) Score(p board.Position) int {
	if e.cache == nil {
		return e.compute(p)
	}
	key := Fingerprint(p)
	if score, ok := e.cache.Get(key); ok {
		return score
	}
	score := e.compute(p)
	e.cache.Put(key, score)
	return score
}

// Evaluations returns the number of scores computed rather than served
// from the cache.
func (e *Evaluator) Evaluations() uint64 { return e.evaluations.Load() }

func (e *Evaluator) compute(p board.Position) int {
	e.evaluations.Add(1)
	switch p.Status() {
	case board.Checkmate:
		return -MateScore
	case board.Stalemate, board.InsufficientMaterial:
		return 0
	}
	score := Static(p)
	if !p.WhiteToMove {
		score = -score
	}
	return score
}
