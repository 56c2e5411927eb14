package board

// Perft counts the leaf nodes of the legal move tree to the given depth.
func Perft(p Position, depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	moves := p.LegalMoves()
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		nodes += Perft(Apply(p, m), depth-1)
	}
	return nodes
}

// PerftDivide returns the perft count below each root move, keyed by the
// move's coordinate string.
func PerftDivide(p Position, depth int) map[string]uint64 {
	div := make(map[string]uint64)
	if depth <= 0 {
		return div
	}
	for _, m := range p.LegalMoves() {
		div[m.String()] = Perft(Apply(p, m), depth-1)
	}
	return div
}
