package board

// Perft counts the leaf nodes of the game tree to the given depth. A pass
// takes up a ply; when both sides pass in a row the game is over and the
// position counts as a single leaf.
func Perft(b Board, depth int, passed bool) uint64 {
	if depth == 0 {
		return 1
	}
	moves := b.Moves()
	if moves == 0 {
		if passed {
			return 1
		}
		return Perft(b.Pass(), depth-1, true)
	}
	var nodes uint64
	for moves != 0 {
		sq := LowestSquare(moves)
		moves &= moves - 1
		nodes += Perft(b.DoMove(sq), depth-1, false)
	}
	return nodes
}
