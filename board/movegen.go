package board

// Moves returns the mask of squares the side to move may play. A zero mask
// means the side to move has to pass.
//
// For each direction the own pieces are filled through opponent pieces; the
// fill is restricted to the opponent run, pushed one step further and
// intersected with the empty squares.
func (b Board) Moves() uint64 {
	empty := b.Empty()
	var moves uint64

	moves |= southOne(southOccl(b.Own, b.Opp)&b.Opp) & empty
	moves |= northOne(northOccl(b.Own, b.Opp)&b.Opp) & empty
	moves |= eastOne(eastOccl(b.Own, b.Opp)&b.Opp) & empty
	moves |= westOne(westOccl(b.Own, b.Opp)&b.Opp) & empty
	moves |= northEastOne(northEastOccl(b.Own, b.Opp)&b.Opp) & empty
	moves |= southEastOne(southEastOccl(b.Own, b.Opp)&b.Opp) & empty
	moves |= northWestOne(northWestOccl(b.Own, b.Opp)&b.Opp) & empty
	moves |= southWestOne(southWestOccl(b.Own, b.Opp)&b.Opp) & empty

	return moves
}

// Flips returns the opponent pieces captured by playing sq. A fill from the
// new piece through opponent pieces, intersected with a fill from the own
// pieces in the opposite direction, leaves exactly the opponent runs that
// have the new piece at one end and an own piece at the other.
func (b Board) Flips(sq int) uint64 {
	gen := uint64(1) << uint(sq)
	var diff uint64

	diff |= southOccl(gen, b.Opp) & northOccl(b.Own, b.Opp)
	diff |= northOccl(gen, b.Opp) & southOccl(b.Own, b.Opp)
	diff |= eastOccl(gen, b.Opp) & westOccl(b.Own, b.Opp)
	diff |= westOccl(gen, b.Opp) & eastOccl(b.Own, b.Opp)
	diff |= northEastOccl(gen, b.Opp) & southWestOccl(b.Own, b.Opp)
	diff |= southEastOccl(gen, b.Opp) & northWestOccl(b.Own, b.Opp)
	diff |= northWestOccl(gen, b.Opp) & southEastOccl(b.Own, b.Opp)
	diff |= southWestOccl(gen, b.Opp) & northEastOccl(b.Own, b.Opp)

	return diff
}

// DoMove plays sq for the side to move and returns the board from the
// opponent's point of view. Pass only swaps the sides. sq must come from
// Moves; anything else is not checked.
func (b Board) DoMove(sq int) Board {
	if sq == Pass {
		return b.Pass()
	}
	gen := uint64(1) << uint(sq)
	diff := b.Flips(sq)
	return Board{
		Own: b.Opp ^ diff,
		Opp: (b.Own ^ diff) | gen,
	}
}

// IsLegal reports whether sq is a legal move (or a legal pass) for the side
// to move.
func (b Board) IsLegal(sq int) bool {
	moves := b.Moves()
	if sq == Pass {
		return moves == 0
	}
	if sq < 0 || sq >= NumSquares {
		return false
	}
	return moves&(1<<uint(sq)) != 0
}
