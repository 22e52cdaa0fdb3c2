package board

// Frontier counts the pieces of the side to move that touch at least one
// empty square.
func (b Board) Frontier() int {
	return Popcount(b.Own & neighbours(b.Empty()))
}

// stableAxes returns, per axis, the squares that can never be flipped along
// that axis: squares whose whole line is filled, and squares at the end of
// the line (the board edge), which cannot be bracketed on that axis.
func stableAxes(pcs uint64) (vert, horiz, diag1, diag2 uint64) {
	vert = northOccl(rank1&pcs, pcs) & southOccl(rank8&pcs, pcs)
	horiz = eastOccl(fileA&pcs, pcs) & westOccl(fileH&pcs, pcs)
	diag1 = northEastOccl((rank1|fileA)&pcs, pcs) & southWestOccl((rank8|fileH)&pcs, pcs)
	diag2 = northWestOccl((rank1|fileH)&pcs, pcs) & southEastOccl((rank8|fileA)&pcs, pcs)

	vert |= rank1 | rank8
	horiz |= fileA | fileH
	diag1 |= edges
	diag2 |= edges
	return
}

func growStable(stable, pieces, vert, horiz, diag1, diag2 uint64) uint64 {
	for i := 0; i < 8; i++ {
		stable |= pieces &
			(northOne(stable) | southOne(stable) | vert) &
			(eastOne(stable) | westOne(stable) | horiz) &
			(northEastOne(stable) | southWestOne(stable) | diag1) &
			(northWestOne(stable) | southEastOne(stable) | diag2)
	}
	return stable
}

// StableMasks returns the stable pieces of both sides. Corners are always
// stable; stability then spreads for 8 rounds to pieces that, on every axis,
// either touch a stable piece of their own color or sit on a safe line.
func (b Board) StableMasks() (own, opp uint64) {
	vert, horiz, diag1, diag2 := stableAxes(b.Own | b.Opp)
	full := vert & horiz & diag1 & diag2

	own = growStable((corners|full)&b.Own, b.Own, vert, horiz, diag1, diag2)
	opp = growStable((corners|full)&b.Opp, b.Opp, vert, horiz, diag1, diag2)
	return own, opp
}

// Stable returns the number of stable pieces of the side to move minus the
// number of stable opponent pieces.
func (b Board) Stable() int {
	own, opp := b.StableMasks()
	return Popcount(own) - Popcount(opp)
}

// Corners returns the corner counts of the side to move and its opponent.
func (b Board) Corners() (own, opp int) {
	return Popcount(b.Own & corners), Popcount(b.Opp & corners)
}

// XSquares counts pieces on the squares diagonally adjacent to an empty
// corner.
func (b Board) XSquares() (own, opp int) {
	x := neighbourDiagonals(corners&b.Empty()) &^ edges
	return Popcount(b.Own & x), Popcount(b.Opp & x)
}

func neighbourDiagonals(gen uint64) uint64 {
	return northEastOne(gen) | northWestOne(gen) | southEastOne(gen) | southWestOne(gen)
}
