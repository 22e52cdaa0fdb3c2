package zobrist

import (
	"github.com/domino14/othello/board"
)

// FingerprintBytes is the size of a board's raw byte form: eight bytes of
// Own followed by eight bytes of Opp.
const FingerprintBytes = 16

// FingerprintTable maps a board's raw bytes to a 16-bit signature by
// XORing one random entry per byte. Collisions are possible; it is a cheap
// check, not an equality test. A table never changes after construction.
type FingerprintTable struct {
	table [FingerprintBytes][256]uint16
}

// NewFingerprintTable builds a table from a fixed seed, so that two tables
// with the same seed agree.
func NewFingerprintTable(seed uint64) *FingerprintTable {
	rng := newRNG(seed)
	ft := &FingerprintTable{}
	for i := range ft.table {
		for j := range ft.table[i] {
			ft.table[i][j] = uint16(rng.Uint64n(1 << 16))
		}
	}
	return ft
}

func (ft *FingerprintTable) Sum(b board.Board) uint16 {
	var fp uint16
	own, opp := b.Own, b.Opp
	for i := 0; i < 8; i++ {
		fp ^= ft.table[i][byte(own)]
		fp ^= ft.table[i+8][byte(opp)]
		own >>= 8
		opp >>= 8
	}
	return fp
}
