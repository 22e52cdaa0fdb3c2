package zobrist

import (
	"encoding/binary"

	"lukechampine.com/frand"

	"github.com/domino14/othello/board"
)

const bignum = 1<<63 - 2

// Zobrist generates hash keys for Othello positions.
// https://en.wikipedia.org/wiki/Zobrist_hashing
//
// Boards only know "own" and "opp", so keys are taken relative to a mover
// slot: slot 0 is whoever moved first at the root of a search, slot 1 the
// other side. The slot flips every ply, passes included.
type Zobrist struct {
	theirTurn uint64
	posTable  [board.NumSquares][2]uint64
}

// newRNG returns a deterministic generator for the given seed.
func newRNG(seed uint64) *frand.RNG {
	s := make([]byte, 32)
	binary.LittleEndian.PutUint64(s, seed)
	return frand.NewCustom(s, 1024, 12)
}

func (z *Zobrist) Initialize(seed uint64) {
	rng := newRNG(seed)
	for i := 0; i < board.NumSquares; i++ {
		for j := 0; j < 2; j++ {
			z.posTable[i][j] = rng.Uint64n(bignum) + 1
		}
	}
	z.theirTurn = rng.Uint64n(bignum) + 1
}

// Hash computes a key from scratch. moverSlot is the slot of the side to
// move, whose pieces are b.Own.
func (z *Zobrist) Hash(b board.Board, moverSlot int) uint64 {
	key := uint64(0)
	for own := b.Own; own != 0; own &= own - 1 {
		key ^= z.posTable[board.LowestSquare(own)][moverSlot]
	}
	for opp := b.Opp; opp != 0; opp &= opp - 1 {
		key ^= z.posTable[board.LowestSquare(opp)][1-moverSlot]
	}
	if moverSlot == 1 {
		key ^= z.theirTurn
	}
	return key
}

// AddMove updates key for the side in moverSlot playing sq, which turns
// over the pieces in flips. The result equals Hash of the child board with
// the other slot to move.
func (z *Zobrist) AddMove(key uint64, sq int, flips uint64, moverSlot int) uint64 {
	if sq != board.Pass {
		key ^= z.posTable[sq][moverSlot]
		for ; flips != 0; flips &= flips - 1 {
			f := board.LowestSquare(flips)
			key ^= z.posTable[f][0] ^ z.posTable[f][1]
		}
	}
	key ^= z.theirTurn
	return key
}
