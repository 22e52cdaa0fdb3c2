package negamax

import (
	"testing"

	"github.com/matryer/is"
)

func TestTTableEntry(t *testing.T) {
	is := is.New(t)
	tt := &TranspositionTable{}
	// Assure minimum size of 2^16 elems
	tt.Reset(0)
	is.Equal(tt.sizePowerOf2, minSizePowerOf2)
	is.Equal(len(tt.table), 1<<minSizePowerOf2)

	tentry := TableEntry{
		score:        -12,
		flagAndDepth: 128 + 64 + 23,
		play:         37,
	}
	tt.store(9409641586937047728, 0xbeef, tentry)

	te := tt.lookup(9409641586937047728, 0xbeef)
	is.True(te.valid())
	is.Equal(te.depth(), uint8(23))
	is.Equal(te.flag(), uint8(TTUpper))
	is.Equal(te.score, int32(-12))
	is.Equal(te.move(), 37)
	is.Equal(te.top4bytes, uint32(2190852907))

	is.Equal(tt.t2collisions, uint64(0))
	// same bucket and top bytes, different board.
	te = tt.lookup(9409641586937047728, 0xbeee)
	is.Equal(te, TableEntry{})
	is.Equal(tt.t2collisions, uint64(1))

	// same bucket, different top bytes.
	te = tt.lookup(9409641586937047728+(1<<40), 0xbeef)
	is.Equal(te, TableEntry{})
	is.Equal(tt.t2collisions, uint64(2))

	// another bucket; empty, so not a collision.
	te = tt.lookup(9409641586937047728+1, 0xbeef)
	is.Equal(te, TableEntry{})
	is.Equal(tt.lookups, uint64(4))
	is.Equal(tt.hits, uint64(1))
	is.Equal(tt.t2collisions, uint64(2))

	created, lookups, hits, t2 := tt.Stats()
	is.Equal([]uint64{created, lookups, hits, t2}, []uint64{1, 4, 1, 2})

	tt.Reset(0)
	is.Equal(tt.lookup(9409641586937047728, 0xbeef), TableEntry{})
}

func TestEntryPassMove(t *testing.T) {
	is := is.New(t)
	te := TableEntry{flagAndDepth: TTExact<<6 + 60, play: -1}
	is.Equal(te.flag(), uint8(TTExact))
	is.Equal(te.depth(), uint8(60))
	is.Equal(te.move(), -1)
}
