package negamax

import (
	"math"

	"github.com/pbnjay/memory"
	"github.com/rs/zerolog/log"
)

const (
	TTExact = 0x01
	TTLower = 0x02
	TTUpper = 0x03
)

const entrySize = 12

const depthMask = (1 << 6) - 1

// minSizePowerOf2 keeps small machines and tests from getting a uselessly
// tiny table.
const minSizePowerOf2 = 16

// 12 bytes (entrySize)
type TableEntry struct {
	// The bottom bits of the key are the bucket index. The top 4 bytes are
	// stored, and the fingerprint of the board guards the bits in between.
	top4bytes    uint32
	score        int32
	check        uint16
	flagAndDepth uint8
	play         int8
}

func (t TableEntry) flag() uint8 {
	return t.flagAndDepth >> 6
}

func (t TableEntry) depth() uint8 {
	return t.flagAndDepth & depthMask
}

func (t TableEntry) valid() bool {
	// a table flag is 1, 2, or 3.
	return t.flag() != 0
}

func (t TableEntry) move() int {
	return int(t.play)
}

// TranspositionTable caches search results by Zobrist key. It belongs to a
// single Solver and is not safe for concurrent use.
type TranspositionTable struct {
	table        []TableEntry
	created      uint64
	lookups      uint64
	hits         uint64
	sizePowerOf2 int
	sizeMask     uint64
	// "type 2" collisions: the bucket holds an unrelated position.
	t2collisions uint64
}

func (t *TranspositionTable) lookup(zval uint64, check uint16) TableEntry {
	t.lookups++
	idx := zval & t.sizeMask
	entry := t.table[idx]
	if entry.top4bytes != uint32(zval>>32) || entry.check != check {
		if entry.valid() {
			t.t2collisions++
		}
		return TableEntry{}
	}
	t.hits++
	return entry
}

func (t *TranspositionTable) store(zval uint64, check uint16, tentry TableEntry) {
	idx := zval & t.sizeMask
	tentry.top4bytes = uint32(zval >> 32)
	tentry.check = check
	// just overwrite whatever is there.
	t.table[idx] = tentry
	t.created++
}

// Reset sizes the table to roughly fractionOfMemory of the system's RAM and
// clears it.
func (t *TranspositionTable) Reset(fractionOfMemory float64) {
	totalMem := memory.TotalMemory()
	desiredNElems := fractionOfMemory * (float64(totalMem) / float64(entrySize))
	// find biggest power of 2 lower than desired.
	t.sizePowerOf2 = 0
	if desiredNElems >= 1 {
		t.sizePowerOf2 = int(math.Log2(desiredNElems))
	}
	if t.sizePowerOf2 < minSizePowerOf2 {
		t.sizePowerOf2 = minSizePowerOf2
	}

	numElems := 1 << t.sizePowerOf2
	t.sizeMask = uint64(numElems - 1)
	reset := false
	if t.table != nil && len(t.table) == numElems {
		reset = true
		clear(t.table)
	} else {
		t.table = make([]TableEntry, numElems)
	}

	log.Debug().Int("num-elems", numElems).
		Float64("desired-num-elems", desiredNElems).
		Int("estimated-total-memory-bytes", numElems*entrySize).
		Uint64("total-system-memory-bytes", totalMem).
		Bool("reset", reset).
		Msg("transposition-table-size")

	t.created = 0
	t.lookups = 0
	t.hits = 0
	t.t2collisions = 0
}

// Stats returns how many entries were stored, looked up, found, and how
// many lookups hit an unrelated position.
func (t *TranspositionTable) Stats() (created, lookups, hits, t2collisions uint64) {
	return t.created, t.lookups, t.hits, t.t2collisions
}
