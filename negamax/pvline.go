package negamax

import (
	"fmt"
	"strings"

	"github.com/domino14/othello/board"
)

// PVLine is a principal variation: the line of best play found by a search.
type PVLine struct {
	Moves []int
	score int
}

func (pvLine PVLine) Score() int {
	return pvLine.score
}

// Convert the principal variation line to a string.
func (pvLine PVLine) String() string {
	var s strings.Builder
	fmt.Fprintf(&s, "PV; val %d\n", pvLine.score)
	for i, m := range pvLine.Moves {
		fmt.Fprintf(&s, "%d: %s\n", i+1, board.MoveToNotation(m))
	}
	return s.String()
}

// NLBString is String without line breaks.
func (pvLine PVLine) NLBString() string {
	ns := make([]string, len(pvLine.Moves))
	for i, m := range pvLine.Moves {
		ns[i] = board.MoveToNotation(m)
	}
	return fmt.Sprintf("PV; val %d; %s", pvLine.score, strings.Join(ns, " "))
}

// PrincipalVariation rebuilds the line of best play after a search of b
// that returned res, by following the transposition table's best moves
// from the position after res.Move. The line stops where the table has no
// entry searched to exactly the remaining depth, so it can be shorter than
// res.Depth. Forced passes are part of the line and use no depth.
func (s *Solver) PrincipalVariation(b board.Board, res Result) PVLine {
	pv := PVLine{score: res.Score}
	m := res.Move
	if m == board.Pass && b.Moves() != 0 {
		return pv
	}
	key := s.zobrist.Hash(b, 0)
	slot := 0
	depth := res.Depth
	for {
		var flips uint64
		if m != board.Pass {
			flips = b.Flips(m)
			depth--
		}
		pv.Moves = append(pv.Moves, m)
		key = s.zobrist.AddMove(key, m, flips, slot)
		b = b.DoMove(m)
		slot = 1 - slot

		if depth <= 0 || b.IsTerminal() {
			break
		}
		if b.Moves() == 0 {
			m = board.Pass
			continue
		}
		if !s.transpositionTableOptim || s.ttable.table == nil {
			break
		}
		e := s.ttable.lookup(key, s.fingerprints.Sum(b))
		if !e.valid() || int(e.depth()) != depth || !b.IsLegal(e.move()) {
			break
		}
		m = e.move()
	}
	return pv
}
