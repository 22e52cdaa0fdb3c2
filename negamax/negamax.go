package negamax

import (
	"github.com/domino14/othello/board"
	"github.com/domino14/othello/equity"
)

// thanks Wikipedia:
/*
function negamax(node, depth, α, β, color) is
    if depth = 0 or node is a terminal node then
        return color × the heuristic value of node

    childNodes := generateMoves(node)
    childNodes := orderMoves(childNodes)
    value := −∞
    foreach child in childNodes do
        value := max(value, −negamax(child, depth − 1, −β, −α, −color))
        α := max(α, value)
        if α ≥ β then
            break (* cut-off *)
    return value
**/

// Infinity is larger than any score a search can return.
const Infinity = 1 << 30

// hashMoveOrder sorts ahead of every searched ordering score.
const hashMoveOrder = -Infinity - 1

// child is a successor of a node, with the score used to order it. A lower
// order is searched first: it is the child's score from the opponent's
// point of view.
type child struct {
	move  int
	order int
	after board.Board
	key   uint64
}

func clamp(score, α, β int) int {
	if score <= α {
		return α
	}
	if score >= β {
		return β
	}
	return score
}

// children expands every legal move of b. moves must be non-zero.
func (s *Solver) children(b board.Board, key uint64, slot int, moves uint64) []child {
	kids := make([]child, 0, board.Popcount(moves))
	for moves != 0 {
		sq := board.LowestSquare(moves)
		moves &= moves - 1
		after := b.DoMove(sq)
		// after.Opp is the mover's pieces: the old ones, the flips and sq.
		gen := uint64(1) << uint(sq)
		flips := (after.Opp ^ b.Own) &^ gen
		kids = append(kids, child{
			move:  sq,
			after: after,
			key:   s.zobrist.AddMove(key, sq, flips, slot),
		})
	}
	return kids
}

// pickBest moves the lowest-ordered child at or after i into position i.
// Selection is done lazily so that a cutoff saves the rest of the sort.
func pickBest(kids []child, i int) {
	best := i
	for j := i + 1; j < len(kids); j++ {
		if kids[j].order < kids[best].order {
			best = j
		}
	}
	if best != i {
		kids[i], kids[best] = kids[best], kids[i]
	}
}

// assignOrders scores each child with a shallow search in the node's
// window, and puts the hash move in front of everything.
func (s *Solver) assignOrders(kids []child, slot, sortDepth, α, β, hashMove int, shallow bool) {
	for i := range kids {
		if kids[i].move == hashMove {
			kids[i].order = hashMoveOrder
			continue
		}
		if shallow {
			kids[i].order = s.negamax(kids[i].after, kids[i].key, 1-slot, sortDepth, -β, -α, false)
		}
	}
}

// leaf evaluates b without searching further. Finished games get their
// exact score.
func (s *Solver) leaf(b board.Board) int {
	if b.IsTerminal() {
		return equity.Terminal(b)
	}
	return s.eval.Score(b)
}

// negamax is a fail-hard alpha-beta search: the result is the true value
// of b at this depth clamped to [α, β]. slot is the Zobrist mover slot of
// the side to move in b, and passed says the previous ply was a pass.
//
// A forced pass does not use up depth. A second pass in a row ends the game.
func (s *Solver) negamax(b board.Board, key uint64, slot, depth, α, β int, passed bool) int {
	s.nodes++
	if depth <= 0 {
		return clamp(s.leaf(b), α, β)
	}
	moves := b.Moves()
	if moves == 0 {
		if passed {
			return clamp(equity.Terminal(b), α, β)
		}
		passKey := s.zobrist.AddMove(key, board.Pass, 0, slot)
		return -s.negamax(b.Pass(), passKey, 1-slot, depth, -β, -α, true)
	}

	hashMove := board.Pass
	var check uint16
	if s.transpositionTableOptim {
		check = s.fingerprints.Sum(b)
		ttEntry := s.ttable.lookup(key, check)
		if ttEntry.valid() {
			if int(ttEntry.depth()) == depth {
				score := int(ttEntry.score)
				switch ttEntry.flag() {
				case TTExact:
					return clamp(score, α, β)
				case TTLower:
					if score >= β {
						return β
					}
				case TTUpper:
					if score <= α {
						return α
					}
				}
			}
			if m := ttEntry.move(); m >= 0 && moves&(1<<uint(m)) != 0 {
				hashMove = m
			}
		}
	}

	kids := s.children(b, key, slot, moves)
	sortDepth := max(depth-s.sortDepthDelta, 0)
	s.assignOrders(kids, slot, sortDepth, α, β, hashMove, depth > 1)

	var flag uint8 = TTUpper
	bestMove := board.Pass
	for i := range kids {
		pickBest(kids, i)
		if i == 0 {
			bestMove = kids[0].move
		}
		score := -s.negamax(kids[i].after, kids[i].key, 1-slot, depth-1, -β, -α, false)
		if score >= β {
			s.storeEntry(key, check, β, TTLower, depth, kids[i].move)
			return β
		}
		if score > α {
			α = score
			bestMove = kids[i].move
			flag = TTExact
		}
	}
	s.storeEntry(key, check, α, flag, depth, bestMove)
	return α
}

func (s *Solver) storeEntry(key uint64, check uint16, score int, flag uint8, depth, play int) {
	if !s.transpositionTableOptim {
		return
	}
	s.ttable.store(key, check, TableEntry{
		score:        int32(score),
		flagAndDepth: flag<<6 + uint8(depth),
		play:         int8(play),
	})
}

// Negamax searches b to the given depth with a fail-hard alpha-beta search
// and returns its value for the side to move, clamped to [alpha, beta].
func (s *Solver) Negamax(b board.Board, depth, alpha, beta int) int {
	s.ensureTable()
	depth = clampDepth(depth)
	return s.negamax(b, s.zobrist.Hash(b, 0), 0, depth, alpha, beta, false)
}

func clampDepth(depth int) int {
	if depth < 0 {
		return 0
	}
	if depth > MaxDepth {
		return MaxDepth
	}
	return depth
}
