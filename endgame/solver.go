// Package endgame solves Othello endgames exactly, maximizing the final
// disc differential with a full-depth alpha-beta search.
package endgame

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/domino14/othello/board"
)

// MoveLose is returned by BestMove when every continuation loses. A position
// that can at best be drawn is not lost: BestMove returns the drawing move.
const MoveLose = -2

// fastestFirstEmpties is the number of empties above which moves are
// ordered by opponent mobility. Closer to the end the ordering costs more
// than it saves.
const fastestFirstEmpties = 6

const maxScore = board.NumSquares + 1

// Stats reports the work done by one solve.
type Stats struct {
	Nodes   uint64
	Elapsed time.Duration
}

// NodesPerSecond is zero for a solve that took no measurable time.
func (st Stats) NodesPerSecond() float64 {
	if st.Elapsed <= 0 {
		return 0
	}
	return float64(st.Nodes) / st.Elapsed.Seconds()
}

// Solver is an exact endgame solver. It keeps no state between solves
// apart from a node counter, so one Solver must not be shared between
// goroutines.
type Solver struct {
	nodes uint64
}

type orderedMove struct {
	sq       int
	after    board.Board
	mobility int
}

func (s *Solver) orderedMoves(b board.Board, moves uint64) []orderedMove {
	oms := make([]orderedMove, 0, board.Popcount(moves))
	sortThem := b.Empties() > fastestFirstEmpties
	for moves != 0 {
		sq := board.LowestSquare(moves)
		moves &= moves - 1
		om := orderedMove{sq: sq, after: b.DoMove(sq)}
		if sortThem {
			om.mobility = board.Popcount(om.after.Moves())
		}
		oms = append(oms, om)
	}
	if sortThem {
		// insertion sort; there are rarely more than a dozen moves.
		for i := 1; i < len(oms); i++ {
			for j := i; j > 0 && oms[j].mobility < oms[j-1].mobility; j-- {
				oms[j], oms[j-1] = oms[j-1], oms[j]
			}
		}
	}
	return oms
}

func (s *Solver) solve(b board.Board, α, β int, passed bool) int {
	s.nodes++
	moves := b.Moves()
	if moves == 0 {
		if passed {
			own, opp := b.Count()
			return own - opp
		}
		return -s.solve(b.Pass(), -β, -α, true)
	}
	best := -maxScore
	for _, om := range s.orderedMoves(b, moves) {
		v := -s.solve(om.after, -β, -α, false)
		if v > best {
			best = v
			if v > α {
				α = v
			}
			if α >= β {
				break
			}
		}
	}
	return best
}

// Solve returns the best move for the side to move and the exact final disc
// differential it leads to. With no legal move the move is a pass.
func (s *Solver) Solve(b board.Board) (int, int) {
	st := &Stats{}
	return s.solveRoot(b, st)
}

// SolveWithStats is Solve, also reporting the node count and time taken.
func (s *Solver) SolveWithStats(b board.Board, st *Stats) (int, int) {
	return s.solveRoot(b, st)
}

func (s *Solver) solveRoot(b board.Board, st *Stats) (int, int) {
	start := time.Now()
	s.nodes = 0
	defer func() {
		st.Nodes = s.nodes
		st.Elapsed = time.Since(start)
	}()

	moves := b.Moves()
	if moves == 0 {
		return board.Pass, s.solve(b, -maxScore, maxScore, false)
	}
	bestMove, best := board.Pass, -maxScore
	α, β := -maxScore, maxScore
	for _, om := range s.orderedMoves(b, moves) {
		v := -s.solve(om.after, -β, -α, false)
		if v > best {
			best, bestMove = v, om.sq
			α = max(α, v)
		}
	}
	return bestMove, best
}

// BestMove solves b and returns the best move, or MoveLose when the side
// to move loses against best play whatever it does. A drawn position still
// returns its drawing move. st, if not nil, receives the node count and
// time taken.
func (s *Solver) BestMove(b board.Board, st *Stats) int {
	if st == nil {
		st = &Stats{}
	}
	m, score := s.solveRoot(b, st)
	log.Debug().Int("empties", b.Empties()).
		Str("move", board.MoveToNotation(m)).
		Int("score", score).
		Uint64("nodes", st.Nodes).
		Float64("nps", st.NodesPerSecond()).
		Float64("time-elapsed-sec", st.Elapsed.Seconds()).
		Msg("endgame-solved")
	if m != board.Pass && score < 0 {
		return MoveLose
	}
	return m
}
