package endgame

import (
	"encoding/binary"
	"os"
	"testing"

	"github.com/matryer/is"
	"github.com/rs/zerolog"
	"lukechampine.com/frand"

	"github.com/domino14/othello/board"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	os.Exit(m.Run())
}

// endgamePosition plays random moves until at most empties squares are
// left. ok is false if the game ended first.
func endgamePosition(seed uint64, empties int) (board.Board, bool) {
	s := make([]byte, 32)
	binary.LittleEndian.PutUint64(s, seed)
	rng := frand.NewCustom(s, 1024, 12)
	b := board.StartingPosition()
	for b.Empties() > empties {
		moves := b.Moves()
		if moves == 0 {
			if b.Pass().Moves() == 0 {
				return b, false
			}
			b = b.Pass()
			continue
		}
		sqs := board.Squares(moves)
		b = b.DoMove(sqs[rng.Intn(len(sqs))])
	}
	return b, true
}

func exhaustive(b board.Board, passed bool) int {
	moves := b.Moves()
	if moves == 0 {
		if passed {
			own, opp := b.Count()
			return own - opp
		}
		return -exhaustive(b.Pass(), true)
	}
	best := -maxScore
	for _, sq := range board.Squares(moves) {
		best = max(best, -exhaustive(b.DoMove(sq), false))
	}
	return best
}

func TestSolveMatchesExhaustiveSearch(t *testing.T) {
	is := is.New(t)
	s := &Solver{}
	tested := 0
	for seed := uint64(0); seed < 40; seed++ {
		b, ok := endgamePosition(seed, 8)
		if !ok {
			continue
		}
		tested++
		want := exhaustive(b, false)
		m, score := s.Solve(b)
		is.Equal(score, want)
		if m == board.Pass {
			is.Equal(b.Moves(), uint64(0))
			continue
		}
		is.True(b.IsLegal(m))
		is.Equal(-exhaustive(b.DoMove(m), false), want)
	}
	is.True(tested > 20)
}

func TestBestMoveLoseSentinel(t *testing.T) {
	is := is.New(t)
	s := &Solver{}
	sawLose, sawMove := false, false
	for seed := uint64(100); seed < 140; seed++ {
		b, ok := endgamePosition(seed, 7)
		if !ok || b.Moves() == 0 {
			continue
		}
		_, score := s.Solve(b)
		var st Stats
		m := s.BestMove(b, &st)
		is.True(st.Nodes > 0)
		if score < 0 {
			is.Equal(m, MoveLose)
			sawLose = true
		} else {
			is.True(b.IsLegal(m))
			sawMove = true
		}
	}
	is.True(sawLose)
	is.True(sawMove)
}

func TestSolveWipeout(t *testing.T) {
	is := is.New(t)
	s := &Solver{}
	// Black a1, White b1 c1: d1 takes everything.
	b := board.Board{}.AddPiece(0, board.Black).AddPiece(1, board.White).AddPiece(2, board.White)
	m, score := s.Solve(b)
	is.Equal(board.MoveToNotation(m), "d1")
	is.Equal(score, 4)
	is.Equal(s.BestMove(b, nil), 3)

	// White must pass and then loses everything.
	m, score = s.Solve(b.Pass())
	is.Equal(m, board.Pass)
	is.Equal(score, -4)
	is.Equal(s.BestMove(b.Pass(), nil), board.Pass)
}

func TestBestMoveDrawIsNotLose(t *testing.T) {
	is := is.New(t)
	s := &Solver{}
	// Black a1, White b1 h6 h7 h8: c1 ends the game at 3-3.
	b := board.Board{}.AddPiece(0, board.Black).AddPiece(1, board.White).
		AddPiece(47, board.White).AddPiece(55, board.White).AddPiece(63, board.White)
	m, score := s.Solve(b)
	is.Equal(board.MoveToNotation(m), "c1")
	is.Equal(score, 0)
	is.Equal(s.BestMove(b, nil), 2)
}

func TestStatsNodesPerSecond(t *testing.T) {
	is := is.New(t)
	is.Equal(Stats{Nodes: 10}.NodesPerSecond(), 0.0)
	is.Equal(Stats{Nodes: 10, Elapsed: 2e9}.NodesPerSecond(), 5.0)
}
