package negamax

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/domino14/othello/board"
	"github.com/domino14/othello/equity"
	"github.com/domino14/othello/zobrist"
)

const (
	DefaultAspirationWindow     = 75
	DefaultAspirationDepthDelta = 1
	DefaultSortDepthDelta       = 4
	DefaultTTableMemFraction    = 0.02
	DefaultHashSeed             = 1337

	// MaxDepth is the deepest search that makes sense: one ply per empty
	// square.
	MaxDepth = 60
)

var ErrNoEvaluator = errors.New("solver needs an evaluator")

// Result is the outcome of a root search. Alpha and Beta are the window of
// the final search; a completed search has its Score strictly inside.
type Result struct {
	Move       int
	Score      int
	Depth      int
	Alpha      int
	Beta       int
	Researches int
	Nodes      uint64
	Elapsed    time.Duration
}

func (r Result) String() string {
	return fmt.Sprintf("%s: score %d (win %.1f%%), depth %d, window (%d, %d), %d re-searches, %d nodes in %s",
		board.MoveToNotation(r.Move), r.Score, 100*equity.WinProbability(r.Score),
		r.Depth, r.Alpha, r.Beta, r.Researches, r.Nodes, r.Elapsed)
}

// LogSearch is one root search in the search log.
type LogSearch struct {
	Depth int           `yaml:"depth"`
	Alpha int           `yaml:"alpha"`
	Beta  int           `yaml:"beta"`
	Score int           `yaml:"score"`
	Best  string        `yaml:"best"`
	Nodes uint64        `yaml:"nodes"`
	Moves []LogRootMove `yaml:"moves,flow"`
}

type LogRootMove struct {
	Move   string `yaml:"move"`
	Order  int    `yaml:"order"`
	Score  int    `yaml:"score"`
	Cutoff bool   `yaml:"cutoff,omitempty"`
}

// Solver picks moves with an alpha-beta search. A Solver is not safe for
// concurrent use; give each goroutine its own.
type Solver struct {
	eval         equity.Evaluator
	zobrist      *zobrist.Zobrist
	fingerprints *zobrist.FingerprintTable
	ttable       *TranspositionTable

	aspirationWindow        int
	aspirationDepthDelta    int
	sortDepthDelta          int
	iterativeDeepeningOptim bool
	transpositionTableOptim bool
	ttableFraction          float64

	nodes     uint64
	logStream io.Writer
}

// Init initializes the solver. z and ft may be nil, in which case tables
// are built from DefaultHashSeed.
func (s *Solver) Init(eval equity.Evaluator, z *zobrist.Zobrist, ft *zobrist.FingerprintTable) error {
	if eval == nil {
		return ErrNoEvaluator
	}
	if z == nil {
		z = &zobrist.Zobrist{}
		z.Initialize(DefaultHashSeed)
	}
	if ft == nil {
		ft = zobrist.NewFingerprintTable(DefaultHashSeed)
	}
	s.eval = eval
	s.zobrist = z
	s.fingerprints = ft
	s.ttable = &TranspositionTable{}
	s.aspirationWindow = DefaultAspirationWindow
	s.aspirationDepthDelta = DefaultAspirationDepthDelta
	s.sortDepthDelta = DefaultSortDepthDelta
	s.transpositionTableOptim = true
	s.ttableFraction = DefaultTTableMemFraction
	return nil
}

func (s *Solver) SetAspirationWindow(w int) {
	s.aspirationWindow = max(w, 1)
}

func (s *Solver) SetAspirationDepthDelta(d int) {
	s.aspirationDepthDelta = max(d, 0)
}

func (s *Solver) SetSortDepthDelta(d int) {
	s.sortDepthDelta = max(d, 1)
}

func (s *Solver) SetIterativeDeepening(id bool) {
	s.iterativeDeepeningOptim = id
}

func (s *Solver) SetTranspositionTableOptim(tt bool) {
	s.transpositionTableOptim = tt
}

func (s *Solver) SetTTableMemFraction(f float64) {
	s.ttableFraction = f
}

func (s *Solver) SetLogStream(w io.Writer) {
	s.logStream = w
}

func (s *Solver) Evaluator() equity.Evaluator {
	return s.eval
}

func (s *Solver) TranspositionTable() *TranspositionTable {
	return s.ttable
}

// Nodes is the number of nodes visited since the last Solve began.
func (s *Solver) Nodes() uint64 {
	return s.nodes
}

func (s *Solver) ensureTable() {
	if s.transpositionTableOptim && s.ttable.table == nil {
		s.ttable.Reset(s.ttableFraction)
	}
}

// RootSearch searches every move of b to depth-1 plies inside the window
// (alpha, beta) and returns the best move and its fail-hard score. If no
// move beats alpha the first move in search order is returned. If b has no
// legal move the result is a pass.
func (s *Solver) RootSearch(b board.Board, depth, alpha, beta int) (int, int) {
	s.ensureTable()
	m, score, _ := s.rootSearch(b, max(clampDepth(depth), 1), alpha, beta)
	return m, score
}

func (s *Solver) rootSearch(b board.Board, depth, α, β int) (int, int, []LogRootMove) {
	key := s.zobrist.Hash(b, 0)
	moves := b.Moves()
	if moves == 0 {
		log.Debug().Msg("must-pass")
		if b.Pass().Moves() == 0 {
			return board.Pass, clamp(equity.Terminal(b), α, β), nil
		}
		passKey := s.zobrist.AddMove(key, board.Pass, 0, 0)
		return board.Pass, -s.negamax(b.Pass(), passKey, 1, depth, -β, -α, true), nil
	}

	kids := s.children(b, key, 0, moves)
	sortDepth := max(depth-s.sortDepthDelta, 0)
	s.assignOrders(kids, 0, sortDepth, α, β, board.Pass, true)

	var logMoves []LogRootMove
	bestMove := board.Pass
	for i := range kids {
		pickBest(kids, i)
		if i == 0 {
			bestMove = kids[0].move
		}
		score := -s.negamax(kids[i].after, kids[i].key, 1, depth-1, -β, -α, false)
		if s.logStream != nil {
			logMoves = append(logMoves, LogRootMove{
				Move:   board.MoveToNotation(kids[i].move),
				Order:  kids[i].order,
				Score:  score,
				Cutoff: score >= β,
			})
		}
		if score >= β {
			log.Debug().Str("move", board.MoveToNotation(kids[i].move)).
				Int("beta", β).Msg("root-fail-high")
			return kids[i].move, β, logMoves
		}
		if score > α {
			bestMove = kids[i].move
			α = score
			log.Debug().Str("move", board.MoveToNotation(kids[i].move)).
				Int("score", score).
				Float64("win-prob", equity.WinProbability(score)).
				Msg("root-move-improved")
		} else {
			log.Debug().Str("move", board.MoveToNotation(kids[i].move)).Msg("root-move-no-better")
		}
	}
	return bestMove, α, logMoves
}

func (s *Solver) logSearch(depth, α, β, score, m int, moves []LogRootMove) {
	if s.logStream == nil {
		return
	}
	out, err := yaml.Marshal([]LogSearch{{
		Depth: depth,
		Alpha: α,
		Beta:  β,
		Score: score,
		Best:  board.MoveToNotation(m),
		Nodes: s.nodes,
		Moves: moves,
	}})
	if err != nil {
		log.Error().Err(err).Msg("marshalling log")
		return
	}
	if _, err := s.logStream.Write(out); err != nil {
		log.Error().Err(err).Msg("writing log")
	}
}

// AspirationSearch searches b to depth inside a window of margin around
// center. Whenever the score lands on a bound, that side of the window is
// widened by doubling its margin and the search is repeated, until the
// score lies strictly inside. A window side that reaches Infinity cannot
// fail, so this always terminates.
//
// ctx is checked before every re-search. If it is done, the error is
// returned along with the (incomplete) last attempt.
func (s *Solver) AspirationSearch(ctx context.Context, b board.Board, depth, center, margin int) (Result, error) {
	s.ensureTable()
	depth = max(clampDepth(depth), 1)
	margin = max(margin, 1)
	start := time.Now()
	startNodes := s.nodes

	loMargin, hiMargin := margin, margin
	α := max(center-loMargin, -Infinity)
	β := min(center+hiMargin, Infinity)
	res := Result{Depth: depth}
	for {
		log.Debug().Int("depth", depth).Int("alpha", α).Int("beta", β).
			Float64("alpha-win", equity.WinProbability(α)).
			Float64("beta-win", equity.WinProbability(β)).
			Msg("trying-aspiration-search")
		m, score, logMoves := s.rootSearch(b, depth, α, β)
		s.logSearch(depth, α, β, score, m, logMoves)
		res.Move, res.Score, res.Alpha, res.Beta = m, score, α, β
		res.Nodes = s.nodes - startNodes
		res.Elapsed = time.Since(start)

		switch {
		case score >= β:
			hiMargin *= 2
			β = min(center+hiMargin, Infinity)
		case score <= α:
			loMargin *= 2
			α = max(center-loMargin, -Infinity)
		default:
			return res, nil
		}
		res.Researches++
		if err := ctx.Err(); err != nil {
			return res, err
		}
	}
}

// Solve picks a move for b with a depth-ply search. Without iterative
// deepening a full-window search at a reduced depth estimates the score,
// and an aspiration search around it gives the answer. With iterative
// deepening every depth from 1 up is searched, each around the previous
// score.
//
// ctx is only checked between searches. When it is done, Solve returns the
// last completed result together with ctx.Err(); a depth-1 result is always
// completed first.
func (s *Solver) Solve(ctx context.Context, b board.Board, depth int) (Result, error) {
	start := time.Now()
	s.nodes = 0
	depth = max(clampDepth(depth), 1)
	if s.transpositionTableOptim {
		s.ttable.Reset(s.ttableFraction)
	}
	log.Debug().Int("depth", depth).Int("empties", b.Empties()).
		Bool("iterative-deepening", s.iterativeDeepeningOptim).
		Bool("ttable", s.transpositionTableOptim).
		Msg("negamax-solve-config")

	var res Result
	var err error
	if s.iterativeDeepeningOptim {
		res, err = s.iterativelyDeepen(ctx, b, depth)
	} else {
		res, err = s.coarseThenAspiration(ctx, b, depth)
	}
	res.Nodes = s.nodes
	res.Elapsed = time.Since(start)

	nps := float64(res.Nodes) / max(res.Elapsed.Seconds(), 1e-9)
	ev := log.Info()
	if s.transpositionTableOptim {
		created, lookups, hits, t2 := s.ttable.Stats()
		ev = ev.Uint64("ttable-created", created).
			Uint64("ttable-lookups", lookups).
			Uint64("ttable-hits", hits).
			Uint64("ttable-t2collisions", t2)
	}
	ev.Str("move", board.MoveToNotation(res.Move)).
		Int("score", res.Score).
		Int("depth", res.Depth).
		Uint64("nodes", res.Nodes).
		Float64("nps", nps).
		Float64("time-elapsed-sec", res.Elapsed.Seconds()).
		Msg("solve-returning")
	return res, err
}

func (s *Solver) fullWindow(b board.Board, depth int) Result {
	m, score, logMoves := s.rootSearch(b, depth, -Infinity, Infinity)
	s.logSearch(depth, -Infinity, Infinity, score, m, logMoves)
	return Result{Move: m, Score: score, Depth: depth, Alpha: -Infinity, Beta: Infinity}
}

func (s *Solver) coarseThenAspiration(ctx context.Context, b board.Board, depth int) (Result, error) {
	coarseDepth := max(depth-s.aspirationDepthDelta, 1)
	coarse := s.fullWindow(b, coarseDepth)
	log.Debug().Int("depth", coarseDepth).Int("score", coarse.Score).Msg("coarse-estimate")
	if coarseDepth >= depth {
		return coarse, nil
	}
	if err := ctx.Err(); err != nil {
		return coarse, err
	}
	res, err := s.AspirationSearch(ctx, b, depth, coarse.Score, s.aspirationWindow)
	if err != nil {
		return coarse, err
	}
	return res, nil
}

func (s *Solver) iterativelyDeepen(ctx context.Context, b board.Board, depth int) (Result, error) {
	best := s.fullWindow(b, 1)
	log.Info().Int("depth", 1).Int("score", best.Score).
		Str("move", board.MoveToNotation(best.Move)).Msg("best-val")
	for d := 2; d <= depth; d++ {
		if err := ctx.Err(); err != nil {
			return best, err
		}
		res, err := s.AspirationSearch(ctx, b, d, best.Score, s.aspirationWindow)
		if err != nil {
			return best, err
		}
		best = res
		log.Info().Int("depth", d).Int("score", best.Score).
			Float64("win-prob", equity.WinProbability(best.Score)).
			Str("move", board.MoveToNotation(best.Move)).
			Int("researches", best.Researches).
			Msg("best-val")
	}
	return best, nil
}
