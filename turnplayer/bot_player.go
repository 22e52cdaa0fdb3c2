package turnplayer

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/domino14/othello/board"
	"github.com/domino14/othello/config"
	"github.com/domino14/othello/endgame"
	"github.com/domino14/othello/equity"
	"github.com/domino14/othello/negamax"
	"github.com/domino14/othello/zobrist"
)

// EndgameSolver solves positions exactly. BestMove returns endgame.MoveLose
// when it has nothing better than a loss to offer.
type EndgameSolver interface {
	BestMove(b board.Board, st *endgame.Stats) int
}

// BotPlayer searches for its moves: exactly once few enough squares are
// empty, and with the heuristic search otherwise.
type BotPlayer struct {
	solver         *negamax.Solver
	endgame        EndgameSolver
	searchDepth    int
	endgameEmpties int
}

func NewBotPlayer(solver *negamax.Solver, eg EndgameSolver, searchDepth, endgameEmpties int) *BotPlayer {
	return &BotPlayer{
		solver:         solver,
		endgame:        eg,
		searchDepth:    searchDepth,
		endgameEmpties: endgameEmpties,
	}
}

// NewBotPlayerFromConfig builds a bot whose evaluation weights are read
// from weightsKey, and whose search settings come from cfg.
func NewBotPlayerFromConfig(cfg *config.Config, weightsKey string) (*BotPlayer, error) {
	eval, err := equity.NewSimpleEvalFromString(cfg.GetString(weightsKey))
	if err != nil {
		return nil, err
	}
	seed := cfg.GetUint64(config.ConfigHashSeed)
	z := &zobrist.Zobrist{}
	z.Initialize(seed)
	solver := &negamax.Solver{}
	if err := solver.Init(eval, z, zobrist.NewFingerprintTable(seed)); err != nil {
		return nil, err
	}
	solver.SetAspirationWindow(cfg.GetInt(config.ConfigAspirationWindow))
	solver.SetAspirationDepthDelta(cfg.GetInt(config.ConfigAspirationDepthDelta))
	solver.SetSortDepthDelta(cfg.GetInt(config.ConfigSortDepthDelta))
	solver.SetIterativeDeepening(cfg.GetBool(config.ConfigIterativeDeepening))
	solver.SetTranspositionTableOptim(!cfg.GetBool(config.ConfigDisableTT))
	solver.SetTTableMemFraction(cfg.GetFloat64(config.ConfigTTableMemFraction))

	return NewBotPlayer(solver, &endgame.Solver{},
		cfg.GetInt(config.ConfigSearchDepth),
		cfg.GetInt(config.ConfigEndgameEmpties)), nil
}

func (p *BotPlayer) Solver() *negamax.Solver {
	return p.solver
}

func (p *BotPlayer) SetSearchDepth(d int) {
	p.searchDepth = d
}

func (p *BotPlayer) SearchDepth() int {
	return p.searchDepth
}

func (p *BotPlayer) NextMove(ctx context.Context, b board.Board, budget time.Duration) (int, error) {
	moves := b.Moves()
	switch board.Popcount(moves) {
	case 0:
		return board.Pass, nil
	case 1:
		return board.LowestSquare(moves), nil
	}

	if p.endgame != nil && b.Empties() <= p.endgameEmpties {
		var st endgame.Stats
		m := p.endgame.BestMove(b, &st)
		log.Info().Int("empties", b.Empties()).
			Uint64("nodes", st.Nodes).
			Float64("nps", st.NodesPerSecond()).
			Float64("time-elapsed-sec", st.Elapsed.Seconds()).
			Msg("endgame-solve")
		if m != endgame.MoveLose {
			return m, nil
		}
		log.Info().Msg("endgame-no-win-deferring-to-search")
	}

	searchCtx := ctx
	if budget > 0 {
		var cancel context.CancelFunc
		searchCtx, cancel = context.WithTimeout(ctx, budget)
		defer cancel()
	}
	res, err := p.solver.Solve(searchCtx, b, p.searchDepth)
	if err != nil {
		if ctx.Err() == nil && errors.Is(err, context.DeadlineExceeded) {
			// Only our own budget ran out; the last finished depth stands.
			log.Info().Int("depth", res.Depth).Dur("budget", budget).Msg("move-time-exceeded")
			return res.Move, nil
		}
		return board.Pass, err
	}
	return res.Move, nil
}
