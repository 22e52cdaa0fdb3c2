package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/domino14/othello/automatic"
	"github.com/domino14/othello/board"
	"github.com/domino14/othello/config"
	"github.com/domino14/othello/endgame"
	"github.com/domino14/othello/equity"
	"github.com/domino14/othello/game"
	"github.com/domino14/othello/turnplayer"
)

const (
	// maxSolveEmpties bounds the exact solve command.
	maxSolveEmpties   = 20
	defaultPerftDepth = 6
	defaultAutoplay   = 100
)

type Response struct {
	message string
}

type CmdOptions map[string]string

func (c CmdOptions) String(key string) string {
	return c[key]
}

func (c CmdOptions) Int(key string) (int, error) {
	v, ok := c[key]
	if !ok {
		return 0, errors.New(key + " not found in options")
	}
	return strconv.Atoi(v)
}

func (c CmdOptions) IntDefault(key string, defaultI int) (int, error) {
	v, ok := c[key]
	if !ok {
		return defaultI, nil
	}
	return strconv.Atoi(v)
}

func msg(message string) *Response {
	return &Response{message: message}
}

func (sc *ShellController) requireGame() error {
	if sc.game == nil {
		return errNoGame
	}
	return nil
}

// analysisBot returns the bot used for aiplay and think, building it from
// the current settings if needed.
func (sc *ShellController) analysisBot() (*turnplayer.BotPlayer, error) {
	if sc.bot != nil {
		return sc.bot, nil
	}
	bot, err := turnplayer.NewBotPlayerFromConfig(sc.config, config.ConfigEvalWeights)
	if err != nil {
		return nil, err
	}
	if path := sc.config.GetString(config.ConfigSearchLog); path != "" {
		if sc.searchLogFile != nil {
			sc.searchLogFile.Close()
		}
		f, err := os.Create(path)
		if err != nil {
			return nil, err
		}
		sc.searchLogFile = f
		bot.Solver().SetLogStream(f)
		sc.showMessage("search will log to " + path)
	}
	sc.bot = bot
	return bot, nil
}

func (sc *ShellController) help(cmd *shellcmd) (*Response, error) {
	if cmd.args == nil {
		return usage("standard")
	}
	return usageTopic(cmd.args[0])
}

func (sc *ShellController) newGame(cmd *shellcmd) (*Response, error) {
	opts := sc.options
	var err error
	if k := cmd.options.String("black"); k != "" {
		if opts.Black, err = turnplayer.ParsePlayerKind(k); err != nil {
			return nil, err
		}
	}
	if k := cmd.options.String("white"); k != "" {
		if opts.White, err = turnplayer.ParsePlayerKind(k); err != nil {
			return nil, err
		}
	}
	black, err := turnplayer.NewPlayer(opts.Black, sc.config, config.ConfigEvalWeights, sc.input, sc.out)
	if err != nil {
		return nil, err
	}
	white, err := turnplayer.NewPlayer(opts.White, sc.config, config.ConfigWhiteEvalWeights, sc.input, sc.out)
	if err != nil {
		return nil, err
	}
	sc.options = opts
	sc.game = game.NewGame(black, white)
	sc.game.SetMoveTime(sc.config.GetDuration(config.ConfigMoveTime))
	log.Debug().Str("black", opts.Black.String()).Str("white", opts.White.String()).Msg("new-game")
	return msg(sc.game.ToDisplayText()), nil
}

func (sc *ShellController) show(cmd *shellcmd) (*Response, error) {
	if err := sc.requireGame(); err != nil {
		return nil, err
	}
	return msg(sc.game.ToDisplayText()), nil
}

func (sc *ShellController) moves(cmd *shellcmd) (*Response, error) {
	if err := sc.requireGame(); err != nil {
		return nil, err
	}
	moves := sc.game.Board().Moves()
	if moves == 0 {
		return msg("No legal moves; the only move is pass"), nil
	}
	return msg(fmt.Sprintf("%d moves: %s", board.Popcount(moves), board.MovesToNotation(moves))), nil
}

func (sc *ShellController) commit(m int) (*Response, error) {
	mover := sc.game.Turn()
	if err := sc.game.PlayMove(m); err != nil {
		return nil, err
	}
	out := fmt.Sprintf("%s plays %s\n%s", mover, board.MoveToNotation(m), sc.game.ToDisplayText())
	if sc.game.Playing() == game.StateGameOver {
		out += sc.game.Result().String()
	}
	return msg(out), nil
}

func (sc *ShellController) play(cmd *shellcmd) (*Response, error) {
	if err := sc.requireGame(); err != nil {
		return nil, err
	}
	if len(cmd.args) != 1 {
		return nil, errors.New("usage: play <square>|pass")
	}
	m, err := board.ParseMove(cmd.args[0])
	if err != nil {
		return nil, err
	}
	return sc.commit(m)
}

func (sc *ShellController) aiplay(cmd *shellcmd) (*Response, error) {
	if err := sc.requireGame(); err != nil {
		return nil, err
	}
	if sc.game.Playing() != game.StatePlaying {
		return nil, game.ErrGameOver
	}
	bot, err := sc.analysisBot()
	if err != nil {
		return nil, err
	}
	m, err := bot.NextMove(context.Background(), sc.game.Board(),
		sc.config.GetDuration(config.ConfigMoveTime))
	if err != nil {
		return nil, err
	}
	return sc.commit(m)
}

// playOut lets the game's own players finish the game.
func (sc *ShellController) playOut(cmd *shellcmd) (*Response, error) {
	if err := sc.requireGame(); err != nil {
		return nil, err
	}
	sc.game.SetDisplay(sc.out)
	defer sc.game.SetDisplay(nil)
	_, err := sc.game.Play(context.Background())
	return nil, err
}

func (sc *ShellController) think(cmd *shellcmd) (*Response, error) {
	if err := sc.requireGame(); err != nil {
		return nil, err
	}
	bot, err := sc.analysisBot()
	if err != nil {
		return nil, err
	}
	depth, err := cmd.options.IntDefault("depth", bot.SearchDepth())
	if err != nil {
		return nil, err
	}
	ctx := context.Background()
	if d := sc.config.GetDuration(config.ConfigMoveTime); d > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d)
		defer cancel()
	}
	b := sc.game.Board()
	res, err := bot.Solver().Solve(ctx, b, depth)
	prefix := ""
	if errors.Is(err, context.DeadlineExceeded) {
		prefix = "out of time; best so far "
	} else if err != nil {
		return nil, err
	}
	pv := bot.Solver().PrincipalVariation(b, res)
	return msg(prefix + res.String() + "\n" + pv.NLBString()), nil
}

func (sc *ShellController) solve(cmd *shellcmd) (*Response, error) {
	if err := sc.requireGame(); err != nil {
		return nil, err
	}
	b := sc.game.Board()
	if b.Empties() > maxSolveEmpties {
		return nil, fmt.Errorf("%d empty squares; exact solving needs %d or fewer",
			b.Empties(), maxSolveEmpties)
	}
	var st endgame.Stats
	s := &endgame.Solver{}
	m, score := s.SolveWithStats(b, &st)
	return msg(fmt.Sprintf("%s: final disc differential %+d (%d nodes in %s, %.0f nps)",
		board.MoveToNotation(m), score, st.Nodes, st.Elapsed, st.NodesPerSecond())), nil
}

func (sc *ShellController) eval(cmd *shellcmd) (*Response, error) {
	if err := sc.requireGame(); err != nil {
		return nil, err
	}
	ev, err := equity.NewSimpleEvalFromString(sc.config.GetString(config.ConfigEvalWeights))
	if err != nil {
		return nil, err
	}
	terms := ev.Explain(sc.game.Board())
	var sb strings.Builder
	fmt.Fprintf(&sb, "%-12s%7s%8s%8s\n", "Feature", "Value", "Weight", "Total")
	for _, t := range terms {
		fmt.Fprintf(&sb, "%-12s%7d%8d%8d\n", t.Name, t.Value, t.Weight, t.Contribution())
	}
	score := equity.Total(terms)
	fmt.Fprintf(&sb, "Score for %s: %d (win %.1f%%)", sc.game.Turn(), score,
		100*equity.WinProbability(score))
	return msg(sb.String()), nil
}

func (sc *ShellController) perft(cmd *shellcmd) (*Response, error) {
	depth := defaultPerftDepth
	if len(cmd.args) > 0 {
		var err error
		depth, err = strconv.Atoi(cmd.args[0])
		if err != nil || depth < 0 {
			return nil, fmt.Errorf("bad perft depth %q", cmd.args[0])
		}
	}
	b := board.StartingPosition()
	if sc.game != nil {
		b = sc.game.Board()
	}
	start := time.Now()
	nodes := board.Perft(b, depth, false)
	elapsed := time.Since(start)
	return msg(fmt.Sprintf("perft(%d) = %d (%s, %.0f nps)", depth, nodes, elapsed,
		float64(nodes)/max(elapsed.Seconds(), 1e-9))), nil
}

func (sc *ShellController) autoplay(cmd *shellcmd) (*Response, error) {
	games, err := cmd.options.IntDefault("games", defaultAutoplay)
	if err != nil {
		return nil, err
	}
	threads, err := cmd.options.IntDefault("threads", runtime.NumCPU())
	if err != nil {
		return nil, err
	}
	var w io.Writer
	if path := cmd.options.String("file"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		w = f
	}
	sc.showMessage(fmt.Sprintf("playing %d games on %d threads", games, threads))
	sum, err := automatic.CompVsComp(context.Background(), sc.config, games, threads, w)
	if err != nil {
		return nil, err
	}
	return msg(sum.String()), nil
}

func (sc *ShellController) autoAnalyze(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) != 1 {
		return nil, errors.New("usage: autoanalyze <file>")
	}
	sum, err := automatic.AnalyzeLogFile(cmd.args[0])
	if err != nil {
		return nil, err
	}
	return msg(sum.String()), nil
}

func (sc *ShellController) settingsText() string {
	keys := sc.config.AllKeys()
	sort.Strings(keys)
	var sb strings.Builder
	sb.WriteString("Settings:\n")
	for _, k := range keys {
		fmt.Fprintf(&sb, "  %s: %v\n", k, sc.config.Get(k))
	}
	return sb.String()
}

func (sc *ShellController) set(cmd *shellcmd) (*Response, error) {
	if cmd.args == nil {
		return msg(sc.settingsText()), nil
	}
	key := cmd.args[0]
	if !lo.Contains(sc.config.AllKeys(), key) {
		return nil, errors.New("No such option: " + key)
	}
	if len(cmd.args) == 1 {
		return msg(fmt.Sprintf("%s: %v", key, sc.config.Get(key))), nil
	}
	value := cmd.args[1]
	if err := sc.config.SetValue(key, value); err != nil {
		return nil, err
	}
	// The next aiplay or think builds its bot from the new settings.
	sc.bot = nil
	return msg("set " + key + " to " + value), nil
}
