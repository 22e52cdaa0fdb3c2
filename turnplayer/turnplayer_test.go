package turnplayer

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/matryer/is"
	"github.com/rs/zerolog"

	"github.com/domino14/othello/board"
	"github.com/domino14/othello/config"
	"github.com/domino14/othello/endgame"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.WarnLevel)
	os.Exit(m.Run())
}

func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Set(config.ConfigSearchDepth, 3)
	cfg.Set(config.ConfigTTableMemFraction, 0)
	return cfg
}

func TestStreamPlayerRepromptsOnBadInput(t *testing.T) {
	is := is.New(t)
	var out bytes.Buffer
	p := NewStreamPlayer(strings.NewReader("\nzz\na1\npass\n  F5 \n"), &out)
	m, err := p.NextMove(context.Background(), board.StartingPosition(), 0)
	is.NoErr(err)
	is.Equal(board.MoveToNotation(m), "f5")
	is.Equal(strings.Count(out.String(), "your move (d3 c4 f5 e6): "), 5)
	is.True(strings.Contains(out.String(), "illegal move: a1"))
	is.True(strings.Contains(out.String(), "illegal move: pass"))
	is.True(strings.Contains(out.String(), "could not parse move"))
}

func TestStreamPlayerEOF(t *testing.T) {
	is := is.New(t)
	p := NewStreamPlayer(strings.NewReader("zz\n"), nil)
	_, err := p.NextMove(context.Background(), board.StartingPosition(), 0)
	is.True(errors.Is(err, io.EOF))
}

type lines []string

func (l *lines) Readline() (string, error) {
	if len(*l) == 0 {
		return "", io.EOF
	}
	s := (*l)[0]
	*l = (*l)[1:]
	return s, nil
}

func TestLineReaderPlayer(t *testing.T) {
	is := is.New(t)
	in := &lines{"e6"}
	p := NewLineReaderPlayer(in, io.Discard)
	m, err := p.NextMove(context.Background(), board.StartingPosition(), time.Second)
	is.NoErr(err)
	is.Equal(m, 44)
}

func TestRandomPlayerPlaysLegalMoves(t *testing.T) {
	is := is.New(t)
	p := NewRandomPlayer(nil)
	b := board.StartingPosition()
	for i := 0; i < 20; i++ {
		if b.Moves() == 0 {
			b = b.Pass()
			continue
		}
		m, err := p.NextMove(context.Background(), b, 0)
		is.NoErr(err)
		is.True(b.IsLegal(m))
		b = b.DoMove(m)
	}
}

func TestBotPlayerFromConfig(t *testing.T) {
	is := is.New(t)
	p, err := NewBotPlayerFromConfig(testConfig(), config.ConfigEvalWeights)
	is.NoErr(err)
	is.Equal(p.SearchDepth(), 3)
	m, err := p.NextMove(context.Background(), board.StartingPosition(), 0)
	is.NoErr(err)
	is.True(board.StartingPosition().IsLegal(m))
}

func TestBotPlayerBadWeights(t *testing.T) {
	is := is.New(t)
	cfg := testConfig()
	cfg.Set(config.ConfigEvalWeights, "1,2")
	_, err := NewBotPlayerFromConfig(cfg, config.ConfigEvalWeights)
	is.True(err != nil)
}

func TestBotPlayerSingleMove(t *testing.T) {
	is := is.New(t)
	p, err := NewBotPlayerFromConfig(testConfig(), config.ConfigEvalWeights)
	is.NoErr(err)
	b := board.Board{}.AddPiece(0, board.Black).AddPiece(1, board.White).AddPiece(2, board.White)
	m, err := p.NextMove(context.Background(), b, 0)
	is.NoErr(err)
	is.Equal(board.MoveToNotation(m), "d1")
}

type fakeEndgame struct {
	move  int
	calls int
}

func (f *fakeEndgame) BestMove(b board.Board, st *endgame.Stats) int {
	f.calls++
	st.Nodes = 1
	return f.move
}

func TestBotPlayerEndgameHandOff(t *testing.T) {
	is := is.New(t)
	base, err := NewBotPlayerFromConfig(testConfig(), config.ConfigEvalWeights)
	is.NoErr(err)
	b := board.StartingPosition()

	// Endgame threshold reached: the solver's move is used.
	eg := &fakeEndgame{move: 37}
	p := NewBotPlayer(base.Solver(), eg, 3, 60)
	m, err := p.NextMove(context.Background(), b, 0)
	is.NoErr(err)
	is.Equal(m, 37)
	is.Equal(eg.calls, 1)

	// A losing verdict falls back to the search.
	eg = &fakeEndgame{move: endgame.MoveLose}
	p = NewBotPlayer(base.Solver(), eg, 3, 60)
	m, err = p.NextMove(context.Background(), b, 0)
	is.NoErr(err)
	is.True(b.IsLegal(m))
	is.Equal(eg.calls, 1)

	// Too many empties: the solver is not asked.
	eg = &fakeEndgame{move: 37}
	p = NewBotPlayer(base.Solver(), eg, 3, 12)
	_, err = p.NextMove(context.Background(), b, 0)
	is.NoErr(err)
	is.Equal(eg.calls, 0)
}

func TestBotPlayerCancelled(t *testing.T) {
	is := is.New(t)
	p, err := NewBotPlayerFromConfig(testConfig(), config.ConfigEvalWeights)
	is.NoErr(err)
	p.Solver().SetIterativeDeepening(true)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = p.NextMove(ctx, board.StartingPosition(), 0)
	is.True(errors.Is(err, context.Canceled))
}

func TestBotPlayerBudgetKeepsLastDepth(t *testing.T) {
	is := is.New(t)
	p, err := NewBotPlayerFromConfig(testConfig(), config.ConfigEvalWeights)
	is.NoErr(err)
	p.Solver().SetIterativeDeepening(true)
	p.SetSearchDepth(40)
	m, err := p.NextMove(context.Background(), board.StartingPosition(), time.Nanosecond)
	is.NoErr(err)
	is.True(board.StartingPosition().IsLegal(m))
}

func TestParsePlayerKind(t *testing.T) {
	is := is.New(t)
	k, err := ParsePlayerKind("Random")
	is.NoErr(err)
	is.Equal(k, KindRandom)
	is.Equal(k.String(), "random")
	k, err = ParsePlayerKind("human")
	is.NoErr(err)
	is.Equal(k, KindHuman)
	_, err = ParsePlayerKind("robot")
	is.True(err != nil)
}
