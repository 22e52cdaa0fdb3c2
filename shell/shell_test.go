package shell

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/matryer/is"
	"github.com/rs/zerolog"

	"github.com/domino14/othello/board"
	"github.com/domino14/othello/config"
	"github.com/domino14/othello/game"
	"github.com/domino14/othello/turnplayer"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.Disabled)
	os.Exit(m.Run())
}

type scriptedLines struct {
	lines []string
}

func (s *scriptedLines) Readline() (string, error) {
	if len(s.lines) == 0 {
		return "", io.EOF
	}
	l := s.lines[0]
	s.lines = s.lines[1:]
	return l, nil
}

func newTestShell(input ...string) (*ShellController, *bytes.Buffer) {
	cfg := config.DefaultConfig()
	cfg.Set(config.ConfigSearchDepth, 2)
	cfg.Set(config.ConfigEndgameEmpties, 6)
	cfg.Set(config.ConfigTTableMemFraction, 0.0)
	out := &bytes.Buffer{}
	sc := &ShellController{
		config:  cfg,
		out:     out,
		input:   &scriptedLines{lines: input},
		options: turnplayer.DefaultGameOptions(),
	}
	return sc, out
}

// run executes line and returns what it printed.
func run(sc *ShellController, out *bytes.Buffer, line string) string {
	out.Reset()
	sig := make(chan os.Signal, 1)
	sc.Execute(sig, line)
	return out.String()
}

func TestExtractFields(t *testing.T) {
	type testdata struct {
		line   string
		expCmd *shellcmd
		expErr error
	}
	cases := []testdata{
		{"", nil, errNoData},
		{"autoplay -file /path/to/log.txt",
			&shellcmd{"autoplay", nil, CmdOptions{"file": "/path/to/log.txt"}},
			nil},
		{"autoplay stop",
			&shellcmd{"autoplay", []string{"stop"}, CmdOptions{}},
			nil},
		{"new -black random -white 'bot' ",
			&shellcmd{"new", nil, CmdOptions{"black": "random", "white": "bot"}},
			nil,
		},
		{"autoanalyze \"my games.csv\"",
			&shellcmd{"autoanalyze", []string{"my games.csv"}, CmdOptions{}},
			nil,
		},
		{"think -depth", nil, errWrongOptionSyntax},
	}
	for _, tc := range cases {
		cmd, err := extractFields(tc.line)
		if diff := cmp.Diff(tc.expCmd, cmd, cmp.AllowUnexported(shellcmd{})); diff != "" {
			t.Errorf("%q: unexpected command (-want +got):\n%s", tc.line, diff)
		}
		if err != tc.expErr {
			t.Errorf("%q: expected error %v, got %v", tc.line, tc.expErr, err)
		}
	}
}

func TestCommandsNeedAGame(t *testing.T) {
	is := is.New(t)
	sc, out := newTestShell()
	for _, line := range []string{"show", "moves", "play d3", "aiplay", "go", "think", "solve", "eval"} {
		is.Equal(run(sc, out, line), "Error: "+errNoGame.Error()+"\n")
	}
	is.True(strings.HasPrefix(run(sc, out, "frobnicate"), "Error: command \"frobnicate\" not found"))
}

func TestNewGameAndPlay(t *testing.T) {
	is := is.New(t)
	sc, out := newTestShell()
	text := run(sc, out, "new -black human -white random")
	is.True(strings.Contains(text, "Moves: d3 c4 f5 e6"))
	is.Equal(sc.options.Black, turnplayer.KindHuman)
	is.Equal(sc.options.White, turnplayer.KindRandom)

	is.Equal(run(sc, out, "moves"), "4 moves: d3 c4 f5 e6\n")
	is.True(strings.HasPrefix(run(sc, out, "play a1"), "Error: illegal move: a1 for Black"))
	is.True(strings.HasPrefix(run(sc, out, "play z9"), "Error: "))

	text = run(sc, out, "p d3")
	is.True(strings.HasPrefix(text, "Black plays d3\n"))
	is.Equal(sc.game.Turn(), board.White)
	is.Equal(sc.game.History(), []int{19})

	is.True(strings.HasPrefix(run(sc, out, "new -black alien"), "Error: Valid options"))
	// A failed new leaves the game alone.
	is.Equal(len(sc.game.History()), 1)
}

func TestAiplayAndThink(t *testing.T) {
	is := is.New(t)
	sc, out := newTestShell()
	run(sc, out, "new")
	text := run(sc, out, "aiplay")
	is.True(strings.HasPrefix(text, "Black plays "))
	is.Equal(sc.game.Turn(), board.White)

	text = run(sc, out, "think -depth 3")
	is.True(strings.Contains(text, "depth 3"))
	is.True(strings.Contains(text, "nodes"))
	is.True(strings.Contains(text, "\nPV; val "))
	is.True(strings.HasPrefix(run(sc, out, "think -depth x"), "Error: "))
}

func TestSearchLog(t *testing.T) {
	is := is.New(t)
	sc, out := newTestShell()
	path := filepath.Join(t.TempDir(), "search.yaml")
	run(sc, out, "set search-log "+path)
	run(sc, out, "new")
	text := run(sc, out, "think")
	is.True(strings.Contains(text, "search will log to "+path))
	sc.Cleanup()

	dat, err := os.ReadFile(path)
	is.NoErr(err)
	is.True(strings.Contains(string(dat), "depth: 2"))
}

func TestGoPlaysToTheEnd(t *testing.T) {
	is := is.New(t)
	sc, out := newTestShell()
	run(sc, out, "new -black random -white random")
	text := run(sc, out, "go")
	is.Equal(sc.game.Playing(), game.StateGameOver)
	is.True(strings.HasSuffix(text, sc.game.Result().String()+"\n"))
	is.True(strings.HasPrefix(run(sc, out, "aiplay"), "Error: game is over"))
}

func TestHumanReadsFromInput(t *testing.T) {
	is := is.New(t)
	sc, out := newTestShell("a1", "f5")
	run(sc, out, "new -black human -white random")
	// Black answers a1, which is refused, then f5; then input runs out.
	text := run(sc, out, "go")
	is.True(strings.Contains(text, "illegal move: a1"))
	is.True(strings.Contains(text, "\nBlack: f5\n"))
	is.True(strings.Contains(text, "Error: Black to move: reading move: EOF"))
	is.Equal(sc.game.History()[0], 37)
}

func TestSolveAndEval(t *testing.T) {
	is := is.New(t)
	sc, out := newTestShell()
	run(sc, out, "new -black random -white random")
	is.True(strings.HasPrefix(run(sc, out, "solve"), "Error: 60 empty squares"))

	text := run(sc, out, "eval")
	is.True(strings.HasPrefix(text, "Feature"))
	is.True(strings.Contains(text, "mobility"))
	is.True(strings.Contains(text, "Score for Black: "))

	for sc.game.Board().Empties() > 10 && sc.game.Playing() == game.StatePlaying {
		m := board.Pass
		if sqs := board.Squares(sc.game.Board().Moves()); len(sqs) > 0 {
			m = sqs[0]
		}
		is.NoErr(sc.game.PlayMove(m))
	}
	is.True(strings.Contains(run(sc, out, "solve"), "final disc differential"))
}

func TestPerft(t *testing.T) {
	is := is.New(t)
	sc, out := newTestShell()
	is.True(strings.HasPrefix(run(sc, out, "perft 3"), "perft(3) = 56 "))
	is.True(strings.HasPrefix(run(sc, out, "perft -1"), "Error: "))
	run(sc, out, "new")
	run(sc, out, "play d3")
	is.True(strings.HasPrefix(run(sc, out, "perft 1"), "perft(1) = 3 "))
}

func TestSet(t *testing.T) {
	is := is.New(t)
	sc, out := newTestShell()
	is.Equal(run(sc, out, "set search-depth 4"), "set search-depth to 4\n")
	is.Equal(sc.config.GetInt(config.ConfigSearchDepth), 4)
	is.Equal(run(sc, out, "set search-depth"), "search-depth: 4\n")
	is.Equal(run(sc, out, "set nope 3"), "Error: No such option: nope\n")
	is.True(strings.HasPrefix(run(sc, out, "set search-depth abc"), "Error: search-depth: "))
	is.Equal(sc.config.GetInt(config.ConfigSearchDepth), 4)
	text := run(sc, out, "set")
	is.True(strings.HasPrefix(text, "Settings:\n"))
	is.True(strings.Contains(text, "  eval-weights: 207,-41,327,28,917,-52\n"))
}

func TestAutoplay(t *testing.T) {
	is := is.New(t)
	sc, out := newTestShell()
	sc.config.Set(config.ConfigSearchDepth, 1)
	path := filepath.Join(t.TempDir(), "games.csv")
	text := run(sc, out, "autoplay -games 2 -threads 1 -file "+path)
	is.True(strings.Contains(text, "Games played: 2"))
	is.True(strings.Contains(run(sc, out, "autoanalyze "+path), "Games played: 2"))
	is.True(strings.HasPrefix(run(sc, out, "autoanalyze"), "Error: usage"))
}

func TestHelp(t *testing.T) {
	is := is.New(t)
	sc, out := newTestShell()
	is.True(strings.HasPrefix(run(sc, out, "help"), "Usage:"))
	is.True(strings.HasPrefix(run(sc, out, "help think"), "think [-depth n]"))
	is.Equal(run(sc, out, "help nope"), "Error: There is no help text for the topic nope\n")
}

func TestExit(t *testing.T) {
	is := is.New(t)
	sc, _ := newTestShell()
	sig := make(chan os.Signal, 1)
	is.True(!sc.Execute(sig, "  "))
	is.True(sc.Execute(sig, "exit"))
	is.Equal(len(sig), 1)
}

func TestCompleter(t *testing.T) {
	is := is.New(t)
	sc, out := newTestShell()
	c := NewShellCompleter(sc)
	complete := func(line string) []string {
		m, _ := c.Do([]rune(line), len(line))
		var s []string
		for _, r := range m {
			s = append(s, string(r))
		}
		return s
	}
	is.Equal(complete("th"), []string{"ink"})
	is.Equal(complete("new -black r"), []string{"andom"})
	is.Equal(complete("think -"), []string{"depth"})
	is.Equal(complete("play "), []string(nil))

	run(sc, out, "new")
	is.Equal(complete("play "), []string{"d3", "c4", "f5", "e6"})
	is.Equal(complete("play c"), []string{"4"})
}
