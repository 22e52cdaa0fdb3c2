package automatic

import (
	"bytes"
	"context"
	"encoding/binary"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matryer/is"
	"github.com/rs/zerolog"
	"lukechampine.com/frand"

	"github.com/domino14/othello/board"
	"github.com/domino14/othello/config"
	"github.com/domino14/othello/turnplayer"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.Disabled)
	os.Exit(m.Run())
}

func seeded(seed uint64) *frand.RNG {
	s := make([]byte, 32)
	binary.LittleEndian.PutUint64(s, seed)
	return frand.NewCustom(s, 1024, 12)
}

func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Set(config.ConfigSearchDepth, 1)
	cfg.Set(config.ConfigEndgameEmpties, 6)
	cfg.Set(config.ConfigTTableMemFraction, 0.0)
	cfg.Set(config.ConfigAutoplayRandomPlies, 8)
	return cfg
}

func TestPlayGameSwapsColors(t *testing.T) {
	is := is.New(t)
	r := NewGameRunner(turnplayer.NewRandomPlayer(seeded(1)), turnplayer.NewRandomPlayer(seeded(2)))
	r.SetRandomPlies(4, seeded(3))

	for id := 0; id < 6; id++ {
		rec, err := r.PlayGame(context.Background(), id)
		is.NoErr(err)
		is.Equal(rec.ID, id)
		if id%2 == 0 {
			is.Equal(rec.First, Player1)
		} else {
			is.Equal(rec.First, Player2)
		}
		is.True(rec.P1Discs+rec.P2Discs <= board.NumSquares)
		is.True(len(rec.Moves) > 4)
		is.Equal(rec.BlackSpread()*rec.BlackSpread(), rec.Spread()*rec.Spread())
	}
}

func TestGameRecordCSV(t *testing.T) {
	is := is.New(t)
	rec := GameRecord{ID: 3, First: Player2, P1Discs: 40, P2Discs: 24, Moves: []int{37, 43, board.Pass}}
	is.Equal(rec.csvLine(), "3,40,24,p2,f5 d6 pass\n")
	is.Equal(rec.Spread(), 16)
	is.Equal(rec.BlackSpread(), -16)

	back, err := parseRecord([]string{"3", "40", "24", "p2", "f5 d6 pass"})
	is.NoErr(err)
	is.Equal(back.Moves, rec.Moves)
	is.Equal(back.Spread(), rec.Spread())

	_, err = parseRecord([]string{"3", "40", "x", "p2", "f5"})
	is.True(err != nil)
	_, err = parseRecord([]string{"3", "40", "24", "p2", "f5 zz"})
	is.True(err != nil)
}

func TestSummary(t *testing.T) {
	is := is.New(t)
	s := NewSummary()
	is.Equal(s.String(), "Games played: 0 (0 distinct)\n")

	s.Add(GameRecord{First: Player1, P1Discs: 40, P2Discs: 24, Moves: []int{37, 43}})
	s.Add(GameRecord{First: Player2, P1Discs: 30, P2Discs: 34, Moves: []int{37, 43}})
	s.Add(GameRecord{First: Player1, P1Discs: 32, P2Discs: 32, Moves: []int{37, 29}})
	is.Equal(s.Games(), 3)
	is.Equal(s.Distinct(), 2)
	is.Equal(s.P1.Wins, 1)
	is.Equal(s.P1.Losses, 1)
	is.Equal(s.P1.Ties, 1)
	// Black won the first game and the second one.
	is.Equal(s.Black.Wins, 2)
	is.Equal(s.Spread.Mean(), 4.0)

	out := s.String()
	is.True(strings.Contains(out, "Games played: 3 (2 distinct)"))
	is.True(strings.Contains(out, "p1 W-L-T: 1-1-1 (50.0%)"))
	is.True(strings.Contains(out, "Black W-L-T: 2-0-1 (83.3%)"))
	is.True(strings.Contains(out, "Spread histogram:"))
}

func TestCompVsComp(t *testing.T) {
	is := is.New(t)
	var buf bytes.Buffer
	sum, err := CompVsComp(context.Background(), testConfig(), 6, 2, &buf)
	is.NoErr(err)
	is.Equal(sum.Games(), 6)
	is.Equal(CVCCounter.Value(), int64(6))
	is.Equal(IsPlaying.Value(), int64(0))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	is.Equal(len(lines), 7)
	is.Equal(lines[0]+"\n", csvHeader)

	// The log reads back into the same summary.
	path := filepath.Join(t.TempDir(), "games.csv")
	is.NoErr(os.WriteFile(path, buf.Bytes(), 0644))
	back, err := AnalyzeLogFile(path)
	is.NoErr(err)
	is.Equal(back.P1, sum.P1)
	is.Equal(back.Black, sum.Black)
	is.Equal(back.Distinct(), sum.Distinct())
	is.Equal(back.Spread.Mean(), sum.Spread.Mean())
}

func TestCompVsCompCancelled(t *testing.T) {
	is := is.New(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	sum, err := CompVsComp(ctx, testConfig(), 20, 2, nil)
	is.True(err != nil)
	is.True(sum.Games() < 20)
}

func TestCompVsCompBadWeights(t *testing.T) {
	is := is.New(t)
	cfg := testConfig()
	cfg.Set(config.ConfigWhiteEvalWeights, "1,2,3")
	_, err := CompVsComp(context.Background(), cfg, 2, 1, nil)
	is.True(err != nil)
}
