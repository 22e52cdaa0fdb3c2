// Package automatic plays computer players against each other, many games
// at a time, and collects statistics on how they fare.
package automatic

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"lukechampine.com/frand"

	"github.com/domino14/othello/board"
	"github.com/domino14/othello/game"
	"github.com/domino14/othello/turnplayer"
)

const (
	Player1 = "p1"
	Player2 = "p2"
)

// GameRecord is the outcome of one game, seen from the first player.
type GameRecord struct {
	ID int
	// First is the player who had Black.
	First   string
	P1Discs int
	P2Discs int
	Moves   []int
}

// Spread is the first player's disc differential.
func (g GameRecord) Spread() int {
	return g.P1Discs - g.P2Discs
}

// BlackSpread is the disc differential from Black's side.
func (g GameRecord) BlackSpread() int {
	if g.First == Player1 {
		return g.Spread()
	}
	return -g.Spread()
}

func (g GameRecord) MoveString() string {
	ns := make([]string, len(g.Moves))
	for i, m := range g.Moves {
		ns[i] = board.MoveToNotation(m)
	}
	return strings.Join(ns, " ")
}

func (g GameRecord) csvLine() string {
	return fmt.Sprintf("%d,%d,%d,%s,%s\n", g.ID, g.P1Discs, g.P2Discs, g.First, g.MoveString())
}

// GameRunner plays games between two players. The players swap colors from
// one game to the next.
type GameRunner struct {
	players     [2]turnplayer.Player
	randomPlies int
	rng         *frand.RNG
	moveTime    time.Duration
}

func NewGameRunner(p1, p2 turnplayer.Player) *GameRunner {
	return &GameRunner{players: [2]turnplayer.Player{p1, p2}}
}

// SetRandomPlies makes every game open with n random moves drawn from rng.
// A nil rng uses the global generator.
func (r *GameRunner) SetRandomPlies(n int, rng *frand.RNG) {
	r.randomPlies = n
	r.rng = rng
}

func (r *GameRunner) SetMoveTime(d time.Duration) {
	r.moveTime = d
}

func (r *GameRunner) intn(n int) int {
	if r.rng == nil {
		return frand.Intn(n)
	}
	return r.rng.Intn(n)
}

// PlayGame plays game number id to the end. The first player has Black in
// even-numbered games.
func (r *GameRunner) PlayGame(ctx context.Context, id int) (GameRecord, error) {
	black, white := r.players[0], r.players[1]
	rec := GameRecord{ID: id, First: Player1}
	if id%2 == 1 {
		black, white = white, black
		rec.First = Player2
	}
	g := game.NewGame(black, white)
	g.SetMoveTime(r.moveTime)

	for i := 0; i < r.randomPlies && g.Playing() == game.StatePlaying; i++ {
		m := board.Pass
		if sqs := board.Squares(g.Board().Moves()); len(sqs) > 0 {
			m = sqs[r.intn(len(sqs))]
		}
		if err := g.PlayMove(m); err != nil {
			return rec, err
		}
	}

	res, err := g.Play(ctx)
	if err != nil {
		return rec, err
	}
	rec.P1Discs, rec.P2Discs = res.BlackDiscs, res.WhiteDiscs
	if rec.First == Player2 {
		rec.P1Discs, rec.P2Discs = rec.P2Discs, rec.P1Discs
	}
	rec.Moves = g.History()
	log.Debug().Int("game", id).Str("first", rec.First).Int("spread", rec.Spread()).
		Int("plies", len(rec.Moves)).Msg("game-finished")
	return rec, nil
}
