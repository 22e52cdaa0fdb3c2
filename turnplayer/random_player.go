package turnplayer

import (
	"context"
	"time"

	"lukechampine.com/frand"

	"github.com/domino14/othello/board"
)

// RandomPlayer plays a uniformly random legal move.
type RandomPlayer struct {
	rng *frand.RNG
}

// NewRandomPlayer uses rng, or the global generator if rng is nil.
func NewRandomPlayer(rng *frand.RNG) *RandomPlayer {
	return &RandomPlayer{rng: rng}
}

func (p *RandomPlayer) NextMove(ctx context.Context, b board.Board, budget time.Duration) (int, error) {
	sqs := board.Squares(b.Moves())
	if len(sqs) == 0 {
		return board.Pass, nil
	}
	if p.rng == nil {
		return sqs[frand.Intn(len(sqs))], nil
	}
	return sqs[p.rng.Intn(len(sqs))], nil
}
