package turnplayer

import (
	"context"
	"time"

	"github.com/domino14/othello/board"
)

// Player chooses moves. NextMove is only called when b, seen from the side
// to move, has at least one legal move; it returns a square from b.Moves().
// budget is advisory; zero means no limit.
type Player interface {
	NextMove(ctx context.Context, b board.Board, budget time.Duration) (int, error)
}
