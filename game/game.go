package game

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/domino14/othello/board"
	"github.com/domino14/othello/turnplayer"
)

var (
	ErrIllegalMove = errors.New("illegal move")
	ErrGameOver    = errors.New("game is over")
)

type PlayState int

const (
	StatePlaying PlayState = iota
	StateGameOver
)

// Game runs an Othello game between two players. Black moves first.
type Game struct {
	// board is seen from the side of the player on turn.
	board    board.Board
	players  [2]*playerState
	onturn   board.Color
	lastPass bool
	playing  PlayState
	history  []int
	display  io.Writer
	moveTime time.Duration
}

func NewGame(black, white turnplayer.Player) *Game {
	g := &Game{
		board: board.StartingPosition(),
		players: [2]*playerState{
			newPlayerState(black, board.Black),
			newPlayerState(white, board.White),
		},
		onturn: board.Black,
	}
	g.updateDiscs()
	return g
}

// SetDisplay makes Play print the board before every move and the final
// score to w. A nil writer turns printing off.
func (g *Game) SetDisplay(w io.Writer) {
	g.display = w
}

// SetMoveTime sets the budget handed to players on every move.
func (g *Game) SetMoveTime(d time.Duration) {
	g.moveTime = d
}

func (g *Game) updateDiscs() {
	own, opp := g.board.Count()
	g.players[g.onturn].discs = own
	g.players[g.onturn.Opponent()].discs = opp
}

// PlayMove plays m, which may be board.Pass if the player on turn has no
// legal move, for the player on turn. Two passes in a row, or a full board,
// end the game.
func (g *Game) PlayMove(m int) error {
	if g.playing != StatePlaying {
		return ErrGameOver
	}
	if !g.board.IsLegal(m) {
		return fmt.Errorf("%w: %s for %s", ErrIllegalMove, board.MoveToNotation(m), g.onturn)
	}
	passed := m == board.Pass
	if passed {
		g.players[g.onturn].passes++
	}
	g.board = g.board.DoMove(m)
	g.history = append(g.history, m)
	g.onturn = g.onturn.Opponent()
	g.updateDiscs()

	if (passed && g.lastPass) || g.board.Empties() == 0 {
		g.playing = StateGameOver
		log.Debug().Str("result", g.Result().String()).Int("plies", len(g.history)).Msg("game-over")
	}
	g.lastPass = passed
	return nil
}

// Play asks the players for moves until the game ends. A player is only
// asked when it has a legal move; otherwise the game records a pass for it.
func (g *Game) Play(ctx context.Context) (Result, error) {
	for g.playing == StatePlaying {
		if err := ctx.Err(); err != nil {
			return g.Result(), err
		}
		g.show(g.ToDisplayText())

		m := board.Pass
		if g.board.Moves() != 0 {
			var err error
			m, err = g.players[g.onturn].NextMove(ctx, g.board, g.moveTime)
			if err != nil {
				return g.Result(), fmt.Errorf("%s to move: %w", g.onturn, err)
			}
		}
		mover := g.onturn
		if err := g.PlayMove(m); err != nil {
			return g.Result(), err
		}
		g.show(fmt.Sprintf("\n%s: %s\n", mover, board.MoveToNotation(m)))
	}
	res := g.Result()
	g.show(g.ToDisplayText())
	g.show(res.String() + "\n")
	return res, nil
}

func (g *Game) show(s string) {
	if g.display != nil {
		io.WriteString(g.display, s)
	}
}

// Board returns the position seen from the player on turn.
func (g *Game) Board() board.Board {
	return g.board
}

// Turn returns the color of the player on turn.
func (g *Game) Turn() board.Color {
	return g.onturn
}

func (g *Game) Playing() PlayState {
	return g.playing
}

// History returns the moves played so far, passes included.
func (g *Game) History() []int {
	return g.history
}

// Result counts the discs of both colors. It is only final once the game
// is over.
func (g *Game) Result() Result {
	return Result{
		BlackDiscs: g.players[board.Black].discs,
		WhiteDiscs: g.players[board.White].discs,
	}
}
