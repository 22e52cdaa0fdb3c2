package game

import (
	"fmt"

	"github.com/domino14/othello/board"
	"github.com/domino14/othello/turnplayer"
)

type playerState struct {
	turnplayer.Player

	color  board.Color
	discs  int
	passes int
}

func newPlayerState(p turnplayer.Player, c board.Color) *playerState {
	return &playerState{Player: p, color: c}
}

func (p *playerState) symbol() string {
	if p.color == board.Black {
		return "#"
	}
	return "O"
}

func (p *playerState) stateString(myturn bool) string {
	onturn := ""
	if myturn {
		onturn = "-> "
	}
	return fmt.Sprintf("%4s%-6s (%s) %2d discs", onturn, p.color, p.symbol(), p.discs)
}
