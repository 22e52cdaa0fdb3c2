package game

import (
	"fmt"
	"strings"

	"github.com/domino14/othello/board"
)

func addText(lines []string, row int, hpad int, text string) {
	if row >= len(lines) {
		return
	}
	lines[row] = lines[row] + strings.Repeat(" ", hpad) + text
}

// ToDisplayText turns the current state of the game into a displayable
// string: the board, with the players, the legal moves and the last move
// alongside.
func (g *Game) ToDisplayText() string {
	bt := g.board.ToDisplayText(g.onturn)
	bts := strings.Split(strings.TrimSuffix(bt, "\n"), "\n")
	hpadding := 3
	vpadding := 1

	for pi := board.Black; pi <= board.White; pi++ {
		addText(bts, vpadding+int(pi), hpadding,
			g.players[pi].stateString(g.playing == StatePlaying && g.onturn == pi))
	}

	if g.playing == StatePlaying {
		moves := g.board.Moves()
		if moves == 0 {
			addText(bts, vpadding+3, hpadding, "Moves: (pass)")
		} else {
			addText(bts, vpadding+3, hpadding, "Moves: "+board.MovesToNotation(moves))
		}
	}

	addText(bts, vpadding+5, hpadding, fmt.Sprintf("Ply %d", len(g.history)))
	if n := len(g.history); n > 0 {
		addText(bts, vpadding+6, hpadding, fmt.Sprintf("Last: %s %s",
			g.onturn.Opponent(), board.MoveToNotation(g.history[n-1])))
	}
	if g.playing == StateGameOver {
		addText(bts, vpadding+7, hpadding, "Game is over.")
	}
	return strings.Join(bts, "\n") + "\n"
}
