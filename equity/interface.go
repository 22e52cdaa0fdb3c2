package equity

import (
	"github.com/domino14/othello/board"
)

// Evaluator scores a position from the point of view of the side to move.
// Larger is better for the mover.
type Evaluator interface {
	Score(b board.Board) int
}

// TerminalScale multiplies the final disc differential of a finished game.
// It is larger than any heuristic score SimpleEval can produce with sane
// weights, so a won game always outranks an unfinished one.
const TerminalScale = 1 << 16

// Terminal scores a finished game for the side to move.
func Terminal(b board.Board) int {
	own, opp := b.Count()
	return (own - opp) * TerminalScale
}

// PieceCountEval scores a position by its disc differential alone.
type PieceCountEval struct{}

func (PieceCountEval) Score(b board.Board) int {
	own, opp := b.Count()
	return own - opp
}
