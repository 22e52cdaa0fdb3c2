package game

import (
	"fmt"

	"github.com/domino14/othello/board"
)

// Result is the disc count of a game.
type Result struct {
	BlackDiscs int
	WhiteDiscs int
}

// Winner returns the winning color. ok is false for a tie.
func (r Result) Winner() (c board.Color, ok bool) {
	switch {
	case r.BlackDiscs > r.WhiteDiscs:
		return board.Black, true
	case r.WhiteDiscs > r.BlackDiscs:
		return board.White, true
	}
	return board.Black, false
}

// Spread is Black's discs minus White's.
func (r Result) Spread() int {
	return r.BlackDiscs - r.WhiteDiscs
}

func (r Result) String() string {
	c, ok := r.Winner()
	if !ok {
		return "Tie"
	}
	if c == board.Black {
		return fmt.Sprintf("Black wins (%d-%d)", r.BlackDiscs, r.WhiteDiscs)
	}
	return fmt.Sprintf("White wins (%d-%d)", r.WhiteDiscs, r.BlackDiscs)
}
