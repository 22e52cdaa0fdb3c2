package equity

import (
	"math"
)

// winProbScale converts heuristic score units into logistic units. A score
// of one corner's worth is roughly a 75/25 game.
const winProbScale = 850.0

// WinProbability maps a score to an estimated probability that the side to
// move wins. Scores of finished games map to 1, 0 or 0.5 exactly.
func WinProbability(score int) float64 {
	if score >= TerminalScale || score <= -TerminalScale {
		if score > 0 {
			return 1
		}
		return 0
	}
	return 1.0 / (1.0 + math.Exp(-float64(score)/winProbScale))
}
