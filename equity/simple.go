package equity

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/domino14/othello/board"
)

const (
	FeatMobility = iota
	FeatFrontier
	FeatStability
	FeatDiscs
	FeatCorners
	FeatXSquares
	NumFeatures
)

var FeatureNames = [NumFeatures]string{
	"mobility", "frontier", "stability", "discs", "corners", "x-squares",
}

var ErrWrongNumberOfWeights = errors.New("wrong number of weights")

// Features returns the raw feature values of b, each as side-to-move minus
// opponent.
func Features(b board.Board) [NumFeatures]int {
	var f [NumFeatures]int
	p := b.Pass()
	f[FeatMobility] = board.Popcount(b.Moves()) - board.Popcount(p.Moves())
	f[FeatFrontier] = b.Frontier() - p.Frontier()
	f[FeatStability] = b.Stable()
	own, opp := b.Count()
	f[FeatDiscs] = own - opp
	co, cp := b.Corners()
	f[FeatCorners] = co - cp
	xo, xp := b.XSquares()
	f[FeatXSquares] = xo - xp
	return f
}

// SimpleEval is a linear combination of the positional features.
type SimpleEval struct {
	weights [NumFeatures]int
}

func NewSimpleEval(weights []int) (*SimpleEval, error) {
	if len(weights) != NumFeatures {
		return nil, fmt.Errorf("%w: have %d, need %d", ErrWrongNumberOfWeights,
			len(weights), NumFeatures)
	}
	e := &SimpleEval{}
	copy(e.weights[:], weights)
	return e, nil
}

// NewSimpleEvalFromString parses a comma-separated weight list, e.g.
// "207,-41,327,28,917,-52".
func NewSimpleEvalFromString(s string) (*SimpleEval, error) {
	w, err := ParseWeights(s)
	if err != nil {
		return nil, err
	}
	return NewSimpleEval(w)
}

func ParseWeights(s string) ([]int, error) {
	fields := strings.Split(s, ",")
	weights := make([]int, 0, len(fields))
	for _, f := range fields {
		w, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return nil, fmt.Errorf("bad weight %q: %w", f, err)
		}
		weights = append(weights, w)
	}
	return weights, nil
}

func (e *SimpleEval) Weights() []int {
	return e.weights[:]
}

func (e *SimpleEval) Score(b board.Board) int {
	f := Features(b)
	score := 0
	for i := 0; i < NumFeatures; i++ {
		score += e.weights[i] * f[i]
	}
	return score
}

// Term is one feature's contribution to a score.
type Term struct {
	Name   string
	Value  int
	Weight int
}

func (t Term) Contribution() int {
	return t.Value * t.Weight
}

// Explain breaks the score of b into its terms.
func (e *SimpleEval) Explain(b board.Board) []Term {
	f := Features(b)
	return lo.Map(FeatureNames[:], func(name string, i int) Term {
		return Term{Name: name, Value: f[i], Weight: e.weights[i]}
	})
}

// Total sums the contributions of terms.
func Total(terms []Term) int {
	return lo.SumBy(terms, func(t Term) int { return t.Contribution() })
}
