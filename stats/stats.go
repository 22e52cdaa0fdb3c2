package stats

import (
	"fmt"
	"math"
)

// Statistic keeps a running mean and variance of the values pushed to it,
// e.g. the disc spreads of a series of games.
type Statistic struct {
	n    int
	last float64
	min  float64
	max  float64

	// For Welford's algorithm:
	oldM float64
	newM float64
	oldS float64
	newS float64
}

func (s *Statistic) Push(val float64) {
	s.last = val
	s.n++
	if s.n == 1 {
		s.oldM = val
		s.newM = val
		s.oldS = 0
		s.min = val
		s.max = val
		return
	}
	s.newM = s.oldM + (val-s.oldM)/float64(s.n)
	s.newS = s.oldS + (val-s.oldM)*(val-s.newM)
	s.oldM = s.newM
	s.oldS = s.newS
	s.min = math.Min(s.min, val)
	s.max = math.Max(s.max, val)
}

func (s *Statistic) Mean() float64 {
	if s.n > 0 {
		return s.newM
	}
	return 0.0
}

func (s *Statistic) variance() float64 {
	if s.n <= 1 {
		return 0.0
	}
	return s.newS / float64(s.n-1)
}

func (s *Statistic) Stdev() float64 {
	return math.Sqrt(s.variance())
}

func (s *Statistic) Last() float64 {
	return s.last
}

func (s *Statistic) Min() float64 {
	return s.min
}

func (s *Statistic) Max() float64 {
	return s.max
}

// StandardError returns the standard error of the mean.
func (s *Statistic) StandardError() float64 {
	if s.n == 0 {
		return 0.0
	}
	return math.Sqrt(s.variance() / float64(s.n))
}

// ConfidenceInterval returns the half-width of the two-sided interval
// around the mean at the given confidence, in percent.
func (s *Statistic) ConfidenceInterval(pct float64) float64 {
	return ZVal(pct) * s.StandardError()
}

func (s *Statistic) Iterations() int {
	return s.n
}

// Tally counts wins, losses and ties from one side's point of view.
type Tally struct {
	Wins   int
	Losses int
	Ties   int
}

// Add records a game by its spread for the tallied side.
func (t *Tally) Add(spread int) {
	switch {
	case spread > 0:
		t.Wins++
	case spread < 0:
		t.Losses++
	default:
		t.Ties++
	}
}

func (t Tally) Games() int {
	return t.Wins + t.Losses + t.Ties
}

// WinRate counts a tie as half a win.
func (t Tally) WinRate() float64 {
	if t.Games() == 0 {
		return 0
	}
	return (float64(t.Wins) + float64(t.Ties)/2) / float64(t.Games())
}

func (t Tally) String() string {
	return fmt.Sprintf("%d-%d-%d (%.1f%%)", t.Wins, t.Losses, t.Ties, 100*t.WinRate())
}
