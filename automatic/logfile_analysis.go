package automatic

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/cespare/xxhash"

	"github.com/domino14/othello/board"
	"github.com/domino14/othello/stats"
)

// Summary accumulates game records.
type Summary struct {
	// P1 tallies the games from the first player's side.
	P1 stats.Tally
	// Black tallies the games from the side of whoever had Black.
	Black  stats.Tally
	Spread stats.Statistic

	spreads  []float64
	distinct map[uint64]struct{}
}

func NewSummary() *Summary {
	return &Summary{distinct: make(map[uint64]struct{})}
}

func (s *Summary) Add(rec GameRecord) {
	s.P1.Add(rec.Spread())
	s.Black.Add(rec.BlackSpread())
	s.Spread.Push(float64(rec.Spread()))
	s.spreads = append(s.spreads, float64(rec.Spread()))
	s.distinct[xxhash.Sum64String(rec.MoveString())] = struct{}{}
}

func (s *Summary) Games() int {
	return s.Spread.Iterations()
}

// Distinct is the number of games with different move sequences.
func (s *Summary) Distinct() int {
	return len(s.distinct)
}

// Fprint writes the summary, with a histogram of the first player's
// spreads, to w.
func (s *Summary) Fprint(w io.Writer) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Games played: %d (%d distinct)\n", s.Games(), s.Distinct())
	if s.Games() == 0 {
		_, err := io.WriteString(w, sb.String())
		return err
	}
	fmt.Fprintf(&sb, "%s W-L-T: %s\n", Player1, s.P1)
	fmt.Fprintf(&sb, "Black W-L-T: %s\n", s.Black)
	fmt.Fprintf(&sb, "%s mean spread: %.2f ± %.2f (95%% CI)  Stdev: %.2f\n",
		Player1, s.Spread.Mean(), s.Spread.ConfidenceInterval(95), s.Spread.Stdev())
	if _, err := io.WriteString(w, sb.String()); err != nil {
		return err
	}
	if s.Spread.Min() == s.Spread.Max() {
		return nil
	}
	io.WriteString(w, "Spread histogram:\n")
	return histogram.Fprint(w, histogram.Hist(15, s.spreads), histogram.Linear(40))
}

func (s *Summary) String() string {
	var sb strings.Builder
	s.Fprint(&sb)
	return sb.String()
}

func parseRecord(record []string) (GameRecord, error) {
	if len(record) != 5 {
		return GameRecord{}, fmt.Errorf("expected 5 fields, got %d", len(record))
	}
	var rec GameRecord
	var err error
	if rec.ID, err = strconv.Atoi(record[0]); err != nil {
		return rec, err
	}
	if rec.P1Discs, err = strconv.Atoi(record[1]); err != nil {
		return rec, err
	}
	if rec.P2Discs, err = strconv.Atoi(record[2]); err != nil {
		return rec, err
	}
	rec.First = record[3]
	for _, n := range strings.Fields(record[4]) {
		m, err := board.ParseMove(n)
		if err != nil {
			return rec, err
		}
		rec.Moves = append(rec.Moves, m)
	}
	return rec, nil
}

// ReadLog builds a summary from the CSV written by CompVsComp.
func ReadLog(rd io.Reader) (*Summary, error) {
	r := csv.NewReader(rd)
	sum := NewSummary()
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if record[0] == "gameID" {
			// this is the header line
			continue
		}
		rec, err := parseRecord(record)
		if err != nil {
			return nil, fmt.Errorf("line %v: %w", record, err)
		}
		sum.Add(rec)
	}
	return sum, nil
}

// AnalyzeLogFile summarizes the games in the given CSV file.
func AnalyzeLogFile(filepath string) (*Summary, error) {
	file, err := os.Open(filepath)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return ReadLog(file)
}
