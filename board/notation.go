package board

import (
	"errors"
	"fmt"
	"strings"
)

var ErrBadNotation = errors.New("could not parse move")

// MoveToNotation turns a square index into its coordinate, e.g. 19 -> "d3".
func MoveToNotation(sq int) string {
	if sq == Pass {
		return "pass"
	}
	if sq < 0 || sq >= NumSquares {
		return "??"
	}
	return string(rune('a'+sq%8)) + string(rune('1'+sq/8))
}

// ParseMove parses a coordinate such as "d3" or "D3", or "pass".
func ParseMove(s string) (int, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "pass", "ps", "--":
		return Pass, nil
	}
	if len(s) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrBadNotation, s)
	}
	col := int(s[0]) - 'a'
	row := int(s[1]) - '1'
	if col < 0 || col > 7 || row < 0 || row > 7 {
		return 0, fmt.Errorf("%w: %q", ErrBadNotation, s)
	}
	return row*8 + col, nil
}

// MovesToNotation renders a move mask as a space-separated list.
func MovesToNotation(mask uint64) string {
	sqs := Squares(mask)
	strs := make([]string, len(sqs))
	for i, sq := range sqs {
		strs[i] = MoveToNotation(sq)
	}
	return strings.Join(strs, " ")
}
