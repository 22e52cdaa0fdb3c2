package board

import (
	"strconv"
	"strings"
)

const columnHeader = "  a b c d e f g h\n"

// ToDisplayText renders the board as an 8x8 grid, row 1 at the top. toMove
// is the color of the side to move, which owns b.Own. Black is shown as #,
// White as O and empty squares as _.
func (b Board) ToDisplayText(toMove Color) string {
	black, white := b.Own, b.Opp
	if toMove == White {
		black, white = white, black
	}
	var sb strings.Builder
	sb.WriteString(columnHeader)
	for row := 0; row < 8; row++ {
		sb.WriteString(strconv.Itoa(row + 1))
		sb.WriteString(" ")
		for col := 0; col < 8; col++ {
			bit := uint64(1) << uint(row*8+col)
			switch {
			case white&bit != 0:
				sb.WriteString("O")
			case black&bit != 0:
				sb.WriteString("#")
			default:
				sb.WriteString("_")
			}
			if col < 7 {
				sb.WriteString(" ")
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// MaskToDisplayText renders a bitmask as a grid of X and _. Useful for
// looking at move and stability masks.
func MaskToDisplayText(mask uint64) string {
	var sb strings.Builder
	sb.WriteString(columnHeader)
	for i := 0; i < NumSquares; i++ {
		if i%8 == 0 {
			sb.WriteString(strconv.Itoa(i/8 + 1))
			sb.WriteString(" ")
		}
		if (mask>>uint(i))&1 == 1 {
			sb.WriteString("X")
		} else {
			sb.WriteString("_")
		}
		if i%8 == 7 {
			sb.WriteString("\n")
		} else {
			sb.WriteString(" ")
		}
	}
	return sb.String()
}
