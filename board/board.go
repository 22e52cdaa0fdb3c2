package board

import (
	"math/bits"
)

// Pass is the move played when the side to move has no legal square.
const Pass = -1

// NumSquares is the number of squares on the board.
const NumSquares = 64

const (
	notAFile = uint64(0xfefefefefefefefe)
	notHFile = uint64(0x7f7f7f7f7f7f7f7f)

	rank1   = uint64(0x00000000000000ff)
	rank8   = uint64(0xff00000000000000)
	fileA   = uint64(0x0101010101010101)
	fileH   = uint64(0x8080808080808080)
	corners = uint64(0x8100000000000081)
	edges   = rank1 | rank8 | fileA | fileH
)

// Color is the absolute color of a player.
type Color int

const (
	Black Color = iota
	White
)

func (c Color) Opponent() Color {
	return 1 - c
}

func (c Color) String() string {
	if c == Black {
		return "Black"
	}
	return "White"
}

// Board is an Othello position seen from the side to move. Own holds the
// pieces of the player about to move, Opp those of the other player. Bit
// row*8+col is square (row, col): bit 0 is a1, bit 63 is h8.
//
// A Board is a value; every transition returns a new one.
type Board struct {
	Own uint64
	Opp uint64
}

// StartingPosition returns the standard opening position with Black to move.
func StartingPosition() Board {
	var b Board
	b = b.AddPiece(27, White)
	b = b.AddPiece(28, Black)
	b = b.AddPiece(35, Black)
	b = b.AddPiece(36, White)
	return b
}

// AddPiece places a piece without flipping anything. It is meant for setting
// up positions, which are always built with Black as the side to move:
// Black pieces go to Own and White pieces to Opp.
func (b Board) AddPiece(sq int, c Color) Board {
	if c == Black {
		b.Own |= 1 << uint(sq)
	} else {
		b.Opp |= 1 << uint(sq)
	}
	return b
}

// Pass hands the move to the opponent without touching the occupancy.
func (b Board) Pass() Board {
	return Board{Own: b.Opp, Opp: b.Own}
}

func (b Board) Occupied() uint64 {
	return b.Own | b.Opp
}

func (b Board) Empty() uint64 {
	return ^(b.Own | b.Opp)
}

// Empties is the number of empty squares.
func (b Board) Empties() int {
	return NumSquares - bits.OnesCount64(b.Own|b.Opp)
}

// Count returns the piece counts of the side to move and its opponent.
func (b Board) Count() (own, opp int) {
	return bits.OnesCount64(b.Own), bits.OnesCount64(b.Opp)
}

// IsTerminal reports whether neither side has a legal move.
func (b Board) IsTerminal() bool {
	return b.Moves() == 0 && b.Pass().Moves() == 0
}

// Popcount returns the number of set bits in mask.
func Popcount(mask uint64) int {
	return bits.OnesCount64(mask)
}

// Squares lists the set squares of mask in increasing order.
func Squares(mask uint64) []int {
	sqs := make([]int, 0, bits.OnesCount64(mask))
	for mask != 0 {
		sqs = append(sqs, bits.TrailingZeros64(mask))
		mask &= mask - 1
	}
	return sqs
}

// LowestSquare returns the lowest set square of a non-zero mask.
func LowestSquare(mask uint64) int {
	return bits.TrailingZeros64(mask)
}
