// perft counts the leaves of the move tree below the starting position.
package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/domino14/othello/board"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: perft DEPTH")
		os.Exit(1)
	}
	depth, err := strconv.Atoi(os.Args[1])
	if err != nil || depth < 0 {
		fmt.Fprintf(os.Stderr, "bad depth %q\n", os.Args[1])
		os.Exit(1)
	}
	start := time.Now()
	nodes := board.Perft(board.StartingPosition(), depth, false)
	elapsed := time.Since(start)
	fmt.Printf("%d\n", nodes)
	fmt.Printf("%s, %.0f nodes/s\n", elapsed, float64(nodes)/max(elapsed.Seconds(), 1e-9))
}
