package turnplayer

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/domino14/othello/board"
)

// LineReader yields one line of input at a time. A readline.Instance
// satisfies it.
type LineReader interface {
	Readline() (string, error)
}

type scannerReader struct {
	sc *bufio.Scanner
}

func (r *scannerReader) Readline() (string, error) {
	if r.sc.Scan() {
		return r.sc.Text(), nil
	}
	if err := r.sc.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}

// StreamPlayer reads its moves in coordinate notation ("d3") from a line
// source, and asks again on anything it cannot use.
type StreamPlayer struct {
	in     LineReader
	prompt io.Writer
}

// NewStreamPlayer reads moves from r, one per line. Prompts and complaints
// go to w, which may be nil.
func NewStreamPlayer(r io.Reader, w io.Writer) *StreamPlayer {
	return &StreamPlayer{in: &scannerReader{sc: bufio.NewScanner(r)}, prompt: w}
}

// NewLineReaderPlayer reads moves from an interactive line reader, which
// shows its own prompt.
func NewLineReaderPlayer(lr LineReader, w io.Writer) *StreamPlayer {
	return &StreamPlayer{in: lr, prompt: w}
}

func (p *StreamPlayer) say(format string, a ...any) {
	if p.prompt != nil {
		fmt.Fprintf(p.prompt, format, a...)
	}
}

func (p *StreamPlayer) NextMove(ctx context.Context, b board.Board, budget time.Duration) (int, error) {
	for {
		if err := ctx.Err(); err != nil {
			return board.Pass, err
		}
		p.say("your move (%s): ", board.MovesToNotation(b.Moves()))
		line, err := p.in.Readline()
		if err != nil {
			return board.Pass, fmt.Errorf("reading move: %w", err)
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		m, err := board.ParseMove(line)
		if err != nil {
			p.say("%v\n", err)
			continue
		}
		if m == board.Pass || !b.IsLegal(m) {
			p.say("illegal move: %s\n", line)
			continue
		}
		return m, nil
	}
}
