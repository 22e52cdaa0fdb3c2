package shell

import (
	"strings"

	"github.com/kballard/go-shellquote"

	"github.com/domino14/othello/board"
)

// ShellCompleter provides context-aware autocomplete for shell commands
type ShellCompleter struct {
	sc *ShellController
}

func NewShellCompleter(sc *ShellController) *ShellCompleter {
	return &ShellCompleter{sc: sc}
}

// CommandMetadata holds autocomplete information for a command
type CommandMetadata struct {
	Options []string // Available options for this command (e.g., "-depth")
	Args    []string // Possible argument values (for non-option arguments)
}

var commandMetadata = map[string]CommandMetadata{
	"new": {
		Options: []string{"-black", "-white"},
	},
	"think": {
		Options: []string{"-depth"},
	},
	"autoplay": {
		Options: []string{"-games", "-threads", "-file"},
	},
	"help": {
		Args: []string{"new", "think", "autoplay", "set", "perft"},
	},
}

// Common command names for command completion
var commandNames = []string{
	"help", "new", "show", "moves", "play", "aiplay", "go", "think", "solve",
	"eval", "perft", "autoplay", "autoanalyze", "set", "exit",
}

var playerKinds = []string{"bot", "human", "random"}

// legalMoves lists the moves of the current game, for completing `play`.
func (c *ShellCompleter) legalMoves() []string {
	if c.sc.game == nil {
		return nil
	}
	moves := c.sc.game.Board().Moves()
	if moves == 0 {
		return []string{"pass"}
	}
	return strings.Fields(board.MovesToNotation(moves))
}

// Do implements the readline.AutoComplete interface
// It provides context-aware autocomplete based on what's been typed
func (c *ShellCompleter) Do(line []rune, pos int) ([][]rune, int) {
	text := string(line[:pos])

	fields, err := shellquote.Split(text)
	if err != nil {
		// If we can't parse, fall back to simple space splitting
		fields = strings.Fields(text)
	}
	endsWithSpace := len(text) > 0 && text[len(text)-1] == ' '

	var prefix string
	var completions []string

	if len(fields) == 0 || (len(fields) == 1 && !endsWithSpace) {
		// Completing a command name
		if len(fields) == 1 {
			prefix = fields[0]
		}
		completions = commandNames
	} else {
		cmdName := fields[0]
		if !endsWithSpace {
			prefix = fields[len(fields)-1]
		}

		var lastCompleteField string
		if endsWithSpace {
			lastCompleteField = fields[len(fields)-1]
		} else if len(fields) > 1 {
			lastCompleteField = fields[len(fields)-2]
		}

		switch {
		case lastCompleteField == "-black" || lastCompleteField == "-white":
			completions = playerKinds
		case cmdName == "play" || cmdName == "p":
			completions = c.legalMoves()
		case cmdName == "set":
			completions = c.sc.config.AllKeys()
		default:
			if metadata, exists := commandMetadata[cmdName]; exists {
				if strings.HasPrefix(prefix, "-") || len(metadata.Args) == 0 {
					completions = metadata.Options
				} else {
					completions = metadata.Args
				}
			}
		}
	}

	var matches [][]rune
	for _, completion := range completions {
		if strings.HasPrefix(completion, prefix) {
			// Return only the part that needs to be added
			matches = append(matches, []rune(completion[len(prefix):]))
		}
	}
	return matches, len(prefix)
}
