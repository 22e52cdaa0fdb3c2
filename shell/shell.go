package shell

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"syscall"

	"github.com/chzyer/readline"
	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog/log"

	"github.com/domino14/othello/config"
	"github.com/domino14/othello/game"
	"github.com/domino14/othello/turnplayer"
)

const HistoryFile = "/tmp/othello_readline.tmp"

var (
	errNoData            = errors.New("no data in this line")
	errWrongOptionSyntax = errors.New("wrong format; all options need arguments")
	errNoGame            = errors.New("please start a game first with the `new` command")
)

type shellcmd struct {
	cmd     string
	args    []string
	options CmdOptions
}

type ShellController struct {
	l      *readline.Instance
	config *config.Config
	out    io.Writer
	// input is where human players read their moves from.
	input turnplayer.LineReader

	options turnplayer.GameOptions
	game    *game.Game
	// bot answers aiplay, think and hint requests for either side.
	bot           *turnplayer.BotPlayer
	searchLogFile *os.File
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func writeln(msg string, w io.Writer) {
	io.WriteString(w, msg)
	io.WriteString(w, "\n")
}

func (sc *ShellController) showMessage(msg string) {
	writeln(msg, sc.out)
}

func (sc *ShellController) showError(err error) {
	sc.showMessage("Error: " + err.Error())
}

func NewShellController(cfg *config.Config) *ShellController {
	sc := &ShellController{config: cfg, options: turnplayer.DefaultGameOptions()}
	l, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[31mothello>\033[0m ",
		HistoryFile:     HistoryFile,
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",
		AutoComplete:    NewShellCompleter(sc),

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})

	if err != nil {
		panic(err)
	}
	sc.l = l
	sc.out = l.Stderr()
	sc.input = l
	return sc
}

func extractFields(line string) (*shellcmd, error) {
	fields, err := shellquote.Split(line)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, errNoData
	}
	cmd := fields[0]
	var args []string
	options := CmdOptions{}
	for idx := 1; idx < len(fields); idx++ {
		if strings.HasPrefix(fields[idx], "-") {
			// option
			if idx == len(fields)-1 {
				return nil, errWrongOptionSyntax
			}
			options[fields[idx][1:]] = fields[idx+1]
			idx++
			continue
		}
		args = append(args, fields[idx])
	}
	return &shellcmd{cmd: cmd, args: args, options: options}, nil
}

func (sc *ShellController) standardModeSwitch(cmd *shellcmd) (*Response, error) {
	switch cmd.cmd {
	case "help":
		return sc.help(cmd)
	case "new", "n":
		return sc.newGame(cmd)
	case "show", "s":
		return sc.show(cmd)
	case "moves":
		return sc.moves(cmd)
	case "play", "p":
		return sc.play(cmd)
	case "aiplay", "ai":
		return sc.aiplay(cmd)
	case "go":
		return sc.playOut(cmd)
	case "think":
		return sc.think(cmd)
	case "solve":
		return sc.solve(cmd)
	case "eval":
		return sc.eval(cmd)
	case "perft":
		return sc.perft(cmd)
	case "autoplay":
		return sc.autoplay(cmd)
	case "autoanalyze":
		return sc.autoAnalyze(cmd)
	case "set":
		return sc.set(cmd)
	default:
		msg := fmt.Sprintf("command %v not found", strconv.Quote(cmd.cmd))
		log.Info().Msg(msg)
		return nil, errors.New(msg)
	}
}

// Execute runs a single command line. It returns true if the line asked
// the shell to quit, after sending the quit signal.
func (sc *ShellController) Execute(sig chan os.Signal, line string) bool {
	cmd, err := extractFields(line)
	if err == errNoData {
		return false
	} else if err != nil {
		sc.showError(err)
		return false
	}
	if cmd.cmd == "exit" || cmd.cmd == "bye" {
		sig <- syscall.SIGINT
		return true
	}
	resp, err := sc.standardModeSwitch(cmd)
	if err != nil {
		sc.showError(err)
	} else if resp != nil {
		sc.showMessage(resp.message)
	}
	return false
}

func (sc *ShellController) Loop(sig chan os.Signal) {

	defer sc.l.Close()

	for {
		line, err := sc.l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				sig <- syscall.SIGINT
				break
			} else {
				continue
			}
		} else if err == io.EOF {
			sig <- syscall.SIGINT
			break
		}
		line = strings.TrimSpace(line)
		if sc.Execute(sig, line) {
			break
		}
	}
	log.Debug().Msgf("Exiting readline loop...")
}

// Cleanup closes anything the shell opened.
func (sc *ShellController) Cleanup() {
	if sc.searchLogFile != nil {
		if err := sc.searchLogFile.Close(); err != nil {
			log.Err(err).Msg("closing-search-log")
		}
		sc.searchLogFile = nil
	}
	log.Info().Msg("shell cleanup done")
}
