package shell

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"syscall"

	"github.com/chzyer/readline"
	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog/log"

	"github.com/Greg1415/Connect4-bot/board"
	"github.com/Greg1415/Connect4-bot/config"
	"github.com/Greg1415/Connect4-bot/negamax"
)

var (
	errNoData            = errors.New("no data in line")
	errWrongOptionSyntax = errors.New("wrong format; all options need arguments")
	errQuit              = errors.New("quit")
	errGameOver          = errors.New("the game is over; use undo or new")
)

type shellcmd struct {
	cmd     string
	args    []string
	options map[string]string
}

// extractFields splits a command line into the command, its positional
// arguments, and any -option value pairs. Quoting follows shell rules.
func extractFields(line string) (*shellcmd, error) {
	fields, err := shellquote.Split(line)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, errNoData
	}
	cmd := &shellcmd{cmd: fields[0], options: map[string]string{}}
	for i := 1; i < len(fields); i++ {
		if strings.HasPrefix(fields[i], "-") && len(fields[i]) > 1 && !isNumber(fields[i]) {
			if i+1 >= len(fields) {
				return nil, errWrongOptionSyntax
			}
			cmd.options[fields[i][1:]] = fields[i+1]
			i++
			continue
		}
		cmd.args = append(cmd.args, fields[i])
	}
	return cmd, nil
}

func isNumber(s string) bool {
	for _, r := range strings.TrimPrefix(s, "-") {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// ShellController holds the state of an interactive analysis session.
type ShellController struct {
	l   *readline.Instance
	cfg *config.Config

	solver *negamax.Solver
	// history[len(history)-1] is the current position.
	history  []board.Board
	played   []int
	gameOver bool
}

func NewShellController(cfg *config.Config) (*ShellController, error) {
	solver, err := negamax.NewSolverFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	return &ShellController{
		cfg:     cfg,
		solver:  solver,
		history: []board.Board{board.New()},
	}, nil
}

func (sc *ShellController) current() board.Board {
	return sc.history[len(sc.history)-1]
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func showMessage(msg string, w io.Writer) {
	io.WriteString(w, msg)
	io.WriteString(w, "\n")
}

// Execute runs a single command line and returns its output.
func (sc *ShellController) Execute(line string) (string, error) {
	cmd, err := extractFields(line)
	if err != nil {
		return "", err
	}
	handler, ok := commands[cmd.cmd]
	if !ok {
		return "", fmt.Errorf("unrecognized command %q; try help", cmd.cmd)
	}
	return handler(sc, cmd)
}

// Loop reads commands until the user quits, then signals sig.
func (sc *ShellController) Loop(sig chan os.Signal) {
	l, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[31mconnect4>\033[0m ",
		HistoryFile:     "/tmp/connect4_readline.tmp",
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",
		AutoComplete:    completer(),

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		log.Error().Err(err).Msg("readline-init")
		sig <- syscall.SIGINT
		return
	}
	sc.l = l
	defer sc.l.Close()

	showMessage(sc.current().String(), sc.l.Stdout())
	for {
		line, err := sc.l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				break
			}
			continue
		} else if err == io.EOF {
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		out, err := sc.Execute(line)
		if errors.Is(err, errQuit) {
			break
		}
		if err != nil {
			showMessage("Error: "+err.Error(), sc.l.Stderr())
			continue
		}
		if out != "" {
			showMessage(out, sc.l.Stdout())
		}
	}
	log.Debug().Msg("exiting readline loop")
	sig <- syscall.SIGINT
}
