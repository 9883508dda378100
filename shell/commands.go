package shell

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/chzyer/readline"
	"github.com/samber/lo"

	"github.com/Greg1415/Connect4-bot/board"
	"github.com/Greg1415/Connect4-bot/negamax"
)

type handlerFunc func(sc *ShellController, cmd *shellcmd) (string, error)

var commands = map[string]handlerFunc{
	"new":     (*ShellController).newGame,
	"play":    (*ShellController).play,
	"undo":    (*ShellController).undo,
	"show":    (*ShellController).show,
	"load":    (*ShellController).load,
	"eval":    (*ShellController).eval,
	"best":    (*ShellController).best,
	"set":     (*ShellController).set,
	"ttstats": (*ShellController).ttstats,
	"help":    (*ShellController).help,
	"exit":    (*ShellController).quit,
	"quit":    (*ShellController).quit,
}

func completer() *readline.PrefixCompleter {
	return readline.NewPrefixCompleter(
		readline.PcItem("new"),
		readline.PcItem("play"),
		readline.PcItem("undo"),
		readline.PcItem("show"),
		readline.PcItem("load"),
		readline.PcItem("eval"),
		readline.PcItem("best"),
		readline.PcItem("set",
			readline.PcItem("horizon"),
			readline.PcItem("order"),
		),
		readline.PcItem("ttstats"),
		readline.PcItem("help"),
		readline.PcItem("exit"),
	)
}

const usage = `commands:
new                         - start from the empty board
play <col> [<col>...]       - drop pieces, alternating sides
undo                        - take back the last move
show                        - print the board (X is the side to move)
load "<row>/.../<row>" [0|1] - load a snapshot, top row first, using the
                              host characters . 0 1; the second argument
                              names the side to move (default by parity)
eval                        - negamax score of the position
best                        - best column and its score
set horizon <n>             - change the search depth
set order <c,c,...>         - change the column visiting order
ttstats                     - transposition table counters
exit                        - leave the shell`

func (sc *ShellController) newGame(cmd *shellcmd) (string, error) {
	sc.history = []board.Board{board.New()}
	sc.played = nil
	sc.gameOver = false
	return sc.current().String(), nil
}

func (sc *ShellController) play(cmd *shellcmd) (string, error) {
	if len(cmd.args) == 0 {
		return "", errors.New("play needs at least one column")
	}
	var msgs []string
	for _, arg := range cmd.args {
		if sc.gameOver {
			return "", errGameOver
		}
		col, err := strconv.Atoi(arg)
		if err != nil {
			return "", fmt.Errorf("bad column %q", arg)
		}
		b := sc.current()
		if !b.IsLegalMove(col) {
			return "", fmt.Errorf("column %d is not playable", col)
		}
		if b.MoveCausesWin(col) {
			sc.gameOver = true
			msgs = append(msgs, fmt.Sprintf("column %d wins the game", col))
		}
		sc.history = append(sc.history, b.MakeMove(col))
		sc.played = append(sc.played, col)
		if sc.current().IsFull() && !sc.gameOver {
			sc.gameOver = true
			msgs = append(msgs, "the board is full")
		}
	}
	return sc.current().String() + strings.Join(msgs, "\n"), nil
}

func (sc *ShellController) undo(cmd *shellcmd) (string, error) {
	if len(sc.history) == 1 {
		return "", errors.New("nothing to undo")
	}
	sc.history = sc.history[:len(sc.history)-1]
	sc.played = sc.played[:len(sc.played)-1]
	sc.gameOver = false
	return sc.current().String(), nil
}

func (sc *ShellController) show(cmd *shellcmd) (string, error) {
	moves := lo.Map(sc.played, func(c int, _ int) string { return strconv.Itoa(c) })
	return sc.current().String() + "moves: " + strings.Join(moves, " "), nil
}

func (sc *ShellController) load(cmd *shellcmd) (string, error) {
	if len(cmd.args) < 1 || len(cmd.args) > 2 {
		return "", errors.New(`usage: load "<row>/.../<row>" [0|1]`)
	}
	rows := strings.Split(cmd.args[0], "/")
	pieces := 0
	for _, r := range rows {
		pieces += strings.Count(r, string(board.Player0Marker)) + strings.Count(r, string(board.Player1Marker))
	}
	mover := board.MarkerFor(pieces % 2)
	if len(cmd.args) == 2 {
		p, err := strconv.Atoi(cmd.args[1])
		if err != nil || (p != 0 && p != 1) {
			return "", fmt.Errorf("side to move must be 0 or 1, not %q", cmd.args[1])
		}
		mover = board.MarkerFor(p)
	}
	b, err := board.FromRows(rows, mover)
	if err != nil {
		return "", err
	}
	sc.history = []board.Board{b}
	sc.played = nil
	sc.gameOver = false
	return b.String(), nil
}

func (sc *ShellController) eval(cmd *shellcmd) (string, error) {
	tstart := time.Now()
	sc.solver.ResetStats()
	score := sc.solver.Negamax(sc.current(), negamax.MinScore, negamax.MaxScore, 0)
	return fmt.Sprintf("score %d (%d nodes, %.3fs)", score, sc.solver.Nodes(),
		time.Since(tstart).Seconds()), nil
}

func (sc *ShellController) best(cmd *shellcmd) (string, error) {
	tstart := time.Now()
	col, score, err := sc.solver.BestMove(sc.current())
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("best column %d, score %d (%d nodes, %.3fs)", col, score,
		sc.solver.Nodes(), time.Since(tstart).Seconds()), nil
}

func (sc *ShellController) set(cmd *shellcmd) (string, error) {
	if len(cmd.args) != 2 {
		return "", errors.New("usage: set horizon <n> | set order <c,c,...>")
	}
	switch cmd.args[0] {
	case "horizon":
		h, err := strconv.Atoi(cmd.args[1])
		if err != nil {
			return "", err
		}
		if err := sc.solver.SetHorizon(h); err != nil {
			return "", err
		}
	case "order":
		var order []int
		for _, f := range strings.Split(cmd.args[1], ",") {
			c, err := strconv.Atoi(strings.TrimSpace(f))
			if err != nil {
				return "", err
			}
			order = append(order, c)
		}
		if err := sc.solver.SetColumnOrder(order); err != nil {
			return "", err
		}
	default:
		return "", fmt.Errorf("unknown setting %q", cmd.args[0])
	}
	p := sc.solver.Params()
	return fmt.Sprintf("horizon %d, order %v", p.Horizon, p.ColumnOrder), nil
}

func (sc *ShellController) ttstats(cmd *shellcmd) (string, error) {
	tt := sc.solver.TranspositionTable()
	st := tt.Stats()
	return fmt.Sprintf("capacity %d, lookups %d, hits %d, stores %d, collisions %d",
		tt.Capacity(), st.Lookups, st.Hits, st.Stores, st.Collisions), nil
}

func (sc *ShellController) help(cmd *shellcmd) (string, error) {
	return usage, nil
}

func (sc *ShellController) quit(cmd *shellcmd) (string, error) {
	return "", errQuit
}
