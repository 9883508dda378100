package turnplayer

import (
	"github.com/Greg1415/Connect4-bot/board"
)

// MoveChooser picks a column for the side to move. *negamax.Solver is the
// production implementation.
type MoveChooser interface {
	BestMove(b board.Board) (int, int8, error)
}
