package turnplayer

import (
	"strconv"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/Greg1415/Connect4-bot/board"
)

// Action is what gets written back to the host for one turn.
type Action struct {
	Steal  bool
	Column int
}

func (a Action) String() string {
	if a.Steal {
		return StealCommand
	}
	return strconv.Itoa(a.Column)
}

// TurnPlayer turns decoded host input into actions.
type TurnPlayer struct {
	seats   Seats
	chooser MoveChooser
}

func NewTurnPlayer(seats Seats, chooser MoveChooser) *TurnPlayer {
	return &TurnPlayer{seats: seats, chooser: chooser}
}

// Decide answers one turn. The first move of the game is fixed, a first
// move in the centre column is stolen, and everything else is searched.
func (p *TurnPlayer) Decide(t *Turn) (Action, error) {
	if t.Index == 0 {
		log.Debug().Msg("playing-opening-move")
		return Action{Column: OpeningColumn}, nil
	}
	if t.Index == 1 && t.OppPrevious == StealTrigger {
		log.Debug().Msg("stealing-opening-move")
		return Action{Steal: true}, nil
	}

	b, err := board.FromRows(t.Rows, board.MarkerFor(p.seats.Me))
	if err != nil {
		return Action{}, err
	}
	col, score, err := p.chooser.BestMove(b)
	if err != nil {
		return Action{}, err
	}
	if len(t.Playable) > 0 && !lo.Contains(t.Playable, col) {
		log.Warn().Int("column", col).Ints("playable", t.Playable).
			Msg("chosen-column-not-in-host-list")
	}
	log.Info().Int("turn", t.Index).Int("column", col).Int8("score", score).
		Int("plies", b.MovesPlayed()).Msg("move-chosen")
	return Action{Column: col}, nil
}
