package turnplayer

import (
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog/log"

	"github.com/Greg1415/Connect4-bot/config"
	"github.com/Greg1415/Connect4-bot/negamax"
)

// Play answers turns read from dec until the input ends. Every action is
// written to out on its own line.
func Play(dec *Decoder, chooser MoveChooser, out io.Writer) error {
	seats, err := dec.ReadSeats()
	if err != nil {
		return err
	}
	log.Info().Int("me", seats.Me).Int("opponent", seats.Opponent).Msg("game-started")
	p := NewTurnPlayer(seats, chooser)
	for {
		t, err := dec.ReadTurn()
		if errors.Is(err, io.EOF) {
			log.Info().Msg("input-closed")
			return nil
		}
		if err != nil {
			return err
		}
		action, err := p.Decide(t)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(out, action); err != nil {
			return err
		}
	}
}

// Loop runs a whole game with a solver built from cfg. One solver, and
// therefore one transposition table, is kept for every turn.
func Loop(cfg *config.Config, in io.Reader, out io.Writer) error {
	solver, err := negamax.NewSolverFromConfig(cfg)
	if err != nil {
		return err
	}
	return Play(NewDecoder(in), solver, out)
}
