package turnplayer

import "fmt"

const (
	// OpeningColumn is always played on the very first turn of the game.
	OpeningColumn = 3
	// StealTrigger is the opening column that the second player answers
	// with StealCommand instead of a search.
	StealTrigger = 4
	StealCommand = "STEAL"
)

// Seats holds the player indexes sent on the startup line. Player 0 moves
// first.
type Seats struct {
	Me       int
	Opponent int
}

func (s Seats) validate() error {
	if (s.Me != 0 && s.Me != 1) || s.Opponent != 1-s.Me {
		return fmt.Errorf("%w: player indexes %d and %d", ErrMalformedInput, s.Me, s.Opponent)
	}
	return nil
}
