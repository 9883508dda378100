package negamax

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Greg1415/Connect4-bot/board"
)

// Scores are from the point of view of the side to move. A win found with
// p pieces on the board is worth MaxScore-p, so quicker wins are worth
// more; anything past the horizon counts as a draw.
const (
	MaxScore int8 = 127
	MinScore int8 = -MaxScore
)

const DefaultHorizon = 9

// DefaultColumnOrder visits the centre first and works outward.
var DefaultColumnOrder = []int{4, 3, 5, 2, 6, 1, 7, 0, 8}

var (
	ErrInvalidParams = errors.New("invalid solver parameters")
	ErrNoLegalMoves  = errors.New("no legal moves")
)

// Params are the tuning knobs of a Solver.
type Params struct {
	// Horizon is the deepest depth that is still searched. Nodes below it
	// score 0.
	Horizon int
	// ColumnOrder is the order moves are tried in. It must hold every
	// column exactly once.
	ColumnOrder []int
}

func DefaultParams() Params {
	return Params{
		Horizon:     DefaultHorizon,
		ColumnOrder: slices.Clone(DefaultColumnOrder),
	}
}

func (p Params) validate() error {
	if p.Horizon < 0 {
		return fmt.Errorf("%w: horizon %d", ErrInvalidParams, p.Horizon)
	}
	if len(p.ColumnOrder) != board.NumCols {
		return fmt.Errorf("%w: column order %v must list %d columns",
			ErrInvalidParams, p.ColumnOrder, board.NumCols)
	}
	var seen [board.NumCols]bool
	for _, c := range p.ColumnOrder {
		if c < 0 || c >= board.NumCols || seen[c] {
			return fmt.Errorf("%w: column order %v is not a permutation",
				ErrInvalidParams, p.ColumnOrder)
		}
		seen[c] = true
	}
	return nil
}

// Solver runs a depth-bounded negamax with alpha-beta pruning. It owns its
// transposition table, which persists between searches; a Solver must not
// be used from more than one goroutine at a time.
type Solver struct {
	params Params
	ttable *TranspositionTable
	nodes  uint64
}

// NewSolver checks params and returns a solver that caches into ttable.
func NewSolver(params Params, ttable *TranspositionTable) (*Solver, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}
	if ttable == nil {
		return nil, fmt.Errorf("%w: nil transposition table", ErrInvalidParams)
	}
	params.ColumnOrder = slices.Clone(params.ColumnOrder)
	return &Solver{params: params, ttable: ttable}, nil
}

func (s *Solver) Params() Params {
	return Params{Horizon: s.params.Horizon, ColumnOrder: slices.Clone(s.params.ColumnOrder)}
}

// SetHorizon changes the search depth of later searches.
func (s *Solver) SetHorizon(h int) error {
	p := s.params
	p.Horizon = h
	if err := p.validate(); err != nil {
		return err
	}
	s.params.Horizon = h
	return nil
}

// SetColumnOrder changes the move ordering of later searches.
func (s *Solver) SetColumnOrder(order []int) error {
	p := Params{Horizon: s.params.Horizon, ColumnOrder: order}
	if err := p.validate(); err != nil {
		return err
	}
	s.params.ColumnOrder = slices.Clone(order)
	return nil
}

func (s *Solver) TranspositionTable() *TranspositionTable {
	return s.ttable
}

// Nodes is the number of positions visited since the last ResetStats.
func (s *Solver) Nodes() uint64 {
	return s.nodes
}

func (s *Solver) ResetStats() {
	s.nodes = 0
}

// Negamax scores b for the side to move, searching within the window
// (alpha, beta). depth counts plies below the root search.
//
// Values stored in the table are upper bounds: after a full move loop alpha
// is either exact or every child failed low.
func (s *Solver) Negamax(b board.Board, alpha, beta int8, depth int) int8 {
	s.nodes++
	if depth > s.params.Horizon {
		return 0
	}

	for col := 0; col < board.NumCols; col++ {
		if b.IsLegalMove(col) && b.MoveCausesWin(col) {
			return MaxScore - int8(b.MovesPlayed())
		}
	}

	key := b.Key()
	if bound, ok := s.ttable.Get(key); ok && bound < beta {
		beta = bound
		if alpha >= beta {
			return beta
		}
	}

	for _, col := range s.params.ColumnOrder {
		if !b.IsLegalMove(col) {
			continue
		}
		score := -s.Negamax(b.MakeMove(col), -beta, -alpha, depth+1)
		if score >= beta {
			return score
		}
		if score > alpha {
			alpha = score
		}
	}
	s.ttable.Put(key, alpha)
	return alpha
}

// BestMove picks a column for the side to move. Each legal column is tried
// in the configured order and the first one with the strictly highest score
// wins, so ties go to the more central column.
func (s *Solver) BestMove(b board.Board) (int, int8, error) {
	legal := b.LegalColumns(s.params.ColumnOrder)
	if len(legal) == 0 {
		return 0, 0, ErrNoLegalMoves
	}
	tstart := time.Now()
	s.ResetStats()
	before := s.ttable.Stats()

	bestCol := legal[0]
	bestScore := MinScore
	first := true
	for _, col := range legal {
		var score int8
		if b.MoveCausesWin(col) {
			score = MaxScore - int8(b.MovesPlayed())
		} else {
			score = -s.Negamax(b.MakeMove(col), MinScore, -bestScore, 0)
		}
		log.Debug().Int("column", col).Int8("score", score).Msg("root-move-scored")
		if first || score > bestScore {
			bestCol, bestScore = col, score
			first = false
		}
	}

	after := s.ttable.Stats()
	log.Debug().
		Int("column", bestCol).
		Int8("score", bestScore).
		Uint64("nodes", s.nodes).
		Uint64("ttable-lookups", after.Lookups-before.Lookups).
		Uint64("ttable-hits", after.Hits-before.Hits).
		Uint64("ttable-collisions", after.Collisions-before.Collisions).
		Float64("time-elapsed-sec", time.Since(tstart).Seconds()).
		Msg("best-move-found")
	return bestCol, bestScore, nil
}
