package negamax

import (
	"github.com/rs/zerolog/log"

	"github.com/Greg1415/Connect4-bot/config"
)

// ParamsFromConfig reads the search parameters out of cfg.
func ParamsFromConfig(cfg *config.Config) (Params, error) {
	order, err := cfg.GetIntList(config.ConfigColumnOrder)
	if err != nil {
		return Params{}, err
	}
	p := Params{
		Horizon:     cfg.GetInt(config.ConfigSearchHorizon),
		ColumnOrder: order,
	}
	return p, p.validate()
}

// TableFromConfig allocates the transposition table described by cfg.
func TableFromConfig(cfg *config.Config) (*TranspositionTable, error) {
	capacity := cfg.GetInt(config.ConfigTTCapacity)
	if frac := cfg.GetFloat64(config.ConfigTTMemoryFraction); frac > 0 {
		capacity = CapacityForMemory(frac)
		log.Info().Float64("fraction", frac).Int("capacity", capacity).Msg("sized-table-from-memory")
	}
	return NewTranspositionTable(capacity, SlotHash(cfg.GetString(config.ConfigTTSlotHash)))
}

// NewSolverFromConfig builds a solver and its table from cfg.
func NewSolverFromConfig(cfg *config.Config) (*Solver, error) {
	params, err := ParamsFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	tt, err := TableFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	return NewSolver(params, tt)
}
