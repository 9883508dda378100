package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Greg1415/Connect4-bot/config"
	"github.com/Greg1415/Connect4-bot/turnplayer"
)

var (
	GitVersion string
)

func main() {
	cfg := &config.Config{}
	args := os.Args[1:]
	err := cfg.Load(args)
	if err != nil {
		panic(err)
	}

	// stdout belongs to the host protocol; every log line goes to stderr.
	var logger zerolog.Logger
	switch cfg.GetString(config.ConfigLogLevel) {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		logger = zerolog.New(os.Stderr).Level(zerolog.DebugLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
		logger = zerolog.New(os.Stderr).Level(zerolog.WarnLevel)
	case "disabled":
		zerolog.SetGlobalLevel(zerolog.Disabled)
		logger = zerolog.New(os.Stderr).Level(zerolog.Disabled)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		logger = zerolog.New(os.Stderr).Level(zerolog.InfoLevel)
	}
	log.Logger = logger
	zerolog.DefaultContextLogger = &logger
	logger.Debug().Msg("Debug logging is on")
	logger.Info().Str("version", GitVersion).Interface("config", cfg.AllSettings()).Msg("loaded-config")

	if err := turnplayer.Loop(cfg, os.Stdin, os.Stdout); err != nil {
		log.Fatal().Err(err).Msg("protocol-error")
	}
	logger.Info().Msg("bye")
}
