package main

import (
	"os"

	"vampires/config"
	"vampires/experiments"
	"vampires/experiments/metrics"
	"vampires/mapfile"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.ParseEnv()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	level, _ := cfg.Level()
	zerolog.SetGlobalLevel(level)
	log.Debug().Msgf("loaded config: %+v", cfg)

	m := mapfile.Default()
	if cfg.Map != "" {
		m, err = mapfile.Load(cfg.Map)
		if err != nil {
			log.Fatal().Err(err).Msgf("failed to load map %s", cfg.Map)
		}
	}
	g, err := m.Grid()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid map")
	}

	settings := experiments.Settings{
		Games:       cfg.Games,
		Concurrency: cfg.Concurrency,
		MaxRounds:   cfg.MaxRounds,
		Grid:        g,
		Seed:        cfg.Seed,
		OutputDir:   cfg.OutputDir,
		Expected:    cfg.ExpectedOutcomes,
	}

	var report experiments.Report
	switch cfg.Experiment {
	case "depth":
		report, err = experiments.RunDepthExperiment(settings, cfg.Depth)
	case "policy":
		report, err = experiments.RunPolicyExperiment(settings, cfg.Depth)
	case "heuristic":
		report, err = experiments.RunHeuristicExperiment(settings, cfg.Depth)
	default:
		report, err = runMatchUp(cfg, settings)
	}
	if err != nil {
		log.Fatal().Err(err).Msgf("%s experiment failed", cfg.Experiment)
	}

	for winner, n := range report.Summary {
		log.Info().Msgf("%v: %d of %d games", winner, n, len(report.Games))
	}
	log.Info().Msgf("records stored in %s", report.Dir)
}

// runMatchUp plays the configured agent against its opponent from both sides
// of the board.
func runMatchUp(cfg config.Config, settings experiments.Settings) (experiments.Report, error) {
	player := metrics.AgentConfig{
		ID:        1,
		Depth:     cfg.Depth,
		Policy:    cfg.Policy,
		Heuristic: cfg.Heuristic,
		Expected:  cfg.ExpectedOutcomes,
	}
	opponent := metrics.AgentConfig{
		ID:       2,
		Depth:    cfg.OpponentDepth,
		Policy:   cfg.OpponentPolicy,
		Expected: cfg.ExpectedOutcomes,
		Random:   cfg.OpponentRandom,
	}
	matchUps := []experiments.MatchUp{
		{Vampires: player, Werewolves: opponent},
		{Vampires: opponent, Werewolves: player},
	}
	return experiments.RunMatchUps("matchup", []metrics.AgentConfig{player, opponent}, matchUps, settings)
}
