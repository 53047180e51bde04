package experiments

import (
	"fmt"

	"vampires/engine"
	"vampires/experiments/metrics"
	"vampires/game"
	"vampires/meta"
	"vampires/searcher"
	"vampires/searcher/agent"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Settings are shared by every game of an experiment.
type Settings struct {
	Games       int // per match up
	Concurrency int // games played at once
	MaxRounds   int
	Grid        *game.Grid
	Seed        uint64
	OutputDir   string // records are not stored when empty
	Expected    bool   // resolve authoritative battles by expectation
}

// MatchUp pairs the agent playing vampires with the one playing werewolves.
type MatchUp struct {
	Vampires   metrics.AgentConfig
	Werewolves metrics.AgentConfig
}

// Report is what an experiment produced.
type Report struct {
	Dir     string
	Games   []metrics.GameRecord
	Moves   []metrics.MoveRecord
	Summary map[game.Kind]int
}

// RunDepthExperiment pairs searches of increasing depth against a depth one
// baseline.
func RunDepthExperiment(settings Settings, maxDepth int) (Report, error) {
	baseline := metrics.AgentConfig{ID: 0, Depth: 1}
	configs := []metrics.AgentConfig{baseline}
	var matchUps []MatchUp
	for depth := 2; depth <= maxDepth; depth++ {
		config := metrics.AgentConfig{ID: depth - 1, Depth: depth}
		configs = append(configs, config)
		matchUps = append(matchUps, MatchUp{Vampires: config, Werewolves: baseline})
	}
	return RunMatchUps("depth", configs, matchUps, settings)
}

// RunPolicyExperiment pairs every move policy against the naive one at the
// same depth.
func RunPolicyExperiment(settings Settings, depth int) (Report, error) {
	baseline := metrics.AgentConfig{ID: 0, Depth: depth, Policy: searcher.Naive.String()}
	configs := []metrics.AgentConfig{baseline}
	var matchUps []MatchUp
	for i, policy := range []searcher.Policy{searcher.DiagonalFirst, searcher.ObjectiveFirst} {
		config := metrics.AgentConfig{ID: i + 1, Depth: depth, Policy: policy.String()}
		configs = append(configs, config)
		matchUps = append(matchUps, MatchUp{Vampires: config, Werewolves: baseline})
	}
	return RunMatchUps("policy", configs, matchUps, settings)
}

// RunHeuristicExperiment pairs every heuristic against a random baseline.
func RunHeuristicExperiment(settings Settings, depth int) (Report, error) {
	baseline := metrics.AgentConfig{ID: 0, Random: true}
	configs := []metrics.AgentConfig{baseline}
	var matchUps []MatchUp
	heuristics := []game.Heuristic{game.NumberAndDistance, game.SpeciesRatio, game.ConversionExpectation, game.Layered}
	for i, heuristic := range heuristics {
		config := metrics.AgentConfig{ID: i + 1, Depth: depth, Heuristic: heuristic.String()}
		configs = append(configs, config)
		matchUps = append(matchUps, MatchUp{Vampires: config, Werewolves: baseline})
	}
	return RunMatchUps("heuristic", configs, matchUps, settings)
}

// RunMatchUps plays settings.Games games per match up, alternating the
// starting faction, and stores the records under settings.OutputDir.
func RunMatchUps(name string, configs []metrics.AgentConfig, matchUps []MatchUp, settings Settings) (Report, error) {
	if settings.Grid == nil {
		return Report{}, fmt.Errorf("experiment %s: no map", name)
	}
	if settings.Games <= 0 {
		settings.Games = meta.GAMES
	}
	if settings.Concurrency <= 0 {
		settings.Concurrency = meta.GO_ROUTINES
	}
	if settings.MaxRounds <= 0 {
		settings.MaxRounds = meta.MAX_ROUNDS
	}
	for _, config := range configs {
		if _, err := createAgent(config, 0); err != nil {
			return Report{}, fmt.Errorf("experiment %s: agent %d: %w", name, config.ID, err)
		}
	}

	log.Info().Msgf("starting %s experiment: %d match ups of %d games...", name, len(matchUps), settings.Games)

	total := len(matchUps) * settings.Games
	gameRecords := make([]metrics.GameRecord, total)
	moveRecords := make([][]metrics.MoveRecord, total)
	monitor := engine.NewMonitor()

	var eg errgroup.Group
	eg.SetLimit(settings.Concurrency)
	for mi, matchUp := range matchUps {
		for i := 0; i < settings.Games; i++ {
			index := mi*settings.Games + i
			eg.Go(func() error {
				seed := settings.Seed + uint64(index)
				vampires, err := createAgent(matchUp.Vampires, seed)
				if err != nil {
					return err
				}
				werewolves, err := createAgent(matchUp.Werewolves, seed)
				if err != nil {
					return err
				}

				starting := game.Vampire
				if i%2 == 1 {
					starting = game.Werewolf
				}
				options := []engine.Option{
					engine.WithStartingFaction(starting),
					engine.WithMaxRounds(settings.MaxRounds),
					engine.WithObserver(monitor),
				}
				if settings.Expected {
					options = append(options, engine.WithExpectedOutcomes())
				}
				e := engine.LocalEngine(vampires, werewolves, settings.Grid, game.NewStandardRules(), options...)

				winner, gameMetric, moveMetrics := e.Run()
				gameRecords[index] = metrics.GameRecord{
					Vampires:   matchUp.Vampires.ID,
					Werewolves: matchUp.Werewolves.ID,
					GameMetric: gameMetric,
				}
				moves := make([]metrics.MoveRecord, len(moveMetrics))
				for j, mm := range moveMetrics {
					moves[j] = metrics.MoveRecord{Game: gameMetric.ID, MoveMetric: mm}
				}
				moveRecords[index] = moves

				log.Info().Msgf("completed match up %d of %d game %d of %d with winner: %v",
					mi+1, len(matchUps), i+1, settings.Games, winner)
				return nil
			})
		}
	}
	if err := eg.Wait(); err != nil {
		return Report{}, fmt.Errorf("experiment %s: %w", name, err)
	}
	log.Info().Msgf("completed %s experiment", name)

	report := Report{Games: gameRecords, Summary: monitor.Summary()}
	for _, moves := range moveRecords {
		report.Moves = append(report.Moves, moves...)
	}
	if settings.OutputDir == "" {
		return report, nil
	}

	dir, err := store(name, settings.OutputDir, configs, report)
	if err != nil {
		return Report{}, fmt.Errorf("experiment %s: %w", name, err)
	}
	report.Dir = dir
	return report, nil
}

func store(name, root string, configs []metrics.AgentConfig, report Report) (string, error) {
	writer, err := metrics.NewWriter(root, name)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}
	if err := writer.WriteAgentConfigs(configs); err != nil {
		return "", fmt.Errorf("failed to store agent configs: %w", err)
	}
	log.Info().Msg("stored agent configs")
	if err := writer.WriteGameRecords(report.Games); err != nil {
		return "", fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")
	if err := writer.WriteMoveRecords(report.Moves); err != nil {
		return "", fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msg("stored move records")
	return writer.Dir(), nil
}

// createAgent builds a fresh agent for one game. Empty names select the
// search defaults.
func createAgent(config metrics.AgentConfig, seed uint64) (agent.Agent, error) {
	policy := searcher.Naive
	if config.Policy != "" {
		p, err := searcher.ParsePolicy(config.Policy)
		if err != nil {
			return nil, err
		}
		policy = p
	}
	if config.Random {
		return agent.NewRandomAgent(policy, seed), nil
	}

	options := []searcher.Option{searcher.WithSeed(seed), searcher.WithMetrics()}
	if config.Policy != "" {
		options = append(options, searcher.WithPolicy(policy))
	}
	if config.Heuristic != "" {
		heuristic, err := game.ParseHeuristic(config.Heuristic)
		if err != nil {
			return nil, err
		}
		options = append(options, searcher.WithHeuristic(heuristic.Fn()))
	}
	if config.Depth > 0 {
		options = append(options, searcher.WithDepth(config.Depth))
	}
	if config.Expected {
		options = append(options, searcher.WithExpectedOutcomes())
	}
	return agent.NewEvaluationAgent(searcher.NewAlphaBeta(options...)), nil
}
