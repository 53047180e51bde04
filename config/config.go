package config

import (
	"fmt"
	"strings"

	"vampires/game"
	"vampires/searcher"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
)

// Config drives one run of the experiment binary.
type Config struct {
	Experiment       string `env:"VVW_EXPERIMENT" envDefault:"matchup"`
	Depth            int    `env:"VVW_DEPTH" envDefault:"3"`
	OpponentDepth    int    `env:"VVW_OPPONENT_DEPTH" envDefault:"1"`
	Policy           string `env:"VVW_POLICY" envDefault:"objective"`
	OpponentPolicy   string `env:"VVW_OPPONENT_POLICY" envDefault:"naive"`
	Heuristic        string `env:"VVW_HEURISTIC" envDefault:"number-distance"`
	OpponentRandom   bool   `env:"VVW_OPPONENT_RANDOM" envDefault:"false"`
	Games            int    `env:"VVW_GAMES" envDefault:"10"`
	MaxRounds        int    `env:"VVW_MAX_ROUNDS" envDefault:"100"`
	Map              string `env:"VVW_MAP"`
	Seed             uint64 `env:"VVW_SEED" envDefault:"1"`
	Concurrency      int    `env:"VVW_CONCURRENCY" envDefault:"4"`
	OutputDir        string `env:"VVW_OUTPUT_DIR" envDefault:"results"`
	LogLevel         string `env:"VVW_LOG_LEVEL" envDefault:"info"`
	ExpectedOutcomes bool   `env:"VVW_EXPECTED_OUTCOMES" envDefault:"false"`
}

var experiments = []string{"matchup", "depth", "policy", "heuristic"}

// ParseEnv loads the configuration from the process environment.
func ParseEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, cfg.Validate()
}

// LoadFrom loads the configuration from the given variables only.
func LoadFrom(environment map[string]string) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: environment}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, cfg.Validate()
}

// Validate checks names and bounds that env parsing cannot.
func (c Config) Validate() error {
	if !lo.Contains(experiments, c.Experiment) {
		return fmt.Errorf("unknown experiment %q, want one of %s", c.Experiment, strings.Join(experiments, ", "))
	}
	if c.Depth <= 0 || c.OpponentDepth <= 0 {
		return fmt.Errorf("search depths must be positive, got %d and %d", c.Depth, c.OpponentDepth)
	}
	if c.Games <= 0 || c.MaxRounds <= 0 || c.Concurrency <= 0 {
		return fmt.Errorf("games, rounds and concurrency must be positive")
	}
	if _, err := searcher.ParsePolicy(c.Policy); err != nil {
		return err
	}
	if _, err := searcher.ParsePolicy(c.OpponentPolicy); err != nil {
		return err
	}
	if _, err := game.ParseHeuristic(c.Heuristic); err != nil {
		return err
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level is the zerolog level named by LogLevel.
func (c Config) Level() (zerolog.Level, error) {
	level, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel))
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("log level %q: %w", c.LogLevel, err)
	}
	return level, nil
}
