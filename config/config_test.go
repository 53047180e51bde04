package config

import (
	"testing"

	"github.com/matryer/is"
	"github.com/rs/zerolog"
)

func TestLoadFromDefaults(t *testing.T) {
	is := is.New(t)

	cfg, err := LoadFrom(map[string]string{})
	is.NoErr(err)
	is.Equal(cfg.Experiment, "matchup")
	is.Equal(cfg.Depth, 3)
	is.Equal(cfg.OpponentDepth, 1)
	is.Equal(cfg.Policy, "objective")
	is.Equal(cfg.Heuristic, "number-distance")
	is.Equal(cfg.Games, 10)
	is.Equal(cfg.MaxRounds, 100)
	is.Equal(cfg.Seed, uint64(1))
	is.Equal(cfg.Map, "")
	is.True(!cfg.ExpectedOutcomes)

	level, err := cfg.Level()
	is.NoErr(err)
	is.Equal(level, zerolog.InfoLevel)
}

func TestLoadFromOverrides(t *testing.T) {
	is := is.New(t)

	cfg, err := LoadFrom(map[string]string{
		"VVW_EXPERIMENT":        "depth",
		"VVW_DEPTH":             "5",
		"VVW_POLICY":            "diagonal",
		"VVW_HEURISTIC":         "layered",
		"VVW_MAP":               "maps/duel.xml",
		"VVW_SEED":              "42",
		"VVW_LOG_LEVEL":         "DEBUG",
		"VVW_EXPECTED_OUTCOMES": "true",
	})
	is.NoErr(err)
	is.Equal(cfg.Experiment, "depth")
	is.Equal(cfg.Depth, 5)
	is.Equal(cfg.Policy, "diagonal")
	is.Equal(cfg.Heuristic, "layered")
	is.Equal(cfg.Map, "maps/duel.xml")
	is.Equal(cfg.Seed, uint64(42))
	is.True(cfg.ExpectedOutcomes)

	level, err := cfg.Level()
	is.NoErr(err)
	is.Equal(level, zerolog.DebugLevel)
}

func TestLoadFromInvalid(t *testing.T) {
	for name, environment := range map[string]map[string]string{
		"malformed depth":   {"VVW_DEPTH": "deep"},
		"zero depth":        {"VVW_DEPTH": "0"},
		"unknown policy":    {"VVW_POLICY": "sideways"},
		"unknown heuristic": {"VVW_HEURISTIC": "vibes"},
		"unknown level":     {"VVW_LOG_LEVEL": "loud"},
		"unknown run":       {"VVW_EXPERIMENT": "tournament"},
		"no games":          {"VVW_GAMES": "0"},
	} {
		t.Run(name, func(t *testing.T) {
			is := is.New(t)
			_, err := LoadFrom(environment)
			is.True(err != nil)
		})
	}
}

func TestParseEnv(t *testing.T) {
	is := is.New(t)
	t.Setenv("VVW_GAMES", "3")

	cfg, err := ParseEnv()
	is.NoErr(err)
	is.Equal(cfg.Games, 3)
}
