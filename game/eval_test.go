package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtinctionScores(t *testing.T) {
	g := mustGrid(t, 3, 3, Update{X: 0, Y: 0, Vampires: 2}, Update{X: 2, Y: 2, Humans: 4})

	for _, h := range []Heuristic{NumberAndDistance, SpeciesRatio, ConversionExpectation} {
		t.Run(h.String()+" reports extinction with the right sign", func(t *testing.T) {
			require.Equal(t, ExtinctionScore, h.Evaluate(g, Vampire), "Survivor should see a win")
			require.Equal(t, -ExtinctionScore, h.Evaluate(g, Werewolf), "Extinct faction should see a loss")
		})
	}

	t.Run("layered heuristic keeps extinction dominant", func(t *testing.T) {
		require.Greater(t, Layered.Evaluate(g, Vampire), 1e9)
		require.Less(t, Layered.Evaluate(g, Werewolf), -1e9)
	})
}

func TestNumberAndDistance(t *testing.T) {
	g := mustGrid(t, 4, 4,
		Update{X: 0, Y: 0, Vampires: 4},
		Update{X: 3, Y: 3, Werewolves: 3},
		Update{X: 1, Y: 1, Humans: 2},
		Update{X: 3, Y: 1, Humans: 5},
	)

	t.Run("combining count, conversion and proximity terms", func(t *testing.T) {
		// lead 1, vampires convert 2/1, werewolves 2/2, factions 3 apart
		want := 1*10 + (2.0-1.0)*0.1 - 0.001*3*1
		require.InDelta(t, want, NumberAndDistance.Evaluate(g, Vampire), 1e-9)
	})

	t.Run("scores are antisymmetric between factions", func(t *testing.T) {
		require.InDelta(t, -NumberAndDistance.Evaluate(g, Vampire), NumberAndDistance.Evaluate(g, Werewolf), 1e-12)
	})

	t.Run("custom weights", func(t *testing.T) {
		countOnly := EvaluateNumberAndDistance(Weights{Number: 1})
		require.Equal(t, 1.0, countOnly(g, Vampire))
	})

	t.Run("ignoring humans the nearest group cannot beat", func(t *testing.T) {
		weak := mustGrid(t, 4, 4,
			Update{X: 0, Y: 0, Vampires: 1},
			Update{X: 3, Y: 3, Werewolves: 1},
			Update{X: 1, Y: 1, Humans: 9},
		)
		require.Equal(t, 0.0, NumberAndDistance.Evaluate(weak, Vampire))
	})
}

func TestSimpleHeuristics(t *testing.T) {
	g := mustGrid(t, 4, 4,
		Update{X: 0, Y: 0, Vampires: 4},
		Update{X: 3, Y: 3, Werewolves: 3},
		Update{X: 1, Y: 1, Humans: 2},
	)

	t.Run("species ratio", func(t *testing.T) {
		require.InDelta(t, 4.0/3.0, SpeciesRatio.Evaluate(g, Vampire), 1e-12)
		require.InDelta(t, 3.0/4.0, SpeciesRatio.Evaluate(g, Werewolf), 1e-12)
	})

	t.Run("conversion expectation", func(t *testing.T) {
		require.InDelta(t, 2.0/300.0, ConversionExpectation.Evaluate(g, Vampire), 1e-12)
		require.InDelta(t, 1.0/400.0, ConversionExpectation.Evaluate(g, Werewolf), 1e-12)
	})
}

func TestGroup(t *testing.T) {
	one := func(*Grid, Kind) float64 { return 1 }
	two := func(*Grid, Kind) float64 { return 2 }

	t.Run("earlier heuristics weigh more", func(t *testing.T) {
		require.Equal(t, 100.0+20.0, Group(10, one, two)(nil, Vampire))
	})

	t.Run("base one sums the scores", func(t *testing.T) {
		require.Equal(t, 3.0, Group(1, one, two)(nil, Vampire))
	})

	t.Run("base zero falls back to unit weights", func(t *testing.T) {
		require.Equal(t, 3.0, Group(0, one, two)(nil, Vampire))
	})
}

func TestParseHeuristic(t *testing.T) {
	for h, name := range heuristicNames {
		got, err := ParseHeuristic(name)
		require.NoError(t, err)
		require.Equal(t, h, got)
	}
	_, err := ParseHeuristic("bogus")
	require.Error(t, err)
}
