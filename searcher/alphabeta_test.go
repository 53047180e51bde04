package searcher

import (
	"errors"
	"testing"

	"vampires/game"

	"github.com/stretchr/testify/require"
)

type mockGenerator struct {
	policy  Policy
	callers []game.Kind
}

func (m *mockGenerator) Generate(g *game.Grid, faction game.Kind) []game.Move {
	m.callers = append(m.callers, faction)
	return m.policy.Generate(g, faction)
}

// twoClusters has ten humans close to the vampires and ten closer to the
// werewolves, with both factions in opposite corners.
func twoClusters(t *testing.T) *game.Grid {
	return mustGrid(t, 5, 5,
		game.Update{X: 0, Y: 0, Vampires: 10},
		game.Update{X: 4, Y: 4, Werewolves: 10},
		game.Update{X: 0, Y: 2, Humans: 10},
		game.Update{X: 3, Y: 2, Humans: 10},
	)
}

func contested(t *testing.T) *game.Grid {
	return mustGrid(t, 4, 4,
		game.Update{X: 1, Y: 1, Vampires: 5},
		game.Update{X: 2, Y: 2, Werewolves: 6},
		game.Update{X: 0, Y: 2, Humans: 3},
		game.Update{X: 3, Y: 0, Humans: 4},
	)
}

func crowded(t *testing.T) *game.Grid {
	return mustGrid(t, 5, 5,
		game.Update{X: 0, Y: 0, Vampires: 3},
		game.Update{X: 1, Y: 1, Werewolves: 4},
		game.Update{X: 0, Y: 1, Humans: 2},
		game.Update{X: 2, Y: 0, Humans: 5},
		game.Update{X: 2, Y: 2, Humans: 1},
		game.Update{X: 4, Y: 3, Humans: 3},
	)
}

func TestAlphaBetaScenario(t *testing.T) {
	target := game.Position{X: 0, Y: 2}

	for _, p := range []Policy{Naive, DiagonalFirst, ObjectiveFirst} {
		t.Run(p.String()+" heads for the nearest convertible cluster", func(t *testing.T) {
			g := twoClusters(t)
			decision, err := NewAlphaBeta(WithDepth(3), WithPolicy(p)).Search(g, game.Vampire)
			require.NoError(t, err)

			require.Len(t, decision.Moves, 1)
			move := decision.Moves[0]
			require.True(t, g.InBounds(move.To), "Vampires should stay on the board")
			require.Equal(t, game.Position{}, move.From)
			require.Equal(t, 10, move.Count)
			require.Equal(t, 1, game.Distance(move.To, target), "Move should end next to the humans at %v", target)
			require.Greater(t, decision.Score, 0.0)

			require.Len(t, decision.Line, 3, "Principal variation should span the whole depth")
			require.Equal(t, move, decision.Line[0])
			require.Equal(t, target, decision.Line[2].To, "Vampires should convert the humans on their second move")
		})
	}
}

func TestAlphaBetaDepthOne(t *testing.T) {
	t.Run("taking the best immediate conversion", func(t *testing.T) {
		g := mustGrid(t, 4, 4,
			game.Update{X: 0, Y: 0, Vampires: 4},
			game.Update{X: 3, Y: 0, Humans: 6},
			game.Update{X: 1, Y: 1, Humans: 3},
			game.Update{X: 3, Y: 3, Werewolves: 2},
		)
		decision, err := NewAlphaBeta(WithDepth(1), WithMetrics()).Search(g, game.Vampire)
		require.NoError(t, err)
		require.Equal(t, game.Position{X: 1, Y: 1}, decision.Moves[0].To)
		require.Len(t, decision.Line, 1)
		require.Equal(t, int64(3), decision.Metrics.Nodes, "Every root move should be expanded once")
		require.Equal(t, int64(3), decision.Metrics.Leaves)
	})
}

func TestAlphaBetaPruningEquivalence(t *testing.T) {
	boards := map[string]func(*testing.T) *game.Grid{
		"two clusters": twoClusters,
		"contested":    contested,
		"crowded":      crowded,
	}

	var cuts int64
	for name, board := range boards {
		for _, p := range []Policy{Naive, DiagonalFirst, ObjectiveFirst} {
			for depth := 1; depth <= 4; depth++ {
				for seed := uint64(1); seed <= 3; seed++ {
					g := board(t)
					for _, faction := range []game.Kind{game.Vampire, game.Werewolf} {
						options := []Option{WithDepth(depth), WithPolicy(p), WithSeed(seed), WithMetrics()}
						pruned, err := NewAlphaBeta(options...).Search(g, faction)
						require.NoError(t, err)
						full, err := NewAlphaBeta(append(options, WithoutPruning())...).Search(g, faction)
						require.NoError(t, err)

						require.Equal(t, full.Score, pruned.Score,
							"%s, %v, depth %d, seed %d, %v: pruning changed the value", name, p, depth, seed, faction)
						require.Equal(t, full.Moves, pruned.Moves,
							"%s, %v, depth %d, seed %d, %v: pruning changed the move", name, p, depth, seed, faction)
						require.LessOrEqual(t, pruned.Metrics.Nodes, full.Metrics.Nodes)
						require.Zero(t, full.Metrics.AlphaCuts+full.Metrics.BetaCuts, "Minimax should never cut")
						cuts += pruned.Metrics.AlphaCuts + pruned.Metrics.BetaCuts
					}
				}
			}
		}
	}
	require.Positive(t, cuts, "Pruning should cut some branches")
}

func TestAlphaBetaPlyAlternation(t *testing.T) {
	t.Run("alternating factions by depth", func(t *testing.T) {
		generator := &mockGenerator{policy: Naive}
		_, err := NewAlphaBeta(WithDepth(2), WithPolicy(generator)).Search(contested(t), game.Vampire)
		require.NoError(t, err)

		require.Equal(t, game.Vampire, generator.callers[0], "Root should move the searching faction")
		require.Greater(t, len(generator.callers), 1)
		for _, k := range generator.callers[1:] {
			require.Equal(t, game.Werewolf, k, "Second ply should move the enemy and leaves should not generate")
		}
	})
}

func TestAlphaBetaDeterminism(t *testing.T) {
	t.Run("same seed gives the same decision", func(t *testing.T) {
		a, err := NewAlphaBeta(WithDepth(4), WithSeed(9)).Search(contested(t), game.Werewolf)
		require.NoError(t, err)
		b, err := NewAlphaBeta(WithDepth(4), WithSeed(9)).Search(contested(t), game.Werewolf)
		require.NoError(t, err)
		require.Equal(t, a.Moves, b.Moves)
		require.Equal(t, a.Score, b.Score)
		require.Equal(t, a.Line, b.Line)
	})

	t.Run("expected outcomes ignore the seed", func(t *testing.T) {
		a, err := NewAlphaBeta(WithDepth(3), WithSeed(1), WithExpectedOutcomes()).Search(contested(t), game.Vampire)
		require.NoError(t, err)
		b, err := NewAlphaBeta(WithDepth(3), WithSeed(2), WithExpectedOutcomes()).Search(contested(t), game.Vampire)
		require.NoError(t, err)
		require.Equal(t, a, b)
	})

	t.Run("the input grid is never modified", func(t *testing.T) {
		g := crowded(t)
		before := g.Clone()
		_, err := NewAlphaBeta(WithDepth(4)).Search(g, game.Vampire)
		require.NoError(t, err)
		require.Equal(t, before, g)
	})
}

func TestAlphaBetaFailures(t *testing.T) {
	g := mustGrid(t, 3, 3, game.Update{X: 0, Y: 0, Vampires: 3}, game.Update{X: 2, Y: 2, Humans: 1})

	t.Run("extinct faction fails fast", func(t *testing.T) {
		_, err := NewAlphaBeta().Search(g, game.Werewolf)
		require.True(t, errors.Is(err, game.ErrExtinct))
	})

	t.Run("humans cannot search", func(t *testing.T) {
		_, err := NewAlphaBeta().Search(g, game.Human)
		require.True(t, errors.Is(err, game.ErrIncorrectSpecies))
	})

	t.Run("winning position scores the extinction sentinel", func(t *testing.T) {
		decision, err := NewAlphaBeta(WithDepth(3)).Search(g, game.Vampire)
		require.NoError(t, err)
		require.Equal(t, game.ExtinctionScore, decision.Score, "Enemy already gone should be a win on every line")
	})
}

func TestNewAlphaBetaDefaults(t *testing.T) {
	s := NewAlphaBeta(WithDepth(0), WithPolicy(nil), WithHeuristic(nil))
	require.Equal(t, 3, s.Depth(), "Invalid options should keep defaults")
	require.Equal(t, ObjectiveFirst, s.policy)
	require.NotNil(t, s.evaluate)
	require.True(t, s.pruning)
}
