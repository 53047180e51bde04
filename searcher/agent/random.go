package agent

import (
	"fmt"

	"vampires/game"
	"vampires/searcher"

	"golang.org/x/exp/rand"
)

type randomAgent struct {
	policy searcher.MoveGenerator
	rng    *rand.Rand
}

// NewRandomAgent returns a baseline agent playing a uniformly random move
// among those of policy.
func NewRandomAgent(policy searcher.MoveGenerator, seed uint64) Agent {
	return &randomAgent{policy: policy, rng: rand.New(rand.NewSource(seed))}
}

func (a *randomAgent) FindMove(g *game.Grid, faction game.Kind) (searcher.Decision, error) {
	if !faction.IsFaction() {
		return searcher.Decision{}, fmt.Errorf("random move for %v: %w", faction, game.ErrIncorrectSpecies)
	}
	moves := a.policy.Generate(g, faction)
	if len(moves) == 0 {
		return searcher.Decision{}, fmt.Errorf("random move for %v: %w", faction, game.ErrExtinct)
	}
	move := moves[a.rng.Intn(len(moves))]
	return searcher.Decision{Moves: []game.Move{move}, Line: []game.Move{move}}, nil
}
