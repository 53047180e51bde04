package agent

import (
	"fmt"

	"vampires/game"
)

// SafeMove is the fallback played when an agent fails or cheats: the whole
// first group of faction steps to its first neighbor.
func SafeMove(g *game.Grid, faction game.Kind) ([]game.Move, error) {
	from, n, ok := g.First(faction)
	if !ok {
		return nil, fmt.Errorf("safe move for %v: %w", faction, game.ErrExtinct)
	}
	neighbors := g.Neighbors(from, true)
	return []game.Move{{From: from, Count: n, To: neighbors[0]}}, nil
}
