package agent

import (
	"vampires/game"
	"vampires/searcher"
)

type Agent interface {
	// FindMove returns the batch to play for faction on g, its score and the
	// search metrics (if collected).
	FindMove(g *game.Grid, faction game.Kind) (searcher.Decision, error)
}
