package agent

import (
	"vampires/game"
	"vampires/searcher"
)

type evaluationAgent struct {
	search *searcher.AlphaBeta
}

// NewEvaluationAgent returns an agent playing the alpha-beta decision. The
// agent owns the search instance and must not be shared between games.
func NewEvaluationAgent(search *searcher.AlphaBeta) Agent {
	return evaluationAgent{search: search}
}

func (a evaluationAgent) FindMove(g *game.Grid, faction game.Kind) (searcher.Decision, error) {
	return a.search.Search(g, faction)
}
