package engine

import (
	"vampires/experiments/metrics"
	"vampires/game"
)

type Engine interface {
	// Run plays a game till a faction is extinct or the round limit is reached
	Run() (winner game.Kind, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric)
}

// Observer follows games as they are played. Implementations may be shared
// by concurrent games and are told apart by the game ID.
type Observer interface {
	Start(id string, g *game.Grid, starting game.Kind)
	Update(id string, u Update)
	End(id string, winner game.Kind, rounds int)
}

type noObserver struct{}

func (noObserver) Start(string, *game.Grid, game.Kind) {}
func (noObserver) Update(string, Update)               {}
func (noObserver) End(string, game.Kind, int)          {}
