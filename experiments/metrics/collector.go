package metrics

import (
	"time"

	"vampires/searcher"
)

// AgentConfig describes one contender of a match up.
type AgentConfig struct {
	ID        int
	Depth     int
	Policy    string
	Heuristic string
	Expected  bool // resolve battles in the tree by expectation
	Random    bool // baseline playing random moves
}

type MoveMetric struct {
	Step     int
	Round    int
	Faction  string
	Score    float64
	Fallback bool // the agent's batch was replaced by a safe move
	searcher.MoveMetrics
}

type GameMetric struct {
	ID              string
	StartingFaction string
	Winner          string
	Rounds          int
	StartTime       time.Time
	EndTime         time.Time
	Duration        time.Duration
	TotalMoves      int
}
