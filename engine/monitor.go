package engine

import (
	"sync"

	"vampires/game"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

// Result is the final state of one finished game.
type Result struct {
	ID       string
	Starting game.Kind
	Winner   game.Kind
	Rounds   int
	Batches  int
	Fallback int // batches replaced by a safe move
}

// Monitor is an Observer that tallies the games it sees. It is safe for use
// by concurrent games.
type Monitor struct {
	mu      sync.Mutex
	running map[string]*Result
	done    []Result
}

func NewMonitor() *Monitor {
	return &Monitor{running: make(map[string]*Result)}
}

func (m *Monitor) Start(id string, g *game.Grid, starting game.Kind) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.running[id] = &Result{ID: id, Starting: starting}
	log.Debug().Msgf("game %s: %d vampires, %d werewolves, %d humans on %dx%d",
		id, g.Total(game.Vampire), g.Total(game.Werewolf), g.Total(game.Human), g.Rows(), g.Cols())
}

func (m *Monitor) Update(id string, u Update) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.running[id]
	if !ok {
		log.Warn().Msgf("game %s: update for an unknown game", id)
		return
	}
	r.Batches++
	if u.Fallback {
		r.Fallback++
	}
}

func (m *Monitor) End(id string, winner game.Kind, rounds int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.running[id]
	if !ok {
		r = &Result{ID: id}
	}
	delete(m.running, id)
	r.Winner = winner
	r.Rounds = rounds
	m.done = append(m.done, *r)
}

// Results returns the finished games in the order they ended.
func (m *Monitor) Results() []Result {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Result(nil), m.done...)
}

// Summary counts finished games by winner.
func (m *Monitor) Summary() map[game.Kind]int {
	return lo.CountValuesBy(m.Results(), func(r Result) game.Kind {
		return r.Winner
	})
}
