package engine

import (
	"errors"
	"math"
	"time"

	"vampires/experiments/metrics"
	"vampires/game"
	"vampires/meta"
	"vampires/searcher"
	"vampires/searcher/agent"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"lukechampine.com/frand"
)

// Local plays one game between two agents on an authoritative grid. Agents
// only ever see clones of the grid.
type Local struct {
	ID        string
	Grid      *game.Grid
	Agents    map[game.Kind]agent.Agent
	Rules     game.Rules
	Starting  game.Kind
	MaxRounds int
	Expected  bool
	observer  Observer
}

// Update is one applied batch as seen by observers.
type Update struct {
	Round    int
	Faction  game.Kind
	Moves    []game.Move
	Updates  []game.Update
	Hash     uint64
	Fallback bool
}

type Option func(e *Local)

func WithStartingFaction(faction game.Kind) Option {
	return func(e *Local) {
		if faction.IsFaction() {
			e.Starting = faction
		}
	}
}

func WithMaxRounds(rounds int) Option {
	return func(e *Local) {
		if rounds > 0 {
			e.MaxRounds = rounds
		}
	}
}

func WithObserver(observer Observer) Option {
	return func(e *Local) {
		if observer != nil {
			e.observer = observer
		}
	}
}

// WithExpectedOutcomes resolves authoritative battles by expectation instead
// of fresh random draws.
func WithExpectedOutcomes() Option {
	return func(e *Local) {
		e.Expected = true
	}
}

func LocalEngine(vampires, werewolves agent.Agent, g *game.Grid, r game.Rules, options ...Option) *Local {
	if vampires == nil || werewolves == nil {
		panic("need an agent for each faction")
	}
	e := &Local{
		ID:   uuid.NewString(),
		Grid: g.Clone(),
		Agents: map[game.Kind]agent.Agent{
			game.Vampire:  vampires,
			game.Werewolf: werewolves,
		},
		Rules:     r,
		Starting:  game.Vampire,
		MaxRounds: meta.MAX_ROUNDS,
		observer:  noObserver{},
	}
	for _, option := range options {
		option(e)
	}
	return e
}

// Run executes the entire game loop until a faction is wiped out or the
// round limit is reached. A round is one batch from each faction.
func (e *Local) Run() (game.Kind, metrics.GameMetric, []metrics.MoveMetric) {
	gameMetric := metrics.GameMetric{
		ID:              e.ID,
		StartingFaction: e.Starting.String(),
		StartTime:       time.Now(),
	}
	var moveMetrics []metrics.MoveMetric

	log.Info().Msgf("game %s: %v is starting", e.ID, e.Starting)
	e.observer.Start(e.ID, e.Grid.Clone(), e.Starting)

	winner, forfeit := game.Nobody, false
	current := e.Starting
	round, rounds := 1, 0 // rounds is the last round a batch was played in
	for step := 1; round <= e.MaxRounds; step++ {
		if over, _ := e.Grid.Terminal(); over {
			break
		}

		moves, decision, fallback, err := e.decide(current)
		if err != nil {
			log.Info().Err(err).Msgf("game %s: %v forfeits", e.ID, current)
			winner, forfeit = current.Enemy(), true
			break
		}

		next, updates, err := game.ApplyBatch(e.Grid, current, moves, e.resolver())
		if err != nil {
			// checked batches always apply; anything else is a bug in the rules
			log.Error().Err(err).Msgf("game %s: %v batch %v could not be applied", e.ID, current, moves)
			winner, forfeit = current.Enemy(), true
			break
		}
		e.Grid = next
		rounds = round

		e.observer.Update(e.ID, Update{
			Round:    round,
			Faction:  current,
			Moves:    moves,
			Updates:  updates,
			Hash:     next.Hash(),
			Fallback: fallback,
		})
		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:        step,
			Round:       round,
			Faction:     current.String(),
			Score:       decision.Score,
			Fallback:    fallback,
			MoveMetrics: decision.Metrics,
		})

		if current != e.Starting {
			round++
		}
		current = current.Enemy()
	}

	if !forfeit {
		_, winner = e.Grid.Terminal()
	}
	if winner == game.Nobody {
		log.Info().Msgf("game %s: no winner after %d rounds", e.ID, rounds)
	} else {
		log.Info().Msgf("game %s: %v won after %d rounds", e.ID, winner, rounds)
	}
	e.observer.End(e.ID, winner, rounds)

	gameMetric.Winner = winner.String()
	gameMetric.Rounds = rounds
	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = len(moveMetrics)
	return winner, gameMetric, moveMetrics
}

// decide asks the faction's agent for a batch and checks it. Failing agents
// and illegal batches fall back to a safe move; extinction is returned as is.
func (e *Local) decide(faction game.Kind) ([]game.Move, searcher.Decision, bool, error) {
	decision, err := e.Agents[faction].FindMove(e.Grid.Clone(), faction)
	if err == nil {
		err = e.Rules.CheckBatch(e.Grid, faction, decision.Moves)
	}
	if err == nil {
		return decision.Moves, decision, false, nil
	}
	if errors.Is(err, game.ErrExtinct) {
		return nil, decision, false, err
	}

	log.Warn().Err(err).Msgf("game %s: %v played an invalid batch, falling back to a safe move", e.ID, faction)
	moves, err := agent.SafeMove(e.Grid, faction)
	if err != nil {
		return nil, decision, true, err
	}
	return moves, decision, true, nil
}

// resolver returns the oracle for one authoritative batch, freshly seeded.
func (e *Local) resolver() game.Resolver {
	if e.Expected {
		return game.ExpectedResolver{}
	}
	return game.NewRandomResolver(frand.Uint64n(math.MaxUint64))
}
