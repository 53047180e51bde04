package searcher

import (
	"encoding/binary"
	"fmt"
	"math"

	"vampires/game"
	"vampires/meta"

	"github.com/cespare/xxhash"
	"github.com/rs/zerolog/log"
)

type Option func(s *AlphaBeta)

// AlphaBeta is a depth-bounded minimax search with alpha-beta pruning driven
// by an explicit stack of frames. It keeps running counters between the call
// and the return of Search, so one instance must not be shared by concurrent
// decisions.
type AlphaBeta struct {
	depth    int
	policy   MoveGenerator
	evaluate game.Evaluate
	seed     uint64
	expected bool
	pruning  bool
	metrics  MetricsCollector
}

// Decision is the outcome of one search.
type Decision struct {
	Moves   []game.Move
	Score   float64
	Line    []game.Move // principal variation, root move first
	Metrics MoveMetrics
}

func WithDepth(depth int) Option {
	return func(s *AlphaBeta) {
		if depth > 0 {
			s.depth = depth
		}
	}
}

func WithPolicy(policy MoveGenerator) Option {
	return func(s *AlphaBeta) {
		if policy != nil {
			s.policy = policy
		}
	}
}

func WithHeuristic(evaluate game.Evaluate) Option {
	return func(s *AlphaBeta) {
		if evaluate != nil {
			s.evaluate = evaluate
		}
	}
}

// WithSeed seeds the battles sampled inside the tree.
func WithSeed(seed uint64) Option {
	return func(s *AlphaBeta) {
		s.seed = seed
	}
}

// WithExpectedOutcomes resolves battles inside the tree by their expected
// result instead of sampling.
func WithExpectedOutcomes() Option {
	return func(s *AlphaBeta) {
		s.expected = true
	}
}

// WithoutPruning turns the search into plain minimax.
func WithoutPruning() Option {
	return func(s *AlphaBeta) {
		s.pruning = false
	}
}

func WithMetrics() Option {
	return func(s *AlphaBeta) {
		s.metrics = NewMetricsCollector()
	}
}

func NewAlphaBeta(options ...Option) *AlphaBeta {
	s := &AlphaBeta{ // Default values
		depth:    meta.DEPTH,
		policy:   ObjectiveFirst,
		evaluate: game.NumberAndDistance.Fn(),
		seed:     meta.SEARCH_SEED,
		pruning:  true,
		metrics:  NewNoMetricsCollector(),
	}
	for _, option := range options {
		option(s)
	}
	return s
}

func (s *AlphaBeta) Depth() int { return s.depth }

// frame is one node of the search on the explicit stack.
type frame struct {
	grid  *game.Grid
	move  game.Move // move that led to this frame
	moves []game.Move
	next  int
	depth int
	max   bool
	alpha float64
	beta  float64
	line  []game.Move
}

// value is what the frame resolved to once its candidates are exhausted or cut.
func (f *frame) value() float64 {
	if f.max {
		return f.alpha
	}
	return f.beta
}

func (f *frame) cut() bool {
	return f.alpha >= f.beta
}

// Search picks the move of faction on g. The root maximizes for faction and
// plies alternate strictly between the two factions.
func (s *AlphaBeta) Search(g *game.Grid, faction game.Kind) (Decision, error) {
	if !faction.IsFaction() {
		return Decision{}, fmt.Errorf("search for %v: %w", faction, game.ErrIncorrectSpecies)
	}
	rootMoves := s.policy.Generate(g, faction)
	if len(rootMoves) == 0 {
		return Decision{}, fmt.Errorf("search for %v: %w", faction, game.ErrExtinct)
	}

	s.metrics.Start(s.depth)
	root := &frame{
		grid:  g,
		moves: rootMoves,
		max:   true,
		alpha: math.Inf(-1),
		beta:  math.Inf(1),
	}
	stack := []*frame{root}

	for len(stack) > 0 {
		f := stack[len(stack)-1]

		// backtrack
		if f.next >= len(f.moves) || (s.pruning && f.cut()) {
			stack = stack[:len(stack)-1]
			if len(stack) > 0 {
				s.fold(stack[len(stack)-1], f.move, f.value(), f.line)
			}
			continue
		}

		// expand
		m := f.moves[f.next]
		f.next++
		child, err := game.ApplyMove(f.grid, m, s.resolver(f.grid, m))
		if err != nil {
			return Decision{}, fmt.Errorf("expand %v at depth %d: %w", m, f.depth, err)
		}
		s.metrics.AddNode()

		depth := f.depth + 1
		var moves []game.Move
		if !s.isLeaf(child, depth) {
			mover := faction
			if f.max {
				mover = faction.Enemy()
			}
			moves = s.policy.Generate(child, mover)
		}
		if len(moves) == 0 {
			s.metrics.AddLeaf()
			s.fold(f, m, s.evaluate(child, faction), nil)
			continue
		}

		alpha, beta := f.alpha, f.beta
		if !s.pruning {
			alpha, beta = math.Inf(-1), math.Inf(1)
		}
		stack = append(stack, &frame{
			grid:  child,
			move:  m,
			moves: moves,
			depth: depth,
			max:   !f.max,
			alpha: alpha,
			beta:  beta,
		})
	}

	line := root.line
	if len(line) == 0 {
		line = rootMoves[:1]
	}
	metrics := s.metrics.Complete()
	log.Debug().Msgf("%v searched depth %d: move %v score %.4f, %d nodes, %d alpha cuts, %d beta cuts in %v",
		faction, s.depth, line[0], root.alpha, metrics.Nodes, metrics.AlphaCuts, metrics.BetaCuts, metrics.Duration)

	return Decision{
		Moves:   line[:1],
		Score:   root.alpha,
		Line:    line,
		Metrics: metrics,
	}, nil
}

func (s *AlphaBeta) isLeaf(g *game.Grid, depth int) bool {
	if depth >= s.depth {
		return true
	}
	over, _ := g.Terminal()
	return over
}

// fold propagates a child's value into its parent's bound. Strict comparison
// keeps the first of equally good moves. Cuts are counted when siblings are
// left unexplored.
func (s *AlphaBeta) fold(parent *frame, m game.Move, value float64, line []game.Move) {
	if parent.max {
		if value > parent.alpha {
			parent.alpha = value
			parent.line = append([]game.Move{m}, line...)
		}
	} else {
		if value < parent.beta {
			parent.beta = value
			parent.line = append([]game.Move{m}, line...)
		}
	}

	if s.pruning && parent.cut() && parent.next < len(parent.moves) {
		if parent.max {
			s.metrics.AddBetaCut()
		} else {
			s.metrics.AddAlphaCut()
		}
	}
}

// resolver returns the battle oracle for expanding m from g. Sampling is
// seeded by the node itself so that every visit of the same node, pruned or
// not, sees the same outcome.
func (s *AlphaBeta) resolver(g *game.Grid, m game.Move) game.Resolver {
	if s.expected {
		return game.ExpectedResolver{}
	}
	buf := make([]byte, 0, 48)
	buf = binary.LittleEndian.AppendUint64(buf, g.Hash())
	for _, v := range []int{m.From.X, m.From.Y, m.Count, m.To.X, m.To.Y} {
		buf = binary.LittleEndian.AppendUint64(buf, uint64(v))
	}
	return game.NewRandomResolver(s.seed ^ xxhash.Sum64(buf))
}
