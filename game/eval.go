package game

import (
	"fmt"
	"math"
	"strings"

	"vampires/meta"
)

// ExtinctionScore is returned when a faction has no unit left. It dominates
// any ordinary score.
const ExtinctionScore = 1e6

// Heuristic names one of the built-in evaluators.
type Heuristic int

const (
	NumberAndDistance Heuristic = iota
	SpeciesRatio
	ConversionExpectation
	Layered
)

var heuristicNames = map[Heuristic]string{
	NumberAndDistance:     "number-distance",
	SpeciesRatio:          "species-ratio",
	ConversionExpectation: "expectation",
	Layered:               "layered",
}

func (h Heuristic) String() string {
	if name, ok := heuristicNames[h]; ok {
		return name
	}
	return fmt.Sprintf("heuristic(%d)", int(h))
}

// ParseHeuristic reads a heuristic name as printed by String.
func ParseHeuristic(s string) (Heuristic, error) {
	for h, name := range heuristicNames {
		if strings.EqualFold(strings.TrimSpace(s), name) {
			return h, nil
		}
	}
	return 0, fmt.Errorf("unknown heuristic %q", s)
}

// Evaluate scores g for faction with this heuristic and default weights.
func (h Heuristic) Evaluate(g *Grid, faction Kind) float64 {
	return h.Fn()(g, faction)
}

// Fn returns the evaluation function behind the heuristic.
func (h Heuristic) Fn() Evaluate {
	switch h {
	case NumberAndDistance:
		return EvaluateNumberAndDistance(DefaultWeights)
	case SpeciesRatio:
		return EvaluateSpeciesRatio
	case ConversionExpectation:
		return EvaluateExpectation
	case Layered:
		return Group(meta.GROUP_WEIGHT, EvaluateNumberAndDistance(DefaultWeights), EvaluateExpectation)
	default:
		panic(fmt.Sprintf("unknown heuristic %d", int(h)))
	}
}

// Weights tunes the number and distance heuristic.
type Weights struct {
	Number    float64
	Distance  float64
	Proximity float64
}

var DefaultWeights = Weights{
	Number:    meta.NUM_FACTOR,
	Distance:  meta.DIST_FACTOR,
	Proximity: meta.PROXIMITY_EPSILON,
}

// extinction returns the sentinel score when either faction is gone. The
// faction's own extinction is checked first.
func extinction(g *Grid, faction Kind) (float64, bool) {
	if g.Total(faction) == 0 {
		return -ExtinctionScore, true
	}
	if g.Total(faction.Enemy()) == 0 {
		return ExtinctionScore, true
	}
	return 0, false
}

// EvaluateNumberAndDistance weighs the unit difference, the humans each side
// can convert discounted by distance, and the distance between the factions
// scaled by who is ahead. The score is computed for vampires and negated for
// werewolves.
func EvaluateNumberAndDistance(w Weights) Evaluate {
	return func(g *Grid, faction Kind) float64 {
		if !faction.IsFaction() {
			panic(fmt.Sprintf("cannot evaluate for %v", faction))
		}
		if score, ok := extinction(g, faction); ok {
			return score
		}

		lead := float64(g.Total(Vampire) - g.Total(Werewolf))
		potential := conversionPotential(g, Vampire) - conversionPotential(g, Werewolf)
		vampire, _, _ := g.First(Vampire)
		werewolf, _, _ := g.First(Werewolf)

		score := lead*w.Number + potential*w.Distance - w.Proximity*float64(Distance(vampire, werewolf))*lead
		if faction == Werewolf {
			return -score
		}
		return score
	}
}

// EvaluateSpeciesRatio is the faction's population divided by the enemy's.
func EvaluateSpeciesRatio(g *Grid, faction Kind) float64 {
	if score, ok := extinction(g, faction); ok {
		return score
	}
	return float64(g.Total(faction)) / float64(g.Total(faction.Enemy()))
}

// EvaluateExpectation sums the humans the faction is sure to convert, each
// discounted by its distance, relative to the enemy's size.
func EvaluateExpectation(g *Grid, faction Kind) float64 {
	if score, ok := extinction(g, faction); ok {
		return score
	}
	return conversionPotential(g, faction) / (float64(g.Total(faction.Enemy())) * 100)
}

// conversionPotential sums humans/distance over the human cells whose nearest
// group of faction is large enough to convert them.
func conversionPotential(g *Grid, faction Kind) float64 {
	potential := 0.0
	for p, humans := range g.Positions(Human) {
		group, ok := g.Nearest(p, faction)
		if !ok {
			return 0
		}
		if humans <= group.Count {
			potential += float64(humans) / float64(group.Distance)
		}
	}
	return potential
}

// Group combines evaluators by a weighted sum where the i-th of n evaluators
// weighs base^(n-i), so earlier evaluators dominate later ones.
func Group(base float64, evaluators ...Evaluate) Evaluate {
	weights := make([]float64, len(evaluators))
	for i := range evaluators {
		weights[i] = math.Pow(base, float64(len(evaluators)-i))
		if weights[i] == 0 {
			weights[i] = 1
		}
	}
	return func(g *Grid, faction Kind) float64 {
		score := 0.0
		for i, evaluate := range evaluators {
			score += weights[i] * evaluate(g, faction)
		}
		return score
	}
}
