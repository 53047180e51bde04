package game

import (
	"sort"

	"vampires/utils"
)

// Distance counts the moves needed to walk from a to b when a diagonal step
// costs the same as a straight one.
func Distance(a, b Position) int {
	dx, dy := utils.Abs(a.X-b.X), utils.Abs(a.Y-b.Y)
	diagonal := min(dx, dy)
	return diagonal + (dx + dy - 2*diagonal)
}

// Target is a populated cell seen from some origin.
type Target struct {
	Position Position
	Count    int
	Distance int
}

// Targets lists every cell of kind k with its distance from origin, nearest
// first. Equal distances keep row-major order.
func (g *Grid) Targets(origin Position, k Kind) []Target {
	var targets []Target
	for p, n := range g.Positions(k) {
		targets = append(targets, Target{Position: p, Count: n, Distance: Distance(origin, p)})
	}
	sort.SliceStable(targets, func(i, j int) bool {
		return targets[i].Distance < targets[j].Distance
	})
	return targets
}

// Nearest returns the cell of kind k closest to p, first in row-major order
// among ties.
func (g *Grid) Nearest(p Position, k Kind) (Target, bool) {
	targets := g.Targets(p, k)
	if len(targets) == 0 {
		return Target{}, false
	}
	return targets[0], true
}

// NextStepToward returns the neighbor of from on a shortest path to to.
func NextStepToward(from, to Position) Position {
	return from.Add(utils.Sign(to.X-from.X), utils.Sign(to.Y-from.Y))
}

// Adjacent reports whether a and b are distinct cells at most one step apart.
func Adjacent(a, b Position) bool {
	return a != b && Distance(a, b) <= 1
}
