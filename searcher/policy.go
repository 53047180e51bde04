package searcher

import (
	"fmt"
	"strings"

	"vampires/game"
)

// MoveGenerator lists the candidate moves of a faction. An extinct faction
// gets no moves.
type MoveGenerator interface {
	Generate(g *game.Grid, faction game.Kind) []game.Move
}

// Policy is one of the built-in move generators. Every policy moves the
// whole of the faction's first group (row-major) to one neighboring cell.
type Policy int

const (
	Naive Policy = iota
	DiagonalFirst
	ObjectiveFirst
)

var policyNames = map[Policy]string{
	Naive:          "naive",
	DiagonalFirst:  "diagonal",
	ObjectiveFirst: "objective",
}

func (p Policy) String() string {
	if name, ok := policyNames[p]; ok {
		return name
	}
	return fmt.Sprintf("policy(%d)", int(p))
}

// ParsePolicy reads a policy name as printed by String.
func ParsePolicy(s string) (Policy, error) {
	for p, name := range policyNames {
		if strings.EqualFold(strings.TrimSpace(s), name) {
			return p, nil
		}
	}
	return 0, fmt.Errorf("unknown move policy %q", s)
}

func (p Policy) Generate(g *game.Grid, faction game.Kind) []game.Move {
	if !faction.IsFaction() {
		return nil
	}
	from, n, ok := g.First(faction)
	if !ok {
		return nil
	}
	var targets []game.Position
	switch p {
	case Naive:
		targets = g.Neighbors(from, true)
	case DiagonalFirst:
		targets = diagonalFirst(g, from, n)
	case ObjectiveFirst:
		targets = objectiveFirst(g, from, n)
	default:
		panic(fmt.Sprintf("unknown move policy %d", int(p)))
	}

	moves := make([]game.Move, len(targets))
	for i, to := range targets {
		moves[i] = game.Move{From: from, Count: n, To: to}
	}
	return moves
}

// Clockwise from the top left corner. Straight move i lies between diagonal
// i and diagonal i+1.
var (
	diagonals = [4][2]int{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}
	straights = [4][2]int{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}
)

// diagonalFirst keeps every diagonal, then keeps a straight cell only when a
// flanking diagonal holds a stronger group or the straight cell itself can be
// taken.
func diagonalFirst(g *game.Grid, from game.Position, n int) []game.Position {
	var res []game.Position
	for _, d := range diagonals {
		if to := from.Add(d[0], d[1]); g.InBounds(to) {
			res = append(res, to)
		}
	}
	for i, s := range straights {
		to := from.Add(s[0], s[1])
		if !g.InBounds(to) {
			continue
		}
		left := g.Cell(from.Add(diagonals[i][0], diagonals[i][1])).Count
		right := g.Cell(from.Add(diagonals[(i+1)%4][0], diagonals[(i+1)%4][1])).Count
		if left > n || right > n || g.Cell(to).Count <= n {
			res = append(res, to)
		}
	}
	return res
}

// objectiveFirst orders neighbors as winnable occupied cells, then empty
// cells, then cells held by a stronger group.
func objectiveFirst(g *game.Grid, from game.Position, n int) []game.Position {
	var winnable, empty, losing []game.Position
	for _, to := range g.Neighbors(from, true) {
		switch occupants := g.Cell(to).Count; {
		case occupants == 0:
			empty = append(empty, to)
		case occupants <= n:
			winnable = append(winnable, to)
		default:
			losing = append(losing, to)
		}
	}
	return append(append(winnable, empty...), losing...)
}
