package game

import (
	"fmt"

	"github.com/samber/lo"
)

// Move relocates Count units from one cell to an adjacent one.
type Move struct {
	From  Position
	Count int
	To    Position
}

func (m Move) String() string {
	return fmt.Sprintf("%v-%d->%v", m.From, m.Count, m.To)
}

// check validates a single move of faction against g.
func (m Move) check(g *Grid, faction Kind) error {
	switch {
	case !g.InBounds(m.From) || !g.InBounds(m.To):
		return Errorf(CodeOutOfBounds, "move %v leaves the %dx%d grid", m, g.rows, g.cols)
	case Distance(m.From, m.To) > 1:
		return Errorf(CodeInvalidMove, "move %v is not between adjacent cells", m)
	case m.Count <= 0:
		return Errorf(CodeInvalidMove, "move %v must carry at least one unit", m)
	case g.Owner(m.From) != faction:
		return Errorf(CodeInvalidMove, "move %v starts from a cell held by %v, not %v", m, g.Owner(m.From), faction)
	case m.Count > g.Population(m.From, faction):
		return Errorf(CodeInvalidMove, "move %v exceeds the %d units at source", m, g.Population(m.From, faction))
	}
	return nil
}

// ApplyMove returns the grid after one move. The input grid is never
// modified. Entering a cell held by another kind triggers a battle resolved by r.
func ApplyMove(g *Grid, m Move, r Resolver) (*Grid, error) {
	faction := g.Owner(m.From)
	if !faction.IsFaction() {
		return nil, Errorf(CodeIncorrectSpecies, "move %v starts from a cell held by %v", m, faction)
	}
	if err := m.check(g, faction); err != nil {
		return nil, err
	}

	child := g.Clone()
	src := child.Cell(m.From)
	src.Count -= m.Count
	child.set(m.From, src)
	if err := child.arrive(m.To, faction, m.Count, r); err != nil {
		return nil, err
	}
	return child, nil
}

// arrive merges n units of faction into the cell at p, fighting its occupants
// when they are of another kind.
func (g *Grid) arrive(p Position, faction Kind, n int, r Resolver) error {
	dst := g.Cell(p)
	if dst.Empty() || dst.Kind == faction {
		g.set(p, Cell{Kind: faction, Count: dst.Count + n})
		return nil
	}
	outcome, err := r.Resolve(Battle{Attacker: faction, Attackers: n, Defender: dst.Kind, Defenders: dst.Count})
	if err != nil {
		return err
	}
	g.set(p, outcome.Cell())
	return nil
}

// ApplyBatch applies every move of one faction's turn at once: all sources are
// emptied first, then arrivals on each destination are summed and fight at
// most one battle. It returns the new grid and the cells that changed, in
// row-major order. The batch is expected to have passed the rule checker.
func ApplyBatch(g *Grid, faction Kind, moves []Move, r Resolver) (*Grid, []Update, error) {
	if !faction.IsFaction() {
		return nil, nil, Errorf(CodeIncorrectSpecies, "%v cannot move", faction)
	}
	if len(moves) == 0 {
		return nil, nil, Errorf(CodeInvalidMove, "empty batch for %v", faction)
	}

	child := g.Clone()
	for _, m := range moves {
		if err := m.check(child, faction); err != nil {
			return nil, nil, err
		}
		src := child.Cell(m.From)
		src.Count -= m.Count
		child.set(m.From, src)
	}

	arrivals := lo.GroupBy(moves, func(m Move) Position { return m.To })
	destinations := lo.Uniq(lo.Map(moves, func(m Move, _ int) Position { return m.To }))
	for _, p := range destinations {
		n := lo.SumBy(arrivals[p], func(m Move) int { return m.Count })
		if err := child.arrive(p, faction, n, r); err != nil {
			return nil, nil, err
		}
	}

	return child, diff(g, child), nil
}

// diff lists the cells of after that differ from before.
func diff(before, after *Grid) []Update {
	var updates []Update
	for idx, c := range after.cells {
		if before.cells[idx] != c {
			updates = append(updates, UpdateFor(after.position(idx), c))
		}
	}
	return updates
}
