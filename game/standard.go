package game

import "github.com/samber/lo"

// StandardRules enforces the rules of a regular game.
type StandardRules struct {
	// MaxMoves bounds the number of moves in one batch, 0 for no bound.
	MaxMoves int
}

func NewStandardRules() *StandardRules {
	return &StandardRules{}
}

// CheckBatch reports the first rule the batch breaks.
func (sr *StandardRules) CheckBatch(g *Grid, faction Kind, moves []Move) error {
	if !faction.IsFaction() {
		return Errorf(CodeIncorrectSpecies, "%v cannot move", faction)
	}
	if len(moves) == 0 {
		return Errorf(CodeInvalidMove, "%v must move at least once", faction)
	}
	if sr.MaxMoves > 0 && len(moves) > sr.MaxMoves {
		return Errorf(CodeInvalidMove, "%d moves exceed the limit of %d", len(moves), sr.MaxMoves)
	}

	for _, m := range moves {
		switch {
		case !g.InBounds(m.From) || !g.InBounds(m.To):
			return Errorf(CodeOutOfBounds, "move %v leaves the %dx%d grid", m, g.rows, g.cols)
		case m.Count <= 0:
			return Errorf(CodeInvalidMove, "move %v must carry at least one unit", m)
		case g.Owner(m.From) != faction:
			return Errorf(CodeInvalidMove, "move %v starts from a cell held by %v", m, g.Owner(m.From))
		case !Adjacent(m.From, m.To):
			return Errorf(CodeInvalidMove, "move %v is not between adjacent cells", m)
		}
	}

	sources := lo.Uniq(lo.Map(moves, func(m Move, _ int) Position { return m.From }))
	for _, m := range moves {
		if lo.Contains(sources, m.To) {
			return Errorf(CodeInvalidMove, "cell %v is both a source and a destination", m.To)
		}
	}

	outgoing := lo.GroupBy(moves, func(m Move) Position { return m.From })
	for _, p := range sources {
		total := lo.SumBy(outgoing[p], func(m Move) int { return m.Count })
		if available := g.Population(p, faction); total > available {
			return Errorf(CodeInvalidMove, "%d units leave %v which holds %d", total, p, available)
		}
	}
	return nil
}
