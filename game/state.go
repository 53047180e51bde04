package game

import (
	"encoding/binary"
	"iter"

	"github.com/cespare/xxhash"
	"github.com/samber/lo"
)

// Cell is the population of one grid square. Count is zero iff Kind is Nobody.
type Cell struct {
	Kind  Kind
	Count int
}

// Empty reports whether nobody lives in the cell.
func (c Cell) Empty() bool {
	return c.Count == 0
}

// Update overwrites the population vector of one cell.
type Update struct {
	X          int
	Y          int
	Humans     int
	Vampires   int
	Werewolves int
}

// Position of the updated cell.
func (u Update) Position() Position {
	return Position{X: u.X, Y: u.Y}
}

// Total population carried by the update.
func (u Update) Total() int {
	return u.Humans + u.Vampires + u.Werewolves
}

// cell converts the population vector, rejecting vectors with more than one
// populated kind or negative counts.
func (u Update) cell() (Cell, error) {
	if u.Humans < 0 || u.Vampires < 0 || u.Werewolves < 0 {
		return Cell{}, Errorf(CodeMapCorrupted, "negative population at %v", u.Position())
	}
	populated := lo.Filter([]Cell{{Human, u.Humans}, {Vampire, u.Vampires}, {Werewolf, u.Werewolves}},
		func(c Cell, _ int) bool { return c.Count > 0 })
	switch len(populated) {
	case 0:
		return Cell{}, nil
	case 1:
		return populated[0], nil
	default:
		return Cell{}, Errorf(CodeMapCorrupted, "more than one species at %v: %+v", u.Position(), u)
	}
}

// UpdateFor builds the update describing cell c at position p.
func UpdateFor(p Position, c Cell) Update {
	u := Update{X: p.X, Y: p.Y}
	switch c.Kind {
	case Human:
		u.Humans = c.Count
	case Vampire:
		u.Vampires = c.Count
	case Werewolf:
		u.Werewolves = c.Count
	}
	return u
}

// Grid is a rectangular board stored as one flat row-major slice so that
// cloning is a single copy.
type Grid struct {
	rows  int
	cols  int
	cells []Cell
}

// NewGrid allocates an empty rows × cols grid.
func NewGrid(rows, cols int) (*Grid, error) {
	if rows <= 1 || cols <= 1 {
		return nil, Errorf(CodeInvalidDimensions, "grid must be at least 2x2, got %dx%d", rows, cols)
	}
	return &Grid{
		rows:  rows,
		cols:  cols,
		cells: make([]Cell, rows*cols),
	}, nil
}

// FromUpdates builds the initial grid of a game. Overpopulated maps are
// rejected before any storage is allocated.
func FromUpdates(rows, cols int, updates []Update) (*Grid, error) {
	total := lo.SumBy(updates, func(u Update) int { return u.Total() })
	if total >= MaxPopulation {
		return nil, Errorf(CodeOverpopulated, "total population %d reaches the limit of %d", total, MaxPopulation)
	}
	g, err := NewGrid(rows, cols)
	if err != nil {
		return nil, err
	}
	if err := g.ApplyUpdates(updates); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Grid) Rows() int { return g.rows }
func (g *Grid) Cols() int { return g.cols }

// InBounds reports whether p addresses a cell of the grid.
func (g *Grid) InBounds(p Position) bool {
	return p.X >= 0 && p.X < g.cols && p.Y >= 0 && p.Y < g.rows
}

func (g *Grid) index(p Position) int {
	return p.Y*g.cols + p.X
}

func (g *Grid) position(idx int) Position {
	return Position{X: idx % g.cols, Y: idx / g.cols}
}

// ApplyUpdates overwrites the named cells. The whole batch is validated first
// so that a bad update leaves the grid untouched.
func (g *Grid) ApplyUpdates(updates []Update) error {
	cells := make([]Cell, len(updates))
	for i, u := range updates {
		if !g.InBounds(u.Position()) {
			return Errorf(CodeOutOfBounds, "update at %v outside %dx%d grid", u.Position(), g.rows, g.cols)
		}
		c, err := u.cell()
		if err != nil {
			return err
		}
		cells[i] = c
	}
	for i, u := range updates {
		g.cells[g.index(u.Position())] = cells[i]
	}
	return nil
}

// Clone returns an independent copy of the grid.
func (g *Grid) Clone() *Grid {
	cells := make([]Cell, len(g.cells))
	copy(cells, g.cells)
	return &Grid{rows: g.rows, cols: g.cols, cells: cells}
}

// Cell returns the population at p. Out of bounds positions read as empty.
func (g *Grid) Cell(p Position) Cell {
	if !g.InBounds(p) {
		return Cell{}
	}
	return g.cells[g.index(p)]
}

func (g *Grid) set(p Position, c Cell) {
	if c.Count <= 0 {
		c = Cell{}
	}
	g.cells[g.index(p)] = c
}

// Population returns how many units of kind k live at p.
func (g *Grid) Population(p Position, k Kind) int {
	c := g.Cell(p)
	if c.Kind != k {
		return 0
	}
	return c.Count
}

// Owner returns the kind living at p, Nobody for an empty cell.
func (g *Grid) Owner(p Position) Kind {
	return g.Cell(p).Kind
}

// Positions yields every cell populated by k with its count, in row-major
// order (y outer, x inner). Heuristics and move policies rely on this order
// for tie breaking.
func (g *Grid) Positions(k Kind) iter.Seq2[Position, int] {
	return func(yield func(Position, int) bool) {
		for idx, c := range g.cells {
			if c.Kind != k || c.Count == 0 {
				continue
			}
			if !yield(g.position(idx), c.Count) {
				return
			}
		}
	}
}

// First returns the first populated cell of kind k in row-major order.
func (g *Grid) First(k Kind) (Position, int, bool) {
	for p, n := range g.Positions(k) {
		return p, n, true
	}
	return Position{}, 0, false
}

// Total returns the population of kind k over the whole grid.
func (g *Grid) Total(k Kind) int {
	total := 0
	for _, n := range g.Positions(k) {
		total += n
	}
	return total
}

// TotalPopulation sums every kind over the grid.
func (g *Grid) TotalPopulation() int {
	return lo.SumBy(g.cells, func(c Cell) int { return c.Count })
}

// neighborOffsets lists the 8 directions plus the cell itself, x-major.
var neighborOffsets = [9][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 0}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// Neighbors returns the in-bounds cells adjacent to p, optionally including p
// itself, skipping any position listed in forbidden.
func (g *Grid) Neighbors(p Position, excludeSelf bool, forbidden ...Position) []Position {
	res := make([]Position, 0, len(neighborOffsets))
	for _, d := range neighborOffsets {
		if excludeSelf && d[0] == 0 && d[1] == 0 {
			continue
		}
		q := p.Add(d[0], d[1])
		if !g.InBounds(q) || lo.Contains(forbidden, q) {
			continue
		}
		res = append(res, q)
	}
	return res
}

// Terminal reports whether a faction has been wiped out and which faction
// won. The winner is Nobody when both factions are gone.
func (g *Grid) Terminal() (bool, Kind) {
	vampires, werewolves := g.Total(Vampire), g.Total(Werewolf)
	switch {
	case vampires == 0 && werewolves == 0:
		return true, Nobody
	case vampires == 0:
		return true, Werewolf
	case werewolves == 0:
		return true, Vampire
	default:
		return false, Nobody
	}
}

// Updates describes the full grid as one update per non-empty cell.
func (g *Grid) Updates() []Update {
	var updates []Update
	for idx, c := range g.cells {
		if c.Empty() {
			continue
		}
		updates = append(updates, UpdateFor(g.position(idx), c))
	}
	return updates
}

// Hash returns a 64-bit fingerprint of the grid contents.
func (g *Grid) Hash() uint64 {
	buf := make([]byte, 0, 8+len(g.cells)*3)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(g.rows))
	buf = binary.LittleEndian.AppendUint32(buf, uint32(g.cols))
	for _, c := range g.cells {
		buf = append(buf, byte(c.Kind))
		buf = binary.LittleEndian.AppendUint16(buf, uint16(c.Count))
	}
	return xxhash.Sum64(buf)
}
