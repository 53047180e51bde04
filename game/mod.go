package game

import (
	"fmt"
	"strings"
)

// MaxPopulation is the exclusive ceiling on a grid's total population.
const MaxPopulation = 256

// Kind identifies the population living in a cell.
type Kind int

const (
	Nobody Kind = iota
	Human
	Vampire
	Werewolf
)

var kindNames = map[Kind]string{
	Nobody:   "nobody",
	Human:    "human",
	Vampire:  "vampire",
	Werewolf: "werewolf",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// IsFaction reports whether k is one of the two competing sides.
func (k Kind) IsFaction() bool {
	return k == Vampire || k == Werewolf
}

// Enemy returns the opposing faction, or Nobody when k is not a faction.
func (k Kind) Enemy() Kind {
	switch k {
	case Vampire:
		return Werewolf
	case Werewolf:
		return Vampire
	default:
		return Nobody
	}
}

// ParseFaction reads a faction name as written in configs and map files.
func ParseFaction(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "vampire", "vampires", "v":
		return Vampire, nil
	case "werewolf", "werewolves", "w":
		return Werewolf, nil
	}
	return Nobody, Errorf(CodeIncorrectSpecies, "unknown faction %q", s)
}

// Position addresses a cell. X is the column, Y the row.
type Position struct {
	X int
	Y int
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Add offsets p by (dx, dy).
func (p Position) Add(dx, dy int) Position {
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// Evaluates the grid from the given faction's perspective. Positive values
// favor the faction; extinction returns ±ExtinctionScore.
type Evaluate func(g *Grid, faction Kind) float64
