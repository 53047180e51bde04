// Package mapfile reads starting maps. The XML format is the one of the game
// server:
//
//	<Map Rows="5" Columns="10">
//	  <Humans X="2" Y="2" Count="4"/>
//	  <Vampires X="4" Y="4" Count="4"/>
//	  <Werewolves X="4" Y="0" Count="4"/>
//	</Map>
//
// YAML files carry the same content with lower case keys.
package mapfile

import (
	"cmp"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"vampires/game"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

// Map is a starting position: dimensions plus one update per populated cell.
type Map struct {
	Rows    int
	Cols    int
	Updates []game.Update
}

// Grid builds the starting grid, rejecting overpopulated maps.
func (m Map) Grid() (*game.Grid, error) {
	return game.FromUpdates(m.Rows, m.Cols, m.Updates)
}

// Load reads a map file, picking the format from its extension.
func Load(path string) (Map, error) {
	f, err := os.Open(path)
	if err != nil {
		return Map{}, fmt.Errorf("open map: %w", err)
	}
	defer f.Close()

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".xml":
		return ParseXML(f)
	case ".yaml", ".yml":
		return ParseYAML(f)
	default:
		return Map{}, fmt.Errorf("map %s: unsupported format %q", path, ext)
	}
}

type xmlMap struct {
	XMLName xml.Name   `xml:"Map"`
	Rows    int        `xml:"Rows,attr"`
	Columns int        `xml:"Columns,attr"`
	Groups  []xmlGroup `xml:",any"`
}

type xmlGroup struct {
	XMLName xml.Name
	X       int `xml:"X,attr"`
	Y       int `xml:"Y,attr"`
	Count   int `xml:"Count,attr"`
}

var xmlTags = map[string]game.Kind{
	"Humans":     game.Human,
	"Vampires":   game.Vampire,
	"Werewolves": game.Werewolf,
}

func ParseXML(r io.Reader) (Map, error) {
	var doc xmlMap
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return Map{}, game.Wrap(game.CodeMapCorrupted, "decode xml map", err)
	}
	groups := make([]group, len(doc.Groups))
	for i, g := range doc.Groups {
		kind, ok := xmlTags[g.XMLName.Local]
		if !ok {
			return Map{}, game.Wrap(game.CodeIncorrectSpecies, "xml map",
				fmt.Errorf("unknown group <%s>", g.XMLName.Local))
		}
		groups[i] = group{Kind: kind, X: g.X, Y: g.Y, Count: g.Count}
	}
	return build(doc.Rows, doc.Columns, groups)
}

type yamlMap struct {
	Rows       int         `yaml:"rows"`
	Columns    int         `yaml:"columns"`
	Humans     []yamlGroup `yaml:"humans"`
	Vampires   []yamlGroup `yaml:"vampires"`
	Werewolves []yamlGroup `yaml:"werewolves"`
}

type yamlGroup struct {
	X     int `yaml:"x"`
	Y     int `yaml:"y"`
	Count int `yaml:"count"`
}

func ParseYAML(r io.Reader) (Map, error) {
	var doc yamlMap
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&doc); err != nil {
		return Map{}, game.Wrap(game.CodeMapCorrupted, "decode yaml map", err)
	}
	var groups []group
	for kind, list := range map[game.Kind][]yamlGroup{
		game.Human:    doc.Humans,
		game.Vampire:  doc.Vampires,
		game.Werewolf: doc.Werewolves,
	} {
		for _, g := range list {
			groups = append(groups, group{Kind: kind, X: g.X, Y: g.Y, Count: g.Count})
		}
	}
	return build(doc.Rows, doc.Columns, groups)
}

type group struct {
	Kind  game.Kind
	X, Y  int
	Count int
}

// build checks the groups of a decoded map and turns them into updates in
// row-major order.
func build(rows, cols int, groups []group) (Map, error) {
	if rows <= 1 || cols <= 1 {
		return Map{}, game.Errorf(game.CodeInvalidDimensions, "map is %dx%d", rows, cols)
	}
	for _, g := range groups {
		if g.Count <= 0 {
			return Map{}, game.Errorf(game.CodeMapCorrupted,
				"group of %v at (%d,%d) has count %d", g.Kind, g.X, g.Y, g.Count)
		}
		if g.X < 0 || g.X >= cols || g.Y < 0 || g.Y >= rows {
			return Map{}, game.Errorf(game.CodeOutOfBounds,
				"group of %v at (%d,%d) is outside the %dx%d map", g.Kind, g.X, g.Y, rows, cols)
		}
	}
	if dup := lo.FindDuplicatesBy(groups, func(g group) [2]int { return [2]int{g.X, g.Y} }); len(dup) > 0 {
		return Map{}, game.Errorf(game.CodeMapCorrupted, "several groups at (%d,%d)", dup[0].X, dup[0].Y)
	}

	updates := lo.Map(groups, func(g group, _ int) game.Update {
		return game.UpdateFor(game.Position{X: g.X, Y: g.Y}, game.Cell{Kind: g.Kind, Count: g.Count})
	})
	slices.SortFunc(updates, func(a, b game.Update) int {
		return cmp.Or(cmp.Compare(a.Y, b.Y), cmp.Compare(a.X, b.X))
	})
	return Map{Rows: rows, Cols: cols, Updates: updates}, nil
}

// Default is the map played when none is configured.
func Default() Map {
	groups := []group{
		{Kind: game.Werewolf, X: 4, Y: 0, Count: 4},
		{Kind: game.Human, X: 9, Y: 0, Count: 2},
		{Kind: game.Human, X: 4, Y: 1, Count: 1},
		{Kind: game.Human, X: 2, Y: 2, Count: 4},
		{Kind: game.Human, X: 9, Y: 2, Count: 1},
		{Kind: game.Human, X: 4, Y: 3, Count: 1},
		{Kind: game.Vampire, X: 4, Y: 4, Count: 4},
		{Kind: game.Human, X: 9, Y: 4, Count: 2},
	}
	m, err := build(5, 10, groups)
	if err != nil {
		panic(err)
	}
	return m
}
