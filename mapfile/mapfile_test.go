package mapfile

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"vampires/game"

	"github.com/stretchr/testify/require"
)

const duelXML = `<?xml version="1.0" encoding="utf-8"?>
<Map Rows="3" Columns="4">
  <Werewolves X="3" Y="2" Count="5"/>
  <Humans X="1" Y="1" Count="2"/>
  <Vampires X="0" Y="0" Count="5"/>
</Map>`

const duelYAML = `rows: 3
columns: 4
humans:
  - {x: 1, y: 1, count: 2}
vampires:
  - {x: 0, y: 0, count: 5}
werewolves:
  - {x: 3, y: 2, count: 5}
`

func TestParse(t *testing.T) {
	want := Map{Rows: 3, Cols: 4, Updates: []game.Update{
		{X: 0, Y: 0, Vampires: 5},
		{X: 1, Y: 1, Humans: 2},
		{X: 3, Y: 2, Werewolves: 5},
	}}

	t.Run("reading the xml format", func(t *testing.T) {
		m, err := ParseXML(strings.NewReader(duelXML))
		require.NoError(t, err)
		require.Equal(t, want, m)
	})

	t.Run("reading the yaml format", func(t *testing.T) {
		m, err := ParseYAML(strings.NewReader(duelYAML))
		require.NoError(t, err)
		require.Equal(t, want, m)
	})

	t.Run("both formats build the same grid", func(t *testing.T) {
		x, err := ParseXML(strings.NewReader(duelXML))
		require.NoError(t, err)
		y, err := ParseYAML(strings.NewReader(duelYAML))
		require.NoError(t, err)
		gx, err := x.Grid()
		require.NoError(t, err)
		gy, err := y.Grid()
		require.NoError(t, err)
		require.Equal(t, gx.Hash(), gy.Hash())
		require.Equal(t, 5, gx.Population(game.Position{X: 3, Y: 2}, game.Werewolf))
	})
}

func TestParseErrors(t *testing.T) {
	for name, tc := range map[string]struct {
		xml  string
		want error
	}{
		"malformed document": {`<Map Rows="3"`, game.ErrMapCorrupted},
		"unknown group":      {`<Map Rows="3" Columns="3"><Ghosts X="0" Y="0" Count="1"/></Map>`, game.ErrIncorrectSpecies},
		"flat map":           {`<Map Rows="1" Columns="3"></Map>`, game.ErrInvalidDimensions},
		"empty group":        {`<Map Rows="3" Columns="3"><Humans X="0" Y="0" Count="0"/></Map>`, game.ErrMapCorrupted},
		"outside the map":    {`<Map Rows="3" Columns="3"><Humans X="3" Y="0" Count="1"/></Map>`, game.ErrOutOfBounds},
		"shared cell": {`<Map Rows="3" Columns="3"><Humans X="1" Y="1" Count="1"/>` +
			`<Vampires X="1" Y="1" Count="2"/></Map>`, game.ErrMapCorrupted},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ParseXML(strings.NewReader(tc.xml))
			require.True(t, errors.Is(err, tc.want), "got %v", err)
		})
	}

	t.Run("unknown yaml keys", func(t *testing.T) {
		_, err := ParseYAML(strings.NewReader("rows: 3\ncolumns: 3\nghosts: []\n"))
		require.True(t, errors.Is(err, game.ErrMapCorrupted))
	})

	t.Run("overpopulated map", func(t *testing.T) {
		m, err := ParseYAML(strings.NewReader(`rows: 4
columns: 4
humans:
  - {x: 1, y: 1, count: 200}
vampires:
  - {x: 0, y: 0, count: 28}
werewolves:
  - {x: 3, y: 3, count: 28}
`))
		require.NoError(t, err, "Population is only checked when building the grid")
		_, err = m.Grid()
		require.True(t, errors.Is(err, game.ErrOverpopulated))
	})
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		return path
	}

	t.Run("dispatching on the extension", func(t *testing.T) {
		x, err := Load(write("duel.xml", duelXML))
		require.NoError(t, err)
		y, err := Load(write("duel.yml", duelYAML))
		require.NoError(t, err)
		require.Equal(t, x, y)
	})

	t.Run("rejecting other formats", func(t *testing.T) {
		_, err := Load(write("duel.json", "{}"))
		require.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(dir, "nowhere.xml"))
		require.True(t, errors.Is(err, os.ErrNotExist))
	})
}

func TestDefault(t *testing.T) {
	g, err := Default().Grid()
	require.NoError(t, err)
	require.Equal(t, 5, g.Rows())
	require.Equal(t, 10, g.Cols())
	require.Equal(t, 4, g.Total(game.Vampire))
	require.Equal(t, 4, g.Total(game.Werewolf))
	require.Equal(t, 11, g.Total(game.Human))
}
