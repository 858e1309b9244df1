package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Markers(t *testing.T) {
	layout, err := Parse([]string{
		"#####",
		"#S..#",
		"#.#E#",
		"#####",
	}, DefaultLegend)
	require.NoError(t, err)

	assert.Equal(t, 5, layout.Grid.Width())
	assert.Equal(t, 4, layout.Grid.Height())
	assert.Equal(t, 15, layout.Grid.BlockedCount())

	start, err := layout.Start()
	require.NoError(t, err)
	assert.Equal(t, Pos(1, 1), start)

	end, err := layout.End()
	require.NoError(t, err)
	assert.Equal(t, Pos(3, 2), end)

	assert.True(t, layout.Grid.Open(start))
	assert.True(t, layout.Grid.Open(end))
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		rows []string
	}{
		{"empty", nil},
		{"blank only", []string{"", " "}},
		{"ragged", []string{"###", "#S", "###"}},
		{"unknown char", []string{"#X#"}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := Parse(test.rows, DefaultLegend)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrConfiguration)
		})
	}
}

func TestLayout_MarkerCount(t *testing.T) {
	layout, err := ParseString("S.S\n...")
	require.NoError(t, err)

	_, err = layout.Start()
	assert.ErrorIs(t, err, ErrConfiguration)
	_, err = layout.End()
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestRender(t *testing.T) {
	layout, err := ParseString("#...\n#.#.\n....")
	require.NoError(t, err)

	rows := Render(layout.Grid, DefaultLegend, 'O', func(p Position) bool {
		return p.Y == 2
	})
	assert.Equal(t, []string{"#...", "#.#.", "OOOO"}, rows)
}
