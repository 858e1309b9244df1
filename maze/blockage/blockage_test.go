package blockage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wricardo/gridpath/maze/grid"
	"github.com/wricardo/gridpath/maze/mazetest"
)

func dropsField() *Field {
	return &Field{
		Width:  mazetest.DropsSize,
		Height: mazetest.DropsSize,
		Drops:  mazetest.DropPositions(),
		Start:  grid.Pos(0, 0),
		Goal:   grid.Pos(mazetest.DropsSize-1, mazetest.DropsSize-1),
	}
}

func TestField_Steps(t *testing.T) {
	f := dropsField()

	steps, ok, err := f.Steps(mazetest.DropsInitial)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, mazetest.DropsSteps, steps)

	steps, ok, err = f.Steps(0)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 12, steps)

	_, ok, err = f.Steps(len(f.Drops))
	require.NoError(t, err)
	assert.False(t, ok)

	_, _, err = f.Steps(len(f.Drops) + 1)
	assert.ErrorIs(t, err, grid.ErrConfiguration)
}

func TestFirstCutoff_Drops(t *testing.T) {
	cutoff, found, err := FirstCutoff(mazetest.DropsSize, mazetest.DropsSize, mazetest.DropPositions(), mazetest.DropsInitial)
	require.NoError(t, err)
	require.True(t, found)

	assert.Equal(t, mazetest.DropsCutoffIdx, cutoff.Index)
	assert.Equal(t, grid.Pos(6, 1), cutoff.Position)
	assert.Positive(t, cutoff.Steps)
	assert.Less(t, cutoff.Probes, len(mazetest.DropPositions()))
}

func TestFirstCutoff_MatchesLinearScan(t *testing.T) {
	f := dropsField()
	want := -1
	for n := 1; n <= len(f.Drops); n++ {
		_, ok, err := f.Steps(n)
		require.NoError(t, err)
		if !ok {
			want = n - 1
			break
		}
	}
	require.NotEqual(t, -1, want)

	for initial := 0; initial <= len(f.Drops); initial++ {
		cutoff, found, err := f.FirstCutoff(initial)
		require.NoError(t, err, "initial %d", initial)
		require.True(t, found, "initial %d", initial)
		assert.Equal(t, want, cutoff.Index, "initial %d", initial)

		steps, ok, err := f.Steps(cutoff.Index)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, steps, cutoff.Steps)
	}
}

func TestFirstCutoff_NeverBlocked(t *testing.T) {
	drops := []grid.Position{grid.Pos(1, 1), grid.Pos(3, 3)}
	cutoff, found, err := FirstCutoff(5, 5, drops, 0)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Zero(t, cutoff.Index)
}

func TestFirstCutoff_DropOnStart(t *testing.T) {
	drops := []grid.Position{grid.Pos(1, 1), grid.Pos(0, 0)}
	cutoff, found, err := FirstCutoff(3, 3, drops, 0)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, 1, cutoff.Index)
	assert.Equal(t, grid.Pos(0, 0), cutoff.Position)
}

func TestFirstCutoff_Errors(t *testing.T) {
	tests := []struct {
		name    string
		width   int
		drops   []grid.Position
		initial int
	}{
		{"negative initial", 3, nil, -1},
		{"initial past end", 3, []grid.Position{grid.Pos(1, 1)}, 2},
		{"drop out of bounds", 3, []grid.Position{grid.Pos(5, 5)}, 0},
		{"bad bounds", 0, nil, 0},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, _, err := FirstCutoff(test.width, 3, test.drops, test.initial)
			assert.ErrorIs(t, err, grid.ErrConfiguration)
		})
	}
}
