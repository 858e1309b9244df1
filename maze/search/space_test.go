package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wricardo/gridpath/maze/grid"
)

func TestFacingSpace_Successors(t *testing.T) {
	g, err := grid.New(3, 3, []grid.Position{grid.Pos(2, 1)})
	require.NoError(t, err)
	space, err := NewFacingSpace(g, 1, 1000)
	require.NoError(t, err)

	tests := []struct {
		name string
		from State
		want []Successor[State]
	}{
		{
			name: "open ahead",
			from: State{Pos: grid.Pos(1, 1), Facing: grid.North},
			want: []Successor[State]{
				{Move: StepForward, State: State{Pos: grid.Pos(1, 0), Facing: grid.North}, Cost: 1},
				{Move: TurnLeft, State: State{Pos: grid.Pos(1, 1), Facing: grid.West}, Cost: 1000},
				{Move: TurnRight, State: State{Pos: grid.Pos(1, 1), Facing: grid.East}, Cost: 1000},
			},
		},
		{
			name: "blocked ahead",
			from: State{Pos: grid.Pos(1, 1), Facing: grid.East},
			want: []Successor[State]{
				{Move: TurnLeft, State: State{Pos: grid.Pos(1, 1), Facing: grid.North}, Cost: 1000},
				{Move: TurnRight, State: State{Pos: grid.Pos(1, 1), Facing: grid.South}, Cost: 1000},
			},
		},
		{
			name: "edge ahead",
			from: State{Pos: grid.Pos(0, 0), Facing: grid.West},
			want: []Successor[State]{
				{Move: TurnLeft, State: State{Pos: grid.Pos(0, 0), Facing: grid.South}, Cost: 1000},
				{Move: TurnRight, State: State{Pos: grid.Pos(0, 0), Facing: grid.North}, Cost: 1000},
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := space.Successors(test.from)
			assert.Equal(t, test.want, got)
			assert.Equal(t, got, space.Successors(test.from), "successors must be deterministic")
		})
	}
}

func TestFacingSpace_ReverseInvertsEdges(t *testing.T) {
	g, err := grid.New(4, 4, []grid.Position{grid.Pos(1, 2), grid.Pos(3, 0)})
	require.NoError(t, err)
	space, err := NewFacingSpace(g, 2, 7)
	require.NoError(t, err)
	reverse := space.Reverse()

	type edge struct {
		from, to State
		cost     int
	}
	forwardEdges := map[edge]bool{}
	reverseEdges := map[edge]bool{}
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			p := grid.Pos(x, y)
			if !g.Open(p) {
				continue
			}
			for _, s := range StatesAt(p) {
				for _, next := range space.Successors(s) {
					forwardEdges[edge{s, next.State, next.Cost}] = true
				}
				for _, prev := range reverse.Successors(s) {
					reverseEdges[edge{prev.State, s, prev.Cost}] = true
				}
			}
		}
	}
	assert.Equal(t, forwardEdges, reverseEdges)

	twice, ok := reverse.(Reversible[State])
	require.True(t, ok)
	assert.False(t, twice.Reverse().(*FacingSpace).Reversed())
}

func TestFacingSpace_Validation(t *testing.T) {
	g, err := grid.New(2, 2, nil)
	require.NoError(t, err)

	_, err = NewFacingSpace(g, -1, 1000)
	assert.ErrorIs(t, err, ErrConfiguration)
	_, err = NewFacingSpace(g, 1, -5)
	assert.ErrorIs(t, err, ErrConfiguration)
	_, err = NewFacingSpace(nil, 1, 1)
	assert.ErrorIs(t, err, ErrConfiguration)

	space, err := NewFacingSpace(g, 3, 9)
	require.NoError(t, err)
	assert.Equal(t, 3, space.ForwardCost())
	assert.Equal(t, 9, space.TurnCost())
	assert.Same(t, g, space.Grid())
}

func TestWalkerSpace_Successors(t *testing.T) {
	g, err := grid.New(3, 3, []grid.Position{grid.Pos(1, 0)})
	require.NoError(t, err)
	space, err := NewWalkerSpace(g, 1)
	require.NoError(t, err)

	got := space.Successors(grid.Pos(1, 1))
	want := []Successor[grid.Position]{
		{Move: StepForward, State: grid.Pos(2, 1), Cost: 1},
		{Move: StepForward, State: grid.Pos(1, 2), Cost: 1},
		{Move: StepForward, State: grid.Pos(0, 1), Cost: 1},
	}
	assert.Equal(t, want, got)

	corner := space.Successors(grid.Pos(0, 0))
	assert.Equal(t, []Successor[grid.Position]{{Move: StepForward, State: grid.Pos(0, 1), Cost: 1}}, corner)
	assert.Same(t, space, space.Reverse())
}
