package pathset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wricardo/gridpath/maze/grid"
	"github.com/wricardo/gridpath/maze/mazetest"
	"github.com/wricardo/gridpath/maze/search"
)

type setup struct {
	space *search.FacingSpace
	start search.State
	end   grid.Position
}

func newSetup(t *testing.T, fixture string) setup {
	t.Helper()
	layout, err := grid.ParseString(fixture)
	require.NoError(t, err)
	space, err := search.NewFacingSpace(layout.Grid, 1, 1000)
	require.NoError(t, err)
	start, err := layout.Start()
	require.NoError(t, err)
	end, err := layout.End()
	require.NoError(t, err)
	return setup{space: space, start: search.State{Pos: start, Facing: grid.East}, end: end}
}

func (s setup) cells(t *testing.T, kind search.FrontierKind) *Report[grid.Position] {
	t.Helper()
	forward, err := search.Run[search.State](s.space, []search.State{s.start}, search.AtPosition(s.end), search.WithFrontier(kind))
	require.NoError(t, err)
	report, err := Cells(forward, s.space.Reverse(), search.Cell, search.WithFrontier(kind))
	require.NoError(t, err)
	return report
}

func TestCells_ReferenceMazes(t *testing.T) {
	tests := []struct {
		name      string
		fixture   string
		wantCost  int
		wantCells int
	}{
		{"small", mazetest.Reindeer, mazetest.ReindeerCost, mazetest.ReindeerCells},
		{"large", mazetest.ReindeerLarge, mazetest.ReindeerLargeCost, mazetest.ReindeerLargeCells},
	}

	for _, test := range tests {
		for _, kind := range []search.FrontierKind{search.FrontierPriority, search.FrontierStack} {
			t.Run(test.name+"/"+kind.String(), func(t *testing.T) {
				s := newSetup(t, test.fixture)
				report := s.cells(t, kind)

				assert.True(t, report.Reachable)
				assert.Equal(t, test.wantCost, report.Cost)
				assert.Equal(t, test.wantCells, report.Len())
				assert.True(t, report.Has(s.start.Pos))
				assert.True(t, report.Has(s.end))
			})
		}
	}
}

func TestCells_MatchesDistanceSum(t *testing.T) {
	s := newSetup(t, mazetest.Reindeer)
	report := s.cells(t, search.FrontierPriority)

	// Independent exhaustive tables, no goal pruning.
	fromStart, err := search.Run[search.State](s.space, []search.State{s.start}, nil)
	require.NoError(t, err)
	toGoal, err := search.Run(s.space.Reverse(), search.StatesAt(s.end), nil)
	require.NoError(t, err)

	onPath := map[grid.Position]bool{}
	for state, df := range fromStart.Table() {
		dg, ok := toGoal.CostOf(state)
		if ok && df+dg == report.Cost {
			onPath[state.Pos] = true
		}
	}

	assert.Len(t, onPath, report.Len())
	for _, p := range Sorted(report.Cells) {
		assert.True(t, onPath[p], "cell %s not on any optimal path", p)
		assert.True(t, s.space.Grid().Open(p), "cell %s is not open", p)
	}
}

func TestCells_SinglePath(t *testing.T) {
	s := newSetup(t, "#######\n#S...E#\n#######")
	report := s.cells(t, search.FrontierPriority)

	require.True(t, report.Reachable)
	assert.Equal(t, 4, report.Cost)
	assert.Equal(t, []grid.Position{
		grid.Pos(1, 1), grid.Pos(2, 1), grid.Pos(3, 1), grid.Pos(4, 1), grid.Pos(5, 1),
	}, Sorted(report.Cells))
}

func TestCells_StartIsGoal(t *testing.T) {
	g, err := grid.New(3, 3, nil)
	require.NoError(t, err)
	space, err := search.NewFacingSpace(g, 1, 1000)
	require.NoError(t, err)
	start := search.State{Pos: grid.Pos(1, 1), Facing: grid.North}

	forward, err := search.Run[search.State](space, []search.State{start}, search.AtPosition(start.Pos))
	require.NoError(t, err)
	report, err := Cells(forward, space.Reverse(), search.Cell)
	require.NoError(t, err)

	assert.Zero(t, report.Cost)
	assert.Equal(t, []grid.Position{start.Pos}, Sorted(report.Cells))
}

func TestCells_Unreachable(t *testing.T) {
	s := newSetup(t, "S.#.E")
	report := s.cells(t, search.FrontierPriority)

	assert.False(t, report.Reachable)
	assert.Zero(t, report.Len())
}

func TestCells_WalkerSpace(t *testing.T) {
	g, err := grid.New(3, 3, []grid.Position{grid.Pos(1, 1)})
	require.NoError(t, err)
	space, err := search.NewWalkerSpace(g, 1)
	require.NoError(t, err)

	forward, err := search.Run[grid.Position](space, []grid.Position{grid.Pos(0, 0)}, search.Equals(grid.Pos(2, 2)))
	require.NoError(t, err)
	report, err := Cells(forward, space.Reverse(), func(p grid.Position) grid.Position { return p })
	require.NoError(t, err)

	assert.Equal(t, 4, report.Cost)
	assert.Equal(t, 8, report.Len(), "both ways around the pillar are optimal")
	assert.False(t, report.Has(grid.Pos(1, 1)))
}

func TestCells_NilInputs(t *testing.T) {
	s := newSetup(t, mazetest.Reindeer)
	forward, err := search.Run[search.State](s.space, []search.State{s.start}, search.AtPosition(s.end))
	require.NoError(t, err)

	_, err = Cells[search.State, grid.Position](nil, s.space.Reverse(), search.Cell)
	assert.ErrorIs(t, err, search.ErrConfiguration)
	_, err = Cells[search.State, grid.Position](forward, nil, search.Cell)
	assert.ErrorIs(t, err, search.ErrConfiguration)
	_, err = Cells[search.State, grid.Position](forward, s.space.Reverse(), nil)
	assert.ErrorIs(t, err, search.ErrConfiguration)
}
