package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wricardo/gridpath/maze/grid"
	"github.com/wricardo/gridpath/maze/mazetest"
	"github.com/wricardo/gridpath/maze/pathset"
	"github.com/wricardo/gridpath/maze/puzzle"
	"github.com/wricardo/gridpath/maze/search"
)

func intPtr(v int) *int { return &v }

func facingPuzzle(fixture string) *puzzle.Puzzle {
	return &puzzle.Puzzle{
		Name:        "facing",
		Description: "facing puzzle",
		Movement:    puzzle.MovementFacing,
		Layout:      mazetest.Rows(fixture),
		Facing:      "east",
	}
}

func walkerPuzzle(fixture string) *puzzle.Puzzle {
	return &puzzle.Puzzle{
		Name:            "walker",
		Description:     "walker puzzle",
		Movement:        puzzle.MovementWalker,
		Layout:          mazetest.Rows(fixture),
		CheatBudget:     2,
		SavingThreshold: 20,
	}
}

func dropsPuzzle() *puzzle.Puzzle {
	return &puzzle.Puzzle{
		Name:        "drops",
		Description: "drops puzzle",
		Movement:    puzzle.MovementWalker,
		Width:       mazetest.DropsSize,
		Height:      mazetest.DropsSize,
		Obstacles:   mazetest.Rows(mazetest.Drops),
		DropCount:   intPtr(mazetest.DropsInitial),
	}
}

func TestSolver_ReindeerMazes(t *testing.T) {
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
				s, err := New(facingPuzzle(test.fixture), WithFrontier(kind))
				require.NoError(t, err)
				assert.Equal(t, kind, s.Frontier())

				cost, ok, err := s.MinCost()
				require.NoError(t, err)
				require.True(t, ok)
				assert.Equal(t, test.wantCost, cost)

				cells, err := s.OptimalCells()
				require.NoError(t, err)
				assert.Equal(t, test.wantCells, cells.Len())

				symmetric, err := s.Symmetric()
				require.NoError(t, err)
				assert.True(t, symmetric)

				stats, err := s.Stats()
				require.NoError(t, err)
				assert.Positive(t, stats.Expanded)
			})
		}
	}
}

func TestSolver_Path(t *testing.T) {
	s, err := New(facingPuzzle(mazetest.Reindeer))
	require.NoError(t, err)

	path, err := s.Path()
	require.NoError(t, err)
	start, _ := path.Start()
	end, _ := path.End()
	assert.Equal(t, s.Board().Start, start)
	assert.Equal(t, s.Board().Goal, end)

	cells, err := s.OptimalCells()
	require.NoError(t, err)
	for i, p := range path {
		assert.True(t, cells.Has(p), "path cell %s not optimal", p)
		if i > 0 {
			assert.Equal(t, 1, path[i-1].Manhattan(p))
		}
	}
}

func TestSolver_Shortcuts(t *testing.T) {
	s, err := New(walkerPuzzle(mazetest.Racetrack))
	require.NoError(t, err)

	report, err := s.Shortcuts(-1, -1)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Budget)
	assert.Equal(t, mazetest.RacetrackSteps, report.Steps)
	assert.Equal(t, mazetest.RacetrackSavings, report.Histogram)
	assert.Equal(t, 5, report.AtLeast)

	report, err = s.Shortcuts(20, 70)
	require.NoError(t, err)
	assert.Equal(t, 41, report.AtLeast)
}

func TestSolver_Cutoff(t *testing.T) {
	s, err := New(dropsPuzzle())
	require.NoError(t, err)

	cost, ok, err := s.MinCost()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, mazetest.DropsSteps, cost)

	cutoff, found, err := s.Cutoff()
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, mazetest.DropsCutoffIdx, cutoff.Index)
	assert.Equal(t, grid.Pos(6, 1), cutoff.Position)

	layoutSolver, err := New(facingPuzzle(mazetest.Reindeer))
	require.NoError(t, err)
	_, _, err = layoutSolver.Cutoff()
	assert.ErrorIs(t, err, ErrNoDrops)
}

func TestSolver_Unreachable(t *testing.T) {
	p := walkerPuzzle("S.#\n###\n#.E")
	s, err := New(p)
	require.NoError(t, err)

	_, ok, err := s.MinCost()
	require.NoError(t, err)
	assert.False(t, ok)

	path, err := s.Path()
	require.NoError(t, err)
	assert.Nil(t, path)

	cells, err := s.OptimalCells()
	require.NoError(t, err)
	assert.False(t, cells.Reachable)

	_, err = s.Shortcuts(2, 1)
	assert.ErrorIs(t, err, search.ErrUnreachable)

	symmetric, err := s.Symmetric()
	require.NoError(t, err)
	assert.True(t, symmetric)
}

func TestSolver_Render(t *testing.T) {
	s, err := New(facingPuzzle("#####\n#S.E#\n#####"))
	require.NoError(t, err)

	cells, err := s.OptimalCells()
	require.NoError(t, err)
	rows := s.Render(pathset.Sorted(cells.Cells))
	assert.Equal(t, []string{"#####", "#OOO#", "#####"}, rows)
}

func TestNew_Errors(t *testing.T) {
	_, err := New(&puzzle.Puzzle{Name: "x"})
	assert.Error(t, err)

	_, err = NewFromBoard(nil)
	assert.Error(t, err)
}
