// Package solver runs the search engine against a built puzzle board.
package solver

import (
	"errors"
	"fmt"

	"github.com/wricardo/gridpath/maze/blockage"
	"github.com/wricardo/gridpath/maze/grid"
	"github.com/wricardo/gridpath/maze/pathset"
	"github.com/wricardo/gridpath/maze/puzzle"
	"github.com/wricardo/gridpath/maze/search"
	"github.com/wricardo/gridpath/maze/shortcut"
)

// ErrNoDrops is returned by Cutoff for puzzles without pending obstacles.
var ErrNoDrops = errors.New("puzzle has no pending obstacles")

// Solver provides the queries a caller can run against one puzzle
type Solver interface {
	// Board and settings
	Board() *puzzle.Board
	Frontier() search.FrontierKind

	// Cost queries
	MinCost() (cost int, reachable bool, err error)
	Stats() (search.Stats, error)
	Symmetric() (bool, error)

	// Path queries
	Path() (grid.Path, error)
	OptimalCells() (*pathset.Report[grid.Position], error)
	Shortcuts(budget, threshold int) (*shortcut.Report, error)
	Cutoff() (blockage.Cutoff, bool, error)

	// Rendering
	Render(cells []grid.Position) []string
}

// PuzzleSolver implements Solver. Results of the forward search are cached;
// a PuzzleSolver is not safe for concurrent use.
type PuzzleSolver struct {
	board    *puzzle.Board
	frontier search.FrontierKind
	runner   runner
}

// Option configures a PuzzleSolver.
type Option func(*PuzzleSolver)

// WithFrontier selects the work-list discipline for every search.
func WithFrontier(kind search.FrontierKind) Option {
	return func(s *PuzzleSolver) {
		s.frontier = kind
	}
}

// New creates a solver for p.
func New(p *puzzle.Puzzle, opts ...Option) (*PuzzleSolver, error) {
	board, err := puzzle.Build(p)
	if err != nil {
		return nil, err
	}
	return NewFromBoard(board, opts...)
}

// NewFromBoard creates a solver for an already built board.
func NewFromBoard(board *puzzle.Board, opts ...Option) (*PuzzleSolver, error) {
	if board == nil {
		return nil, fmt.Errorf("board cannot be nil")
	}
	s := &PuzzleSolver{board: board}
	for _, opt := range opts {
		opt(s)
	}

	if err := search.CheckStart(board.Grid, board.Start); err != nil {
		return nil, err
	}

	switch board.Puzzle.Movement {
	case puzzle.MovementWalker:
		space, err := search.NewWalkerSpace(board.Grid, board.Puzzle.Forward())
		if err != nil {
			return nil, err
		}
		s.runner = &plan[grid.Position]{
			space:   space,
			starts:  []grid.Position{board.Start},
			goal:    search.Equals(board.Goal),
			targets: []grid.Position{board.Goal},
			isStart: search.Equals(board.Start),
			project: func(p grid.Position) grid.Position { return p },
		}
	default:
		space, err := search.NewFacingSpace(board.Grid, board.Puzzle.Forward(), board.Puzzle.Turn())
		if err != nil {
			return nil, err
		}
		start := search.State{Pos: board.Start, Facing: board.Facing}
		s.runner = &plan[search.State]{
			space:   space,
			starts:  []search.State{start},
			goal:    search.AtPosition(board.Goal),
			targets: search.StatesAt(board.Goal),
			isStart: search.Equals(start),
			project: search.Cell,
		}
	}
	return s, nil
}

// Board returns the board being solved
func (s *PuzzleSolver) Board() *puzzle.Board {
	return s.board
}

// Frontier returns the configured frontier kind
func (s *PuzzleSolver) Frontier() search.FrontierKind {
	return s.frontier
}

func (s *PuzzleSolver) options() []search.Option {
	return []search.Option{search.WithFrontier(s.frontier)}
}

// MinCost returns the minimal cost from start to goal. reachable is false
// when no path exists.
func (s *PuzzleSolver) MinCost() (int, bool, error) {
	return s.runner.minCost(s.options())
}

// Stats returns the counters of the forward search.
func (s *PuzzleSolver) Stats() (search.Stats, error) {
	return s.runner.stats(s.options())
}

// Symmetric reports whether searching the reversed space from the goal back
// to the start finds the same minimal cost as the forward search.
func (s *PuzzleSolver) Symmetric() (bool, error) {
	return s.runner.symmetric(s.options())
}

// Path returns one minimum-cost route as cells, with turns in place
// collapsed. It returns nil when the goal is unreachable.
func (s *PuzzleSolver) Path() (grid.Path, error) {
	return s.runner.path(s.options())
}

// OptimalCells returns every cell on at least one minimum-cost route.
func (s *PuzzleSolver) OptimalCells() (*pathset.Report[grid.Position], error) {
	return s.runner.cells(s.options())
}

// Shortcuts analyzes the route returned by Path. A negative budget or
// threshold falls back to the puzzle's own settings.
func (s *PuzzleSolver) Shortcuts(budget, threshold int) (*shortcut.Report, error) {
	if budget < 0 {
		budget = s.board.Puzzle.CheatBudget
	}
	if threshold < 0 {
		threshold = s.board.Puzzle.SavingThreshold
	}
	path, err := s.Path()
	if err != nil {
		return nil, err
	}
	if path == nil {
		return nil, search.ErrUnreachable
	}
	return shortcut.Analyze(path, budget, threshold)
}

// Cutoff finds the first pending obstacle that cuts the start off from the
// goal.
func (s *PuzzleSolver) Cutoff() (blockage.Cutoff, bool, error) {
	if len(s.board.Pending()) == 0 {
		return blockage.Cutoff{}, false, ErrNoDrops
	}
	field := &blockage.Field{
		Width:  s.board.Grid.Width(),
		Height: s.board.Grid.Height(),
		Drops:  s.board.Drops,
		Start:  s.board.Start,
		Goal:   s.board.Goal,
	}
	return field.FirstCutoff(s.board.Puzzle.Placed())
}

// Render draws the board with the given cells marked 'O'.
func (s *PuzzleSolver) Render(cells []grid.Position) []string {
	marked := make(map[grid.Position]bool, len(cells))
	for _, c := range cells {
		marked[c] = true
	}
	return grid.Render(s.board.Grid, grid.DefaultLegend, 'O', func(p grid.Position) bool {
		return marked[p]
	})
}
