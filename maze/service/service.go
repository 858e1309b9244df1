package service

import (
	"context"
	"time"

	"github.com/wricardo/gridpath/maze/puzzle"
)

// SolverService defines all solver-related operations
type SolverService interface {
	// Solving
	Solve(ctx context.Context, req *SolveRequest) (*SolveReport, error)

	// Run Management
	GetRun(ctx context.Context, runID string) (*RunInfo, error)
	ListRuns(ctx context.Context) ([]*RunInfo, error)
	DeleteRun(ctx context.Context, runID string) error

	// Puzzles
	ListPuzzles(ctx context.Context) ([]*PuzzleInfo, error)
	LoadPuzzle(ctx context.Context, puzzleID string) (*puzzle.Puzzle, error)
	SavePuzzle(ctx context.Context, puzzleID string, p *puzzle.Puzzle) error
}

// RunStore defines run storage operations
type RunStore interface {
	Create(puzzleID string, report *SolveReport) (*Run, error)
	Get(id string) (*Run, error)
	List() []*Run
	Delete(id string) error
	Touch(id string) (*Run, error)
}

// PuzzleStore handles puzzle loading
type PuzzleStore interface {
	LoadPuzzle(name string) (*puzzle.Puzzle, error)
	ListPuzzles() ([]*PuzzleInfo, error)
	GetDefault() *puzzle.Puzzle
	SavePuzzle(name string, p *puzzle.Puzzle) error
}

// Run is a stored solve result
type Run struct {
	ID             string
	PuzzleID       string
	Report         *SolveReport
	CreatedAt      time.Time
	LastAccessedAt time.Time
}
