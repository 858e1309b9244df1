package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/wricardo/gridpath/maze/pathset"
	"github.com/wricardo/gridpath/maze/puzzle"
	"github.com/wricardo/gridpath/maze/search"
	"github.com/wricardo/gridpath/maze/solver"
)

var (
	ErrPuzzleRequired = errors.New("puzzle is required")
	ErrBadFrontier    = errors.New("unknown frontier")
)

// solverServiceImpl implements the SolverService interface
type solverServiceImpl struct {
	runs    RunStore
	puzzles PuzzleStore
	log     logrus.FieldLogger
	mu      sync.RWMutex
}

// NewSolverService creates a new solver service instance. A nil logger
// uses the logrus standard logger.
func NewSolverService(runs RunStore, puzzles PuzzleStore, logger logrus.FieldLogger) SolverService {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &solverServiceImpl{
		runs:    runs,
		puzzles: puzzles,
		log:     logger.WithField("component", "solver"),
	}
}

// Solve runs every analysis the puzzle supports and stores the result as a run
func (s *solverServiceImpl) Solve(ctx context.Context, req *SolveRequest) (*SolveReport, error) {
	if req == nil {
		req = &SolveRequest{}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p, puzzleID, err := s.resolvePuzzle(req)
	if err != nil {
		return nil, err
	}

	frontier, ok := search.ParseFrontier(req.Frontier)
	if !ok {
		return nil, fmt.Errorf("%w %q, expected priority or stack", ErrBadFrontier, req.Frontier)
	}

	started := time.Now()
	sv, err := solver.New(p, solver.WithFrontier(frontier))
	if err != nil {
		return nil, fmt.Errorf("failed to build puzzle %s: %w", puzzleID, err)
	}

	report, err := s.analyze(sv, req)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"puzzle": puzzleID,
			"error":  err,
		}).Error("solve failed")
		return nil, err
	}
	report.PuzzleID = puzzleID
	report.SolvedAt = started
	report.ElapsedMS = float64(time.Since(started).Microseconds()) / 1000

	s.mu.Lock()
	run, err := s.runs.Create(puzzleID, report)
	s.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("failed to store run: %w", err)
	}

	fields := logrus.Fields{
		"run":        run.ID,
		"puzzle":     puzzleID,
		"frontier":   report.Frontier,
		"reachable":  report.Reachable,
		"cells":      report.CellCount,
		"expanded":   report.Stats.Expanded,
		"elapsed_ms": report.ElapsedMS,
	}
	if report.Cost != nil {
		fields["cost"] = *report.Cost
	}
	s.log.WithFields(fields).Info("puzzle solved")

	return report, nil
}

func (s *solverServiceImpl) resolvePuzzle(req *SolveRequest) (*puzzle.Puzzle, string, error) {
	if req.Puzzle != nil {
		id := req.PuzzleID
		if id == "" {
			id = "inline"
		}
		return req.Puzzle, id, nil
	}
	if req.PuzzleID == "" {
		p := s.puzzles.GetDefault()
		if p == nil {
			return nil, "", ErrPuzzleRequired
		}
		return p, s.puzzleID(p.Name), nil
	}

	p, err := s.puzzles.LoadPuzzle(req.PuzzleID)
	if err != nil {
		// Provide helpful error message with available options
		if infos, listErr := s.puzzles.ListPuzzles(); listErr == nil && len(infos) > 0 {
			ids := make([]string, 0, len(infos))
			for _, info := range infos {
				ids = append(ids, info.PuzzleID)
			}
			return nil, "", fmt.Errorf("puzzle '%s': %w. Available puzzles: %v", req.PuzzleID, err, ids)
		}
		return nil, "", fmt.Errorf("puzzle '%s': %w", req.PuzzleID, err)
	}
	return p, req.PuzzleID, nil
}

// puzzleID returns the puzzle_id for a display name
func (s *solverServiceImpl) puzzleID(name string) string {
	infos, err := s.puzzles.ListPuzzles()
	if err == nil {
		for _, info := range infos {
			if info.Name == name {
				return info.PuzzleID
			}
		}
	}
	if name == "" {
		return "default"
	}
	return name
}

func (s *solverServiceImpl) analyze(sv solver.Solver, req *SolveRequest) (*SolveReport, error) {
	board := sv.Board()
	report := &SolveReport{
		PuzzleName:  board.Puzzle.Name,
		Movement:    string(board.Puzzle.Movement),
		Frontier:    sv.Frontier().String(),
		Width:       board.Grid.Width(),
		Height:      board.Grid.Height(),
		Start:       board.Start,
		Goal:        board.Goal,
		ForwardCost: board.Puzzle.Forward(),
	}
	if board.Puzzle.Movement == puzzle.MovementFacing {
		report.TurnCost = board.Puzzle.Turn()
	}

	cost, reachable, err := sv.MinCost()
	if err != nil {
		return nil, err
	}
	report.Reachable = reachable
	if reachable {
		report.Cost = &cost
	}

	if report.Symmetric, err = sv.Symmetric(); err != nil {
		return nil, err
	}

	path, err := sv.Path()
	if err != nil {
		return nil, err
	}
	report.Path = path
	report.Steps = path.Steps()

	cells, err := sv.OptimalCells()
	if err != nil {
		return nil, err
	}
	report.OptimalCells = pathset.Sorted(cells.Cells)
	report.CellCount = cells.Len()

	forward, err := sv.Stats()
	if err != nil {
		return nil, err
	}
	report.Stats = newStatsInfo(forward, cells.Backward)

	if req.Render {
		report.Rendered = sv.Render(report.OptimalCells)
	}

	if reachable && wantsShortcuts(board.Puzzle, req) {
		budget, threshold := -1, -1
		if req.CheatBudget != nil {
			budget = *req.CheatBudget
		}
		if req.SavingThreshold != nil {
			threshold = *req.SavingThreshold
		}
		analysis, err := sv.Shortcuts(budget, threshold)
		if err != nil {
			return nil, err
		}
		summary := &ShortcutSummary{
			Budget:    analysis.Budget,
			Threshold: analysis.Threshold,
			AtLeast:   analysis.AtLeast,
			Pairs:     analysis.Pairs,
		}
		for _, saving := range analysis.Savings() {
			summary.Histogram = append(summary.Histogram, SavingBucket{Saving: saving, Count: analysis.Count(saving)})
		}
		report.Shortcuts = summary
	}

	if len(board.Pending()) > 0 {
		cutoff, found, err := sv.Cutoff()
		if err != nil {
			return nil, err
		}
		info := &CutoffInfo{Found: found, Probes: cutoff.Probes}
		if found {
			pos := cutoff.Position
			info.Index = cutoff.Index
			info.Position = &pos
			info.StepsBefore = cutoff.Steps
		}
		report.Cutoff = info
	}

	return report, nil
}

// wantsShortcuts reports whether a shortcut analysis applies: walker puzzles
// with a budget, or any request naming a budget explicitly.
func wantsShortcuts(p *puzzle.Puzzle, req *SolveRequest) bool {
	if req.CheatBudget != nil {
		return true
	}
	return p.Movement == puzzle.MovementWalker && p.CheatBudget > 0
}

// GetRun retrieves run information
func (s *solverServiceImpl) GetRun(ctx context.Context, runID string) (*RunInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	run, err := s.runs.Touch(runID)
	if err != nil {
		return nil, fmt.Errorf("run not found: %w", err)
	}

	return newRunInfo(run), nil
}

// ListRuns returns all stored runs
func (s *solverServiceImpl) ListRuns(ctx context.Context) ([]*RunInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	runs := s.runs.List()
	result := make([]*RunInfo, 0, len(runs))
	for _, run := range runs {
		result = append(result, newRunInfo(run))
	}
	return result, nil
}

// DeleteRun removes a run
func (s *solverServiceImpl) DeleteRun(ctx context.Context, runID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.runs.Delete(runID); err != nil {
		return err
	}
	s.log.WithField("run", runID).Debug("run deleted")
	return nil
}

// ListPuzzles returns the available puzzles
func (s *solverServiceImpl) ListPuzzles(ctx context.Context) ([]*PuzzleInfo, error) {
	return s.puzzles.ListPuzzles()
}

// LoadPuzzle loads a puzzle by id
func (s *solverServiceImpl) LoadPuzzle(ctx context.Context, puzzleID string) (*puzzle.Puzzle, error) {
	return s.puzzles.LoadPuzzle(puzzleID)
}

// SavePuzzle validates and stores a puzzle
func (s *solverServiceImpl) SavePuzzle(ctx context.Context, puzzleID string, p *puzzle.Puzzle) error {
	if puzzleID == "" {
		return fmt.Errorf("puzzle id is required")
	}
	if err := s.puzzles.SavePuzzle(puzzleID, p); err != nil {
		return err
	}
	s.log.WithField("puzzle", puzzleID).Info("puzzle saved")
	return nil
}

func newRunInfo(run *Run) *RunInfo {
	return &RunInfo{
		ID:             run.ID,
		PuzzleID:       run.PuzzleID,
		CreatedAt:      run.CreatedAt,
		LastAccessedAt: run.LastAccessedAt,
		Report:         run.Report,
	}
}
