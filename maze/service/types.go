package service

import (
	"time"

	"github.com/wricardo/gridpath/maze/grid"
	"github.com/wricardo/gridpath/maze/puzzle"
	"github.com/wricardo/gridpath/maze/search"
)

// SolveRequest selects a puzzle and the analyses to run on it
type SolveRequest struct {
	PuzzleID string         `json:"puzzle_id,omitempty"` // Empty uses the default puzzle
	Puzzle   *puzzle.Puzzle `json:"puzzle,omitempty"`    // Inline definition, overrides PuzzleID
	Frontier string         `json:"frontier,omitempty"`  // "priority" (default) or "stack"

	// Shortcut analysis; nil falls back to the puzzle settings
	CheatBudget     *int `json:"cheat_budget,omitempty"`
	SavingThreshold *int `json:"saving_threshold,omitempty"`

	Render bool `json:"render,omitempty"`
}

// SolveReport is the full result of one solve
type SolveReport struct {
	RunID      string `json:"run_id"`
	PuzzleID   string `json:"puzzle_id"`
	PuzzleName string `json:"puzzle_name"`
	Movement   string `json:"movement"`
	Frontier   string `json:"frontier"`

	// Board
	Width       int           `json:"width"`
	Height      int           `json:"height"`
	Start       grid.Position `json:"start"`
	Goal        grid.Position `json:"goal"`
	ForwardCost int           `json:"forward_cost"`
	TurnCost    int           `json:"turn_cost,omitempty"`

	// Cost is nil when the goal is unreachable
	Reachable bool `json:"reachable"`
	Cost      *int `json:"cost"`
	Symmetric bool `json:"symmetric"`

	// Routes
	Path         []grid.Position `json:"path,omitempty"`
	Steps        int             `json:"steps"`
	OptimalCells []grid.Position `json:"optimal_cells,omitempty"`
	CellCount    int             `json:"optimal_cell_count"`
	Rendered     []string        `json:"rendered,omitempty"`

	Stats     StatsInfo        `json:"stats"`
	Shortcuts *ShortcutSummary `json:"shortcuts,omitempty"`
	Cutoff    *CutoffInfo      `json:"cutoff,omitempty"`

	SolvedAt  time.Time `json:"solved_at"`
	ElapsedMS float64   `json:"elapsed_ms"`
}

// StatsInfo mirrors the search counters of the forward run
type StatsInfo struct {
	Expanded    int `json:"expanded"`
	Relaxations int `json:"relaxations"`
	Requeues    int `json:"requeues"`
	Pruned      int `json:"pruned"`
	Stale       int `json:"stale"`
	Backward    int `json:"backward_expanded"`
}

func newStatsInfo(forward, backward search.Stats) StatsInfo {
	return StatsInfo{
		Expanded:    forward.Expanded,
		Relaxations: forward.Relaxations,
		Requeues:    forward.Requeues,
		Pruned:      forward.Pruned,
		Stale:       forward.Stale,
		Backward:    backward.Expanded,
	}
}

// ShortcutSummary is the saving histogram of the returned path
type ShortcutSummary struct {
	Budget    int            `json:"budget"`
	Threshold int            `json:"threshold"`
	AtLeast   int            `json:"at_least"`
	Pairs     int            `json:"pairs"`
	Histogram []SavingBucket `json:"histogram"`
}

// SavingBucket is one histogram row
type SavingBucket struct {
	Saving int `json:"saving"`
	Count  int `json:"count"`
}

// CutoffInfo describes the first pending obstacle that blocks the goal
type CutoffInfo struct {
	Found       bool           `json:"found"`
	Index       int            `json:"index,omitempty"`
	Position    *grid.Position `json:"position,omitempty"`
	StepsBefore int            `json:"steps_before,omitempty"`
	Probes      int            `json:"probes"`
}

// RunInfo provides information about a stored run
type RunInfo struct {
	ID             string       `json:"id"`
	PuzzleID       string       `json:"puzzle_id"`
	CreatedAt      time.Time    `json:"created_at"`
	LastAccessedAt time.Time    `json:"last_accessed_at"`
	Report         *SolveReport `json:"report"`
}

// PuzzleInfo provides information about a puzzle file
type PuzzleInfo struct {
	Filename    string `json:"filename"`
	PuzzleID    string `json:"puzzle_id"` // The identifier to use for solving
	Name        string `json:"name"`      // Display name
	Description string `json:"description"`
	Movement    string `json:"movement"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
}
