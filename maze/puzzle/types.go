package puzzle

import "github.com/wricardo/gridpath/maze/grid"

// Movement selects the state space a puzzle is searched in.
type Movement string

const (
	MovementFacing Movement = "facing"
	MovementWalker Movement = "walker"

	// Validation constants
	MinGridSize        = 1
	MaxGridSize        = 256
	MaxObstacles       = MaxGridSize * MaxGridSize
	DefaultForwardCost = 1
	DefaultTurnCost    = 1000
	MaxCost            = 1_000_000
)

// LegendSpec overrides the layout characters. Empty fields keep the default.
type LegendSpec struct {
	Wall  string `json:"wall,omitempty"`
	Open  string `json:"open,omitempty"`
	Start string `json:"start,omitempty"`
	End   string `json:"end,omitempty"`
}

// Puzzle is a puzzle definition as stored in JSON.
type Puzzle struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Movement    Movement       `json:"movement"`
	Layout      []string       `json:"layout,omitempty"`
	Legend      *LegendSpec    `json:"legend,omitempty"`
	Width       int            `json:"width,omitempty"`
	Height      int            `json:"height,omitempty"`
	Obstacles   []string       `json:"obstacles,omitempty"`
	DropCount   *int           `json:"drop_count,omitempty"`
	Start       *grid.Position `json:"start,omitempty"`
	Goal        *grid.Position `json:"goal,omitempty"`
	Facing      string         `json:"facing,omitempty"`
	ForwardCost *int           `json:"forward_cost,omitempty"`
	TurnCost    *int           `json:"turn_cost,omitempty"`

	// Shortcut analysis defaults.
	CheatBudget     int `json:"cheat_budget,omitempty"`
	SavingThreshold int `json:"saving_threshold,omitempty"`
}

// Forward returns the forward step cost, defaulting to DefaultForwardCost.
func (p *Puzzle) Forward() int {
	if p.ForwardCost == nil {
		return DefaultForwardCost
	}
	return *p.ForwardCost
}

// Turn returns the quarter-turn cost, defaulting to DefaultTurnCost.
func (p *Puzzle) Turn() int {
	if p.TurnCost == nil {
		return DefaultTurnCost
	}
	return *p.TurnCost
}

// Placed returns how many obstacles start on the grid.
func (p *Puzzle) Placed() int {
	if p.DropCount == nil {
		return len(p.Obstacles)
	}
	return *p.DropCount
}

// Board is a validated puzzle ready to search.
type Board struct {
	Puzzle *Puzzle
	Grid   *grid.Grid
	Start  grid.Position
	Goal   grid.Position
	Facing grid.Direction

	// Drops is every obstacle from the obstacle list in order; the first
	// Puzzle.Placed() of them are already in Grid.
	Drops []grid.Position
}

// Pending returns the drops not yet placed on the grid.
func (b *Board) Pending() []grid.Position {
	return b.Drops[b.Puzzle.Placed():]
}
