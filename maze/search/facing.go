package search

import "github.com/wricardo/gridpath/maze/grid"

// FacingSpace is the turn-cost model: stepping forward moves one cell in the
// current facing, turning rotates in place. Turns are always legal; a step is
// illegal when its destination is out of bounds or blocked.
type FacingSpace struct {
	grid     *grid.Grid
	forward  int
	turn     int
	reversed bool
}

// NewFacingSpace validates the cost parameters and binds them to g.
func NewFacingSpace(g *grid.Grid, forwardCost, turnCost int) (*FacingSpace, error) {
	if g == nil {
		return nil, grid.Configf("grid", "is nil")
	}
	if forwardCost < 0 {
		return nil, grid.Configf("forward_cost", "must not be negative, got %d", forwardCost)
	}
	if turnCost < 0 {
		return nil, grid.Configf("turn_cost", "must not be negative, got %d", turnCost)
	}
	return &FacingSpace{grid: g, forward: forwardCost, turn: turnCost}, nil
}

// Grid returns the grid the space walks.
func (f *FacingSpace) Grid() *grid.Grid { return f.grid }

// ForwardCost returns the cost of one step.
func (f *FacingSpace) ForwardCost() int { return f.forward }

// TurnCost returns the cost of one quarter turn.
func (f *FacingSpace) TurnCost() int { return f.turn }

// Reversed reports whether this is the predecessor space.
func (f *FacingSpace) Reversed() bool { return f.reversed }

// CheckState rejects states whose cell is outside the grid or blocked.
func (f *FacingSpace) CheckState(s State) error {
	return CheckStart(f.grid, s.Pos)
}

// Successors returns forward, left, right in that order.
func (f *FacingSpace) Successors(s State) []Successor[State] {
	out := make([]Successor[State], 0, 3)

	var next grid.Position
	if f.reversed {
		next = s.Pos.Step(s.Facing.Opposite())
	} else {
		next = s.Pos.Step(s.Facing)
	}
	if f.grid.Open(next) {
		out = append(out, Successor[State]{
			Move:  StepForward,
			State: State{Pos: next, Facing: s.Facing},
			Cost:  f.forward,
		})
	}

	// A left turn into s.Facing starts from s.Facing.Right(), so the
	// predecessor space swaps the rotations.
	left, right := s.Facing.Left(), s.Facing.Right()
	if f.reversed {
		left, right = right, left
	}
	out = append(out,
		Successor[State]{Move: TurnLeft, State: State{Pos: s.Pos, Facing: left}, Cost: f.turn},
		Successor[State]{Move: TurnRight, State: State{Pos: s.Pos, Facing: right}, Cost: f.turn},
	)
	return out
}

// Reverse returns the predecessor space over the same grid and costs.
func (f *FacingSpace) Reverse() Space[State] {
	r := *f
	r.reversed = !f.reversed
	return &r
}
