package search

import "github.com/wricardo/gridpath/maze/grid"

// WalkerSpace moves between open cells in the four cardinal directions at a
// fixed step cost, with no notion of facing.
type WalkerSpace struct {
	grid *grid.Grid
	step int
}

// NewWalkerSpace binds a step cost to g.
func NewWalkerSpace(g *grid.Grid, stepCost int) (*WalkerSpace, error) {
	if g == nil {
		return nil, grid.Configf("grid", "is nil")
	}
	if stepCost < 0 {
		return nil, grid.Configf("step_cost", "must not be negative, got %d", stepCost)
	}
	return &WalkerSpace{grid: g, step: stepCost}, nil
}

// Grid returns the grid the space walks.
func (w *WalkerSpace) Grid() *grid.Grid { return w.grid }

// CheckState rejects cells outside the grid or blocked.
func (w *WalkerSpace) CheckState(p grid.Position) error {
	return CheckStart(w.grid, p)
}

// Successors returns the open neighbours clockwise from north.
func (w *WalkerSpace) Successors(p grid.Position) []Successor[grid.Position] {
	out := make([]Successor[grid.Position], 0, 4)
	for _, d := range grid.Directions {
		next := p.Step(d)
		if !w.grid.Open(next) {
			continue
		}
		out = append(out, Successor[grid.Position]{Move: StepForward, State: next, Cost: w.step})
	}
	return out
}

// Reverse returns w: every step can be walked back at the same cost.
func (w *WalkerSpace) Reverse() Space[grid.Position] {
	return w
}
