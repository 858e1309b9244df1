// Package pathset finds every cell that lies on at least one minimum-cost
// path.
//
// The forward cost table gives distFromStart for every state. A second search
// over the reversed space, seeded from every goal state, gives distToGoal. A
// state is on an optimal path exactly when the two add up to the minimal goal
// cost; projecting those states to cells yields the set.
package pathset

import (
	"github.com/zyedidia/generic/mapset"

	"github.com/wricardo/gridpath/maze/grid"
	"github.com/wricardo/gridpath/maze/search"
)

// Report is the optimal-path set of one forward search.
type Report[P comparable] struct {
	Cost      int
	Reachable bool
	Cells     mapset.Set[P]

	// Backward holds the stats of the reversed search.
	Backward search.Stats
}

// Len returns the number of cells in the set.
func (r *Report[P]) Len() int {
	return r.Cells.Size()
}

// Has reports whether p is on some optimal path.
func (r *Report[P]) Has(p P) bool {
	return r.Cells.Has(p)
}

// Cells reconstructs the optimal-path set from a finished forward search.
// reverse must be the predecessor space of the space forward ran on, with the
// same grid and costs. Neither forward nor the grid is modified.
//
// When forward never reached a goal the report is unreachable with an empty
// set and a nil error.
func Cells[S comparable, P comparable](
	forward *search.Result[S],
	reverse search.Space[S],
	project func(S) P,
	opts ...search.Option,
) (*Report[P], error) {
	if forward == nil {
		return nil, grid.Configf("forward", "is nil")
	}
	if reverse == nil {
		return nil, grid.Configf("reverse", "is nil")
	}
	if project == nil {
		return nil, grid.Configf("project", "is nil")
	}

	report := &Report[P]{Cells: mapset.New[P]()}
	best, ok := forward.Cost()
	if !ok {
		return report, nil
	}
	report.Cost = best
	report.Reachable = true

	opts = append(opts, search.WithBound(best))
	backward, err := search.Run(reverse, forward.Goals(), nil, opts...)
	if err != nil {
		return nil, err
	}
	report.Backward = backward.Stats

	for s, fromStart := range forward.Table() {
		toGoal, ok := backward.CostOf(s)
		if !ok {
			continue
		}
		if fromStart+toGoal == best {
			report.Cells.Put(project(s))
		}
	}
	return report, nil
}

// Sorted returns the positions of a set in row-major order.
func Sorted(cells mapset.Set[grid.Position]) []grid.Position {
	out := make([]grid.Position, 0, cells.Size())
	cells.Each(func(p grid.Position) {
		out = append(out, p)
	})
	grid.SortPositions(out)
	return out
}
