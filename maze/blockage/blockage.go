// Package blockage finds the first obstacle in a falling sequence that cuts a
// walker off from its goal.
package blockage

import (
	"sort"

	"github.com/wricardo/gridpath/maze/grid"
	"github.com/wricardo/gridpath/maze/search"
)

// Cutoff describes the drop that first makes the goal unreachable. Steps is
// the shortest walk with every drop before Index in place.
type Cutoff struct {
	Index    int           `json:"index"`
	Position grid.Position `json:"position"`
	Steps    int           `json:"steps"`
	Probes   int           `json:"probes"`
}

// Field is a width x height area receiving drops in order.
type Field struct {
	Width  int
	Height int
	Drops  []grid.Position
	Start  grid.Position
	Goal   grid.Position
}

// Grid returns the field with the first n drops in place.
func (f *Field) Grid(n int) (*grid.Grid, error) {
	if n < 0 || n > len(f.Drops) {
		return nil, grid.Configf("drops", "prefix %d outside [0, %d]", n, len(f.Drops))
	}
	return grid.New(f.Width, f.Height, f.Drops[:n])
}

// Steps returns the shortest unit-step walk from Start to Goal with the first
// n drops in place. ok is false when the goal cannot be reached.
func (f *Field) Steps(n int) (steps int, ok bool, err error) {
	g, err := f.Grid(n)
	if err != nil {
		return 0, false, err
	}
	if !g.InBounds(f.Goal) {
		return 0, false, grid.Configf("goal", "%s is out of bounds", f.Goal)
	}
	if !g.InBounds(f.Start) {
		return 0, false, grid.Configf("start", "%s is out of bounds", f.Start)
	}
	if g.IsBlocked(f.Start) || g.IsBlocked(f.Goal) {
		return 0, false, nil
	}

	space, err := search.NewWalkerSpace(g, 1)
	if err != nil {
		return 0, false, err
	}
	result, err := search.Run[grid.Position](space, []grid.Position{f.Start}, search.Equals(f.Goal))
	if err != nil {
		return 0, false, err
	}
	steps, ok = result.Cost()
	return steps, ok, nil
}

// FirstCutoff returns the first drop after which the goal is unreachable.
// initial drops are assumed to leave the goal reachable and are where the
// binary search starts; if they do not, the whole sequence is searched.
// found is false when the goal survives every drop.
func (f *Field) FirstCutoff(initial int) (cutoff Cutoff, found bool, err error) {
	if initial < 0 || initial > len(f.Drops) {
		return Cutoff{}, false, grid.Configf("initial", "%d outside [0, %d]", initial, len(f.Drops))
	}

	probes := 0
	steps := map[int]int{}
	var probeErr error
	reachable := func(n int) bool {
		if probeErr != nil {
			return false
		}
		probes++
		s, ok, err := f.Steps(n)
		if err != nil {
			probeErr = err
			return false
		}
		if ok {
			steps[n] = s
		}
		return ok
	}

	lo := initial
	if !reachable(lo) {
		if probeErr != nil {
			return Cutoff{}, false, probeErr
		}
		lo = 0
		if !reachable(0) {
			if probeErr != nil {
				return Cutoff{}, false, probeErr
			}
			return Cutoff{}, false, grid.Configf("start", "goal %s is unreachable from %s with no drops", f.Goal, f.Start)
		}
	}

	// Prefix lengths in (lo, len] where the goal is still reachable form a
	// leading run; find where it ends.
	span := len(f.Drops) - lo
	k := sort.Search(span, func(k int) bool {
		return !reachable(lo + k + 1)
	})
	if probeErr != nil {
		return Cutoff{}, false, probeErr
	}
	if k == span {
		return Cutoff{Probes: probes}, false, nil
	}

	n := lo + k + 1
	before, ok := steps[n-1]
	if !ok {
		before, _, err = f.Steps(n - 1)
		if err != nil {
			return Cutoff{}, false, err
		}
		probes++
	}
	return Cutoff{
		Index:    n - 1,
		Position: f.Drops[n-1],
		Steps:    before,
		Probes:   probes,
	}, true, nil
}

// FirstCutoff is a convenience wrapper for a field walked from (0,0) to the
// opposite corner.
func FirstCutoff(width, height int, drops []grid.Position, initial int) (Cutoff, bool, error) {
	f := &Field{
		Width:  width,
		Height: height,
		Drops:  drops,
		Start:  grid.Pos(0, 0),
		Goal:   grid.Pos(width-1, height-1),
	}
	return f.FirstCutoff(initial)
}
