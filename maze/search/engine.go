package search

import "github.com/wricardo/gridpath/maze/grid"

// Options defines parameters for a search.
type Options struct {
	Frontier FrontierKind
	// Bound, when set, prunes every candidate whose cost exceeds it, in
	// addition to the running best goal cost.
	Bound    int
	HasBound bool
}

// Option is a function that modifies Options.
type Option func(*Options)

// WithFrontier selects the work-list discipline.
func WithFrontier(kind FrontierKind) Option {
	return func(options *Options) { options.Frontier = kind }
}

// WithBound prunes candidates costing more than bound.
func WithBound(bound int) Option {
	return func(options *Options) {
		options.Bound = bound
		options.HasBound = true
	}
}

// Stats counts the work done by one search.
type Stats struct {
	Expanded    int `json:"expanded"`
	Relaxations int `json:"relaxations"`
	Requeues    int `json:"requeues"`
	Pruned      int `json:"pruned"`
	Stale       int `json:"stale"`
}

// Run computes minimum costs from starts over space. goal may be nil, in
// which case the whole reachable space (within any bound) is costed. Spaces
// implementing StartChecker have every start checked before the loop.
//
// A successor is recorded and pushed only when its candidate cost strictly
// improves on the recorded one, so a state can be requeued several times but
// its recorded cost never increases. Candidates above the best goal cost
// found so far are pruned. The loop ends when the frontier is empty.
func Run[S comparable](space Space[S], starts []S, goal func(S) bool, opts ...Option) (*Result[S], error) {
	if space == nil {
		return nil, grid.Configf("space", "is nil")
	}
	if len(starts) == 0 {
		return nil, grid.Configf("start", "no start states")
	}
	if checker, ok := space.(StartChecker[S]); ok {
		for _, s := range starts {
			if err := checker.CheckState(s); err != nil {
				return nil, err
			}
		}
	}

	searchOptions := Options{Frontier: FrontierPriority}
	for _, option := range opts {
		option(&searchOptions)
	}
	if searchOptions.HasBound && searchOptions.Bound < 0 {
		return nil, grid.Configf("bound", "must not be negative, got %d", searchOptions.Bound)
	}

	result := &Result[S]{
		costs:    make(map[S]int),
		parents:  make(map[S]S),
		goalSeen: make(map[S]struct{}),
		frontier: searchOptions.Frontier,
	}
	work := newFrontier[S](searchOptions.Frontier)

	for _, s := range starts {
		if _, seen := result.costs[s]; seen {
			continue
		}
		result.costs[s] = 0
		if goal != nil && goal(s) {
			result.reachGoal(s, 0)
		}
		work.push(entry[S]{state: s, cost: 0})
	}

	exceeds := func(cost int) bool {
		if result.found && cost > result.best {
			return true
		}
		return searchOptions.HasBound && cost > searchOptions.Bound
	}

	for work.len() > 0 {
		current := work.pop()
		if current.cost > result.costs[current.state] {
			result.Stats.Stale++
			continue
		}
		if exceeds(current.cost) {
			result.Stats.Pruned++
			continue
		}
		result.Stats.Expanded++

		for _, next := range space.Successors(current.state) {
			if next.Cost < 0 {
				return nil, &InvariantError{
					From: current.state,
					To:   next.State,
					Cost: next.Cost,
					Msg:  "negative transition cost",
				}
			}
			result.Stats.Relaxations++

			candidate := current.cost + next.Cost
			if exceeds(candidate) {
				result.Stats.Pruned++
				continue
			}
			if recorded, ok := result.costs[next.State]; ok {
				if candidate >= recorded {
					continue
				}
				result.Stats.Requeues++
			}

			result.costs[next.State] = candidate
			result.parents[next.State] = current.state
			if goal != nil && goal(next.State) {
				result.reachGoal(next.State, candidate)
			}
			work.push(entry[S]{state: next.State, cost: candidate})
		}
	}

	return result, nil
}
