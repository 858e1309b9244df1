package search

// Result holds the cost table of a finished search.
type Result[S comparable] struct {
	costs    map[S]int
	parents  map[S]S
	goals    []S
	goalSeen map[S]struct{}
	best     int
	found    bool
	frontier FrontierKind

	Stats Stats
}

func (r *Result[S]) reachGoal(s S, cost int) {
	if _, ok := r.goalSeen[s]; !ok {
		r.goalSeen[s] = struct{}{}
		r.goals = append(r.goals, s)
	}
	if !r.found || cost < r.best {
		r.best = cost
		r.found = true
	}
}

// Cost returns the minimal goal cost. ok is false when no goal state was
// reached; the returned cost is meaningless in that case.
func (r *Result[S]) Cost() (cost int, ok bool) {
	return r.best, r.found
}

// Reached reports whether any goal state was reached.
func (r *Result[S]) Reached() bool {
	return r.found
}

// CostOf returns the recorded cost of s.
func (r *Result[S]) CostOf(s S) (int, bool) {
	c, ok := r.costs[s]
	return c, ok
}

// Len returns the number of states in the cost table.
func (r *Result[S]) Len() int {
	return len(r.costs)
}

// Frontier returns the work-list discipline the search used.
func (r *Result[S]) Frontier() FrontierKind {
	return r.frontier
}

// Table returns a copy of the cost table.
func (r *Result[S]) Table() map[S]int {
	out := make(map[S]int, len(r.costs))
	for s, c := range r.costs {
		out[s] = c
	}
	return out
}

// Goals returns every goal state reached, in the order first reached.
func (r *Result[S]) Goals() []S {
	return append([]S(nil), r.goals...)
}

// BestGoals returns the goal states whose recorded cost is the minimum.
func (r *Result[S]) BestGoals() []S {
	var out []S
	for _, g := range r.goals {
		if r.costs[g] == r.best {
			out = append(out, g)
		}
	}
	return out
}

// Goal returns the first goal state reached at the minimal cost.
func (r *Result[S]) Goal() (S, bool) {
	best := r.BestGoals()
	if len(best) == 0 {
		var zero S
		return zero, false
	}
	return best[0], true
}

// PathTo walks parent links back from s and returns the states from a start
// to s. It returns nil when s was never reached, and an *InvariantError when
// the parent links loop.
func (r *Result[S]) PathTo(s S) ([]S, error) {
	if _, ok := r.costs[s]; !ok {
		return nil, nil
	}
	path := []S{s}
	current := s
	for i := 0; i <= len(r.costs); i++ {
		previous, ok := r.parents[current]
		if !ok {
			for a, b := 0, len(path)-1; a < b; a, b = a+1, b-1 {
				path[a], path[b] = path[b], path[a]
			}
			return path, nil
		}
		path = append(path, previous)
		current = previous
	}
	// Parent links only change on strict improvement, so they cannot loop
	// in a table built by Run.
	return nil, &InvariantError{
		From: s,
		To:   current,
		Cost: r.costs[s],
		Msg:  "parent links form a cycle",
	}
}

// BestPath returns one minimum-cost path to a goal, or nil when no goal was
// reached.
func (r *Result[S]) BestPath() ([]S, error) {
	g, ok := r.Goal()
	if !ok {
		return nil, nil
	}
	return r.PathTo(g)
}
