// Package search implements minimum-cost search over grid state spaces.
//
// A search walks a Space of comparable states. Two spaces are provided:
//
//   - FacingSpace: states are (position, facing) pairs. Stepping forward costs
//     a forward cost, turning in place costs a turn cost.
//   - WalkerSpace: states are positions, every four-way step costs the same.
//
// Run is a label-correcting relaxation: a state's recorded cost may be lowered
// several times and the state is requeued on every strict improvement. The
// default frontier is a priority queue keyed by cost, which makes the loop
// behave like Dijkstra; FrontierStack keeps the plain LIFO work-list. Both
// produce the same costs because correctness never relies on pop order.
//
// Usage:
//
//	space, err := search.NewFacingSpace(g, 1, 1000)
//	if err != nil {
//		return err
//	}
//	start := search.State{Pos: s, Facing: grid.East}
//	result, err := search.Run(space, []search.State{start}, search.AtPosition(goal))
//	if err != nil {
//		return err
//	}
//	cost, ok := result.Cost()
//
// Every call owns its cost table and frontier; nothing is shared between runs.
package search
