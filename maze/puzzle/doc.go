// Package puzzle defines the JSON puzzle format and turns a puzzle into a
// board the solver can search.
//
// A puzzle describes its grid in one of two ways:
//   - Layout: text rows using a legend ('#' wall, '.' open, 'S' start,
//     'E' end by default).
//   - Width/Height plus Obstacles: a list of "x,y" cells. The first
//     DropCount obstacles are placed; the rest are pending drops used by
//     the cut-off search.
//
// Movement selects the state space. "facing" searches (position, facing)
// states where stepping forward costs ForwardCost and each quarter turn costs
// TurnCost. "walker" searches positions with unit steps in any direction.
//
// Usage:
//
//	p, err := puzzle.Load("configs/reindeer.json")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	board, err := puzzle.Build(p)
//	if err != nil {
//		log.Fatal(err)
//	}
package puzzle
