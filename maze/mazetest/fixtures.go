// Package mazetest holds reference mazes shared by the package tests.
package mazetest

import (
	"strings"

	"github.com/wricardo/gridpath/maze/grid"
)

// Reindeer is a 15x15 turn-cost maze. With forward cost 1 and turn cost 1000,
// starting east-facing at S, the minimal cost to E is 7036 and 45 cells lie
// on some optimal path.
const Reindeer = `###############
#.......#....E#
#.#.###.#.###.#
#.....#.#...#.#
#.###.#####.#.#
#.#.#.......#.#
#.#.#####.###.#
#...........#.#
###.#.#####.#.#
#...#.....#.#.#
#.#.#.###.#.#.#
#.....#...#.#.#
#.###.#.#.#.#.#
#S..#.....#...#
###############`

// ReindeerCost and ReindeerCells are the expected answers for Reindeer.
const (
	ReindeerCost  = 7036
	ReindeerCells = 45
)

// ReindeerLarge is a 17x17 turn-cost maze: cost 11048, 64 optimal cells.
const ReindeerLarge = `#################
#...#...#...#..E#
#.#.#.#.#.#.#.#.#
#.#.#.#...#...#.#
#.#.#.#.###.#.#.#
#...#.#.#.....#.#
#.#.#.#.#.#####.#
#.#...#.#.#.....#
#.#.#####.#.###.#
#.#.#.......#...#
#.#.###.#####.###
#.#.#...#.....#.#
#.#.#.#####.###.#
#.#.#.........#.#
#.#.#.#########.#
#S#.............#
#################`

const (
	ReindeerLargeCost  = 11048
	ReindeerLargeCells = 64
)

// Racetrack is a single-lane track: the only path from S to E is 84 steps
// (85 positions). With a detour budget of 2 there are 5 shortcuts saving at
// least 20; with a budget of 20 there are 41 saving at least 70.
const Racetrack = `###############
#...#...#.....#
#.#.#.#.#.###.#
#S#...#.#.#...#
#######.#.#.###
#######.#.#...#
#######.#.###.#
###..E#...#...#
###.#######.###
#...###...#...#
#.#####.#.###.#
#.#...#.#.#...#
#.#.#.#.#.#.###
#...#...#...###
###############`

const RacetrackSteps = 84

// RacetrackSavings is the histogram for a detour budget of 2.
var RacetrackSavings = map[int]int{
	2: 14, 4: 14, 6: 2, 8: 4, 10: 2, 12: 3,
	20: 1, 36: 1, 38: 1, 40: 1, 64: 1,
}

// Drops is a falling-obstacle sequence on a 7x7 grid. After the first 12
// drops the shortest walk from (0,0) to (6,6) is 22 steps; drop 6,1 (index
// 20) is the first to cut the goal off.
const Drops = `5,4
4,2
4,5
3,0
2,1
6,3
2,4
1,5
0,6
3,3
2,6
5,1
1,2
5,5
2,5
6,5
1,4
0,4
6,4
1,1
6,1
1,0
0,5
1,6
2,0`

const (
	DropsSize      = 7
	DropsInitial   = 12
	DropsSteps     = 22
	DropsCutoffIdx = 20
)

// Rows splits a fixture into layout rows.
func Rows(fixture string) []string {
	return strings.Split(strings.TrimSpace(fixture), "\n")
}

// Layout parses a fixture with the default legend and panics on error.
func Layout(fixture string) *grid.Layout {
	layout, err := grid.ParseString(fixture)
	if err != nil {
		panic(err)
	}
	return layout
}

// DropPositions parses the Drops fixture.
func DropPositions() []grid.Position {
	lines := strings.Split(strings.TrimSpace(Drops), "\n")
	out := make([]grid.Position, 0, len(lines))
	for _, line := range lines {
		p, err := grid.ParsePosition(line)
		if err != nil {
			panic(err)
		}
		out = append(out, p)
	}
	return out
}
