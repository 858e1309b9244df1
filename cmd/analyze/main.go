// Command analyze prints a human-readable report for every puzzle file in the
// project's configs directory: minimal cost and search effort under each
// frontier, the number of cells on some optimal path, the shortcut saving
// histogram for walker tracks, and the first cut-off drop for falling-obstacle
// puzzles.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/wricardo/gridpath/maze/puzzle"
	"github.com/wricardo/gridpath/maze/search"
	"github.com/wricardo/gridpath/maze/solver"
)

// frontiers are compared side by side for every puzzle.
var frontiers = []search.FrontierKind{search.FrontierPriority, search.FrontierStack}

func main() {
	puzzleDir := "configs"
	if len(os.Args) > 1 {
		puzzleDir = os.Args[1]
	}

	files, err := filepath.Glob(filepath.Join(puzzleDir, "*.json"))
	if err != nil {
		fmt.Printf("Error finding puzzle files: %v\n", err)
		os.Exit(1)
	}

	failed := false
	for _, file := range files {
		fmt.Printf("\n=== Analyzing %s ===\n", filepath.Base(file))
		if err := analyzePuzzle(os.Stdout, file); err != nil {
			fmt.Printf("Error: %v\n", err)
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}

func analyzePuzzle(w io.Writer, path string) error {
	p, err := puzzle.Load(path)
	if err != nil {
		return err
	}

	board, err := puzzle.Build(p)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Name: %s\n", p.Name)
	fmt.Fprintf(w, "Grid: %d x %d, %d walls\n", board.Grid.Width(), board.Grid.Height(), board.Grid.BlockedCount())
	fmt.Fprintf(w, "Movement: %s\n", p.Movement)
	fmt.Fprintf(w, "Start: (%s), Goal: (%s)\n", board.Start, board.Goal)

	var primary *solver.PuzzleSolver
	for _, kind := range frontiers {
		sv, err := solver.NewFromBoard(board, solver.WithFrontier(kind))
		if err != nil {
			return err
		}
		if primary == nil {
			primary = sv
		}

		cost, reachable, err := sv.MinCost()
		if err != nil {
			return err
		}
		stats, err := sv.Stats()
		if err != nil {
			return err
		}

		costText := "unreachable"
		if reachable {
			costText = fmt.Sprint(cost)
		}
		fmt.Fprintf(w, "Frontier %-8s cost %s, expanded %d, requeues %d, pruned %d\n",
			kind.String()+":", costText, stats.Expanded, stats.Requeues, stats.Pruned)
	}

	cost, reachable, err := primary.MinCost()
	if err != nil {
		return err
	}
	if !reachable {
		fmt.Fprintf(w, "⚠️  Goal is unreachable from the start\n")
	} else {
		cells, err := primary.OptimalCells()
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "Optimal cells: %d (cost %d)\n", cells.Len(), cost)

		if symmetric, err := primary.Symmetric(); err != nil {
			return err
		} else if symmetric {
			fmt.Fprintf(w, "✅ Forward and reverse searches agree\n")
		} else {
			fmt.Fprintf(w, "⚠️  Forward and reverse costs differ\n")
		}
	}

	if reachable && p.Movement == puzzle.MovementWalker && p.CheatBudget > 0 {
		report, err := primary.Shortcuts(-1, -1)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "Shortcuts (budget %d): %d pairs, %d save at least %d\n",
			report.Budget, report.Pairs, report.AtLeast, report.Threshold)
		printHistogram(w, report.Savings(), report.Count)
	}

	if len(board.Pending()) > 0 {
		cut, found, err := primary.Cutoff()
		if err != nil {
			return err
		}
		if found {
			fmt.Fprintf(w, "Cut-off: drop %d at %s blocks the goal (%d steps before, %d probes)\n",
				cut.Index, cut.Position, cut.Steps, cut.Probes)
		} else {
			fmt.Fprintf(w, "✅ No pending drop blocks the goal (%d probes)\n", cut.Probes)
		}
	}
	return nil
}

// printHistogram prints one line per saving with a bar scaled to the largest count.
func printHistogram(w io.Writer, savings []int, count func(int) int) {
	const maxBar = 40
	largest := 0
	for _, s := range savings {
		largest = max(largest, count(s))
	}
	for _, s := range savings {
		n := count(s)
		bar := n * maxBar / max(largest, 1)
		fmt.Fprintf(w, "  save %4d: %5d %s\n", s, n, strings.Repeat("#", max(bar, 1)))
	}
}
