// Command validate provides a small CLI that validates puzzle JSON files in a
// directory (../configs by default). It checks:
//   - JSON structure and known fields
//   - Grid consistency, legend characters, and exactly one start and end marker
//   - Movement model and cost settings
//   - Connectivity: the goal is reachable from the start over open cells
//   - Shortcut settings only where a single-lane walker track can use them
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/wricardo/gridpath/maze/grid"
	"github.com/wricardo/gridpath/maze/puzzle"
	"github.com/wricardo/gridpath/maze/search"
)

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
}

func (r *ValidationResult) fail(format string, args ...any) {
	r.Valid = false
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *ValidationResult) info(format string, args ...any) {
	r.Errors = append(r.Errors, "✓ "+fmt.Sprintf(format, args...))
}

// validatePuzzle loads and validates a single puzzle JSON file.
// It decodes strictly, builds the board, and checks connectivity.
func validatePuzzle(filePath string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.fail("Failed to read file: %v", err)
		return result
	}

	var p puzzle.Puzzle
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&p); err != nil {
		result.fail("Invalid JSON: %v", err)
		return result
	}

	if p.Name == "" {
		result.fail("name is required")
	}

	board, err := puzzle.Build(&p)
	if err != nil {
		result.fail("%v", err)
		return result
	}

	if p.CheatBudget > 0 && p.Movement != puzzle.MovementWalker {
		result.fail("cheat_budget only applies to walker puzzles, movement is %q", p.Movement)
	}

	connectivity := validateConnectivity(board)
	if !connectivity.Valid {
		result.Valid = false
	}
	result.Errors = append(result.Errors, connectivity.Errors...)

	// Add informational data
	if result.Valid {
		result.info("Name: %s", p.Name)
		result.info("Grid: %dx%d, %d walls", board.Grid.Width(), board.Grid.Height(), board.Grid.BlockedCount())
		result.info("Movement: %s, forward cost %d", p.Movement, p.Forward())
		if p.Movement == puzzle.MovementFacing {
			result.info("Turn cost: %d, facing %s", p.Turn(), board.Facing)
		}
		result.info("Start: %s, Goal: %s", board.Start, board.Goal)
		if pending := len(board.Pending()); pending > 0 {
			result.info("Pending drops: %d", pending)
		}
		if p.CheatBudget > 0 {
			result.info("Shortcuts: budget %d, threshold %d", p.CheatBudget, p.SavingThreshold)
		}
	}

	return result
}

// validateConnectivity ensures the goal is reachable from the start using
// 4-directional movement over open cells. Turn costs do not affect
// reachability, so the walker space is enough.
func validateConnectivity(board *puzzle.Board) ValidationResult {
	result := ValidationResult{
		Valid:  true,
		Errors: []string{},
	}

	space, err := search.NewWalkerSpace(board.Grid, 1)
	if err != nil {
		result.fail("Cannot validate connectivity: %v", err)
		return result
	}

	res, err := search.Run[grid.Position](space, []grid.Position{board.Start}, search.Equals(board.Goal))
	if err != nil {
		result.fail("Cannot validate connectivity: %v", err)
		return result
	}

	steps, ok := res.Cost()
	if !ok {
		result.fail("Connectivity failure: goal %s unreachable from start %s", board.Goal, board.Start)
		return result
	}

	result.info("Connectivity: goal reachable in %d steps", steps)
	return result
}

// main scans the puzzle directory for *.json files and validates each one,
// printing a concise report and exiting with non-zero status if any are invalid.
func main() {
	puzzleDir := "../configs"
	if len(os.Args) > 1 {
		puzzleDir = os.Args[1]
	}

	files, err := filepath.Glob(filepath.Join(puzzleDir, "*.json"))
	if err != nil {
		fmt.Printf("Error finding puzzle files: %v\n", err)
		os.Exit(1)
	}
	if len(files) == 0 {
		fmt.Printf("No puzzle files found in %s\n", puzzleDir)
		os.Exit(1)
	}

	allValid := true
	for _, file := range files {
		result := validatePuzzle(file)

		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Println("✅ VALID")
			for _, info := range result.Errors {
				fmt.Println("  " + info)
			}
		} else {
			fmt.Println("❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				if !strings.HasPrefix(err, "✓") {
					fmt.Println("  ❌ " + err)
				}
			}
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Println("✅ All puzzles are valid!")
	} else {
		fmt.Println("❌ Some puzzles have errors")
		os.Exit(1)
	}
}
