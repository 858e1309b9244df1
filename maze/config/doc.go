// Package config manages the puzzle files the solver service serves.
//
// Puzzles are JSON files in a single directory; the file name without its
// .json extension is the puzzle id. Loaded puzzles are validated and cached
// until RefreshCache is called.
//
// Usage:
//
//	manager, err := config.NewManager("configs")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	p, err := manager.LoadPuzzle("reindeer")
//	infos, err := manager.ListPuzzles()
//
// Default Puzzle:
//
// The manager loads "reindeer" as its default. Without it, the first valid
// puzzle in id order is used, and an empty directory falls back to a small
// built-in maze.
package config
