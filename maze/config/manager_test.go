package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wricardo/gridpath/maze/puzzle"
)

func createValidPuzzle(name string) *puzzle.Puzzle {
	return &puzzle.Puzzle{
		Name:        name,
		Description: "Test puzzle",
		Movement:    puzzle.MovementFacing,
		Layout: []string{
			"#####",
			"#S..#",
			"#.#.#",
			"#..E#",
			"#####",
		},
	}
}

func writePuzzleFile(t *testing.T, dir, name string, p *puzzle.Puzzle) {
	t.Helper()
	data, err := json.Marshal(p)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, name+".json"), data, 0644))
}

func TestNewManager(t *testing.T) {
	t.Run("valid directory", func(t *testing.T) {
		dir := t.TempDir()
		writePuzzleFile(t, dir, DefaultPuzzle, createValidPuzzle("Reindeer"))

		m, err := NewManager(dir)
		require.NoError(t, err)
		require.NotNil(t, m.GetDefault())
		assert.Equal(t, "Reindeer", m.GetDefault().Name)
	})

	t.Run("non-existent directory", func(t *testing.T) {
		_, err := NewManager(filepath.Join(t.TempDir(), "missing"))
		assert.Error(t, err)
	})

	t.Run("missing default puzzle", func(t *testing.T) {
		dir := t.TempDir()
		writePuzzleFile(t, dir, "zeta", createValidPuzzle("Zeta"))
		writePuzzleFile(t, dir, "alpha", createValidPuzzle("Alpha"))

		m, err := NewManager(dir)
		require.NoError(t, err)
		assert.Equal(t, "Alpha", m.GetDefault().Name)
	})

	t.Run("empty directory", func(t *testing.T) {
		m, err := NewManager(t.TempDir())
		require.NoError(t, err)
		assert.Equal(t, "default", m.GetDefault().Name)
		assert.NoError(t, puzzle.Validate(m.GetDefault()))
	})
}

func TestManager_LoadPuzzle(t *testing.T) {
	dir := t.TempDir()
	writePuzzleFile(t, dir, "maze", createValidPuzzle("Maze"))

	invalid := createValidPuzzle("Broken")
	invalid.Layout[2] = "#.#"
	writePuzzleFile(t, dir, "broken", invalid)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "garbled.json"), []byte("{not json"), 0644))

	m, err := NewManager(dir)
	require.NoError(t, err)

	t.Run("load existing puzzle", func(t *testing.T) {
		p, err := m.LoadPuzzle("maze")
		require.NoError(t, err)
		assert.Equal(t, "Maze", p.Name)
	})

	t.Run("load with .json extension", func(t *testing.T) {
		p, err := m.LoadPuzzle("maze.json")
		require.NoError(t, err)
		assert.Equal(t, "Maze", p.Name)
	})

	t.Run("load from cache", func(t *testing.T) {
		first, err := m.LoadPuzzle("maze")
		require.NoError(t, err)
		require.NoError(t, os.Remove(filepath.Join(dir, "maze.json")))
		second, err := m.LoadPuzzle("maze")
		require.NoError(t, err)
		assert.Same(t, first, second)
	})

	t.Run("load non-existent puzzle", func(t *testing.T) {
		_, err := m.LoadPuzzle("nope")
		assert.ErrorIs(t, err, ErrPuzzleNotFound)
	})

	t.Run("reject path traversal", func(t *testing.T) {
		_, err := m.LoadPuzzle("../etc/passwd")
		assert.ErrorIs(t, err, ErrPuzzleNotFound)
	})

	t.Run("load invalid puzzle", func(t *testing.T) {
		_, err := m.LoadPuzzle("broken")
		assert.ErrorIs(t, err, ErrInvalidPuzzle)
	})

	t.Run("load malformed JSON", func(t *testing.T) {
		_, err := m.LoadPuzzle("garbled")
		assert.ErrorIs(t, err, ErrInvalidPuzzle)
	})
}

func TestManager_ListPuzzles(t *testing.T) {
	dir := t.TempDir()
	writePuzzleFile(t, dir, "b", createValidPuzzle("B"))
	writePuzzleFile(t, dir, "a", &puzzle.Puzzle{
		Name: "A", Description: "walker", Movement: puzzle.MovementWalker, Width: 4, Height: 3,
	})
	writePuzzleFile(t, dir, "bad", &puzzle.Puzzle{Name: "Bad"})
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.json"), 0755))

	m, err := NewManager(dir)
	require.NoError(t, err)

	infos, err := m.ListPuzzles()
	require.NoError(t, err)
	require.Len(t, infos, 2)

	assert.Equal(t, "a", infos[0].PuzzleID)
	assert.Equal(t, "a.json", infos[0].Filename)
	assert.Equal(t, "walker", infos[0].Movement)
	assert.Equal(t, 4, infos[0].Width)
	assert.Equal(t, 3, infos[0].Height)
	assert.Equal(t, "b", infos[1].PuzzleID)
	assert.Equal(t, 5, infos[1].Width)
}

func TestManager_BundledPuzzles(t *testing.T) {
	m, err := NewManager("../../configs")
	require.NoError(t, err)

	infos, err := m.ListPuzzles()
	require.NoError(t, err)

	ids := make([]string, 0, len(infos))
	for _, info := range infos {
		ids = append(ids, info.PuzzleID)
	}
	assert.Equal(t, []string{"bytefall", "racetrack", "reindeer", "reindeer_large"}, ids)
	assert.Equal(t, "Reindeer Maze", m.GetDefault().Name)
}

func TestManager_SaveAndRefresh(t *testing.T) {
	dir := t.TempDir()
	m, err := NewManager(dir)
	require.NoError(t, err)

	require.NoError(t, m.SavePuzzle("fresh", createValidPuzzle("Fresh")))
	_, err = os.Stat(filepath.Join(dir, "fresh.json"))
	require.NoError(t, err)

	p, err := m.LoadPuzzle("fresh")
	require.NoError(t, err)
	assert.Equal(t, "Fresh", p.Name)

	err = m.SavePuzzle("broken", &puzzle.Puzzle{Name: "x"})
	assert.ErrorIs(t, err, ErrInvalidPuzzle)
	err = m.SavePuzzle("../escape", createValidPuzzle("Escape"))
	assert.ErrorIs(t, err, ErrInvalidPuzzle)

	// Rewrite on disk; the cache keeps the old value until refreshed.
	writePuzzleFile(t, dir, "fresh", createValidPuzzle("Rewritten"))
	p, err = m.LoadPuzzle("fresh")
	require.NoError(t, err)
	assert.Equal(t, "Fresh", p.Name)

	require.NoError(t, m.RefreshCache())
	p, err = m.LoadPuzzle("fresh")
	require.NoError(t, err)
	assert.Equal(t, "Rewritten", p.Name)

	require.NoError(t, m.SetDefault("fresh"))
	assert.Equal(t, "Rewritten", m.GetDefault().Name)
	assert.ErrorIs(t, m.SetDefault("missing"), ErrPuzzleNotFound)
}

func TestManager_ConcurrentAccess(t *testing.T) {
	dir := t.TempDir()
	writePuzzleFile(t, dir, "maze", createValidPuzzle("Maze"))
	m, err := NewManager(dir)
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make(chan error, 40)
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, err := m.LoadPuzzle("maze")
			errs <- err
		}()
		go func() {
			defer wg.Done()
			_, err := m.ListPuzzles()
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
}
