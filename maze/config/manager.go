package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/wricardo/gridpath/maze/puzzle"
	"github.com/wricardo/gridpath/maze/service"
)

var (
	ErrPuzzleNotFound = errors.New("puzzle not found")
	ErrInvalidPuzzle  = errors.New("invalid puzzle")
)

// DefaultPuzzle is loaded as the default when present.
const DefaultPuzzle = "reindeer"

// Manager handles puzzle file loading and caching
type Manager struct {
	dir           string
	defaultPuzzle *puzzle.Puzzle
	puzzles       map[string]*puzzle.Puzzle
	mu            sync.RWMutex
}

// NewManager creates a new puzzle manager for dir
func NewManager(dir string) (*Manager, error) {
	// Ensure puzzle directory exists
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil, fmt.Errorf("puzzle directory does not exist: %s", dir)
	}

	m := &Manager{
		dir:     dir,
		puzzles: make(map[string]*puzzle.Puzzle),
	}

	if err := m.loadDefault(); err != nil {
		return nil, fmt.Errorf("failed to load default puzzle: %w", err)
	}

	return m, nil
}

// LoadPuzzle loads a puzzle by id (file name without .json)
func (m *Manager) LoadPuzzle(name string) (*puzzle.Puzzle, error) {
	name = strings.TrimSuffix(name, ".json")
	if name == "" || strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return nil, fmt.Errorf("%w: bad puzzle id %q", ErrPuzzleNotFound, name)
	}

	m.mu.RLock()
	// Check cache first
	if p, exists := m.puzzles[name]; exists {
		m.mu.RUnlock()
		return p, nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	// Double-check after acquiring write lock
	if p, exists := m.puzzles[name]; exists {
		return p, nil
	}

	data, err := os.ReadFile(filepath.Join(m.dir, name+".json"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrPuzzleNotFound
		}
		return nil, fmt.Errorf("failed to read puzzle file: %w", err)
	}

	var p puzzle.Puzzle
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("%w: failed to parse: %v", ErrInvalidPuzzle, err)
	}
	if err := puzzle.Validate(&p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPuzzle, err)
	}

	m.puzzles[name] = &p
	return &p, nil
}

// ListPuzzles returns information about all valid puzzles, sorted by id
func (m *Manager) ListPuzzles() ([]*service.PuzzleInfo, error) {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read puzzle directory: %w", err)
	}

	var infos []*service.PuzzleInfo
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		id := strings.TrimSuffix(entry.Name(), ".json")
		p, err := m.LoadPuzzle(id)
		if err != nil {
			// Skip invalid puzzles
			continue
		}
		board, err := puzzle.Build(p)
		if err != nil {
			continue
		}

		infos = append(infos, &service.PuzzleInfo{
			Filename:    entry.Name(),
			PuzzleID:    id,
			Name:        p.Name,
			Description: p.Description,
			Movement:    string(p.Movement),
			Width:       board.Grid.Width(),
			Height:      board.Grid.Height(),
		})
	}

	sort.Slice(infos, func(i, j int) bool { return infos[i].PuzzleID < infos[j].PuzzleID })
	return infos, nil
}

// GetDefault returns the default puzzle
func (m *Manager) GetDefault() *puzzle.Puzzle {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.defaultPuzzle
}

// SetDefault sets the default puzzle by id
func (m *Manager) SetDefault(name string) error {
	p, err := m.LoadPuzzle(name)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultPuzzle = p
	return nil
}

// RefreshCache drops cached puzzles and reloads the default from disk
func (m *Manager) RefreshCache() error {
	m.mu.Lock()
	m.puzzles = make(map[string]*puzzle.Puzzle)
	m.mu.Unlock()

	return m.loadDefault()
}

// loadDefault loads DefaultPuzzle, falling back to the first valid puzzle
// and then to a minimal built-in one.
func (m *Manager) loadDefault() error {
	p, err := m.LoadPuzzle(DefaultPuzzle)
	if err != nil {
		infos, listErr := m.ListPuzzles()
		if listErr != nil || len(infos) == 0 {
			p = minimalPuzzle()
		} else if p, err = m.LoadPuzzle(infos[0].PuzzleID); err != nil {
			p = minimalPuzzle()
		}
	}

	m.mu.Lock()
	m.defaultPuzzle = p
	m.mu.Unlock()
	return nil
}

// SavePuzzle validates a puzzle and writes it to disk
func (m *Manager) SavePuzzle(name string, p *puzzle.Puzzle) error {
	name = strings.TrimSuffix(name, ".json")
	if name == "" || strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return fmt.Errorf("%w: bad puzzle id %q", ErrInvalidPuzzle, name)
	}
	if err := puzzle.Validate(p); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPuzzle, err)
	}

	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal puzzle: %w", err)
	}
	if err := os.WriteFile(filepath.Join(m.dir, name+".json"), append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write puzzle file: %w", err)
	}

	m.mu.Lock()
	m.puzzles[name] = p
	m.mu.Unlock()
	return nil
}

// minimalPuzzle is used when the directory holds no valid puzzle
func minimalPuzzle() *puzzle.Puzzle {
	return &puzzle.Puzzle{
		Name:        "default",
		Description: "Default minimal puzzle",
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
