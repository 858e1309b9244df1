package puzzle

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/wricardo/gridpath/maze/grid"
)

// ErrInvalid marks every validation failure.
var ErrInvalid = errors.New("puzzle validation")

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...)
}

// Validate checks a puzzle for correctness and builds it once to catch layout
// problems.
func Validate(p *Puzzle) error {
	_, err := Build(p)
	return err
}

// Build validates p and resolves it into a board.
func Build(p *Puzzle) (*Board, error) {
	if p == nil {
		return nil, invalidf("puzzle is nil")
	}
	if err := validateFields(p); err != nil {
		return nil, err
	}

	var board *Board
	var err error
	if len(p.Layout) > 0 {
		board, err = buildLayout(p)
	} else {
		board, err = buildObstacles(p)
	}
	if err != nil {
		return nil, err
	}

	board.Facing = grid.East
	if p.Facing != "" {
		board.Facing, err = grid.ParseDirection(p.Facing)
		if err != nil {
			return nil, invalidf("facing: %w", err)
		}
	}

	if !board.Grid.InBounds(board.Start) {
		return nil, invalidf("start %s is out of bounds", board.Start)
	}
	if !board.Grid.InBounds(board.Goal) {
		return nil, invalidf("goal %s is out of bounds", board.Goal)
	}
	if board.Grid.IsBlocked(board.Start) {
		return nil, invalidf("start %s is blocked", board.Start)
	}
	if board.Grid.IsBlocked(board.Goal) {
		return nil, invalidf("goal %s is blocked", board.Goal)
	}
	return board, nil
}

func validateFields(p *Puzzle) error {
	// Validate required fields
	if p.Name == "" {
		return invalidf("name is required")
	}
	if p.Description == "" {
		return invalidf("description is required")
	}

	switch p.Movement {
	case MovementFacing, MovementWalker:
	default:
		return invalidf("movement must be %q or %q, got %q", MovementFacing, MovementWalker, p.Movement)
	}

	// Validate costs
	if c := p.Forward(); c < 0 || c > MaxCost {
		return invalidf("forward_cost must be between 0 and %d, got %d", MaxCost, c)
	}
	if c := p.Turn(); c < 0 || c > MaxCost {
		return invalidf("turn_cost must be between 0 and %d, got %d", MaxCost, c)
	}
	if p.CheatBudget < 0 {
		return invalidf("cheat_budget must not be negative, got %d", p.CheatBudget)
	}
	if p.SavingThreshold < 0 {
		return invalidf("saving_threshold must not be negative, got %d", p.SavingThreshold)
	}

	// Validate grid source
	hasLayout := len(p.Layout) > 0
	hasSize := p.Width != 0 || p.Height != 0
	switch {
	case hasLayout && hasSize:
		return invalidf("layout and width/height are mutually exclusive")
	case hasLayout && len(p.Obstacles) > 0:
		return invalidf("obstacles require width/height, not layout")
	case !hasLayout && !hasSize:
		return invalidf("either layout or width/height is required")
	}

	if hasLayout {
		if len(p.Layout) < MinGridSize || len(p.Layout) > MaxGridSize {
			return invalidf("layout must have between %d and %d rows, got %d", MinGridSize, MaxGridSize, len(p.Layout))
		}
		if p.DropCount != nil {
			return invalidf("drop_count requires an obstacle list")
		}
		return nil
	}

	if p.Width < MinGridSize || p.Width > MaxGridSize {
		return invalidf("width must be between %d and %d, got %d", MinGridSize, MaxGridSize, p.Width)
	}
	if p.Height < MinGridSize || p.Height > MaxGridSize {
		return invalidf("height must be between %d and %d, got %d", MinGridSize, MaxGridSize, p.Height)
	}
	if len(p.Obstacles) > MaxObstacles {
		return invalidf("at most %d obstacles allowed, got %d", MaxObstacles, len(p.Obstacles))
	}
	if n := p.Placed(); n < 0 || n > len(p.Obstacles) {
		return invalidf("drop_count must be between 0 and %d, got %d", len(p.Obstacles), n)
	}
	return nil
}

// ResolveLegend returns the layout legend with overrides applied.
func (p *Puzzle) ResolveLegend() (grid.Legend, error) {
	legend := grid.DefaultLegend
	if p.Legend == nil {
		return legend, nil
	}

	fields := []struct {
		name  string
		value string
		dst   *rune
	}{
		{"wall", p.Legend.Wall, &legend.Wall},
		{"open", p.Legend.Open, &legend.Open},
		{"start", p.Legend.Start, &legend.Start},
		{"end", p.Legend.End, &legend.End},
	}
	seen := map[rune]string{}
	for _, f := range fields {
		if f.value != "" {
			if utf8.RuneCountInString(f.value) != 1 {
				return legend, invalidf("legend.%s must be a single character, got %q", f.name, f.value)
			}
			*f.dst, _ = utf8.DecodeRuneInString(f.value)
		}
		if other, dup := seen[*f.dst]; dup {
			return legend, invalidf("legend.%s and legend.%s share %q", other, f.name, *f.dst)
		}
		seen[*f.dst] = f.name
	}
	return legend, nil
}

func buildLayout(p *Puzzle) (*Board, error) {
	legend, err := p.ResolveLegend()
	if err != nil {
		return nil, err
	}
	layout, err := grid.Parse(p.Layout, legend)
	if err != nil {
		return nil, invalidf("layout: %w", err)
	}

	if w := layout.Grid.Width(); w > MaxGridSize {
		return nil, invalidf("layout rows must be at most %d characters, got %d", MaxGridSize, w)
	}

	board := &Board{Puzzle: p, Grid: layout.Grid}
	if p.Start != nil {
		board.Start = *p.Start
	} else if board.Start, err = layout.Start(); err != nil {
		return nil, invalidf("layout: %w", err)
	}
	if p.Goal != nil {
		board.Goal = *p.Goal
	} else if board.Goal, err = layout.End(); err != nil {
		return nil, invalidf("layout: %w", err)
	}
	return board, nil
}

func buildObstacles(p *Puzzle) (*Board, error) {
	drops := make([]grid.Position, 0, len(p.Obstacles))
	for i, raw := range p.Obstacles {
		pos, err := grid.ParsePosition(raw)
		if err != nil {
			return nil, invalidf("obstacles[%d]: %w", i, err)
		}
		drops = append(drops, pos)
	}

	g, err := grid.New(p.Width, p.Height, drops[:p.Placed()])
	if err != nil {
		return nil, invalidf("%w", err)
	}
	for i, d := range drops[p.Placed():] {
		if !g.InBounds(d) {
			return nil, invalidf("obstacles[%d]: %s is out of bounds", p.Placed()+i, d)
		}
	}

	board := &Board{
		Puzzle: p,
		Grid:   g,
		Start:  grid.Pos(0, 0),
		Goal:   grid.Pos(p.Width-1, p.Height-1),
		Drops:  drops,
	}
	if p.Start != nil {
		board.Start = *p.Start
	}
	if p.Goal != nil {
		board.Goal = *p.Goal
	}
	return board, nil
}

// Parse decodes and validates a puzzle from JSON.
func Parse(data []byte) (*Puzzle, error) {
	var p Puzzle
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, err
	}
	if err := Validate(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Load loads a puzzle from a JSON file.
func Load(filename string) (*Puzzle, error) {
	// Support PUZZLE_DIR environment variable for an alternative directory
	path := filename
	if dir := os.Getenv("PUZZLE_DIR"); dir != "" && strings.HasPrefix(filename, "configs/") {
		path = filepath.Join(dir, strings.TrimPrefix(filename, "configs/"))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}
