package grid

import (
	"sort"

	"github.com/zyedidia/generic/mapset"
)

// Grid is a bounded obstacle map. It is read-only once built and may be
// shared freely between searches.
type Grid struct {
	width   int
	height  int
	blocked mapset.Set[Position]
}

// New builds a width x height grid with the given blocked cells.
// Duplicate obstacles are collapsed.
func New(width, height int, blocked []Position) (*Grid, error) {
	if width <= 0 {
		return nil, Configf("width", "must be positive, got %d", width)
	}
	if height <= 0 {
		return nil, Configf("height", "must be positive, got %d", height)
	}

	g := &Grid{
		width:   width,
		height:  height,
		blocked: mapset.New[Position](),
	}
	for _, p := range blocked {
		if !g.InBounds(p) {
			return nil, Configf("obstacles", "obstacle at (%d,%d) is outside %dx%d", p.X, p.Y, width, height)
		}
		g.blocked.Put(p)
	}
	return g, nil
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// InBounds reports whether p lies inside the grid.
func (g *Grid) InBounds(p Position) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < g.width && p.Y < g.height
}

// IsBlocked reports whether p holds an obstacle.
func (g *Grid) IsBlocked(p Position) bool {
	return g.blocked.Has(p)
}

// Open reports whether p can be occupied: in bounds and not blocked.
func (g *Grid) Open(p Position) bool {
	return g.InBounds(p) && !g.blocked.Has(p)
}

// BlockedCount returns the number of distinct obstacles.
func (g *Grid) BlockedCount() int {
	return g.blocked.Size()
}

// OpenCount returns the number of cells that can be occupied.
func (g *Grid) OpenCount() int {
	return g.width*g.height - g.blocked.Size()
}

// Blocked returns the obstacles in row-major order.
func (g *Grid) Blocked() []Position {
	out := make([]Position, 0, g.blocked.Size())
	g.blocked.Each(func(p Position) {
		out = append(out, p)
	})
	SortPositions(out)
	return out
}

// WithBlocked returns a copy of g with extra obstacles added. The receiver
// is left untouched.
func (g *Grid) WithBlocked(extra ...Position) (*Grid, error) {
	all := g.Blocked()
	all = append(all, extra...)
	return New(g.width, g.height, all)
}

// SortPositions sorts ps in row-major order.
func SortPositions(ps []Position) {
	sort.Slice(ps, func(i, j int) bool { return ps[i].Less(ps[j]) })
}
