package grid

import "strings"

// Legend maps layout characters to their meaning.
type Legend struct {
	Wall  rune
	Open  rune
	Start rune
	End   rune
}

// DefaultLegend is the '#', '.', 'S', 'E' alphabet used by the bundled puzzles.
var DefaultLegend = Legend{Wall: '#', Open: '.', Start: 'S', End: 'E'}

// Layout is a parsed text map: the grid plus the marker cells found in it.
type Layout struct {
	Grid   *Grid
	Starts []Position
	Ends   []Position
}

// Start returns the single start marker.
func (l *Layout) Start() (Position, error) {
	return single(l.Starts, "start")
}

// End returns the single end marker.
func (l *Layout) End() (Position, error) {
	return single(l.Ends, "end")
}

func single(ps []Position, what string) (Position, error) {
	switch len(ps) {
	case 0:
		return Position{}, Configf("layout", "no %s marker", what)
	case 1:
		return ps[0], nil
	}
	return Position{}, Configf("layout", "%d %s markers, expected 1", len(ps), what)
}

// Parse builds a Layout from text rows. Every row must have the same width
// and contain only legend characters. Marker cells are open.
func Parse(rows []string, legend Legend) (*Layout, error) {
	rows = trimTrailingBlank(rows)
	if len(rows) == 0 {
		return nil, Configf("layout", "is empty")
	}

	width := len([]rune(rows[0]))
	var (
		blocked []Position
		layout  Layout
	)
	for y, row := range rows {
		cells := []rune(row)
		if len(cells) != width {
			return nil, Configf("layout", "row %d has width %d, expected %d", y+1, len(cells), width)
		}
		for x, c := range cells {
			p := Position{X: x, Y: y}
			switch c {
			case legend.Wall:
				blocked = append(blocked, p)
			case legend.Open:
			case legend.Start:
				layout.Starts = append(layout.Starts, p)
			case legend.End:
				layout.Ends = append(layout.Ends, p)
			default:
				return nil, Configf("layout", "invalid character '%c' at row %d, col %d", c, y+1, x+1)
			}
		}
	}

	g, err := New(width, len(rows), blocked)
	if err != nil {
		return nil, err
	}
	layout.Grid = g
	return &layout, nil
}

// ParseString splits s on newlines and parses it with the default legend.
func ParseString(s string) (*Layout, error) {
	return Parse(strings.Split(strings.TrimSpace(s), "\n"), DefaultLegend)
}

// Render draws g back to text, marking the given cells with mark.
func Render(g *Grid, legend Legend, mark rune, marked func(Position) bool) []string {
	rows := make([]string, g.height)
	var b strings.Builder
	for y := 0; y < g.height; y++ {
		b.Reset()
		for x := 0; x < g.width; x++ {
			p := Position{X: x, Y: y}
			switch {
			case g.IsBlocked(p):
				b.WriteRune(legend.Wall)
			case marked != nil && marked(p):
				b.WriteRune(mark)
			default:
				b.WriteRune(legend.Open)
			}
		}
		rows[y] = b.String()
	}
	return rows
}

func trimTrailingBlank(rows []string) []string {
	for len(rows) > 0 && strings.TrimSpace(rows[len(rows)-1]) == "" {
		rows = rows[:len(rows)-1]
	}
	return rows
}
