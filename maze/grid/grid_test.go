package grid

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Bounds(t *testing.T) {
	tests := []struct {
		name    string
		w, h    int
		blocked []Position
		wantErr bool
	}{
		{"valid empty", 3, 3, nil, false},
		{"valid with obstacles", 3, 2, []Position{{1, 1}, {2, 0}}, false},
		{"zero width", 0, 3, nil, true},
		{"negative height", 3, -1, nil, true},
		{"obstacle outside", 3, 3, []Position{{3, 0}}, true},
		{"obstacle negative", 3, 3, []Position{{0, -1}}, true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			g, err := New(test.w, test.h, test.blocked)
			if test.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrConfiguration), "expected configuration error, got %v", err)
				var cfgErr *ConfigError
				assert.True(t, errors.As(err, &cfgErr))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.w, g.Width())
			assert.Equal(t, test.h, g.Height())
		})
	}
}

func TestGrid_Membership(t *testing.T) {
	g, err := New(4, 3, []Position{{1, 1}, {1, 1}, {3, 2}})
	require.NoError(t, err)

	assert.Equal(t, 2, g.BlockedCount())
	assert.Equal(t, 10, g.OpenCount())

	assert.True(t, g.IsBlocked(Pos(1, 1)))
	assert.False(t, g.IsBlocked(Pos(0, 0)))
	assert.True(t, g.InBounds(Pos(3, 2)))
	assert.False(t, g.InBounds(Pos(4, 0)))
	assert.False(t, g.InBounds(Pos(-1, 0)))
	assert.False(t, g.Open(Pos(3, 2)))
	assert.False(t, g.Open(Pos(0, 3)))
	assert.True(t, g.Open(Pos(2, 2)))

	assert.Equal(t, []Position{{1, 1}, {3, 2}}, g.Blocked())
}

func TestGrid_WithBlockedLeavesOriginal(t *testing.T) {
	g, err := New(3, 3, []Position{{0, 0}})
	require.NoError(t, err)

	more, err := g.WithBlocked(Pos(1, 1), Pos(2, 2))
	require.NoError(t, err)

	assert.Equal(t, 1, g.BlockedCount())
	assert.Equal(t, 3, more.BlockedCount())
	assert.False(t, g.IsBlocked(Pos(1, 1)))

	_, err = g.WithBlocked(Pos(5, 5))
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestDirection_Rotation(t *testing.T) {
	for _, d := range Directions {
		assert.Equal(t, d, d.Left().Right(), "left then right from %s", d)
		assert.Equal(t, d, d.Right().Left(), "right then left from %s", d)
		assert.Equal(t, d, d.Left().Left().Left().Left(), "four lefts from %s", d)
		assert.Equal(t, d.Opposite(), d.Right().Right())
	}

	assert.Equal(t, West, North.Left())
	assert.Equal(t, East, North.Right())
	assert.Equal(t, North, East.Left())
	assert.Equal(t, South, East.Right())
}

func TestDirection_DeltaAndParse(t *testing.T) {
	tests := []struct {
		input  string
		want   Direction
		dx, dy int
	}{
		{"north", North, 0, -1},
		{"UP", North, 0, -1},
		{"e", East, 1, 0},
		{"down", South, 0, 1},
		{"West", West, -1, 0},
	}
	for _, test := range tests {
		t.Run(test.input, func(t *testing.T) {
			d, err := ParseDirection(test.input)
			require.NoError(t, err)
			assert.Equal(t, test.want, d)
			dx, dy := d.Delta()
			assert.Equal(t, test.dx, dx)
			assert.Equal(t, test.dy, dy)
		})
	}

	_, err := ParseDirection("sideways")
	assert.Error(t, err)
}

func TestDirection_TextRoundTrip(t *testing.T) {
	var d Direction
	require.NoError(t, d.UnmarshalText([]byte("south")))
	assert.Equal(t, South, d)

	text, err := West.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "west", string(text))
}

func TestPosition_Helpers(t *testing.T) {
	p := Pos(2, 3)
	assert.Equal(t, Pos(2, 2), p.Step(North))
	assert.Equal(t, Pos(3, 3), p.Step(East))
	assert.Equal(t, 7, p.Manhattan(Pos(-1, -1)))
	assert.Equal(t, 0, p.Manhattan(p))
	assert.Equal(t, "2,3", p.String())

	parsed, err := ParsePosition(" 6, 1 ")
	require.NoError(t, err)
	assert.Equal(t, Pos(6, 1), parsed)

	_, err = ParsePosition("6;1")
	assert.Error(t, err)
	_, err = ParsePosition("a,1")
	assert.Error(t, err)
}

func TestPath_Steps(t *testing.T) {
	var empty Path
	assert.Equal(t, 0, empty.Steps())
	_, ok := empty.Start()
	assert.False(t, ok)

	path := Path{Pos(0, 0), Pos(1, 0), Pos(1, 1)}
	assert.Equal(t, 2, path.Steps())
	start, _ := path.Start()
	end, _ := path.End()
	assert.Equal(t, Pos(0, 0), start)
	assert.Equal(t, Pos(1, 1), end)
}
