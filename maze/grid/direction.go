package grid

import (
	"fmt"
	"strings"
)

// Direction is one of the four cardinal facings.
type Direction uint8

const (
	North Direction = iota
	East
	South
	West
)

// Directions lists every facing clockwise from North.
var Directions = [4]Direction{North, East, South, West}

var directionDeltas = [4][2]int{
	{0, -1}, // North
	{1, 0},  // East
	{0, 1},  // South
	{-1, 0}, // West
}

var directionNames = [4]string{"north", "east", "south", "west"}

// Left rotates counter-clockwise.
func (d Direction) Left() Direction {
	return (d + 3) % 4
}

// Right rotates clockwise.
func (d Direction) Right() Direction {
	return (d + 1) % 4
}

// Opposite turns around.
func (d Direction) Opposite() Direction {
	return (d + 2) % 4
}

// Delta returns the unit vector for d.
func (d Direction) Delta() (dx, dy int) {
	v := directionDeltas[d%4]
	return v[0], v[1]
}

func (d Direction) String() string {
	if d > West {
		return fmt.Sprintf("Direction(%d)", uint8(d))
	}
	return directionNames[d]
}

// ParseDirection accepts the long names, single letters, and the
// up/down/left/right aliases used by the game-style transports.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "north", "n", "up":
		return North, nil
	case "east", "e", "right":
		return East, nil
	case "south", "s", "down":
		return South, nil
	case "west", "w", "left":
		return West, nil
	}
	return North, fmt.Errorf("unknown direction %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (d Direction) MarshalText() ([]byte, error) {
	if d > West {
		return nil, fmt.Errorf("invalid direction %d", uint8(d))
	}
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Direction) UnmarshalText(text []byte) error {
	parsed, err := ParseDirection(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
