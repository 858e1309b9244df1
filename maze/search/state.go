package search

import (
	"fmt"

	"github.com/wricardo/gridpath/maze/grid"
)

// Move is an action taken from a state.
type Move uint8

const (
	StepForward Move = iota
	TurnLeft
	TurnRight
)

func (m Move) String() string {
	switch m {
	case StepForward:
		return "forward"
	case TurnLeft:
		return "left"
	case TurnRight:
		return "right"
	}
	return fmt.Sprintf("Move(%d)", uint8(m))
}

// State is a position plus facing, the unit of visitation in FacingSpace.
type State struct {
	Pos    grid.Position  `json:"pos"`
	Facing grid.Direction `json:"facing"`
}

func (s State) String() string {
	return fmt.Sprintf("(%s %s)", s.Pos, s.Facing)
}

// Successor is a legal transition: the move taken, the resulting state and
// the cost of taking it.
type Successor[S comparable] struct {
	Move  Move
	State S
	Cost  int
}

// Space enumerates legal transitions. Implementations must be pure: the same
// state always yields the same successors in the same order.
type Space[S comparable] interface {
	Successors(s S) []Successor[S]
}

// StartChecker is implemented by spaces that can reject a state before a
// search starts from it.
type StartChecker[S comparable] interface {
	CheckState(s S) error
}

// Reversible spaces can produce the space of predecessors, where every edge
// a -> b of cost c becomes b -> a of cost c.
type Reversible[S comparable] interface {
	Space[S]
	Reverse() Space[S]
}

// AtPosition is a goal predicate matching any facing at target.
func AtPosition(target grid.Position) func(State) bool {
	return func(s State) bool { return s.Pos == target }
}

// AtAnyPosition matches any facing at any of targets.
func AtAnyPosition(targets ...grid.Position) func(State) bool {
	set := make(map[grid.Position]struct{}, len(targets))
	for _, t := range targets {
		set[t] = struct{}{}
	}
	return func(s State) bool {
		_, ok := set[s.Pos]
		return ok
	}
}

// StatesAt returns the four facings at p.
func StatesAt(p grid.Position) []State {
	out := make([]State, 0, len(grid.Directions))
	for _, d := range grid.Directions {
		out = append(out, State{Pos: p, Facing: d})
	}
	return out
}

// Equals is a goal predicate for a single state of any space.
func Equals[S comparable](target S) func(S) bool {
	return func(s S) bool { return s == target }
}

// Cell projects a State onto its position.
func Cell(s State) grid.Position { return s.Pos }

// CheckStart fails fast when p cannot host a search start.
func CheckStart(g *grid.Grid, p grid.Position) error {
	if !g.InBounds(p) {
		return grid.Configf("start", "(%d,%d) is outside %dx%d", p.X, p.Y, g.Width(), g.Height())
	}
	if g.IsBlocked(p) {
		return grid.Configf("start", "(%d,%d) is blocked", p.X, p.Y)
	}
	return nil
}
