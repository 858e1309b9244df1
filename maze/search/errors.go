package search

import (
	"errors"
	"fmt"

	"github.com/wricardo/gridpath/maze/grid"
)

var (
	// ErrConfiguration is returned for unusable inputs (see grid.ErrConfiguration).
	ErrConfiguration = grid.ErrConfiguration

	// ErrInvariant is returned when a space reports a transition that could
	// regress a recorded cost, such as a negative edge cost.
	ErrInvariant = errors.New("invariant violation")

	// ErrUnreachable is for callers that want an error form of an
	// unreachable result. Run itself never returns it.
	ErrUnreachable = errors.New("goal unreachable")
)

// ConfigError is the typed form of ErrConfiguration.
type ConfigError = grid.ConfigError

// InvariantError reports the transition that broke the monotonic cost table.
type InvariantError struct {
	From any
	To   any
	Cost int
	Msg  string
}

func (e *InvariantError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s (%v -> %v, cost %d)", ErrInvariant.Error(), e.Msg, e.From, e.To, e.Cost)
}

func (e *InvariantError) Unwrap() error { return ErrInvariant }
