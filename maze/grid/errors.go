package grid

import (
	"errors"
	"fmt"
)

// ErrConfiguration marks input that can never produce a valid search:
// non-rectangular layouts, bad bounds, blocked starts, negative costs.
var ErrConfiguration = errors.New("configuration error")

// ConfigError wraps ErrConfiguration with the offending field.
type ConfigError struct {
	Kind  error
	Field string
	Msg   string
}

func (e *ConfigError) Error() string {
	if e == nil {
		return ""
	}
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", e.Kind.Error(), e.Msg)
	}
	return fmt.Sprintf("%s: %s: %s", e.Kind.Error(), e.Field, e.Msg)
}

func (e *ConfigError) Unwrap() error { return e.Kind }

// Configf builds a ConfigError for field.
func Configf(field, format string, args ...any) error {
	return &ConfigError{Kind: ErrConfiguration, Field: field, Msg: fmt.Sprintf(format, args...)}
}
