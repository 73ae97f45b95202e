package game

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration matches every *ConfigError via errors.Is.
	ErrConfiguration = errors.New("invalid game configuration")

	ErrEmptyCatalog    = errors.New("catalog is empty")
	ErrCatalogTooSmall = errors.New("catalog has fewer entries than items per round")
	ErrNoScheduler     = errors.New("no scheduler for the round advance")
)

// ConfigError reports a setting or catalog that prevents a session from starting.
type ConfigError struct {
	Field  string
	Reason string
	Err    error // optional underlying sentinel
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config %s: %s", e.Field, e.Reason)
}

func (e *ConfigError) Is(target error) bool {
	return target == ErrConfiguration || (e.Err != nil && errors.Is(e.Err, target))
}

func (e *ConfigError) Unwrap() error { return e.Err }

// InvariantError is panicked when the core detects a state it should never reach.
type InvariantError struct {
	What string
}

func (e *InvariantError) Error() string { return "invariant violated: " + e.What }

func invariant(ok bool, format string, args ...any) {
	if !ok {
		panic(&InvariantError{What: fmt.Sprintf(format, args...)})
	}
}
