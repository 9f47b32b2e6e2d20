package effect

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidState is matched by every *InvalidStateError.
	ErrInvalidState = errors.New("effect: invalid state transition")

	// ErrUnknownVariant is returned when a variant name cannot be resolved.
	ErrUnknownVariant = errors.New("effect: unknown variant")

	// ErrLayerAttached is returned by a Surface asked to append a node it already holds.
	ErrLayerAttached = errors.New("effect: layer already attached")

	// ErrLayerNotAttached is returned by a Surface asked to remove a node it does not hold.
	ErrLayerNotAttached = errors.New("effect: layer not attached")
)

// InvalidStateError reports a lifecycle call made from the wrong state.
type InvalidStateError struct {
	Op    string // "run", "stop"
	State State
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("effect: %s not allowed in state %s", e.Op, e.State)
}

// Is makes errors.Is(err, ErrInvalidState) hold.
func (e *InvalidStateError) Is(target error) bool {
	return target == ErrInvalidState
}

// ConfigError reports a cell field out of its valid range.
type ConfigError struct {
	Field string
	Value float64
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("effect: %s must be non-negative, got %g", e.Field, e.Value)
}
