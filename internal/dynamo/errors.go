package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for simulation operations.
var (
	// ErrInvalidArgument is the root of every rejected configuration.
	ErrInvalidArgument = errors.New("dynamo: invalid argument")

	// ErrUnsupportedModel indicates a model tag other than schrodinger_1d.
	ErrUnsupportedModel = fmt.Errorf("%w: unsupported model", ErrInvalidArgument)

	// ErrNilConfig indicates an absent configuration object.
	ErrNilConfig = fmt.Errorf("%w: configuration is nil", ErrInvalidArgument)

	// ErrInvalidState indicates a wavefunction containing NaN or Inf.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")

	// ErrDimensionMismatch indicates buffers of different lengths.
	ErrDimensionMismatch = errors.New("dynamo: dimension mismatch between state and grid")
)

// ConfigError wraps a rejection with the field that caused it.
type ConfigError struct {
	Field   string
	Value   any
	Wrapped error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s (%s=%v)", e.Wrapped.Error(), e.Field, e.Value)
}

func (e *ConfigError) Unwrap() error {
	return e.Wrapped
}

// Invalid builds a ConfigError rooted at ErrInvalidArgument.
func Invalid(field string, value any) error {
	return &ConfigError{Field: field, Value: value, Wrapped: ErrInvalidArgument}
}

// SimulationError wraps an error with the step at which it occurred.
type SimulationError struct {
	Step    int
	Time    float64
	Wrapped error
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %s", e.Step, e.Time, e.Wrapped.Error())
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}
