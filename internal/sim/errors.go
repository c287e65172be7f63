package sim

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfig indicates dt <= 0 or a negative step count.
	ErrInvalidConfig = errors.New("sim: invalid simulation config")

	// ErrMissingComponent indicates a nil component passed to New.
	ErrMissingComponent = errors.New("sim: missing component")

	// ErrInvalidState indicates a state with NaN or Inf components.
	ErrInvalidState = errors.New("sim: invalid state (NaN or Inf detected)")
)

// RunError reports the first step whose propagated state was not finite.
type RunError struct {
	Step    int
	Time    float64
	Wrapped error
}

func (e *RunError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %v", e.Step, e.Time, e.Wrapped)
}

func (e *RunError) Unwrap() error {
	return e.Wrapped
}
