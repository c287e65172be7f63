package control

import "errors"

var (
	// ErrInvalidWeights indicates a negative state weight or a non-positive
	// control weight was passed to SynthesizeLQR.
	ErrInvalidWeights = errors.New("control: invalid LQR weights")

	// ErrNoConvergence indicates the Riccati iteration did not settle.
	ErrNoConvergence = errors.New("control: riccati iteration did not converge")
)
