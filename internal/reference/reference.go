// Package reference provides desired attitude and rate profiles.
package reference

import "github.com/san-kum/attsim/internal/attitude"

// Constant holds a fixed attitude and rate for all time.
type Constant struct {
	Q attitude.Quat
	W attitude.Vec3
}

func NewConstant(q attitude.Quat, w attitude.Vec3) *Constant {
	return &Constant{Q: q, W: w}
}

func (c *Constant) Reference(_ float64, _ attitude.State) attitude.ReferenceState {
	return attitude.ReferenceState{QRef: c.Q, WRef: c.W}
}

// Spin tracks a constant body rate while taking the desired attitude to be
// the current estimate, so only the rate error drives the controller.
type Spin struct {
	W attitude.Vec3
}

func NewSpin(w attitude.Vec3) *Spin {
	return &Spin{W: w}
}

func (s *Spin) Reference(_ float64, est attitude.State) attitude.ReferenceState {
	return attitude.ReferenceState{QRef: est.Q, WRef: s.W}
}
