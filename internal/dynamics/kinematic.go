package dynamics

import "github.com/san-kum/attsim/internal/attitude"

// Kinematic propagates attitude at constant body rate. Torque is ignored.
type Kinematic struct{}

func NewKinematic() *Kinematic {
	return &Kinematic{}
}

func (k *Kinematic) Derivative(_ float64, x attitude.State, _ attitude.Vec3) attitude.State {
	return attitude.State{Q: x.Q.Rate(x.W)}
}
