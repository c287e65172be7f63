package integrators

import (
	"github.com/san-kum/attsim/internal/attitude"
	"github.com/san-kum/attsim/internal/sim"
)

type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Integrate(dyn sim.Dynamics, t0 float64, x0 attitude.State, dt float64, numSteps int, torque sim.TorqueFunc) sim.Trajectory {
	return propagate(e, dyn, t0, x0, dt, numSteps, torque)
}

func (e *Euler) step(dyn sim.Dynamics, t float64, x attitude.State, dt float64, tau attitude.Vec3) attitude.State {
	dx := dyn.Derivative(t, x, tau)
	next := axpy(x, dt, dx)
	next.Q = next.Q.Normalize()
	return next
}
