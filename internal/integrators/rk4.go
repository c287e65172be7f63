package integrators

import (
	"github.com/san-kum/attsim/internal/attitude"
	"github.com/san-kum/attsim/internal/sim"
)

// RK4 is the classical four-stage Runge-Kutta method. The control torque is
// sampled once at the step start and held across all four stages.
type RK4 struct{}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) Integrate(dyn sim.Dynamics, t0 float64, x0 attitude.State, dt float64, numSteps int, torque sim.TorqueFunc) sim.Trajectory {
	return propagate(r, dyn, t0, x0, dt, numSteps, torque)
}

func (r *RK4) step(dyn sim.Dynamics, t float64, x attitude.State, dt float64, tau attitude.Vec3) attitude.State {
	half := 0.5 * dt

	k1 := dyn.Derivative(t, x, tau)
	k2 := dyn.Derivative(t+half, axpy(x, half, k1), tau)
	k3 := dyn.Derivative(t+half, axpy(x, half, k2), tau)
	k4 := dyn.Derivative(t+dt, axpy(x, dt, k3), tau)

	dt6 := dt / 6.0
	var next attitude.State
	for i := range x.Q {
		next.Q[i] = x.Q[i] + dt6*(k1.Q[i]+2*k2.Q[i]+2*k3.Q[i]+k4.Q[i])
	}
	for i := range x.W {
		next.W[i] = x.W[i] + dt6*(k1.W[i]+2*k2.W[i]+2*k3.W[i]+k4.W[i])
	}
	next.Q = next.Q.Normalize()

	return next
}
