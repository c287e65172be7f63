package integrators

import (
	"github.com/san-kum/attsim/internal/attitude"
	"github.com/san-kum/attsim/internal/sim"
)

// stepper advances x by dt under a torque held constant over the step.
type stepper interface {
	step(dyn sim.Dynamics, t float64, x attitude.State, dt float64, tau attitude.Vec3) attitude.State
}

// propagate runs the fixed-step loop shared by all methods. The torque
// callback is evaluated exactly once per step, at the step start.
func propagate(s stepper, dyn sim.Dynamics, t0 float64, x0 attitude.State, dt float64, numSteps int, torque sim.TorqueFunc) sim.Trajectory {
	if numSteps < 0 {
		numSteps = 0
	}
	traj := sim.Trajectory{
		States:     make([]attitude.State, 0, numSteps+1),
		Actuations: make([]sim.Actuation, 0, numSteps),
	}

	x := x0
	traj.States = append(traj.States, x)

	for k := 0; k < numSteps; k++ {
		t := t0 + float64(k)*dt
		a := torque(t, x)
		x = s.step(dyn, t, x, dt, a.Applied)
		traj.States = append(traj.States, x)
		traj.Actuations = append(traj.Actuations, a)
	}

	return traj
}

// axpy returns x + h·dx with the quaternion renormalization left to the caller.
func axpy(x attitude.State, h float64, dx attitude.State) attitude.State {
	var out attitude.State
	for i := range x.Q {
		out.Q[i] = x.Q[i] + h*dx.Q[i]
	}
	out.W = x.W.Add(dx.W.Scale(h))
	return out
}
