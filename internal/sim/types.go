package sim

import "github.com/san-kum/attsim/internal/attitude"

// Dynamics computes the state derivative for a body torque tau.
// The quaternion part of the returned value is dq/dt.
type Dynamics interface {
	Derivative(t float64, x attitude.State, tau attitude.Vec3) attitude.State
}

// Actuation is the torque pair produced by one evaluation of the control loop.
type Actuation struct {
	Commanded attitude.Vec3
	Applied   attitude.Vec3
}

// TorqueFunc resolves the actuation at the start of a step.
type TorqueFunc func(t float64, x attitude.State) Actuation

// Trajectory is the output of an integration: numSteps+1 states starting
// with the unmodified initial state, and one actuation per step.
type Trajectory struct {
	States     []attitude.State
	Actuations []Actuation
}

type Integrator interface {
	Integrate(dyn Dynamics, t0 float64, x0 attitude.State, dt float64, numSteps int, torque TorqueFunc) Trajectory
}

// Sensor measures attitude from the true state.
type Sensor interface {
	MeasureAttitude(t float64, truth attitude.State) attitude.Quat
}

// Reference yields the desired attitude and rate. est is the current
// estimated state; profiles that do not depend on it ignore it.
type Reference interface {
	Reference(t float64, est attitude.State) attitude.ReferenceState
}

// Controller computes a commanded body torque. Implementations may update
// internal timing state on every call.
type Controller interface {
	Command(t float64, est attitude.State, ref attitude.ReferenceState) attitude.Vec3
}

// Actuator maps a commanded torque to the torque applied to the body.
// Implementations may integrate internal state on every call.
type Actuator interface {
	Apply(t float64, truth attitude.State, cmd attitude.Vec3) attitude.Vec3
}

// Sample is one grid point of a finished run as seen by metrics and observers.
// Torques are only meaningful when HasTorque is set; the final sample has none.
type Sample struct {
	Step          int
	Time          float64
	State         attitude.State
	Reference     attitude.ReferenceState
	AttitudeError attitude.Vec3
	RateError     attitude.Vec3
	Actuation     Actuation
	HasTorque     bool
}

type Metric interface {
	Name() string
	Observe(s Sample)
	Value() float64
	Reset()
}

type Observer interface {
	OnSample(s Sample)
}

type Config struct {
	T0       float64
	Dt       float64
	NumSteps int
}

// Result holds the parallel time series of one run. State and reference
// series have NumSteps+1 entries, torque series NumSteps.
type Result struct {
	Times          []float64
	States         []attitude.State
	Commanded      []attitude.Vec3
	Applied        []attitude.Vec3
	References     []attitude.ReferenceState
	AttitudeErrors []attitude.Vec3
	RateErrors     []attitude.Vec3
	Metrics        map[string]float64
}

// Final returns the last state of the run. ok is false when the result holds
// no states, which happens when the initial state itself is not finite.
func (r *Result) Final() (x attitude.State, ok bool) {
	if r == nil || len(r.States) == 0 {
		return attitude.State{}, false
	}
	return r.States[len(r.States)-1], true
}
