// Package sim defines the component abstractions of the attitude simulation
// and the [Simulation] orchestrator that wires them together.
//
// Components are injected into [New] and owned by the simulation for its
// lifetime:
//
//   - [Dynamics]: state derivative ẋ = f(t, x, τ)
//   - [Integrator]: fixed-step propagation with a per-step [TorqueFunc]
//   - [Sensor]: attitude measurement from the true state
//   - [Reference]: desired attitude and rate at time t
//   - [Controller]: commanded body torque
//   - [Actuator]: commanded to applied torque
//
// Once per integration step the torque callback runs
// sensor → reference → controller → actuator and returns both the commanded
// and the applied torque. The integrator feeds the applied torque to the
// dynamics and records the pair in its [Trajectory].
//
// # Example
//
//	dyn, _ := dynamics.NewRigidBody(attitude.Eye())
//	s, _ := sim.New(dyn, integrators.NewRK4(), control.NewZero(),
//		sensor.NewIdeal(), actuator.NewIdeal(), reference.NewConstant(attitude.Identity, attitude.Vec3{}))
//	result, err := s.Run(sim.Config{Dt: 0.01, NumSteps: 100}, x0)
//
// # Thread Safety
//
// Controllers and actuators may carry state across calls (sample-and-hold
// timers, wheel speeds) and are not reset between runs. A Simulation must not
// be shared between goroutines; use [Sweep] with a build function that
// constructs fresh components for every run.
package sim
