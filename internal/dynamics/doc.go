// Package dynamics provides attitude state-derivative models implementing
// [sim.Dynamics]:
//
//   - [Kinematic]: torque-free quaternion kinematics with constant rate
//   - [RigidBody]: quaternion kinematics plus Euler's rotational equation
//
// Both use q̇ = ½·Ω(ω)·q for the quaternion part.
package dynamics
