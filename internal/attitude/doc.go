// Package attitude provides the value types and math primitives shared by
// every part of the attitude simulation:
//
//   - [Vec3]: body-frame vector (torque, rate, axis)
//   - [Quat]: rotation quaternion, scalar first, body with respect to inertial
//   - [Mat3]: 3x3 matrix (inertia tensor, direction cosines)
//   - [State]: orientation plus body rate
//   - [ReferenceState]: desired orientation plus body rate
//
// All types are small arrays passed by value. Operations return new values
// and never mutate their receivers.
//
// # Degenerate inputs
//
// Normalizing a zero vector returns it unchanged and normalizing a zero
// quaternion returns [Identity]. Inverting a matrix whose determinant is
// below 1e-15 in magnitude returns [ErrSingularMatrix].
package attitude
