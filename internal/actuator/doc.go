// Package actuator maps commanded body torque to the torque actually applied.
//
// [Ideal] passes the command through. [ReactionWheels] distributes it over a
// wheel array with per-wheel torque and speed limits; wheel speeds are state
// owned by the instance and persist across calls for the life of a run.
package actuator
